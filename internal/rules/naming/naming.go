// Package naming implements identifier naming checks for Java sources.
//
// Format checks (TypeName, MemberName, ...) share one implementation driven by
// a table: each entry names the declarations it applies to and the default
// pattern identifiers must match.
package naming

import (
	"fmt"
	"regexp"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/wharflab/javalint/internal/rules"
	"github.com/wharflab/javalint/internal/rules/configutil"
	"github.com/wharflab/javalint/internal/syntax"
)

const docBase = "https://github.com/wharflab/javalint/blob/main/docs/rules/"

func docURL(code string) string {
	return docBase + code + ".md"
}

// FormatConfig is the configuration of a format check.
type FormatConfig struct {
	// Format is the regular expression names must match.
	Format string `koanf:"format"`
}

// nameCheck is one row of the naming table.
type nameCheck struct {
	code        string
	name        string
	description string
	format      string
	// kinds are the declaration node kinds the check visits.
	kinds []string
	// applies filters visited declarations; nil accepts all.
	applies func(decl *sitter.Node) bool
	// names selects the identifier nodes of a declaration.
	names func(decl *sitter.Node) []*sitter.Node
}

const camelLower = `^[a-z][a-zA-Z0-9]*$`

var table = []nameCheck{
	{
		code:        "TypeName",
		name:        "Type Name",
		description: "Checks that class, interface, enum, record and annotation names conform to a format",
		format:      `^[A-Z][a-zA-Z0-9]*$`,
		kinds: []string{
			"class_declaration", "interface_declaration", "enum_declaration",
			"record_declaration", "annotation_type_declaration",
		},
		names: declName,
	},
	{
		code:        "MethodName",
		name:        "Method Name",
		description: "Checks that method names conform to a format",
		format:      camelLower,
		kinds:       []string{"method_declaration"},
		names:       declName,
	},
	{
		code:        "ConstantName",
		name:        "Constant Name",
		description: "Checks that static final fields and interface fields conform to a format",
		format:      `^[A-Z][A-Z0-9]*(_[A-Z0-9]+)*$`,
		kinds:       []string{"field_declaration", "constant_declaration"},
		applies: func(n *sitter.Node) bool {
			return n.Type() == "constant_declaration" || syntax.InInterface(n) ||
				syntax.HasModifier(n, "static") && syntax.HasModifier(n, "final")
		},
		names: constantNames,
	},
	{
		code:        "StaticVariableName",
		name:        "Static Variable Name",
		description: "Checks that static non-final fields conform to a format",
		format:      camelLower,
		kinds:       []string{"field_declaration"},
		applies: func(n *sitter.Node) bool {
			return !syntax.InInterface(n) && syntax.HasModifier(n, "static") && !syntax.HasModifier(n, "final")
		},
		names: declaratorNames,
	},
	{
		code:        "MemberName",
		name:        "Member Name",
		description: "Checks that instance fields conform to a format",
		format:      camelLower,
		kinds:       []string{"field_declaration"},
		applies: func(n *sitter.Node) bool {
			return !syntax.InInterface(n) && !syntax.HasModifier(n, "static")
		},
		names: declaratorNames,
	},
	{
		code:        "LocalVariableName",
		name:        "Local Variable Name",
		description: "Checks that non-final local variables conform to a format",
		format:      camelLower,
		kinds:       []string{"local_variable_declaration"},
		applies:     func(n *sitter.Node) bool { return !syntax.HasModifier(n, "final") },
		names:       declaratorNames,
	},
	{
		code:        "LocalFinalVariableName",
		name:        "Local Final Variable Name",
		description: "Checks that final local variables conform to a format",
		format:      camelLower,
		kinds:       []string{"local_variable_declaration"},
		applies:     func(n *sitter.Node) bool { return syntax.HasModifier(n, "final") },
		names:       declaratorNames,
	},
	{
		code:        "ParameterName",
		name:        "Parameter Name",
		description: "Checks that method and catch parameters conform to a format",
		format:      camelLower,
		kinds:       []string{"formal_parameter", "catch_formal_parameter"},
		names:       declName,
	},
	{
		code:        "PackageName",
		name:        "Package Name",
		description: "Checks that package names conform to a format",
		format:      `^[a-z]+(\.[a-zA-Z_][a-zA-Z0-9_]*)*$`,
		kinds:       []string{"package_declaration"},
		names:       packageName,
	},
}

func declName(n *sitter.Node) []*sitter.Node {
	if name := syntax.NameNode(n); name != nil {
		return []*sitter.Node{name}
	}
	return nil
}

func declaratorNames(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for _, d := range syntax.Declarators(n) {
		out = append(out, declName(d)...)
	}
	return out
}

// serialization fields have names fixed by the platform.
var serialFields = map[string]bool{"serialVersionUID": true, "serialPersistentFields": true}

func constantNames(n *sitter.Node) []*sitter.Node {
	return declaratorNames(n)
}

func packageName(n *sitter.Node) []*sitter.Node {
	for i := range int(n.NamedChildCount()) {
		c := n.NamedChild(i)
		if c.Type() == "scoped_identifier" || c.Type() == "identifier" {
			return []*sitter.Node{c}
		}
	}
	return nil
}

// FormatRule checks identifiers of one declaration family against a pattern.
type FormatRule struct {
	check nameCheck
}

// Metadata returns the rule metadata.
func (r *FormatRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             r.check.code,
		Name:             r.check.name,
		Description:      r.check.description,
		DocURL:           docURL(r.check.code),
		DefaultSeverity:  rules.SeverityWarning,
		Category:         "naming",
		EnabledByDefault: true,
	}
}

// DefaultConfig returns the default configuration for this rule.
func (r *FormatRule) DefaultConfig() any {
	return FormatConfig{Format: r.check.format}
}

// ValidateConfig checks that the configured format compiles.
func (r *FormatRule) ValidateConfig(config any) error {
	cfg, err := configutil.Validate(config, FormatConfig{Format: r.check.format})
	if err != nil {
		return err
	}
	if _, err := regexp.Compile(cfg.Format); err != nil {
		return fmt.Errorf("invalid format %q: %w", cfg.Format, err)
	}
	return nil
}

// Check implements rules.Rule.
func (r *FormatRule) Check(input rules.LintInput) []rules.Violation {
	cfg := configutil.Coerce(input.Config, FormatConfig{Format: r.check.format})
	format, err := regexp.Compile(cfg.Format)
	if err != nil {
		// Rejected by ValidateConfig during configuration loading.
		return nil
	}

	meta := r.Metadata()
	var violations []rules.Violation
	syntax.Walk(input.Tree.Root(), func(n *sitter.Node) bool {
		if !r.visits(n) {
			return true
		}
		for _, name := range r.check.names(n) {
			text := input.Tree.Text(name)
			if format.MatchString(text) || r.check.code == "ConstantName" && serialFields[text] {
				continue
			}
			violations = append(violations, rules.NewViolation(
				rules.NewPointLocation(input.File, syntax.Line(name), syntax.Column(name)),
				meta.Code,
				fmt.Sprintf("name %q must match pattern %q", text, cfg.Format),
				meta.DefaultSeverity,
			).WithNodeKind(name.Type()).WithDocURL(meta.DocURL))
		}
		return true
	})
	return violations
}

func (r *FormatRule) visits(n *sitter.Node) bool {
	kind := n.Type()
	for _, k := range r.check.kinds {
		if k == kind {
			return r.check.applies == nil || r.check.applies(n)
		}
	}
	return false
}

// FormatRules returns one rule per naming table entry.
func FormatRules() []*FormatRule {
	out := make([]*FormatRule, len(table))
	for i := range table {
		out[i] = &FormatRule{check: table[i]}
	}
	return out
}

func init() {
	for _, r := range FormatRules() {
		rules.Register(r)
	}
	rules.Register(NewAbbreviationRule())
}
