package naming

import (
	"fmt"
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/wharflab/javalint/internal/rules"
	"github.com/wharflab/javalint/internal/rules/configutil"
	"github.com/wharflab/javalint/internal/syntax"
)

// AbbreviationCode is the rule code of the abbreviation check.
const AbbreviationCode = "AbbreviationAsWordInName"

// DisallowedAbbreviation returns the first run of capital letters in name that
// is too long to be accepted, or "" if there is none.
//
// A run may hold allowedLength+1 capitals: the extra one starts the next word,
// as in "IOStream". Runs ending the name and runs followed by an underscore
// may also hold allowedLength+1 capitals. The returned abbreviation drops the
// capital that starts the next word; a run ending the name or followed by an
// underscore is returned whole. Abbreviations in allowed are skipped.
func DisallowedAbbreviation(name string, allowedLength int, allowed map[string]bool) string {
	runes := []rune(name)
	inRun := false
	begin := 0
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if !inRun {
				inRun = true
				begin = i
			}
			continue
		}
		if !inRun {
			continue
		}
		inRun = false

		// end indexes the run's last capital, or the underscore closing it.
		end, limit := i-1, allowedLength
		if r == '_' {
			end, limit = i, allowedLength+1
		}
		if abbr := illegalRun(runes, begin, end, end, limit, allowed); abbr != "" {
			return abbr
		}
	}
	if inRun {
		return illegalRun(runes, begin, len(runes)-1, len(runes), allowedLength, allowed)
	}
	return ""
}

func illegalRun(runes []rune, begin, end, cut, limit int, allowed map[string]bool) string {
	if end-begin <= limit {
		return ""
	}
	abbr := string(runes[begin:cut])
	if allowed[abbr] {
		return ""
	}
	return abbr
}

// AbbreviationConfig is the configuration for AbbreviationAsWordInName.
type AbbreviationConfig struct {
	// AllowedAbbreviationLength is how many capitals an abbreviation may hold
	// beyond the first letter of the following word. Default: 3.
	AllowedAbbreviationLength int `koanf:"allowed-abbreviation-length"`

	// AllowedAbbreviations are abbreviations accepted regardless of length.
	AllowedAbbreviations []string `koanf:"allowed-abbreviations"`

	// IgnoreFinal skips final variables. Default: true.
	IgnoreFinal bool `koanf:"ignore-final"`

	// IgnoreStatic skips static variables. Default: true.
	IgnoreStatic bool `koanf:"ignore-static"`

	// IgnoreStaticFinal skips static final variables. Default: true.
	IgnoreStaticFinal bool `koanf:"ignore-static-final"`

	// IgnoreOverriddenMethods skips methods annotated with @Override. Default: true.
	IgnoreOverriddenMethods bool `koanf:"ignore-overridden-methods"`
}

// DefaultAbbreviationConfig returns the default configuration.
func DefaultAbbreviationConfig() AbbreviationConfig {
	return AbbreviationConfig{
		AllowedAbbreviationLength: 3,
		IgnoreFinal:               true,
		IgnoreStatic:              true,
		IgnoreStaticFinal:         true,
		IgnoreOverriddenMethods:   true,
	}
}

// AbbreviationRule flags identifiers containing long runs of capital letters.
type AbbreviationRule struct{}

// NewAbbreviationRule creates the rule.
func NewAbbreviationRule() *AbbreviationRule {
	return &AbbreviationRule{}
}

// Metadata returns the rule metadata.
func (r *AbbreviationRule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             AbbreviationCode,
		Name:             "Abbreviation As Word In Name",
		Description:      "Limits consecutive capital letters in identifiers",
		DocURL:           docURL(AbbreviationCode),
		DefaultSeverity:  rules.SeverityWarning,
		Category:         "naming",
		EnabledByDefault: true,
	}
}

// DefaultConfig returns the default configuration for this rule.
func (r *AbbreviationRule) DefaultConfig() any {
	return DefaultAbbreviationConfig()
}

// ValidateConfig checks if the configuration is valid.
func (r *AbbreviationRule) ValidateConfig(config any) error {
	cfg, err := configutil.Validate(config, DefaultAbbreviationConfig())
	if err != nil {
		return err
	}
	if cfg.AllowedAbbreviationLength < 0 {
		return fmt.Errorf("allowed-abbreviation-length must be >= 0, got %d", cfg.AllowedAbbreviationLength)
	}
	return nil
}

// Check implements rules.Rule.
func (r *AbbreviationRule) Check(input rules.LintInput) []rules.Violation {
	cfg := configutil.Coerce(input.Config, DefaultAbbreviationConfig())
	allowed := make(map[string]bool, len(cfg.AllowedAbbreviations))
	for _, a := range cfg.AllowedAbbreviations {
		allowed[strings.TrimSpace(a)] = true
	}

	meta := r.Metadata()
	var violations []rules.Violation
	report := func(name *sitter.Node) {
		if name == nil {
			return
		}
		text := input.Tree.Text(name)
		if DisallowedAbbreviation(text, cfg.AllowedAbbreviationLength, allowed) == "" {
			return
		}
		violations = append(violations, rules.NewViolation(
			rules.NewPointLocation(input.File, syntax.Line(name), syntax.Column(name)),
			meta.Code,
			fmt.Sprintf("abbreviation in name %q must contain no more than %d consecutive capital letters",
				text, cfg.AllowedAbbreviationLength+1),
			meta.DefaultSeverity,
		).WithNodeKind(name.Type()).WithDocURL(meta.DocURL))
	}

	syntax.Walk(input.Tree.Root(), func(n *sitter.Node) bool {
		switch n.Type() {
		case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration",
			"annotation_type_declaration", "annotation_type_element_declaration", "formal_parameter",
			"catch_formal_parameter":
			report(syntax.NameNode(n))
		case "method_declaration":
			if !(cfg.IgnoreOverriddenMethods && syntax.HasAnnotation(n, input.Source, "Override")) {
				report(syntax.NameNode(n))
			}
		case "field_declaration", "local_variable_declaration":
			if !cfg.ignoredVariable(n) {
				for _, d := range syntax.Declarators(n) {
					report(syntax.NameNode(d))
				}
			}
		case "constant_declaration":
			// Interface fields are implicitly static and final.
			if !cfg.IgnoreFinal && !cfg.IgnoreStatic && !cfg.IgnoreStaticFinal {
				for _, d := range syntax.Declarators(n) {
					report(syntax.NameNode(d))
				}
			}
		case "enhanced_for_statement":
			if !(cfg.IgnoreFinal && syntax.HasModifier(n, "final")) {
				report(syntax.NameNode(n))
			}
		}
		return true
	})
	return violations
}

func (cfg AbbreviationConfig) ignoredVariable(decl *sitter.Node) bool {
	if (cfg.IgnoreFinal || cfg.IgnoreStatic || cfg.IgnoreStaticFinal) && syntax.InInterface(decl) {
		return true
	}
	isStatic := syntax.HasModifier(decl, "static")
	isFinal := syntax.HasModifier(decl, "final")
	if isStatic && isFinal {
		return cfg.IgnoreStaticFinal
	}
	return (cfg.IgnoreStatic && isStatic) || (cfg.IgnoreFinal && isFinal)
}
