// Package filelength implements the FileLength rule for Java sources.
package filelength

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/wharflab/javalint/internal/rules"
	"github.com/wharflab/javalint/internal/rules/configutil"
	"github.com/wharflab/javalint/internal/sourcemap"
	"github.com/wharflab/javalint/internal/syntax"
)

// Code is the rule code.
const Code = "FileLength"

// Config is the configuration for the FileLength rule.
type Config struct {
	// Max is the maximum number of lines allowed (0 = disabled). Default: 2000.
	Max int `koanf:"max"`

	// SkipBlankLines excludes blank lines from the count. Default: false.
	SkipBlankLines bool `koanf:"skip-blank-lines"`

	// SkipComments excludes comment-only lines from the count. Default: false.
	SkipComments bool `koanf:"skip-comments"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Max: 2000}
}

// Rule implements the FileLength rule.
type Rule struct{}

// New creates a new FileLength rule instance.
func New() *Rule {
	return &Rule{}
}

// Metadata returns the rule metadata.
func (r *Rule) Metadata() rules.RuleMetadata {
	return rules.RuleMetadata{
		Code:             Code,
		Name:             "File Length",
		Description:      "Limits the number of lines in a Java source file",
		DocURL:           "https://github.com/wharflab/javalint/blob/main/docs/rules/FileLength.md",
		DefaultSeverity:  rules.SeverityWarning,
		Category:         "size",
		EnabledByDefault: true,
	}
}

// DefaultConfig returns the default configuration for this rule.
func (r *Rule) DefaultConfig() any {
	return DefaultConfig()
}

// ValidateConfig checks if the configuration is valid.
func (r *Rule) ValidateConfig(config any) error {
	cfg, err := configutil.Validate(config, DefaultConfig())
	if err != nil {
		return err
	}
	if cfg.Max < 0 {
		return fmt.Errorf("max must be >= 0, got %d", cfg.Max)
	}
	return nil
}

// Check counts the file's lines. Comment-only lines are those holding no
// token other than comments, so a line of code with a trailing comment counts.
func (r *Rule) Check(input rules.LintInput) []rules.Violation {
	cfg := configutil.Coerce(input.Config, DefaultConfig())
	if cfg.Max <= 0 {
		return nil
	}

	lines := sourcemap.New(input.Source).Lines()
	// A trailing newline terminates the last line rather than starting one.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	var code map[int]bool
	if cfg.SkipComments {
		code = codeLines(input.Tree.Root())
	}

	count := 0
	for i, text := range lines {
		blank := strings.TrimSpace(text) == ""
		if blank && cfg.SkipBlankLines {
			continue
		}
		if !blank && cfg.SkipComments && !code[i+1] {
			continue
		}
		count++
	}

	if count <= cfg.Max {
		return nil
	}
	meta := r.Metadata()
	return []rules.Violation{
		rules.NewViolation(
			rules.NewLineLocation(input.File, 1),
			meta.Code,
			fmt.Sprintf("file length is %d lines (max allowed is %d)", count, cfg.Max),
			meta.DefaultSeverity,
		).WithNodeKind(input.Tree.Root().Type()).WithDocURL(meta.DocURL),
	}
}

// codeLines returns the 1-based lines covered by non-comment tokens.
func codeLines(root *sitter.Node) map[int]bool {
	lines := make(map[int]bool)
	syntax.Walk(root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "line_comment", "block_comment", "comment":
			return false
		}
		if n.ChildCount() == 0 {
			for row := n.StartPoint().Row; row <= n.EndPoint().Row; row++ {
				lines[int(row)+1] = true
			}
		}
		return true
	})
	return lines
}

func init() {
	rules.Register(New())
}
