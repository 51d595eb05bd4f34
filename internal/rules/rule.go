package rules

import "github.com/wharflab/javalint/internal/syntax"

// LintInput contains all the information a rule needs to check a Java file.
//
// LintInput is read-only. Rules must not mutate the tree or the source.
type LintInput struct {
	// File is the path to the file being linted.
	File string

	// Tree is the parsed compilation unit (guaranteed non-nil).
	Tree *syntax.Tree

	// Source is the raw file content.
	Source []byte

	// Config is the rule-specific configuration (type depends on rule).
	Config any
}

// RuleMetadata contains static information about a rule.
type RuleMetadata struct {
	// Code is the unique identifier (e.g. "AbbreviationAsWordInName").
	Code string

	// Name is the human-readable rule name.
	Name string

	// Description explains what the rule checks.
	Description string

	// DocURL links to detailed documentation.
	DocURL string

	// DefaultSeverity is the severity when not overridden.
	DefaultSeverity Severity

	// Category groups related rules (e.g. "naming").
	Category string

	// EnabledByDefault indicates if the rule runs without explicit opt-in.
	EnabledByDefault bool
}

// Rule is the interface that all linting rules must implement.
type Rule interface {
	Metadata() RuleMetadata
	Check(input LintInput) []Violation
}

// ConfigurableRule is an optional interface for rules that accept configuration.
type ConfigurableRule interface {
	Rule

	// DefaultConfig returns the default configuration for this rule.
	DefaultConfig() any

	// ValidateConfig checks if a configuration is valid for this rule.
	ValidateConfig(config any) error
}
