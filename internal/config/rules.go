package config

import (
	"maps"
	"strings"

	"github.com/wharflab/javalint/internal/rules/configutil"
)

// RuleConfig represents per-rule configuration.
// Can be specified in TOML as:
//
//	[rules.FileLength]
//	severity = "error"
//	id = "fileLengthStrict"
//	exclude.paths = ["src/generated/**"]
//	# Rule-specific options are flattened at this level
//	max = 1500
type RuleConfig struct {
	// Severity overrides the rule's default severity.
	// Use "off" to disable the rule.
	Severity string `koanf:"severity"`

	// ID is the module id stamped on the rule's violations. Suppressions can
	// target it with id="...".
	ID string `koanf:"id"`

	// Exclude contains path patterns where this rule should not run.
	Exclude ExcludeConfig `koanf:"exclude"`

	// Options contains rule-specific configuration options.
	Options map[string]any `koanf:",remain"`
}

// ExcludeConfig defines file exclusion patterns for a rule.
type ExcludeConfig struct {
	// Paths contains glob patterns for files to exclude.
	Paths []string `koanf:"paths"`
}

// RulesConfig contains rule selection and per-rule configuration.
//
// Example TOML:
//
//	[rules]
//	include = ["AbbreviationAsWordInName"] # Enable rules that are off by default
//	exclude = ["naming/*"]                 # Disable a whole category
//
//	[rules.MemberName]
//	format = "^m[A-Z][a-zA-Z0-9]*$"
//
// Rule tables are keyed by rule code. Codes are matched case-insensitively,
// so environment variables (always lower-cased) can address them.
type RulesConfig struct {
	// Include explicitly enables rules.
	Include []string `koanf:"include"`

	// Exclude explicitly disables rules.
	Exclude []string `koanf:"exclude"`

	// Checks holds the per-rule tables keyed by lower-cased rule code.
	Checks map[string]RuleConfig `koanf:"-"`
}

// Get returns the configuration for a specific rule.
// Returns nil if no configuration exists for the rule.
func (rc *RulesConfig) Get(ruleCode string) *RuleConfig {
	if rc == nil || rc.Checks == nil {
		return nil
	}
	if cfg, ok := rc.Checks[strings.ToLower(ruleCode)]; ok {
		return &cfg
	}
	return nil
}

// Set stores configuration for a rule.
func (rc *RulesConfig) Set(ruleCode string, cfg RuleConfig) {
	if rc.Checks == nil {
		rc.Checks = make(map[string]RuleConfig)
	}
	rc.Checks[strings.ToLower(ruleCode)] = cfg
}

// IsEnabled checks if a rule is enabled based on Include/Exclude patterns.
// Returns nil if no configuration specifies enabled/disabled (use rule default).
// Include takes precedence over Exclude.
func (rc *RulesConfig) IsEnabled(ruleCode, category string) *bool {
	if rc == nil {
		return nil
	}
	if matchesAnyPattern(ruleCode, category, rc.Include) {
		return boolPtr(true)
	}
	if matchesAnyPattern(ruleCode, category, rc.Exclude) {
		return boolPtr(false)
	}
	return nil
}

// matchesAnyPattern checks if a rule matches any pattern in the list.
// Patterns can be:
//   - "*": every rule
//   - an exact rule code: "MemberName"
//   - a category wildcard: "naming/*"
func matchesAnyPattern(ruleCode, category string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchesPattern(ruleCode, category, pattern) {
			return true
		}
	}
	return false
}

func matchesPattern(ruleCode, category, pattern string) bool {
	if pattern == "*" || strings.EqualFold(ruleCode, pattern) {
		return true
	}
	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		return category != "" && strings.EqualFold(category, prefix)
	}
	return false
}

// GetSeverity returns the severity override for a rule.
// Returns empty string if no override is configured.
func (rc *RulesConfig) GetSeverity(ruleCode string) string {
	if cfg := rc.Get(ruleCode); cfg != nil {
		return cfg.Severity
	}
	return ""
}

// GetModuleID returns the module id configured for a rule, or "".
func (rc *RulesConfig) GetModuleID(ruleCode string) string {
	if cfg := rc.Get(ruleCode); cfg != nil {
		return cfg.ID
	}
	return ""
}

// GetExcludePaths returns the exclusion patterns for a rule.
func (rc *RulesConfig) GetExcludePaths(ruleCode string) []string {
	cfg := rc.Get(ruleCode)
	if cfg == nil || cfg.Exclude.Paths == nil {
		return nil
	}
	out := make([]string, len(cfg.Exclude.Paths))
	copy(out, cfg.Exclude.Paths)
	return out
}

// GetOptions returns rule-specific options.
// Returns nil if no options are configured.
// Returns a shallow copy to prevent mutation of internal state.
func (rc *RulesConfig) GetOptions(ruleCode string) map[string]any {
	cfg := rc.Get(ruleCode)
	if cfg == nil || cfg.Options == nil {
		return nil
	}
	out := make(map[string]any, len(cfg.Options))
	maps.Copy(out, cfg.Options)
	return out
}

// DecodeRuleOptions returns typed rule options merged over defaults.
// Returns defaults if the rule has no options or decoding fails.
func DecodeRuleOptions[T any](rc *RulesConfig, ruleCode string, defaults T) T {
	if rc == nil {
		return defaults
	}
	return configutil.Coerce(rc.GetOptions(ruleCode), defaults)
}

func boolPtr(b bool) *bool {
	return &b
}
