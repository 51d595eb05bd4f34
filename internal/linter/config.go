package linter

import (
	"github.com/wharflab/javalint/internal/config"
	"github.com/wharflab/javalint/internal/rules"
)

// EnabledRules returns the rules of registry that run under cfg, in registry order.
func EnabledRules(cfg *config.Config, registry *rules.Registry) []rules.Rule {
	var enabled []rules.Rule
	for _, rule := range registry.All() {
		if isRuleEnabled(rule.Metadata(), cfg) {
			enabled = append(enabled, rule)
		}
	}
	return enabled
}

// EnabledRuleCodes returns the codes of the rules that run under cfg.
func EnabledRuleCodes(cfg *config.Config, registry *rules.Registry) []string {
	enabled := EnabledRules(cfg, registry)
	codes := make([]string, len(enabled))
	for i, rule := range enabled {
		codes[i] = rule.Metadata().Code
	}
	return codes
}

// isRuleEnabled resolves whether a rule runs: include/exclude patterns win,
// then an explicit severity, then a rule table with options, then the rule default.
func isRuleEnabled(meta rules.RuleMetadata, cfg *config.Config) bool {
	if cfg == nil {
		return meta.EnabledByDefault
	}

	if enabled := cfg.Rules.IsEnabled(meta.Code, meta.Category); enabled != nil {
		return *enabled
	}

	if sev := cfg.Rules.GetSeverity(meta.Code); sev != "" {
		parsed, err := rules.ParseSeverity(sev)
		return err == nil && parsed != rules.SeverityIgnore
	}

	// A rule that is off by default is switched on by configuring it.
	if !meta.EnabledByDefault {
		return len(cfg.Rules.GetOptions(meta.Code)) > 0 || cfg.Rules.GetModuleID(meta.Code) != ""
	}
	return true
}
