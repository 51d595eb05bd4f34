package processor

import (
	"github.com/wharflab/javalint/internal/rules"
)

// EnableFilter removes violations for disabled rules.
// Filters out violations with severity="ignore" and respects the
// Include/Exclude patterns from config.
type EnableFilter struct{}

// NewEnableFilter creates a new enable filter processor.
func NewEnableFilter() *EnableFilter {
	return &EnableFilter{}
}

// Name returns the processor's identifier.
func (p *EnableFilter) Name() string {
	return "enable-filter"
}

// Process filters out violations for disabled rules.
// Rules are disabled if:
//  1. Severity is "ignore" (after SeverityOverride has run)
//  2. Excluded by Include/Exclude patterns
func (p *EnableFilter) Process(violations []rules.Violation, ctx *Context) ([]rules.Violation, error) {
	registry := ctx.registry()
	return filterViolations(violations, func(v rules.Violation) bool {
		if v.Severity == rules.SeverityIgnore {
			return false
		}

		category := ""
		if rule := registry.Get(v.RuleCode); rule != nil {
			category = rule.Metadata().Category
		}
		if enabled := ctx.Config.Rules.IsEnabled(v.RuleCode, category); enabled != nil {
			return *enabled
		}
		return true
	}), nil
}
