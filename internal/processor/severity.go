package processor

import (
	"github.com/wharflab/javalint/internal/rules"
)

// SeverityOverride applies severity overrides from configuration.
// Allows users to downgrade warnings to info, upgrade info to errors, etc.
type SeverityOverride struct{}

// NewSeverityOverride creates a new severity override processor.
func NewSeverityOverride() *SeverityOverride {
	return &SeverityOverride{}
}

// Name returns the processor's identifier.
func (p *SeverityOverride) Name() string {
	return "severity-override"
}

// Process applies severity overrides from config. Invalid severities are
// rejected by config validation; a violation keeps its severity if one slips through.
func (p *SeverityOverride) Process(violations []rules.Violation, ctx *Context) ([]rules.Violation, error) {
	return transformViolations(violations, func(v rules.Violation) rules.Violation {
		override := ctx.Config.Rules.GetSeverity(v.RuleCode)
		if override == "" {
			return v
		}
		if sev, err := rules.ParseSeverity(override); err == nil {
			v.Severity = sev
		}
		return v
	}), nil
}
