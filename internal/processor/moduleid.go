package processor

import (
	"github.com/wharflab/javalint/internal/rules"
)

// ModuleIDAssignment stamps violations with the module id configured for
// their rule ([rules.<code>] id = "..."). Ids set by the rule itself are kept.
type ModuleIDAssignment struct{}

// NewModuleIDAssignment creates a new module id processor.
func NewModuleIDAssignment() *ModuleIDAssignment {
	return &ModuleIDAssignment{}
}

// Name returns the processor's identifier.
func (p *ModuleIDAssignment) Name() string {
	return "module-id"
}

// Process assigns configured module ids.
func (p *ModuleIDAssignment) Process(violations []rules.Violation, ctx *Context) ([]rules.Violation, error) {
	return transformViolations(violations, func(v rules.Violation) rules.Violation {
		if v.ModuleID == "" {
			v.ModuleID = ctx.Config.Rules.GetModuleID(v.RuleCode)
		}
		return v
	}), nil
}
