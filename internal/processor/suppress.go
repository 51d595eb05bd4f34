package processor

import (
	"fmt"

	"github.com/wharflab/javalint/internal/filter"
	"github.com/wharflab/javalint/internal/logging"
	"github.com/wharflab/javalint/internal/rules"
)

// SuppressionFilter runs each violation through the context's filters.
// A violation survives only if every filter accepts it. A filter error
// (a suppression that cannot be evaluated) aborts processing.
type SuppressionFilter struct{}

// NewSuppressionFilter creates a new suppression filter processor.
func NewSuppressionFilter() *SuppressionFilter {
	return &SuppressionFilter{}
}

// Name returns the processor's identifier.
func (p *SuppressionFilter) Name() string {
	return "suppression-filter"
}

// Process drops suppressed violations.
func (p *SuppressionFilter) Process(violations []rules.Violation, ctx *Context) ([]rules.Violation, error) {
	if ctx.Filters == nil {
		return violations, nil
	}
	log := logging.For("suppression")

	result := make([]rules.Violation, 0, len(violations))
	for i := range violations {
		v := violations[i]
		ev := filter.NewEvent(&v, ctx.Tree(v.Location.File))
		ok, err := ctx.Filters.Accept(ev)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %s: %w", v.Location.File, v.Line(), v.RuleCode, err)
		}
		if !ok {
			log.WithField("file", v.Location.File).
				WithField("line", v.Line()).
				WithField("rule", v.RuleCode).
				Debug("violation suppressed")
			continue
		}
		result = append(result, v)
	}
	return result, nil
}
