package processor

import (
	"github.com/wharflab/javalint/internal/reporter"
	"github.com/wharflab/javalint/internal/rules"
)

// Sorting ensures stable, deterministic output ordering.
// Order: file path, then line number, then column, then rule code.
type Sorting struct{}

// NewSorting creates a new sorting processor.
func NewSorting() *Sorting {
	return &Sorting{}
}

// Name returns the processor's identifier.
func (p *Sorting) Name() string {
	return "sorting"
}

// Process sorts violations in a stable order.
func (p *Sorting) Process(violations []rules.Violation, _ *Context) ([]rules.Violation, error) {
	return reporter.SortViolations(violations), nil
}
