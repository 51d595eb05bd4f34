// Package filter decides which violations survive to be reported.
//
// Filters inspect an Event and either accept it (keep the violation) or reject
// it (suppress it). The package provides the building blocks shared by every
// suppression mechanism: line/column interval sets, OR-combined filter sets,
// pattern-based suppression elements, structural tree-sitter query elements and
// the template expansion used by comment-driven suppressions.
package filter

// Filter decides whether an event survives. Errors abort the run.
type Filter interface {
	Accept(ev *Event) (bool, error)
}

// Predicate is a filter that cannot fail.
type Predicate interface {
	Accept(ev *Event) bool
}

// FilterFunc adapts a function to Filter.
type FilterFunc func(ev *Event) (bool, error)

// Accept calls f(ev).
func (f FilterFunc) Accept(ev *Event) (bool, error) {
	return f(ev)
}

// FromPredicate adapts an infallible filter to Filter.
func FromPredicate(p Predicate) Filter {
	return FilterFunc(func(ev *Event) (bool, error) {
		return p.Accept(ev), nil
	})
}

// Chain accepts an event only if every filter in it does.
// Filters run in order; the first rejection or error stops evaluation.
type Chain struct {
	filters []Filter
}

// NewChain creates a chain of filters.
func NewChain(filters ...Filter) *Chain {
	return &Chain{filters: filters}
}

// Add appends a filter to the chain.
func (c *Chain) Add(f Filter) {
	c.filters = append(c.filters, f)
}

// Len returns the number of filters in the chain.
func (c *Chain) Len() int {
	return len(c.filters)
}

// Accept implements Filter.
func (c *Chain) Accept(ev *Event) (bool, error) {
	for _, f := range c.filters {
		ok, err := f.Accept(ev)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
