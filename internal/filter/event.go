package filter

import (
	"github.com/wharflab/javalint/internal/rules"
	"github.com/wharflab/javalint/internal/syntax"
)

// Event is what filters inspect: a violation plus the file it belongs to and,
// when available, the parsed tree of that file.
//
// Violation is nil for file-level notifications. Such events are never
// suppressed by pattern or comment filters.
type Event struct {
	File      string
	Violation *rules.Violation
	Tree      *syntax.Tree
}

// NewEvent builds an event for v, taking the file name from its location.
func NewEvent(v *rules.Violation, tree *syntax.Tree) *Event {
	ev := &Event{Violation: v, Tree: tree}
	if v != nil {
		ev.File = v.File()
	}
	return ev
}

// HasViolation reports whether the event carries a violation and a file name.
func (ev *Event) HasViolation() bool {
	return ev != nil && ev.Violation != nil && ev.File != ""
}
