package filter

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/wharflab/javalint/internal/syntax"
)

// QueryElement suppresses violations anchored on nodes selected by a
// tree-sitter query, in addition to the file, check, message and module id
// criteria of a pattern suppression.
//
// The query is evaluated against the whole tree of the event's file. The
// violation is suppressed when one of the captured nodes starts at the
// violation's line and column (line only when the violation has no column)
// and, when the violation names a node kind, has that kind.
//
// A QueryElement is safe for concurrent use.
type QueryElement struct {
	criteria

	query    *sitter.Query
	querySrc string
}

// NewQueryElement compiles a structural suppression. An empty query means the
// element suppresses on the pattern criteria alone.
func NewQueryElement(files, checks, message, moduleID, query string) (*QueryElement, error) {
	c, err := newCriteria(files, checks, message, moduleID)
	if err != nil {
		return nil, err
	}
	e := &QueryElement{criteria: c, querySrc: query}
	if query == "" {
		return e, nil
	}
	q, err := sitter.NewQuery([]byte(query), syntax.Language())
	if err != nil {
		return nil, &ConfigError{Source: "query", Text: query, Reason: "unexpected query", Err: err}
	}
	if q.CaptureCount() == 0 {
		q.Close()
		return nil, &ConfigError{Source: "query", Text: query, Reason: "query has no captures"}
	}
	e.query = q
	return e, nil
}

// Accept implements Filter. It returns false when the element suppresses ev.
// Evaluating a query needs the syntax tree; an event without one is a StateError.
func (e *QueryElement) Accept(ev *Event) (bool, error) {
	if !e.criteria.matches(ev) {
		return true, nil
	}
	if e.query == nil {
		return false, nil
	}
	if ev.Tree == nil {
		return false, &StateError{
			Resource: ev.File,
			Reason:   "cannot initialize context and evaluate query",
		}
	}
	return !e.anchored(ev), nil
}

func (e *QueryElement) anchored(ev *Event) bool {
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(e.query, ev.Tree.Root())

	v := ev.Violation
	for {
		m, ok := qc.NextMatch()
		if !ok {
			return false
		}
		m = qc.FilterPredicates(m, ev.Tree.Source)
		for _, c := range m.Captures {
			n := c.Node
			if syntax.Line(n) != v.Line() {
				continue
			}
			if v.Column() >= 0 && syntax.Column(n) != v.Column() {
				continue
			}
			if v.NodeKind != "" && n.Type() != v.NodeKind {
				continue
			}
			return true
		}
	}
}

// Key identifies the element by its construction parameters.
func (e *QueryElement) Key() string {
	return fmt.Sprintf("suppress-query{%s query=%q}", e.criteria.key(), e.querySrc)
}

// Equal reports whether both elements were built from the same parameters.
func (e *QueryElement) Equal(other *QueryElement) bool {
	return other != nil && e.Key() == other.Key()
}

// Files returns the file pattern, or "" when unset.
func (e *QueryElement) Files() string { return e.filesSrc }

// Checks returns the check pattern, or "" when unset.
func (e *QueryElement) Checks() string { return e.checksSrc }

// Message returns the message pattern, or "" when unset.
func (e *QueryElement) Message() string { return e.messageSrc }

// ModuleID returns the module id, or "" when unset.
func (e *QueryElement) ModuleID() string { return e.moduleID }

// Query returns the query source, or "" when unset.
func (e *QueryElement) Query() string { return e.querySrc }
