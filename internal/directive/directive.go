// Package directive implements suppressions driven by markers in the linted
// file itself.
//
// Four filters are provided:
//   - CommentFilter: paired OFF/ON markers found in comments of the syntax tree
//   - NearbyCommentFilter: a single comment marker covering nearby lines
//   - PlainTextFilter: paired OFF/ON markers matched against raw source lines
//   - NearbyTextFilter: a single raw-text marker covering nearby lines
//
// Marker text can feed the suppression scope: check, message and id formats are
// templates whose $n placeholders are replaced with the groups of the marker
// match (see filter.ExpandTemplate).
//
// Each filter caches the markers or windows it computed for the last file it
// saw. A
// filter instance must therefore not be shared between goroutines that lint
// different files at the same time; use Clone to get an independent copy.
package directive

import (
	"cmp"
	"math"
	"regexp"
	"slices"

	"github.com/wharflab/javalint/internal/rules"
)

// Scope restricts which violations a marker applies to.
// Check is always set; Message and ID are nil when not configured.
type Scope struct {
	Check   *regexp.Regexp
	Message *regexp.Regexp
	ID      *regexp.Regexp
}

// Matches applies the scope to v. A set id pattern never matches a violation
// without a module id.
func (s Scope) Matches(v *rules.Violation) bool {
	if s.Check != nil && !s.Check.MatchString(v.RuleCode) {
		return false
	}
	if s.Message != nil && !s.Message.MatchString(v.Message) {
		return false
	}
	if s.ID != nil && (v.ModuleID == "" || !s.ID.MatchString(v.ModuleID)) {
		return false
	}
	return true
}

// Window is an inclusive range of 1-based lines in which violations within
// Scope are suppressed. Nearby markers produce windows.
type Window struct {
	Start int
	End   int
	Scope Scope
	// Text is the marker that produced the window.
	Text string
}

// Suppresses reports whether the window covers v.
func (w Window) Suppresses(v *rules.Violation) bool {
	line := v.Line()
	return line >= w.Start && line <= w.End && w.Scope.Matches(v)
}

func suppressed(windows []Window, v *rules.Violation) bool {
	return slices.ContainsFunc(windows, func(w Window) bool { return w.Suppresses(v) })
}

// Marker is one OFF or ON occurrence of a paired suppression.
type Marker struct {
	Off    bool
	Line   int
	Column int
	Scope  Scope
	// Text is the comment or line that matched.
	Text string
}

// from returns the position the marker takes effect at. An OFF marker acts
// from its own column on; an ON marker only from the next line, so the ON
// line itself stays suppressed.
func (m Marker) from() (line, column int) {
	if m.Off {
		return m.Line, m.Column
	}
	return m.Line + 1, -1
}

func (m Marker) after(line, column int) bool {
	l, c := m.from()
	return l > line || (l == line && c > column)
}

// markerSet is the OFF/ON markers of one file, ordered by effective position.
type markerSet []Marker

func newMarkerSet(markers []Marker) markerSet {
	slices.SortStableFunc(markers, func(a, b Marker) int {
		al, ac := a.from()
		bl, bc := b.from()
		if c := cmp.Compare(al, bl); c != 0 {
			return c
		}
		return cmp.Compare(ac, bc)
	})
	return markers
}

// suppresses finds the last marker in effect at v whose scope matches v and
// reports whether it is an OFF marker. Scopes of OFF and ON markers need not
// agree: a narrow ON re-enables only what it matches.
func (ms markerSet) suppresses(v *rules.Violation) bool {
	line, column := v.Line(), v.Column()
	if column < 0 {
		// Without a column every OFF on the violation's line applies.
		column = math.MaxInt
	}
	var nearest *Marker
	for i := range ms {
		m := &ms[i]
		if m.after(line, column) {
			break
		}
		if m.Scope.Matches(v) {
			nearest = m
		}
	}
	return nearest != nil && nearest.Off
}

// nearbyWindow computes the window of a nearby marker on line with the given
// influence. Positive influence extends forward, negative backward.
func nearbyWindow(line, influence int) (start, end int) {
	if influence >= 1 {
		return line, line + influence
	}
	return line + influence, line
}
