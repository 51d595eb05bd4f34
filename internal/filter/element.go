package filter

import (
	"errors"
	"fmt"
	"regexp"
)

// criteria are the pattern fields shared by suppression elements.
// A nil pattern or empty module id is unset and matches anything.
type criteria struct {
	files    *regexp.Regexp
	checks   *regexp.Regexp
	message  *regexp.Regexp
	moduleID string

	filesSrc, checksSrc, messageSrc string
}

func newCriteria(files, checks, message, moduleID string) (criteria, error) {
	c := criteria{
		moduleID:   moduleID,
		filesSrc:   files,
		checksSrc:  checks,
		messageSrc: message,
	}
	var err error
	if c.files, err = CompilePattern("files", files); err != nil {
		return c, err
	}
	if c.checks, err = CompilePattern("checks", checks); err != nil {
		return c, err
	}
	if c.message, err = CompilePattern("message", message); err != nil {
		return c, err
	}
	return c, nil
}

// matches applies the file, check, message and module id criteria.
// Patterns use find semantics: a match anywhere in the subject counts.
func (c *criteria) matches(ev *Event) bool {
	if !ev.HasViolation() {
		return false
	}
	v := ev.Violation
	if c.files != nil && !c.files.MatchString(ev.File) {
		return false
	}
	if c.checks != nil && !c.checks.MatchString(v.RuleCode) {
		return false
	}
	if c.message != nil && !c.message.MatchString(v.Message) {
		return false
	}
	if c.moduleID != "" && c.moduleID != v.ModuleID {
		return false
	}
	return true
}

func (c *criteria) key() string {
	return fmt.Sprintf("files=%q checks=%q message=%q id=%q",
		c.filesSrc, c.checksSrc, c.messageSrc, c.moduleID)
}

// SuppressElement suppresses violations matching every configured criterion.
//
// Accept returns false to suppress. Events without a violation or without a
// file name are always accepted.
type SuppressElement struct {
	criteria

	lines   *IntervalFilter
	columns *IntervalFilter
}

// NewSuppressElement compiles a pattern suppression. Empty arguments are
// unset. At least one of files, checks, message or moduleID should be set;
// an element with none matches every violation.
func NewSuppressElement(files, checks, message, moduleID, lines, columns string) (*SuppressElement, error) {
	c, err := newCriteria(files, checks, message, moduleID)
	if err != nil {
		return nil, err
	}
	e := &SuppressElement{criteria: c}
	if lines != "" {
		if e.lines, err = ParseInterval(lines); err != nil {
			return nil, withSource(err, "lines")
		}
	}
	if columns != "" {
		if e.columns, err = ParseInterval(columns); err != nil {
			return nil, withSource(err, "columns")
		}
	}
	return e, nil
}

func withSource(err error, source string) error {
	var ce *ConfigError
	if errors.As(err, &ce) && ce.Source == "" {
		ce.Source = source
	}
	return err
}

// Accept implements Predicate. It returns false when the element suppresses ev.
func (e *SuppressElement) Accept(ev *Event) bool {
	return !e.Matches(ev)
}

// Matches reports whether e suppresses ev.
func (e *SuppressElement) Matches(ev *Event) bool {
	if !e.criteria.matches(ev) {
		return false
	}
	v := ev.Violation
	if e.lines != nil && !e.lines.Accept(v.Line()) {
		return false
	}
	if e.columns != nil && !e.columns.Accept(v.Column()) {
		return false
	}
	return true
}

// Key identifies the element by its construction parameters.
func (e *SuppressElement) Key() string {
	return fmt.Sprintf("suppress{%s lines=%q columns=%q}",
		e.criteria.key(), intervalKey(e.lines), intervalKey(e.columns))
}

// Equal reports whether both elements were built from the same parameters.
func (e *SuppressElement) Equal(other *SuppressElement) bool {
	return other != nil && e.Key() == other.Key()
}

func intervalKey(f *IntervalFilter) string {
	if f == nil {
		return ""
	}
	return f.Key()
}

// Files returns the file pattern, or "" when unset.
func (e *SuppressElement) Files() string { return e.filesSrc }

// Checks returns the check pattern, or "" when unset.
func (e *SuppressElement) Checks() string { return e.checksSrc }

// Message returns the message pattern, or "" when unset.
func (e *SuppressElement) Message() string { return e.messageSrc }

// ModuleID returns the module id, or "" when unset.
func (e *SuppressElement) ModuleID() string { return e.moduleID }

// Lines returns the line interval spec, or "" when unset.
func (e *SuppressElement) Lines() string {
	if e.lines == nil {
		return ""
	}
	return e.lines.String()
}

// Columns returns the column interval spec, or "" when unset.
func (e *SuppressElement) Columns() string {
	if e.columns == nil {
		return ""
	}
	return e.columns.String()
}
