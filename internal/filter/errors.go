package filter

import (
	"fmt"
	"strings"
)

// ConfigError reports filter configuration that cannot be compiled: a bad
// regular expression, interval, influence or structural query. Runs must
// abort on it rather than silently stop suppressing.
type ConfigError struct {
	// Source names where the text came from (a property, document or file:line).
	Source string
	// Text is the offending raw text.
	Text string
	// Reason describes what went wrong.
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	if e.Source != "" {
		b.WriteString(e.Source)
		b.WriteString(": ")
	}
	b.WriteString(e.Reason)
	if e.Text != "" {
		fmt.Fprintf(&b, " in %q", e.Text)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// StateError reports a filter that cannot evaluate an event because a resource
// it depends on is unavailable (a missing syntax tree, an unreadable file).
type StateError struct {
	// Resource names the missing resource.
	Resource string
	// Reason describes what went wrong.
	Reason string
	// Err is the underlying cause, if any.
	Err error
}

func (e *StateError) Error() string {
	msg := e.Reason
	if e.Resource != "" {
		msg += ": " + e.Resource
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StateError) Unwrap() error {
	return e.Err
}
