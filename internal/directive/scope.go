package directive

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wharflab/javalint/internal/filter"
)

// scopeFormats are the check, message and id templates of a filter.
// Empty message and id formats leave the criterion unset.
type scopeFormats struct {
	check   string
	message string
	id      string
}

// expand builds the scope of a marker whose text matched marker.
func (f scopeFormats) expand(text string, marker *regexp.Regexp, source string) (Scope, error) {
	var s Scope
	var err error
	if s.Check, err = compileScope(f.check, text, marker, source); err != nil {
		return s, err
	}
	if f.message != "" {
		if s.Message, err = compileScope(f.message, text, marker, source); err != nil {
			return s, err
		}
	}
	if f.id != "" {
		if s.ID, err = compileScope(f.id, text, marker, source); err != nil {
			return s, err
		}
	}
	return s, nil
}

func compileScope(template, text string, marker *regexp.Regexp, source string) (*regexp.Regexp, error) {
	re, err := filter.CompileTemplate(template, text, marker)
	if err != nil {
		return nil, located(err, source)
	}
	return re, nil
}

// parseOffset expands format with the marker groups and parses it as a signed
// line offset.
func parseOffset(format, what, text string, marker *regexp.Regexp, source string) (int, error) {
	expanded := filter.ExpandTemplate(format, text, marker)
	n, err := strconv.Atoi(strings.TrimSpace(expanded))
	if err != nil {
		return 0, &filter.ConfigError{
			Source: source,
			Text:   text,
			Reason: fmt.Sprintf("unable to parse %s with format %q", what, format),
			Err:    err,
		}
	}
	return n, nil
}

func located(err error, source string) error {
	var ce *filter.ConfigError
	if errors.As(err, &ce) && ce.Source == "" {
		ce.Source = source
	}
	return err
}

func lineSource(file string, line int) string {
	return file + ":" + strconv.Itoa(line)
}

func compileMarker(name, pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &filter.ConfigError{
			Source: name,
			Text:   pattern,
			Reason: "failed to initialise regular expression",
			Err:    err,
		}
	}
	return re, nil
}
