package filter

import (
	"regexp"
	"strconv"
	"strings"
)

// ExpandTemplate fills "$0".."$n" placeholders in template with the groups of
// the first match of re in text. Group 0 is the whole match; groups that did
// not participate expand to the empty string. Higher indexes are substituted
// first so "$10" is never read as "$1" followed by "0".
//
// When re does not match, template is returned unchanged.
func ExpandTemplate(template, text string, re *regexp.Regexp) string {
	groups := re.FindStringSubmatch(text)
	if groups == nil {
		return template
	}
	result := template
	for i := len(groups) - 1; i >= 0; i-- {
		result = strings.ReplaceAll(result, "$"+strconv.Itoa(i), groups[i])
	}
	return result
}

// CompileTemplate expands template against text and compiles the result.
// A result that is not a valid regular expression is a ConfigError naming text.
func CompileTemplate(template, text string, re *regexp.Regexp) (*regexp.Regexp, error) {
	expanded := ExpandTemplate(template, text, re)
	compiled, err := regexp.Compile(expanded)
	if err != nil {
		return nil, &ConfigError{
			Text:   text,
			Reason: "unable to parse expanded comment " + strconv.Quote(expanded),
			Err:    err,
		}
	}
	return compiled, nil
}

// CompilePattern compiles an optional pattern. An empty pattern yields nil,
// meaning the criterion is unset.
func CompilePattern(source, pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil //nolint:nilnil // nil pattern means "not configured"
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &ConfigError{
			Source: source,
			Text:   pattern,
			Reason: "failed to initialise regular expression",
			Err:    err,
		}
	}
	return re, nil
}
