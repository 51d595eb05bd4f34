package filter

import (
	"strconv"
	"strings"
)

// IntRange is a closed integer interval [Lo, Hi].
type IntRange struct {
	Lo, Hi int
}

// Matches reports whether n lies within the range.
func (r IntRange) Matches(n int) bool {
	return r.Lo <= n && n <= r.Hi
}

// Key returns "n" for single values and "lo-hi" otherwise.
func (r IntRange) Key() string {
	if r.Lo == r.Hi {
		return strconv.Itoa(r.Lo)
	}
	return strconv.Itoa(r.Lo) + "-" + strconv.Itoa(r.Hi)
}

// IntervalFilter accepts integers listed in a comma-separated spec such as
// "1-10, 15, 20-25". Negative bounds are allowed ("-5--1").
type IntervalFilter struct {
	spec   string
	ranges []IntRange
	set    FilterSet[int]
}

// ParseInterval parses a comma-separated list of values and inclusive ranges.
// Empty tokens are skipped; an empty spec yields a filter accepting nothing.
func ParseInterval(spec string) (*IntervalFilter, error) {
	f := &IntervalFilter{spec: spec}
	for tok := range strings.SplitSeq(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		r, err := parseRange(tok)
		if err != nil {
			return nil, &ConfigError{Text: spec, Reason: "invalid interval list", Err: err}
		}
		if f.set.Add(r) {
			f.ranges = append(f.ranges, r)
		}
	}
	return f, nil
}

func parseRange(tok string) (IntRange, error) {
	// The separator is the first '-' that is not a leading sign.
	for i := 1; i < len(tok); i++ {
		if tok[i] != '-' {
			continue
		}
		lo, err := strconv.Atoi(strings.TrimSpace(tok[:i]))
		if err != nil {
			return IntRange{}, err
		}
		hi, err := strconv.Atoi(strings.TrimSpace(tok[i+1:]))
		if err != nil {
			return IntRange{}, err
		}
		return IntRange{Lo: lo, Hi: hi}, nil
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return IntRange{}, err
	}
	return IntRange{Lo: n, Hi: n}, nil
}

// Accept reports whether n is covered by any listed value or range.
func (f *IntervalFilter) Accept(n int) bool {
	return f.set.Accept(n)
}

// Ranges returns the parsed ranges in declaration order.
func (f *IntervalFilter) Ranges() []IntRange {
	out := make([]IntRange, len(f.ranges))
	copy(out, f.ranges)
	return out
}

// Key is the canonical form of the parsed ranges.
func (f *IntervalFilter) Key() string {
	parts := make([]string, len(f.ranges))
	for i, r := range f.ranges {
		parts[i] = r.Key()
	}
	return strings.Join(parts, ",")
}

// Equal reports whether both filters were built from the same ranges.
func (f *IntervalFilter) Equal(other *IntervalFilter) bool {
	if f == nil || other == nil {
		return f == other
	}
	return f.set.Equal(&other.set)
}

// String returns the spec the filter was parsed from.
func (f *IntervalFilter) String() string {
	return f.spec
}
