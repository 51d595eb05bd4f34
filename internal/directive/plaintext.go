package directive

import (
	"errors"
	"io/fs"
	"os"
	"regexp"

	"github.com/wharflab/javalint/internal/filter"
	"github.com/wharflab/javalint/internal/sourcemap"
)

// PlainTextOptions configures a PlainTextFilter.
type PlainTextOptions struct {
	// OffFormat matches lines that start a suppression.
	OffFormat string `koanf:"off-format"`
	// OnFormat matches lines that end a suppression.
	OnFormat string `koanf:"on-format"`
	// CheckFormat is matched against the rule code. Supports $n placeholders.
	CheckFormat string `koanf:"check-format"`
	// MessageFormat is matched against the message when set.
	MessageFormat string `koanf:"message-format"`
	// IDFormat is matched against the module id when set.
	IDFormat string `koanf:"id-format"`
}

// DefaultPlainTextOptions returns the conventional "// CHECKSTYLE:OFF/ON" markers.
func DefaultPlainTextOptions() PlainTextOptions {
	return PlainTextOptions{
		OffFormat:   "// CHECKSTYLE:OFF",
		OnFormat:    "// CHECKSTYLE:ON",
		CheckFormat: ".*",
	}
}

// PlainTextFilter suppresses violations between OFF and ON markers matched
// against the raw lines of the file on disk. It needs no syntax tree, so it
// also covers files that are not Java sources.
//
// A line matching both markers counts as OFF.
type PlainTextFilter struct {
	opts    PlainTextOptions
	off, on *regexp.Regexp
	formats scopeFormats
	cache   fileCache[markerSet]
}

// NewPlainTextFilter compiles the marker patterns.
func NewPlainTextFilter(opts PlainTextOptions) (*PlainTextFilter, error) {
	off, err := compileMarker("off-format", opts.OffFormat)
	if err != nil {
		return nil, err
	}
	on, err := compileMarker("on-format", opts.OnFormat)
	if err != nil {
		return nil, err
	}
	return &PlainTextFilter{
		opts:    opts,
		off:     off,
		on:      on,
		formats: scopeFormats{check: opts.CheckFormat, message: opts.MessageFormat, id: opts.IDFormat},
	}, nil
}

// Clone returns a filter with the same configuration and an empty cache.
func (f *PlainTextFilter) Clone() *PlainTextFilter {
	return &PlainTextFilter{opts: f.opts, off: f.off, on: f.on, formats: f.formats}
}

// Accept implements filter.Filter.
func (f *PlainTextFilter) Accept(ev *filter.Event) (bool, error) {
	if !ev.HasViolation() {
		return true, nil
	}
	markers, err := f.cache.get(ev.File, func() (markerSet, error) {
		sm, err := readSource(ev.File)
		if err != nil || sm == nil {
			return nil, err
		}
		return f.scan(ev.File, sm)
	})
	if err != nil {
		return false, err
	}
	return !markers.suppresses(ev.Violation), nil
}

func (f *PlainTextFilter) scan(file string, sm *sourcemap.SourceMap) (markerSet, error) {
	var markers []Marker
	for i, text := range sm.Lines() {
		line := i + 1
		re := f.off
		loc := re.FindStringIndex(text)
		if loc == nil {
			re = f.on
			if loc = re.FindStringIndex(text); loc == nil {
				continue
			}
		}
		scope, err := f.formats.expand(text, re, lineSource(file, line))
		if err != nil {
			return nil, err
		}
		markers = append(markers, Marker{Off: re == f.off, Line: line, Column: loc[0], Scope: scope, Text: text})
	}
	return newMarkerSet(markers), nil
}

// NearbyTextOptions configures a NearbyTextFilter.
type NearbyTextOptions struct {
	// NearbyTextPattern matches marker lines.
	NearbyTextPattern string `koanf:"nearby-text-pattern"`
	// CheckPattern is matched against the rule code. Supports $n placeholders.
	CheckPattern string `koanf:"check-pattern"`
	// MessagePattern is matched against the message when set.
	MessagePattern string `koanf:"message-pattern"`
	// IDPattern is matched against the module id when set.
	IDPattern string `koanf:"id-pattern"`
	// LineRange expands to the signed number of lines the marker covers.
	LineRange string `koanf:"line-range"`
}

// DefaultNearbyTextOptions returns options recognising "SUPPRESS CHECKSTYLE <check>"
// for the marker's own line.
func DefaultNearbyTextOptions() NearbyTextOptions {
	return NearbyTextOptions{
		NearbyTextPattern: `SUPPRESS CHECKSTYLE (\w+)`,
		CheckPattern:      ".*",
		LineRange:         "0",
	}
}

// NearbyTextFilter suppresses violations near raw-text marker lines. A line
// range r on line l covers [min(l, l+r), max(l, l+r)].
type NearbyTextFilter struct {
	opts    NearbyTextOptions
	text    *regexp.Regexp
	formats scopeFormats
	cache   fileCache[[]Window]
}

// NewNearbyTextFilter compiles the marker pattern.
func NewNearbyTextFilter(opts NearbyTextOptions) (*NearbyTextFilter, error) {
	text, err := compileMarker("nearby-text-pattern", opts.NearbyTextPattern)
	if err != nil {
		return nil, err
	}
	return &NearbyTextFilter{
		opts:    opts,
		text:    text,
		formats: scopeFormats{check: opts.CheckPattern, message: opts.MessagePattern, id: opts.IDPattern},
	}, nil
}

// Clone returns a filter with the same configuration and an empty cache.
func (f *NearbyTextFilter) Clone() *NearbyTextFilter {
	return &NearbyTextFilter{opts: f.opts, text: f.text, formats: f.formats}
}

// Accept implements filter.Filter.
func (f *NearbyTextFilter) Accept(ev *filter.Event) (bool, error) {
	if !ev.HasViolation() {
		return true, nil
	}
	windows, err := f.cache.get(ev.File, func() ([]Window, error) {
		sm, err := readSource(ev.File)
		if err != nil || sm == nil {
			return nil, err
		}
		return f.scan(ev.File, sm)
	})
	if err != nil {
		return false, err
	}
	return !suppressed(windows, ev.Violation), nil
}

func (f *NearbyTextFilter) scan(file string, sm *sourcemap.SourceMap) ([]Window, error) {
	windows := []Window{}
	for _, m := range sm.Find(f.text) {
		w, err := nearbyMarker(m.Text, m.Line, f.text, f.formats, f.opts.LineRange, "line range", lineSource(file, m.Line))
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, nil
}

// readSource loads file for line scanning. Directories yield a nil map and no
// error: there is nothing to scan and nothing is suppressed.
func readSource(file string) (*sourcemap.SourceMap, error) {
	info, err := os.Stat(file)
	if err == nil && info.IsDir() {
		return nil, nil //nolint:nilnil // directories have no text
	}
	data, err := os.ReadFile(file)
	if err != nil {
		reason := "cannot read source file"
		if errors.Is(err, fs.ErrNotExist) {
			reason = "source file no longer exists"
		}
		return nil, &filter.StateError{Resource: file, Reason: reason, Err: err}
	}
	return sourcemap.New(data), nil
}
