package directive

import (
	"regexp"

	"github.com/wharflab/javalint/internal/filter"
	"github.com/wharflab/javalint/internal/syntax"
)

// CommentOptions configures a CommentFilter.
type CommentOptions struct {
	// OffFormat matches comments that start a suppression.
	OffFormat string `koanf:"off-format"`
	// OnFormat matches comments that end a suppression.
	OnFormat string `koanf:"on-format"`
	// CheckFormat is matched against the rule code. Supports $n placeholders.
	CheckFormat string `koanf:"check-format"`
	// MessageFormat is matched against the message when set.
	MessageFormat string `koanf:"message-format"`
	// IDFormat is matched against the module id when set.
	IDFormat string `koanf:"id-format"`

	CheckLineComments  bool `koanf:"check-line-comments"`
	CheckBlockComments bool `koanf:"check-block-comments"`
}

// DefaultCommentOptions returns the conventional CHECKSTYLE:OFF/ON markers.
func DefaultCommentOptions() CommentOptions {
	return CommentOptions{
		OffFormat:          "CHECKSTYLE:OFF",
		OnFormat:           "CHECKSTYLE:ON",
		CheckFormat:        ".*",
		CheckLineComments:  true,
		CheckBlockComments: true,
	}
}

// CommentFilter suppresses violations between OFF and ON marker comments.
type CommentFilter struct {
	opts    CommentOptions
	off, on *regexp.Regexp
	formats scopeFormats
	cache   fileCache[markerSet]
}

// NewCommentFilter compiles the marker patterns.
func NewCommentFilter(opts CommentOptions) (*CommentFilter, error) {
	off, err := compileMarker("off-format", opts.OffFormat)
	if err != nil {
		return nil, err
	}
	on, err := compileMarker("on-format", opts.OnFormat)
	if err != nil {
		return nil, err
	}
	return &CommentFilter{
		opts:    opts,
		off:     off,
		on:      on,
		formats: scopeFormats{check: opts.CheckFormat, message: opts.MessageFormat, id: opts.IDFormat},
	}, nil
}

// Clone returns a filter with the same configuration and an empty cache.
func (f *CommentFilter) Clone() *CommentFilter {
	return &CommentFilter{opts: f.opts, off: f.off, on: f.on, formats: f.formats}
}

// Accept implements filter.Filter.
func (f *CommentFilter) Accept(ev *filter.Event) (bool, error) {
	if !ev.HasViolation() {
		return true, nil
	}
	if ev.Tree == nil {
		return false, &filter.StateError{Resource: ev.File, Reason: "no syntax tree for comment scanning"}
	}
	markers, err := f.cache.get(ev.File, func() (markerSet, error) {
		return f.scan(ev.File, ev.Tree)
	})
	if err != nil {
		return false, err
	}
	return !markers.suppresses(ev.Violation), nil
}

// Markers returns the OFF and ON markers of a parsed file in the order they
// take effect.
func (f *CommentFilter) Markers(tree *syntax.Tree) ([]Marker, error) {
	return f.scan(tree.File, tree)
}

func (f *CommentFilter) scan(file string, tree *syntax.Tree) (markerSet, error) {
	var markers []Marker
	err := eachCommentLine(tree, f.opts.CheckLineComments, f.opts.CheckBlockComments, func(l syntax.CommentLine) error {
		re := f.off
		if !re.MatchString(l.Text) {
			re = f.on
			if !re.MatchString(l.Text) {
				return nil
			}
		}
		scope, err := f.formats.expand(l.Text, re, lineSource(file, l.Line))
		if err != nil {
			return err
		}
		markers = append(markers, Marker{Off: re == f.off, Line: l.Line, Column: l.Column, Scope: scope, Text: l.Text})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return newMarkerSet(markers), nil
}

func eachCommentLine(tree *syntax.Tree, lineComments, blockComments bool, fn func(syntax.CommentLine) error) error {
	for _, c := range tree.Comments() {
		if (c.Block && !blockComments) || (!c.Block && !lineComments) {
			continue
		}
		for _, l := range c.Lines() {
			if err := fn(l); err != nil {
				return err
			}
		}
	}
	return nil
}
