package directive

import (
	"regexp"

	"github.com/wharflab/javalint/internal/filter"
	"github.com/wharflab/javalint/internal/syntax"
)

// NearbyOptions configures a NearbyCommentFilter.
type NearbyOptions struct {
	// CommentFormat matches marker comments.
	CommentFormat string `koanf:"comment-format"`
	// CheckFormat is matched against the rule code. Supports $n placeholders.
	CheckFormat string `koanf:"check-format"`
	// MessageFormat is matched against the message when set.
	MessageFormat string `koanf:"message-format"`
	// IDFormat is matched against the module id when set.
	IDFormat string `koanf:"id-format"`
	// InfluenceFormat expands to the signed number of lines the marker covers.
	InfluenceFormat string `koanf:"influence-format"`

	CheckLineComments  bool `koanf:"check-line-comments"`
	CheckBlockComments bool `koanf:"check-block-comments"`
}

// DefaultNearbyOptions returns options recognising "SUPPRESS CHECKSTYLE <check>"
// for the comment's own line.
func DefaultNearbyOptions() NearbyOptions {
	return NearbyOptions{
		CommentFormat:      `SUPPRESS CHECKSTYLE (\w+)`,
		CheckFormat:        ".*",
		InfluenceFormat:    "0",
		CheckLineComments:  true,
		CheckBlockComments: true,
	}
}

// NearbyCommentFilter suppresses violations on lines near a marker comment.
// An influence of n >= 1 covers the marker line and the n lines after it;
// 0 covers the marker line only; a negative n covers the |n| lines before it.
type NearbyCommentFilter struct {
	opts    NearbyOptions
	comment *regexp.Regexp
	formats scopeFormats
	cache   fileCache[[]Window]
}

// NewNearbyCommentFilter compiles the marker pattern.
func NewNearbyCommentFilter(opts NearbyOptions) (*NearbyCommentFilter, error) {
	comment, err := compileMarker("comment-format", opts.CommentFormat)
	if err != nil {
		return nil, err
	}
	return &NearbyCommentFilter{
		opts:    opts,
		comment: comment,
		formats: scopeFormats{check: opts.CheckFormat, message: opts.MessageFormat, id: opts.IDFormat},
	}, nil
}

// Clone returns a filter with the same configuration and an empty cache.
func (f *NearbyCommentFilter) Clone() *NearbyCommentFilter {
	return &NearbyCommentFilter{opts: f.opts, comment: f.comment, formats: f.formats}
}

// Accept implements filter.Filter.
func (f *NearbyCommentFilter) Accept(ev *filter.Event) (bool, error) {
	if !ev.HasViolation() {
		return true, nil
	}
	if ev.Tree == nil {
		return false, &filter.StateError{Resource: ev.File, Reason: "no syntax tree for comment scanning"}
	}
	windows, err := f.cache.get(ev.File, func() ([]Window, error) {
		return f.scan(ev.File, ev.Tree)
	})
	if err != nil {
		return false, err
	}
	return !suppressed(windows, ev.Violation), nil
}

// Windows returns the suppression windows of a parsed file.
func (f *NearbyCommentFilter) Windows(tree *syntax.Tree) ([]Window, error) {
	return f.scan(tree.File, tree)
}

func (f *NearbyCommentFilter) scan(file string, tree *syntax.Tree) ([]Window, error) {
	windows := []Window{}
	err := eachCommentLine(tree, f.opts.CheckLineComments, f.opts.CheckBlockComments, func(l syntax.CommentLine) error {
		if !f.comment.MatchString(l.Text) {
			return nil
		}
		w, err := nearbyMarker(l.Text, l.Line, f.comment, f.formats, f.opts.InfluenceFormat, "influence", lineSource(file, l.Line))
		if err != nil {
			return err
		}
		windows = append(windows, w)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return windows, nil
}

func nearbyMarker(text string, line int, re *regexp.Regexp, formats scopeFormats, offsetFormat, what, source string) (Window, error) {
	scope, err := formats.expand(text, re, source)
	if err != nil {
		return Window{}, err
	}
	offset, err := parseOffset(offsetFormat, what, text, re, source)
	if err != nil {
		return Window{}, err
	}
	start, end := nearbyWindow(line, offset)
	return Window{Start: start, End: end, Scope: scope, Text: text}, nil
}
