package processor

import (
	"strings"

	"github.com/wharflab/javalint/internal/rules"
	"github.com/wharflab/javalint/internal/sourcemap"
)

// SnippetAttachment fills Violation.SourceCode with the lines the violation
// points at, so reporters never reopen files.
type SnippetAttachment struct{}

// NewSnippetAttachment creates a new snippet attachment processor.
func NewSnippetAttachment() *SnippetAttachment {
	return &SnippetAttachment{}
}

// Name returns the processor's identifier.
func (p *SnippetAttachment) Name() string {
	return "snippet-attachment"
}

// Process attaches snippets. Violations that already carry one, file-level
// violations and files without a source are left alone.
func (p *SnippetAttachment) Process(violations []rules.Violation, ctx *Context) ([]rules.Violation, error) {
	return transformViolations(violations, func(v rules.Violation) rules.Violation {
		if v.SourceCode != "" || v.Location.IsFileLevel() {
			return v
		}
		if sm := ctx.GetSourceMap(v.File()); sm != nil {
			v.SourceCode = snippetFor(sm, v.Location)
		}
		return v
	}), nil
}

// snippetFor returns the 1-based line span of loc with trailing blanks
// removed. A range ending at column 0 excludes its last line, and spans
// past the end of the file are clamped.
func snippetFor(sm *sourcemap.SourceMap, loc rules.Location) string {
	first := loc.Start.Line
	last := first
	if !loc.IsPointLocation() {
		last = loc.End.Line
		if loc.End.Column == 0 && last > first {
			last--
		}
	}
	last = min(last, sm.LineCount())
	if first < 1 || last < first {
		return ""
	}

	lines := make([]string, 0, last-first+1)
	for line := first; line <= last; line++ {
		lines = append(lines, strings.TrimRight(sm.Line(line-1), " \t"))
	}
	return strings.Join(lines, "\n")
}
