package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/wharflab/javalint/internal/rules"
	"github.com/wharflab/javalint/internal/sourcemap"
)

var (
	fileLocStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	ruleCodeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	urlStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true)
	lineNumStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	markerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	severityStyles = map[rules.Severity]lipgloss.Style{
		rules.SeverityError:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		rules.SeverityWarning: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		rules.SeverityInfo:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	}
)

// severityLabels are the bracketed tags of the audit-style text format.
var severityLabels = map[rules.Severity]string{
	rules.SeverityError:   "ERROR",
	rules.SeverityWarning: "WARN",
	rules.SeverityInfo:    "INFO",
}

// TextOptions configures the text reporter output.
type TextOptions struct {
	// Color enables/disables colored output. Nil auto-detects from the writer
	// and the NO_COLOR / CLICOLOR_FORCE environment.
	Color *bool

	// ShowSource prints the affected lines under each violation.
	ShowSource bool

	// ContextLines is the number of lines shown around a point violation.
	ContextLines int
}

// DefaultTextOptions returns sensible defaults for text output.
func DefaultTextOptions() TextOptions {
	return TextOptions{ShowSource: true, ContextLines: 2}
}

// TextReporter prints one line per violation in the form
//
//	[WARN] src/App.java:4:7: name "Bad" must match pattern "^[a-z][a-zA-Z0-9]*$" [MemberName]
//
// optionally followed by a source excerpt.
type TextReporter struct {
	opts TextOptions
}

// NewTextReporter creates a new text reporter with the given options.
func NewTextReporter(opts TextOptions) *TextReporter {
	return &TextReporter{opts: opts}
}

// colorEnabled resolves the Color option for w.
func (r *TextReporter) colorEnabled(w io.Writer) bool {
	if r.opts.Color != nil {
		return *r.opts.Color
	}
	if termenv.EnvColorProfile() == termenv.Ascii {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Print writes violations to w in report order.
func (r *TextReporter) Print(w io.Writer, violations []rules.Violation, sources map[string][]byte) error {
	color := r.colorEnabled(w)
	smaps := make(map[string]*sourcemap.SourceMap)

	for _, v := range SortViolations(violations) {
		if _, err := fmt.Fprintln(w, r.headline(v, color)); err != nil {
			return err
		}
		if !r.opts.ShowSource || v.Location.IsFileLevel() {
			continue
		}
		sm, ok := smaps[v.File()]
		if !ok {
			if src := sources[v.File()]; len(src) > 0 {
				sm = sourcemap.New(src)
			}
			smaps[v.File()] = sm
		}
		if sm != nil {
			if err := r.printSource(w, v.Location, sm, color); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *TextReporter) headline(v rules.Violation, color bool) string {
	label, ok := severityLabels[v.Severity]
	if !ok {
		label = strings.ToUpper(v.Severity.String())
	}
	loc := formatPosition(v)
	code := v.RuleCode
	if v.ModuleID != "" {
		code += ":" + v.ModuleID
	}

	if !color {
		return fmt.Sprintf("[%s] %s: %s [%s]", label, loc, v.Message, code)
	}
	style, ok := severityStyles[v.Severity]
	if !ok {
		style = severityStyles[rules.SeverityWarning]
	}
	line := fmt.Sprintf("%s %s: %s %s",
		style.Render("["+label+"]"),
		fileLocStyle.Render(loc),
		v.Message,
		ruleCodeStyle.Render("["+code+"]"))
	if v.DocURL != "" {
		line += " " + urlStyle.Render(v.DocURL)
	}
	return line
}

// formatPosition renders file:line:col with a 1-based column, omitting what is unknown.
func formatPosition(v rules.Violation) string {
	switch {
	case v.Location.IsFileLevel():
		return v.File()
	case v.Location.HasColumn():
		return fmt.Sprintf("%s:%d:%d", v.File(), v.Line(), v.Column()+1)
	default:
		return fmt.Sprintf("%s:%d", v.File(), v.Line())
	}
}

func (r *TextReporter) printSource(w io.Writer, loc rules.Location, sm *sourcemap.SourceMap, color bool) error {
	start := loc.Start.Line
	end := start
	if !loc.IsPointLocation() && loc.End.Line > start {
		end = loc.End.Line
	}
	if start < 1 || start > sm.LineCount() {
		return nil
	}
	first := max(1, start-r.opts.ContextLines)
	last := min(sm.LineCount(), end+r.opts.ContextLines)

	sep := "    --------"
	if color {
		sep = separatorStyle.Render("    ────────")
	}
	var b strings.Builder
	for n := first; n <= last; n++ {
		num := fmt.Sprintf("%5d |", n)
		marker := "  "
		if n >= start && n <= end {
			marker = "> "
		}
		if color {
			num = lineNumStyle.Render(fmt.Sprintf("%5d │", n))
			if marker != "  " {
				marker = markerStyle.Render(marker)
			}
		}
		fmt.Fprintf(&b, "%s %s%s\n", num, marker, sm.Line(n-1))
	}
	_, err := fmt.Fprintf(w, "%s\n%s%s\n", sep, b.String(), sep)
	return err
}
