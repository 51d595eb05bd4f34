package reporter

import (
	"encoding/xml"
	"io"

	"github.com/wharflab/javalint/internal/rules"
)

// checkstyleFormatVersion is the report version attribute CI plugins expect.
const checkstyleFormatVersion = "8.0"

type checkstyleReport struct {
	XMLName xml.Name         `xml:"checkstyle"`
	Version string           `xml:"version,attr"`
	Files   []checkstyleFile `xml:"file"`
}

type checkstyleFile struct {
	Name   string            `xml:"name,attr"`
	Errors []checkstyleError `xml:"error"`
}

type checkstyleError struct {
	Line     int    `xml:"line,attr"`
	Column   int    `xml:"column,attr,omitempty"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:"message,attr"`
	Source   string `xml:"source,attr"`
}

// CheckstyleReporter writes the checkstyle XML report format, understood by
// Jenkins warnings-ng, reviewdog, SonarQube and most Java CI tooling.
type CheckstyleReporter struct {
	writer io.Writer
}

// NewCheckstyleReporter creates a new checkstyle XML reporter.
func NewCheckstyleReporter(w io.Writer) *CheckstyleReporter {
	return &CheckstyleReporter{writer: w}
}

// Report implements Reporter. Every scanned file with violations gets a <file>
// element; source is the rule code, or the module id when one is configured.
func (r *CheckstyleReporter) Report(violations []rules.Violation, _ map[string][]byte, _ ReportMetadata) error {
	report := checkstyleReport{Version: checkstyleFormatVersion}
	for _, g := range groupByFile(violations) {
		f := checkstyleFile{Name: g.file}
		for _, v := range g.violations {
			e := checkstyleError{
				Line:     max(v.Line(), 0),
				Severity: checkstyleSeverity(v.Severity),
				Message:  v.Message,
				Source:   v.RuleCode,
			}
			if v.ModuleID != "" {
				e.Source = v.ModuleID
			}
			if v.Location.HasColumn() {
				e.Column = v.Column() + 1
			}
			f.Errors = append(f.Errors, e)
		}
		report.Files = append(report.Files, f)
	}

	if _, err := io.WriteString(r.writer, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(r.writer)
	enc.Indent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}
	_, err := io.WriteString(r.writer, "\n")
	return err
}

func checkstyleSeverity(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return "error"
	case rules.SeverityInfo:
		return "info"
	default:
		return "warning"
	}
}
