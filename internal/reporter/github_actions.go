package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/wharflab/javalint/internal/rules"
)

// GitHubActionsReporter formats violations as GitHub Actions workflow commands.
// These commands appear as annotations in the GitHub Actions UI.
//
// Format: ::{level} file={file},line={line},col={col}::{message}
//
// See: https://docs.github.com/actions/using-workflows/workflow-commands-for-github-actions#setting-an-error-message
type GitHubActionsReporter struct {
	writer io.Writer
}

// NewGitHubActionsReporter creates a new GitHub Actions reporter.
func NewGitHubActionsReporter(w io.Writer) *GitHubActionsReporter {
	return &GitHubActionsReporter{writer: w}
}

// Report implements Reporter.
func (r *GitHubActionsReporter) Report(violations []rules.Violation, _ map[string][]byte, _ ReportMetadata) error {
	for _, g := range groupByFile(violations) {
		for _, v := range g.violations {
			parts := []string{"file=" + escapeGitHubProperty(g.file)}
			if !v.Location.IsFileLevel() {
				parts = append(parts, fmt.Sprintf("line=%d", v.Line()))
				if v.Location.HasColumn() {
					parts = append(parts, fmt.Sprintf("col=%d", v.Column()+1))
				}
				if !v.Location.IsPointLocation() && v.Location.End.Line > v.Location.Start.Line {
					parts = append(parts, fmt.Sprintf("endLine=%d", v.Location.End.Line))
				}
			}
			parts = append(parts, "title="+escapeGitHubProperty(v.RuleCode))

			if _, err := fmt.Fprintf(r.writer, "::%s %s::%s\n",
				severityToGitHubLevel(v.Severity),
				strings.Join(parts, ","),
				escapeGitHubMessage(v.Message),
			); err != nil {
				return err
			}
		}
	}
	return nil
}

// GitHub Actions annotation levels.
const (
	ghLevelError   = "error"
	ghLevelWarning = "warning"
	ghLevelNotice  = "notice"
)

// severityToGitHubLevel maps our Severity to GitHub Actions levels.
func severityToGitHubLevel(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return ghLevelError
	case rules.SeverityInfo:
		return ghLevelNotice
	default:
		return ghLevelWarning
	}
}

// escapeGitHubMessage escapes special characters in GitHub Actions workflow command messages.
// Messages use escapeData() rules which escape "%", "\r", "\n" but NOT ":" or ",".
// See: https://github.com/actions/toolkit/blob/main/packages/core/src/command.ts
func escapeGitHubMessage(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// escapeGitHubProperty escapes special characters in GitHub Actions workflow command properties.
// Properties (file, title, etc.) use escapeProperty() rules which escape "%", "\r", "\n", ":", and ",".
// See: https://github.com/actions/toolkit/blob/main/packages/core/src/command.ts
func escapeGitHubProperty(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	s = strings.ReplaceAll(s, ":", "%3A")
	s = strings.ReplaceAll(s, ",", "%2C")
	return s
}
