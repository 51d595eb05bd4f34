package reporter

import (
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/wharflab/javalint/internal/rules"
)

// JSONOutput is the top-level structure for JSON output.
type JSONOutput struct {
	// Files contains results grouped by file.
	Files []FileResult `json:"files"`
	// Summary contains aggregate statistics.
	Summary Summary `json:"summary"`
	// FilesScanned is the total number of files scanned.
	FilesScanned int `json:"files_scanned"`
	// RulesEnabled is the total number of rules that ran.
	RulesEnabled int `json:"rules_enabled"`
}

// FileResult contains the linting results for a single file.
type FileResult struct {
	File       string            `json:"file"`
	Violations []rules.Violation `json:"violations"`
}

// Summary contains aggregate statistics about violations.
type Summary struct {
	Total    int `json:"total"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Info     int `json:"info"`
	Files    int `json:"files"`
}

// JSONReporter formats violations as JSON output.
type JSONReporter struct {
	writer io.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{writer: w}
}

// Report implements Reporter.
func (r *JSONReporter) Report(violations []rules.Violation, _ map[string][]byte, metadata ReportMetadata) error {
	groups := groupByFile(violations)

	output := JSONOutput{
		Files:        make([]FileResult, 0, len(groups)),
		Summary:      calculateSummary(violations, len(groups)),
		FilesScanned: metadata.FilesScanned,
		RulesEnabled: metadata.RulesEnabled,
	}
	for _, g := range groups {
		output.Files = append(output.Files, FileResult{File: g.file, Violations: g.violations})
	}

	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

type fileGroup struct {
	file       string
	violations []rules.Violation
}

// groupByFile sorts violations and groups them by slash-separated file path.
func groupByFile(violations []rules.Violation) []fileGroup {
	var groups []fileGroup
	index := make(map[string]int)
	for _, v := range SortViolations(violations) {
		v.Location.File = filepath.ToSlash(v.Location.File)
		i, ok := index[v.Location.File]
		if !ok {
			i = len(groups)
			index[v.Location.File] = i
			groups = append(groups, fileGroup{file: v.Location.File})
		}
		groups[i].violations = append(groups[i].violations, v)
	}
	return groups
}

// calculateSummary computes aggregate statistics from violations.
func calculateSummary(violations []rules.Violation, fileCount int) Summary {
	summary := Summary{
		Total: len(violations),
		Files: fileCount,
	}
	for _, v := range violations {
		switch v.Severity {
		case rules.SeverityError:
			summary.Errors++
		case rules.SeverityWarning:
			summary.Warnings++
		case rules.SeverityInfo:
			summary.Info++
		case rules.SeverityIgnore:
			// Dropped by EnableFilter before reporting.
		}
	}
	return summary
}
