package reporter

import (
	"io"
	"slices"

	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/wharflab/javalint/internal/rules"
)

// Default SARIF tool information.
const (
	defaultToolName = "javalint"
	defaultToolURI  = "https://github.com/wharflab/javalint"
)

// SARIFReporter formats violations as SARIF 2.1.0, the format consumed by
// GitHub Code Scanning and Azure DevOps.
//
// See: https://docs.oasis-open.org/sarif/sarif/v2.1.0/
type SARIFReporter struct {
	writer   io.Writer
	toolName string
	toolURI  string
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(w io.Writer, toolName, toolURI string) *SARIFReporter {
	if toolName == "" {
		toolName = defaultToolName
	}
	if toolURI == "" {
		toolURI = defaultToolURI
	}
	return &SARIFReporter{writer: w, toolName: toolName, toolURI: toolURI}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(violations []rules.Violation, _ map[string][]byte, metadata ReportMetadata) error {
	report := sarif.NewReport()

	run := sarif.NewRunWithInformationURI(r.toolName, r.toolURI)
	if metadata.ToolVersion != "" {
		run.Tool.Driver.WithVersion(metadata.ToolVersion)
	}

	groups := groupByFile(violations)

	// Rule descriptors come from the registry; codes are sorted for stable output.
	var codes []string
	for _, g := range groups {
		for _, v := range g.violations {
			if !slices.Contains(codes, v.RuleCode) {
				codes = append(codes, v.RuleCode)
			}
		}
	}
	slices.Sort(codes)
	for _, code := range codes {
		rule := run.AddRule(code)
		if registered := rules.Get(code); registered != nil {
			meta := registered.Metadata()
			if meta.Description != "" {
				rule.WithShortDescription(sarif.NewMultiformatMessageString().WithText(meta.Description))
			}
			if meta.DocURL != "" {
				rule.WithHelpURI(meta.DocURL)
			}
		}
	}

	for _, g := range groups {
		run.AddDistinctArtifact(g.file)
	}

	for _, g := range groups {
		for _, v := range g.violations {
			result := sarif.NewRuleResult(v.RuleCode).
				WithMessage(sarif.NewTextMessage(v.Message)).
				WithLevel(severityToSARIFLevel(v.Severity))

			physical := sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewSimpleArtifactLocation(g.file))
			if !v.Location.IsFileLevel() {
				physical.WithRegion(sarifRegion(v))
			}
			result.WithLocations([]*sarif.Location{sarif.NewLocationWithPhysicalLocation(physical)})
			run.AddResult(result)
		}
	}

	report.AddRun(run)
	return report.PrettyWrite(r.writer)
}

// sarifRegion converts a location to a region with 1-based columns.
func sarifRegion(v rules.Violation) *sarif.Region {
	region := sarif.NewRegion().WithStartLine(v.Location.Start.Line)
	if v.Location.HasColumn() {
		region.WithStartColumn(v.Location.Start.Column + 1)
	}
	if !v.Location.IsPointLocation() && v.Location.End.Line > 0 {
		region.WithEndLine(v.Location.End.Line)
		if v.Location.End.Column >= 0 {
			region.WithEndColumn(v.Location.End.Column + 1)
		}
	}
	if v.SourceCode != "" {
		region.WithSnippet(sarif.NewArtifactContent().WithText(v.SourceCode))
	}
	return region
}

// severityToSARIFLevel maps our Severity to SARIF levels.
func severityToSARIFLevel(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return "error"
	case rules.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
