package linter

import "github.com/wharflab/javalint/internal/processor"

// CLIProcessors returns the per-file processor chain run by the CLI.
// Sorting runs again after files are merged.
func CLIProcessors() *processor.Chain {
	return processor.NewChain(
		processor.NewPathNormalization(),   // Normalize paths for cross-platform consistency
		processor.NewModuleIDAssignment(),  // Stamp configured module ids before filters see them
		processor.NewSeverityOverride(),    // Apply severity overrides (must run before EnableFilter)
		processor.NewEnableFilter(),        // Filter rules with severity="ignore" or excluded
		processor.NewPathExclusionFilter(), // Apply per-rule path exclusions
		processor.NewSuppressionFilter(),   // Apply suppression documents and markers
		processor.NewDeduplication(),       // Remove duplicate violations
		processor.NewSorting(),             // Stable output ordering
		processor.NewSnippetAttachment(),   // Attach source code snippets
	)
}
