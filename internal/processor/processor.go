// Package processor provides a composable violation processing pipeline.
//
// Violations flow through a sequence of processors, each transforming
// the slice (filtering, modifying, or augmenting).
//
// Standard pipeline order:
//  1. PathNormalization - Cross-platform path consistency
//  2. ModuleIDAssignment - Stamp configured module ids
//  3. SeverityOverride - Apply config severity overrides
//  4. EnableFilter - Remove violations for disabled rules
//  5. PathExclusionFilter - Remove per-rule path exclusions
//  6. SuppressionFilter - Run the configured suppression filters
//  7. Deduplication - Remove duplicate violations
//  8. Sorting - Stable output ordering
//  9. SnippetAttachment - Populate SourceCode field
package processor

import (
	"path/filepath"

	"github.com/wharflab/javalint/internal/config"
	"github.com/wharflab/javalint/internal/filter"
	"github.com/wharflab/javalint/internal/rules"
	"github.com/wharflab/javalint/internal/sourcemap"
	"github.com/wharflab/javalint/internal/syntax"
)

// Processor transforms a slice of violations.
// Implementations should be stateless where possible, using Context for shared state.
type Processor interface {
	// Name returns the processor's identifier (for debugging/logging).
	Name() string

	// Process applies the processor's logic to violations.
	// Returns the transformed slice (may be same, filtered, or modified).
	// Must not modify the input slice; return a new slice if filtering.
	Process(violations []rules.Violation, ctx *Context) ([]rules.Violation, error)
}

// Context provides shared state for processors.
// Populated once before running the chain, then passed to each processor.
// A Context is not safe for concurrent use; the linter builds one per file.
type Context struct {
	// Config is the loaded configuration.
	Config *config.Config

	// Registry provides rule metadata. Nil means the default registry.
	Registry *rules.Registry

	// Filters decides which violations survive SuppressionFilter.
	// Nil accepts everything.
	Filters filter.Filter

	// FileSources maps file paths to their raw source content.
	// Used by SnippetAttachment for extracting source code.
	FileSources map[string][]byte

	trees      map[string]*syntax.Tree
	sourceMaps map[string]*sourcemap.SourceMap
}

// NewContext creates a new processor context.
func NewContext(cfg *config.Config, fileSources map[string][]byte) *Context {
	if cfg == nil {
		cfg = config.Default()
	}
	sources := make(map[string][]byte, len(fileSources))
	for file, src := range fileSources {
		sources[filepath.ToSlash(file)] = src
	}
	return &Context{
		Config:      cfg,
		FileSources: sources,
		trees:       make(map[string]*syntax.Tree),
		sourceMaps:  make(map[string]*sourcemap.SourceMap),
	}
}

// WithTree records the parsed tree of a file for structural and comment filters.
func (ctx *Context) WithTree(tree *syntax.Tree) *Context {
	ctx.trees[filepath.ToSlash(tree.File)] = tree
	return ctx
}

// WithFilters sets the suppression filters.
func (ctx *Context) WithFilters(f filter.Filter) *Context {
	ctx.Filters = f
	return ctx
}

// Tree returns the parsed tree of file, or nil.
func (ctx *Context) Tree(file string) *syntax.Tree {
	return ctx.trees[filepath.ToSlash(file)]
}

func (ctx *Context) registry() *rules.Registry {
	if ctx.Registry != nil {
		return ctx.Registry
	}
	return rules.DefaultRegistry()
}

// GetSourceMap returns or creates a SourceMap for the given file.
// Returns nil if the file is not in FileSources.
func (ctx *Context) GetSourceMap(file string) *sourcemap.SourceMap {
	file = filepath.ToSlash(file)
	if sm, ok := ctx.sourceMaps[file]; ok {
		return sm
	}
	source, ok := ctx.FileSources[file]
	if !ok {
		return nil
	}
	sm := sourcemap.New(source)
	ctx.sourceMaps[file] = sm
	return sm
}

// Chain runs processors in sequence.
type Chain struct {
	processors []Processor
}

// NewChain creates a new processor chain.
func NewChain(processors ...Processor) *Chain {
	return &Chain{processors: processors}
}

// Process runs all processors in sequence. The first error stops the chain.
func (c *Chain) Process(violations []rules.Violation, ctx *Context) ([]rules.Violation, error) {
	for _, p := range c.processors {
		var err error
		violations, err = p.Process(violations, ctx)
		if err != nil {
			return nil, err
		}
	}
	return violations, nil
}

// filterViolations is a helper for processors that filter violations.
// It returns a new slice containing only violations where keep() returns true.
func filterViolations(violations []rules.Violation, keep func(v rules.Violation) bool) []rules.Violation {
	result := make([]rules.Violation, 0, len(violations))
	for _, v := range violations {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}

// transformViolations is a helper for processors that modify violations.
// It returns a new slice with each violation transformed by transform().
func transformViolations(
	violations []rules.Violation,
	transform func(v rules.Violation) rules.Violation,
) []rules.Violation {
	result := make([]rules.Violation, len(violations))
	for i, v := range violations {
		result[i] = transform(v)
	}
	return result
}
