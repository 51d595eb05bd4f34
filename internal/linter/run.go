package linter

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/wharflab/javalint/internal/config"
	"github.com/wharflab/javalint/internal/logging"
	"github.com/wharflab/javalint/internal/processor"
	"github.com/wharflab/javalint/internal/reporter"
	"github.com/wharflab/javalint/internal/rules"
)

// RunOptions configures [Run].
type RunOptions struct {
	// Config applies to every file. Nil means config.Default().
	Config *config.Config

	// Filters are the compiled suppression filters. Nil disables suppressions.
	Filters *Filters

	// Registry supplies the rules. Nil means the default registry.
	Registry *rules.Registry

	// Concurrency bounds the files linted at once. Zero means GOMAXPROCS.
	Concurrency int
}

// Report is the merged outcome of a run.
type Report struct {
	// Violations are the processed violations of every file, sorted.
	Violations []rules.Violation

	// Sources maps each linted file (slash-separated) to its content.
	Sources map[string][]byte

	// FilesScanned is the number of files linted.
	FilesScanned int

	// RulesEnabled is the number of rules that ran.
	RulesEnabled int
}

type fileReport struct {
	violations []rules.Violation
	source     []byte
}

// Run lints files concurrently. Each file gets its own processor context and
// filter chain; the first error cancels the remaining files.
func Run(ctx context.Context, files []string, opts RunOptions) (*Report, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	registry := opts.Registry
	if registry == nil {
		registry = rules.DefaultRegistry()
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	reports := make([]fileReport, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, file := range files {
		g.Go(func() error {
			rep, err := lintOne(gctx, file, cfg, registry, opts.Filters)
			if err != nil {
				return fmt.Errorf("failed to lint %s: %w", file, err)
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Report{
		Sources:      make(map[string][]byte, len(files)),
		FilesScanned: len(files),
		RulesEnabled: len(EnabledRules(cfg, registry)),
	}
	for i, rep := range reports {
		out.Violations = append(out.Violations, rep.violations...)
		out.Sources[filepath.ToSlash(files[i])] = rep.source
	}
	out.Violations = reporter.SortViolations(out.Violations)
	return out, nil
}

func lintOne(ctx context.Context, file string, cfg *config.Config, registry *rules.Registry, filters *Filters) (fileReport, error) {
	res, err := LintFile(ctx, Input{FilePath: file, Config: cfg, Registry: registry})
	if err != nil {
		return fileReport{}, err
	}
	defer res.Tree.Close()

	pctx := processor.NewContext(cfg, map[string][]byte{file: res.Source}).
		WithTree(res.Tree).
		WithFilters(filters.ForFile())
	pctx.Registry = registry

	violations, err := CLIProcessors().Process(res.Violations, pctx)
	if err != nil {
		return fileReport{}, err
	}
	logging.For("linter").
		WithField("file", file).
		WithField("raw", len(res.Violations)).
		WithField("reported", len(violations)).
		Debug("file linted")
	return fileReport{violations: violations, source: res.Source}, nil
}
