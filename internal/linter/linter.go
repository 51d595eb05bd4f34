// Package linter provides the lint pipeline used by the CLI.
//
// The pipeline: read and validate → parse → rule execution → per-file
// processor chain (including suppression filters) → merged, sorted report.
// [LintFile] produces raw violations for a single file; [Run] drives the whole
// pipeline over many files concurrently.
package linter

import (
	"context"
	"fmt"

	"github.com/wharflab/javalint/internal/config"
	"github.com/wharflab/javalint/internal/fileval"
	"github.com/wharflab/javalint/internal/logging"
	"github.com/wharflab/javalint/internal/rules"
	_ "github.com/wharflab/javalint/internal/rules/all" // Register all rules.
	"github.com/wharflab/javalint/internal/syntax"
)

// Input configures a single invocation of [LintFile].
type Input struct {
	// FilePath is used for violation locations and, when Content is nil, for reading.
	FilePath string

	// Content is the file content to lint. If nil, LintFile reads from FilePath.
	Content []byte

	// Config is the resolved configuration. If nil, LintFile loads from FilePath.
	Config *config.Config

	// Registry supplies the rules. Nil means the default registry.
	Registry *rules.Registry
}

// Result contains the output of [LintFile].
type Result struct {
	// Violations are raw violations before processor filtering.
	Violations []rules.Violation

	// Tree is the parsed file. The caller owns it and must Close it.
	Tree *syntax.Tree

	// Source is the linted content.
	Source []byte

	// Config is the resolved config (loaded or passed in via Input).
	Config *config.Config
}

// LintFile parses one file and runs every enabled rule on it.
// It returns raw violations before processor filtering.
func LintFile(ctx context.Context, input Input) (*Result, error) {
	cfg := input.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(input.FilePath); err != nil {
			return nil, err
		}
	}
	registry := input.Registry
	if registry == nil {
		registry = rules.DefaultRegistry()
	}

	content := input.Content
	var err error
	if content == nil {
		content, err = fileval.ReadFile(input.FilePath, cfg.FileValidation.MaxFileSize)
	} else {
		content, err = fileval.Validate(input.FilePath, content)
	}
	if err != nil {
		return nil, err
	}

	tree, err := syntax.Parse(ctx, input.FilePath, content)
	if err != nil {
		return nil, err
	}
	if tree.HasErrors() {
		logging.For("linter").WithField("file", input.FilePath).Debug("parsed with syntax errors")
	}

	var violations []rules.Violation
	for _, rule := range EnabledRules(cfg, registry) {
		if err := ctx.Err(); err != nil {
			tree.Close()
			return nil, err
		}
		code := rule.Metadata().Code
		found, err := runRule(rule, rules.LintInput{
			File:   input.FilePath,
			Tree:   tree,
			Source: content,
			Config: cfg.Rules.GetOptions(code),
		})
		if err != nil {
			tree.Close()
			return nil, err
		}
		violations = append(violations, found...)
	}

	return &Result{
		Violations: violations,
		Tree:       tree,
		Source:     content,
		Config:     cfg,
	}, nil
}

// runRule turns a panicking rule into an error naming the rule.
func runRule(rule rules.Rule, input rules.LintInput) (violations []rules.Violation, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rule %s panicked on %s: %v", rule.Metadata().Code, input.File, r)
		}
	}()
	return rule.Check(input), nil
}
