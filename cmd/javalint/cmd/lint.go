package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wharflab/javalint/internal/config"
	"github.com/wharflab/javalint/internal/discovery"
	"github.com/wharflab/javalint/internal/linter"
	"github.com/wharflab/javalint/internal/logging"
	"github.com/wharflab/javalint/internal/reporter"
	"github.com/wharflab/javalint/internal/rules"
	"github.com/wharflab/javalint/internal/version"
)

// Exit codes
const (
	ExitSuccess     = 0 // No violations (or below fail-level threshold)
	ExitViolations  = 1 // Violations found at or above fail-level
	ExitConfigError = 2 // Parse, config or suppression document error
	ExitNoFiles     = 3 // No Java sources found (missing file, empty glob, empty directory)
)

func lintCommand() *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Aliases:   []string{"check"},
		Usage:     "Lint Java source file(s) for naming issues",
		ArgsUsage: "[FILE|DIR|GLOB...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (default: auto-discover)",
				Sources: cli.EnvVars("JAVALINT_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: " + strings.Join(reporter.Formats(), ", "),
				Sources: cli.EnvVars("JAVALINT_OUTPUT_FORMAT"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output destination: stdout, stderr, or file path",
				Sources: cli.EnvVars("JAVALINT_OUTPUT_PATH"),
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.BoolFlag{
				Name:  "show-source",
				Usage: "Show source code snippets (default: true)",
			},
			&cli.BoolFlag{
				Name:  "hide-source",
				Usage: "Hide source code snippets",
			},
			&cli.StringFlag{
				Name:    "fail-level",
				Usage:   "Minimum severity to cause non-zero exit: error, warning, info, none",
				Sources: cli.EnvVars("JAVALINT_OUTPUT_FAIL_LEVEL"),
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Usage:   "Glob pattern to exclude files (can be repeated)",
				Sources: cli.EnvVars("JAVALINT_EXCLUDE"),
			},
			&cli.StringSliceFlag{
				Name:  "extension",
				Usage: "File extension searched in directories (default: .java, can be repeated)",
			},
			&cli.StringSliceFlag{
				Name:  "select",
				Usage: "Enable rules or categories, e.g. naming/* or MemberName (can be repeated)",
			},
			&cli.StringSliceFlag{
				Name:  "ignore",
				Usage: "Disable rules or categories (can be repeated)",
			},
			&cli.BoolFlag{
				Name:    "no-inline-directives",
				Usage:   "Ignore CHECKSTYLE:OFF/ON and other in-source suppression markers",
				Sources: cli.EnvVars("JAVALINT_NO_INLINE_DIRECTIVES"),
			},
			&cli.IntFlag{
				Name:    "max-file-size",
				Usage:   "Maximum file size in bytes (0 = unlimited)",
				Sources: cli.EnvVars("JAVALINT_FILE_VALIDATION_MAX_FILE_SIZE"),
			},
			&cli.IntFlag{
				Name:  "jobs",
				Usage: "Files linted in parallel (0 = number of CPUs)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log debug diagnostics to stderr",
				Sources: cli.EnvVars("JAVALINT_VERBOSE"),
			},
		},
		Action: runLint,
	}
}

func runLint(ctx context.Context, cmd *cli.Command) error {
	stderr := errWriter(cmd)
	logging.Configure(stderr, cmd.Bool("verbose"))

	inputs := cmd.Args().Slice()
	if len(inputs) == 0 {
		inputs = []string{"."}
	}

	discovered, err := discovery.Discover(inputs, discovery.Options{
		Extensions:      cmd.StringSlice("extension"),
		ExcludePatterns: cmd.StringSlice("exclude"),
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to discover files: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	if len(discovered) == 0 {
		reportNoFilesFound(stderr, inputs)
		return cli.Exit("", ExitNoFiles)
	}

	cfg, err := loadConfig(cmd, discovered[0].ConfigRoot)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to load config: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	if err := config.Validate(cfg, rules.DefaultRegistry()); err != nil {
		fmt.Fprintf(stderr, "Error: invalid config: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	filters, err := linter.BuildFilters(ctx, cfg, linter.LoadOptions{})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	paths := make([]string, len(discovered))
	for i, f := range discovered {
		paths[i] = f.Path
	}

	report, err := linter.Run(ctx, paths, linter.RunOptions{
		Config:      cfg,
		Filters:     filters,
		Concurrency: cmd.Int("jobs"),
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	return writeReport(cmd, cfg, report)
}

// loadConfig loads configuration for the first discovered file, applying CLI
// overrides on top of the file and environment layers.
func loadConfig(cmd *cli.Command, targetPath string) (*config.Config, error) {
	cfg, err := config.LoadWithOverrides(targetPath, cmd.String("config"), buildOverrides(cmd))
	if err != nil {
		return nil, err
	}

	// Rule selection appends to the configured lists instead of replacing them.
	if cmd.IsSet("select") {
		cfg.Rules.Include = append(cfg.Rules.Include, cmd.StringSlice("select")...)
	}
	if cmd.IsSet("ignore") {
		cfg.Rules.Exclude = append(cfg.Rules.Exclude, cmd.StringSlice("ignore")...)
	}

	if cmd.Bool("no-inline-directives") {
		cfg.Filters.Comment.Enabled = false
		cfg.Filters.NearbyComment.Enabled = false
		cfg.Filters.PlainText.Enabled = false
		cfg.Filters.NearbyText.Enabled = false
	}

	return cfg, nil
}

// buildOverrides maps explicitly set flags onto config keys.
func buildOverrides(cmd *cli.Command) map[string]any {
	output := make(map[string]any)
	if cmd.IsSet("format") {
		output["format"] = cmd.String("format")
	}
	if cmd.IsSet("output") {
		output["path"] = cmd.String("output")
	}
	if cmd.IsSet("fail-level") {
		output["fail-level"] = cmd.String("fail-level")
	}
	if cmd.IsSet("show-source") {
		output["show-source"] = cmd.Bool("show-source")
	}
	if cmd.IsSet("hide-source") {
		output["show-source"] = !cmd.Bool("hide-source")
	}

	overrides := make(map[string]any)
	if len(output) > 0 {
		overrides["output"] = output
	}
	if cmd.IsSet("max-file-size") {
		overrides["file-validation"] = map[string]any{"max-file-size": cmd.Int("max-file-size")}
	}
	return overrides
}

func writeReport(cmd *cli.Command, cfg *config.Config, report *linter.Report) error {
	stderr := errWriter(cmd)

	format, err := reporter.ParseFormat(cfg.Output.Format)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	writer, closeWriter, err := outputWriter(cmd, cfg.Output.Path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	defer func() {
		if err := closeWriter(); err != nil {
			fmt.Fprintf(stderr, "Warning: failed to close output: %v\n", err)
		}
	}()

	opts := reporter.DefaultOptions()
	opts.Format = format
	opts.Writer = writer
	opts.ShowSource = cfg.Output.ShowSource
	if cmd.Bool("no-color") {
		noColor := false
		opts.Color = &noColor
	}

	rep, err := reporter.New(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create reporter: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	metadata := reporter.ReportMetadata{
		FilesScanned: report.FilesScanned,
		RulesEnabled: report.RulesEnabled,
		ToolVersion:  version.RawVersion(),
	}
	if err := rep.Report(report.Violations, report.Sources, metadata); err != nil {
		fmt.Fprintf(stderr, "Error: failed to write output: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	exitCode, err := determineExitCode(report.Violations, cfg.Output.FailLevel)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	if exitCode != ExitSuccess {
		return cli.Exit("", exitCode)
	}
	return nil
}

// outputWriter resolves "stdout" to the command's writer so tests can capture
// reports; other destinations go through reporter.GetWriter.
func outputWriter(cmd *cli.Command, path string) (io.Writer, func() error, error) {
	if (path == "" || path == "stdout") && cmd.Root().Writer != nil {
		return cmd.Root().Writer, func() error { return nil }, nil
	}
	return reporter.GetWriter(path)
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

// determineExitCode returns ExitViolations when any violation is at least as
// severe as failLevel. "none" never fails.
func determineExitCode(violations []rules.Violation, failLevel string) (int, error) {
	if failLevel == "none" {
		return ExitSuccess, nil
	}
	if failLevel == "" {
		failLevel = "info"
	}

	threshold, err := rules.ParseSeverity(failLevel)
	if err != nil || threshold == rules.SeverityIgnore {
		return ExitConfigError, fmt.Errorf("invalid fail-level %q", failLevel)
	}

	for _, v := range violations {
		if v.Severity.IsAtLeast(threshold) {
			return ExitViolations, nil
		}
	}
	return ExitSuccess, nil
}

func reportNoFilesFound(w io.Writer, inputs []string) {
	for _, input := range inputs {
		if strings.ContainsAny(input, "*?[]{}") {
			fmt.Fprintf(w, "Error: no Java sources matched pattern: %s\n", input)
			return
		}
	}

	// Directory inputs are resolved so the message names the scanned directory.
	for _, input := range inputs {
		abs, err := filepath.Abs(input)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err == nil && info.IsDir() {
			fmt.Fprintf(w, "Error: no Java sources found in %s\n", abs)
			return
		}
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(w, "Error: file not found: %s\n", input)
			return
		}
	}

	fmt.Fprintf(w, "Error: no Java sources found\n")
}
