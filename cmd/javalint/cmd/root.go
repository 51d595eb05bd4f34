package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wharflab/javalint/internal/version"
)

// NewApp creates the CLI application
func NewApp() *cli.Command {
	return &cli.Command{
		Name:    "javalint",
		Usage:   "A naming and suppression-aware linter for Java sources",
		Version: version.Version(),
		Description: `javalint checks Java sources against checkstyle-style naming rules.

Violations can be suppressed with CHECKSTYLE:OFF/ON comments, nearby
comments, suppression documents and inline [[filters.suppress]] tables.

Examples:
  javalint lint src/main/java
  javalint lint --format xml --output checkstyle-result.xml .
  javalint lint --select naming/* --ignore MemberName App.java`,
		Commands: []*cli.Command{
			lintCommand(),
			configCommand(),
			rulesCommand(),
			versionCommand(),
		},
	}
}

// Execute runs the CLI application
func Execute() error {
	return NewApp().Run(context.Background(), os.Args)
}
