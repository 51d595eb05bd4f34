package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wharflab/javalint/internal/config"
	"github.com/wharflab/javalint/internal/rules"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect configuration",
		Commands: []*cli.Command{
			{
				Name:      "print",
				Usage:     "Print the effective configuration as TOML",
				ArgsUsage: "[PATH]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to config file (default: auto-discover)",
						Sources: cli.EnvVars("JAVALINT_CONFIG"),
					},
				},
				Action: printConfig,
			},
		},
	}
}

func printConfig(_ context.Context, cmd *cli.Command) error {
	target := cmd.Args().First()
	if target == "" {
		target = "."
	}

	cfg, err := config.LoadWithOverrides(target, cmd.String("config"), nil)
	if err != nil {
		fmt.Fprintf(errWriter(cmd), "Error: failed to load config: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}
	if err := config.Validate(cfg, rules.DefaultRegistry()); err != nil {
		fmt.Fprintf(errWriter(cmd), "Error: invalid config: %v\n", err)
		return cli.Exit("", ExitConfigError)
	}

	data, err := cfg.MarshalTOML()
	if err != nil {
		return err
	}
	if cfg.ConfigFile != "" {
		fmt.Fprintf(outWriter(cmd), "# loaded from %s\n", cfg.ConfigFile)
	}
	_, err = outWriter(cmd).Write(data)
	return err
}

func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
