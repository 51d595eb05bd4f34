package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wharflab/javalint/internal/rules"
	_ "github.com/wharflab/javalint/internal/rules/all" // Register all rules
)

func rulesCommand() *cli.Command {
	return &cli.Command{
		Name:  "rules",
		Usage: "List available rules",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "category",
				Usage: "Only list rules of this category (e.g. naming)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			list := rules.All()
			if category := cmd.String("category"); category != "" {
				list = slices.DeleteFunc(list, func(r rules.Rule) bool {
					return !strings.EqualFold(r.Metadata().Category, category)
				})
			}

			w := outWriter(cmd)
			for _, r := range list {
				meta := r.Metadata()
				fmt.Fprintf(w, "%-26s %-8s %-8s %s\n", meta.Code, meta.Category, meta.DefaultSeverity, meta.Description)
			}
			return nil
		},
	}
}
