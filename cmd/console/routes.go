package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iot-manager/console/internal/config"
	consoleerrors "github.com/iot-manager/console/internal/errors"
)

func routesCmd() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the route table",
		Long: `List every path and name in the configured route table, in
registration order.

Examples:
  console routes
  console routes --variant classic`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(config.Overrides{})
			if err != nil {
				return err
			}
			_, table, err := buildTable(cfg)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tNAME")
			for _, e := range table.Entries() {
				fmt.Fprintf(tw, "%s\t%s\n", e.Path, e.Name)
			}
			return tw.Flush()
		},
	}
	flags.register(cmd)

	return cmd
}

func resolveCmd() *cobra.Command {
	var flags configFlags

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Resolve a path against the route table",
		Long: `Resolve a path the way the console does: canonicalize it, then
match it exactly. Prints the canonical path and the route name, or fails
with R010 when nothing matches.

Examples:
  console resolve /books
  console resolve /books/
  console resolve --variant classic /photos`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(config.Overrides{})
			if err != nil {
				return err
			}
			_, table, err := buildTable(cfg)
			if err != nil {
				return err
			}

			entry, err := table.Match(args[0])
			if err != nil {
				return consoleerrors.Classify(err, "R010").
					WithDetailf("no route matches %q in the %s table", args[0], cfg.Variant())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", entry.Path, entry.Name)
			return nil
		},
	}
	flags.register(cmd)

	return cmd
}
