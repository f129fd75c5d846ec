package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fyrsmithlabs/assistantd/internal/guide"
)

var version = "dev"

// options shared by all subcommands.
type options struct {
	json      bool
	serverURL string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "guidectl",
		Short: "Inspect assistant guides",
		Long: `guidectl prints the assistant guide registry compiled into this build,
or the active guides reported by a running assistantd.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&opts.json, "json", false, "print JSON instead of a table")

	root.AddCommand(newListCmd(opts))
	root.AddCommand(newActiveCmd(opts))
	root.AddCommand(newResolveCmd(opts))
	root.AddCommand(newRemoteCmd(opts))
	return root
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every defined guide",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printGuides(cmd.OutOrStdout(), guide.Variants(), opts.json)
		},
	}
}

func newActiveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "List guides currently served to clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printGuides(cmd.OutOrStdout(), guide.Active(), opts.json)
		},
	}
}

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <id|key>",
		Short: "Look up a guide by identifier or key",
		Long: `Look up a guide by its stable identifier or its key.

Examples:
  guidectl resolve 3
  guidectl resolve discover_sidebar`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := resolveArg(args[0])
			if err != nil {
				return err
			}
			return printGuides(cmd.OutOrStdout(), []guide.Guide{g}, opts.json)
		},
	}
}

func resolveArg(arg string) (guide.Guide, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		return guide.Resolve(id)
	}
	return guide.ResolveKey(arg)
}

type row struct {
	Name   string `json:"name"`
	ID     int    `json:"id"`
	Guide  string `json:"guide"`
	Active bool   `json:"active"`
}

func rows(guides []guide.Guide) []row {
	out := make([]row, 0, len(guides))
	for _, g := range guides {
		out = append(out, row{Name: g.String(), ID: g.ID(), Guide: g.Key(), Active: guide.IsActive(g)})
	}
	return out
}

func printGuides(w io.Writer, guides []guide.Guide, asJSON bool) error {
	return printRows(w, rows(guides), asJSON)
}

func printRows(w io.Writer, rs []row, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rs)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tKEY\tACTIVE")
	for _, r := range rs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%t\n", r.ID, r.Name, r.Guide, r.Active)
	}
	return tw.Flush()
}
