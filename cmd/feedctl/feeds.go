package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var feedsCmd = &cobra.Command{
	Use:     "feeds",
	Aliases: []string{"ls"},
	Short:   "List the configured feeds",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := build()
		if err != nil {
			return err
		}

		faint := color.New(color.Faint).SprintFunc()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTAG\tTITLE\tURL")
		for _, f := range c.Registry.List() {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.ID, f.Tag, f.Title, faint(f.URL))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(feedsCmd)
}
