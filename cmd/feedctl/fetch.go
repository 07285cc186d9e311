package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"feedboard/internal/domain/entity"
	"feedboard/internal/usecase/query"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch all feeds once and print the merged items",
	RunE: func(cmd *cobra.Command, args []string) error {
		tag, _ := cmd.Flags().GetString("tag")
		text, _ := cmd.Flags().GetString("query")
		asJSON, _ := cmd.Flags().GetBool("json")
		limit, _ := cmd.Flags().GetInt("limit")

		criteria, err := query.ParseCriteria(tag, text)
		if err != nil {
			return err
		}

		c, err := build()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		snap := c.Aggregate.RefreshAll(ctx)
		items := query.Filter(snap.Items, criteria)
		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), items, snap.Failures)
		}
		printItems(cmd.OutOrStdout(), items)
		printFailures(cmd.ErrOrStderr(), snap.Failures)
		return nil
	},
}

func init() {
	fetchCmd.Flags().String("tag", "all", "filter by tag: all, news, on-chain, research, custom")
	fetchCmd.Flags().StringP("query", "q", "", "case-insensitive text search")
	fetchCmd.Flags().Bool("json", false, "print JSON instead of text")
	fetchCmd.Flags().IntP("limit", "n", 0, "maximum number of items to print (0 = all)")
	rootCmd.AddCommand(fetchCmd)
}

func writeJSON(w io.Writer, items []entity.Item, failures []entity.FailureEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"items":    items,
		"failures": failures,
		"total":    len(items),
	})
}

func printItems(w io.Writer, items []entity.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items found")
		return
	}

	faint := color.New(color.Faint).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	tagColor := map[entity.Tag]*color.Color{
		entity.TagNews:     color.New(color.FgCyan),
		entity.TagOnChain:  color.New(color.FgGreen),
		entity.TagResearch: color.New(color.FgMagenta),
		entity.TagCustom:   color.New(color.FgYellow),
	}

	for _, it := range items {
		date := "undated         "
		if it.PubDate != nil {
			date = it.PubDate.Local().Format("2006-01-02 15:04")
		}
		tc, ok := tagColor[it.Tag]
		if !ok {
			tc = color.New(color.Reset)
		}
		fmt.Fprintf(w, "%s %s %s\n", faint(date), tc.Sprintf("%-9s", it.Tag), bold(it.Title))
		fmt.Fprintf(w, "                 %s  %s\n", faint(it.SourceTitle), faint(it.Link))
	}
}

func printFailures(w io.Writer, failures []entity.FailureEntry) {
	if len(failures) == 0 {
		return
	}
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(w, "\n%s\n", red(fmt.Sprintf("%d feed(s) failed:", len(failures))))
	for _, f := range failures {
		fmt.Fprintf(w, "  %s %s: %s\n", red("✗"), f.Title, f.Message)
	}
}
