package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/4thel00z/timelog/internal"
	"github.com/spf13/cobra"
)

// addRangeFlags registers the selection flags shared by list, aggregate and
// purge.
func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("before", "b", "", "Select intervals started before this time")
	cmd.Flags().StringP("after", "a", "", "Select intervals ended after this time")
	cmd.Flags().Bool("today", false, "Select intervals overlapping today")
	cmd.Flags().BoolP("open", "o", false, "Select only open intervals")
	cmd.Flags().BoolP("closed", "c", false, "Select only closed intervals")
}

// rangeQueryFromFlags parses the selection flags and positional tag names
// into a RangeQuery. Time specs are resolved relative to now.
func rangeQueryFromFlags(cmd *cobra.Command, args []string, now time.Time) (internal.RangeQuery, error) {
	q := internal.RangeQuery{Tags: args}

	if spec, _ := cmd.Flags().GetString("before"); spec != "" {
		t, err := internal.ParseTimeSpec(spec, now)
		if err != nil {
			return internal.RangeQuery{}, fmt.Errorf("--before: %w", err)
		}
		q.Before = t
	}
	if spec, _ := cmd.Flags().GetString("after"); spec != "" {
		t, err := internal.ParseTimeSpec(spec, now)
		if err != nil {
			return internal.RangeQuery{}, fmt.Errorf("--after: %w", err)
		}
		q.After = t
	}

	q.Today, _ = cmd.Flags().GetBool("today")
	q.Open, _ = cmd.Flags().GetBool("open")
	q.Closed, _ = cmd.Flags().GetBool("closed")
	return q, nil
}

type entryJSON struct {
	Tag      string            `json:"tag"`
	Interval internal.Interval `json:"interval"`
}

// printEntries writes the selected intervals to the command's output, one
// per line with the tag column width-aligned, or as a JSON array when the
// --json flag is set.
func printEntries(cmd *cobra.Command, entries []internal.Entry) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		out := make([]entryJSON, 0, len(entries))
		for _, e := range entries {
			out = append(out, entryJSON{Tag: e.Tag, Interval: e.Interval()})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	width := 0
	for _, e := range entries {
		if len(e.Tag) > width {
			width = len(e.Tag)
		}
	}
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%-*s  %s\n", width, e.Tag, e.Interval())
	}
	return nil
}
