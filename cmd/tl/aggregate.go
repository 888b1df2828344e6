package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/4thel00z/timelog/internal"
	"github.com/spf13/cobra"
)

func NewAggregateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "aggregate [tags...]",
		Aliases: []string{"agg"},
		Short:   "Sum time over logged intervals",
		Long: `List matching intervals and print their total duration. Open intervals
contribute their elapsed time up to the next quarter hour.`,
		RunE: runAggregate,
	}

	addRangeFlags(cmd)
	return cmd
}

func runAggregate(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}

	log, err := ws.store.Load()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	q, err := rangeQueryFromFlags(cmd, args, now)
	if err != nil {
		return err
	}
	f, err := q.Filter(log, now)
	if err != nil {
		return err
	}

	entries := internal.Entries(log, f)
	total := internal.Total(log, f, now)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		out := struct {
			Intervals    []entryJSON `json:"intervals"`
			TotalSeconds float64     `json:"total_seconds"`
		}{Intervals: make([]entryJSON, 0, len(entries)), TotalSeconds: total.Seconds()}
		for _, e := range entries {
			out.Intervals = append(out.Intervals, entryJSON{Tag: e.Tag, Interval: e.Interval()})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if err := printEntries(cmd, entries); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Total %s\n", internal.FormatDuration(total))
	return nil
}
