package main

import (
	"time"

	"github.com/4thel00z/timelog/internal"
	"github.com/spf13/cobra"
)

func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [tags...]",
		Short: "List logged intervals",
		Long: `List logged intervals, optionally restricted to the given tags and to a
time range.`,
		RunE: runList,
	}

	addRangeFlags(cmd)
	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
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

	return printEntries(cmd, internal.Entries(log, f))
}
