package main

import (
	"fmt"
	"time"

	"github.com/4thel00z/timelog/internal"
	"github.com/spf13/cobra"
)

func NewPurgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge [tags...]",
		Short: "Delete logged intervals",
		Long: `Delete the intervals matching the given tags and time range, after
confirmation. Tag names left without any interval are dropped from the
log as well.`,
		RunE: runPurge,
	}

	addRangeFlags(cmd)
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func runPurge(cmd *cobra.Command, args []string) error {
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
	if len(entries) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No intervals match filter criteria; purge cancelled.")
		return nil
	}

	if f.EvalsTrue() {
		fmt.Fprintln(cmd.ErrOrStderr(), "Purging ALL INTERVALS!")
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "Purging the following intervals:")
		if err := printEntries(cmd, entries); err != nil {
			return err
		}
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		ok, err := confirm(cmd, false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), "Purge cancelled.")
			return nil
		}
	}

	removed := log.Remove(f)
	log.GCTagNames()
	fmt.Fprintf(cmd.ErrOrStderr(), "Purged %d intervals.\n", removed)

	return ws.save(log, fmt.Sprintf("purge: %d intervals", removed))
}
