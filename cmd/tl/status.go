package main

import (
	"fmt"

	"github.com/4thel00z/timelog/internal"
	"github.com/spf13/cobra"
)

func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [tags...]",
		Short: "Show currently open sessions",
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}

	log, err := ws.store.Load()
	if err != nil {
		return err
	}

	entries := internal.Entries(log, internal.StatusFilter(log, args))

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return printEntries(cmd, entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No currently open intervals matching these filter criteria.")
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Currently open intervals:")
	return printEntries(cmd, entries)
}
