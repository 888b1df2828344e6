package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old> [new]",
		Short: "Diff the logfile between two revisions",
		Long: `Show a text diff of the logfile between two revisions. When only one
revision is given, it is compared against the latest.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runDiff,
	}
}

func runDiff(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}

	journal, err := ws.journal()
	if err != nil {
		return err
	}

	oldRef := args[0]
	newRef := "HEAD"
	if len(args) > 1 {
		newRef = args[1]
	}

	text, err := journal.Diff(oldRef, newRef)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}
