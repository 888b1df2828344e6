package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewUndoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo [revision]",
		Short: "Restore the logfile to an earlier revision",
		Long: `Restore the logfile to the given revision, or to the one before the
latest when no revision is given. The restore itself is recorded as a new
revision, so it can be undone in turn.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUndo,
	}

	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func runUndo(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}

	journal, err := ws.journal()
	if err != nil {
		return err
	}

	ref := "HEAD~1"
	if len(args) > 0 {
		ref = args[0]
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		fmt.Fprintf(cmd.ErrOrStderr(), "Restoring logfile to revision %q.\n", ref)
		ok, err := confirm(cmd, false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), "Undo cancelled.")
			return nil
		}
	}

	rev, err := journal.Revert(ref)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Restored logfile to [%.7s] %s\n", rev.Hash, rev.Message)

	if _, err := journal.Commit(fmt.Sprintf("undo: restore %.7s", rev.Hash)); err != nil {
		return err
	}
	return nil
}
