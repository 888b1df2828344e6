package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close [tag]",
		Short: "Close a work session",
		Long: `Close the currently open interval for the given tag, or the default tag.

The end time is ceiled to the next quarter hour.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runClose,
	}
}

func runClose(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}

	tag := ws.cfg.DefaultTag
	if len(args) > 0 {
		tag = args[0]
	}

	log, err := ws.store.Load()
	if err != nil {
		return err
	}

	ival, err := log.Close(tag)
	if err != nil {
		return fmt.Errorf("close %q: %w", tag, err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Closed interval for tag %q: %s\n", tag, ival.Interval())

	return ws.save(log, fmt.Sprintf("close: %s", tag))
}
