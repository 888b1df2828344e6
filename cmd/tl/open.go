package main

import (
	"fmt"

	"github.com/4thel00z/timelog/internal"
	"github.com/spf13/cobra"
)

func NewOpenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open [tag]",
		Short: "Open a work session",
		Long: `Open a new interval for the given tag, or the default tag.

The start time is floored to the current quarter hour. If an interval for
the tag closed within the current quarter hour, it is reopened instead of a
new one being created.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runOpen,
	}

	cmd.Flags().Bool("create", false, "Create a new tag without prompting")
	return cmd
}

func runOpen(cmd *cobra.Command, args []string) error {
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

	create, _ := cmd.Flags().GetBool("create")
	if _, known := log.TagID(tag); !known && tag != ws.cfg.DefaultTag && !create {
		fmt.Fprintf(cmd.ErrOrStderr(), "Creating new tag %q.\n", tag)
		ok, err := confirm(cmd, false)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), "Cancelling open")
			return nil
		}
	}

	ival, err := log.Open(tag)
	if err != nil {
		return fmt.Errorf("open %q: %w", tag, err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Opened interval for tag %q at %s\n",
		tag, ival.Start().Local().Format(internal.TimeLayout))

	return ws.save(log, fmt.Sprintf("open: %s", tag))
}
