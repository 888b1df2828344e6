package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func NewLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the logfile's revision history",
		Long: `Show the recorded revisions of the logfile, newest first. Every mutating
command records one revision while history is enabled in the config.`,
		Args: cobra.NoArgs,
		RunE: runLog,
	}

	cmd.Flags().IntP("limit", "n", 10, "Maximum number of revisions to show, 0 for all")
	return cmd
}

func runLog(cmd *cobra.Command, _ []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}

	journal, err := ws.journal()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	revs, err := journal.Log(limit)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		type revisionJSON struct {
			Hash    string    `json:"hash"`
			Message string    `json:"message"`
			When    time.Time `json:"when"`
		}
		out := make([]revisionJSON, 0, len(revs))
		for _, r := range revs {
			out = append(out, revisionJSON{Hash: r.Hash, Message: r.Message, When: r.When})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for _, r := range revs {
		fmt.Fprintf(cmd.OutOrStdout(), "[%.7s] %s  %s\n",
			r.Hash, r.When.Local().Format("2006-01-02 15:04"), r.Message)
	}
	return nil
}
