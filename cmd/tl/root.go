package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tl",
		Short: "Track work sessions by tag",
		Long: `A quarter-hour work-session tracker.

Sessions are opened and closed per tag; starts are floored and ends are
ceiled to quarter-hour boundaries. The log is a single JSON file, selected
by --file, the TIMELOG_LOGFILE environment variable, the config file, or
~/.timelog/log.json, in that order.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			setupLogging(cmd)
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)

	rootCmd.AddCommand(
		NewOpenCmd(),
		NewCloseCmd(),
		NewListCmd(),
		NewAggregateCmd(),
		NewPurgeCmd(),
		NewStatusCmd(),
		NewTagsCmd(),
		NewLogCmd(),
		NewUndoCmd(),
		NewDiffCmd(),
		NewWatchCmd(),
		NewUICmd(),
	)

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("file", "f", "", "Logfile to read and write")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
}

func setupLogging(cmd *cobra.Command) {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})))
}
