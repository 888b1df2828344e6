package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/4thel00z/timelog/internal"
	"github.com/spf13/cobra"
)

// workspace bundles the per-invocation collaborators: config, the snapshot
// store, and (when enabled) the history journal.
type workspace struct {
	cfg   *internal.Config
	store *internal.Store
}

func openWorkspace(cmd *cobra.Command) (*workspace, error) {
	flagPath, _ := cmd.Flags().GetString("file")

	cfg, err := internal.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	path, err := internal.ResolveLogfile(flagPath, cfg)
	if err != nil {
		return nil, err
	}
	slog.Debug("resolved logfile", "path", path)

	return &workspace{cfg: cfg, store: internal.NewStore(path)}, nil
}

// save rewrites the snapshot and, when history is enabled, records a journal
// revision. A journal failure never fails the mutation itself.
func (w *workspace) save(log *internal.TimeLog, message string) error {
	if err := w.store.Save(log); err != nil {
		return err
	}

	if !w.cfg.History {
		return nil
	}

	journal, err := internal.OpenJournal(w.store.Path())
	if err != nil {
		slog.Debug("journal unavailable", "error", err)
		return nil
	}
	if _, err := journal.Commit(message); err != nil {
		slog.Debug("journal commit failed", "error", err)
	}
	return nil
}

// journal opens the history journal for read operations (log, undo, diff).
func (w *workspace) journal() (*internal.Journal, error) {
	if !w.cfg.History {
		return nil, errors.New("history is disabled in config")
	}
	return internal.OpenJournal(w.store.Path())
}
