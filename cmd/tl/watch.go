package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/4thel00z/timelog/internal"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const watchDebounce = 500 * time.Millisecond

func NewWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the logfile and print open sessions on change",
		Long: `Watch the logfile for changes and print the currently open sessions
whenever it is rewritten. Useful alongside a second terminal doing the
actual opening and closing.`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors and atomic writes replace
	// the inode, which would silently drop a file-level watch.
	dir := filepath.Dir(ws.store.Path())
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	if err := printStatus(cmd, ws); err != nil {
		return err
	}

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != ws.store.Path() {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			slog.Debug("logfile changed", "event", event.Op.String())
			debounce.Reset(watchDebounce)
		case <-debounce.C:
			if err := printStatus(cmd, ws); err != nil {
				slog.Debug("reload failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Debug("watch error", "error", err)
		}
	}
}

func printStatus(cmd *cobra.Command, ws *workspace) error {
	log, err := ws.store.Load()
	if err != nil {
		return err
	}

	entries := internal.Entries(log, internal.StatusFilter(log, nil))
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No currently open intervals.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Currently open intervals:")
	return printEntries(cmd, entries)
}
