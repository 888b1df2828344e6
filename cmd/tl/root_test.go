package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/4thel00z/timelog/internal"
)

// runTL executes the CLI with the given stdin and arguments, returning
// stdout, stderr and the command error.
func runTL(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd("test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

// testLogfile isolates HOME and returns a logfile path in a fresh temp dir.
func testLogfile(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(internal.LogfileEnvVar, "")
	return filepath.Join(t.TempDir(), "log.json")
}

func TestOpenAndStatus(t *testing.T) {
	logfile := testLogfile(t)

	_, errOut, err := runTL(t, "", "open", "--file", logfile)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !strings.Contains(errOut, `Opened interval for tag "default"`) {
		t.Errorf("open output = %q", errOut)
	}

	out, _, err := runTL(t, "", "status", "--file", logfile)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Currently open intervals:") || !strings.Contains(out, "default") {
		t.Errorf("status output = %q", out)
	}
}

func TestStatusEmpty(t *testing.T) {
	logfile := testLogfile(t)

	out, _, err := runTL(t, "", "status", "--file", logfile)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "No currently open intervals") {
		t.Errorf("status output = %q", out)
	}
}

func TestOpenNewTagPrompts(t *testing.T) {
	logfile := testLogfile(t)

	// Declining the prompt cancels the open without touching the log.
	_, errOut, err := runTL(t, "n\n", "open", "work", "--file", logfile)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !strings.Contains(errOut, `Creating new tag "work".`) || !strings.Contains(errOut, "Cancelling open") {
		t.Errorf("open output = %q", errOut)
	}

	out, _, err := runTL(t, "", "tags", "--file", logfile)
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	if strings.TrimSpace(out) != "" {
		t.Errorf("tags after cancelled open = %q", out)
	}

	// Accepting the prompt creates the tag.
	if _, _, err := runTL(t, "y\n", "open", "work", "--file", logfile); err != nil {
		t.Fatalf("open: %v", err)
	}
	out, _, _ = runTL(t, "", "tags", "--file", logfile)
	if strings.TrimSpace(out) != "work" {
		t.Errorf("tags = %q, want work", out)
	}
}

func TestOpenCreateFlagSkipsPrompt(t *testing.T) {
	logfile := testLogfile(t)

	if _, _, err := runTL(t, "", "open", "work", "--create", "--file", logfile); err != nil {
		t.Fatalf("open --create: %v", err)
	}
	out, _, _ := runTL(t, "", "tags", "--file", logfile)
	if strings.TrimSpace(out) != "work" {
		t.Errorf("tags = %q, want work", out)
	}
}

func TestOpenTwiceFails(t *testing.T) {
	logfile := testLogfile(t)

	if _, _, err := runTL(t, "", "open", "--file", logfile); err != nil {
		t.Fatalf("open: %v", err)
	}
	_, _, err := runTL(t, "", "open", "--file", logfile)
	if !errors.Is(err, internal.ErrTagAlreadyOpen) {
		t.Errorf("second open: err = %v, want ErrTagAlreadyOpen", err)
	}
}

func TestCloseWithoutOpenFails(t *testing.T) {
	logfile := testLogfile(t)

	_, _, err := runTL(t, "", "close", "--file", logfile)
	if !errors.Is(err, internal.ErrTagNotOpen) {
		t.Errorf("close: err = %v, want ErrTagNotOpen", err)
	}
}

func TestOpenCloseList(t *testing.T) {
	logfile := testLogfile(t)

	if _, _, err := runTL(t, "", "open", "--file", logfile); err != nil {
		t.Fatalf("open: %v", err)
	}
	_, errOut, err := runTL(t, "", "close", "--file", logfile)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if !strings.Contains(errOut, `Closed interval for tag "default"`) {
		t.Errorf("close output = %q", errOut)
	}

	out, _, err := runTL(t, "", "list", "--file", logfile)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "default") || !strings.Contains(out, " -- ") {
		t.Errorf("list output = %q", out)
	}
}

func TestListJSON(t *testing.T) {
	logfile := testLogfile(t)

	runTL(t, "", "open", "--file", logfile)

	out, _, err := runTL(t, "", "list", "--json", "--file", logfile)
	if err != nil {
		t.Fatalf("list --json: %v", err)
	}
	if !strings.Contains(out, `"tag": "default"`) || !strings.Contains(out, `"start"`) {
		t.Errorf("list JSON = %q", out)
	}
}

func TestListInconsistentFilter(t *testing.T) {
	logfile := testLogfile(t)

	_, _, err := runTL(t, "", "list", "--open", "--closed", "--file", logfile)
	if !errors.Is(err, internal.ErrInconsistentFilter) {
		t.Errorf("err = %v, want ErrInconsistentFilter", err)
	}
}

func TestAggregateTotal(t *testing.T) {
	logfile := testLogfile(t)

	runTL(t, "", "open", "--file", logfile)
	runTL(t, "", "close", "--file", logfile)

	out, _, err := runTL(t, "", "aggregate", "--file", logfile)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if !strings.Contains(out, "Total ") {
		t.Errorf("aggregate output = %q", out)
	}
}

func TestPurge(t *testing.T) {
	logfile := testLogfile(t)

	runTL(t, "", "open", "--file", logfile)
	runTL(t, "", "close", "--file", logfile)

	// Declined purge leaves the log intact.
	_, errOut, err := runTL(t, "n\n", "purge", "--file", logfile)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if !strings.Contains(errOut, "Purging ALL INTERVALS!") || !strings.Contains(errOut, "Purge cancelled.") {
		t.Errorf("purge output = %q", errOut)
	}

	out, _, _ := runTL(t, "", "list", "--file", logfile)
	if !strings.Contains(out, "default") {
		t.Error("declined purge should not remove intervals")
	}

	// Confirmed purge removes intervals and garbage-collects the tag.
	_, errOut, err = runTL(t, "", "purge", "--yes", "--file", logfile)
	if err != nil {
		t.Fatalf("purge --yes: %v", err)
	}
	if !strings.Contains(errOut, "Purged 1 intervals.") {
		t.Errorf("purge output = %q", errOut)
	}

	out, _, _ = runTL(t, "", "tags", "--file", logfile)
	if strings.TrimSpace(out) != "" {
		t.Errorf("tags after purge = %q", out)
	}
}

func TestPurgeNoMatches(t *testing.T) {
	logfile := testLogfile(t)

	_, errOut, err := runTL(t, "", "purge", "--file", logfile)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if !strings.Contains(errOut, "No intervals match filter criteria; purge cancelled.") {
		t.Errorf("purge output = %q", errOut)
	}
}

func TestTagsSorted(t *testing.T) {
	logfile := testLogfile(t)

	runTL(t, "", "open", "zeta", "--create", "--file", logfile)
	runTL(t, "", "close", "zeta", "--file", logfile)
	runTL(t, "", "open", "alpha", "--create", "--file", logfile)

	out, _, err := runTL(t, "", "tags", "--file", logfile)
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	if got := strings.Fields(out); len(got) != 2 || got[0] != "alpha" || got[1] != "zeta" {
		t.Errorf("tags = %v, want [alpha zeta]", got)
	}
}

func TestTagsSkipsUnreferencedNames(t *testing.T) {
	logfile := testLogfile(t)

	// A hand-edited snapshot can carry a registry name without intervals;
	// it must not be listed.
	snapshot := `{"tags":["work","ghost"],"intervals":[` +
		`{"tag":0,"interval":{"start":"2026-08-03T10:00:00Z","duration":3600}}]}` + "\n"
	if err := os.WriteFile(logfile, []byte(snapshot), 0644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runTL(t, "", "tags", "--file", logfile)
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	if strings.TrimSpace(out) != "work" {
		t.Errorf("tags = %q, want work", out)
	}
}

func TestHistoryLogUndoDiff(t *testing.T) {
	logfile := testLogfile(t)

	runTL(t, "", "open", "--file", logfile)
	runTL(t, "", "close", "--file", logfile)

	out, _, err := runTL(t, "", "log", "--file", logfile)
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if !strings.Contains(out, "close: default") || !strings.Contains(out, "open: default") {
		t.Errorf("log output = %q", out)
	}

	out, _, err = runTL(t, "", "diff", "HEAD~1", "--file", logfile)
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if !strings.Contains(out, "duration") {
		t.Errorf("diff output = %q", out)
	}

	_, errOut, err := runTL(t, "", "undo", "--yes", "--file", logfile)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !strings.Contains(errOut, "Restored logfile to") {
		t.Errorf("undo output = %q", errOut)
	}

	// The interval is open again after restoring the pre-close revision.
	out, _, err = runTL(t, "", "status", "--file", logfile)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Currently open intervals:") {
		t.Errorf("status after undo = %q", out)
	}
}
