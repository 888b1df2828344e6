package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func confirmWith(t *testing.T, input string, def bool) bool {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(input))
	got, err := confirm(cmd, def)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	return got
}

func TestConfirm(t *testing.T) {
	cases := []struct {
		input string
		def   bool
		want  bool
	}{
		{"y\n", false, true},
		{"yes\n", false, true},
		{"Y\n", false, true},
		{"n\n", true, false},
		{"no\n", true, false},
		{"\n", false, false},
		{"\n", true, true},
		{"", false, false}, // EOF yields the default
		{"maybe\ny\n", false, true},
	}
	for _, tc := range cases {
		if got := confirmWith(t, tc.input, tc.def); got != tc.want {
			t.Errorf("confirm(%q, default %v) = %v, want %v", tc.input, tc.def, got, tc.want)
		}
	}
}
