package internal

import (
	"errors"
	"testing"
	"time"
)

func TestParseDurationSpec(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"2", 2 * time.Hour},
		{"0:30", 30 * time.Minute},
		{"1:30", 90 * time.Minute},
		{"1:30:15", 90*time.Minute + 15*time.Second},
		{" 1 : 30 ", 90 * time.Minute},
	}
	for _, tc := range cases {
		got, err := ParseDurationSpec(tc.in)
		if err != nil {
			t.Errorf("ParseDurationSpec(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDurationSpec(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseDurationSpecRejects(t *testing.T) {
	for _, in := range []string{"", "1:60", "1:30:60", "1:2:3:4", "abc", "-1", "1:-2"} {
		if _, err := ParseDurationSpec(in); !errors.Is(err, ErrTimeParse) {
			t.Errorf("ParseDurationSpec(%q): err = %v, want ErrTimeParse", in, err)
		}
	}
}

func TestParseDurationSpecOverflow(t *testing.T) {
	// An hour count whose duration would exceed time.Duration must be
	// rejected, not wrapped negative.
	for _, in := range []string{"4000000:00", "4294967295", "2562048:00"} {
		if _, err := ParseDurationSpec(in); !errors.Is(err, ErrTimeParse) {
			t.Errorf("ParseDurationSpec(%q): err = %v, want ErrTimeParse", in, err)
		}
	}

	// The largest representable whole hour still parses.
	got, err := ParseDurationSpec("2562047:00")
	if err != nil {
		t.Fatalf("ParseDurationSpec: %v", err)
	}
	if got != 2562047*time.Hour {
		t.Errorf("ParseDurationSpec(2562047:00) = %v", got)
	}
}

func TestParseTimeSpecTimeOfDay(t *testing.T) {
	now := time.Date(2026, 8, 3, 12, 0, 0, 0, time.UTC)
	local := now.Local()

	for _, in := range []string{"14:30", "2:30pm", "2:30PM"} {
		got, err := ParseTimeSpec(in, now)
		if err != nil {
			t.Fatalf("ParseTimeSpec(%q): %v", in, err)
		}
		want := time.Date(local.Year(), local.Month(), local.Day(), 14, 30, 0, 0, local.Location()).UTC()
		if !got.Equal(want) {
			t.Errorf("ParseTimeSpec(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseTimeSpecDate(t *testing.T) {
	now := time.Date(2026, 8, 3, 12, 0, 0, 0, time.UTC)

	for _, in := range []string{"2026-7-14", "Jul14,2026", "Jul 14, 2026"} {
		got, err := ParseTimeSpec(in, now)
		if err != nil {
			t.Fatalf("ParseTimeSpec(%q): %v", in, err)
		}
		want := time.Date(2026, 7, 14, 0, 0, 0, 0, time.Local).UTC()
		if !got.Equal(want) {
			t.Errorf("ParseTimeSpec(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseTimeSpecDateTime(t *testing.T) {
	now := time.Date(2026, 8, 3, 12, 0, 0, 0, time.UTC)

	got, err := ParseTimeSpec("2026-7-14,9:15", now)
	if err != nil {
		t.Fatalf("ParseTimeSpec: %v", err)
	}
	want := time.Date(2026, 7, 14, 9, 15, 0, 0, time.Local).UTC()
	if !got.Equal(want) {
		t.Errorf("ParseTimeSpec = %v, want %v", got, want)
	}
}

func TestParseTimeSpecRelative(t *testing.T) {
	now := time.Date(2026, 8, 3, 12, 0, 0, 0, time.UTC)

	got, err := ParseTimeSpec("-1:30", now)
	if err != nil {
		t.Fatalf("ParseTimeSpec: %v", err)
	}
	if want := now.Add(-90 * time.Minute); !got.Equal(want) {
		t.Errorf("ParseTimeSpec(-1:30) = %v, want %v", got, want)
	}

	got, err = ParseTimeSpec("+2", now)
	if err != nil {
		t.Fatalf("ParseTimeSpec: %v", err)
	}
	if want := now.Add(2 * time.Hour); !got.Equal(want) {
		t.Errorf("ParseTimeSpec(+2) = %v, want %v", got, want)
	}
}

func TestParseTimeSpecRejects(t *testing.T) {
	now := time.Now()
	for _, in := range []string{"", "yesterday", "25:00", "+1:99"} {
		if _, err := ParseTimeSpec(in, now); !errors.Is(err, ErrTimeParse) {
			t.Errorf("ParseTimeSpec(%q): err = %v, want ErrTimeParse", in, err)
		}
	}
}
