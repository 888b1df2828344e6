package internal

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var ErrTimeParse = errors.New("cannot parse time specification")

var timeLayouts = []string{
	"15:04",  // H:MM, 24-hour
	"3:04pm", // H:MM(am|pm)
	"3:04PM", // H:MM(AM|PM)
}

var dateLayouts = []string{
	"2006-1-2",  // YYYY-M-D
	"Jan2,2006", // MMMD,YYYY
}

// ParseTimeSpec parses a user-supplied time specification into a UTC
// instant. Accepted forms: a time of day (applied to today's date), a date
// (midnight), a "date,time" combination, or a duration relative to now
// prefixed with + or -. Whitespace is ignored.
func ParseTimeSpec(spec string, now time.Time) (time.Time, error) {
	s := stripSpace(spec)
	if s == "" {
		return time.Time{}, ErrTimeParse
	}

	local := now.Local()
	loc := local.Location()

	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			res := time.Date(local.Year(), local.Month(), local.Day(),
				t.Hour(), t.Minute(), 0, 0, loc)
			return res.UTC(), nil
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}

	for _, dateLayout := range dateLayouts {
		for _, timeLayout := range timeLayouts {
			layout := dateLayout + "," + timeLayout
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return t.UTC(), nil
			}
		}
	}

	if s[0] == '+' || s[0] == '-' {
		d, err := ParseDurationSpec(s[1:])
		if err != nil {
			return time.Time{}, err
		}
		if s[0] == '+' {
			return now.Add(d).UTC(), nil
		}
		return now.Add(-d).UTC(), nil
	}

	return time.Time{}, ErrTimeParse
}

// ParseDurationSpec parses H, H:MM or H:MM:SS into a duration. Minutes and
// seconds must be below 60; the total must fit in a time.Duration.
func ParseDurationSpec(spec string) (time.Duration, error) {
	tokens := strings.Split(stripSpace(spec), ":")
	if len(tokens) < 1 || len(tokens) > 3 {
		return 0, ErrTimeParse
	}

	parts := make([]uint64, 3)
	for i, tok := range tokens {
		v, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			return 0, ErrTimeParse
		}
		parts[i] = v
	}

	hours, minutes, seconds := parts[0], parts[1], parts[2]
	if minutes >= 60 || seconds >= 60 {
		return 0, ErrTimeParse
	}

	total := hours*3600 + minutes*60 + seconds
	if total > uint64(math.MaxInt64/int64(time.Second)) {
		return 0, ErrTimeParse
	}
	return time.Duration(total) * time.Second, nil
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
