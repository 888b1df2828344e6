package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TimeLayout is the display layout for interval endpoints, e.g.
// "Mon 2026-08-03 02:15pm".
const TimeLayout = "Mon 2006-01-02 03:04pm"

const quarterHour = 15 * time.Minute

var (
	ErrAlreadyClosed  = errors.New("interval is already closed")
	ErrEndBeforeStart = errors.New("interval end precedes its start")
)

// Interval is a possibly-open span of time: a start instant and, if the
// interval is closed, a duration. An open interval has no duration yet.
type Interval struct {
	start    time.Time
	duration time.Duration
	closed   bool
}

// OpenInterval returns a new open interval starting at the given time.
func OpenInterval(start time.Time) Interval {
	return Interval{start: start.UTC()}
}

// ClosedInterval returns a closed interval with the given start and duration.
func ClosedInterval(start time.Time, duration time.Duration) Interval {
	return Interval{start: start.UTC(), duration: duration, closed: true}
}

// Close closes the interval at the given end time.
//
// Returns ErrAlreadyClosed if the interval is closed, and ErrEndBeforeStart
// if end precedes the start time. A negative duration is rejected outright,
// never clamped.
func (i Interval) Close(end time.Time) (Interval, error) {
	if i.closed {
		return Interval{}, ErrAlreadyClosed
	}
	d := end.Sub(i.start)
	if d < 0 {
		return Interval{}, ErrEndBeforeStart
	}
	return ClosedInterval(i.start, d), nil
}

// IsClosed reports whether the interval has been closed.
func (i Interval) IsClosed() bool {
	return i.closed
}

// Start returns the start time of the interval.
func (i Interval) Start() time.Time {
	return i.start
}

// End returns the end time of the interval, if it is closed.
func (i Interval) End() (time.Time, bool) {
	if !i.closed {
		return time.Time{}, false
	}
	return i.start.Add(i.duration), true
}

// Duration returns the stored duration of a closed interval. For an open
// interval it returns the elapsed time between the start and the
// quarter-hour ceiling of the current time, so an in-progress session is
// displayed as it will be recorded once closed.
func (i Interval) Duration() time.Duration {
	return i.DurationAt(time.Now().UTC())
}

// DurationAt is Duration evaluated against an explicit current time.
func (i Interval) DurationAt(now time.Time) time.Duration {
	if i.closed {
		return i.duration
	}
	return CeilQuarter(now).Sub(i.start)
}

// RoundToQuarterHours floors the start time and ceils the end time to the
// nearest quarter-hour boundary. Re-rounding an already-rounded interval is
// a no-op.
func (i Interval) RoundToQuarterHours() Interval {
	start := FloorQuarter(i.start)
	if !i.closed {
		return OpenInterval(start)
	}
	end, _ := i.End()
	return ClosedInterval(start, CeilQuarter(end).Sub(start))
}

func (i Interval) String() string {
	start := i.start.Local()
	if end, ok := i.End(); ok {
		return fmt.Sprintf("%s -- %s (%s)",
			start.Format(TimeLayout), end.Local().Format(TimeLayout),
			FormatDuration(i.duration))
	}
	return fmt.Sprintf("%s -- OPEN (%s)", start.Format(TimeLayout), FormatDuration(i.Duration()))
}

// Snapshot shape: duration is omitted entirely for open intervals.
type intervalJSON struct {
	Start    time.Time `json:"start"`
	Duration *float64  `json:"duration,omitempty"`
}

func (i Interval) MarshalJSON() ([]byte, error) {
	enc := intervalJSON{Start: i.start}
	if i.closed {
		secs := i.duration.Seconds()
		enc.Duration = &secs
	}
	return json.Marshal(enc)
}

func (i *Interval) UnmarshalJSON(data []byte) error {
	var dec intervalJSON
	if err := json.Unmarshal(data, &dec); err != nil {
		return err
	}
	if dec.Duration == nil {
		*i = OpenInterval(dec.Start)
		return nil
	}
	d := time.Duration(*dec.Duration * float64(time.Second))
	if d < 0 {
		return ErrEndBeforeStart
	}
	*i = ClosedInterval(dec.Start, d)
	return nil
}

// FloorQuarter rounds the given time down to the most recent quarter-hour
// boundary.
func FloorQuarter(t time.Time) time.Time {
	return t.UTC().Truncate(quarterHour)
}

// CeilQuarter rounds the given time up to the next quarter-hour boundary.
// A time already on a boundary is unchanged.
func CeilQuarter(t time.Time) time.Time {
	floored := FloorQuarter(t)
	if floored.Equal(t.UTC()) {
		return floored
	}
	return floored.Add(quarterHour)
}

// FormatDuration renders a duration as h:mm.
func FormatDuration(d time.Duration) string {
	minutes := int64(d / time.Minute)
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

// TaggedInterval is an Interval associated with one tag.
type TaggedInterval struct {
	tag      TagID
	interval Interval
}

// NewTaggedInterval pairs a tag ID with an interval.
func NewTaggedInterval(tag TagID, interval Interval) TaggedInterval {
	return TaggedInterval{tag: tag, interval: interval}
}

// OpenTagged returns a new open tagged interval starting at the given time.
func OpenTagged(tag TagID, start time.Time) TaggedInterval {
	return TaggedInterval{tag: tag, interval: OpenInterval(start)}
}

// Tag returns the tag ID.
func (t TaggedInterval) Tag() TagID {
	return t.tag
}

// Interval returns the underlying interval.
func (t TaggedInterval) Interval() Interval {
	return t.interval
}

// IsClosed reports whether the underlying interval is closed.
func (t TaggedInterval) IsClosed() bool {
	return t.interval.IsClosed()
}

// Start returns the start time of the underlying interval.
func (t TaggedInterval) Start() time.Time {
	return t.interval.Start()
}

// End returns the end time of the underlying interval, if it is closed.
func (t TaggedInterval) End() (time.Time, bool) {
	return t.interval.End()
}

// Duration returns the duration of the underlying interval.
func (t TaggedInterval) Duration() time.Duration {
	return t.interval.Duration()
}

// DurationAt is Duration evaluated against an explicit current time.
func (t TaggedInterval) DurationAt(now time.Time) time.Duration {
	return t.interval.DurationAt(now)
}

// Close closes the underlying interval at the given end time.
func (t TaggedInterval) Close(end time.Time) (TaggedInterval, error) {
	interval, err := t.interval.Close(end)
	if err != nil {
		return TaggedInterval{}, err
	}
	return TaggedInterval{tag: t.tag, interval: interval}, nil
}

// RoundToQuarterHours rounds the underlying interval to quarter hours.
func (t TaggedInterval) RoundToQuarterHours() TaggedInterval {
	return TaggedInterval{tag: t.tag, interval: t.interval.RoundToQuarterHours()}
}

type taggedIntervalJSON struct {
	Tag      TagID    `json:"tag"`
	Interval Interval `json:"interval"`
}

func (t TaggedInterval) MarshalJSON() ([]byte, error) {
	return json.Marshal(taggedIntervalJSON{Tag: t.tag, Interval: t.interval})
}

func (t *TaggedInterval) UnmarshalJSON(data []byte) error {
	var dec taggedIntervalJSON
	if err := json.Unmarshal(data, &dec); err != nil {
		return err
	}
	t.tag = dec.Tag
	t.interval = dec.Interval
	return nil
}
