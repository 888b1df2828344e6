package internal

import (
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrTagAlreadyOpen = errors.New("tag already has an open interval")
	ErrTagNotOpen     = errors.New("tag has no open interval")
)

// TimeLog is the full in-memory record of work sessions: an ordered sequence
// of tagged intervals plus the tag registry. Sequence order is insertion
// order, not time order.
type TimeLog struct {
	tags      Tags
	intervals []TaggedInterval
}

// NewTimeLog returns an empty timelog.
func NewTimeLog() *TimeLog {
	return &TimeLog{}
}

// TagName returns the name of the tag with the given ID, if it exists.
func (l *TimeLog) TagName(id TagID) (string, bool) {
	return l.tags.GetName(id)
}

// TagID returns the ID of the tag with the given name, if it exists.
func (l *TimeLog) TagID(name string) (TagID, bool) {
	return l.tags.GetID(name)
}

// UsedTagNames returns the distinct names of tags referenced by at least one
// interval, in first-use order. Registry names without an interval (possible
// only in a hand-edited snapshot) are not reported.
func (l *TimeLog) UsedTagNames() []string {
	seen := make(map[TagID]bool)
	var names []string
	for _, ival := range l.intervals {
		if seen[ival.Tag()] {
			continue
		}
		seen[ival.Tag()] = true
		if name, ok := l.tags.GetName(ival.Tag()); ok {
			names = append(names, name)
		}
	}
	return names
}

// Intervals returns the logged intervals in insertion order. The returned
// slice is a copy; mutating it does not affect the log.
func (l *TimeLog) Intervals() []TaggedInterval {
	out := make([]TaggedInterval, len(l.intervals))
	copy(out, l.intervals)
	return out
}

// Len returns the number of logged intervals.
func (l *TimeLog) Len() int {
	return len(l.intervals)
}

// Open opens a new interval for the named tag at the current time.
func (l *TimeLog) Open(tag string) (TaggedInterval, error) {
	return l.OpenAt(tag, time.Now().UTC())
}

// OpenAt opens a new interval for the named tag, registering the tag if
// needed. The start time is the quarter-hour floor of now.
//
// If a closed interval with this tag ended at or after the current
// quarter-hour floor, that interval is reopened in place (its start is
// preserved, its end discarded) instead of a new one being appended; rapid
// close/reopen cycles therefore coalesce into one session. Returns
// ErrTagAlreadyOpen, without mutating the interval sequence, if an open
// interval for the tag already exists.
func (l *TimeLog) OpenAt(tag string, now time.Time) (TaggedInterval, error) {
	id := l.tags.GetIDOrInsert(tag)
	nowFloor := FloorQuarter(now)
	f := HasTag(id).And(IsOpen().Or(EndedAfterStrict(nowFloor)))

	for i := range l.intervals {
		if !f.Eval(l.intervals[i]) {
			continue
		}
		if !l.intervals[i].IsClosed() {
			return TaggedInterval{}, ErrTagAlreadyOpen
		}
		l.intervals[i] = OpenTagged(l.intervals[i].Tag(), l.intervals[i].Start())
		return l.intervals[i], nil
	}

	ival := OpenTagged(id, nowFloor)
	l.intervals = append(l.intervals, ival)
	return ival, nil
}

// Close closes the open interval for the named tag at the current time.
func (l *TimeLog) Close(tag string) (TaggedInterval, error) {
	return l.CloseAt(tag, time.Now().UTC())
}

// CloseAt closes the open interval for the named tag at now and rounds it to
// quarter hours (the end is ceiled; the start was floored at open time).
// Returns ErrTagNotOpen if no interval with this tag is open.
func (l *TimeLog) CloseAt(tag string, now time.Time) (TaggedInterval, error) {
	id, ok := l.tags.GetID(tag)
	if !ok {
		return TaggedInterval{}, ErrTagNotOpen
	}

	f := HasTag(id).And(IsOpen())
	for i := range l.intervals {
		if !f.Eval(l.intervals[i]) {
			continue
		}
		closed, err := l.intervals[i].Close(now)
		if err != nil {
			return TaggedInterval{}, err
		}
		l.intervals[i] = closed.RoundToQuarterHours()
		return l.intervals[i], nil
	}

	return TaggedInterval{}, ErrTagNotOpen
}

// Remove drops all intervals matching the filter, preserving the relative
// order of the survivors. Returns the number of intervals removed.
func (l *TimeLog) Remove(f Filter) int {
	return l.Retain(f.Not())
}

// Retain keeps only the intervals matching the filter, preserving their
// relative order. Returns the number of intervals removed.
func (l *TimeLog) Retain(f Filter) int {
	kept := l.intervals[:0]
	for _, ival := range l.intervals {
		if f.Eval(ival) {
			kept = append(kept, ival)
		}
	}
	removed := len(l.intervals) - len(kept)
	l.intervals = kept
	return removed
}

// GCTagNames rebuilds the tag registry by replaying the retained intervals
// in order, assigning each newly-encountered tag name the next ID. Tag names
// with no referencing interval are dropped and the remaining IDs are
// renumbered contiguously; the (name, interval) pairs are preserved exactly.
func (l *TimeLog) GCTagNames() {
	fresh := NewTimeLog()
	for _, ival := range l.intervals {
		name, ok := l.tags.GetName(ival.Tag())
		if !ok {
			continue
		}
		fresh.insertUnchecked(name, ival.Interval())
	}
	l.tags = fresh.tags
	l.intervals = fresh.intervals
}

func (l *TimeLog) insertUnchecked(tag string, ival Interval) {
	id := l.tags.GetIDOrInsert(tag)
	l.intervals = append(l.intervals, NewTaggedInterval(id, ival))
}

type timeLogJSON struct {
	Tags      Tags             `json:"tags"`
	Intervals []TaggedInterval `json:"intervals"`
}

func (l *TimeLog) MarshalJSON() ([]byte, error) {
	intervals := l.intervals
	if intervals == nil {
		intervals = []TaggedInterval{}
	}
	return json.Marshal(timeLogJSON{Tags: l.tags, Intervals: intervals})
}

func (l *TimeLog) UnmarshalJSON(data []byte) error {
	var dec timeLogJSON
	if err := json.Unmarshal(data, &dec); err != nil {
		return err
	}
	l.tags = dec.Tags
	l.intervals = dec.Intervals
	return nil
}
