package internal

import (
	"errors"
	"time"
)

var ErrInconsistentFilter = errors.New("inconsistent filter: open and closed are mutually exclusive")

// RangeQuery carries the user-supplied selection criteria for list,
// aggregate and purge: tag names, optional time bounds, a today flag and
// mutually exclusive open/closed flags.
type RangeQuery struct {
	Tags   []string
	Before time.Time
	After  time.Time
	Today  bool
	Open   bool
	Closed bool
}

// Filter compiles the query into a filter over the given log's tags.
// Tag names unknown to the log contribute nothing (they never match).
// Requesting both open and closed is ErrInconsistentFilter.
func (q RangeQuery) Filter(log *TimeLog, now time.Time) (Filter, error) {
	if q.Open && q.Closed {
		return Filter{}, ErrInconsistentFilter
	}

	tagsFilter := FilterTrue()
	if len(q.Tags) > 0 {
		var alts []Filter
		for _, name := range q.Tags {
			if id, ok := log.TagID(name); ok {
				alts = append(alts, HasTag(id))
			}
		}
		tagsFilter = OrAll(alts...)
	}

	// Midnight bounds in the local zone, expressed in UTC.
	local := now.Local()
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location()).UTC()
	tomorrow := today.Add(24 * time.Hour)

	beforeFilter := FilterTrue()
	switch {
	case !q.Before.IsZero():
		if q.Today && tomorrow.Before(q.Before) {
			beforeFilter = StartedBefore(tomorrow)
		} else {
			beforeFilter = StartedBefore(q.Before)
		}
	case q.Today:
		beforeFilter = StartedBefore(tomorrow)
	}

	// Strictly after: an interval ending exactly on the bound is excluded,
	// so a session ceiled to midnight belongs to the previous day.
	afterFilter := FilterTrue()
	switch {
	case !q.After.IsZero():
		bound := q.After
		if q.Today && q.After.Before(today) {
			bound = today
		}
		afterFilter = IsOpen().Or(EndedAfter(bound))
	case q.Today:
		afterFilter = IsOpen().Or(EndedAfter(today))
	}

	openClosedFilter := FilterTrue()
	if q.Open {
		openClosedFilter = IsOpen()
	} else if q.Closed {
		openClosedFilter = IsClosed()
	}

	return tagsFilter.And(beforeFilter).And(afterFilter).And(openClosedFilter), nil
}

// StatusFilter selects open intervals, optionally restricted to the named
// tags. Unknown tag names never match.
func StatusFilter(log *TimeLog, tags []string) Filter {
	if len(tags) == 0 {
		return IsOpen()
	}
	var alts []Filter
	for _, name := range tags {
		if id, ok := log.TagID(name); ok {
			alts = append(alts, HasTag(id))
		}
	}
	return IsOpen().And(OrAll(alts...))
}

// Entry is a logged interval with its tag name resolved.
type Entry struct {
	Tag string
	TaggedInterval
}

// Entries returns the log's intervals matching the filter, in insertion
// order, with tag names resolved.
func Entries(log *TimeLog, f Filter) []Entry {
	var out []Entry
	for _, ival := range log.Intervals() {
		if !f.Eval(ival) {
			continue
		}
		name, _ := log.TagName(ival.Tag())
		out = append(out, Entry{Tag: name, TaggedInterval: ival})
	}
	return out
}

// Total sums the durations of the intervals matching the filter. Open
// intervals contribute their elapsed time up to the quarter-hour ceiling
// of now.
func Total(log *TimeLog, f Filter, now time.Time) time.Duration {
	var total time.Duration
	for _, ival := range log.Intervals() {
		if f.Eval(ival) {
			total += ival.DurationAt(now)
		}
	}
	return total
}
