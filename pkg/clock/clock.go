// Package clock provides the two notions of "now" used around the timeline
// core.
//
// Wall time comes from a Source and is placed on the linear axis with
// ToAxis. Event revisions come from a Revision, a Lamport logical clock:
//
//	IR1 (local change): before storing a change, increment the clock.
//	IR2 (import): on receiving an event stamped with revision r, set the
//	     clock to max(own, r) + 1.
//
// Revisions let two timeline databases exchange events through files
// without a coordinator. Newer breaks ties deterministically using event
// UIDs, so every database agrees on which copy of an event wins.
//
// Revision is not goroutine-safe. Each instance is short-lived (seeded from
// the database inside a transaction); SQLite serialises writers.
package clock

import (
	"time"

	"github.com/tlcal/tlcal/pkg/timeline"
)

// Revision is a Lamport logical clock. Not goroutine-safe; see package doc.
type Revision struct {
	rev int64
}

// Tick implements IR1 and returns the new revision.
func (r *Revision) Tick() int64 {
	r.rev++
	return r.rev
}

// Receive implements IR2 and returns the new revision.
func (r *Revision) Receive(received int64) int64 {
	if received > r.rev {
		r.rev = received
	}
	r.rev++
	return r.rev
}

// Value returns the current revision without advancing it.
func (r *Revision) Value() int64 { return r.rev }

// Set seeds the clock, typically with the highest stored revision.
func (r *Revision) Set(v int64) { r.rev = v }

// Newer reports whether the copy (revA, uidA) supersedes (revB, uidB):
//
//	revA > revB, or
//	revA == revB and uidA > uidB (lexicographic)
func Newer(revA int64, uidA string, revB int64, uidB string) bool {
	if revA != revB {
		return revA > revB
	}
	return uidA > uidB
}

// Source supplies wall-clock time. Tests inject Fixed.
type Source interface {
	Now() time.Time
}

// System reads the real clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

// unixEpochDay is the day count (Julian day number) of 1970-01-01.
const unixEpochDay = 2440588

// ToAxis places t on the linear axis, in UTC and truncated to the second.
func ToAxis(t time.Time) timeline.Time {
	secs := t.Unix()
	return timeline.MustNew(
		timeline.FloorDiv(secs, timeline.SecondsPerDay)+unixEpochDay,
		timeline.FloorMod(secs, timeline.SecondsPerDay),
	)
}

// FromAxis is the inverse of ToAxis.
func FromAxis(t timeline.Time) time.Time {
	return time.Unix((t.Day()-unixEpochDay)*timeline.SecondsPerDay+t.Seconds(), 0).UTC()
}

// Today returns the current wall time on the axis.
func Today(src Source) timeline.Time {
	return ToAxis(src.Now())
}
