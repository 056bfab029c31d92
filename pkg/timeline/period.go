package timeline

import (
	"errors"
	"fmt"
)

// ErrInvalidPeriod is returned when a period ends before it starts.
var ErrInvalidPeriod = errors.New("period end before start")

// Period is the closed-open span [Start, End) on the axis. A period with
// Start == End is a single point in time.
type Period struct {
	Start Time `json:"start"`
	End   Time `json:"end"`
}

// NewPeriod validates that end is not before start.
func NewPeriod(start, end Time) (Period, error) {
	if end.Before(start) {
		return Period{}, fmt.Errorf("%w: %v > %v", ErrInvalidPeriod, start, end)
	}
	return Period{Start: start, End: end}, nil
}

// Delta returns the length of the period.
func (p Period) Delta() Delta { return p.End.Diff(p.Start) }

// IsPeriod reports whether the period has non-zero length.
func (p Period) IsPeriod() bool { return p.Start != p.End }

// HasNonzeroTime reports whether either end is not at midnight.
func (p Period) HasNonzeroTime() bool {
	return p.Start.seconds != 0 || p.End.seconds != 0
}

// Contains reports whether t lies in [Start, End). A point period contains
// only its own instant.
func (p Period) Contains(t Time) bool {
	if !p.IsPeriod() {
		return t == p.Start
	}
	return !t.Before(p.Start) && t.Before(p.End)
}

// Overlaps reports whether p and q share any instant.
func (p Period) Overlaps(q Period) bool {
	if !p.IsPeriod() {
		return q.Contains(p.Start)
	}
	if !q.IsPeriod() {
		return p.Contains(q.Start)
	}
	return p.Start.Before(q.End) && q.Start.Before(p.End)
}

// Center returns the midpoint of the period.
func (p Period) Center() Time {
	return p.Start.Add(p.Delta().DivInt(2))
}

// MoveDelta shifts both ends by d.
func (p Period) MoveDelta(d Delta) Period {
	return Period{Start: p.Start.Add(d), End: p.End.Add(d)}
}
