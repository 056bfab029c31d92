// Package timeline implements the linear time axis shared by every calendar.
//
// A point on the axis is a (day, seconds-of-day) pair. The day is a signed
// day count from a fixed epoch (day 0 is the Julian day 0 for the dated
// calendars) and seconds-of-day is always in [0, 86400). Calendars convert
// their civil dates to and from this axis, which makes times expressed in
// different calendars directly comparable.
//
// All arithmetic uses floor division so that moving backwards across
// midnight borrows from the previous day instead of producing a negative
// seconds-of-day. Time, Delta and Period are immutable values and safe to
// share between goroutines.
package timeline

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SecondsPerDay is the length of one day on the axis.
const SecondsPerDay = 24 * 60 * 60

var (
	// ErrSecondsOutOfRange is returned when seconds-of-day is outside [0, 86400).
	ErrSecondsOutOfRange = errors.New("seconds of day out of range")
	// ErrBeforeMinDay is returned when a day count precedes a calendar's first day.
	ErrBeforeMinDay = errors.New("day count before minimum day")
)

// Time is a point on the linear axis.
type Time struct {
	day     int64
	seconds int64
}

// New returns the time at seconds into the given day.
func New(day, seconds int64) (Time, error) {
	if seconds < 0 || seconds >= SecondsPerDay {
		return Time{}, fmt.Errorf("%w: %d", ErrSecondsOutOfRange, seconds)
	}
	return Time{day: day, seconds: seconds}, nil
}

// NewBounded is New with the additional constraint day >= minDay. Calendars
// call it with their own minimum day.
func NewBounded(day, seconds, minDay int64) (Time, error) {
	if day < minDay {
		return Time{}, fmt.Errorf("%w: %d < %d", ErrBeforeMinDay, day, minDay)
	}
	return New(day, seconds)
}

// MustNew is like New but panics on invalid input. Intended for fixtures.
func MustNew(day, seconds int64) Time {
	t, err := New(day, seconds)
	if err != nil {
		panic(err)
	}
	return t
}

// Day returns the day count.
func (t Time) Day() int64 { return t.day }

// Seconds returns the seconds elapsed since the start of the day.
func (t Time) Seconds() int64 { return t.seconds }

// TimeOfDay splits seconds-of-day into hour, minute and second.
func (t Time) TimeOfDay() (hour, minute, second int) {
	s := int(t.seconds)
	return s / 3600, (s / 60) % 60, s % 60
}

// DayOfWeek returns the day count modulo 7. Day 0 maps to 0; calendars
// decide which named weekday that is.
func (t Time) DayOfWeek() int {
	return int(FloorMod(t.day, 7))
}

// StartOfDay returns midnight of the same day.
func (t Time) StartOfDay() Time {
	return Time{day: t.day}
}

// Add moves t forward by d (backwards for negative d).
func (t Time) Add(d Delta) Time {
	total := t.day*SecondsPerDay + t.seconds + d.seconds
	return Time{
		day:     FloorDiv(total, SecondsPerDay),
		seconds: FloorMod(total, SecondsPerDay),
	}
}

// Sub moves t backwards by d.
func (t Time) Sub(d Delta) Time {
	return t.Add(d.Neg())
}

// Diff returns the delta t - u.
func (t Time) Diff(u Time) Delta {
	return Delta{seconds: (t.day-u.day)*SecondsPerDay + (t.seconds - u.seconds)}
}

// Compare returns -1, 0 or +1 depending on whether t is before, equal to or
// after u.
func (t Time) Compare(u Time) int {
	switch {
	case t.day < u.day:
		return -1
	case t.day > u.day:
		return 1
	case t.seconds < u.seconds:
		return -1
	case t.seconds > u.seconds:
		return 1
	}
	return 0
}

// Before reports whether t is strictly before u.
func (t Time) Before(u Time) bool { return t.Compare(u) < 0 }

// After reports whether t is strictly after u.
func (t Time) After(u Time) bool { return t.Compare(u) > 0 }

// Equal reports whether t and u are the same point on the axis.
func (t Time) Equal(u Time) bool { return t == u }

func (t Time) String() string {
	return fmt.Sprintf("Time(%d, %d)", t.day, t.seconds)
}

type timeJSON struct {
	Day     int64 `json:"day"`
	Seconds int64 `json:"seconds"`
}

// MarshalJSON encodes t as {"day": d, "seconds": s}.
func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(timeJSON{Day: t.day, Seconds: t.seconds})
}

// UnmarshalJSON decodes and validates the form written by MarshalJSON.
func (t *Time) UnmarshalJSON(b []byte) error {
	var v timeJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	parsed, err := New(v.Day, v.Seconds)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// FloorDiv divides rounding toward negative infinity. Go's / truncates
// toward zero, which is wrong for negative day counts.
func FloorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod returns a - b*FloorDiv(a, b); the result has the sign of b.
func FloorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
