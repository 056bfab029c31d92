// Package calendar converts civil dates in several calendars to and from
// day counts on the shared linear axis.
//
// Every dated calendar uses the same epoch: day count 0 is Julian day 0,
// which is -4713-11-24 in the proleptic Gregorian calendar. That makes a day
// count produced by one calendar directly usable by any other. The numeric
// calendar is the exception; it has no civil structure and its day count is
// the "year" itself.
//
// Calendars are stateless zero-size values. They are safe for concurrent use
// and can be instantiated with a composite literal, which the generic
// datetime and strip packages rely on.
package calendar

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tlcal/tlcal/pkg/timeline"
)

var (
	// ErrInvalidDate is returned for a (year, month, day) tuple the calendar
	// does not contain.
	ErrInvalidDate = errors.New("invalid date")
	// ErrOutOfRange is returned when a day count lies outside the calendar's
	// supported range.
	ErrOutOfRange = errors.New("day count out of range")
	// ErrUnknownCalendar is returned by Lookup for an unregistered name.
	ErrUnknownCalendar = errors.New("unknown calendar")
)

// Calendar converts between civil dates and day counts.
type Calendar interface {
	// Name is the registry key, e.g. "gregorian".
	Name() string
	// MinDay is the first day count the calendar can represent.
	MinDay() int64
	// MaxDay is the last day count the calendar can represent.
	MaxDay() int64
	// Months is the number of months in a year.
	Months() int
	// ToDayCount converts a civil date. Invalid tuples return ErrInvalidDate
	// and dates outside [MinDay, MaxDay] return ErrOutOfRange.
	ToDayCount(year, month, day int) (int64, error)
	// FromDayCount converts a day count back to a civil date.
	FromDayCount(day int64) (y, m, d int, err error)
	IsValid(year, month, day int) bool
	DaysInMonth(year, month int) int
	IsLeapYear(year int) bool
	// Weekday maps a day count to [0, WeekLength()). 0 is the calendar's
	// first weekday.
	Weekday(day int64) int
	WeekLength() int
	// IsBC reports whether year belongs to the era before the epoch year 1.
	IsBC(year int) bool
	FormatYear(year int) string
	MonthName(month int) string
	MonthAbbrev(month int) string
	WeekdayName(weekday int) string
}

// WeekNumberer is implemented by calendars whose weeks do not follow the
// generic rule of WeekNumber.
type WeekNumberer interface {
	WeekNumber(year, month, day int) (int, error)
}

// WeekNumber returns the week of year for a date in cal.
//
// Week 1 of a year starts on the first weekday on or before day 4 of month 1.
// A date belongs to the latest of year+1, year or year-1 whose week 1 has
// already started, so the last days of December can be week 1 of the next
// year and the first days of January week 52 or 53 of the previous one.
func WeekNumber(cal Calendar, year, month, day int) (int, error) {
	if wn, ok := cal.(WeekNumberer); ok {
		return wn.WeekNumber(year, month, day)
	}
	dc, err := cal.ToDayCount(year, month, day)
	if err != nil {
		return 0, err
	}
	for _, y := range []int{year + 1, year, year - 1} {
		anchor, err := weekOneStart(cal, y)
		if err != nil {
			return 0, err
		}
		if diff := dc - anchor; diff >= 0 {
			return int(diff/int64(cal.WeekLength())) + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: no week found for %d-%d-%d", ErrOutOfRange, year, month, day)
}

// weekOneStart may fall outside cal's range for the probe years next to
// MinDay and MaxDay, so it uses the unchecked day count where it can.
func weekOneStart(cal Calendar, year int) (int64, error) {
	var d4 int64
	if dc, ok := cal.(dayCounter); ok {
		d4 = dc.dayCount(year, 1, 4)
	} else {
		var err error
		if d4, err = cal.ToDayCount(year, 1, 4); err != nil {
			return 0, err
		}
	}
	return d4 - int64(cal.Weekday(d4)), nil
}

// Lookup returns the calendar registered under name.
func Lookup(name string) (Calendar, error) {
	c, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCalendar, name)
	}
	return c, nil
}

// Names lists registered calendar names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var registry = map[string]Calendar{
	Gregorian{}.Name():   Gregorian{},
	Coptic{}.Name():      Coptic{},
	Pharaonic{}.Name():   Pharaonic{},
	Bosparanian{}.Name(): Bosparanian{},
	Numeric{}.Name():     Numeric{},
}

// dayCounter is the unchecked conversion behind each built-in ToDayCount.
// It assumes a valid tuple.
type dayCounter interface {
	dayCount(year, month, day int) int64
}

type countingCalendar interface {
	Calendar
	dayCounter
}

func toDayCount(cal countingCalendar, year, month, day int) (int64, error) {
	if !cal.IsValid(year, month, day) {
		return 0, invalid(cal, year, month, day)
	}
	dc := cal.dayCount(year, month, day)
	if err := checkRange(cal, dc); err != nil {
		return 0, fmt.Errorf("%s %d-%d-%d: %w", cal.Name(), year, month, day, err)
	}
	return dc, nil
}

// checkRange enforces [MinDay, MaxDay] on a day count.
func checkRange(cal Calendar, day int64) error {
	if day < cal.MinDay() || day > cal.MaxDay() {
		return fmt.Errorf("%w: %d not in [%d, %d] for %s",
			ErrOutOfRange, day, cal.MinDay(), cal.MaxDay(), cal.Name())
	}
	return nil
}

func invalid(cal Calendar, year, month, day int) error {
	return fmt.Errorf("%w: %s %d-%d-%d", ErrInvalidDate, cal.Name(), year, month, day)
}

// thirtyDayMonths implements the 12x30 + epagomenal month structure shared
// by the Egyptian-style calendars.
func thirtyDayMonths(month, epagomenal int) int {
	switch {
	case month >= 1 && month <= 12:
		return 30
	case month == 13:
		return epagomenal
	}
	return 0
}

// formatEraYear renders astronomical year numbers the historical way: year 0
// is "1 BC", year -4 is "5 BC".
func formatEraYear(year int) string {
	if year <= 0 {
		return fmt.Sprintf("%d BC", 1-year)
	}
	return fmt.Sprintf("%d", year)
}

func floorDiv(a, b int64) int64 { return timeline.FloorDiv(a, b) }
func floorMod(a, b int64) int64 { return timeline.FloorMod(a, b) }

func nameAt(names []string, i int) string {
	if i < 1 || i > len(names) {
		return ""
	}
	return names[i-1]
}
