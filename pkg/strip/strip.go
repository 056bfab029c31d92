// Package strip divides the linear axis into labelled calendar periods:
// centuries, decades, years, months, weeks, days and hours.
//
// A strip answers three questions about a time t: where the period
// containing t starts, where the period starting at t ends, and what to call
// it. Labels come in two flavours. A minor label names the period among its
// siblings ("Jul"); a major label stands alone ("Jul 2013").
package strip

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tlcal/tlcal/pkg/calendar"
	"github.com/tlcal/tlcal/pkg/datetime"
	"github.com/tlcal/tlcal/pkg/timeline"
)

var (
	// ErrUnknownKind is returned by Lookup for an unsupported strip name.
	ErrUnknownKind = errors.New("unknown strip kind")
	// ErrUnknownWeekStart is returned by ParseWeekStart.
	ErrUnknownWeekStart = errors.New("unknown week start")
	// ErrNoProgress is returned by Periods and Take when a strip fails to advance.
	ErrNoProgress = errors.New("strip increment did not advance")
)

// Strip divides the axis into consecutive periods.
type Strip interface {
	// Start returns the start of the period containing t.
	Start(t timeline.Time) (timeline.Time, error)
	// Increment returns the start of the period following the one that
	// starts at t.
	Increment(t timeline.Time) (timeline.Time, error)
	// Label names the period containing t.
	Label(t timeline.Time, major bool) (string, error)
}

// Kind names a strip granularity.
type Kind string

const (
	KindCentury Kind = "century"
	KindDecade  Kind = "decade"
	KindYear    Kind = "year"
	KindMonth   Kind = "month"
	KindWeek    Kind = "week"
	KindDay     Kind = "day"
	KindHour    Kind = "hour"
)

// Kinds lists the strip kinds from coarsest to finest.
var Kinds = []Kind{KindCentury, KindDecade, KindYear, KindMonth, KindWeek, KindDay, KindHour}

// Lookup returns the strip of the given kind for a calendar picked at run
// time. The numeric calendar supports century, decade and day, which step
// by 100, 10 and 1.
func Lookup(cal calendar.Calendar, kind Kind, ws WeekStart) (Strip, error) {
	switch cal.(type) {
	case calendar.Gregorian:
		return forCalendar[calendar.Gregorian](kind, ws)
	case calendar.Coptic:
		return forCalendar[calendar.Coptic](kind, ws)
	case calendar.Pharaonic:
		return forCalendar[calendar.Pharaonic](kind, ws)
	case calendar.Bosparanian:
		return forCalendar[calendar.Bosparanian](kind, ws)
	case calendar.Numeric:
		switch kind {
		case KindCentury:
			return Numeric{Step: 100}, nil
		case KindDecade:
			return Numeric{Step: 10}, nil
		case KindDay:
			return Numeric{Step: 1}, nil
		}
		return nil, fmt.Errorf("%w: %q for numeric calendar", ErrUnknownKind, kind)
	}
	return nil, fmt.Errorf("%w: no strips for calendar %s", ErrUnknownKind, cal.Name())
}

func forCalendar[C calendar.Calendar](kind Kind, ws WeekStart) (Strip, error) {
	switch kind {
	case KindCentury:
		return Century[C]{}, nil
	case KindDecade:
		return Decade[C]{}, nil
	case KindYear:
		return Year[C]{}, nil
	case KindMonth:
		return Month[C]{}, nil
	case KindWeek:
		var cal C
		if err := checkWeekStart(cal, ws); err != nil {
			return nil, err
		}
		return NewWeek[C](ws), nil
	case KindDay:
		return Day[C]{}, nil
	case KindHour:
		return Hour[C]{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Periods returns the consecutive strip periods covering p, starting with
// the one that contains p.Start. A zero-length p yields the single period
// containing it.
func Periods(s Strip, p timeline.Period) ([]timeline.Period, error) {
	cur, err := s.Start(p.Start)
	if err != nil {
		return nil, err
	}
	var out []timeline.Period
	for {
		next, err := s.Increment(cur)
		if err != nil {
			return out, err
		}
		if !next.After(cur) {
			return out, fmt.Errorf("%w: %v -> %v", ErrNoProgress, cur, next)
		}
		out = append(out, timeline.Period{Start: cur, End: next})
		if !next.Before(p.End) {
			return out, nil
		}
		cur = next
	}
}

// Take returns n consecutive strip periods starting with the one that
// contains t.
func Take(s Strip, t timeline.Time, n int) ([]timeline.Period, error) {
	cur, err := s.Start(t)
	if err != nil {
		return nil, err
	}
	out := make([]timeline.Period, 0, n)
	for len(out) < n {
		next, err := s.Increment(cur)
		if err != nil {
			return out, err
		}
		if !next.After(cur) {
			return out, fmt.Errorf("%w: %v -> %v", ErrNoProgress, cur, next)
		}
		out = append(out, timeline.Period{Start: cur, End: next})
		cur = next
	}
	return out, nil
}

// WeekStart selects which weekday opens a week.
type WeekStart int

const (
	// FirstWeekday starts weeks on the calendar's weekday 0 (Monday in the
	// Gregorian calendar). Only these weeks are numbered.
	FirstWeekday WeekStart = iota
	// PreviousWeekday starts weeks one day earlier (Sunday in the Gregorian
	// calendar, Psabbaton in the Coptic).
	PreviousWeekday
)

func (ws WeekStart) String() string {
	if ws == PreviousWeekday {
		return "previous"
	}
	return "first"
}

// ParseWeekStart accepts "first", "previous", or the name of the
// calendar's first or last weekday, case-insensitively. Decan calendars
// only accept the first weekday.
func ParseWeekStart(cal calendar.Calendar, s string) (WeekStart, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "first", strings.ToLower(cal.WeekdayName(0)):
		return FirstWeekday, nil
	case "previous", strings.ToLower(cal.WeekdayName(cal.WeekLength() - 1)):
		if err := checkWeekStart(cal, PreviousWeekday); err != nil {
			return FirstWeekday, err
		}
		return PreviousWeekday, nil
	}
	return FirstWeekday, fmt.Errorf("%w: %q for %s", ErrUnknownWeekStart, s, cal.Name())
}

// checkWeekStart rejects PreviousWeekday for the Pharaonic calendar. Its
// decans restart with every month and the epagomenal days, so there is no
// fixed weekday before the first one.
func checkWeekStart(cal calendar.Calendar, ws WeekStart) error {
	if _, decans := cal.(calendar.Pharaonic); decans && ws == PreviousWeekday {
		return fmt.Errorf("%w: %s weeks always open on the first day of a decan", ErrUnknownWeekStart, cal.Name())
	}
	return nil
}

// dateTime converts t into calendar C.
func dateTime[C calendar.Calendar](t timeline.Time) (datetime.DateTime[C], error) {
	return datetime.FromTime[C](t)
}

// midnight returns the start of the given civil date.
func midnight[C calendar.Calendar](year, month, day int) (timeline.Time, error) {
	dt, err := datetime.FromYMD[C](year, month, day)
	if err != nil {
		return timeline.Time{}, err
	}
	return dt.ToTime()
}
