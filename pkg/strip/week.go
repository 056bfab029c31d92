package strip

import (
	"fmt"

	"github.com/tlcal/tlcal/pkg/calendar"
	"github.com/tlcal/tlcal/pkg/datetime"
	"github.com/tlcal/tlcal/pkg/timeline"
)

// Week divides the axis into weeks of the calendar's week length. In the
// Pharaonic calendar these are decans, and the epagomenal days form a short
// week of their own.
type Week[C calendar.Calendar] struct {
	start WeekStart
}

// NewWeek returns a week strip with weeks opening on ws.
func NewWeek[C calendar.Calendar](ws WeekStart) Week[C] {
	return Week[C]{start: ws}
}

func (w Week[C]) Start(t timeline.Time) (timeline.Time, error) {
	var cal C
	if err := checkWeekStart(cal, w.start); err != nil {
		return timeline.Time{}, err
	}
	wd := cal.Weekday(t.Day())
	if w.start == PreviousWeekday {
		wd = (wd + 1) % cal.WeekLength()
	}
	return timeline.NewBounded(t.Day()-int64(wd), 0, cal.MinDay())
}

// Increment steps one week length forward and snaps back to a week start,
// which lands on the next week even when the current one is short.
func (w Week[C]) Increment(t timeline.Time) (timeline.Time, error) {
	var cal C
	return w.Start(t.Add(timeline.Days(int64(cal.WeekLength()))))
}

// Label returns the range of the week, e.g. "1-7 Jul 2013", prefixed with
// the week number when weeks open on the first weekday. Minor labels are
// empty.
func (w Week[C]) Label(t timeline.Time, major bool) (string, error) {
	if !major {
		return "", nil
	}
	first, err := w.Start(t)
	if err != nil {
		return "", err
	}
	next, err := w.Increment(first)
	if err != nil {
		return "", err
	}
	rng, err := rangeString[C](first, next.Sub(timeline.Days(1)))
	if err != nil {
		return "", err
	}
	if w.start != FirstWeekday {
		return rng, nil
	}
	dt, err := dateTime[C](t)
	if err != nil {
		return "", err
	}
	n, err := dt.WeekNumber()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Week %d (%s)", n, rng), nil
}

// rangeString formats first..last without repeating a shared month or year:
// "1-7 Jul 2013", "25 Nov-1 Dec 2013", "30 Dec 2013-5 Jan 2014".
func rangeString[C calendar.Calendar](first, last timeline.Time) (string, error) {
	a, err := datetime.FromTime[C](first)
	if err != nil {
		return "", err
	}
	b, err := datetime.FromTime[C](last)
	if err != nil {
		return "", err
	}
	cal := a.Calendar()
	switch {
	case a.Year != b.Year:
		return fmt.Sprintf("%s-%s", a.FormatDate(), b.FormatDate()), nil
	case a.Month != b.Month:
		return fmt.Sprintf("%d %s-%s", a.Day, cal.MonthAbbrev(a.Month), b.FormatDate()), nil
	}
	return fmt.Sprintf("%d-%s", a.Day, b.FormatDate()), nil
}
