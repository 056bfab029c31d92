package strip

import (
	"fmt"
	"strconv"

	"github.com/tlcal/tlcal/pkg/calendar"
	"github.com/tlcal/tlcal/pkg/timeline"
)

// Year divides the axis into calendar years.
type Year[C calendar.Calendar] struct{}

func (Year[C]) Start(t timeline.Time) (timeline.Time, error) {
	dt, err := dateTime[C](t)
	if err != nil {
		return timeline.Time{}, err
	}
	return midnight[C](dt.Year, 1, 1)
}

func (Year[C]) Increment(t timeline.Time) (timeline.Time, error) {
	dt, err := dateTime[C](t)
	if err != nil {
		return timeline.Time{}, err
	}
	return midnight[C](dt.Year+1, 1, 1)
}

func (Year[C]) Label(t timeline.Time, _ bool) (string, error) {
	dt, err := dateTime[C](t)
	if err != nil {
		return "", err
	}
	return dt.Calendar().FormatYear(dt.Year), nil
}

// Month divides the axis into months, including any epagomenal month.
type Month[C calendar.Calendar] struct{}

func (Month[C]) Start(t timeline.Time) (timeline.Time, error) {
	dt, err := dateTime[C](t)
	if err != nil {
		return timeline.Time{}, err
	}
	return midnight[C](dt.Year, dt.Month, 1)
}

func (Month[C]) Increment(t timeline.Time) (timeline.Time, error) {
	dt, err := dateTime[C](t)
	if err != nil {
		return timeline.Time{}, err
	}
	if dt.Month < dt.Calendar().Months() {
		return midnight[C](dt.Year, dt.Month+1, 1)
	}
	return midnight[C](dt.Year+1, 1, 1)
}

// Label returns "Jul" or, for major labels, "Jul 2013".
func (Month[C]) Label(t timeline.Time, major bool) (string, error) {
	dt, err := dateTime[C](t)
	if err != nil {
		return "", err
	}
	cal := dt.Calendar()
	if major {
		return fmt.Sprintf("%s %s", cal.MonthAbbrev(dt.Month), cal.FormatYear(dt.Year)), nil
	}
	return cal.MonthAbbrev(dt.Month), nil
}

// Day divides the axis into days.
type Day[C calendar.Calendar] struct{}

func (Day[C]) Start(t timeline.Time) (timeline.Time, error) {
	var cal C
	return timeline.NewBounded(t.Day(), 0, cal.MinDay())
}

func (Day[C]) Increment(t timeline.Time) (timeline.Time, error) {
	return t.Add(timeline.Days(1)), nil
}

// Label returns "7" or, for major labels, "7 Jul 2013".
func (Day[C]) Label(t timeline.Time, major bool) (string, error) {
	dt, err := dateTime[C](t)
	if err != nil {
		return "", err
	}
	if major {
		return dt.FormatDate(), nil
	}
	return strconv.Itoa(dt.Day), nil
}

// Hour divides the axis into hours.
type Hour[C calendar.Calendar] struct{}

func (Hour[C]) Start(t timeline.Time) (timeline.Time, error) {
	h, _, _ := t.TimeOfDay()
	return timeline.New(t.Day(), int64(h)*3600)
}

func (Hour[C]) Increment(t timeline.Time) (timeline.Time, error) {
	return t.Add(timeline.Seconds(3600)), nil
}

// Label returns "14" or, for major labels, "7 Jul 2013 14h".
func (Hour[C]) Label(t timeline.Time, major bool) (string, error) {
	dt, err := dateTime[C](t)
	if err != nil {
		return "", err
	}
	if major {
		return fmt.Sprintf("%s %dh", dt.FormatDate(), dt.Hour), nil
	}
	return strconv.Itoa(dt.Hour), nil
}

// Numeric divides a numeric axis into blocks of Step units. A zero Step
// means 1.
type Numeric struct {
	Step int64
}

func (n Numeric) step() int64 {
	if n.Step <= 0 {
		return 1
	}
	return n.Step
}

func (n Numeric) Start(t timeline.Time) (timeline.Time, error) {
	return timeline.New(timeline.FloorDiv(t.Day(), n.step())*n.step(), 0)
}

func (n Numeric) Increment(t timeline.Time) (timeline.Time, error) {
	return t.Add(timeline.Days(n.step())), nil
}

// Label is the number at the start of the block.
func (n Numeric) Label(t timeline.Time, _ bool) (string, error) {
	start, err := n.Start(t)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(start.Day(), 10), nil
}
