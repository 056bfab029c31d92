// Package datetime provides a calendar-aware civil date and time of day.
//
// DateTime is generic over a concrete calendar type, so a
// DateTime[calendar.Gregorian] and a DateTime[calendar.Coptic] cannot be
// mixed by accident. Conversions between calendars go through the linear
// axis:
//
//	t, _ := g.ToTime()
//	c, _ := datetime.FromTime[calendar.Coptic](t)
//
// The type parameter must be a concrete calendar (one of the calendar
// package's zero-size types), never the calendar.Calendar interface itself.
package datetime

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/tlcal/tlcal/pkg/calendar"
	"github.com/tlcal/tlcal/pkg/timeline"
)

var (
	// ErrInvalidTime is returned for a time of day outside 00:00:00-23:59:59.
	ErrInvalidTime = errors.New("invalid time of day")
	// ErrSyntax is returned by Parse for text that is not "Y-M-D [H:M[:S]]".
	ErrSyntax = errors.New("invalid date syntax")
)

// Fields holds the civil components of a DateTime.
type Fields struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// DateTime is a validated civil date and time in calendar C. It is a value
// type; Replace returns a new DateTime.
type DateTime[C calendar.Calendar] struct {
	Fields
}

// New validates and returns the given date and time.
func New[C calendar.Calendar](year, month, day, hour, minute, second int) (DateTime[C], error) {
	return fromFields[C](Fields{year, month, day, hour, minute, second})
}

// FromYMD returns midnight of the given date.
func FromYMD[C calendar.Calendar](year, month, day int) (DateTime[C], error) {
	return New[C](year, month, day, 0, 0, 0)
}

func fromFields[C calendar.Calendar](f Fields) (DateTime[C], error) {
	var cal C
	if !cal.IsValid(f.Year, f.Month, f.Day) {
		return DateTime[C]{}, fmt.Errorf("%w: %s %d-%d-%d",
			calendar.ErrInvalidDate, cal.Name(), f.Year, f.Month, f.Day)
	}
	if f.Hour < 0 || f.Hour > 23 || f.Minute < 0 || f.Minute > 59 || f.Second < 0 || f.Second > 59 {
		return DateTime[C]{}, fmt.Errorf("%w: %02d:%02d:%02d", ErrInvalidTime, f.Hour, f.Minute, f.Second)
	}
	return DateTime[C]{Fields: f}, nil
}

// FromTime converts a point on the linear axis.
func FromTime[C calendar.Calendar](t timeline.Time) (DateTime[C], error) {
	var cal C
	y, m, d, err := cal.FromDayCount(t.Day())
	if err != nil {
		return DateTime[C]{}, err
	}
	h, mi, s := t.TimeOfDay()
	return DateTime[C]{Fields{y, m, d, h, mi, s}}, nil
}

// ToTime converts to a point on the linear axis. Dates outside the
// calendar's [MinDay, MaxDay] fail.
func (dt DateTime[C]) ToTime() (timeline.Time, error) {
	var cal C
	day, err := cal.ToDayCount(dt.Year, dt.Month, dt.Day)
	if err != nil {
		return timeline.Time{}, err
	}
	seconds := int64(dt.Hour*3600 + dt.Minute*60 + dt.Second)
	return timeline.NewBounded(day, seconds, cal.MinDay())
}

// Option changes one field in Replace.
type Option func(*Fields)

func WithYear(y int) Option   { return func(f *Fields) { f.Year = y } }
func WithMonth(m int) Option  { return func(f *Fields) { f.Month = m } }
func WithDay(d int) Option    { return func(f *Fields) { f.Day = d } }
func WithHour(h int) Option   { return func(f *Fields) { f.Hour = h } }
func WithMinute(m int) Option { return func(f *Fields) { f.Minute = m } }
func WithSecond(s int) Option { return func(f *Fields) { f.Second = s } }

// Replace returns a copy with the given fields changed. The result is
// validated as a whole; an impossible combination such as 31 February is an
// error, never clamped.
func (dt DateTime[C]) Replace(opts ...Option) (DateTime[C], error) {
	f := dt.Fields
	for _, o := range opts {
		o(&f)
	}
	return fromFields[C](f)
}

// Calendar returns the calendar of dt.
func (DateTime[C]) Calendar() C {
	var cal C
	return cal
}

// WeekNumber returns the week of year; see calendar.WeekNumber.
func (dt DateTime[C]) WeekNumber() (int, error) {
	return calendar.WeekNumber(dt.Calendar(), dt.Year, dt.Month, dt.Day)
}

// Weekday returns the calendar's weekday index, 0 being its first weekday.
func (dt DateTime[C]) Weekday() (int, error) {
	cal := dt.Calendar()
	day, err := cal.ToDayCount(dt.Year, dt.Month, dt.Day)
	if err != nil {
		return 0, err
	}
	return cal.Weekday(day), nil
}

func (dt DateTime[C]) IsBC() bool       { return dt.Calendar().IsBC(dt.Year) }
func (dt DateTime[C]) DaysInMonth() int { return dt.Calendar().DaysInMonth(dt.Year, dt.Month) }

// IsFirstDayInYear reports whether dt is midnight of the first day of the year.
func (dt DateTime[C]) IsFirstDayInYear() bool {
	return dt.Month == 1 && dt.IsFirstOfMonth()
}

// IsFirstOfMonth reports whether dt is midnight of the first day of a month.
func (dt DateTime[C]) IsFirstOfMonth() bool {
	return dt.Day == 1 && dt.Hour == 0 && dt.Minute == 0 && dt.Second == 0
}

// Tuple returns all six fields in order.
func (dt DateTime[C]) Tuple() (year, month, day, hour, minute, second int) {
	return dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second
}

// Compare orders by the field tuple, which matches the order on the axis.
func (dt DateTime[C]) Compare(other DateTime[C]) int {
	a := [...]int{dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second}
	b := [...]int{other.Year, other.Month, other.Day, other.Hour, other.Minute, other.Second}
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

func (dt DateTime[C]) Equal(other DateTime[C]) bool { return dt.Fields == other.Fields }

// Format renders "Y-MM-DD HH:MM:SS" with the astronomical year number, the
// form accepted by Parse.
func (dt DateTime[C]) Format() string {
	return fmt.Sprintf("%d-%02d-%02d %02d:%02d:%02d",
		dt.Year, dt.Month, dt.Day, dt.Hour, dt.Minute, dt.Second)
}

func (dt DateTime[C]) String() string { return dt.Format() }

// FormatDate renders the date for display, e.g. "7 Jul 2013" or "1 Jan 5 BC".
func (dt DateTime[C]) FormatDate() string {
	cal := dt.Calendar()
	return fmt.Sprintf("%d %s %s", dt.Day, cal.MonthAbbrev(dt.Month), cal.FormatYear(dt.Year))
}

var dateRE = regexp.MustCompile(`^\s*(-?\d+)-(\d{1,2})-(\d{1,2})(?:[ T](\d{1,2}):(\d{1,2})(?::(\d{1,2}))?)?\s*$`)

// Parse reads "Y-M-D", "Y-M-D H:M" or "Y-M-D H:M:S". Years may be negative.
func Parse[C calendar.Calendar](s string) (DateTime[C], error) {
	m := dateRE.FindStringSubmatch(s)
	if m == nil {
		return DateTime[C]{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	var n [6]int
	for i, part := range m[1:] {
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return DateTime[C]{}, fmt.Errorf("%w: %q: %v", ErrSyntax, s, err)
		}
		n[i] = v
	}
	return New[C](n[0], n[1], n[2], n[3], n[4], n[5])
}
