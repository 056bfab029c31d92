package calendar

import (
	"math"
	"strconv"
)

// Numeric is a calendar without civil structure. The "year" is the day count
// itself, every year has a single month of a single day, and there are no
// weeks. It backs timelines measured in plain numbers.
type Numeric struct{}

func (Numeric) Name() string { return "numeric" }

// MinDay and MaxDay keep day*86400 + seconds within int64.
func (Numeric) MinDay() int64 { return math.MinInt64 / 86400 }
func (Numeric) MaxDay() int64 { return math.MaxInt64/86400 - 1 }
func (Numeric) Months() int   { return 1 }

func (n Numeric) ToDayCount(year, month, day int) (int64, error) {
	return toDayCount(n, year, month, day)
}

func (Numeric) dayCount(year, _, _ int) int64 { return int64(year) }

func (n Numeric) FromDayCount(day int64) (int, int, int, error) {
	if err := checkRange(n, day); err != nil {
		return 0, 0, 0, err
	}
	return int(day), 1, 1, nil
}

func (Numeric) IsValid(_, month, day int) bool { return month == 1 && day == 1 }

func (Numeric) DaysInMonth(_, month int) int {
	if month == 1 {
		return 1
	}
	return 0
}

func (Numeric) IsLeapYear(int) bool     { return false }
func (Numeric) Weekday(int64) int       { return 0 }
func (Numeric) WeekLength() int         { return 1 }
func (Numeric) IsBC(int) bool           { return false }
func (Numeric) FormatYear(y int) string { return strconv.Itoa(y) }
func (Numeric) MonthName(int) string    { return "" }
func (Numeric) MonthAbbrev(int) string  { return "" }
func (Numeric) WeekdayName(int) string  { return "" }

// WeekNumber is always 0.
func (n Numeric) WeekNumber(year, month, day int) (int, error) {
	if !n.IsValid(year, month, day) {
		return 0, invalid(n, year, month, day)
	}
	return 0, nil
}
