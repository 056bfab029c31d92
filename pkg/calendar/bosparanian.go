package calendar

import "fmt"

// Bosparanian is the reckoning of the Aventurian role-playing world: twelve
// 30-day months named after the Twelve Gods and five nameless days. Years are
// counted "after Bosparan's Fall" (BF). Day counts are shifted 73 centuries so
// that the nameless days of year 1000 BF fall on the right weekdays.
type Bosparanian struct{}

const bosparanianShift = 365*7300 - 3

var (
	bosparanianMonths = []string{
		"Praios", "Rondra", "Efferd", "Travia", "Boron", "Hesinde", "Firun",
		"Tsa", "Phex", "Peraine", "Ingerimm", "Rahja", "Nameless Days",
	}
	bosparanianMonthAbbrevs = []string{
		"PRA", "RON", "EFF", "TRA", "BOR", "HES", "FIR",
		"TSA", "PHE", "PER", "ING", "RAH", "NL",
	}
	bosparanianWeekdays = []string{
		"Windsday", "Earthsday", "Marketday", "Praiosday", "Rohalsday", "Fireday", "Watersday",
	}
)

func (Bosparanian) Name() string  { return "bosparanian" }
func (Bosparanian) MinDay() int64 { return 0 }
func (Bosparanian) MaxDay() int64 { return maxDatedDay }
func (Bosparanian) Months() int   { return 13 }

func (b Bosparanian) ToDayCount(year, month, day int) (int64, error) {
	return toDayCount(b, year, month, day)
}

func (Bosparanian) dayCount(year, month, day int) int64 {
	return 365*int64(year) + 30*int64(month-1) + int64(day) - 1 + bosparanianShift
}

func (b Bosparanian) FromDayCount(jd int64) (int, int, int, error) {
	if err := checkRange(b, jd); err != nil {
		return 0, 0, 0, err
	}
	n := jd - bosparanianShift
	year := floorDiv(n, 365)
	doy := int(n - 365*year)
	if doy >= 360 {
		return int(year), 13, doy - 359, nil
	}
	return int(year), doy/30 + 1, doy%30 + 1, nil
}

func (b Bosparanian) IsValid(year, month, day int) bool {
	return day >= 1 && day <= b.DaysInMonth(year, month)
}

func (Bosparanian) DaysInMonth(_, month int) int { return thirtyDayMonths(month, 5) }
func (Bosparanian) IsLeapYear(int) bool          { return false }

// Weekday returns 0 for Windsday.
func (Bosparanian) Weekday(day int64) int { return int(floorMod(day, 7)) }
func (Bosparanian) WeekLength() int       { return 7 }

// IsBC is always false; BF years before 0 are still written as negative BF.
func (Bosparanian) IsBC(int) bool { return false }

func (Bosparanian) FormatYear(year int) string { return fmt.Sprintf("%dBF", year) }

func (Bosparanian) MonthName(month int) string     { return nameAt(bosparanianMonths, month) }
func (Bosparanian) MonthAbbrev(month int) string   { return nameAt(bosparanianMonthAbbrevs, month) }
func (Bosparanian) WeekdayName(weekday int) string { return nameAt(bosparanianWeekdays, weekday+1) }
