package calendar

import "strconv"

// Pharaonic is the ancient Egyptian civil calendar: twelve 30-day months
// and five epagomenal days, with no leap years. Weeks are 10-day decans;
// the epagomenal days belong to no decan. Day count 0 is -3968-02-18.
type Pharaonic struct{}

const decanLength = 10

var (
	pharaonicMonths = []string{
		"Thoth", "Phaophi", "Athyr", "Choiak", "Tybi", "Mechir", "Phamenoth",
		"Pharmuthi", "Pachon", "Payni", "Epiphi", "Mesore", "Epagomenal Days",
	}
	pharaonicMonthAbbrevs = []string{
		"I Akhet", "II Akhet", "III Akhet", "IV Akhet",
		"I Peret", "II Peret", "III Peret", "IV Peret",
		"I Shemu", "II Shemu", "III Shemu", "IV Shemu", "Epag",
	}
)

func (Pharaonic) Name() string  { return "pharaonic" }
func (Pharaonic) MinDay() int64 { return 0 }
func (Pharaonic) MaxDay() int64 { return maxDatedDay }
func (Pharaonic) Months() int   { return 13 }

func (p Pharaonic) ToDayCount(year, month, day int) (int64, error) {
	return toDayCount(p, year, month, day)
}

func (Pharaonic) dayCount(year, month, day int) int64 {
	return 365*(int64(year)+3968) + 30*int64(month-1) + int64(day) - 48
}

func (p Pharaonic) FromDayCount(jd int64) (int, int, int, error) {
	if err := checkRange(p, jd); err != nil {
		return 0, 0, 0, err
	}
	year, doy := p.yearAndDayOfYear(jd)
	return year, doy/30 + 1, doy%30 + 1, nil
}

// yearAndDayOfYear returns the year and the zero-based day within it.
func (Pharaonic) yearAndDayOfYear(jd int64) (int, int) {
	f := jd + 47
	return int(floorDiv(f, 365) - 3968), int(floorMod(f, 365))
}

func (p Pharaonic) IsValid(year, month, day int) bool {
	return day >= 1 && day <= p.DaysInMonth(year, month)
}

func (Pharaonic) DaysInMonth(_, month int) int { return thirtyDayMonths(month, 5) }
func (Pharaonic) IsLeapYear(int) bool          { return false }

// Weekday returns the day within the decan. Epagomenal days count from the
// first of them.
func (p Pharaonic) Weekday(jd int64) int {
	_, doy := p.yearAndDayOfYear(jd)
	if doy >= 360 {
		return doy - 360
	}
	return doy % decanLength
}

func (Pharaonic) WeekLength() int { return decanLength }

// WeekNumber returns the decan of the year, 1 to 36. Epagomenal days are
// decan 0.
func (p Pharaonic) WeekNumber(year, month, day int) (int, error) {
	if !p.IsValid(year, month, day) {
		return 0, invalid(p, year, month, day)
	}
	if month == 13 {
		return 0, nil
	}
	return (30*(month-1)+day-1)/decanLength + 1, nil
}

func (Pharaonic) IsBC(year int) bool         { return year <= 0 }
func (Pharaonic) FormatYear(year int) string { return formatEraYear(year) }

func (Pharaonic) MonthName(month int) string   { return nameAt(pharaonicMonths, month) }
func (Pharaonic) MonthAbbrev(month int) string { return nameAt(pharaonicMonthAbbrevs, month) }

// WeekdayName numbers decan days; they had no names.
func (Pharaonic) WeekdayName(weekday int) string {
	if weekday < 0 || weekday >= decanLength {
		return ""
	}
	return "Day " + strconv.Itoa(weekday+1)
}
