package calendar

// Gregorian is the proleptic Gregorian calendar. Day counts are Julian day
// numbers; year 0 exists and is shown as "1 BC".
type Gregorian struct{}

// maxDatedDay is 9990-01-01 Gregorian. Every dated calendar shares it so
// that converted times always fit in four-digit Gregorian years.
const maxDatedDay = 5369833

var (
	gregorianMonths = []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
	gregorianWeekdays = []string{
		"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
	}
)

func (Gregorian) Name() string  { return "gregorian" }
func (Gregorian) MinDay() int64 { return 0 }
func (Gregorian) MaxDay() int64 { return maxDatedDay }
func (Gregorian) Months() int   { return 12 }

// ToDayCount uses the formula from Claus Tøndering's calendar FAQ with every
// division replaced by floor division, which keeps it correct for years
// before 1 and for the negative intermediate values they produce.
func (g Gregorian) ToDayCount(year, month, day int) (int64, error) {
	return toDayCount(g, year, month, day)
}

func (Gregorian) dayCount(year, month, day int) int64 {
	a := floorDiv(int64(14-month), 12)
	y := int64(year) + 4800 - a
	m := int64(month) + 12*a - 3
	return int64(day) + floorDiv(153*m+2, 5) + 365*y +
		floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) - 32045
}

// FromDayCount is the inverse of ToDayCount.
func (g Gregorian) FromDayCount(jd int64) (int, int, int, error) {
	if err := checkRange(g, jd); err != nil {
		return 0, 0, 0, err
	}
	a := jd + 32044
	b := floorDiv(4*a+3, 146097)
	c := a - floorDiv(146097*b, 4)
	d := floorDiv(4*c+3, 1461)
	e := c - floorDiv(1461*d, 4)
	m := floorDiv(5*e+2, 153)
	day := e - floorDiv(153*m+2, 5) + 1
	month := m + 3 - 12*floorDiv(m, 10)
	year := 100*b + d - 4800 + floorDiv(m, 10)
	return int(year), int(month), int(day), nil
}

func (g Gregorian) IsValid(year, month, day int) bool {
	return month >= 1 && month <= 12 && day >= 1 && day <= g.DaysInMonth(year, month)
}

func (g Gregorian) DaysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if g.IsLeapYear(year) {
			return 29
		}
		return 28
	}
	return 0
}

func (Gregorian) IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Weekday returns 0 for Monday. Julian day 0 was a Monday.
func (Gregorian) Weekday(day int64) int { return int(floorMod(day, 7)) }
func (Gregorian) WeekLength() int       { return 7 }

// IsBC reports true for year 0 and earlier (1 BC and earlier).
func (Gregorian) IsBC(year int) bool { return year <= 0 }

func (Gregorian) FormatYear(year int) string { return formatEraYear(year) }

func (Gregorian) MonthName(month int) string { return nameAt(gregorianMonths, month) }

func (Gregorian) MonthAbbrev(month int) string {
	n := nameAt(gregorianMonths, month)
	if len(n) > 3 {
		n = n[:3]
	}
	return n
}

func (Gregorian) WeekdayName(weekday int) string { return nameAt(gregorianWeekdays, weekday+1) }
