package calendar

// Coptic is the Alexandrian calendar: twelve 30-day months followed by the
// epagomenal month of 5 days, 6 in leap years. Day count 0 is -4996-05-05.
type Coptic struct{}

var (
	copticMonths = []string{
		"Thout", "Paopi", "Hathor", "Koiak", "Tobi", "Meshir", "Paremhat",
		"Parmouti", "Pashons", "Paoni", "Epip", "Mesori", "Pi Kogi Enavot",
	}
	copticMonthAbbrevs = []string{
		"Tho", "Pao", "Hat", "Koi", "Tob", "Mes", "Phat",
		"Pmou", "Pash", "Pan", "Epi", "Meso", "PiK",
	}
	copticWeekdays = []string{
		"Tkyriaka", "Pesnau", "Pshoment", "Peftoou", "Ptiou", "Psoou", "Psabbaton",
	}
)

func (Coptic) Name() string  { return "coptic" }
func (Coptic) MinDay() int64 { return 0 }
func (Coptic) MaxDay() int64 { return maxDatedDay }
func (Coptic) Months() int   { return 13 }

func (c Coptic) ToDayCount(year, month, day int) (int64, error) {
	return toDayCount(c, year, month, day)
}

func (Coptic) dayCount(year, month, day int) int64 {
	return floorDiv(1461*(int64(year)+4996), 4) + 30*int64(month-1) + int64(day) - 125
}

func (c Coptic) FromDayCount(jd int64) (int, int, int, error) {
	if err := checkRange(c, jd); err != nil {
		return 0, 0, 0, err
	}
	e := 4*(jd+124) + 3
	year := floorDiv(e, 1461) - 4996
	doy := floorMod(e, 1461) / 4
	return int(year), int(doy/30) + 1, int(doy%30) + 1, nil
}

func (c Coptic) IsValid(year, month, day int) bool {
	return day >= 1 && day <= c.DaysInMonth(year, month)
}

func (c Coptic) DaysInMonth(year, month int) int {
	if c.IsLeapYear(year) {
		return thirtyDayMonths(month, 6)
	}
	return thirtyDayMonths(month, 5)
}

// IsLeapYear reports whether year ends with a sixth epagomenal day. That is
// the year before a Julian leap year.
func (Coptic) IsLeapYear(year int) bool { return floorMod(int64(year)+1, 4) == 0 }

// Weekday returns 0 for Tkyriaka (Sunday).
func (Coptic) Weekday(day int64) int { return int(floorMod(day+1, 7)) }
func (Coptic) WeekLength() int       { return 7 }

func (Coptic) IsBC(year int) bool         { return year <= 0 }
func (Coptic) FormatYear(year int) string { return formatEraYear(year) }

func (Coptic) MonthName(month int) string     { return nameAt(copticMonths, month) }
func (Coptic) MonthAbbrev(month int) string   { return nameAt(copticMonthAbbrevs, month) }
func (Coptic) WeekdayName(weekday int) string { return nameAt(copticWeekdays, weekday+1) }
