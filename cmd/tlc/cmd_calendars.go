package main

import (
	"flag"
	"fmt"

	"github.com/tlcal/tlcal/pkg/calendar"
	"github.com/tlcal/tlcal/pkg/timeline"
)

type calendarInfo struct {
	Name       string   `json:"name"`
	Default    bool     `json:"default"`
	Months     int      `json:"months"`
	WeekLength int      `json:"week_length"`
	Weekdays   []string `json:"weekdays,omitempty"`
	MinDay     int64    `json:"min_day"`
	MaxDay     int64    `json:"max_day"`
	FirstDate  string   `json:"first_date"`
	LastDate   string   `json:"last_date"`
	MonthNames []string `json:"month_names"`
}

func describeCalendar(cal calendar.Calendar) calendarInfo {
	info := calendarInfo{
		Name:       cal.Name(),
		Months:     cal.Months(),
		WeekLength: cal.WeekLength(),
		MinDay:     cal.MinDay(),
		MaxDay:     cal.MaxDay(),
		FirstDate:  formatTime(cal, timeline.MustNew(cal.MinDay(), 0)),
		LastDate:   formatTime(cal, timeline.MustNew(cal.MaxDay(), 0)),
	}
	for wd := 0; wd < cal.WeekLength(); wd++ {
		if name := cal.WeekdayName(wd); name != "" {
			info.Weekdays = append(info.Weekdays, name)
		}
	}
	for m := 1; m <= cal.Months(); m++ {
		info.MonthNames = append(info.MonthNames, cal.MonthName(m))
	}
	return info
}

func (a *app) cmdCalendars(args []string) int {
	flags := flag.NewFlagSet("calendars", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	var infos []calendarInfo
	for _, name := range calendar.Names() {
		cal, err := calendar.Lookup(name)
		if err != nil {
			return fail("calendars", err)
		}
		info := describeCalendar(cal)
		info.Default = name == a.cal.Name()
		infos = append(infos, info)
	}

	if *jsonOut {
		printJSON(map[string]any{"calendars": infos})
		return 0
	}
	for _, info := range infos {
		marker := ""
		if info.Default {
			marker = " (default)"
		}
		fmt.Printf("%-12s %2d months, %2d-day week  from %s (day %s)%s\n",
			info.Name, info.Months, info.WeekLength, info.FirstDate, formatDay(info.MinDay), marker)
	}
	return 0
}
