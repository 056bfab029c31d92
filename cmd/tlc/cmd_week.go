package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tlcal/tlcal/pkg/datetime"
	"github.com/tlcal/tlcal/pkg/strip"
	"github.com/tlcal/tlcal/pkg/timeline"
)

func (a *app) cmdWeek(args []string) int {
	flags := flag.NewFlagSet("week", flag.ContinueOnError)
	calName := flags.String("calendar", "", "calendar (default: config calendar)")
	weekStart := flags.String("week-start", "", "first, previous, or a weekday name")
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: tlc week [--calendar CAL] [--week-start WS] <date> [--json]")
		return 1
	}

	cal, err := a.resolveCalendar(*calName)
	if err != nil {
		return fail("week", err)
	}
	ws, err := a.resolveWeekStart(cal, *weekStart)
	if err != nil {
		return fail("week", err)
	}
	t, err := a.parseTime(cal, strings.Join(flags.Args(), " "))
	if err != nil {
		return fail("week", err)
	}
	c, err := datetime.FromTimeIn(cal, t)
	if err != nil {
		return fail("week", err)
	}
	s, err := strip.Lookup(cal, strip.KindWeek, ws)
	if err != nil {
		return fail("week", err)
	}
	periods, err := strip.Take(s, t, 1)
	if err != nil {
		return fail("week", err)
	}
	label, err := s.Label(t, true)
	if err != nil {
		return fail("week", err)
	}
	week := periods[0]
	last := week.End.Sub(timeline.Days(1))

	if *jsonOut {
		printJSON(map[string]any{
			"date":       c,
			"week":       c.Week,
			"week_start": ws.String(),
			"label":      label,
			"period":     week,
		})
		return 0
	}
	fmt.Printf("%s  %s, week %d\n", c.Text, c.WeekdayName, c.Week)
	fmt.Println(label)
	fmt.Printf("  %s .. %s\n", formatTime(cal, week.Start), formatTime(cal, last))
	return 0
}
