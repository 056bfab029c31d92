package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tlcal/tlcal/pkg/calendar"
	"github.com/tlcal/tlcal/pkg/strip"
	"github.com/tlcal/tlcal/pkg/timeline"
)

type stripRow struct {
	Period timeline.Period `json:"period"`
	Start  string          `json:"start"`
	Major  string          `json:"major"`
	Minor  string          `json:"minor"`
}

func (a *app) cmdStrip(args []string) int {
	flags := flag.NewFlagSet("strip", flag.ContinueOnError)
	calName := flags.String("calendar", "", "calendar (default: config calendar)")
	weekStart := flags.String("week-start", "", "first, previous, or a weekday name (week strips)")
	count := flags.Int("count", 5, "number of periods to list")
	until := flags.String("to", "", "list periods up to this date instead of --count")
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 2 {
		fmt.Fprintf(os.Stderr, "usage: tlc strip <%s> [--count N | --to DATE] <date> [--json]\n", kindList())
		return 1
	}

	cal, err := a.resolveCalendar(*calName)
	if err != nil {
		return fail("strip", err)
	}
	ws, err := a.resolveWeekStart(cal, *weekStart)
	if err != nil {
		return fail("strip", err)
	}
	s, err := strip.Lookup(cal, strip.Kind(strings.ToLower(flags.Arg(0))), ws)
	if err != nil {
		return fail("strip", err)
	}
	t, err := a.parseTime(cal, strings.Join(flags.Args()[1:], " "))
	if err != nil {
		return fail("strip", err)
	}

	var periods []timeline.Period
	if *until != "" {
		end, err := a.parseTime(cal, *until)
		if err != nil {
			return fail("strip", err)
		}
		p, err := timeline.NewPeriod(t, end)
		if err != nil {
			return fail("strip", err)
		}
		periods, err = strip.Periods(s, p)
		if err != nil {
			return fail("strip", err)
		}
	} else {
		if periods, err = strip.Take(s, t, *count); err != nil {
			return fail("strip", err)
		}
	}

	rows, err := stripRows(cal, s, periods)
	if err != nil {
		return fail("strip", err)
	}
	if *jsonOut {
		printJSON(map[string]any{"calendar": cal.Name(), "kind": flags.Arg(0), "periods": rows})
		return 0
	}
	for _, r := range rows {
		line := fmt.Sprintf("%s  %-28s %s", r.Start, r.Major, r.Minor)
		fmt.Println(strings.TrimRight(line, " "))
	}
	return 0
}

func stripRows(cal calendar.Calendar, s strip.Strip, periods []timeline.Period) ([]stripRow, error) {
	rows := make([]stripRow, 0, len(periods))
	for _, p := range periods {
		major, err := s.Label(p.Start, true)
		if err != nil {
			return nil, err
		}
		minor, err := s.Label(p.Start, false)
		if err != nil {
			return nil, err
		}
		rows = append(rows, stripRow{Period: p, Start: formatTime(cal, p.Start), Major: major, Minor: minor})
	}
	return rows, nil
}

func kindList() string {
	names := make([]string, len(strip.Kinds))
	for i, k := range strip.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, "|")
}
