package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tlcal/tlcal/pkg/calendar"
	"github.com/tlcal/tlcal/pkg/datetime"
)

type conversion struct {
	Calendar string          `json:"calendar"`
	Civil    *datetime.Civil `json:"civil,omitempty"`
	Error    string          `json:"error,omitempty"`
}

func (a *app) cmdConvert(args []string) int {
	flags := flag.NewFlagSet("convert", flag.ContinueOnError)
	from := flags.String("from", "", "calendar of the input date (default: config calendar)")
	to := flags.String("to", "", "comma-separated target calendars (default: all)")
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: tlc convert [--from CAL] [--to CAL,...] <date> [--json]")
		return 1
	}

	src, err := a.resolveCalendar(*from)
	if err != nil {
		return fail("convert", err)
	}
	t, err := a.parseTime(src, strings.Join(flags.Args(), " "))
	if err != nil {
		return fail("convert", err)
	}

	targets := calendar.Names()
	if *to != "" {
		targets = strings.Split(*to, ",")
	}
	var out []conversion
	for _, name := range targets {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		cal, err := calendar.Lookup(name)
		if err != nil {
			return fail("convert", err)
		}
		c, err := datetime.FromTimeIn(cal, t)
		switch {
		case errors.Is(err, calendar.ErrOutOfRange):
			out = append(out, conversion{Calendar: name, Error: "out of range"})
		case err != nil:
			return fail("convert", err)
		default:
			out = append(out, conversion{Calendar: name, Civil: &c})
		}
	}

	if *jsonOut {
		printJSON(map[string]any{"day": t.Day(), "seconds": t.Seconds(), "conversions": out})
		return 0
	}
	fmt.Printf("day %s +%ds\n", formatDay(t.Day()), t.Seconds())
	for _, conv := range out {
		if conv.Civil == nil {
			fmt.Printf("  %-12s %s\n", conv.Calendar, conv.Error)
			continue
		}
		c := conv.Civil
		fmt.Printf("  %-12s %s  %s", conv.Calendar, c.Text, c.Date)
		if c.WeekdayName != "" {
			fmt.Printf(", %s", c.WeekdayName)
		}
		if c.Week > 0 {
			fmt.Printf(", week %d", c.Week)
		}
		fmt.Println()
	}
	return 0
}
