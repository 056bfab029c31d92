package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tlcal/tlcal/pkg/calendar"
	"github.com/tlcal/tlcal/pkg/model"
	"github.com/tlcal/tlcal/pkg/store"
	"github.com/tlcal/tlcal/pkg/timeline"
)

func (a *app) cmdAdd(ctx context.Context, args []string) int {
	flags := flag.NewFlagSet("add", flag.ContinueOnError)
	calName := flags.String("calendar", "", "calendar of the dates (default: config calendar)")
	category := flags.String("category", "", "event category")
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 3 {
		fmt.Fprintln(os.Stderr, "usage: tlc add [--calendar CAL] [--category C] <start> <end> <text...> [--json]")
		return 1
	}

	cal, err := a.resolveCalendar(*calName)
	if err != nil {
		return fail("add", err)
	}
	start, err := a.parseTime(cal, flags.Arg(0))
	if err != nil {
		return fail("add", fmt.Errorf("start: %w", err))
	}
	end, err := a.parseTime(cal, flags.Arg(1))
	if err != nil {
		return fail("add", fmt.Errorf("end: %w", err))
	}
	s, err := a.events()
	if err != nil {
		return fail("add", err)
	}

	e := &model.Event{
		Calendar: cal.Name(),
		Start:    start,
		End:      end,
		Text:     strings.Join(flags.Args()[2:], " "),
		Category: *category,
	}
	if _, err := s.InsertEvent(ctx, e); err != nil {
		return fail("add", err)
	}

	if *jsonOut {
		printJSON(e)
	} else {
		fmt.Printf("added event %d (%s) rev=%d\n", e.ID, e.UID, e.Revision)
	}
	return 0
}

func (a *app) cmdList(ctx context.Context, args []string) int {
	flags := flag.NewFlagSet("list", flag.ContinueOnError)
	calName := flags.String("calendar", "", "show and parse dates in this calendar (default: each event's own)")
	from := flags.String("from", "", "only events overlapping [from, to)")
	to := flags.String("to", "", "end of the --from range (default: from)")
	category := flags.String("category", "", "filter by category")
	limit := flags.Int("limit", 100, "max events to return")
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}

	var display calendar.Calendar
	if *calName != "" {
		cal, err := a.resolveCalendar(*calName)
		if err != nil {
			return fail("list", err)
		}
		display = cal
	}
	filter := store.Filter{Category: *category, Limit: *limit}
	if *from != "" || *to != "" {
		p, err := a.listPeriod(display, *from, *to)
		if err != nil {
			return fail("list", err)
		}
		filter.Period = &p
	}

	s, err := a.events()
	if err != nil {
		return fail("list", err)
	}
	events, err := s.ListEvents(ctx, filter)
	if err != nil {
		return fail("list", err)
	}

	if *jsonOut {
		printJSON(map[string]any{"events": events, "count": len(events)})
		return 0
	}
	if len(events) == 0 {
		fmt.Println("no events")
		return 0
	}
	for _, e := range events {
		printEvent(e, display)
	}
	return 0
}

// listPeriod builds the --from/--to filter. Either bound may be omitted:
// a lone bound selects the events at that instant.
func (a *app) listPeriod(cal calendar.Calendar, from, to string) (timeline.Period, error) {
	if cal == nil {
		cal = a.cal
	}
	if from == "" {
		from = to
	}
	if to == "" {
		to = from
	}
	start, err := a.parseTime(cal, from)
	if err != nil {
		return timeline.Period{}, fmt.Errorf("from: %w", err)
	}
	end, err := a.parseTime(cal, to)
	if err != nil {
		return timeline.Period{}, fmt.Errorf("to: %w", err)
	}
	return timeline.NewPeriod(start, end)
}

// printEvent writes one event line in cal, or in the event's own calendar
// when cal is nil.
func printEvent(e model.Event, cal calendar.Calendar) {
	if cal == nil {
		var err error
		if cal, err = calendar.Lookup(e.Calendar); err != nil {
			fmt.Printf("%4d  [%s] %s\n", e.ID, e.Calendar, e.Text)
			return
		}
	}
	span := formatTime(cal, e.Start)
	if e.End != e.Start {
		span += " .. " + formatTime(cal, e.End)
	}
	cat := ""
	if e.Category != "" {
		cat = " [" + e.Category + "]"
	}
	fmt.Printf("%4d  %s  %s%s  (%s)\n", e.ID, span, e.Text, cat, cal.Name())
}

func (a *app) cmdRm(ctx context.Context, args []string) int {
	flags := flag.NewFlagSet("rm", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: tlc rm <id>... [--json]")
		return 1
	}

	s, err := a.events()
	if err != nil {
		return fail("rm", err)
	}
	var removed []int64
	for _, arg := range flags.Args() {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fail("rm", fmt.Errorf("invalid event id %q", arg))
		}
		if err := s.DeleteEvent(ctx, id); err != nil {
			return fail("rm", err)
		}
		removed = append(removed, id)
	}

	if *jsonOut {
		printJSON(map[string]any{"removed": removed})
	} else {
		for _, id := range removed {
			fmt.Printf("removed event %d\n", id)
		}
	}
	return 0
}
