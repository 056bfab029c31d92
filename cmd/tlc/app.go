package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/tlcal/tlcal/pkg/calendar"
	"github.com/tlcal/tlcal/pkg/clock"
	"github.com/tlcal/tlcal/pkg/config"
	"github.com/tlcal/tlcal/pkg/datetime"
	"github.com/tlcal/tlcal/pkg/store"
	"github.com/tlcal/tlcal/pkg/strip"
	"github.com/tlcal/tlcal/pkg/timeline"
)

// app holds shared state for all CLI subcommands.
type app struct {
	cfg   config.Config
	cal   calendar.Calendar // default calendar from config
	ws    strip.WeekStart
	now   clock.Source
	store store.EventStore // opened on first use
}

// newApp loads configuration. The database is not touched until an event
// command needs it, so calendar commands work without one.
func newApp(cfgPath string) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	cal, err := cfg.CalendarValue()
	if err != nil {
		return nil, err
	}
	ws, err := cfg.WeekStartValue()
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, cal: cal, ws: ws, now: clock.System{}}, nil
}

// Close releases the database connection if one was opened.
func (a *app) Close() {
	if a.store != nil {
		a.store.Close()
	}
}

// events returns the event store, opening it on first use.
func (a *app) events() (store.EventStore, error) {
	if a.store != nil {
		return a.store, nil
	}
	if dir := filepath.Dir(a.cfg.DB); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("cannot create %s: %w", dir, err)
		}
	}
	s, err := store.New(a.cfg.DB, store.WithClock(a.now))
	if err != nil {
		return nil, fmt.Errorf("cannot open database %q: %w", a.cfg.DB, err)
	}
	a.store = s
	return s, nil
}

// resolveCalendar returns the calendar named by a flag, falling back to the
// configured default.
func (a *app) resolveCalendar(name string) (calendar.Calendar, error) {
	if name == "" {
		return a.cal, nil
	}
	return calendar.Lookup(strings.ToLower(name))
}

// resolveWeekStart parses a --week-start flag for cal, falling back to the
// configured value.
func (a *app) resolveWeekStart(cal calendar.Calendar, flagVal string) (strip.WeekStart, error) {
	if flagVal == "" {
		flagVal = a.cfg.WeekStart
	}
	return strip.ParseWeekStart(cal, flagVal)
}

// parseTime reads a command-line date in cal: "now", "day:N", or a civil
// date accepted by datetime.Parse. Day counts must lie in cal's range.
func (a *app) parseTime(cal calendar.Calendar, s string) (timeline.Time, error) {
	switch {
	case s == "now":
		return clock.Today(a.now), nil
	case strings.HasPrefix(s, "day:"):
		n, err := strconv.ParseInt(strings.ReplaceAll(strings.TrimPrefix(s, "day:"), ",", ""), 10, 64)
		if err != nil {
			return timeline.Time{}, fmt.Errorf("%w: %q", datetime.ErrSyntax, s)
		}
		if n < cal.MinDay() || n > cal.MaxDay() {
			return timeline.Time{}, fmt.Errorf("%w: %d not in [%d, %d] for %s",
				calendar.ErrOutOfRange, n, cal.MinDay(), cal.MaxDay(), cal.Name())
		}
		return timeline.NewBounded(n, 0, cal.MinDay())
	}
	c, err := datetime.ParseIn(cal, s)
	if err != nil {
		return timeline.Time{}, err
	}
	return c.Time, nil
}

// formatTime renders t in cal for text output, e.g. "2013-07-07 14:00:00".
// Points outside the calendar's range render as "out of range".
func formatTime(cal calendar.Calendar, t timeline.Time) string {
	c, err := datetime.FromTimeIn(cal, t)
	if errors.Is(err, calendar.ErrOutOfRange) {
		return "out of range"
	}
	if err != nil {
		return err.Error()
	}
	return c.Text
}

// formatDay renders a day count with thousands separators.
func formatDay(day int64) string { return humanize.Comma(day) }

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// fail reports err for the named command on stderr and returns exit code 1.
func fail(cmd string, err error) int {
	fmt.Fprintf(os.Stderr, "tlc: %s: %v\n", cmd, err)
	return 1
}
