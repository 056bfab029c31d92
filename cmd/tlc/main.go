// Command tlc converts dates between calendars, lays out timeline strips and
// keeps a small database of timeline events.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

const version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// run dispatches one invocation and returns the process exit code.
func run(ctx context.Context, args []string) int {
	cfgPath := envOr("TLCAL_CONFIG", "")
	if len(args) >= 2 && args[0] == "--config" {
		cfgPath, args = args[1], args[2:]
	}
	if len(args) < 1 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return 0
	case "--version", "-v", "version":
		fmt.Println("tlc", version)
		return 0
	}

	a, err := newApp(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tlc: %v\n", err)
		return 1
	}
	defer a.Close()

	cmd, rest := args[0], args[1:]
	switch cmd {
	// Calendars
	case "calendars", "cals":
		return a.cmdCalendars(rest)
	case "convert":
		return a.cmdConvert(rest)
	case "week":
		return a.cmdWeek(rest)
	case "strip":
		return a.cmdStrip(rest)

	// Events
	case "add":
		return a.cmdAdd(ctx, rest)
	case "list", "ls":
		return a.cmdList(ctx, rest)
	case "rm":
		return a.cmdRm(ctx, rest)
	case "export":
		return a.cmdExport(ctx, rest)
	case "import":
		return a.cmdImport(ctx, rest)

	default:
		fmt.Fprintf(os.Stderr, "tlc: unknown command %q\n", cmd)
		fmt.Fprintln(os.Stderr, "Run 'tlc --help' for usage.")
		return 1
	}
}

func printUsage() {
	fmt.Print(`tlc - multi-calendar timeline tool

Every calendar maps onto one linear axis of (day, second-of-day), so dates
written in different calendars compare, convert and sort directly.

Usage:
  tlc [--config FILE] <command> [flags]

Calendars:
  calendars                         List calendars and their range
  convert [--from CAL] [--to CALS] <date>
                                    Show one instant in other calendars
  week [--calendar CAL] <date>      Week number and week strip of a date
  strip <kind> [--count N | --to DATE] <date>
                                    List strip periods (century, decade, year,
                                    month, week, day, hour) from a date

Events:
  add <start> <end> <text...>       Store an event
  list [--from DATE] [--to DATE]    List events in axis order
  rm <id>                           Delete an event
  export <file>                     Write events to a YAML timeline file
  import <file>                     Merge a YAML timeline file by uid/revision

Dates:
  Y-M-D, Y-M-D H:M or Y-M-D H:M:S in the chosen calendar (years may be
  negative), "now", or "day:N" for a raw day count.

Aliases:
  cals = calendars, ls = list

Configuration ($XDG_CONFIG_HOME/tlcal/config.yaml):
  db          SQLite database path (default: tlcal.db)
  calendar    Default calendar (default: gregorian)
  week_start  first, previous, or a weekday name (default: first)

Environment:
  TLCAL_CONFIG      Config file path
  TLCAL_DB, TLCAL_CALENDAR, TLCAL_WEEK_START override the config file.

All commands support --json for machine-readable output.

Exit codes:
  0  success
  1  error
`)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
