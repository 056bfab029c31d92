package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize/english"

	"github.com/tlcal/tlcal/pkg/model"
	"github.com/tlcal/tlcal/pkg/store"
	"github.com/tlcal/tlcal/pkg/timefile"
)

func (a *app) cmdExport(ctx context.Context, args []string) int {
	flags := flag.NewFlagSet("export", flag.ContinueOnError)
	calName := flags.String("calendar", "", "file calendar (default: config calendar)")
	category := flags.String("category", "", "only export this category")
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tlc export [--calendar CAL] [--category C] <file|-> [--json]")
		return 1
	}

	cal, err := a.resolveCalendar(*calName)
	if err != nil {
		return fail("export", err)
	}
	s, err := a.events()
	if err != nil {
		return fail("export", err)
	}
	n, err := s.CountEvents(ctx)
	if err != nil {
		return fail("export", err)
	}
	events, err := s.ListEvents(ctx, store.Filter{Category: *category, Limit: int(n) + 1})
	if err != nil {
		return fail("export", err)
	}

	path := flags.Arg(0)
	if path == "-" {
		err = timefile.Encode(os.Stdout, cal.Name(), events)
	} else {
		err = timefile.WriteFile(path, cal.Name(), events)
	}
	if err != nil {
		return fail("export", err)
	}

	switch {
	case *jsonOut:
		printJSON(map[string]any{"path": path, "count": len(events)})
	case path != "-":
		fmt.Printf("exported %s to %s\n", english.Plural(len(events), "event", "events"), path)
	}
	return 0
}

type importSummary struct {
	Path      string `json:"path"`
	Inserted  int    `json:"inserted"`
	Updated   int    `json:"updated"`
	Unchanged int    `json:"unchanged"`
	Stale     int    `json:"stale"`
}

func (a *app) cmdImport(ctx context.Context, args []string) int {
	flags := flag.NewFlagSet("import", flag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "JSON output")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tlc import <file|-> [--json]")
		return 1
	}

	path := flags.Arg(0)
	events, err := readTimeFile(path)
	if err != nil {
		return fail("import", err)
	}
	s, err := a.events()
	if err != nil {
		return fail("import", err)
	}

	sum := importSummary{Path: path}
	for i := range events {
		res, err := s.UpsertByUID(ctx, &events[i])
		if err != nil {
			return fail("import", err)
		}
		switch res {
		case store.Inserted:
			sum.Inserted++
		case store.Updated:
			sum.Updated++
		case store.Unchanged:
			sum.Unchanged++
		case store.Stale:
			sum.Stale++
			fmt.Fprintf(os.Stderr, "tlc: import: kept newer local copy of %q (%s)\n", events[i].Text, events[i].UID)
		}
	}

	if *jsonOut {
		printJSON(sum)
	} else {
		fmt.Printf("imported %s: %d inserted, %d updated, %d unchanged, %d stale\n",
			path, sum.Inserted, sum.Updated, sum.Unchanged, sum.Stale)
	}
	return 0
}

func readTimeFile(path string) ([]model.Event, error) {
	if path == "-" {
		return timefile.Decode(os.Stdin)
	}
	return timefile.ReadFile(path)
}
