package timefile

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tlcal/tlcal/pkg/calendar"
	"github.com/tlcal/tlcal/pkg/datetime"
	"github.com/tlcal/tlcal/pkg/model"
	"github.com/tlcal/tlcal/pkg/timeline"
)

const sample = `
calendar: gregorian
events:
  - uid: 0b6f3b52-7c1f-4d5e-9a53-7d1f2f0c1b8e
    text: Battle
    category: war
    start: "2013-07-07 00:00:00"
    end: "2013-07-08 12:00:00"
    revision: 3
  - text: Feast
    calendar: coptic
    start: "1729-10-30"
  - text: Numbered
    calendar: numeric
    start: "-12-1-1"
    end: "40-1-1"
`

func TestDecode(t *testing.T) {
	events, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	battle := events[0]
	if battle.UID != "0b6f3b52-7c1f-4d5e-9a53-7d1f2f0c1b8e" || battle.Revision != 3 || battle.Category != "war" {
		t.Errorf("battle bookkeeping = %+v", battle)
	}
	if battle.Start != timeline.MustNew(2456481, 0) || battle.End != timeline.MustNew(2456482, 12*3600) {
		t.Errorf("battle span = %v..%v", battle.Start, battle.End)
	}

	feast := events[1]
	if feast.Calendar != "coptic" {
		t.Errorf("feast calendar = %q, want coptic", feast.Calendar)
	}
	// 30 Paoni 1729 is the same day as 7 Jul 2013, a point event.
	if feast.Start != battle.Start || feast.End != feast.Start {
		t.Errorf("feast span = %v..%v, want point at %v", feast.Start, feast.End, battle.Start)
	}
	if feast.UID != "" {
		t.Errorf("feast uid = %q, want empty until stored", feast.UID)
	}

	num := events[2]
	if num.Start.Day() != -12 || num.End.Day() != 40 {
		t.Errorf("numeric span = %v..%v", num.Start, num.End)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"empty", "", ErrEmpty},
		{"unknown calendar", "calendar: julian\nevents:\n  - {text: x, start: \"1-1-1\"}\n", calendar.ErrUnknownCalendar},
		{"bad syntax", "events:\n  - {text: x, start: \"July 7\"}\n", datetime.ErrSyntax},
		{"invalid date", "events:\n  - {text: x, start: \"2013-02-29\"}\n", calendar.ErrInvalidDate},
		{"reversed", "events:\n  - {text: x, start: \"2013-02-02\", end: \"2013-02-01\"}\n", timeline.ErrInvalidPeriod},
		{"no text", "events:\n  - {start: \"2013-02-02\"}\n", model.ErrEmptyText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Fatalf("Decode: got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	doc := "events:\n  - {text: x, start: \"2013-02-02\", colour: red}\n"
	if _, err := Decode(strings.NewReader(doc)); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestEncodeKeepsEventCalendars(t *testing.T) {
	events, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	f, err := FromEvents("gregorian", events)
	if err != nil {
		t.Fatalf("FromEvents: %v", err)
	}
	want := []Entry{
		{UID: events[0].UID, Text: "Battle", Category: "war", Start: "2013-07-07 00:00:00", End: "2013-07-08 12:00:00", Revision: 3},
		{Text: "Feast", Calendar: "coptic", Start: "1729-10-30 00:00:00"},
		{Text: "Numbered", Calendar: "numeric", Start: "-12-01-01 00:00:00", End: "40-01-01 00:00:00"},
	}
	for i := range want {
		if f.Events[i] != want[i] {
			t.Errorf("entry %d = %+v\nwant %+v", i, f.Events[i], want[i])
		}
	}
}

func TestWriteReadFile(t *testing.T) {
	events, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "timeline.yaml")
	// Written in a different file calendar than it was read in; the axis
	// positions must survive.
	if err := WriteFile(path, "coptic", events); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("read %d events, wrote %d", len(got), len(events))
	}
	for i := range events {
		if !model.SameContent(got[i], events[i]) || got[i].Revision != events[i].Revision {
			t.Errorf("event %d: got %+v, want %+v", i, got[i], events[i])
		}
	}
}

func TestEncodeUnknownCalendar(t *testing.T) {
	e := model.Event{Calendar: "julian", Text: "x"}
	var buf bytes.Buffer
	if err := Encode(&buf, "gregorian", []model.Event{e}); !errors.Is(err, calendar.ErrUnknownCalendar) {
		t.Fatalf("Encode: got %v, want ErrUnknownCalendar", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
