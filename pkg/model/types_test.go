package model

import (
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/tlcal/tlcal/pkg/timeline"
)

func ev(text string, startDay, endDay int64) Event {
	return Event{
		UID:      uuid.NewString(),
		Calendar: "gregorian",
		Start:    timeline.MustNew(startDay, 0),
		End:      timeline.MustNew(endDay, 0),
		Text:     text,
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		e       Event
		wantErr error
	}{
		{"ok", ev("Battle", 10, 12), nil},
		{"point event", ev("Birth", 10, 10), nil},
		{"empty text", ev("  ", 10, 12), ErrEmptyText},
		{"reversed", ev("Oops", 12, 10), timeline.ErrInvalidPeriod},
		{"bad uid", Event{UID: "nope", Text: "x"}, ErrBadUID},
		{"no uid", Event{Text: "x"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.e.Validate()
			if tc.wantErr == nil && err != nil {
				t.Fatalf("Validate() = %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestNewUIDIsUUID(t *testing.T) {
	a, b := NewUID(), NewUID()
	if a == b {
		t.Fatal("NewUID returned the same value twice")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("NewUID() = %q: %v", a, err)
	}
}

func TestLessOrdersByStartEndUID(t *testing.T) {
	a := ev("a", 1, 5)
	b := ev("b", 1, 7)
	c := ev("c", 2, 2)
	d := c
	d.UID = "ffffffff-0000-0000-0000-000000000000"
	c.UID = "00000000-0000-0000-0000-000000000000"

	events := []Event{d, c, b, a}
	sort.Slice(events, func(i, j int) bool { return Less(events[i], events[j]) })
	want := []Event{a, b, c, d}
	for i := range want {
		if events[i].UID != want[i].UID {
			t.Fatalf("position %d: got %q, want %q", i, events[i].Text, want[i].Text)
		}
	}
	if Less(a, a) {
		t.Fatal("Less should not be reflexive")
	}
}

func TestSameContent(t *testing.T) {
	a := ev("Battle", 1, 2)
	b := a
	b.ID, b.Revision = 99, 7
	if !SameContent(a, b) {
		t.Fatal("bookkeeping fields should not affect SameContent")
	}
	b.Category = "war"
	if SameContent(a, b) {
		t.Fatal("category change should be a content change")
	}
}

func TestPeriod(t *testing.T) {
	e := ev("x", 3, 5)
	if e.Period().Delta() != timeline.Days(2) {
		t.Fatalf("Period().Delta() = %v", e.Period().Delta())
	}
}
