package datetime

import (
	"errors"
	"testing"

	"github.com/tlcal/tlcal/pkg/calendar"
	"github.com/tlcal/tlcal/pkg/timeline"
)

func TestParseIn(t *testing.T) {
	c, err := ParseIn(calendar.Gregorian{}, "2013-07-07 14:30")
	if err != nil {
		t.Fatalf("ParseIn: %v", err)
	}
	want := Civil{
		Fields:      Fields{2013, 7, 7, 14, 30, 0},
		Calendar:    "gregorian",
		Time:        timeline.MustNew(2456481, 14*3600+30*60),
		Text:        "2013-07-07 14:30:00",
		Date:        "7 Jul 2013",
		Weekday:     6,
		WeekdayName: "Sunday",
		Week:        27,
	}
	if c != want {
		t.Fatalf("ParseIn = %+v\nwant %+v", c, want)
	}
}

func TestFromTimeIn(t *testing.T) {
	c, err := FromTimeIn(calendar.Coptic{}, timeline.MustNew(2456481, 0))
	if err != nil {
		t.Fatalf("FromTimeIn: %v", err)
	}
	if c.Fields != (Fields{Year: 1729, Month: 10, Day: 30}) {
		t.Fatalf("FromTimeIn fields = %+v, want 1729-10-30", c.Fields)
	}
	if c.WeekdayName != "Tkyriaka" {
		t.Fatalf("weekday = %q, want Tkyriaka", c.WeekdayName)
	}
}

func TestCivilErrors(t *testing.T) {
	if _, err := ParseIn(calendar.Gregorian{}, "7 July"); !errors.Is(err, ErrSyntax) {
		t.Fatalf("ParseIn syntax: got %v, want ErrSyntax", err)
	}
	if _, err := ParseIn(calendar.Coptic{}, "1729-13-07"); !errors.Is(err, calendar.ErrInvalidDate) {
		t.Fatalf("ParseIn invalid: got %v, want ErrInvalidDate", err)
	}
	if _, err := FromTimeIn(calendar.Gregorian{}, timeline.MustNew(-1, 0)); !errors.Is(err, calendar.ErrOutOfRange) {
		t.Fatalf("FromTimeIn out of range: got %v, want ErrOutOfRange", err)
	}
}

func TestCivilCoversEveryCalendar(t *testing.T) {
	for _, name := range calendar.Names() {
		cal, err := calendar.Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := codecOf(cal); err != nil {
			t.Errorf("no codec for %s: %v", name, err)
		}
	}
}
