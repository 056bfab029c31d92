package datetime

import (
	"fmt"

	"github.com/tlcal/tlcal/pkg/calendar"
	"github.com/tlcal/tlcal/pkg/timeline"
)

// Civil is a DateTime resolved against a calendar chosen at run time, with
// the derived values callers usually display next to it.
type Civil struct {
	Fields
	Calendar    string        `json:"calendar"`
	Time        timeline.Time `json:"time"`
	Text        string        `json:"text"`
	Date        string        `json:"date"`
	Weekday     int           `json:"weekday"`
	WeekdayName string        `json:"weekday_name,omitempty"`
	Week        int           `json:"week"`
	BC          bool          `json:"bc"`
}

type codec struct {
	parse    func(s string) (Civil, error)
	fromTime func(t timeline.Time) (Civil, error)
}

func codecFor[C calendar.Calendar]() codec {
	return codec{
		parse: func(s string) (Civil, error) {
			dt, err := Parse[C](s)
			if err != nil {
				return Civil{}, err
			}
			return describe(dt)
		},
		fromTime: func(t timeline.Time) (Civil, error) {
			dt, err := FromTime[C](t)
			if err != nil {
				return Civil{}, err
			}
			return describe(dt)
		},
	}
}

var codecs = map[string]codec{
	calendar.Gregorian{}.Name():   codecFor[calendar.Gregorian](),
	calendar.Coptic{}.Name():      codecFor[calendar.Coptic](),
	calendar.Pharaonic{}.Name():   codecFor[calendar.Pharaonic](),
	calendar.Bosparanian{}.Name(): codecFor[calendar.Bosparanian](),
	calendar.Numeric{}.Name():     codecFor[calendar.Numeric](),
}

func codecOf(cal calendar.Calendar) (codec, error) {
	c, ok := codecs[cal.Name()]
	if !ok {
		return codec{}, fmt.Errorf("%w: %q", calendar.ErrUnknownCalendar, cal.Name())
	}
	return c, nil
}

func describe[C calendar.Calendar](dt DateTime[C]) (Civil, error) {
	t, err := dt.ToTime()
	if err != nil {
		return Civil{}, err
	}
	wd, err := dt.Weekday()
	if err != nil {
		return Civil{}, err
	}
	week, err := dt.WeekNumber()
	if err != nil {
		return Civil{}, err
	}
	cal := dt.Calendar()
	return Civil{
		Fields:      dt.Fields,
		Calendar:    cal.Name(),
		Time:        t,
		Text:        dt.Format(),
		Date:        dt.FormatDate(),
		Weekday:     wd,
		WeekdayName: cal.WeekdayName(wd),
		Week:        week,
		BC:          dt.IsBC(),
	}, nil
}

// ParseIn is Parse for a calendar known only at run time.
func ParseIn(cal calendar.Calendar, s string) (Civil, error) {
	c, err := codecOf(cal)
	if err != nil {
		return Civil{}, err
	}
	return c.parse(s)
}

// FromTimeIn is FromTime for a calendar known only at run time.
func FromTimeIn(cal calendar.Calendar, t timeline.Time) (Civil, error) {
	c, err := codecOf(cal)
	if err != nil {
		return Civil{}, err
	}
	return c.fromTime(t)
}
