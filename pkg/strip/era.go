package strip

import (
	"strconv"

	"github.com/tlcal/tlcal/pkg/calendar"
	"github.com/tlcal/tlcal/pkg/timeline"
)

// era numbers blocks of size years (100 for centuries, 10 for decades) the
// way people name them. There is no year 0 in the historical count, so the
// blocks next to the epoch are one year short:
//
//	years    -298..-199  -198..-99  -98..0  1..99  100..199
//	century  200s BC     100s BC    0s BC   0s     100s
type era int

const (
	century era = 100
	decade  era = 10
)

// startYear returns the first year of the block containing year.
func (e era) startYear(year int) int {
	size := int(e)
	switch {
	case year > size-1:
		return year - year%size
	case year >= 1:
		return 1
	case year >= -(size - 2):
		return -(size - 2)
	}
	return -e.startYear(-year+1) - (size - 2)
}

// number returns the block's name without suffix, e.g. 2000 for 2000-2099
// and 200 for 299-200 BC.
func (e era) number(start int) int {
	size := int(e)
	switch {
	case start > size-1:
		return start
	case start >= -(size - 2):
		return 0
	}
	return e.number(-start - (size - 2))
}

// length returns the number of years in the block starting at start.
func (e era) length(start int) int {
	if e.number(start) == 0 {
		return int(e) - 1
	}
	return int(e)
}

func (e era) label(year int, bc, withS bool) string {
	s := strconv.Itoa(e.number(e.startYear(year)))
	if withS {
		s += "s"
	}
	if bc {
		s += " BC"
	}
	return s
}

// Century divides the axis into centuries. Only major labels are shown.
type Century[C calendar.Calendar] struct{}

func (Century[C]) Start(t timeline.Time) (timeline.Time, error) {
	dt, err := dateTime[C](t)
	if err != nil {
		return timeline.Time{}, err
	}
	return midnight[C](century.startYear(dt.Year), 1, 1)
}

func (Century[C]) Increment(t timeline.Time) (timeline.Time, error) {
	dt, err := dateTime[C](t)
	if err != nil {
		return timeline.Time{}, err
	}
	start := century.startYear(dt.Year)
	return midnight[C](start+century.length(start), 1, 1)
}

func (Century[C]) Label(t timeline.Time, major bool) (string, error) {
	if !major {
		return "", nil
	}
	dt, err := dateTime[C](t)
	if err != nil {
		return "", err
	}
	return century.label(dt.Year, dt.IsBC(), true), nil
}

// Decade divides the axis into decades. SkipS drops the trailing "s" of
// the label ("2010" instead of "2010s").
type Decade[C calendar.Calendar] struct {
	SkipS bool
}

func (Decade[C]) Start(t timeline.Time) (timeline.Time, error) {
	dt, err := dateTime[C](t)
	if err != nil {
		return timeline.Time{}, err
	}
	return midnight[C](decade.startYear(dt.Year), 1, 1)
}

func (Decade[C]) Increment(t timeline.Time) (timeline.Time, error) {
	dt, err := dateTime[C](t)
	if err != nil {
		return timeline.Time{}, err
	}
	start := decade.startYear(dt.Year)
	return midnight[C](start+decade.length(start), 1, 1)
}

// Label is the same for major and minor.
func (d Decade[C]) Label(t timeline.Time, _ bool) (string, error) {
	dt, err := dateTime[C](t)
	if err != nil {
		return "", err
	}
	return decade.label(dt.Year, dt.IsBC(), !d.SkipS), nil
}
