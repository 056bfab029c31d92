package timeline

import (
	"fmt"
	"math"
	"strings"
)

// Delta is a signed duration on the axis, counted in seconds.
type Delta struct {
	seconds int64
}

// Seconds returns a delta of n seconds.
func Seconds(n int64) Delta { return Delta{seconds: n} }

// Days returns a delta of n whole days.
func Days(n int64) Delta { return Delta{seconds: n * SecondsPerDay} }

// TotalSeconds returns the length of d in seconds.
func (d Delta) TotalSeconds() int64 { return d.seconds }

// Add returns d + e.
func (d Delta) Add(e Delta) Delta { return Delta{seconds: d.seconds + e.seconds} }

// Sub returns d - e.
func (d Delta) Sub(e Delta) Delta { return Delta{seconds: d.seconds - e.seconds} }

// Neg returns -d.
func (d Delta) Neg() Delta { return Delta{seconds: -d.seconds} }

// Mul scales d by f, truncating the result toward zero. The product goes
// through float64, so deltas beyond 2^53 seconds lose their low bits.
func (d Delta) Mul(f float64) Delta {
	return Delta{seconds: int64(float64(d.seconds) * f)}
}

// Div divides d by f, truncating the result toward zero. Whole-number
// divisors use integer division and stay exact for any delta.
func (d Delta) Div(f float64) Delta {
	if f == math.Trunc(f) && math.Abs(f) >= 1 && math.Abs(f) < 1<<62 {
		return d.DivInt(int64(f))
	}
	return Delta{seconds: int64(float64(d.seconds) / f)}
}

// DivInt divides d by n, truncating the result toward zero.
func (d Delta) DivInt(n int64) Delta { return Delta{seconds: d.seconds / n} }

// Ratio returns d / e as a real number.
func (d Delta) Ratio(e Delta) float64 {
	return float64(d.seconds) / float64(e.seconds)
}

// Compare orders deltas by length.
func (d Delta) Compare(e Delta) int {
	switch {
	case d.seconds < e.seconds:
		return -1
	case d.seconds > e.seconds:
		return 1
	}
	return 0
}

// DaysPart returns the whole days in d.
func (d Delta) DaysPart() int64 { return FloorDiv(d.seconds, SecondsPerDay) }

// HoursPart returns the whole hours left after removing whole days.
func (d Delta) HoursPart() int64 { return FloorMod(FloorDiv(d.seconds, 3600), 24) }

// MinutesPart returns the whole minutes left after removing whole hours.
func (d Delta) MinutesPart() int64 { return FloorMod(FloorDiv(d.seconds, 60), 60) }

func (d Delta) String() string {
	return fmt.Sprintf("Delta(%d)", d.seconds)
}

// Format renders d as "2 days 3 hours 1 minute". Seconds are dropped and a
// delta shorter than one minute renders as "0".
func (d Delta) Format() string {
	sign := ""
	if d.seconds < 0 {
		sign = "-"
		d = d.Neg()
	}
	var parts []string
	for _, u := range []struct {
		n          int64
		one, other string
	}{
		{d.DaysPart(), "day", "days"},
		{d.HoursPart(), "hour", "hours"},
		{d.MinutesPart(), "minute", "minutes"},
	} {
		switch {
		case u.n == 1:
			parts = append(parts, "1 "+u.one)
		case u.n > 1:
			parts = append(parts, fmt.Sprintf("%d %s", u.n, u.other))
		}
	}
	if len(parts) == 0 {
		return "0"
	}
	return sign + strings.Join(parts, " ")
}
