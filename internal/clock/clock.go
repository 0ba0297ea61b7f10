// Package clock supplies the current UTC time as raw calendar fields.
//
// The engine never reads a clock itself; callers pass a Clock to
// instant.Now. System is the host wall clock; Fixed is for tests and replays.
package clock

import (
	"time"

	"github.com/zapponejosh/rawtime/internal/calendar"
)

// Clock returns the current UTC time as [year, month, day, hour, minute, second].
type Clock func() calendar.Fields

// System reads the host wall clock in UTC. Sub-second precision is kept in
// the seconds field.
func System() calendar.Fields {
	return FromTime(time.Now())
}

// Fixed returns a Clock that always reports f.
func Fixed(f calendar.Fields) Clock {
	return func() calendar.Fields {
		return f
	}
}

// FromTime converts t to UTC calendar fields.
func FromTime(t time.Time) calendar.Fields {
	t = t.UTC()
	return calendar.Fields{
		Year:   float64(t.Year()),
		Month:  float64(t.Month()),
		Day:    float64(t.Day()),
		Hour:   float64(t.Hour()),
		Minute: float64(t.Minute()),
		Second: float64(t.Second()) + float64(t.Nanosecond())/1e9,
	}
}
