package clock

import (
	"testing"
	"time"

	"github.com/zapponejosh/rawtime/internal/calendar"
)

func TestFromTime(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	in := time.Date(2025, time.October, 2, 1, 30, 15, 500_000_000, loc)

	got := FromTime(in)
	want := calendar.Fields{Year: 2025, Month: 10, Day: 1, Hour: 23, Minute: 30, Second: 15.5}
	if got != want {
		t.Errorf("FromTime() = %+v, want %+v", got, want)
	}
}

func TestFixed(t *testing.T) {
	f := calendar.Fields{Year: 2025, Month: 9, Day: 19, Hour: 12}
	c := Fixed(f)
	if got := c(); got != f {
		t.Errorf("Fixed()() = %+v, want %+v", got, f)
	}
}

func TestSystem(t *testing.T) {
	got := System()
	if got.Year < 2024 || got.Month < 1 || got.Month > 12 {
		t.Errorf("System() = %+v, not a plausible current time", got)
	}
}
