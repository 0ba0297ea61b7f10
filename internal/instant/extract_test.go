package instant

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zapponejosh/rawtime/internal/calendar"
)

func TestComponents(t *testing.T) {
	i := mustTuple(t, calendar.Fields{Year: 2025, Month: 10, Day: 2, Hour: 13, Minute: 5, Second: 7.25})
	c, err := i.Components()
	if err != nil {
		t.Fatalf("Components() error = %v", err)
	}

	got := []float64{c.Year(), c.Month(), c.Day(), c.Hour(), c.Minute(), c.Second()}
	if diff := cmp.Diff([]float64{2025, 10, 2, 13, 5, 7.25}, got); diff != "" {
		t.Errorf("Components() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([3]float64{2025, 10, 2}, c.Date()); diff != "" {
		t.Errorf("Date() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([3]float64{13, 5, 7.25}, c.Time()); diff != "" {
		t.Errorf("Time() mismatch (-want +got):\n%s", diff)
	}
}

func TestElapsed(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		year    float64
		month   float64
		date    float64
		time    float64
	}{
		{"epoch", 0, 0, 0, 0, 0},
		{"one leap year", 366 * day, 1, 12, 366, 0},
		{"one and a half years", 366*day + 365*day/2, 1.5, 18 + 1.5/31, 548, day / 2},
		{"january", 31 * day, 31.0 / 366, 1, 31, 0},
		{"one cycle", 146097 * day, 400, 4800, 146097, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := mustSeconds(t, tt.seconds).Elapsed()
			if got := e.Year(); !near(got, tt.year) {
				t.Errorf("Year() = %v, want %v", got, tt.year)
			}
			if got := e.Month(); !near(got, tt.month) {
				t.Errorf("Month() = %v, want %v", got, tt.month)
			}
			if got := e.Date(); !near(got, tt.date) {
				t.Errorf("Date() = %v, want %v", got, tt.date)
			}
			if got := e.Time(); !near(got, tt.time) {
				t.Errorf("Time() = %v, want %v", got, tt.time)
			}
		})
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestElapsed_Units(t *testing.T) {
	e := mustSeconds(t, 90000).Elapsed()
	got := []float64{e.Day(), e.Hour(), e.Minute(), e.Second()}
	want := []float64{90000.0 / 86400, 25, 1500, 90000}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Elapsed units mismatch (-want +got):\n%s", diff)
	}
}

func TestElapsed_BC(t *testing.T) {
	i, err := FromTuple(calendar.Fields{Year: 5, Month: 1, Day: 1, Hour: 6}, calendar.BC, 0)
	if err != nil {
		t.Fatalf("FromTuple() error = %v", err)
	}
	e := i.Elapsed()
	if got := e.Date(); got != -1827 {
		t.Errorf("Date() = %v, want -1827", got)
	}
	if got := e.Time(); got != -6*3600 {
		t.Errorf("Time() = %v, want %v", got, -6*3600)
	}
	if got := e.Year(); got >= -5 || got < -6 {
		t.Errorf("Year() = %v, want in (-6, -5)", got)
	}
}

func TestIsolated(t *testing.T) {
	i := mustTuple(t, calendar.Fields{Year: 2025, Month: 10, Day: 2, Hour: 13, Minute: 5, Second: 7})
	s, err := i.Isolated()
	if err != nil {
		t.Fatalf("Isolated() error = %v", err)
	}

	tests := []struct {
		name string
		fn   func() (Instant, error)
		want calendar.Tuple
	}{
		{"year", s.Year, calendar.Tuple{Year: 2025, Month: 1, Day: 1}},
		{"month", s.Month, calendar.Tuple{Year: 1, Month: 10, Day: 1}},
		{"day", s.Day, calendar.Tuple{Year: 1, Month: 1, Day: 2}},
		{"hour", s.Hour, calendar.Tuple{Year: 1, Month: 1, Day: 1, Hour: 13}},
		{"minute", s.Minute, calendar.Tuple{Year: 1, Month: 1, Day: 1, Minute: 5}},
		{"second", s.Second, calendar.Tuple{Year: 1, Month: 1, Day: 1, Second: 7}},
		{"date", s.Date, calendar.Tuple{Year: 2025, Month: 10, Day: 2}},
		{"time", s.Time, calendar.Tuple{Year: 1, Month: 1, Day: 1, Hour: 13, Minute: 5, Second: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := tt.fn()
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if diff := cmp.Diff(tt.want, mustTupleOf(t, sub)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIsolated_KeepsEraAndDrift(t *testing.T) {
	i, err := FromTuple(calendar.Fields{Year: 44, Month: 3, Day: 15}, calendar.BC, 600)
	if err != nil {
		t.Fatalf("FromTuple() error = %v", err)
	}
	s, err := i.Isolated()
	if err != nil {
		t.Fatalf("Isolated() error = %v", err)
	}
	y, err := s.Year()
	if err != nil {
		t.Fatalf("Year() error = %v", err)
	}
	if y.Era() != calendar.BC || y.Drift() != 600 {
		t.Errorf("Year() era %v drift %v, want BC 600", y.Era(), y.Drift())
	}
	if got := y.String(); got != "(0044-01-01 00:00:00) BC" {
		t.Errorf("Year().String() = %q", got)
	}
}
