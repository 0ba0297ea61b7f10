package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zapponejosh/rawtime/internal/calendar"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		era      calendar.Era
		drift    float64
		days     string
		keyDates bool
	}{
		{"common year", 2025, calendar.AC, 0, "Days checked:  365", true},
		{"leap year", 2024, calendar.AC, 0, "Days checked:  366", true},
		{"drifted", 2000, calendar.AC, 3600, "Days checked:  366", true},
		{"BC year", 44, calendar.BC, 0, "Days checked:  366", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := generate(&buf, tt.year, tt.era, tt.drift)
			if err != nil {
				t.Fatalf("generate() error = %v", err)
			}
			if n != 0 {
				t.Errorf("generate() mismatches = %d\n%s", n, buf.String())
			}
			out := buf.String()
			if !strings.Contains(out, tt.days) {
				t.Errorf("output missing %q:\n%s", tt.days, out)
			}
			if got := strings.Contains(out, "Key Dates:"); got != tt.keyDates {
				t.Errorf("key dates shown = %v, want %v", got, tt.keyDates)
			}
		})
	}
}

func TestGenerate_KeyDates(t *testing.T) {
	var buf bytes.Buffer
	if _, err := generate(&buf, 2025, calendar.AC, 0); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Easter:         (2025-04-20) AC Sunday",
		"Advent Start:   (2025-11-30) AC Sunday",
		"Christmas:      (2025-12-25) AC Thursday",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}
