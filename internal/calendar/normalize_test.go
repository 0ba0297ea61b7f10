package calendar

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input Fields
		want  Tuple
	}{
		{
			name:  "already canonical",
			input: Fields{Year: 2025, Month: 10, Day: 2, Hour: 13, Minute: 5, Second: 7.25},
			want:  Tuple{Year: 2025, Month: 10, Day: 2, Hour: 13, Minute: 5, Second: 7.25},
		},
		{
			// month 13 rolls into January 2025, day 0 then borrows December 2024
			name:  "month 13 and day 0",
			input: Fields{Year: 2024, Month: 13, Day: 0},
			want:  Tuple{Year: 2024, Month: 12, Day: 31},
		},
		{
			name:  "leap day stays in February",
			input: Fields{Year: 2024, Month: 2, Day: 29},
			want:  Tuple{Year: 2024, Month: 2, Day: 29},
		},
		{
			name:  "non-leap February 29 carries into March",
			input: Fields{Year: 2023, Month: 2, Day: 29},
			want:  Tuple{Year: 2023, Month: 3, Day: 1},
		},
		{
			name:  "seconds carry through every unit",
			input: Fields{Year: 2025, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 125.5},
			want:  Tuple{Year: 2026, Month: 1, Day: 1, Hour: 0, Minute: 1, Second: 5.5},
		},
		{
			name:  "negative day borrows from previous months",
			input: Fields{Year: 2025, Month: 3, Day: -1},
			want:  Tuple{Year: 2025, Month: 2, Day: 27},
		},
		{
			name:  "month zero is treated as January",
			input: Fields{Year: 2025, Month: 0, Day: 15},
			want:  Tuple{Year: 2025, Month: 1, Day: 15},
		},
		{
			name:  "month 25 carries two years",
			input: Fields{Year: 2025, Month: 25, Day: 1},
			want:  Tuple{Year: 2027, Month: 1, Day: 1},
		},
		{
			name:  "half year of a common year",
			input: Fields{Year: 2025.5, Month: 1, Day: 1},
			want:  Tuple{Year: 2025, Month: 7, Day: 2, Hour: 12},
		},
		{
			name:  "half month of September",
			input: Fields{Year: 2025, Month: 9.5, Day: 1},
			want:  Tuple{Year: 2025, Month: 9, Day: 16},
		},
		{
			name:  "fractional day",
			input: Fields{Year: 2025, Month: 1, Day: 1.75},
			want:  Tuple{Year: 2025, Month: 1, Day: 1, Hour: 18},
		},
		{
			name:  "negative hours borrow a day",
			input: Fields{Year: 2025, Month: 1, Day: 2, Hour: -1},
			want:  Tuple{Year: 2025, Month: 1, Day: 1, Hour: 23},
		},
		{
			name:  "thousands of days skip whole cycles",
			input: Fields{Year: 2000, Month: 1, Day: 146097*2 + 1},
			want:  Tuple{Year: 2800, Month: 1, Day: 1},
		},
		{
			name:  "year below floor is clamped",
			input: Fields{Year: 0, Month: 1, Day: 1},
			want:  Tuple{Year: 1, Month: 1, Day: 1},
		},
		{
			// year 0 is leap, year 1 is not
			name:  "leap day below year floor is clamped into February",
			input: Fields{Year: 0, Month: 2, Day: 29},
			want:  Tuple{Year: 1, Month: 2, Day: 28},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Normalize() mismatch (-want +got):\n%s", diff)
			}
			if !got.Valid() {
				t.Errorf("Normalize() = %v, not canonical", got)
			}
		})
	}
}

func TestNormalize_CustomFloors(t *testing.T) {
	n := NewNormalizer(Floors{Year: 0, Month: 1, Day: 1})

	got, err := n.Normalize(Fields{Year: 0, Month: 1, Day: 1})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if got.Year != 0 {
		t.Errorf("Normalize() year = %d, want 0", got.Year)
	}
}

func TestNormalize_NonFinite(t *testing.T) {
	inputs := []Fields{
		{Year: math.NaN(), Month: 1, Day: 1},
		{Year: 2025, Month: math.Inf(1), Day: 1},
		{Year: 2025, Month: 1, Day: 1, Second: math.Inf(-1)},
	}

	for _, in := range inputs {
		_, err := Normalize(in)
		if !errors.Is(err, ErrInvalidField) {
			t.Errorf("Normalize(%+v) error = %v, want ErrInvalidField", in, err)
		}
	}
}

func TestNormalize_TooLarge(t *testing.T) {
	inputs := []Fields{
		{Year: 1e20, Month: 1, Day: 1},
		{Year: -1e20, Month: 1, Day: 1},
		{Year: 2025, Month: 1e20, Day: 1},
		{Year: 2025, Month: 1, Day: 1e17},
		{Year: 2025, Month: 1, Day: 1, Second: 1e25},
	}

	for _, in := range inputs {
		_, err := Normalize(in)
		if !errors.Is(err, ErrInvalidField) {
			t.Errorf("Normalize(%+v) error = %v, want ErrInvalidField", in, err)
		}
	}

	// Large but representable years still normalize.
	got, err := Normalize(Fields{Year: 1e9, Month: 6, Day: 15})
	if err != nil {
		t.Fatalf("Normalize(1e9) error = %v", err)
	}
	if got.Year != 1e9 || got.Month != 6 || got.Day != 15 {
		t.Errorf("Normalize(1e9) = %v", got)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	in := Fields{Year: 2024.3, Month: 14.2, Day: 40, Hour: 30, Minute: 75, Second: 3601.5}

	first, err := Normalize(in)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	second, err := Normalize(first.Fields())
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Normalize() not idempotent (-first +second):\n%s", diff)
	}
}
