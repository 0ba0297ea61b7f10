package calendar

import (
	"fmt"
	"math"
)

// Floors are the minimum year, month and day a normalized tuple may carry.
// Values below a floor are raised to it; this is a documented clamp, never an
// error.
type Floors struct {
	Year  int
	Month int
	Day   int
}

// DefaultFloors clamps to year 1, January, day 1.
func DefaultFloors() Floors {
	return Floors{Year: 1, Month: 1, Day: 1}
}

// Normalizer resolves raw fields into a canonical Tuple.
type Normalizer struct {
	floors Floors
}

// NewNormalizer creates a Normalizer with the given floors.
func NewNormalizer(floors Floors) *Normalizer {
	return &Normalizer{floors: floors}
}

// Normalize resolves f with DefaultFloors.
func Normalize(f Fields) (Tuple, error) {
	return NewNormalizer(DefaultFloors()).Normalize(f)
}

// Normalize carries and borrows f into a canonical Tuple. The steps run in a
// fixed order:
//
//  1. seconds -> minutes, minutes -> hours, hours -> days (floor carries)
//  2. the fractional part of the year becomes days of that year
//  3. the month is rolled into 1..12, whole years carried into the year;
//     a month <= 0 is treated as 1
//  4. the fractional part of the month becomes days of the resolved month
//  5. the day is walked into the valid range of its month
//  6. the fractional day becomes hours/minutes/seconds, those are carried
//     again, and the day is walked into range once more
//
// Seconds are rounded to four decimals before the final carry. Floors are
// applied to the result and the day is kept within its month. Only
// non-finite input and fields too large to place on the calendar are
// rejected, with ErrInvalidField.
func (n *Normalizer) Normalize(f Fields) (Tuple, error) {
	for i, v := range f.Slice() {
		if !finite(v) {
			return Tuple{}, NewError(ErrInvalidField, "Normalize", v,
				fmt.Sprintf("field %s", fieldNames[i]), "fields must be finite numbers")
		}
	}

	year, month, day := f.Year, f.Month, f.Day
	hour, minute, second := f.Hour, f.Minute, f.Second

	// 1) seconds -> minutes -> hours -> days
	var carry float64
	carry, second = fdivmod(second, 60)
	minute += carry
	carry, minute = fdivmod(minute, 60)
	hour += carry
	carry, hour = fdivmod(hour, 24)
	day += carry

	if math.Abs(year) > maxYears || math.Abs(month) > maxMonths || math.Abs(day) > MaxDays {
		return Tuple{}, NewError(ErrInvalidField, "Normalize", f.Year,
			fmt.Sprintf("fields %v", f.Slice()), "fields are too large to place on the calendar")
	}

	// 2) fractional year
	y := int(year)
	if frac := year - float64(y); frac != 0 {
		day += frac * float64(DaysInYear(y))
	}

	// 3) month
	m := int(month)
	fracMonth := month - float64(m)
	if m <= 0 {
		m = 1
	}
	y += floorDiv(m-1, 12)
	m = floorMod(m-1, 12) + 1

	// 4) fractional month
	if fracMonth != 0 {
		day += fracMonth * float64(daysIn(y, m))
	}

	// 5) whole days
	d := int(day)
	fracDay := day - float64(d)
	y, m, d = walkDay(y, m, d)

	// 6) fractional day -> h, mi, s
	hour += fracDay * 24
	h := int(hour)
	minute += (hour - float64(h)) * 60
	mi := int(minute)
	second += (minute - float64(mi)) * 60
	second = round4(second)

	carry, second = fdivmod(second, 60)
	mi += int(carry)
	h += floorDiv(mi, 60)
	mi = floorMod(mi, 60)
	d += floorDiv(h, 24)
	h = floorMod(h, 24)
	y, m, d = walkDay(y, m, d)

	// Floors are applied last. The day is clamped again so that a raised
	// year or month never leaves it past the end of its month.
	y = max(y, n.floors.Year)
	m = max(m, n.floors.Month)
	d = min(max(d, n.floors.Day), daysIn(y, m))

	return Tuple{
		Year:   y,
		Month:  m,
		Day:    d,
		Hour:   h,
		Minute: mi,
		Second: second,
	}, nil
}

var fieldNames = [6]string{"year", "month", "day", "hour", "minute", "second"}

// walkDay moves day into [1, DaysInMonth(year, month)], borrowing from
// previous months while it is below 1 and carrying into following months
// while it is past the end of its month. Whole 400-year cycles are skipped
// first since each spans the same number of days.
func walkDay(year, month, day int) (int, int, int) {
	if day > daysPerCycle {
		n := (day - 1) / daysPerCycle
		day -= n * daysPerCycle
		year += n * yearsPerCycle
	} else if day < -daysPerCycle {
		n := -day / daysPerCycle
		day += n * daysPerCycle
		year -= n * yearsPerCycle
	}

	for {
		switch dim := daysIn(year, month); {
		case day < 1:
			month--
			if month < 1 {
				month = 12
				year--
			}
			day += daysIn(year, month)
		case day > dim:
			day -= dim
			month++
			if month > 12 {
				month = 1
				year++
			}
		default:
			return year, month, day
		}
	}
}

// fdivmod splits a into a floored quotient and a remainder in [0, b) for
// b > 0. The quotient absorbs any rounding that would leave the remainder
// equal to b.
func fdivmod(a, b float64) (float64, float64) {
	q := math.Floor(a / b)
	r := a - q*b
	if r < 0 {
		q--
		r += b
	}
	if r >= b {
		q++
		r -= b
	}
	return q, r + 0 // -0 becomes 0
}
