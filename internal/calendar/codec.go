package calendar

import (
	"fmt"
	"math"
)

// Encode converts a canonical tuple into seconds since the epoch, then adds
// drift:
//
//	DaysSinceEpoch(Y, M, D)*86400 + h*3600 + mi*60 + s + drift
//
// Era is not applied here; callers negate the result for BC after encoding.
func Encode(t Tuple, drift float64) (float64, error) {
	if !finite(t.Second) {
		return 0, NewError(ErrInvalidField, "Encode", t.Second, "field second", "seconds must be a finite number")
	}
	if !finite(drift) {
		return 0, NewError(ErrInvalidField, "Encode", drift, "drift", "drift must be a finite number")
	}

	days, err := DaysSinceEpoch(t.Year, t.Month, t.Day)
	if err != nil {
		return 0, fmt.Errorf("encode %s: %w", t, err)
	}

	total := float64(days)*SecondsPerDay +
		float64(t.Hour)*SecondsPerHour +
		float64(t.Minute)*SecondsPerMinute +
		t.Second

	return total + drift, nil
}

// Decode converts seconds back into a canonical tuple. It is the exact
// inverse of Encode for the same drift: drift is subtracted first.
//
// Callers strip the era before decoding (pass the magnitude). The time of day
// is rounded to four decimals of a second; this keeps float noise from
// accumulating across encode/decode round trips and is part of the contract.
func Decode(seconds, drift float64) (Tuple, error) {
	s := seconds - drift
	if !finite(s) {
		return Tuple{}, NewError(ErrInvalidField, "Decode", seconds,
			fmt.Sprintf("drift %v", drift), "rawtime must be a finite number")
	}
	if math.Abs(s) > MaxSeconds {
		return Tuple{}, NewError(ErrInvalidField, "Decode", seconds,
			fmt.Sprintf("drift %v", drift), fmt.Sprintf("rawtime magnitude must not exceed %g seconds", float64(MaxSeconds)))
	}

	dayCount := math.Floor(s / SecondsPerDay)
	rem := round4(s - dayCount*SecondsPerDay)
	if rem >= SecondsPerDay {
		dayCount++
		rem -= SecondsPerDay
	}
	if rem < 0 {
		dayCount--
		rem += SecondsPerDay
	}

	year, month, day := dateFromDays(int(dayCount))

	hour := int(rem / SecondsPerHour)
	rem -= float64(hour) * SecondsPerHour
	minute := int(rem / SecondsPerMinute)
	second := round4(rem - float64(minute)*SecondsPerMinute)

	return Tuple{
		Year:   year,
		Month:  month,
		Day:    day,
		Hour:   hour,
		Minute: minute,
		Second: second,
	}, nil
}

// dateFromDays is the inverse of DaysSinceEpoch. Whole 400-year cycles are
// taken off first, then years and months are walked one at a time.
func dateFromDays(days int) (year, month, day int) {
	year = floorDiv(days, daysPerCycle) * yearsPerCycle
	days = floorMod(days, daysPerCycle)

	for days >= DaysInYear(year) {
		days -= DaysInYear(year)
		year++
	}

	month = 1
	for days >= daysIn(year, month) {
		days -= daysIn(year, month)
		month++
	}

	return year, month, days + 1
}
