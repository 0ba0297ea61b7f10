// Package calendar implements a proleptic Gregorian calendar engine on top of
// a scalar count of seconds ("rawtime").
//
// Day offset 0 is year 0, January 1. Every rule (leap years, month lengths,
// carrying between fields) is implemented here; the time package is not used
// for any calendar arithmetic.
package calendar

import "fmt"

// Unit sizes in seconds.
const (
	SecondsPerMinute = 60
	SecondsPerHour   = 60 * SecondsPerMinute
	SecondsPerDay    = 24 * SecondsPerHour
)

// A Gregorian 400-year cycle always has the same length, wherever it starts.
const (
	yearsPerCycle  = 400
	daysPerCycle   = 146097
	monthsPerCycle = 12 * yearsPerCycle
)

// MaxDays bounds the day count of any tuple on either side of the epoch, so
// that days and the years derived from them always fit in an int.
const MaxDays = 1 << 53

// MaxSeconds is MaxDays expressed in seconds. Rawtime magnitudes beyond it
// are rejected with ErrInvalidField.
const MaxSeconds = MaxDays * SecondsPerDay

// maxYears and maxMonths bound raw year and month fields before normalization.
const (
	maxYears  = MaxDays / 366
	maxMonths = 12 * maxYears
)

// monthDays holds month lengths for a common year.
var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsLeapYear reports whether year is a leap year in the Gregorian calendar:
// divisible by 4, and either not divisible by 100 or divisible by 400.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days in month of year.
// February has 29 days in leap years. Months outside 1..12 are rejected
// with ErrInvalidField.
func DaysInMonth(year, month int) (int, error) {
	if month < 1 || month > 12 {
		return 0, NewError(ErrInvalidField, "DaysInMonth", month,
			fmt.Sprintf("year %d", year), "month must be between 1 and 12")
	}
	return daysIn(year, month), nil
}

// daysIn is DaysInMonth for callers that already hold a valid month.
func daysIn(year, month int) int {
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return monthDays[month-1]
}

// DaysSinceEpoch returns the number of whole days between year 0, January 1
// and the given date. Full years 0..year-1 are counted with their real
// length, then full months 1..month-1 of year, then day-1.
//
// The year count uses a closed-form leap count, so the result is O(1) and
// agrees exactly with summing DaysInYear one year at a time.
func DaysSinceEpoch(year, month, day int) (int, error) {
	if month < 1 || month > 12 {
		return 0, NewError(ErrInvalidField, "DaysSinceEpoch", month,
			fmt.Sprintf("date %d-%d-%d", year, month, day), "month must be between 1 and 12")
	}
	return daysBeforeYear(year) + daysBeforeMonth(year, month) + day - 1, nil
}

// daysBeforeYear counts the days in years [0, year). For negative years the
// result is negative: minus the days in [year, 0).
func daysBeforeYear(year int) int {
	return 365*year + leapYearsBefore(year)
}

// leapYearsBefore counts leap years in [0, year). Year 0 is a leap year.
func leapYearsBefore(year int) int {
	return floorDiv(year+3, 4) - floorDiv(year+99, 100) + floorDiv(year+399, 400)
}

// daysBeforeMonth counts the days in months [1, month) of year.
func daysBeforeMonth(year, month int) int {
	days := 0
	for m := 1; m < month; m++ {
		days += daysIn(year, m)
	}
	return days
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// floorMod is the remainder matching floorDiv; it has the sign of b.
func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
