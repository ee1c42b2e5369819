package generator

import "time"

// Calendar multipliers applied to event rates near period boundaries.
const (
	monthEndWindow     = 3
	monthEndMultiplier = 1.5
	quarterEndMult     = 2.0
)

// truncateDay returns the UTC midnight of t's calendar date.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func daysInMonth(d time.Time) int {
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// isMonthEnd reports whether d falls in the last three calendar days of its month.
func isMonthEnd(d time.Time) bool {
	return d.Day() > daysInMonth(d)-monthEndWindow
}

func isQuarterEndMonth(m time.Month) bool {
	return m == time.March || m == time.June || m == time.September || m == time.December
}

// activityMultiplier scales event rates: 1.5x at month-end, 2x at quarter-end.
func activityMultiplier(d time.Time) float64 {
	if !isMonthEnd(d) {
		return 1
	}
	if isQuarterEndMonth(d.Month()) {
		return quarterEndMult
	}
	return monthEndMultiplier
}

// isLastBusinessDay reports whether d is the last weekday of its month.
func isLastBusinessDay(d time.Time) bool {
	if isWeekend(d) {
		return false
	}
	for next := d.AddDate(0, 0, 1); next.Month() == d.Month(); next = next.AddDate(0, 0, 1) {
		if !isWeekend(next) {
			return false
		}
	}
	return true
}

// isFirstBusinessDayFrom reports whether d is the first weekday on or after
// the given day of its month.
func isFirstBusinessDayFrom(d time.Time, day int) bool {
	if isWeekend(d) || d.Day() < day {
		return false
	}
	for prev := d.AddDate(0, 0, -1); prev.Day() >= day && prev.Month() == d.Month(); prev = prev.AddDate(0, 0, -1) {
		if !isWeekend(prev) {
			return false
		}
	}
	return true
}
