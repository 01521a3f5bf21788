package expense

import (
	"time"
)

// The recurrence engine answers two questions about an expense's billing rule:
// does it fire on a given calendar day (OccursOn), and how many times does it
// fire within a given month (CountInMonth). All dates are treated as
// timezone-naive calendar dates; callers may pass time.Time values in any
// location and only the year/month/day components are used.

// OccursOn reports whether the expense produces a monetary event on the given
// calendar date. It is always false for dates before the billing date.
func OccursOn(e Expense, date time.Time) bool {
	anchor := toDate(e.BillingDate)
	day := toDate(date)
	if day.Before(anchor) {
		return false
	}

	switch e.BillingInterval {
	case IntervalOnce, "":
		return day.Equal(anchor)
	case IntervalDaily:
		return true
	case IntervalWeekdays:
		return mondayIndex(day) <= 4
	case IntervalWeekends:
		return mondayIndex(day) >= 5
	case IntervalSpecificDays:
		return e.HasSpecificDay(mondayIndex(day))
	case IntervalWeekly:
		return daysBetween(anchor, day)%7 == 0
	case IntervalBiweekly:
		return daysBetween(anchor, day)%14 == 0
	case IntervalCustom:
		step := e.CustomIntervalDays
		return step >= 1 && daysBetween(anchor, day)%step == 0
	case IntervalMonthly, IntervalBimonthly, IntervalQuarterly, IntervalSemiannually, IntervalYearly:
		step := e.BillingInterval.monthStep()
		monthsDiff := monthsBetween(anchor, day)
		if monthsDiff < 0 || monthsDiff%step != 0 {
			return false
		}
		return day.Day() == clampDay(anchor.Day(), day.Year(), day.Month())
	default:
		// Unknown or future interval kinds never occur.
		return false
	}
}

// CountInMonth returns how many occurrences of the expense fall within the
// given month, counting only occurrences on or after the billing date. It is
// equivalent to testing OccursOn for every day of the month, but the periodic
// kinds take a short-circuit path instead of scanning all days.
func CountInMonth(e Expense, year int, month time.Month) int {
	switch e.BillingInterval {
	case IntervalOnce, "":
		anchor := toDate(e.BillingDate)
		if anchor.Year() == year && anchor.Month() == month {
			return 1
		}
		return 0
	case IntervalDaily, IntervalWeekdays, IntervalWeekends, IntervalSpecificDays:
		return countByScan(e, year, month)
	case IntervalWeekly:
		return countByStep(e, year, month, 7)
	case IntervalBiweekly:
		return countByStep(e, year, month, 14)
	case IntervalCustom:
		return countByStep(e, year, month, e.CustomIntervalDays)
	case IntervalMonthly, IntervalBimonthly, IntervalQuarterly, IntervalSemiannually, IntervalYearly:
		return countByMonthStep(e, year, month)
	default:
		return 0
	}
}

// countByScan iterates every day of the month and counts the days matching
// the expense's weekday rule on or after the billing date. Used for the kinds
// whose occurrences depend on the weekday of each candidate day.
func countByScan(e Expense, year int, month time.Month) int {
	anchor := toDate(e.BillingDate)
	count := 0
	for d := 1; d <= daysInMonth(year, month); d++ {
		day := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
		if day.Before(anchor) {
			continue
		}
		switch e.BillingInterval {
		case IntervalDaily:
			count++
		case IntervalWeekdays:
			if mondayIndex(day) <= 4 {
				count++
			}
		case IntervalWeekends:
			if mondayIndex(day) >= 5 {
				count++
			}
		case IntervalSpecificDays:
			if e.HasSpecificDay(mondayIndex(day)) {
				count++
			}
		}
	}
	return count
}

// countByStep walks forward in step-day increments starting from the first
// occurrence on or after the month's first day. The jump to the first
// candidate is computed analytically, so the walk never visits dates before
// the billing date and takes at most daysInMonth/step iterations.
func countByStep(e Expense, year int, month time.Month, step int) int {
	if step < 1 {
		return 0
	}
	anchor := toDate(e.BillingDate)
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	first := anchor
	if anchor.Before(monthStart) {
		gap := daysBetween(anchor, monthStart)
		steps := (gap + step - 1) / step
		first = anchor.AddDate(0, 0, steps*step)
	}

	count := 0
	for day := first; day.Year() == year && day.Month() == month; day = day.AddDate(0, 0, step) {
		count++
	}
	return count
}

// countByMonthStep handles the month-anchored periodic kinds analytically:
// the month either contains exactly one candidate day (the anchor day clamped
// to the month's length) or none.
func countByMonthStep(e Expense, year int, month time.Month) int {
	step := e.BillingInterval.monthStep()
	if step == 0 {
		return 0
	}
	anchor := toDate(e.BillingDate)
	monthsDiff := (year-anchor.Year())*12 + int(month-anchor.Month())
	if monthsDiff < 0 || monthsDiff%step != 0 {
		return 0
	}
	day := clampDay(anchor.Day(), year, month)
	candidate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if candidate.Before(anchor) {
		return 0
	}
	return 1
}

// toDate truncates a time to its calendar date at midnight UTC.
func toDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole number of calendar days from a to b.
// Both arguments must be midnight-UTC dates.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

// monthsBetween returns the whole-month offset between the months of a and b,
// ignoring the day component.
func monthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()-a.Month())
}

// daysInMonth returns the number of days in the given month.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// clampDay adjusts an anchor day-of-month down to the last valid day of the
// target month, e.g. day 31 becomes 28 in a non-leap February.
func clampDay(anchorDay, year int, month time.Month) int {
	if last := daysInMonth(year, month); anchorDay > last {
		return last
	}
	return anchorDay
}

// mondayIndex converts a date's weekday to the Monday=0..Sunday=6 convention
// used by SpecificDays.
func mondayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
