package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Interval is the closed set of billing recurrence kinds. Values not produced
// by ParseInterval (including IntervalUnknown) never occur, so records written
// by a newer data layer degrade to "no occurrences" instead of failing.
type Interval string

const (
	IntervalOnce         Interval = "once"
	IntervalDaily        Interval = "daily"
	IntervalWeekdays     Interval = "weekdays"
	IntervalWeekends     Interval = "weekends"
	IntervalSpecificDays Interval = "specific_days"
	IntervalWeekly       Interval = "weekly"
	IntervalBiweekly     Interval = "biweekly"
	IntervalCustom       Interval = "custom"
	IntervalMonthly      Interval = "monthly"
	IntervalBimonthly    Interval = "bimonthly"
	IntervalQuarterly    Interval = "quarterly"
	IntervalSemiannually Interval = "semiannually"
	IntervalYearly       Interval = "yearly"
	IntervalUnknown      Interval = "unknown"
)

// ParseInterval maps a stored interval string to an Interval. An empty string
// means the expense was created before intervals existed and defaults to once;
// anything unrecognized maps to IntervalUnknown.
func ParseInterval(s string) Interval {
	switch Interval(s) {
	case IntervalOnce, IntervalDaily, IntervalWeekdays, IntervalWeekends,
		IntervalSpecificDays, IntervalWeekly, IntervalBiweekly, IntervalCustom,
		IntervalMonthly, IntervalBimonthly, IntervalQuarterly,
		IntervalSemiannually, IntervalYearly:
		return Interval(s)
	case "":
		return IntervalOnce
	default:
		return IntervalUnknown
	}
}

// IsRecurring reports whether the interval produces more than a single occurrence.
func (i Interval) IsRecurring() bool {
	return i != IntervalOnce && i != IntervalUnknown && i != ""
}

// monthStep returns the step in months for the periodic month-anchored kinds,
// or 0 for every other kind.
func (i Interval) monthStep() int {
	switch i {
	case IntervalMonthly:
		return 1
	case IntervalBimonthly:
		return 2
	case IntervalQuarterly:
		return 3
	case IntervalSemiannually:
		return 6
	case IntervalYearly:
		return 12
	default:
		return 0
	}
}

// Expense is an immutable snapshot of a single expense record. The recurrence
// engine reads BillingDate, BillingInterval, CustomIntervalDays and
// SpecificDays; everything else is carried for the aggregation and REST layers.
type Expense struct {
	ID              int
	Title           string
	Description     string
	Amount          decimal.Decimal
	Currency        string
	CategoryID      int
	PaymentMethodID int
	// BillingDate is the recurrence anchor: the first possible occurrence.
	BillingDate     time.Time
	BillingInterval Interval
	// CustomIntervalDays is the day step for IntervalCustom; values < 1 mean
	// the expense never recurs.
	CustomIntervalDays int
	// SpecificDays holds weekday indices, Monday=0 through Sunday=6, for
	// IntervalSpecificDays.
	SpecificDays []int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasSpecificDay reports whether the Monday-based weekday index is selected.
func (e Expense) HasSpecificDay(mondayIndex int) bool {
	for _, d := range e.SpecificDays {
		if d == mondayIndex {
			return true
		}
	}
	return false
}
