package stats

import (
	"testing"
	"time"

	"github.com/expenso/expenso/pkg/expense"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func identityConvert(amount decimal.Decimal, currency string) decimal.Decimal {
	return amount
}

func onceExpense(title, amount string, date time.Time) expense.Expense {
	return expense.Expense{
		Title:           title,
		Amount:          decimal.RequireFromString(amount),
		Currency:        "USD",
		BillingDate:     date,
		BillingInterval: expense.IntervalOnce,
		IsActive:        true,
	}
}

func TestPeakDayTotal_SumsCoincidingExpenses(t *testing.T) {
	// given two one-time expenses on the same day
	expenses := []expense.Expense{
		onceExpense("Concert", "30", time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)),
		onceExpense("Dinner", "70", time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)),
	}

	// when
	peak := PeakDayTotal(expenses, 2024, time.May, identityConvert)

	// then the peak day carries both
	assert.True(t, peak.Equal(decimal.NewFromInt(100)), "peak = %s", peak)
}

func TestPeakDayTotal_PicksBusiestDay(t *testing.T) {
	// given a daily expense plus a large one-time expense mid-month
	expenses := []expense.Expense{
		{
			Title:           "Coffee",
			Amount:          decimal.NewFromInt(3),
			Currency:        "USD",
			BillingDate:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			BillingInterval: expense.IntervalDaily,
			IsActive:        true,
		},
		onceExpense("Laptop", "900", time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)),
	}

	// when
	peak := PeakDayTotal(expenses, 2024, time.May, identityConvert)

	// then May 20 carries the laptop plus the coffee
	assert.True(t, peak.Equal(decimal.NewFromInt(903)), "peak = %s", peak)
}

func TestPeakDayTotal_IgnoresInactiveExpenses(t *testing.T) {
	// given
	inactive := onceExpense("Cancelled", "500", time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))
	inactive.IsActive = false

	// when
	peak := PeakDayTotal([]expense.Expense{inactive}, 2024, time.May, identityConvert)

	// then
	assert.True(t, peak.IsZero())
}

func TestPeakDayTotal_EmptyMonthIsZero(t *testing.T) {
	peak := PeakDayTotal(nil, 2024, time.May, identityConvert)
	assert.True(t, peak.IsZero())
}

func TestMonthlyTotals_SplitsOnceAndRecurring(t *testing.T) {
	// given
	expenses := []expense.Expense{
		onceExpense("Repair", "200", time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)),
		{
			Title:           "Rent",
			Amount:          decimal.NewFromInt(1200),
			Currency:        "USD",
			BillingDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			BillingInterval: expense.IntervalMonthly,
			IsActive:        true,
		},
		{
			Title:           "Gym",
			Amount:          decimal.NewFromInt(10),
			Currency:        "USD",
			BillingDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			BillingInterval: expense.IntervalWeekly, // Mondays, 4 in May 2024 from Jan 1 anchor
			IsActive:        true,
		},
	}

	// when
	buckets := MonthlyTotals(expenses, 2024, time.May, identityConvert)

	// then
	assert.True(t, buckets.OnceTotal.Equal(decimal.NewFromInt(200)), "once = %s", buckets.OnceTotal)
	// rent once + gym 4 Mondays (May 6, 13, 20, 27)
	assert.True(t, buckets.RecurringTotal.Equal(decimal.NewFromInt(1240)), "recurring = %s", buckets.RecurringTotal)
	assert.Equal(t, 2, buckets.RecurringCount)
}

func TestMonthlyTotals_RecurringCountIncludesOffMonths(t *testing.T) {
	// given a quarterly bill anchored in January, queried in an off month
	quarterly := expense.Expense{
		Title:           "Water",
		Amount:          decimal.NewFromInt(90),
		Currency:        "USD",
		BillingDate:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		BillingInterval: expense.IntervalQuarterly,
		IsActive:        true,
	}

	// when
	buckets := MonthlyTotals([]expense.Expense{quarterly}, 2024, time.May, identityConvert)

	// then it contributes no money but still counts as recurring
	assert.True(t, buckets.RecurringTotal.IsZero())
	assert.Equal(t, 1, buckets.RecurringCount)
}

func TestMonthlyTotals_InactiveExcludedFromCountAndTotals(t *testing.T) {
	// given
	paused := expense.Expense{
		Title:           "Paused sub",
		Amount:          decimal.NewFromInt(20),
		Currency:        "USD",
		BillingDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		BillingInterval: expense.IntervalMonthly,
		IsActive:        false,
	}

	// when
	buckets := MonthlyTotals([]expense.Expense{paused}, 2024, time.May, identityConvert)

	// then
	assert.True(t, buckets.RecurringTotal.IsZero())
	assert.Equal(t, 0, buckets.RecurringCount)
}

func TestMonthlyTotals_AppliesConversionAfterMultiplying(t *testing.T) {
	// given a biweekly EUR expense and a halving conversion
	halve := func(amount decimal.Decimal, currency string) decimal.Decimal {
		if currency == "EUR" {
			return amount.Div(decimal.NewFromInt(2))
		}
		return amount
	}
	biweekly := expense.Expense{
		Title:           "Cleaning",
		Amount:          decimal.NewFromInt(50),
		Currency:        "EUR",
		BillingDate:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		BillingInterval: expense.IntervalBiweekly, // May 1, 15, 29
		IsActive:        true,
	}

	// when
	buckets := MonthlyTotals([]expense.Expense{biweekly}, 2024, time.May, halve)

	// then 3 * 50 EUR converted at 0.5
	assert.True(t, buckets.RecurringTotal.Equal(decimal.NewFromInt(75)), "recurring = %s", buckets.RecurringTotal)
}
