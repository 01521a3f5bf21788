package stats

import (
	"time"

	"github.com/expenso/expenso/pkg/expense"
	"github.com/shopspring/decimal"
)

// ConvertFunc translates an amount in the given currency into the display
// currency.
type ConvertFunc func(amount decimal.Decimal, currency string) decimal.Decimal

// MonthlyBuckets splits a month's expenses into one-time and recurring money.
// RecurringCount counts configured active recurring expenses, whether or not
// they happen to occur in the month.
type MonthlyBuckets struct {
	OnceTotal      decimal.Decimal
	RecurringTotal decimal.Decimal
	RecurringCount int
}

type MonthTotal struct {
	Month string
	Total decimal.Decimal
}

type CategoryBreakdown struct {
	Name  string
	Icon  string
	Color string
	Total decimal.Decimal
}

type PaymentBreakdown struct {
	Name  string
	Icon  string
	Total decimal.Decimal
}

type TopExpense struct {
	Title         string
	Amount        decimal.Decimal
	Currency      string
	CategoryIcon  string
	CategoryColor string
}

type StatsSummary struct {
	Year            int
	Month           time.Month
	DisplayCurrency string
	MonthTotal      decimal.Decimal
	RecurringTotal  decimal.Decimal
	RecurringCount  int
	TotalCount      int
	PeakDayTotal    decimal.Decimal
	Categories      []CategoryBreakdown
	PaymentMethods  []PaymentBreakdown
	TopExpenses     []TopExpense
	MonthlyTotals   []MonthTotal
}

// CalendarEntry is one expense occurrence shown on a calendar day.
type CalendarEntry struct {
	ExpenseID         int
	Title             string
	Amount            decimal.Decimal
	Currency          string
	CategoryName      string
	CategoryIcon      string
	CategoryColor     string
	PaymentMethodName string
	BillingInterval   string
}

// Calendar maps ISO dates ("2006-01-02") to the occurrences on that day.
// Every day of the month is present, empty days included.
type Calendar map[string][]CalendarEntry

// PeakDayTotal finds the highest single-day spend across the month: for each
// day, the converted amounts of all active expenses occurring on it are
// summed, and the maximum of those daily sums is returned.
func PeakDayTotal(expenses []expense.Expense, year int, month time.Month, convert ConvertFunc) decimal.Decimal {
	peak := decimal.Zero
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	for day := 1; day <= lastDay; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		dayTotal := decimal.Zero
		for _, e := range expenses {
			if !e.IsActive {
				continue
			}
			if !expense.OccursOn(e, date) {
				continue
			}
			dayTotal = dayTotal.Add(convert(e.Amount, e.Currency))
		}
		if dayTotal.GreaterThan(peak) {
			peak = dayTotal
		}
	}
	return peak
}

// MonthlyTotals buckets a month's converted spend into one-time and recurring
// totals. Each expense contributes amount times its occurrence count in the
// month. The recurring count deliberately ignores occurrence counts so a
// quarterly bill shows up as configured recurring spend even in its off
// months.
func MonthlyTotals(expenses []expense.Expense, year int, month time.Month, convert ConvertFunc) MonthlyBuckets {
	buckets := MonthlyBuckets{OnceTotal: decimal.Zero, RecurringTotal: decimal.Zero}
	for _, e := range expenses {
		if !e.IsActive {
			continue
		}
		if e.BillingInterval.IsRecurring() {
			buckets.RecurringCount++
		}
		count := expense.CountInMonth(e, year, month)
		if count <= 0 {
			continue
		}
		converted := convert(e.Amount.Mul(decimal.NewFromInt(int64(count))), e.Currency)
		if e.BillingInterval.IsRecurring() {
			buckets.RecurringTotal = buckets.RecurringTotal.Add(converted)
		} else {
			buckets.OnceTotal = buckets.OnceTotal.Add(converted)
		}
	}
	return buckets
}
