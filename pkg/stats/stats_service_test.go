package stats

import (
	"context"
	"testing"
	"time"

	"github.com/expenso/expenso/internal/utils"
	"github.com/expenso/expenso/pkg/category"
	"github.com/expenso/expenso/pkg/currency"
	"github.com/expenso/expenso/pkg/expense"
	"github.com/expenso/expenso/pkg/payment_method"
	"github.com/expenso/expenso/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func statsTestContext() context.Context {
	return user.WithUser(context.Background(), user.User{
		Id:       1,
		Username: "tester",
		Settings: user.Settings{DisplayCurrency: "USD"},
	})
}

func newTestService(expenses []expense.Expense, now time.Time) *StatsServiceImpl {
	return NewStatsService(
		&stubExpenseProvider{expenses: expenses},
		&stubCategoryService{categories: []category.Category{
			{ID: 1, Name: "Housing", Icon: "🏠", Color: "#6366f1"},
			{ID: 2, Name: "Entertainment", Icon: "🎬", Color: "#ec4899"},
		}},
		&stubPaymentMethodService{methods: []payment_method.PaymentMethod{
			{ID: 1, Name: "Credit Card", Icon: "💳"},
		}},
		&stubCurrencyService{rates: currency.Rates{
			Base: "USD",
			Table: map[string]decimal.Decimal{
				"USD": decimal.NewFromInt(1),
				"EUR": decimal.RequireFromString("0.5"),
			},
		}},
		&utils.MockClock{FixedNow: now},
	)
}

func TestStatsService_GetSummary(t *testing.T) {
	// given May 2024 with one rent payment and a one-time purchase
	now := time.Date(2024, 5, 18, 10, 0, 0, 0, time.UTC)
	expenses := []expense.Expense{
		{
			ID:              1,
			Title:           "Rent",
			Amount:          decimal.NewFromInt(1200),
			Currency:        "USD",
			CategoryID:      1,
			PaymentMethodID: 1,
			BillingDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			BillingInterval: expense.IntervalMonthly,
			IsActive:        true,
		},
		{
			ID:              2,
			Title:           "Cinema",
			Amount:          decimal.NewFromInt(25),
			Currency:        "USD",
			CategoryID:      2,
			PaymentMethodID: 1,
			BillingDate:     time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
			BillingInterval: expense.IntervalOnce,
			IsActive:        true,
		},
	}
	service := newTestService(expenses, now)

	// when
	summary, err := service.GetSummary(statsTestContext())

	// then
	assert.NoError(t, err)
	assert.Equal(t, 2024, summary.Year)
	assert.Equal(t, time.May, summary.Month)
	assert.Equal(t, "USD", summary.DisplayCurrency)
	assert.True(t, summary.MonthTotal.Equal(decimal.NewFromInt(25)))
	assert.True(t, summary.RecurringTotal.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, 1, summary.RecurringCount)
	assert.Equal(t, 2, summary.TotalCount)
	assert.True(t, summary.PeakDayTotal.Equal(decimal.NewFromInt(1200)))

	assert.Len(t, summary.Categories, 2)
	assert.Equal(t, "Housing", summary.Categories[0].Name)
	assert.True(t, summary.Categories[0].Total.Equal(decimal.NewFromInt(1200)))

	assert.Len(t, summary.PaymentMethods, 1)
	assert.Equal(t, "Credit Card", summary.PaymentMethods[0].Name)
	assert.True(t, summary.PaymentMethods[0].Total.Equal(decimal.NewFromInt(1225)))

	assert.Len(t, summary.TopExpenses, 2)
	assert.Equal(t, "Rent", summary.TopExpenses[0].Title)

	assert.Len(t, summary.MonthlyTotals, 12)
	assert.Equal(t, "2023-06", summary.MonthlyTotals[0].Month)
	assert.Equal(t, "2024-05", summary.MonthlyTotals[11].Month)
	// rent runs January through May
	assert.True(t, summary.MonthlyTotals[7].Total.Equal(decimal.NewFromInt(1200)), "2024-01 = %s", summary.MonthlyTotals[7].Total)
	assert.True(t, summary.MonthlyTotals[11].Total.Equal(decimal.NewFromInt(1225)))
	assert.True(t, summary.MonthlyTotals[0].Total.IsZero())
}

func TestStatsService_GetSummary_convertsCurrencies(t *testing.T) {
	// given a EUR expense with EUR at half a dollar
	now := time.Date(2024, 5, 18, 10, 0, 0, 0, time.UTC)
	expenses := []expense.Expense{
		{
			ID:              1,
			Title:           "Hosting",
			Amount:          decimal.NewFromInt(10),
			Currency:        "EUR",
			BillingDate:     time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			BillingInterval: expense.IntervalOnce,
			IsActive:        true,
		},
	}
	service := newTestService(expenses, now)

	// when
	summary, err := service.GetSummary(statsTestContext())

	// then 10 EUR becomes 20 USD
	assert.NoError(t, err)
	assert.True(t, summary.MonthTotal.Equal(decimal.NewFromInt(20)), "monthTotal = %s", summary.MonthTotal)
}

func TestStatsService_GetSummary_requiresUser(t *testing.T) {
	// given
	service := newTestService(nil, time.Date(2024, 5, 18, 0, 0, 0, 0, time.UTC))

	// when
	_, err := service.GetSummary(context.Background())

	// then
	assert.ErrorIs(t, err, user.ErrNoUser)
}

func TestStatsService_GetCalendar(t *testing.T) {
	// given a weekly expense anchored on a Wednesday
	now := time.Date(2024, 5, 18, 10, 0, 0, 0, time.UTC)
	expenses := []expense.Expense{
		{
			ID:              1,
			Title:           "Groceries",
			Amount:          decimal.NewFromInt(80),
			Currency:        "USD",
			CategoryID:      1,
			PaymentMethodID: 1,
			BillingDate:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			BillingInterval: expense.IntervalWeekly,
			IsActive:        true,
		},
	}
	service := newTestService(expenses, now)

	// when
	calendar, err := service.GetCalendar(statsTestContext(), 2024, time.May)

	// then every day of May is present and Wednesdays carry the expense
	assert.NoError(t, err)
	assert.Len(t, calendar, 31)
	assert.Len(t, calendar["2024-05-01"], 1)
	assert.Len(t, calendar["2024-05-08"], 1)
	assert.Len(t, calendar["2024-05-29"], 1)
	assert.Empty(t, calendar["2024-05-02"])

	entry := calendar["2024-05-08"][0]
	assert.Equal(t, "Groceries", entry.Title)
	assert.Equal(t, "Housing", entry.CategoryName)
	assert.Equal(t, "Credit Card", entry.PaymentMethodName)
	assert.Equal(t, "weekly", entry.BillingInterval)
}

func TestStatsService_GetCalendar_skipsInactive(t *testing.T) {
	// given
	now := time.Date(2024, 5, 18, 10, 0, 0, 0, time.UTC)
	expenses := []expense.Expense{
		{
			ID:              1,
			Title:           "Paused",
			Amount:          decimal.NewFromInt(5),
			Currency:        "USD",
			BillingDate:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			BillingInterval: expense.IntervalDaily,
			IsActive:        false,
		},
	}
	service := newTestService(expenses, now)

	// when
	calendar, err := service.GetCalendar(statsTestContext(), 2024, time.May)

	// then
	assert.NoError(t, err)
	for _, entries := range calendar {
		assert.Empty(t, entries)
	}
}
