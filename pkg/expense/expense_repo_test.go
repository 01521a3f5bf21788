package expense

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/expenso/expenso/internal/test_utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func seedUser(t *testing.T, db *sql.DB) int {
	t.Helper()
	res, err := db.Exec(
		`INSERT INTO users (uid, username, display_name, display_currency, week_first_day, theme)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		"test-uid", "tester", "Tester", "USD", 1, "ocean")
	assert.NoError(t, err)
	id, err := res.LastInsertId()
	assert.NoError(t, err)
	return int(id)
}

func TestExpenseRepo_StoreAndGet(t *testing.T) {
	// given
	db := test_utils.SetupTestDB(t)
	userId := seedUser(t, db)
	repo := NewRepo(db)
	ctx := context.Background()
	expense := Expense{
		Title:           "Rent",
		Description:     "Monthly rent",
		Amount:          decimal.RequireFromString("1200.50"),
		Currency:        "EUR",
		BillingDate:     time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		BillingInterval: IntervalMonthly,
		IsActive:        true,
	}

	// when
	id, err := repo.Store(ctx, userId, expense)

	// then
	assert.NoError(t, err)
	stored, err := repo.Get(ctx, userId, id)
	assert.NoError(t, err)
	assert.Equal(t, "Rent", stored.Title)
	assert.Equal(t, "EUR", stored.Currency)
	assert.True(t, stored.Amount.Equal(decimal.RequireFromString("1200.50")))
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), stored.BillingDate)
	assert.Equal(t, IntervalMonthly, stored.BillingInterval)
	assert.True(t, stored.IsActive)
}

func TestExpenseRepo_SpecificDaysRoundTrip(t *testing.T) {
	// given
	db := test_utils.SetupTestDB(t)
	userId := seedUser(t, db)
	repo := NewRepo(db)
	ctx := context.Background()
	expense := Expense{
		Title:           "Gym",
		Amount:          decimal.NewFromInt(5),
		Currency:        "USD",
		BillingDate:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		BillingInterval: IntervalSpecificDays,
		SpecificDays:    []int{0, 2, 4},
		IsActive:        true,
	}

	// when
	id, err := repo.Store(ctx, userId, expense)

	// then
	assert.NoError(t, err)
	stored, err := repo.Get(ctx, userId, id)
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4}, stored.SpecificDays)
}

func TestExpenseRepo_GetAll_skipsMalformedRecords(t *testing.T) {
	// given
	db := test_utils.SetupTestDB(t)
	userId := seedUser(t, db)
	repo := NewRepo(db)
	ctx := context.Background()

	_, err := repo.Store(ctx, userId, Expense{
		Title:           "Good",
		Amount:          decimal.NewFromInt(10),
		Currency:        "USD",
		BillingDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		BillingInterval: IntervalWeekly,
		IsActive:        true,
	})
	assert.NoError(t, err)

	// a record with an unparseable billing date, written behind the repo's back
	_, err = db.Exec(
		`INSERT INTO expenses (user_id, title, amount, currency, billing_date, billing_interval, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userId, "Broken", "10", "USD", "not-a-date", "monthly", 1)
	assert.NoError(t, err)

	// when
	all, err := repo.GetAll(ctx, userId)

	// then
	assert.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, "Good", all[0].Title)
}

func TestExpenseRepo_Update(t *testing.T) {
	// given
	db := test_utils.SetupTestDB(t)
	userId := seedUser(t, db)
	repo := NewRepo(db)
	ctx := context.Background()
	expense := Expense{
		Title:           "Spotify",
		Amount:          decimal.RequireFromString("9.99"),
		Currency:        "USD",
		BillingDate:     time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		BillingInterval: IntervalMonthly,
		IsActive:        true,
	}
	id, err := repo.Store(ctx, userId, expense)
	assert.NoError(t, err)

	// when
	expense.ID = id
	expense.Title = "Spotify Family"
	expense.Amount = decimal.RequireFromString("14.99")
	expense.IsActive = false
	updated, err := repo.Update(ctx, userId, expense)

	// then
	assert.NoError(t, err)
	assert.True(t, updated)
	stored, err := repo.Get(ctx, userId, id)
	assert.NoError(t, err)
	assert.Equal(t, "Spotify Family", stored.Title)
	assert.True(t, stored.Amount.Equal(decimal.RequireFromString("14.99")))
	assert.False(t, stored.IsActive)
}

func TestExpenseRepo_Update_otherUsersExpense(t *testing.T) {
	// given
	db := test_utils.SetupTestDB(t)
	userId := seedUser(t, db)
	repo := NewRepo(db)
	ctx := context.Background()
	expense := Expense{
		Title:           "Rent",
		Amount:          decimal.NewFromInt(1200),
		Currency:        "USD",
		BillingDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		BillingInterval: IntervalMonthly,
		IsActive:        true,
	}
	id, err := repo.Store(ctx, userId, expense)
	assert.NoError(t, err)

	// when
	expense.ID = id
	updated, err := repo.Update(ctx, userId+1, expense)

	// then
	assert.NoError(t, err)
	assert.False(t, updated)
}

func TestExpenseRepo_Delete(t *testing.T) {
	// given
	db := test_utils.SetupTestDB(t)
	userId := seedUser(t, db)
	repo := NewRepo(db)
	ctx := context.Background()
	id, err := repo.Store(ctx, userId, Expense{
		Title:           "One-off",
		Amount:          decimal.NewFromInt(50),
		Currency:        "USD",
		BillingDate:     time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		BillingInterval: IntervalOnce,
		IsActive:        true,
	})
	assert.NoError(t, err)

	// when
	deleted, err := repo.Delete(ctx, userId, id)

	// then
	assert.NoError(t, err)
	assert.True(t, deleted)
	_, err = repo.Get(ctx, userId, id)
	assert.ErrorIs(t, err, ErrExpenseNotFound)
}
