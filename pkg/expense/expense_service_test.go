package expense

import (
	"context"
	"testing"
	"time"

	"github.com/expenso/expenso/pkg/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testContext() context.Context {
	return user.WithUser(context.Background(), user.User{Id: 1, Username: "tester"})
}

func validExpense() Expense {
	return Expense{
		Title:           "Netflix",
		Amount:          decimal.NewFromFloat(15.49),
		Currency:        "USD",
		BillingDate:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		BillingInterval: IntervalMonthly,
		IsActive:        true,
	}
}

func TestExpenseService_Create(t *testing.T) {
	// given
	repo := NewStubExpenseRepository()
	service := NewService(repo)
	ctx := testContext()

	// when
	created, err := service.Create(ctx, validExpense())

	// then
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)

	stored, err := service.Get(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Netflix", stored.Title)
	assert.True(t, stored.Amount.Equal(decimal.NewFromFloat(15.49)))
}

func TestExpenseService_Create_validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(e *Expense)
	}{
		{"missing title", func(e *Expense) { e.Title = "" }},
		{"negative amount", func(e *Expense) { e.Amount = decimal.NewFromInt(-1) }},
		{"missing billing date", func(e *Expense) { e.BillingDate = time.Time{} }},
		{"unknown interval", func(e *Expense) { e.BillingInterval = IntervalUnknown }},
		{"custom interval without step", func(e *Expense) {
			e.BillingInterval = IntervalCustom
			e.CustomIntervalDays = 0
		}},
		{"specific days without days", func(e *Expense) {
			e.BillingInterval = IntervalSpecificDays
			e.SpecificDays = nil
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// given
			service := NewService(NewStubExpenseRepository())
			expense := validExpense()
			tt.mutate(&expense)

			// when
			_, err := service.Create(testContext(), expense)

			// then
			assert.ErrorIs(t, err, ErrExpenseDataInvalid)
		})
	}
}

func TestExpenseService_Create_requiresUser(t *testing.T) {
	// given
	service := NewService(NewStubExpenseRepository())

	// when
	_, err := service.Create(context.Background(), validExpense())

	// then
	assert.ErrorIs(t, err, user.ErrNoUser)
}

func TestExpenseService_Update(t *testing.T) {
	// given
	repo := NewStubExpenseRepository()
	service := NewService(repo)
	ctx := testContext()
	created, err := service.Create(ctx, validExpense())
	assert.NoError(t, err)

	// when
	created.Title = "Netflix Premium"
	created.Amount = decimal.NewFromFloat(22.99)
	updated, err := service.Update(ctx, created)

	// then
	assert.NoError(t, err)
	assert.True(t, updated)
	stored, err := service.Get(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Netflix Premium", stored.Title)
}

func TestExpenseService_Update_notFound(t *testing.T) {
	// given
	service := NewService(NewStubExpenseRepository())
	expense := validExpense()
	expense.ID = 42

	// when
	updated, err := service.Update(testContext(), expense)

	// then
	assert.NoError(t, err)
	assert.False(t, updated)
}

func TestExpenseService_Delete(t *testing.T) {
	// given
	repo := NewStubExpenseRepository()
	service := NewService(repo)
	ctx := testContext()
	created, err := service.Create(ctx, validExpense())
	assert.NoError(t, err)

	// when
	deleted, err := service.Delete(ctx, created.ID)

	// then
	assert.NoError(t, err)
	assert.True(t, deleted)
	all, err := service.GetAll(ctx)
	assert.NoError(t, err)
	assert.Empty(t, all)
}

func TestExpenseService_GetAll_scopedToUser(t *testing.T) {
	// given
	repo := NewStubExpenseRepository()
	service := NewService(repo)
	ctxA := user.WithUser(context.Background(), user.User{Id: 1})
	ctxB := user.WithUser(context.Background(), user.User{Id: 2})
	_, err := service.Create(ctxA, validExpense())
	assert.NoError(t, err)

	// when
	forB, err := service.GetAll(ctxB)

	// then
	assert.NoError(t, err)
	assert.Empty(t, forB)
}
