package stats

import (
	"context"

	"github.com/expenso/expenso/pkg/category"
	"github.com/expenso/expenso/pkg/currency"
	"github.com/expenso/expenso/pkg/expense"
	"github.com/expenso/expenso/pkg/payment_method"
)

type stubExpenseProvider struct {
	expenses []expense.Expense
}

func (s *stubExpenseProvider) GetAll(ctx context.Context) ([]expense.Expense, error) {
	return s.expenses, nil
}

type stubCategoryService struct {
	categories []category.Category
}

func (s *stubCategoryService) GetAll(ctx context.Context) ([]category.Category, error) {
	return s.categories, nil
}

func (s *stubCategoryService) Create(ctx context.Context, c category.Category) (category.Category, error) {
	return c, nil
}

func (s *stubCategoryService) Update(ctx context.Context, c category.Category) (bool, error) {
	return true, nil
}

func (s *stubCategoryService) Delete(ctx context.Context, id int) (bool, error) {
	return true, nil
}

func (s *stubCategoryService) SeedDefaults(ctx context.Context, userId int) error {
	return nil
}

type stubPaymentMethodService struct {
	methods []payment_method.PaymentMethod
}

func (s *stubPaymentMethodService) GetAll(ctx context.Context) ([]payment_method.PaymentMethod, error) {
	return s.methods, nil
}

func (s *stubPaymentMethodService) Create(ctx context.Context, m payment_method.PaymentMethod) (payment_method.PaymentMethod, error) {
	return m, nil
}

func (s *stubPaymentMethodService) Update(ctx context.Context, m payment_method.PaymentMethod) (bool, error) {
	return true, nil
}

func (s *stubPaymentMethodService) Delete(ctx context.Context, id int) (bool, error) {
	return true, nil
}

func (s *stubPaymentMethodService) SeedDefaults(ctx context.Context, userId int) error {
	return nil
}

type stubCurrencyService struct {
	rates currency.Rates
}

func (s *stubCurrencyService) GetRates(ctx context.Context, base string) currency.Rates {
	return s.rates
}
