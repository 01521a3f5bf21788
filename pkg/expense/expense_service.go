package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/expenso/expenso/pkg/user"
	log "github.com/sirupsen/logrus"
)

var ErrExpenseDataInvalid = errors.New("expense data invalid")

type Service interface {
	GetAll(ctx context.Context) ([]Expense, error)
	Get(ctx context.Context, id int) (Expense, error)
	Create(ctx context.Context, expense Expense) (Expense, error)
	Update(ctx context.Context, expense Expense) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// Provider is the read-only view the aggregation layer depends on.
type Provider interface {
	GetAll(ctx context.Context) ([]Expense, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Get(ctx, userId, id)
}

func (s *ServiceImpl) Create(ctx context.Context, expense Expense) (Expense, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Expense{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(expense); err != nil {
		return Expense{}, err
	}

	id, err := s.repo.Store(ctx, userId, expense)
	if err != nil {
		return Expense{}, err
	}
	expense.ID = id

	return expense, nil
}

func (s *ServiceImpl) Update(ctx context.Context, expense Expense) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if err := validate(expense); err != nil {
		return false, err
	}

	updated, err := s.repo.Update(ctx, userId, expense)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("expense not updated, probably because it does not exist (%d) or the user (%d) is not the owner", expense.ID, userId)
		return false, nil
	}
	return true, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("expense not deleted, probably because it does not exist (%d) or the user (%d) is not the owner", id, userId)
		return false, nil
	}
	return true, nil
}

// validate enforces the rule constraints the engine itself deliberately does
// not check: the form layer owns validation, the engine just returns zero
// occurrences for degenerate rules.
func validate(expense Expense) error {
	if expense.Title == "" {
		return fmt.Errorf("%w: title is required", ErrExpenseDataInvalid)
	}
	if expense.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must not be negative", ErrExpenseDataInvalid)
	}
	if expense.BillingDate.IsZero() {
		return fmt.Errorf("%w: billing date is required", ErrExpenseDataInvalid)
	}
	if expense.BillingInterval == IntervalUnknown {
		return fmt.Errorf("%w: unrecognized billing interval", ErrExpenseDataInvalid)
	}
	if expense.BillingInterval == IntervalCustom && expense.CustomIntervalDays < 1 {
		return fmt.Errorf("%w: custom interval requires a day step of at least 1", ErrExpenseDataInvalid)
	}
	if expense.BillingInterval == IntervalSpecificDays && len(expense.SpecificDays) == 0 {
		return fmt.Errorf("%w: specific days interval requires at least one weekday", ErrExpenseDataInvalid)
	}
	return nil
}
