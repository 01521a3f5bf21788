package payment_method

import (
	"context"
	"errors"
	"fmt"

	"github.com/expenso/expenso/pkg/user"
)

var ErrPaymentMethodDataInvalid = errors.New("payment method data invalid")

// defaultMethods are created for every freshly registered user.
var defaultMethods = []PaymentMethod{
	{Name: "Cash", Icon: "💵"},
	{Name: "Credit Card", Icon: "💳"},
	{Name: "Debit Card", Icon: "🏧"},
	{Name: "Bank Transfer", Icon: "🏦"},
	{Name: "PayPal", Icon: "🅿️"},
	{Name: "Crypto", Icon: "₿"},
}

type Service interface {
	GetAll(ctx context.Context) ([]PaymentMethod, error)
	Create(ctx context.Context, method PaymentMethod) (PaymentMethod, error)
	Update(ctx context.Context, method PaymentMethod) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	SeedDefaults(ctx context.Context, userId int) error
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]PaymentMethod, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) Create(ctx context.Context, method PaymentMethod) (PaymentMethod, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return PaymentMethod{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if method.Name == "" {
		return PaymentMethod{}, fmt.Errorf("%w: name is required", ErrPaymentMethodDataInvalid)
	}
	if method.Icon == "" {
		method.Icon = "💳"
	}
	id, err := s.repo.Store(ctx, userId, method)
	if err != nil {
		return PaymentMethod{}, err
	}
	method.ID = id
	return method, nil
}

func (s *ServiceImpl) Update(ctx context.Context, method PaymentMethod) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if method.Name == "" {
		return false, fmt.Errorf("%w: name is required", ErrPaymentMethodDataInvalid)
	}
	return s.repo.Update(ctx, userId, method)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Delete(ctx, userId, id)
}

// SeedDefaults stores the default payment method set for a new user.
func (s *ServiceImpl) SeedDefaults(ctx context.Context, userId int) error {
	for _, m := range defaultMethods {
		if _, err := s.repo.Store(ctx, userId, m); err != nil {
			return fmt.Errorf("failed to seed payment method %q: %w", m.Name, err)
		}
	}
	return nil
}
