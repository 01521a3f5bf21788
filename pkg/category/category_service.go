package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/expenso/expenso/pkg/user"
)

var ErrCategoryDataInvalid = errors.New("category data invalid")

// defaultCategories are created for every freshly registered user.
var defaultCategories = []Category{
	{Name: "Housing", Icon: "🏠", Color: "#6366f1"},
	{Name: "Food & Dining", Icon: "🍔", Color: "#f59e0b"},
	{Name: "Transport", Icon: "🚗", Color: "#10b981"},
	{Name: "Entertainment", Icon: "🎬", Color: "#ec4899"},
	{Name: "Shopping", Icon: "🛍️", Color: "#8b5cf6"},
	{Name: "Health", Icon: "💊", Color: "#ef4444"},
	{Name: "Utilities", Icon: "💡", Color: "#06b6d4"},
	{Name: "Education", Icon: "📚", Color: "#f97316"},
	{Name: "Subscriptions", Icon: "🔄", Color: "#a855f7"},
	{Name: "Insurance", Icon: "🛡️", Color: "#14b8a6"},
	{Name: "Savings", Icon: "🏦", Color: "#22c55e"},
	{Name: "Other", Icon: "📌", Color: "#64748b"},
}

type Service interface {
	GetAll(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, category Category) (Category, error)
	Update(ctx context.Context, category Category) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	SeedDefaults(ctx context.Context, userId int) error
}

type ServiceImpl struct {
	repo Repo
}

func NewService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.GetAll(ctx, userId)
}

func (s *ServiceImpl) Create(ctx context.Context, category Category) (Category, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Category{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if category.Name == "" {
		return Category{}, fmt.Errorf("%w: name is required", ErrCategoryDataInvalid)
	}
	if category.Icon == "" {
		category.Icon = "📁"
	}
	if category.Color == "" {
		category.Color = "#6366f1"
	}
	id, err := s.repo.Store(ctx, userId, category)
	if err != nil {
		return Category{}, err
	}
	category.ID = id
	return category, nil
}

func (s *ServiceImpl) Update(ctx context.Context, category Category) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	if category.Name == "" {
		return false, fmt.Errorf("%w: name is required", ErrCategoryDataInvalid)
	}
	return s.repo.Update(ctx, userId, category)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.Delete(ctx, userId, id)
}

// SeedDefaults stores the default category set for a new user.
func (s *ServiceImpl) SeedDefaults(ctx context.Context, userId int) error {
	for _, c := range defaultCategories {
		if _, err := s.repo.Store(ctx, userId, c); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", c.Name, err)
		}
	}
	return nil
}
