package category

import (
	"context"
	"testing"

	"github.com/expenso/expenso/pkg/user"
	"github.com/stretchr/testify/assert"
)

func testContext() context.Context {
	return user.WithUser(context.Background(), user.User{Id: 1, Username: "tester"})
}

func TestCategoryService_Create(t *testing.T) {
	// given
	service := NewService(NewStubCategoryRepository())
	ctx := testContext()

	// when
	created, err := service.Create(ctx, Category{Name: "Groceries"})

	// then
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "📁", created.Icon)
	assert.Equal(t, "#6366f1", created.Color)
}

func TestCategoryService_Create_requiresName(t *testing.T) {
	// given
	service := NewService(NewStubCategoryRepository())

	// when
	_, err := service.Create(testContext(), Category{})

	// then
	assert.ErrorIs(t, err, ErrCategoryDataInvalid)
}

func TestCategoryService_SeedDefaults(t *testing.T) {
	// given
	repo := NewStubCategoryRepository()
	service := NewService(repo)
	ctx := testContext()

	// when
	err := service.SeedDefaults(ctx, 1)

	// then
	assert.NoError(t, err)
	all, err := service.GetAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 12)
	names := make([]string, 0, len(all))
	for _, c := range all {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "Housing")
	assert.Contains(t, names, "Subscriptions")
	assert.Contains(t, names, "Other")
}

func TestCategoryService_UpdateAndDelete(t *testing.T) {
	// given
	service := NewService(NewStubCategoryRepository())
	ctx := testContext()
	created, err := service.Create(ctx, Category{Name: "Pets"})
	assert.NoError(t, err)

	// when
	created.Name = "Pets & Vet"
	updated, err := service.Update(ctx, created)

	// then
	assert.NoError(t, err)
	assert.True(t, updated)

	// when
	deleted, err := service.Delete(ctx, created.ID)

	// then
	assert.NoError(t, err)
	assert.True(t, deleted)
	all, err := service.GetAll(ctx)
	assert.NoError(t, err)
	assert.Empty(t, all)
}
