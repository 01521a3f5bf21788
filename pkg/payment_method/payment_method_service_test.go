package payment_method

import (
	"context"
	"testing"

	"github.com/expenso/expenso/pkg/user"
	"github.com/stretchr/testify/assert"
)

func testContext() context.Context {
	return user.WithUser(context.Background(), user.User{Id: 1, Username: "tester"})
}

func TestPaymentMethodService_Create(t *testing.T) {
	// given
	service := NewService(NewStubPaymentMethodRepository())

	// when
	created, err := service.Create(testContext(), PaymentMethod{Name: "Revolut"})

	// then
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "💳", created.Icon)
}

func TestPaymentMethodService_Create_requiresName(t *testing.T) {
	// given
	service := NewService(NewStubPaymentMethodRepository())

	// when
	_, err := service.Create(testContext(), PaymentMethod{})

	// then
	assert.ErrorIs(t, err, ErrPaymentMethodDataInvalid)
}

func TestPaymentMethodService_SeedDefaults(t *testing.T) {
	// given
	service := NewService(NewStubPaymentMethodRepository())
	ctx := testContext()

	// when
	err := service.SeedDefaults(ctx, 1)

	// then
	assert.NoError(t, err)
	all, err := service.GetAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, all, 6)
	names := make([]string, 0, len(all))
	for _, m := range all {
		names = append(names, m.Name)
	}
	assert.Contains(t, names, "Cash")
	assert.Contains(t, names, "Credit Card")
}
