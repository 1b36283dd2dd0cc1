package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/kart-challenge/checkout/internal/models"
)

func TestInMemoryProductRepository_GetAll(t *testing.T) {
	repo := NewInMemoryProductRepository()

	products, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 5)

	var ids []string
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, ids)
}

func TestInMemoryProductRepository_GetByID(t *testing.T) {
	repo := NewInMemoryProductRepository()

	product, err := repo.GetByID(context.Background(), "3")
	require.NoError(t, err)
	assert.Equal(t, "TV", product.Name)

	_, err = repo.GetByID(context.Background(), "999")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestInMemoryProductRepository_ReadsAreSnapshots(t *testing.T) {
	repo := NewInMemoryProductRepository()

	product, err := repo.GetByID(context.Background(), "5")
	require.NoError(t, err)
	product.Quantity = 0

	again, err := repo.GetByID(context.Background(), "5")
	require.NoError(t, err)
	assert.Equal(t, 100, again.Quantity)
}

func TestInMemoryProductRepository_Update(t *testing.T) {
	repo := NewInMemoryProductRepository()
	ctx := context.Background()

	err := repo.Update(ctx, func(lookup ProductLookup) error {
		card, err := lookup("5")
		if err != nil {
			return err
		}
		return card.ReduceQuantity(40)
	})
	require.NoError(t, err)

	card, err := repo.GetByID(ctx, "5")
	require.NoError(t, err)
	assert.Equal(t, 60, card.Quantity)

	err = repo.Update(ctx, func(lookup ProductLookup) error {
		_, err := lookup("missing")
		return err
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestInMemoryProductRepository_UpdateHonoursCancelledContext(t *testing.T) {
	repo := NewInMemoryProductRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := repo.Update(ctx, func(ProductLookup) error {
		called = true
		return nil
	})

	assert.True(t, errors.Is(err, context.Canceled))
	assert.False(t, called)
}

func TestInMemoryProductRepository_Save(t *testing.T) {
	repo := NewInMemoryProductRepositoryWith()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, models.NewProduct("10", "Gift Card", decimal.NewFromInt(25), 4)))
	require.NoError(t, repo.Save(ctx, models.NewProduct("10", "Gift Card", decimal.NewFromInt(30), 4)))

	product, err := repo.GetByID(ctx, "10")
	require.NoError(t, err)
	assert.Equal(t, "30", product.Price.String())

	err = repo.Save(ctx, models.NewProduct("11", "", decimal.NewFromInt(1), 1))
	assert.ErrorIs(t, err, models.ErrInvalidItem)
}

func TestInMemoryCustomerRepository(t *testing.T) {
	repo := NewInMemoryCustomerRepository()
	ctx := context.Background()

	err := repo.Update(ctx, "1", func(c *models.Customer) error {
		return c.Pay(decimal.NewFromInt(250))
	})
	require.NoError(t, err)

	alice, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "750", alice.Balance.String())

	_, err = repo.GetByID(ctx, "404")
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	err = repo.Update(ctx, "404", func(*models.Customer) error { return nil })
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	require.NoError(t, repo.Save(ctx, models.NewCustomer("3", "Carol", decimal.NewFromInt(5))))
	assert.Error(t, repo.Save(ctx, models.NewCustomer("4", "Dan", decimal.NewFromInt(-5))))
}

func TestLessID(t *testing.T) {
	assert.True(t, lessID("2", "10"))
	assert.False(t, lessID("10", "2"))
	assert.True(t, lessID("abc", "abd"))
	assert.True(t, lessID("10", "abc"))
}
