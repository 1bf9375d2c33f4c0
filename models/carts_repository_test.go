package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCartFixture(t *testing.T) (*CartsRepository, Cart, Product) {
	t.Helper()
	db := newTestDB(t)

	category := Category{Name: "Shoes"}
	require.NoError(t, db.Create(&category).Error)
	user := User{Username: "alice", Email: "alice@example.com", PasswordHash: "x", Role: RoleCustomer}
	require.NoError(t, db.Create(&user).Error)
	product := Product{Name: "Running Shoes", Price: decimal.NewFromFloat(79.99), Stock: 10, CategoryID: category.ID}
	require.NoError(t, db.Create(&product).Error)

	repo := NewCartsRepository(db)
	cart, err := repo.GetOrCreate(user.ID)
	require.NoError(t, err)
	return repo, *cart, product
}

func TestAddItem(t *testing.T) {
	t.Run("Re-adding a product merges into one line", func(t *testing.T) {
		repo, cart, product := newCartFixture(t)

		_, err := repo.AddItem(cart.ID, product.ID, 2)
		require.NoError(t, err)
		item, err := repo.AddItem(cart.ID, product.ID, 3)
		require.NoError(t, err)

		assert.Equal(t, 5, item.Quantity)
		items, err := repo.Items(cart.ID)
		require.NoError(t, err)
		require.Len(t, items, 1)
	})

	t.Run("Non-positive quantity never creates a line", func(t *testing.T) {
		repo, cart, product := newCartFixture(t)

		item, err := repo.AddItem(cart.ID, product.ID, 0)

		require.NoError(t, err)
		assert.Nil(t, item)
		items, err := repo.Items(cart.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Negative add that drains a line removes it", func(t *testing.T) {
		repo, cart, product := newCartFixture(t)
		_, err := repo.AddItem(cart.ID, product.ID, 2)
		require.NoError(t, err)

		item, err := repo.AddItem(cart.ID, product.ID, -2)

		require.NoError(t, err)
		assert.Nil(t, item)
		items, err := repo.Items(cart.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestUpdateItemQuantity(t *testing.T) {
	t.Run("Sets a new quantity", func(t *testing.T) {
		repo, cart, product := newCartFixture(t)
		created, err := repo.AddItem(cart.ID, product.ID, 2)
		require.NoError(t, err)

		item, err := repo.UpdateItemQuantity(created.ID, 7)

		require.NoError(t, err)
		assert.Equal(t, 7, item.Quantity)
	})

	t.Run("Setting the current quantity again succeeds", func(t *testing.T) {
		repo, cart, product := newCartFixture(t)
		created, err := repo.AddItem(cart.ID, product.ID, 2)
		require.NoError(t, err)

		item, err := repo.UpdateItemQuantity(created.ID, 2)

		require.NoError(t, err, "a same-value update on a present line is not a missing line")
		require.NotNil(t, item)
		assert.Equal(t, 2, item.Quantity)
	})

	t.Run("Zero removes the line", func(t *testing.T) {
		repo, cart, product := newCartFixture(t)
		created, err := repo.AddItem(cart.ID, product.ID, 2)
		require.NoError(t, err)

		item, err := repo.UpdateItemQuantity(created.ID, 0)

		require.NoError(t, err)
		assert.Nil(t, item)
		items, err := repo.Items(cart.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Missing line is not found", func(t *testing.T) {
		repo, _, _ := newCartFixture(t)

		_, err := repo.UpdateItemQuantity(999, 3)

		assert.ErrorIs(t, err, ErrCartItemNotFound)
	})
}

func TestGetOrCreateReturnsSameCart(t *testing.T) {
	repo, cart, _ := newCartFixture(t)

	again, err := repo.GetOrCreate(cart.UserID)

	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}
