package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/pharmatrack/pharmatrack/internal/domain/inventory"
)

func TestAddAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository()

	var last int64
	for i := 0; i < 10; i++ {
		id, err := repo.Add(ctx, "Paracetamol", 100, 5.0, "01012030")
		require.NoError(t, err)
		require.Greater(t, id, last)
		last = id
	}
	assert.Equal(t, int64(10), last)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository()

	id, err := repo.Add(ctx, "Ibuprofen", 50, 3.5, "15062031")
	require.NoError(t, err)

	item, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ibuprofen", item.Name)
	assert.Equal(t, 50, item.Quantity)
	assert.Equal(t, 3.5, item.Price)
	assert.Equal(t, domain.Date("15062031"), item.Expiry)

	_, err = repo.Get(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetReturnsClone(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository()

	id, err := repo.Add(ctx, "Aspirin", 20, 2.0, "01012030")
	require.NoError(t, err)

	item, err := repo.Get(ctx, id)
	require.NoError(t, err)
	item.Quantity = 0

	again, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 20, again.Quantity)
}

func TestDeduct(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository()

	id, err := repo.Add(ctx, "Paracetamol", 100, 5.0, "01012030")
	require.NoError(t, err)

	remaining, err := repo.Deduct(ctx, id, 30)
	require.NoError(t, err)
	assert.Equal(t, 70, remaining)

	remaining, err = repo.Deduct(ctx, id, 70)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)
}

func TestDeductInsufficientStockLeavesItemUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository()

	id, err := repo.Add(ctx, "Paracetamol", 5, 5.0, "01012030")
	require.NoError(t, err)

	_, err = repo.Deduct(ctx, id, 10)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	item, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
}

func TestDeductUnknownProduct(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository()

	_, err := repo.Deduct(ctx, 42, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListAscendingProductID(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository()

	for _, name := range []string{"A", "B", "C"} {
		_, err := repo.Add(ctx, name, 1, 1.0, "01012030")
		require.NoError(t, err)
	}

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i := 1; i < len(items); i++ {
		assert.Less(t, items[i-1].ProductID, items[i].ProductID)
	}
}

func TestRestoreAdvancesIDCounter(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository()

	require.NoError(t, repo.Restore(ctx, &domain.Item{
		ProductID: 7,
		Name:      "Amoxicillin",
		Quantity:  12,
		Price:     9.5,
		Expiry:    "01012030",
	}))

	id, err := repo.Add(ctx, "New", 1, 1.0, "01012030")
	require.NoError(t, err)
	assert.Equal(t, int64(8), id)
}

func TestRestoreRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository()

	item := &domain.Item{ProductID: 3, Name: "X", Quantity: 1, Price: 1, Expiry: "01012030"}
	require.NoError(t, repo.Restore(ctx, item))
	assert.Error(t, repo.Restore(ctx, item))
}
