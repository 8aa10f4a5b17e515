package inventory

import (
	"context"
)

type Repository interface {
	// Add assigns the next product ID, stores a new item, and returns the ID.
	Add(ctx context.Context, name string, quantity int, price float64, expiry Date) (int64, error)
	Get(ctx context.Context, productID int64) (*Item, error)
	// Deduct removes quantity units from the identified item and returns the
	// remaining stock. The item is unchanged on ErrNotFound or
	// ErrInsufficientStock.
	Deduct(ctx context.Context, productID int64, quantity int) (int, error)
	// List enumerates every item in ascending product-ID order.
	List(ctx context.Context) ([]*Item, error)
	// Restore inserts an item that already carries a product ID, advancing the
	// ID counter past it. Used when reloading persisted inventory.
	Restore(ctx context.Context, item *Item) error
}
