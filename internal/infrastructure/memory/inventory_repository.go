package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	domain "github.com/pharmatrack/pharmatrack/internal/domain/inventory"
)

// InventoryRepository keeps all stocked items in a map keyed by product ID.
// It owns the monotonic ID counter: IDs start at 1 and are never reused.
type InventoryRepository struct {
	mu     sync.RWMutex
	items  map[int64]*domain.Item
	nextID int64
}

func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{
		items:  make(map[int64]*domain.Item),
		nextID: 1,
	}
}

func (r *InventoryRepository) Add(ctx context.Context, name string, quantity int, price float64, expiry domain.Date) (int64, error) {
	_ = ctx

	item, err := domain.NewItem(name, quantity, price, expiry)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nextID == math.MaxInt64 {
		return 0, domain.ErrIDExhausted
	}
	item.ProductID = r.nextID
	r.nextID++

	r.items[item.ProductID] = item
	return item.ProductID, nil
}

func (r *InventoryRepository) Get(ctx context.Context, productID int64) (*domain.Item, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return item.Clone(), nil
}

// Deduct checks and decrements stock in one step; nothing changes on failure.
func (r *InventoryRepository) Deduct(ctx context.Context, productID int64, quantity int) (int, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[productID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if err := item.Deduct(quantity); err != nil {
		return item.Quantity, err
	}
	return item.Quantity, nil
}

func (r *InventoryRepository) List(ctx context.Context) ([]*domain.Item, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Item, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

// Restore inserts a previously persisted item and advances the ID counter
// past its product ID.
func (r *InventoryRepository) Restore(ctx context.Context, item *domain.Item) error {
	_ = ctx
	if item == nil || item.ProductID <= 0 {
		return fmt.Errorf("inventory repository: product id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ProductID]; exists {
		return fmt.Errorf("inventory repository: duplicate product id %d", item.ProductID)
	}

	r.items[item.ProductID] = item.Clone()
	if item.ProductID >= r.nextID {
		r.nextID = item.ProductID + 1
	}
	return nil
}
