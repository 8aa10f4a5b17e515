package inventory

import (
	"errors"
)

var (
	ErrNotFound          = errors.New("inventory: product not found")
	ErrInvalidQuantity   = errors.New("inventory: quantity must be greater than zero")
	ErrInsufficientStock = errors.New("inventory: insufficient stock")
	ErrExpired           = errors.New("inventory: product expired")
	ErrIDExhausted       = errors.New("inventory: product id space exhausted")
)

// Item is a single stocked product. ProductID is assigned by the repository
// from its monotonic counter and never reused.
type Item struct {
	ProductID int64
	Name      string
	Quantity  int
	Price     float64
	Expiry    Date
}

func NewItem(name string, quantity int, price float64, expiry Date) (*Item, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	return &Item{
		Name:     name,
		Quantity: quantity,
		Price:    price,
		Expiry:   expiry,
	}, nil
}

// Deduct removes quantity units of stock. The item is left untouched when the
// requested quantity exceeds what is on hand.
func (i *Item) Deduct(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > i.Quantity {
		return ErrInsufficientStock
	}
	i.Quantity -= quantity
	return nil
}

func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	clone := *i
	return &clone
}
