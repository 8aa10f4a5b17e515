package order

import (
	"errors"
	"time"
)

var (
	ErrEmptyQueue      = errors.New("order: no orders pending")
	ErrInvalidQuantity = errors.New("order: quantity must be greater than zero")
	ErrInvalidUrgency  = errors.New("order: urgency must be between 1 and 3")
)

// Urgency ranks a pending order. Higher values dequeue first.
type Urgency int

const (
	UrgencyLow    Urgency = 1
	UrgencyMedium Urgency = 2
	UrgencyHigh   Urgency = 3
)

func (u Urgency) Valid() bool {
	return u >= UrgencyLow && u <= UrgencyHigh
}

func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyMedium:
		return "medium"
	case UrgencyHigh:
		return "high"
	default:
		return "unknown"
	}
}

type Order struct {
	ID           string
	CustomerName string
	ProductID    int64
	Quantity     int
	Urgency      Urgency
	CreatedAt    time.Time
}

func New(id, customerName string, productID int64, quantity int, urgency Urgency) (*Order, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if !urgency.Valid() {
		return nil, ErrInvalidUrgency
	}
	return &Order{
		ID:           id,
		CustomerName: customerName,
		ProductID:    productID,
		Quantity:     quantity,
		Urgency:      urgency,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
