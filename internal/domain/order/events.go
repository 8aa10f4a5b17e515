package order

import "time"

const (
	ReasonNotFound          = "not_found"
	ReasonInsufficientStock = "insufficient_stock"
	ReasonExpired           = "expired"
)

// OrderPlacedEvent is emitted when a validated order enters the queue.
type OrderPlacedEvent struct {
	OrderID      string
	CustomerName string
	ProductID    int64
	Quantity     int
	Urgency      Urgency
	OccurredAt   time.Time
}

func (OrderPlacedEvent) EventName() string { return "order.placed" }

func NewOrderPlacedEvent(o *Order) OrderPlacedEvent {
	return OrderPlacedEvent{
		OrderID:      o.ID,
		CustomerName: o.CustomerName,
		ProductID:    o.ProductID,
		Quantity:     o.Quantity,
		Urgency:      o.Urgency,
		OccurredAt:   time.Now().UTC(),
	}
}

// OrderFulfilledEvent is emitted when a dequeued order deducts stock.
type OrderFulfilledEvent struct {
	OrderID      string
	CustomerName string
	ProductID    int64
	Quantity     int
	Remaining    int
	OccurredAt   time.Time
}

func (OrderFulfilledEvent) EventName() string { return "order.fulfilled" }

func NewOrderFulfilledEvent(o *Order, remaining int) OrderFulfilledEvent {
	return OrderFulfilledEvent{
		OrderID:      o.ID,
		CustomerName: o.CustomerName,
		ProductID:    o.ProductID,
		Quantity:     o.Quantity,
		Remaining:    remaining,
		OccurredAt:   time.Now().UTC(),
	}
}

// OrderRejectedEvent is emitted when placement or fulfillment drops an order.
type OrderRejectedEvent struct {
	OrderID      string
	CustomerName string
	ProductID    int64
	Quantity     int
	Reason       string
	OccurredAt   time.Time
}

func (OrderRejectedEvent) EventName() string { return "order.rejected" }

func NewOrderRejectedEvent(o *Order, reason string) OrderRejectedEvent {
	return OrderRejectedEvent{
		OrderID:      o.ID,
		CustomerName: o.CustomerName,
		ProductID:    o.ProductID,
		Quantity:     o.Quantity,
		Reason:       reason,
		OccurredAt:   time.Now().UTC(),
	}
}
