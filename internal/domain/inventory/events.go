package inventory

import "time"

// ItemAddedEvent is emitted when a new product enters the inventory.
type ItemAddedEvent struct {
	ProductID  int64
	Name       string
	Quantity   int
	Price      float64
	OccurredAt time.Time
}

func (ItemAddedEvent) EventName() string { return "inventory.item_added" }

func NewItemAddedEvent(item *Item) ItemAddedEvent {
	return ItemAddedEvent{
		ProductID:  item.ProductID,
		Name:       item.Name,
		Quantity:   item.Quantity,
		Price:      item.Price,
		OccurredAt: time.Now().UTC(),
	}
}
