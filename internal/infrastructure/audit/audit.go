package audit

import (
	"context"

	domevent "github.com/pharmatrack/pharmatrack/internal/domain/event"
	dominv "github.com/pharmatrack/pharmatrack/internal/domain/inventory"
	domorder "github.com/pharmatrack/pharmatrack/internal/domain/order"
	"github.com/pharmatrack/pharmatrack/internal/observability"
	"github.com/pharmatrack/pharmatrack/internal/observability/logctx"
)

// Subscriber writes an audit log line and bumps the domain-event counter for
// every event the tracker emits.
type Subscriber struct {
	log     observability.Logger
	counter observability.Counter
}

func New(logger observability.Logger, tel observability.Observability) *Subscriber {
	if logger == nil {
		logger = observability.NopLogger()
	}
	counter := observability.NopCounter()
	if tel != nil {
		counter = tel.Metrics().Counter(observability.MDomainEvents)
	}
	return &Subscriber{
		log:     logger.With(observability.F("component", "audit")),
		counter: counter,
	}
}

// Register attaches the subscriber to every known event name.
func (s *Subscriber) Register(sub domevent.Subscriber) {
	for _, name := range []string{
		dominv.ItemAddedEvent{}.EventName(),
		domorder.OrderPlacedEvent{}.EventName(),
		domorder.OrderFulfilledEvent{}.EventName(),
		domorder.OrderRejectedEvent{}.EventName(),
	} {
		sub.Subscribe(name, s.handle)
	}
}

func (s *Subscriber) handle(ctx context.Context, e domevent.Event) error {
	logger := logctx.FromOr(ctx, s.log)
	s.counter.Add(1, observability.L("event", e.EventName()))

	switch evt := e.(type) {
	case dominv.ItemAddedEvent:
		logger.Info("audit_item_added",
			observability.F("product_id", evt.ProductID),
			observability.F("name", evt.Name),
			observability.F("quantity", evt.Quantity),
			observability.F("price", evt.Price),
		)
	case domorder.OrderPlacedEvent:
		logger.Info("audit_order_placed",
			observability.F("order_id", evt.OrderID),
			observability.F("customer", evt.CustomerName),
			observability.F("product_id", evt.ProductID),
			observability.F("quantity", evt.Quantity),
			observability.F("urgency", evt.Urgency.String()),
		)
	case domorder.OrderFulfilledEvent:
		logger.Info("audit_order_fulfilled",
			observability.F("order_id", evt.OrderID),
			observability.F("customer", evt.CustomerName),
			observability.F("product_id", evt.ProductID),
			observability.F("quantity", evt.Quantity),
			observability.F("remaining", evt.Remaining),
		)
	case domorder.OrderRejectedEvent:
		logger.Warn("audit_order_rejected",
			observability.F("order_id", evt.OrderID),
			observability.F("customer", evt.CustomerName),
			observability.F("product_id", evt.ProductID),
			observability.F("reason", evt.Reason),
		)
	default:
		logger.Info("audit_event", observability.F("event", e.EventName()))
	}
	return nil
}
