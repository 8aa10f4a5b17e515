package inventory

import (
	"context"
	"fmt"
	"time"

	domevent "github.com/pharmatrack/pharmatrack/internal/domain/event"
	dominv "github.com/pharmatrack/pharmatrack/internal/domain/inventory"
	"github.com/pharmatrack/pharmatrack/internal/observability"
	"github.com/pharmatrack/pharmatrack/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	componentInventory = "inventory_service"
	opAddItem          = "inventory.add_item"
	opListItems        = "inventory.list_items"
)

// Service exposes the inventory-side operations of the tracker: adding items
// and enumerating current stock.
type Service struct {
	repo         dominv.Repository
	publisher    domevent.Publisher
	log          observability.Logger
	tracer       observability.Tracer
	reqCounter   observability.Counter
	durHistogram observability.Histogram
}

func NewService(repo dominv.Repository, publisher domevent.Publisher, tel observability.Observability) *Service {
	log := observability.NopLogger()
	tracer := observability.NopTracer()
	metrics := observability.NopMetrics()
	if tel != nil {
		log = tel.Logger()
		tracer = tel.Tracer()
		metrics = tel.Metrics()
	}
	return &Service{
		repo:         repo,
		publisher:    publisher,
		log:          log.With(observability.F("component", componentInventory)),
		tracer:       tracer,
		reqCounter:   metrics.Counter(observability.MOperationRequests),
		durHistogram: metrics.Histogram(observability.MOperationDuration),
	}
}

type AddItemInput struct {
	Name     string
	Quantity int
	Price    float64
	Expiry   dominv.Date
}

// AddItem stores a new product and returns its assigned product ID.
func (s *Service) AddItem(ctx context.Context, input AddItemInput) (_ int64, err error) {
	ctx, span := s.tracer.Start(ctx, "UC.AddItem",
		attribute.String("item.name", input.Name),
		attribute.Int("item.quantity", input.Quantity),
	)
	defer s.finish(span, opAddItem, time.Now(), &err)

	productID, err := s.repo.Add(ctx, input.Name, input.Quantity, input.Price, input.Expiry)
	if err != nil {
		return 0, fmt.Errorf("inventory: add: %w", err)
	}

	logctx.FromOr(ctx, s.log).Info("item_added",
		observability.F("product_id", productID),
		observability.F("name", input.Name),
		observability.F("quantity", input.Quantity),
	)

	if s.publisher != nil {
		evt := dominv.ItemAddedEvent{
			ProductID:  productID,
			Name:       input.Name,
			Quantity:   input.Quantity,
			Price:      input.Price,
			OccurredAt: time.Now().UTC(),
		}
		if pubErr := s.publisher.Publish(ctx, evt); pubErr != nil {
			logctx.FromOr(ctx, s.log).Warn("item_added_event_failed",
				observability.F("product_id", productID),
				observability.F("error", pubErr),
			)
		}
	}

	return productID, nil
}

// ListItems enumerates the inventory in ascending product-ID order.
func (s *Service) ListItems(ctx context.Context) (_ []*dominv.Item, err error) {
	ctx, span := s.tracer.Start(ctx, "UC.ListItems")
	defer s.finish(span, opListItems, time.Now(), &err)

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("inventory: list: %w", err)
	}
	return items, nil
}

func (s *Service) finish(span trace.Span, op string, start time.Time, err *error) {
	outcome := "success"
	if *err != nil {
		outcome = "error"
		span.RecordError(*err)
		span.SetStatus(codes.Error, op)
	} else {
		span.SetStatus(codes.Ok, op)
	}
	span.End()

	s.reqCounter.Add(1,
		observability.L("operation", op),
		observability.L("outcome", outcome),
	)
	s.durHistogram.Observe(time.Since(start).Seconds(),
		observability.L("operation", op),
	)
}
