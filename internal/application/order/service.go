package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	domevent "github.com/pharmatrack/pharmatrack/internal/domain/event"
	dominv "github.com/pharmatrack/pharmatrack/internal/domain/inventory"
	domain "github.com/pharmatrack/pharmatrack/internal/domain/order"
	"github.com/pharmatrack/pharmatrack/internal/observability"
	"github.com/pharmatrack/pharmatrack/internal/observability/logctx"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	componentOrder = "order_service"
	opPlaceOrder   = "order.place"
	opProcessOrder = "order.process"
)

// Service places validated orders onto the urgency queue and fulfills them
// against inventory. Orders are validated once at placement; fulfillment
// re-checks only the quantity. A dequeued order is never re-queued, whether
// or not fulfillment succeeds.
type Service struct {
	invRepo      dominv.Repository
	queue        domain.Queue
	idGenerator  IDGenerator
	publisher    domevent.Publisher
	checkExpiry  bool
	now          func() time.Time
	log          observability.Logger
	tracer       observability.Tracer
	reqCounter   observability.Counter
	durHistogram observability.Histogram
}

func NewService(invRepo dominv.Repository, queue domain.Queue, idGen IDGenerator, publisher domevent.Publisher, checkExpiry bool, tel observability.Observability) *Service {
	log := observability.NopLogger()
	tracer := observability.NopTracer()
	metrics := observability.NopMetrics()
	if tel != nil {
		log = tel.Logger()
		tracer = tel.Tracer()
		metrics = tel.Metrics()
	}
	return &Service{
		invRepo:      invRepo,
		queue:        queue,
		idGenerator:  idGen,
		publisher:    publisher,
		checkExpiry:  checkExpiry,
		now:          time.Now,
		log:          log.With(observability.F("component", componentOrder)),
		tracer:       tracer,
		reqCounter:   metrics.Counter(observability.MOperationRequests),
		durHistogram: metrics.Histogram(observability.MOperationDuration),
	}
}

type PlaceOrderInput struct {
	CustomerName string
	ProductID    int64
	Quantity     int
	Urgency      domain.Urgency
}

// PlaceOrder validates the request against current inventory and, on success,
// enqueues a new order. The queue is untouched on any failure. Stock is not
// reserved: the quantity check here inspects the current value only.
func (s *Service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (_ *domain.Order, err error) {
	ctx, span := s.tracer.Start(ctx, "UC.PlaceOrder",
		attribute.Int64("product.id", input.ProductID),
		attribute.Int("order.quantity", input.Quantity),
		attribute.Int("order.urgency", int(input.Urgency)),
	)
	defer s.finish(span, opPlaceOrder, time.Now(), &err)

	logger := logctx.FromOr(ctx, s.log).With(
		observability.F("customer", input.CustomerName),
		observability.F("product_id", input.ProductID),
	)

	item, err := s.invRepo.Get(ctx, input.ProductID)
	if err != nil {
		logger.Warn("order_place_rejected", observability.F("reason", domain.ReasonNotFound))
		return nil, fmt.Errorf("order: place: %w", err)
	}

	if s.checkExpiry && item.Expiry.ExpiredAt(s.now()) {
		logger.Warn("order_place_rejected",
			observability.F("reason", domain.ReasonExpired),
			observability.F("expiry", item.Expiry.String()),
		)
		return nil, fmt.Errorf("order: place: %w", dominv.ErrExpired)
	}

	if input.Quantity > item.Quantity {
		logger.Warn("order_place_rejected",
			observability.F("reason", domain.ReasonInsufficientStock),
			observability.F("requested", input.Quantity),
			observability.F("available", item.Quantity),
		)
		return nil, fmt.Errorf("order: place: %w", dominv.ErrInsufficientStock)
	}

	entity, err := domain.New(s.idGenerator.NewID(), input.CustomerName, input.ProductID, input.Quantity, input.Urgency)
	if err != nil {
		return nil, fmt.Errorf("order: place: %w", err)
	}

	s.queue.Push(entity)

	logger.Info("order_placed",
		observability.F("order_id", entity.ID),
		observability.F("quantity", entity.Quantity),
		observability.F("urgency", entity.Urgency.String()),
		observability.F("queued", s.queue.Len()),
	)

	s.publish(ctx, domain.NewOrderPlacedEvent(entity))
	return entity, nil
}

// FulfillmentResult reports what happened to the order dequeued by
// ProcessNextOrder. Order is always set when an order was dequeued, even if
// fulfillment failed; failed orders are permanently dropped.
type FulfillmentResult struct {
	Order         *domain.Order
	Fulfilled     bool
	Remaining     int
	FailureReason string
}

// ProcessNextOrder removes the highest-urgency order and attempts to deduct
// its quantity from inventory. Returns domain.ErrEmptyQueue when nothing is
// pending.
func (s *Service) ProcessNextOrder(ctx context.Context) (_ *FulfillmentResult, err error) {
	ctx, span := s.tracer.Start(ctx, "UC.ProcessOrder")
	defer s.finish(span, opProcessOrder, time.Now(), &err)

	entity, err := s.queue.Pop()
	if err != nil {
		return nil, err
	}

	logger := logctx.FromOr(ctx, s.log).With(
		observability.F("order_id", entity.ID),
		observability.F("customer", entity.CustomerName),
		observability.F("product_id", entity.ProductID),
	)
	span.SetAttributes(
		attribute.String("order.id", entity.ID),
		attribute.Int64("product.id", entity.ProductID),
		attribute.Int("order.quantity", entity.Quantity),
	)

	result := &FulfillmentResult{Order: entity}

	remaining, err := s.invRepo.Deduct(ctx, entity.ProductID, entity.Quantity)
	if err != nil {
		result.FailureReason = failureReasonFromError(err)
		logger.Warn("order_fulfillment_failed",
			observability.F("reason", result.FailureReason),
		)
		s.publish(ctx, domain.NewOrderRejectedEvent(entity, result.FailureReason))
		return result, fmt.Errorf("order: fulfill: %w", err)
	}

	result.Fulfilled = true
	result.Remaining = remaining

	logger.Info("order_fulfilled",
		observability.F("quantity", entity.Quantity),
		observability.F("remaining", remaining),
	)

	s.publish(ctx, domain.NewOrderFulfilledEvent(entity, remaining))
	return result, nil
}

// PendingOrders reports how many orders are queued.
func (s *Service) PendingOrders() int {
	return s.queue.Len()
}

func (s *Service) publish(ctx context.Context, evt domevent.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		logctx.FromOr(ctx, s.log).Warn("event_publish_failed",
			observability.F("event", evt.EventName()),
			observability.F("error", err),
		)
	}
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

func failureReasonFromError(err error) string {
	switch {
	case errors.Is(err, dominv.ErrNotFound):
		return domain.ReasonNotFound
	case errors.Is(err, dominv.ErrInsufficientStock):
		return domain.ReasonInsufficientStock
	default:
		return err.Error()
	}
}
