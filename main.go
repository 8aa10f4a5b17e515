package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appinventory "github.com/pharmatrack/pharmatrack/internal/application/inventory"
	apporder "github.com/pharmatrack/pharmatrack/internal/application/order"
	"github.com/pharmatrack/pharmatrack/internal/infrastructure/audit"
	"github.com/pharmatrack/pharmatrack/internal/infrastructure/eventbus"
	"github.com/pharmatrack/pharmatrack/internal/infrastructure/flatfile"
	"github.com/pharmatrack/pharmatrack/internal/infrastructure/id"
	"github.com/pharmatrack/pharmatrack/internal/infrastructure/memory"
	telemetry "github.com/pharmatrack/pharmatrack/internal/infrastructure/observability"
	"github.com/pharmatrack/pharmatrack/internal/infrastructure/observability/oteltrace"
	"github.com/pharmatrack/pharmatrack/internal/infrastructure/observability/prometrics"
	"github.com/pharmatrack/pharmatrack/internal/infrastructure/observability/zaplogger"
	"github.com/pharmatrack/pharmatrack/internal/infrastructure/orderqueue"
	"github.com/pharmatrack/pharmatrack/internal/observability"
	"github.com/pharmatrack/pharmatrack/internal/presentation/console"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	serviceName := getenvDefault("SERVICE_NAME", "pharmatrack")
	env := getenvDefault("ENV", "dev")
	inventoryFile := getenvDefault("INVENTORY_FILE", "inventory.txt")
	metricsAddr := os.Getenv("METRICS_ADDR")
	checkExpiry := getenvDefault("EXPIRY_CHECK", "on") != "off"

	logger := zaplogger.New(
		observability.F("service", serviceName),
		observability.F("env", env),
	)
	defer func() { _ = logger.Sync() }()

	registry := prometrics.New(serviceName, "")
	counters := map[observability.MetricKey]observability.Counter{
		observability.MOperationRequests: registry.Counter(
			string(observability.MOperationRequests),
			"Total number of tracker operations.",
			"operation", "outcome",
		),
		observability.MDomainEvents: registry.Counter(
			string(observability.MDomainEvents),
			"Total number of domain events published.",
			"event",
		),
	}
	histograms := map[observability.MetricKey]observability.Histogram{
		observability.MOperationDuration: registry.Histogram(
			string(observability.MOperationDuration),
			"Duration of tracker operations in seconds.",
			nil,
			"operation",
		),
	}
	tel := telemetry.New(oteltrace.New(serviceName), logger, counters, histograms)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := eventbus.NewBus(logger)
	bus.Start(ctx)
	defer bus.Stop(context.Background())

	auditSub := audit.New(logger, tel)
	auditSub.Register(bus)

	invRepo := memory.NewInventoryRepository()
	queue := orderqueue.New()

	inventoryService := appinventory.NewService(invRepo, bus, tel)
	orderService := apporder.NewService(invRepo, queue, id.NewUUIDGenerator(), bus, checkExpiry, tel)

	store := flatfile.NewStore(inventoryFile)
	items, err := store.Load(ctx)
	if err != nil {
		logger.Error("inventory_load_failed",
			observability.F("file", inventoryFile),
			observability.F("error", err),
		)
	}
	for _, item := range items {
		if err := invRepo.Restore(ctx, item); err != nil {
			logger.Warn("inventory_restore_skipped",
				observability.F("product_id", item.ProductID),
				observability.F("error", err),
			)
		}
	}
	logger.Info("inventory_loaded",
		observability.F("file", inventoryFile),
		observability.F("items", len(items)),
	)

	var metricsServer *http.Server
	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			logger.Info("metrics_server_start", observability.F("addr", metricsAddr))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics_server_error", observability.F("error", err))
			}
		}()
	}

	ui := console.New(os.Stdin, os.Stdout, inventoryService, orderService, logger)
	if err := ui.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("console_error", observability.F("error", err))
	}

	saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	remaining, err := invRepo.List(saveCtx)
	if err == nil {
		err = store.Save(saveCtx, remaining)
	}
	if err != nil {
		logger.Error("inventory_save_failed",
			observability.F("file", inventoryFile),
			observability.F("error", err),
		)
	} else {
		logger.Info("inventory_saved",
			observability.F("file", inventoryFile),
			observability.F("items", len(remaining)),
		)
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(saveCtx); err != nil {
			logger.Error("metrics_server_shutdown_error", observability.F("error", err))
		}
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
