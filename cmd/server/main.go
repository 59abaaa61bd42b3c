package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adplanhq/mixengine/internal/api"
	"github.com/adplanhq/mixengine/internal/config"
	"github.com/adplanhq/mixengine/internal/db"
	"github.com/adplanhq/mixengine/internal/middleware"
	"github.com/adplanhq/mixengine/internal/mix"
	"github.com/adplanhq/mixengine/internal/models"
	"github.com/adplanhq/mixengine/internal/observability"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := observability.InitLogger(cfg.ServiceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to sync logger: %v\n", err)
		}
	}()

	if err := run(logger, cfg); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := db.InitPostgres(cfg.PostgresDSN, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetime, cfg.DBConnMaxIdleTime)
	if err != nil {
		return fmt.Errorf("failed to connect postgres: %w", err)
	}
	defer pg.Close()

	inventory := models.NewInMemoryInventoryStore()

	items, err := pg.LoadCatalogItems()
	if err != nil {
		return fmt.Errorf("load catalog items: %w", err)
	}
	bookings, err := pg.LoadBookings()
	if err != nil {
		return fmt.Errorf("load bookings: %w", err)
	}
	if err := inventory.ReloadAll(items, bookings); err != nil {
		return fmt.Errorf("populate inventory store: %w", err)
	}
	logger.Info("Inventory loaded",
		zap.Int("catalog_items", len(items)),
		zap.Int("bookings", len(bookings)),
	)

	cache, err := db.InitRedis(cfg.RedisAddr)
	if err != nil {
		return fmt.Errorf("failed to connect redis: %w", err)
	}
	defer cache.Close()

	metricsRegistry := observability.NewPrometheusRegistry()

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracing(ctx, logger, cfg.ServiceName, cfg.TempoEndpoint, cfg.TracingSampleRate)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer shutdown()
	}

	engine := mix.NewEngine(logger)

	r := mux.NewRouter()
	r.Use(middleware.WithTraceLogger(logger))
	srvDeps := api.NewServer(logger, pg, cache, inventory, engine, metricsRegistry, cfg)
	r.HandleFunc("/proposal", srvDeps.ProposalHandler).Methods("POST")
	r.HandleFunc("/lines/scale", srvDeps.ScaleLineHandler).Methods("POST")
	r.HandleFunc("/summary", srvDeps.SummaryHandler).Methods("POST")
	r.HandleFunc("/occupancy", srvDeps.OccupancyHandler).Methods("GET")
	r.HandleFunc("/health", srvDeps.HealthHandler).Methods("GET")

	// CRUD routes for admin UI
	crud := r.PathPrefix("/api").Subrouter()
	crud.HandleFunc("/catalog", srvDeps.ListCatalogItems).Methods("GET")
	crud.HandleFunc("/catalog", srvDeps.CreateCatalogItem).Methods("POST")
	crud.HandleFunc("/catalog/{id}", srvDeps.UpdateCatalogItem).Methods("PUT")
	crud.HandleFunc("/catalog/{id}", srvDeps.DeleteCatalogItem).Methods("DELETE")

	crud.HandleFunc("/bookings", srvDeps.ListBookings).Methods("GET")
	crud.HandleFunc("/bookings", srvDeps.CreateBooking).Methods("POST")
	crud.HandleFunc("/bookings/{id}", srvDeps.UpdateBooking).Methods("PUT")
	crud.HandleFunc("/bookings/{id}", srvDeps.DeleteBooking).Methods("DELETE")
	crud.HandleFunc("/bookings/import", srvDeps.ImportBookingsHandler).Methods("POST")

	// metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, "http.server"),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("Media mix server running", zap.String("addr", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
