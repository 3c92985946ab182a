package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/karstlund/vendhub/internal"
	"github.com/karstlund/vendhub/internal/catalog"
	"github.com/karstlund/vendhub/internal/handler/api"
	"github.com/karstlund/vendhub/internal/pos"
	"github.com/karstlund/vendhub/internal/repository"
	"github.com/karstlund/vendhub/internal/router"
	"github.com/karstlund/vendhub/internal/routes"
	"github.com/karstlund/vendhub/internal/service"
	"github.com/karstlund/vendhub/internal/tax"
	"github.com/karstlund/vendhub/internal/telemetry"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize repository
	repo := repository.New(pool)

	// Initialize metrics
	metrics := telemetry.NewMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)
	httpMetrics := telemetry.NewHTTPMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)

	// Initialize the NATS side channel when configured. The POS flow works
	// without it: scans go unlogged and sales land in the application log.
	var (
		scans     pos.ScanLogger    = pos.NopScanLogger{}
		completer pos.SaleCompleter = &pos.LogSaleCompleter{Logger: logger}
	)
	if cfg.NatsURL != "" {
		logger.Info("Connecting to NATS...", "url", cfg.NatsURL)
		nc, err := nats.Connect(cfg.NatsURL, nats.Name("vendhub-server"))
		if err != nil {
			return fmt.Errorf("nats connection failed: %w", err)
		}
		defer nc.Drain()

		scans = pos.NewNATSScanLogger(nc, cfg.ScanLogSubject, logger)
		completer = pos.NewNATSSaleCompleter(nc, "")
		logger.Info("NATS connection established")
	}

	// Initialize catalog services
	allocator := catalog.NewSKUAllocator(cfg.SKUMaxAttempts)
	categories := service.NewCategoryResolver(repo, logger)
	submissions := service.NewSubmissionService(repo, categories, allocator, metrics, logger, cfg.PlaceholderImageURL)

	// Initialize POS services
	resolver := pos.NewBarcodeResolver(repo, scans, metrics)
	carts := pos.NewCartStore()
	settings := pos.NewSettingsProvider(repo)
	calculator := tax.NewPercentageCalculator()

	// Build route dependencies
	deps := routes.APIDeps{
		Catalog: api.NewCatalogHandler(submissions, logger),
		POS:     api.NewPOSHandler(resolver, carts, settings, calculator, completer, metrics, logger),
		Health:  api.NewHealthHandler(pool, logger),
		Metrics: promhttp.Handler(),
	}

	// Create router and register routes
	r := router.New(
		router.Recovery(logger),
		router.RequestID,
		httpMetrics.Middleware,
		router.Logger(logger),
		router.CORS([]string{"*"}),
	)
	routes.RegisterAPIRoutes(r, deps)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr, "env", cfg.Env)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
