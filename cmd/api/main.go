// Command api runs the StoreRoute HTTP server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/storeroute/storeroute/internal/analysis"
	"github.com/storeroute/storeroute/internal/api"
	"github.com/storeroute/storeroute/internal/api/handler"
	"github.com/storeroute/storeroute/internal/config"
	"github.com/storeroute/storeroute/internal/mail"
	"github.com/storeroute/storeroute/internal/routing"
	"github.com/storeroute/storeroute/internal/routing/googlemaps"
	"github.com/storeroute/storeroute/internal/session"
	"github.com/storeroute/storeroute/internal/store"
	"github.com/storeroute/storeroute/internal/telemetry"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "storeroute-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Local development convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.Logging.Level)
	logger.Info().Str("version", version).Msg("starting storeroute api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "storeroute-api",
		ServiceVersion: version,
		Environment:    cfg.Telemetry.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Enabled:        cfg.Telemetry.Enabled,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("telemetry shutdown failed")
		}
	}()

	catalog, cleanup, err := newCatalog(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("loading store catalog: %w", err)
	}
	defer cleanup()

	sessions := session.NewService(session.ServiceConfig{
		Repository:       session.NewInMemoryRepository(),
		Catalog:          catalog,
		Planner:          newPlanner(cfg, logger),
		DefaultDeparture: cfg.Departure.Address,
		Logger:           logger,
	})

	router := api.NewRouter(api.RouterConfig{
		Catalog:  catalog,
		Sessions: sessions,
		Mailer:   newMailer(cfg, logger),
		Version:  version,
		Logger:   logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}

	return nil
}

// newLogger builds the service logger at the configured level.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}

// newCatalog selects the catalog backend: Postgres when a database URL is
// configured, otherwise the CSV file.
func newCatalog(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (store.Repository, func(), error) {
	if cfg.Catalog.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.Catalog.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to catalog database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("pinging catalog database: %w", err)
		}
		logger.Info().Msg("using postgres store catalog")
		return store.NewPostgresRepository(pool), pool.Close, nil
	}

	repo, err := store.NewCSVRepository(cfg.Catalog.CSVPath, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Str("path", cfg.Catalog.CSVPath).Msg("using csv store catalog")
	return repo, func() {}, nil
}

// newPlanner wires the directions provider into the route planner. A missing
// or placeholder API key does not prevent startup; the planner then serves
// every route through the unoptimized fallback path.
func newPlanner(cfg *config.Config, logger zerolog.Logger) *routing.Planner {
	var optimizer routing.Optimizer

	client, err := googlemaps.NewClient(googlemaps.ClientConfig{
		APIKey: cfg.APIKeys.GoogleMaps,
		Logger: logger,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("directions provider not configured, routes will not be optimized")
		optimizer = routing.NewUnavailableOptimizer("directions provider is not configured")
	} else {
		optimizer = client
	}

	return routing.NewPlanner(routing.PlannerConfig{
		Optimizer: optimizer,
		Analyzer: analysis.NewAnalyzer(cfg.Route.OptimizeFor,
			cfg.Fuel.ConsumptionPer100KM, cfg.Fuel.PricePerLiter),
		Options: routing.Options{
			AvoidTolls:    cfg.Route.AvoidTolls,
			AvoidHighways: cfg.Route.AvoidHighways,
			TrafficModel:  cfg.Route.TrafficModel,
		},
		Logger: logger,
	})
}

// newMailer builds the mail service when email delivery is fully configured.
// Placeholder values leave the email endpoint disabled rather than failing
// startup.
func newMailer(cfg *config.Config, logger zerolog.Logger) handler.Mailer {
	svc, err := mail.NewService(mail.Config{
		Recipient:      cfg.Email.Recipient,
		SenderEmail:    cfg.Email.SenderEmail,
		SenderPassword: cfg.Email.SenderPassword,
		SMTPServer:     cfg.Email.SMTPServer,
		SMTPPort:       cfg.Email.SMTPPort,
	}, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("email delivery not configured")
		return nil
	}
	return svc
}
