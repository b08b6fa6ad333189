package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/epicplan/planner/internal/application/planner"
	"github.com/epicplan/planner/internal/application/session"
	"github.com/epicplan/planner/internal/config"
	plannerhttp "github.com/epicplan/planner/internal/infrastructure/http"
	"github.com/epicplan/planner/internal/infrastructure/http/handler"
	"github.com/epicplan/planner/internal/infrastructure/observability"
	"github.com/epicplan/planner/internal/infrastructure/persistence/postgres"
)

const defaultShutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		// slog may not be initialized if config loading fails
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Root context, cancelled on SIGTERM/SIGINT.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	obsCfg := observability.Config{
		Enabled:     cfg.Observability.OTelEnabled,
		ServiceName: cfg.Observability.ServiceName,
	}
	if obsCfg.ServiceName == "" {
		obsCfg.ServiceName = observability.DefaultServiceName
	}

	lp, logger, err := observability.InitLogger(ctx, obsCfg)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer shutdownProvider("logger provider", lp.Shutdown)
	slog.SetDefault(logger)

	tp, err := observability.InitTracerProvider(ctx, obsCfg)
	if err != nil {
		return fmt.Errorf("failed to init tracer provider: %w", err)
	}
	defer shutdownProvider("tracer provider", tp.Shutdown)

	mp, err := observability.InitMeterProvider(ctx, obsCfg)
	if err != nil {
		return fmt.Errorf("failed to init meter provider: %w", err)
	}
	defer shutdownProvider("meter provider", mp.Shutdown)

	slog.InfoContext(ctx, "starting planner service")

	plannerCfg := planner.Config{LegacyParityCTA: cfg.Planner.LegacyParityCTA}

	// Without a DSN the planner runs read-only: the calendar stays
	// browsable, every mutation reports the missing store.
	var svc *planner.Service
	if cfg.Database.Configured() {
		store, err := postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
			DSN:             cfg.Database.DSN,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second,
			AutoMigrate:     cfg.Database.AutoMigrate,
		})
		if err != nil {
			return fmt.Errorf("failed to create store: %w", err)
		}
		defer func() {
			if err := store.Close(); err != nil {
				slog.Error("failed to close store", "error", err)
			}
		}()

		svc = planner.NewService(store, plannerCfg)
	} else {
		slog.WarnContext(ctx, "no database configured, starting in read-only mode")
		svc = planner.NewReadOnlyService(plannerCfg)
	}

	svc.Load(ctx)

	gate, err := session.NewGate(cfg.Session.Password, cfg.Session.TTL)
	if err != nil {
		return fmt.Errorf("failed to create session gate: %w", err)
	}

	apiHandler := otelhttp.NewHandler(handler.NewRouter(svc, gate), "planner-api")

	server := plannerhttp.NewAPIServer(apiHandler, plannerhttp.ServerConfig{
		Host:              cfg.HTTP.Host,
		Port:              cfg.HTTP.Port,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownTimeout := cfg.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}

	slog.Info("planner service stopped")
	return nil
}

// shutdownProvider flushes an observability provider with a bounded
// timeout so an unreachable collector can't hang process exit.
func shutdownProvider(name string, shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown "+name, "error", err)
	}
}
