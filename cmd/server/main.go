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
	_ "time/tzdata" // TIMEZONE works on hosts without a zoneinfo database

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/gymdesk/internal/auth"
	"github.com/mmynk/gymdesk/internal/catalog"
	"github.com/mmynk/gymdesk/internal/config"
	"github.com/mmynk/gymdesk/internal/ledger"
	"github.com/mmynk/gymdesk/internal/metrics"
	"github.com/mmynk/gymdesk/internal/middleware"
	"github.com/mmynk/gymdesk/internal/registry"
	"github.com/mmynk/gymdesk/internal/service"
	"github.com/mmynk/gymdesk/internal/storage"
	"github.com/mmynk/gymdesk/internal/storage/memory"
	"github.com/mmynk/gymdesk/internal/storage/postgres"
	"github.com/mmynk/gymdesk/internal/storage/sqlite"
	"github.com/mmynk/gymdesk/pkg/api/apiconnect"
	"github.com/mmynk/gymdesk/pkg/logging"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()

	plans, err := openCatalog(store, cfg.Ledger.CatalogPath)
	if err != nil {
		return err
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	reg := registry.New(store)
	led := ledger.New(store,
		ledger.WithLocation(cfg.Ledger.Location),
		ledger.WithRecorder(m),
	)

	chain := []connect.Interceptor{middleware.MetricsInterceptor(m)}
	if cfg.Auth.JWTSecret != "" {
		jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, 24*time.Hour)
		if cfg.Auth.Required {
			chain = append(chain, middleware.RequireAuth(jwtManager))
		} else {
			chain = append(chain, middleware.OptionalAuth(jwtManager))
		}
	}
	chain = append(chain,
		middleware.LoggingInterceptor(),
		middleware.TimeoutInterceptor(cfg.Server.RequestTimeout),
	)
	interceptors := connect.WithInterceptors(chain...)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewGroupServiceHandler(service.NewGroupService(reg), interceptors))
	mux.Handle(apiconnect.NewRenewalServiceHandler(service.NewRenewalService(reg, plans, led), interceptors))
	mux.Handle(apiconnect.NewPaymentServiceHandler(service.NewPaymentService(led), interceptors))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
	}).Handler(mux)

	// h2c serves HTTP/2 without TLS, which Connect clients use by default.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting",
			"address", srv.Addr,
			"storage", cfg.Storage.Driver,
			"timezone", cfg.Ledger.Location.String(),
			"auth_required", cfg.Auth.Required,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		if cfg.Migrations {
			if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
				return nil, err
			}
			slog.Info("Migrations applied")
		}
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		slog.Info("Storage initialized", "driver", cfg.Driver)
		return store, nil
	case config.DriverMemory:
		slog.Warn("Using in-memory storage; data is lost on exit")
		return memory.New(), nil
	default:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		slog.Info("Storage initialized", "driver", cfg.Driver, "database", cfg.DBPath)
		return store, nil
	}
}

func openCatalog(store storage.RowStore, path string) (catalog.Catalog, error) {
	if path == "" {
		return catalog.NewStoreCatalog(store), nil
	}
	plans, err := catalog.LoadFile(path)
	if err != nil {
		return nil, err
	}
	slog.Info("Plan catalog loaded", "path", path)
	return plans, nil
}
