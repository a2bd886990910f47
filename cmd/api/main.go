package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel"

	"github.com/dinhthuw/back1/internal/auth"
	"github.com/dinhthuw/back1/internal/catalog"
	catalogmemory "github.com/dinhthuw/back1/internal/catalog/memory"
	catalogmongo "github.com/dinhthuw/back1/internal/catalog/mongodb"
	catalogpostgres "github.com/dinhthuw/back1/internal/catalog/postgres"
	"github.com/dinhthuw/back1/internal/config"
	"github.com/dinhthuw/back1/internal/database"
	"github.com/dinhthuw/back1/internal/kafka"
	"github.com/dinhthuw/back1/internal/orders/adapters"
	httpadapter "github.com/dinhthuw/back1/internal/orders/adapters/http"
	ordersmemory "github.com/dinhthuw/back1/internal/orders/adapters/memory"
	ordersmongo "github.com/dinhthuw/back1/internal/orders/adapters/mongodb"
	orderspostgres "github.com/dinhthuw/back1/internal/orders/adapters/postgres"
	ordersapp "github.com/dinhthuw/back1/internal/orders/app"
	ordersmetrics "github.com/dinhthuw/back1/internal/orders/metrics"
	"github.com/dinhthuw/back1/internal/orders/ports"
	"github.com/dinhthuw/back1/internal/stats"
	"github.com/dinhthuw/back1/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(parseLogLevel(cfg.Telemetry.LogLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := initTelemetry(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown failed", "error", err)
		}
	}()

	stores, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open order store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer stores.close()

	meter := otel.GetMeterProvider().Meter("github.com/dinhthuw/back1")

	dbMetrics, err := database.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create database metrics", "error", err)
		os.Exit(1)
	}
	busMetrics, err := kafka.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create event bus metrics", "error", err)
		os.Exit(1)
	}
	orderMetrics, err := ordersmetrics.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create order metrics", "error", err)
		os.Exit(1)
	}
	statsMetrics, err := stats.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create stats metrics", "error", err)
		os.Exit(1)
	}
	httpMetrics, err := httpadapter.NewMetrics(meter)
	if err != nil {
		logger.Error("failed to create http metrics", "error", err)
		os.Exit(1)
	}

	repo := adapters.NewObservableRepository(stores.orders, dbMetrics)
	eventBus := adapters.NewObservableEventBus(kafka.NewNoopEventBus(), busMetrics)

	service := ordersapp.NewService(repo, stores.books, eventBus, logger, orderMetrics)
	aggregator := stats.NewAggregator(repo, stores.books, statsMetrics)
	resolver := auth.NewJWTResolver(cfg.Auth.JWTSecret)

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := stores.checkHealth(r.Context()); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	router.Get(cfg.HTTP.MetricsPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("# metrics are exported via OTLP; no scrape endpoint\n"))
	})

	httpadapter.NewHandler(service, aggregator, logger).Register(router, resolver)

	handler := withRecovery(withLogging(httpadapter.WithMetrics(router, httpMetrics)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "port", cfg.HTTP.Port, "store", cfg.Store.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownGrace)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	} else {
		logger.Info("http server stopped")
	}
}

// storeSet holds the selected persistence adapters plus the resources that
// back them, so main can close them in one place.
type storeSet struct {
	orders ports.OrderRepository
	books  catalog.Repository

	pool        *pgxpool.Pool
	mongoClient *mongo.Client
}

func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storeSet, error) {
	switch cfg.Store.Backend {
	case config.StorePostgres:
		pool, err := database.NewPool(ctx, cfg.Database.URL)
		if err != nil {
			return nil, fmt.Errorf("create database pool: %w", err)
		}

		if cfg.Database.AutoMigrate {
			logger.Info("running database migrations", "path", cfg.Database.MigrationsPath)
			if err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
				pool.Close()
				return nil, fmt.Errorf("run migrations: %w", err)
			}
			logger.Info("migrations completed successfully")
		}

		return &storeSet{
			orders: orderspostgres.NewRepository(pool),
			books:  catalogpostgres.NewRepository(pool),
			pool:   pool,
		}, nil

	case config.StoreMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			return nil, fmt.Errorf("connect to mongo: %w", err)
		}
		db := client.Database(cfg.Mongo.Database)

		orders, err := ordersmongo.NewRepository(ctx, db)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("prepare mongo order store: %w", err)
		}

		return &storeSet{
			orders:      orders,
			books:       catalogmongo.NewRepository(db),
			mongoClient: client,
		}, nil

	case config.StoreMemory:
		return &storeSet{
			orders: ordersmemory.NewRepository(),
			books:  catalogmemory.NewRepository(),
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func (s *storeSet) checkHealth(ctx context.Context) error {
	if s.pool != nil {
		return database.CheckHealth(ctx, s.pool)
	}
	if s.mongoClient != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return s.mongoClient.Ping(ctx, nil)
	}
	return nil
}

func (s *storeSet) close() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.mongoClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.mongoClient.Disconnect(ctx)
	}
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*telemetry.Telemetry, error) {
	telCfg := telemetry.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Environment:    cfg.Service.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTelEndpoint,
		EnableTracing:  cfg.Telemetry.EnableTracing,
		EnableMetrics:  cfg.Telemetry.EnableMetrics,
		SampleRate:     cfg.Telemetry.SampleRate,
	}

	// Without a collector endpoint, keep the instrumentation wired but
	// discard the export.
	if cfg.Telemetry.OTelEndpoint == "" {
		return telemetry.Initialize(ctx, telCfg,
			telemetry.WithTraceExporter(telemetry.NewNoopTraceExporter()),
			telemetry.WithMetricExporter(telemetry.NewNoopMetricExporter()),
		)
	}

	return telemetry.Initialize(ctx, telCfg)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		slog.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration", time.Since(start),
		)
	})
}

func withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.ErrorContext(r.Context(), "panic recovered", "error", rec)
				respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
