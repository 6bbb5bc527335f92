package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	_ "github.com/jackc/pgx/v5/stdlib"

	classifycache "pidkit/internal/classify/cache"
	classifyhandler "pidkit/internal/classify/handler"
	classifymetrics "pidkit/internal/classify/metrics"
	"pidkit/internal/classify/service"
	"pidkit/internal/classify/store"
	"pidkit/internal/platform/config"
	"pidkit/internal/platform/httpserver"
	"pidkit/internal/platform/logger"
	"pidkit/internal/platform/metrics"
	platformredis "pidkit/internal/platform/redis"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(os.Getenv("PIDKIT_LOG_LEVEL"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(classifymetrics.New()),
		service.WithBatchLimit(cfg.Classify.BatchLimit),
	}

	history, db := newHistoryStore(ctx, cfg, log)
	if db != nil {
		defer db.Close()
	}
	opts = append(opts, service.WithHistory(history))

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("redis unavailable, running without cache", "error", err.Error())
	} else if redisClient != nil {
		defer redisClient.Close()
		opts = append(opts, service.WithCache(classifycache.New(redisClient.Client, cfg.Classify.CacheTTL)))
		log.Info("classification cache enabled", "ttl", cfg.Classify.CacheTTL.String())
	}

	svc := service.New(opts...)
	h := classifyhandler.New(svc, log, metrics.New(), cfg.Server.AdminToken)

	router := chi.NewRouter()
	h.Register(router)

	apiServer := httpserver.New(cfg.Server.Addr, router)
	opsServer := httpserver.New(cfg.Server.OpsAddr, opsMux(db, redisClient))

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting pidkit API server", "addr", cfg.Server.Addr)
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		log.Info("starting pidkit ops server", "addr", cfg.Server.OpsAddr)
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		apiErr := apiServer.Shutdown(shutdownCtx)
		opsErr := opsServer.Shutdown(shutdownCtx)
		return errors.Join(apiErr, opsErr)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited with error", "error", err.Error())
		os.Exit(1)
	}
	log.Info("pidkit stopped")
}

// newHistoryStore picks the history backend: Postgres when a DSN is
// configured, otherwise in-memory. The returned DB is non-nil only when
// Postgres is in use; the caller owns closing it.
func newHistoryStore(ctx context.Context, cfg config.Config, log *slog.Logger) (service.HistoryStore, *sql.DB) {
	if cfg.Postgres.DSN == "" {
		log.Info("history store: in-memory")
		return store.NewMemory(), nil
	}

	db, err := sql.Open("pgx", cfg.Postgres.DSN)
	if err != nil {
		log.Error("failed to open postgres, falling back to in-memory history", "error", err.Error())
		return store.NewMemory(), nil
	}
	if err := db.PingContext(ctx); err != nil {
		log.Error("postgres unreachable, falling back to in-memory history", "error", err.Error())
		_ = db.Close()
		return store.NewMemory(), nil
	}

	pg := store.NewPostgres(db)
	if err := pg.EnsureSchema(ctx); err != nil {
		log.Error("failed to prepare history schema, falling back to in-memory history", "error", err.Error())
		_ = db.Close()
		return store.NewMemory(), nil
	}

	log.Info("history store: postgres")
	return pg, db
}

// opsMux serves operational endpoints: Prometheus metrics, liveness, and a
// readiness probe that pings the configured backends.
func opsMux(db *sql.DB, redisClient *platformredis.Client) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				http.Error(w, "postgres not ready", http.StatusServiceUnavailable)
				return
			}
		}
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ready"}`))
	})
	return mux
}
