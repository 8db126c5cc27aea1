package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"donormatch/internal/engine"
	"donormatch/internal/engine/handler"
	enginemetrics "donormatch/internal/engine/metrics"
	"donormatch/internal/platform/config"
	"donormatch/internal/platform/httpserver"
	"donormatch/internal/platform/logger"
	platformmetrics "donormatch/internal/platform/metrics"
	platformredis "donormatch/internal/platform/redis"
	"donormatch/internal/publish"
	"donormatch/internal/publish/kafka"
	"donormatch/internal/refresh"
	"donormatch/internal/source"
	"donormatch/internal/source/memory"
	"donormatch/internal/source/postgres"
	redisbookings "donormatch/internal/source/redis"
	"donormatch/pkg/platform/middleware/request"
)

const shutdownTimeout = 10 * time.Second

// main wires the sources, engine, refresher and read API, then runs the
// refresh loop and HTTP server until SIGINT/SIGTERM.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

type healthCheck func(ctx context.Context) error

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	var checks []healthCheck

	sourceMetrics := source.NewMetrics()
	store, db, err := openDonorStore(ctx, cfg, log, sourceMetrics)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		checks = append(checks, db.PingContext)
	}

	var bookings source.BookingSource
	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		bookings = redisbookings.NewBookingStore(redisClient.Client,
			redisbookings.WithKey(cfg.Redis.BookingsKey),
			redisbookings.WithLogger(log),
			redisbookings.WithMetrics(sourceMetrics),
		)
		checks = append(checks, redisClient.Health)
		log.Info("active bookings from redis", "key", cfg.Redis.BookingsKey)
	}

	loader, err := source.NewLoader(store, store, bookings, source.WithLogger(log))
	if err != nil {
		return err
	}

	engineMetrics := enginemetrics.New()
	svc, err := engine.New(
		engine.WithLogger(log),
		engine.WithMetrics(engineMetrics),
		engine.WithThresholds(cfg.Shortage.Thresholds()),
	)
	if err != nil {
		return err
	}

	refreshOpts := []refresh.Option{
		refresh.WithLogger(log),
		refresh.WithMetrics(engineMetrics),
		refresh.WithInterval(cfg.Refresh.Interval),
		refresh.WithPublisher(publish.NewLogPublisher(log)),
	}
	if len(cfg.Kafka.Brokers) > 0 {
		client, err := kafka.NewClient(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		defer client.Close()
		refreshOpts = append(refreshOpts, refresh.WithPublisher(kafka.New(client,
			kafka.WithTopic(cfg.Kafka.Topic),
			kafka.WithLogger(log),
			kafka.WithMetrics(kafka.NewMetrics()),
			kafka.WithIndex(svc.Index()),
		)))
		log.Info("publishing shortages to kafka", "topic", cfg.Kafka.Topic, "brokers", cfg.Kafka.Brokers)
	}
	refresher := refresh.New(loader, svc, refreshOpts...)

	router := chi.NewRouter()
	router.Use(request.ID, request.Time, request.Observe(log, platformmetrics.New()), chimw.Recoverer)
	handler.New(refresher, svc, handler.WithLogger(log)).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", healthz(refresher, checks))

	srv := httpserver.New(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := refresher.Run(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		log.Info("starting donormatch", "addr", cfg.Server.Addr, "refresh_interval", cfg.Refresh.Interval.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		log.Info("server shut down")
		return nil
	})
	return g.Wait()
}

type snapshotStore interface {
	source.DonorSource
	source.RequestSource
}

// openDonorStore returns the Postgres store when configured, otherwise an
// empty in-memory store and a nil db.
func openDonorStore(ctx context.Context, cfg config.Config, log *slog.Logger, m *source.Metrics) (snapshotStore, *sql.DB, error) {
	if cfg.Postgres.URL == "" {
		log.Warn("no postgres configured, serving an empty in-memory inventory")
		return memory.New(), nil, nil
	}
	db, err := sql.Open("postgres", cfg.Postgres.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return postgres.New(db, postgres.WithLogger(log), postgres.WithMetrics(m)), db, nil
}

// healthz reports 503 until the first report exists or while a dependency
// is unreachable.
func healthz(refresher *refresh.Refresher, checks []healthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if _, err := refresher.Latest(); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		for _, check := range checks {
			if err := check(ctx); err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
