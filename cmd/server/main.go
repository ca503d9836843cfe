package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"dokdig/internal/archive"
	"dokdig/internal/casetask"
	"dokdig/internal/events"
	"dokdig/internal/person"
	"dokdig/internal/platform/config"
	"dokdig/internal/platform/httpserver"
	"dokdig/internal/platform/logger"
	"dokdig/internal/platform/middleware"
	platformredis "dokdig/internal/platform/redis"
	"dokdig/internal/platform/upstream"
	"dokdig/internal/reconcile"
	"dokdig/internal/task/handler"
	"dokdig/internal/task/metrics"
	"dokdig/internal/task/service"
	"dokdig/internal/task/store"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal packages.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Error("ping database", "error", err)
		os.Exit(1)
	}

	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}

	publisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.FinalizedTopic)
	if err != nil {
		log.Error("connect kafka", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	archiveGW := archive.NewClient(cfg.ArchiveBaseURL, upstream.StaticToken(cfg.ArchiveToken), cfg.UpstreamTimeout, log)
	caseTasks := casetask.NewClient(cfg.CaseTaskBaseURL, upstream.StaticToken(cfg.CaseTaskToken), cfg.UpstreamTimeout, log)
	personClient := person.NewClient(cfg.PersonBaseURL, upstream.StaticToken(cfg.PersonToken), cfg.UpstreamTimeout, log)
	practitioners := person.NewPractitionerClient(cfg.PersonBaseURL, upstream.StaticToken(cfg.PersonToken), cfg.UpstreamTimeout, log)

	var subjects service.SubjectResolver = personClient
	if redisClient != nil {
		subjects = person.NewCachedResolver(personClient, redisClient.Client, cfg.SubjectCacheTTL, log)
	}

	taskStore := store.NewPostgres(db)
	taskMetrics := metrics.New()
	tasks := service.New(taskStore, archiveGW, caseTasks, publisher,
		subjects, practitioners, newTaskPostgresTx(db), log, taskMetrics)

	router := chi.NewRouter()
	router.Use(middleware.Correlation)
	router.Use(middleware.RequestTime)
	router.Get("/internal/health", healthHandler(db, redisClient))
	router.Handle("/internal/metrics", promhttp.Handler())
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireActor([]byte(cfg.JWTSigningKey), log))
		handler.New(tasks, log).Register(r)
	})

	srv := httpserver.New(cfg.Addr, router)
	worker := reconcile.NewWorker(taskStore, publisher, cfg.ReconcileInterval, cfg.ReconcileBatchSize, log, taskMetrics)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting dokdig", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return worker.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("dokdig stopped")
}

func healthHandler(db *sql.DB, redisClient *platformredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := db.PingContext(ctx); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		if redisClient != nil {
			if err := redisClient.Health(ctx); err != nil {
				http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	}
}
