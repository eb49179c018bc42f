package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yoockh/orbitmatch/config"
	"github.com/yoockh/orbitmatch/internal/api/handlers"
	"github.com/yoockh/orbitmatch/internal/api/middleware"
	"github.com/yoockh/orbitmatch/internal/api/routes"
	"github.com/yoockh/orbitmatch/internal/api/validation"
	"github.com/yoockh/orbitmatch/internal/bootstrap"
	"github.com/yoockh/orbitmatch/internal/logger"
	"github.com/yoockh/orbitmatch/internal/scheduler"
	"github.com/yoockh/orbitmatch/internal/workers"
)

func main() {
	config.LoadDotEnv()
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config error")
	}

	// Init MongoDB
	if err := config.InitMongo(); err != nil {
		log.WithError(err).Fatal("MongoDB init error")
	}
	db, err := config.MongoDatabase()
	if err != nil {
		log.WithError(err).Fatal("MongoDB init error")
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.WithError(err).Fatal("MongoDB index error")
	}
	log.WithField("db", cfg.MongoDB).Info("MongoDB connected")

	// Init Redis
	if err := config.InitRedis(); err != nil {
		log.WithError(err).Fatal("Redis init error")
	}
	log.Info("Redis connected")

	// Init PostgreSQL (audit mirror, optional)
	if err := config.InitPostgres(); err != nil {
		log.WithError(err).Fatal("PostgreSQL init error")
	}
	if config.PostgresDB != nil {
		if err := config.MigratePostgres(); err != nil {
			log.WithError(err).Fatal("PostgreSQL migrate error")
		}
		log.Info("PostgreSQL audit mirror enabled")
	}

	svcs, err := bootstrap.Build(cfg, bootstrap.Infra{
		Mongo:    db,
		Redis:    config.RedisClient,
		Postgres: config.PostgresDB,
	}, log)
	if err != nil {
		log.WithError(err).Fatal("service wiring error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := &workers.EventWorkerPool{
		Redis:      config.RedisClient,
		NumWorkers: cfg.EventWorkers,
		Logger:     log,
	}
	if err := pool.Start(ctx); err != nil {
		log.WithError(err).Fatal("event workers error")
	}

	sched := scheduler.New(svcs.Privacy, log)
	if err := sched.Start(); err != nil {
		log.WithError(err).Fatal("scheduler error")
	}

	if err := validation.RegisterWithGin(); err != nil {
		log.WithError(err).Fatal("validator error")
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLoggerWithConfig(log, middleware.LoggerConfig{
		SkipPaths:     []string{"/ping"},
		SlowThreshold: middleware.DefaultSlowMatch,
	}))
	routes.RegisterRoutes(r, routes.Deps{
		Auth: middleware.JWTConfig{
			Secret:   cfg.JWTSecret,
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
		},
		Limiter:   middleware.NewCallerLimiter(cfg.RateLimit, cfg.RateBurst),
		Matching:  handlers.NewMatchingHandler(svcs.Matching, svcs.Events, svcs.Privacy),
		Candidate: handlers.NewCandidateHandler(svcs.Candidates, svcs.Privacy),
		WS:        handlers.NewWSHandler(config.RedisClient, log),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down")

		shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
		defer stop()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("server shutdown")
		}
		cancel()
		sched.Stop()
		if config.RedisClient != nil {
			_ = config.RedisClient.Close()
		}
		if err := config.CloseMongo(shutdownCtx); err != nil {
			log.WithError(err).Warn("mongo disconnect")
		}
		close(idleConnsClosed)
	}()

	log.WithField("port", cfg.Port).Info("matching server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("server error")
	}

	<-idleConnsClosed
}
