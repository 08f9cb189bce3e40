package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moviehub/catalogue-system/internal/api"
	"github.com/moviehub/catalogue-system/internal/infrastructure/config"
	mongorepo "github.com/moviehub/catalogue-system/internal/infrastructure/db/mongo"
	"github.com/moviehub/catalogue-system/internal/infrastructure/db/postgres"
	redisrepo "github.com/moviehub/catalogue-system/internal/infrastructure/db/redis"
	"github.com/moviehub/catalogue-system/internal/infrastructure/worker"
	"github.com/moviehub/catalogue-system/pkg/logger"
)

// @title           Movie Catalogue API
// @version         1.0
// @description     Movie catalogue backend with account registration, JWT sessions, and cross-store review linking.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Postgres (identity store) ---
	pg, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection failed")
	}
	defer pg.Close()

	if err := postgres.Migrate(cfg.Postgres.DSN); err != nil {
		log.Fatal().Err(err).Msg("postgres migration failed")
	}

	// --- MongoDB (content store) ---
	mongoClient, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	movieRepo := mongorepo.NewMovieRepository(db)
	if err := movieRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongodb index creation failed")
	}

	// --- Redis (catalogue cache) ---
	rdb, err := redisrepo.Connect(ctx, redisrepo.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	// --- Orphan reconciler ---
	reconciler := worker.NewReconciler(movieRepo, mongorepo.NewReviewRepository(db), cfg.SweepInterval, log)
	reconciler.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(pg, db, rdb, cfg)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Env).
		Msg("catalogue api started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown failed")
	}
	log.Info().Msg("catalogue api stopped")
}
