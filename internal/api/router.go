package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	_ "github.com/moviehub/catalogue-system/docs"
	"github.com/moviehub/catalogue-system/internal/api/handler"
	"github.com/moviehub/catalogue-system/internal/api/middleware"
	"github.com/moviehub/catalogue-system/internal/core/domain"
	"github.com/moviehub/catalogue-system/internal/core/service"
	"github.com/moviehub/catalogue-system/internal/infrastructure/config"
	mongorepo "github.com/moviehub/catalogue-system/internal/infrastructure/db/mongo"
	"github.com/moviehub/catalogue-system/internal/infrastructure/db/postgres"
	redisrepo "github.com/moviehub/catalogue-system/internal/infrastructure/db/redis"
	"github.com/moviehub/catalogue-system/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pg *sql.DB, db *mongo.Database, rdb *redis.Client, cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger.Get())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalogue"))

	// --- Dependencies ---
	log := logger.Get()

	userRepo := postgres.NewUserRepository(pg)
	movieRepo := mongorepo.NewMovieRepository(db)
	reviewRepo := mongorepo.NewReviewRepository(db)
	movieCache := redisrepo.NewMovieCache(rdb)

	hasher := service.NewBcryptHasher(bcrypt.DefaultCost)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, hasher, tokens, log)
	movieService := service.NewMovieService(movieRepo, movieCache, log)
	reviewService := service.NewReviewService(reviewRepo, movieRepo, movieCache, log)

	authHandler := handler.NewAuthHandler(authService)
	movieHandler := handler.NewMovieHandler(movieService)
	reviewHandler := handler.NewReviewHandler(reviewService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.GET("/auth/verify", authHandler.Verify)
	e.GET("/auth/me", authHandler.Me)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Catalogue routes (bearer token required) ---
	v1 := e.Group("/api/v1", middleware.Auth(tokens))
	v1.GET("/movies", movieHandler.List)
	v1.GET("/movies/:imdbId", movieHandler.Get)
	v1.POST("/movies", movieHandler.Create, middleware.RBAC(string(domain.RoleAdmin)))
	v1.GET("/movies/:imdbId/reviews", reviewHandler.ListByMovie)
	v1.POST("/reviews", reviewHandler.Create)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pg, db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
