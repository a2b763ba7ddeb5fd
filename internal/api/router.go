package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/userdesk/user-management/docs"
	"github.com/userdesk/user-management/internal/api/handler"
	"github.com/userdesk/user-management/internal/api/middleware"
	"github.com/userdesk/user-management/internal/core/ports"
	"github.com/userdesk/user-management/internal/core/service"
	"github.com/userdesk/user-management/internal/infrastructure/config"
	redisdb "github.com/userdesk/user-management/internal/infrastructure/db/redis"
	"github.com/userdesk/user-management/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; rate limiting then falls back to in-process buckets.
func NewRouter(repo ports.UserRepository, db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsDevelopment())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.BodyLimit(cfg.BodyLimit))
	e.Use(echoprometheus.NewMiddleware("userapi"))
	e.Use(middleware.RateLimit(newLimiter(rdb, "general", cfg.RateLimit.GeneralMax, cfg), "general", log))

	// --- Dependencies ---
	userService := service.NewUserService(repo, log)
	userHandler := handler.NewUserHandler(userService)
	createLimit := middleware.RateLimit(newLimiter(rdb, "create", cfg.RateLimit.CreateMax, cfg), "create", log)

	// --- User routes ---
	e.GET("/api/users", userHandler.List)
	e.POST("/api/user", userHandler.Create, createLimit)
	e.GET("/api/user/:id", userHandler.Get)
	e.PUT("/api/user/:id", userHandler.Update)
	e.DELETE("/api/user/:id", userHandler.Delete)
	e.GET("/api/stats/users", userHandler.Stats)

	// --- Health probes ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	if cfg.IsDevelopment() {
		e.GET("/swagger/*", echoswagger.WrapHandler)
	}

	return e
}

// newLimiter picks the rate-limit backend: a shared Redis rolling window
// when Redis is configured, an in-process token bucket otherwise.
func newLimiter(rdb *redis.Client, scope string, max int64, cfg *config.Config) middleware.Limiter {
	if rdb != nil {
		return middleware.NewRedisLimiter(redisdb.NewWindowCounter(rdb, scope, cfg.RateLimit.Window), max)
	}
	return middleware.NewMemoryLimiter(int(max), cfg.RateLimit.Window)
}
