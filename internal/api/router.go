package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookstore/catalog-api/internal/api/handler"
	"github.com/bookstore/catalog-api/internal/api/middleware"
	"github.com/bookstore/catalog-api/internal/core/ports"
	"github.com/bookstore/catalog-api/internal/core/service"
	"github.com/bookstore/catalog-api/internal/infrastructure/config"
	mongorepo "github.com/bookstore/catalog-api/internal/infrastructure/db/mongo"
	rediscache "github.com/bookstore/catalog-api/internal/infrastructure/db/redis"
	"github.com/bookstore/catalog-api/internal/infrastructure/http/handlers"
)

// services groups what the HTTP layer depends on, so tests can build the
// router around in-memory implementations.
type services struct {
	auth   ports.AuthService
	books  ports.BookService
	checks []handlers.Check
}

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil, in which case single-book lookups are not cached.
func NewRouter(cfg *config.Config, log zerolog.Logger, db *mongo.Database, rdb *redis.Client) *echo.Echo {
	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	bookRepo := mongorepo.NewBookRepository(db)

	var cache ports.BookCache
	if rdb != nil {
		cache = rediscache.NewBookCache(rdb)
	}

	svc := services{
		auth:   service.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log),
		books:  service.NewBookService(bookRepo, cache, cfg.Redis.CacheTTL, log),
		checks: []handlers.Check{handlers.MongoCheck(db), handlers.RedisCheck(rdb)},
	}

	return newEcho(cfg, log, svc)
}

func newEcho(cfg *config.Config, log zerolog.Logger, svc services) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.IsDevelopment())

	// HTTP metrics live in their own registry; /metrics serves it together
	// with the default one the domain collectors register on.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(log))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "bookstore",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.auth)
	bookHandler := handler.NewBookHandler(svc.books)
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(svc.checks...)

	guard := middleware.Auth(svc.auth, log)
	limiter := middleware.RateLimit(cfg.Auth.RateLimit, cfg.Auth.RateBurst)

	// --- Operational routes (no auth required) ---
	e.GET("/", healthHandler.Status)
	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{reg, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register, limiter)
	auth.POST("/login", authHandler.Login, limiter)
	auth.GET("/me", authHandler.Me, guard)

	// --- Book routes (guarded) ---
	books := e.Group("/api/books", guard)
	books.POST("", bookHandler.Create)
	books.GET("", bookHandler.List)
	books.GET("/:id", bookHandler.Get)
	books.PUT("/:id", bookHandler.Update)
	books.DELETE("/:id", bookHandler.Delete)

	return e
}
