package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/devsquad/devlog-api/docs"
	"github.com/devsquad/devlog-api/internal/api/handler"
	"github.com/devsquad/devlog-api/internal/api/middleware"
	"github.com/devsquad/devlog-api/internal/core/service"
	"github.com/devsquad/devlog-api/internal/infrastructure/config"
	mongorepo "github.com/devsquad/devlog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/devsquad/devlog-api/internal/infrastructure/db/redis"
	"github.com/devsquad/devlog-api/internal/realtime"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("devlog"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	entryRepo := mongorepo.NewEntryRepository(db)
	cache := redisdb.NewCache(rdb)

	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	authService := service.NewAuthService(userRepo, tokens)
	entryService := service.NewEntryService(entryRepo, log)
	profileService := service.NewProfileService(userRepo)
	analyticsService := service.NewAnalyticsService(entryRepo, userRepo, cache, log)

	authHandler := handler.NewAuthHandler(authService)
	entryHandler := handler.NewEntryHandler(entryService)
	profileHandler := handler.NewProfileHandler(profileService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	authRequired := middleware.Auth(tokens, userRepo)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Entry routes ---
	entries := e.Group("/entries", authRequired)
	entries.POST("", entryHandler.Create)
	entries.GET("", entryHandler.List)
	entries.GET("/:id", entryHandler.Get)
	entries.PUT("/:id", entryHandler.Update)
	entries.DELETE("/:id", entryHandler.Delete)

	// --- Profile routes ---
	profile := e.Group("/profile", authRequired)
	profile.GET("/me", profileHandler.Me)
	profile.PUT("", profileHandler.Update)

	// --- Analytics routes ---
	analytics := e.Group("/analytics", authRequired)
	analytics.GET("/stats", analyticsHandler.Stats)
	analytics.GET("/team", analyticsHandler.Team)

	// --- Realtime relay ---
	hub := realtime.NewHub(log)
	e.GET("/ws", realtime.Handler(hub))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
