package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sweetshop/sweet-shop-api/internal/api/handler"
	"github.com/sweetshop/sweet-shop-api/internal/api/middleware"
	"github.com/sweetshop/sweet-shop-api/internal/core/service"
	"github.com/sweetshop/sweet-shop-api/internal/infrastructure/config"
	mongostore "github.com/sweetshop/sweet-shop-api/internal/infrastructure/db/mongo"
	redisstore "github.com/sweetshop/sweet-shop-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("sweetshop"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	authHandler := handler.NewAuthHandler(authService)

	sweetRepo := mongostore.NewSweetRepository(db)
	sweetService := service.NewSweetService(sweetRepo, log)
	sweetHandler := handler.NewSweetHandler(sweetService)

	limiter := redisstore.NewRateLimiter(rdb, cfg.RateLimit.AuthLimit, cfg.RateLimit.AuthWindow)

	// --- Public routes ---
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Sweet Shop API is running...")
	})
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	healthHandler := handler.NewHealthHandler(db, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Auth routes (rate limited, no token required) ---
	auth := e.Group("/auth", middleware.RateLimit(limiter, log))
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Sweet routes (bearer token required) ---
	sweets := e.Group("/sweets", middleware.Auth(cfg.JWTSecret))
	sweets.GET("", sweetHandler.List)
	sweets.GET("/search", sweetHandler.Search)
	sweets.POST("/:id/purchase", sweetHandler.Purchase)

	// --- Admin-only catalog mutations ---
	admin := sweets.Group("", middleware.AdminOnly())
	admin.POST("", sweetHandler.Create)
	admin.POST("/:id/restock", sweetHandler.Restock)
	admin.PUT("/:id", sweetHandler.Update)
	admin.DELETE("/:id", sweetHandler.Delete)

	return e
}
