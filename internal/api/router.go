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

	_ "github.com/sweetshop/sweet-shop-api/docs"
	"github.com/sweetshop/sweet-shop-api/internal/api/handler"
	"github.com/sweetshop/sweet-shop-api/internal/api/middleware"
	"github.com/sweetshop/sweet-shop-api/internal/core/service"
	"github.com/sweetshop/sweet-shop-api/internal/infrastructure/config"
	mongodb "github.com/sweetshop/sweet-shop-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sweetshop/sweet-shop-api/internal/infrastructure/db/redis"
	"github.com/sweetshop/sweet-shop-api/internal/infrastructure/http/handlers"
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
	e.Use(echoprometheus.NewMiddleware("sweetshop"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL)
	authHandler := handler.NewAuthHandler(authService)
	authMiddleware := middleware.Auth(cfg.JWTSecret, authRepo)

	sweetRepo := mongodb.NewSweetRepository(db)
	var catalogCache *redisdb.CatalogCache
	if rdb != nil {
		catalogCache = redisdb.NewCatalogCache(rdb, log)
	}
	sweetService := sweetServiceFor(sweetRepo, catalogCache, log)
	sweetHandler := handler.NewSweetHandler(sweetService)

	// --- Root banner ---
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Sweet Shop API running"})
	})

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/protected/profile", authHandler.Profile, authMiddleware)

	// --- Catalog routes ---
	sweets := e.Group("/api/sweets")
	sweets.POST("", sweetHandler.Create)
	sweets.GET("", sweetHandler.List)
	sweets.GET("/search", sweetHandler.Search)
	sweets.PUT("/:id", sweetHandler.Update)
	sweets.POST("/:id/purchase", sweetHandler.Purchase, authMiddleware)
	sweets.POST("/:id/restock", sweetHandler.Restock, authMiddleware, middleware.AdminOnly())
	sweets.DELETE("/:id", sweetHandler.Delete, authMiddleware, middleware.AdminOnly())

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}

// sweetServiceFor avoids handing the service a typed-nil cache interface
// when Redis is not configured.
func sweetServiceFor(repo *mongodb.SweetRepository, cache *redisdb.CatalogCache, log zerolog.Logger) *service.SweetService {
	if cache == nil {
		return service.NewSweetService(repo, nil, log)
	}
	return service.NewSweetService(repo, cache, log)
}
