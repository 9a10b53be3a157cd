package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tiendavale/ecommerce-api/internal/api/handler"
	"github.com/tiendavale/ecommerce-api/internal/api/middleware"
	"github.com/tiendavale/ecommerce-api/internal/core/domain"
	"github.com/tiendavale/ecommerce-api/internal/core/service"
	"github.com/tiendavale/ecommerce-api/internal/infrastructure/config"
	mongodb "github.com/tiendavale/ecommerce-api/internal/infrastructure/db/mongo"
	redisdb "github.com/tiendavale/ecommerce-api/internal/infrastructure/db/redis"
	"github.com/tiendavale/ecommerce-api/internal/infrastructure/http/handlers"
)

// Deps bundles the already-seeded services main hands to the router.
type Deps struct {
	AuthService    *service.AuthService
	CatalogService *service.CatalogService
}

// NewDeps wires the repositories and services from the shared connections.
func NewDeps(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) Deps {
	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	cartRepo := mongodb.NewCartRepository(db)
	resetGuard := redisdb.NewResetGuard(rdb, cfg.ResetCooldown)

	return Deps{
		AuthService:    service.NewAuthService(userRepo, cartRepo, resetGuard, cfg.AdminEmail, log),
		CatalogService: service.NewCatalogService(productRepo, userRepo, log),
	}
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, deps Deps, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalog_http"))

	authHandler := handler.NewAuthHandler(deps.AuthService, cfg.JWTSecret, cfg.TokenTTL)
	productHandler := handler.NewProductHandler(deps.CatalogService)
	authMiddleware := middleware.Auth(cfg.JWTSecret, deps.AuthService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/reset-password", authHandler.ResetPassword)
	e.GET("/auth/current", authHandler.Current, authMiddleware)

	// --- Catalog routes ---
	e.GET("/products", productHandler.List)
	e.GET("/products/view", productHandler.ListPage)
	e.GET("/products/:id", productHandler.Get)
	e.POST("/products", productHandler.Create,
		authMiddleware, middleware.RBAC(domain.RoleAdmin, domain.RolePremium))
	e.PUT("/products/:id", productHandler.Update,
		authMiddleware, middleware.RBAC(domain.RoleAdmin, domain.RolePremium))
	// Delete is open to any authenticated role; the catalog service decides
	// admin-or-owner.
	e.DELETE("/products/:id", productHandler.Delete, authMiddleware)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
