package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cse-motors/dealership-api/internal/api/handler"
	"github.com/cse-motors/dealership-api/internal/api/middleware"
	"github.com/cse-motors/dealership-api/internal/core/domain"
	"github.com/cse-motors/dealership-api/internal/core/service"
	mongodb "github.com/cse-motors/dealership-api/internal/infrastructure/db/mongo"
	redisdb "github.com/cse-motors/dealership-api/internal/infrastructure/db/redis"
	"github.com/cse-motors/dealership-api/internal/pkg/config"
	"github.com/cse-motors/dealership-api/internal/validate"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("dealership"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	favoriteRepo := mongodb.NewFavoriteRepository(db)
	catalogReader := mongodb.NewCatalogReader(db)

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	hasher := service.NewPasswordHasher(cfg.BcryptCost)
	mirror := redisdb.NewSessionMirror(rdb, tokens.TTL())
	accountService := service.NewAccountService(accountRepo, hasher, tokens, mirror, log)
	favoriteService := service.NewFavoriteService(favoriteRepo, catalogReader)
	pipeline := validate.New(accountRepo)

	accountHandler := handler.NewAccountHandler(accountService, pipeline, tokens.TTL(), cfg.Production())
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	inventoryHandler := handler.NewInventoryHandler()

	// Identity resolution runs on every request; failures never abort the
	// pipeline, they just leave the caller anonymous.
	e.Use(middleware.ResolveIdentity(tokens, cfg.Production()))

	requireLogin := middleware.RequireAuthenticated()
	staffOnly := middleware.RequireRole(domain.RoleEmployee, domain.RoleAdmin)

	// --- Account routes ---
	e.GET("/account/login", accountHandler.BuildLogin)
	e.GET("/account/register", accountHandler.BuildRegister)
	e.POST("/account/register", accountHandler.Register)
	e.POST("/account/login", accountHandler.Login)
	e.GET("/account/logout", accountHandler.Logout)
	e.GET("/account", accountHandler.Management, requireLogin)
	e.GET("/account/update/:accountId", accountHandler.BuildUpdate, requireLogin, middleware.RequireSelfOrAdmin("accountId"))
	e.POST("/account/update", accountHandler.Update, requireLogin)
	e.POST("/account/update-password", accountHandler.UpdatePassword, requireLogin)

	// --- Favorites ---
	e.GET("/account/favorites", favoriteHandler.List, requireLogin)
	e.POST("/account/favorites/:vehicleId", favoriteHandler.Add, requireLogin)
	e.DELETE("/account/favorites/:vehicleId", favoriteHandler.Remove, requireLogin)

	// --- Inventory management entry (role-gated) ---
	e.GET("/inv/manage", inventoryHandler.Management, staffOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
