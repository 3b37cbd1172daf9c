package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/erosmarket/storefront/docs"
	"github.com/erosmarket/storefront/internal/api/handler"
	"github.com/erosmarket/storefront/internal/api/middleware"
	"github.com/erosmarket/storefront/internal/core/domain"
	"github.com/erosmarket/storefront/internal/core/service"
	mongodb "github.com/erosmarket/storefront/internal/infrastructure/db/mongo"
	redisdb "github.com/erosmarket/storefront/internal/infrastructure/db/redis"
	"github.com/erosmarket/storefront/internal/pkg/digest"
	"github.com/erosmarket/storefront/internal/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the token revocation list is then disabled and logout is a
// client-side operation only.
func NewRouter(db *mongo.Database, rdb *redis.Client, tokenCfg token.Config, hasher digest.Hasher, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Dependencies ---
	issuer, err := token.NewIssuer(tokenCfg)
	if err != nil {
		return nil, err
	}
	verifier, err := token.NewVerifier(tokenCfg)
	if err != nil {
		return nil, err
	}

	var revocation *redisdb.RevocationList
	if rdb != nil {
		revocation = redisdb.NewRevocationList(rdb)
	}

	userRepo := mongodb.NewUserRepository(db)
	productRepo := mongodb.NewProductRepository(db)

	identityService := service.NewIdentityService(userRepo, hasher, issuer, log)
	productService := service.NewProductService(productRepo, log)

	authHandler := newAuthHandler(identityService, revocation)
	productHandler := handler.NewProductHandler(productService)

	var authMiddleware echo.MiddlewareFunc
	if revocation != nil {
		authMiddleware = middleware.Auth(verifier, revocation)
	} else {
		authMiddleware = middleware.Auth(verifier, nil)
	}
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/logout", authHandler.Logout, authMiddleware)
	e.PUT("/api/users/profile", authHandler.UpdateProfile, authMiddleware)

	// --- Catalog routes: reads public, mutations admin-gated ---
	e.GET("/api/products", productHandler.List)
	e.GET("/api/products/:id", productHandler.Get)
	e.POST("/api/products", productHandler.Create, authMiddleware, adminOnly)
	e.PUT("/api/products/:id", productHandler.Update, authMiddleware, adminOnly)
	e.DELETE("/api/products/:id", productHandler.Delete, authMiddleware, adminOnly)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	return e, nil
}

// newAuthHandler keeps the nil-interface subtlety in one place: a nil
// *RevocationList must become a nil TokenRevoker, not a non-nil interface
// wrapping a nil pointer.
func newAuthHandler(identity *service.IdentityService, revocation *redisdb.RevocationList) *handler.AuthHandler {
	if revocation == nil {
		return handler.NewAuthHandler(identity, nil)
	}
	return handler.NewAuthHandler(identity, revocation)
}
