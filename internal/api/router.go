package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/posts-gateway/internal/api/handler"
	"github.com/sirpyerre/posts-gateway/internal/api/middleware"
	"github.com/sirpyerre/posts-gateway/internal/auth"
	"github.com/sirpyerre/posts-gateway/internal/core/domain"
	"github.com/sirpyerre/posts-gateway/internal/core/ports"
	"github.com/sirpyerre/posts-gateway/internal/core/service"
	"github.com/sirpyerre/posts-gateway/internal/infrastructure/config"
	"github.com/sirpyerre/posts-gateway/internal/infrastructure/db/memory"
	rediscache "github.com/sirpyerre/posts-gateway/internal/infrastructure/db/redis"
	"github.com/sirpyerre/posts-gateway/internal/infrastructure/upstream"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, rdb *redis.Client, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("posts_gateway"))

	// --- Dependencies ---
	userRepo := memory.NewUserRepository()
	userRepo.SeedDemoUsers()

	codec := auth.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, codec, audit)
	authHandler := handler.NewAuthHandler(authService)

	upstreamClient := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	postCache := rediscache.NewPostCache(rdb, cfg.Redis.CacheTTL)
	postService := service.NewPostService(upstreamClient, postCache, log)
	postHandler := handler.NewPostHandler(postService)

	authGuard := middleware.Auth(codec, log)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes (public) ---
	authGroup := e.Group("/api/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/register", authHandler.Register)

	// --- Posts proxy (reads: any authenticated user; writes: admin only) ---
	posts := e.Group("/api/posts", authGuard)
	posts.GET("", postHandler.List)
	posts.GET("/:id", postHandler.Get)
	posts.POST("", postHandler.Create, adminOnly)
	posts.PUT("/:id", postHandler.Update, adminOnly)
	posts.DELETE("/:id", postHandler.Delete, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(rdb, upstreamClient)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
