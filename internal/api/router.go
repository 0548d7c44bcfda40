package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/Henderxo/SaitynasAPI/docs"
	"github.com/Henderxo/SaitynasAPI/internal/api/handler"
	"github.com/Henderxo/SaitynasAPI/internal/api/middleware"
	"github.com/Henderxo/SaitynasAPI/internal/core/domain"
	"github.com/Henderxo/SaitynasAPI/internal/core/service"
	"github.com/Henderxo/SaitynasAPI/internal/infrastructure/config"
	mongorepo "github.com/Henderxo/SaitynasAPI/internal/infrastructure/db/mongo"
	redisinfra "github.com/Henderxo/SaitynasAPI/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("gameforum"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	developerRepo := mongorepo.NewDeveloperRepository(db)
	gameRepo := mongorepo.NewGameRepository(db)
	commentRepo := mongorepo.NewCommentRepository(db)

	// --- Core services ---
	cascade := service.NewCascadeEngine(userRepo, developerRepo, gameRepo, commentRepo, log)
	gate := service.NewGate(cascade)
	tokens := service.NewTokenService(userRepo, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, log)
	limiter := redisinfra.NewLoginLimiter(rdb)

	userService := service.NewUserService(userRepo, cascade, gate, tokens, limiter, log)
	developerService := service.NewDeveloperService(developerRepo, userRepo, cascade, gate, log)
	gameService := service.NewGameService(gameRepo, developerRepo, cascade, gate, log)
	commentService := service.NewCommentService(commentRepo, gameRepo, userRepo, gate, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(userService, tokens, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	userHandler := handler.NewUserHandler(userService, developerService)
	developerHandler := handler.NewDeveloperHandler(developerService, gameService, commentService)
	gameHandler := handler.NewGameHandler(gameService, commentService)
	commentHandler := handler.NewCommentHandler(commentService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	auth := middleware.Auth(tokens)

	// --- Auth routes ---
	e.POST("/login", authHandler.Login)
	e.POST("/refresh", authHandler.Refresh)
	e.POST("/logout", authHandler.Logout)

	// --- Users ---
	e.POST("/users", userHandler.Create)
	e.GET("/users", userHandler.List)
	e.GET("/users/:id", userHandler.Get)
	e.GET("/users/:id/developers", userHandler.ListDevelopers)
	e.PUT("/users/:id", userHandler.Update, auth)
	e.DELETE("/users/:id", userHandler.Delete, auth)

	// --- Developers ---
	// Creation is admin-only up front; update and delete go through the
	// ownership gate so a missing record still reads as 404.
	e.POST("/developers", developerHandler.Create, auth, middleware.RBAC(domain.RoleAdmin))
	e.GET("/developers", developerHandler.List)
	e.GET("/developers/:id", developerHandler.Get)
	e.GET("/developers/:id/games", developerHandler.ListGames)
	e.GET("/developers/:id/comments", developerHandler.ListComments)
	e.GET("/developers/:id/games/:gameId/comments/:commentId", developerHandler.GetNestedComment)
	e.PUT("/developers/:id", developerHandler.Update, auth)
	e.DELETE("/developers/:id", developerHandler.Delete, auth)

	// --- Games ---
	e.POST("/games", gameHandler.Create, auth, middleware.RBAC(domain.RoleAdmin, domain.RoleDev))
	e.GET("/games", gameHandler.List)
	e.GET("/games/:id", gameHandler.Get)
	e.GET("/games/:id/comments", gameHandler.ListComments)
	e.PUT("/games/:id", gameHandler.Update, auth)
	e.DELETE("/games/:id", gameHandler.Delete, auth)

	// --- Comments ---
	e.POST("/comments", commentHandler.Create, auth)
	e.GET("/comments", commentHandler.List)
	e.GET("/comments/:id", commentHandler.Get)
	e.PUT("/comments/:id", commentHandler.Update, auth)
	e.DELETE("/comments/:id", commentHandler.Delete, auth)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness)   // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/docs/*", echoswagger.WrapHandler)

	return e
}
