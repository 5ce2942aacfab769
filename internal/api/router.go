package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/contactkeep/contacts-api/docs"
	"github.com/contactkeep/contacts-api/internal/api/handler"
	"github.com/contactkeep/contacts-api/internal/api/middleware"
	"github.com/contactkeep/contacts-api/internal/core/ports"
	"github.com/contactkeep/contacts-api/internal/core/service"
	mongoinfra "github.com/contactkeep/contacts-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/contactkeep/contacts-api/internal/infrastructure/db/redis"
	"github.com/contactkeep/contacts-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, log zerolog.Logger, db *mongo.Database, rdb *redis.Client, avatars ports.AvatarStore) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("contacts"))

	// --- Dependencies ---
	userRepo := mongoinfra.NewUserRepository(db)
	contactRepo := mongoinfra.NewContactRepository(db)
	throttle := redisinfra.NewLoginThrottle(rdb)

	tokens := service.NewTokenService(cfg.Auth.JWTSecret)
	authService := service.NewAuthService(
		userRepo,
		tokens,
		avatars,
		throttle,
		time.Duration(cfg.Auth.AccessTokenTTLMin)*time.Minute,
		time.Duration(cfg.Auth.RefreshTokenTTLMin)*time.Minute,
		log,
	)
	contactService := service.NewContactService(contactRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	contactHandler := handler.NewContactHandler(contactService)
	requireAuth := middleware.Auth(tokens, userRepo)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, requireAuth)
	auth.POST("/upload-avatar", authHandler.UploadAvatar, requireAuth)

	// --- Contact routes (all protected) ---
	contacts := e.Group("/contacts", requireAuth)
	contacts.GET("", contactHandler.List)
	contacts.POST("", contactHandler.Create)
	contacts.GET("/birthdays", contactHandler.Birthdays)
	contacts.GET("/:id", contactHandler.Get)
	contacts.PUT("/:id", contactHandler.Update)
	contacts.DELETE("/:id", contactHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/healthcheck", healthHandler.Liveness)             // liveness  – is the process alive?
	e.GET("/healthcheck/ready", readinessHandler.Readiness)   // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
