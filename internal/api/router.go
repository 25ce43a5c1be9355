package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/gatherly/event-registration/internal/api/handler"
	"github.com/gatherly/event-registration/internal/api/middleware"
	"github.com/gatherly/event-registration/internal/core/domain"
	"github.com/gatherly/event-registration/internal/core/service"
	"github.com/gatherly/event-registration/internal/infrastructure/db/jsonfile"
)

// Options carries the router's tunables.
type Options struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(store *jsonfile.Store, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("eventreg"))

	// --- Dependencies ---
	userRepo := jsonfile.NewUserRepository(store)
	eventRepo := jsonfile.NewEventRepository(store)
	creds := service.NewCredentials(opts.BcryptCost)
	userService := service.NewUserService(userRepo, creds, opts.JWTSecret, opts.TokenTTL)
	eventService := service.NewEventService(eventRepo, userRepo, opts.Logger)

	authHandler := handler.NewAuthHandler(userService)
	userHandler := handler.NewUserHandler(userService)
	eventHandler := handler.NewEventHandler(eventService)

	authRequired := middleware.Auth(opts.JWTSecret)
	passwordChanged := middleware.RequirePasswordChanged()
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/change-password", authHandler.ChangePassword, authRequired)

	// --- Attendee routes ---
	events := e.Group("/events", authRequired, passwordChanged)
	events.GET("", eventHandler.ListPublished)
	events.POST("/:id/register", eventHandler.Register)
	e.GET("/my-events", eventHandler.MyEvents, authRequired, passwordChanged)

	// --- Admin routes ---
	admin := e.Group("/admin", authRequired, passwordChanged, adminOnly)
	admin.POST("/users", userHandler.Create)
	admin.GET("/events", eventHandler.ListAll)
	admin.POST("/events", eventHandler.Create)
	admin.POST("/events/:id/publish", eventHandler.Publish)
	admin.POST("/events/:id/unpublish", eventHandler.Unpublish)
	admin.GET("/events/:id/attendees", eventHandler.Attendees)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(store)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
