package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/legacyapp/user-service/internal/api/handler"
	"github.com/legacyapp/user-service/internal/api/middleware"
	"github.com/legacyapp/user-service/internal/core/domain"
	"github.com/legacyapp/user-service/internal/core/ports"
)

// Deps carries everything the router needs to build its handlers.
type Deps struct {
	Users     ports.UserService
	Clients   ports.ClientService
	Checks    map[string]handler.DependencyCheck
	JWTSecret string
	Logger    zerolog.Logger

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "http",
		Namespace:  "registration",
		Registerer: deps.Registerer,
	}))

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: deps.Gatherer,
	}))

	// --- API v1 ---
	userHandler := handler.NewUserHandler(deps.Users, deps.Logger)
	clientHandler := handler.NewClientHandler(deps.Clients)

	v1 := e.Group("/v1", middleware.Auth(deps.JWTSecret))
	v1.Use(middleware.RBAC(domain.RoleAdmin, domain.RoleOperator))

	v1.POST("/users", userHandler.Register)
	v1.GET("/users/:id", userHandler.Get)
	v1.GET("/clients/:id", clientHandler.Get)

	return e
}
