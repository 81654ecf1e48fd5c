package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/woiya/marketplace/docs"
	"github.com/woiya/marketplace/internal/infrastructure/http/handlers"
)

// RegisterOperational mounts the unauthenticated operational routes: health
// probes, the Prometheus exposition and the Swagger UI. A nil gatherer means
// the default registry.
func RegisterOperational(e *echo.Echo, gatherer prometheus.Gatherer, checkers ...handlers.Checker) *handlers.HealthHandler {
	health := handlers.NewHealthHandler(checkers...)

	e.GET("/health", health.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", health.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return health
}
