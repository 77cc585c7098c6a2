// Package http mounts the operational endpoints next to the API routes.
package http

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/smartblog/editor-api/docs"
	"github.com/smartblog/editor-api/internal/infrastructure/http/handlers"
)

// RegisterOps adds the liveness and readiness probes, the Prometheus scrape
// endpoint and the Swagger UI to e.
func RegisterOps(e *echo.Echo, probes map[string]handlers.Probe) {
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(probes)

	e.GET("/health", healthHandler.Liveness)          // liveness
	e.GET("/health/ready", readinessHandler.Readiness) // readiness
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
