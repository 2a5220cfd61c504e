package handler

import (
	"net/http"

	"subnet-calculator/internal/cloudflare"
	"subnet-calculator/internal/config"

	"github.com/labstack/echo/v4"
)

// HealthHandler serves the probe endpoints used by container
// orchestrators and the root service descriptor.
type HealthHandler struct {
	authMethod config.AuthMethod
	ranges     *cloudflare.Cache
}

func NewHealthHandler(authMethod config.AuthMethod, ranges *cloudflare.Cache) *HealthHandler {
	return &HealthHandler{authMethod: authMethod, ranges: ranges}
}

// Root returns the service descriptor.
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"name":    serviceName,
		"version": serviceVersion,
		"health":  "/api/v1/health",
	})
}

// Health is the general health check. No authentication required.
func (h *HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":            statusHealthy,
		"service":           serviceName,
		"version":           serviceVersion,
		"auth_method":       string(h.authMethod),
		"cloudflare_ranges": h.ranges.Source(),
	})
}

// Ready is the readiness probe. The service has no external hard
// dependencies, so readiness follows from the process being up.
func (h *HealthHandler) Ready(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": statusReady})
}

// Live is the liveness probe.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": statusAlive})
}
