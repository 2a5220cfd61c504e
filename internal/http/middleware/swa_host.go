package middleware

import (
	"log"
	"net/http"

	"subnet-calculator/internal/auth"
	"subnet-calculator/internal/config"

	"github.com/labstack/echo/v4"
)

const forwardedHostHeader = "X-Forwarded-Host"

// SWAHostValidation protects unauthenticated deployments fronted by
// Azure Static Web Apps: when no auth method is configured and an
// allow-list is set, requests must carry an X-Forwarded-Host naming one
// of the allowed SWA hostnames. Inactive for every other configuration.
// Skips the same public paths the auth middleware skips.
func SWAHostValidation(cfg config.AuthConfig) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(cfg.AllowedSWAHosts))
	for _, host := range cfg.AllowedSWAHosts {
		allowed[host] = true
	}

	active := cfg.Method == config.MethodNone && len(allowed) > 0

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !active || auth.PublicPath(c.Request().URL.Path) {
				return next(c)
			}

			forwardedHost := c.Request().Header.Get(forwardedHostHeader)
			if forwardedHost == "" {
				log.Printf("swa host validation: missing %s header, path=%s ip=%s",
					forwardedHostHeader, c.Request().URL.Path, c.RealIP())
				return c.JSON(http.StatusForbidden, map[string]string{
					"detail": "Missing X-Forwarded-Host header",
				})
			}

			if !allowed[forwardedHost] {
				log.Printf("swa host validation: rejected host %q, path=%s",
					forwardedHost, c.Request().URL.Path)
				return c.JSON(http.StatusForbidden, map[string]string{
					"detail": "Invalid X-Forwarded-Host header",
				})
			}

			return next(c)
		}
	}
}
