package auth

import (
	"errors"
	"net/http"
	"strings"

	"subnet-calculator/internal/audit"
	"subnet-calculator/internal/config"
	apperrors "subnet-calculator/pkg/errors"
	"subnet-calculator/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// Paths that never require authentication.
var publicPaths = map[string]bool{
	"/":                    true,
	"/api/v1/health":       true,
	"/api/v1/health/ready": true,
	"/api/v1/health/live":  true,
	"/api/v1/auth/login":   true,
	"/metrics":             true,
}

const debugPrefix = "/debug"

// PublicPath reports whether a path is served without authentication.
// The SWA host allow-list middleware uses the same set.
func PublicPath(path string) bool {
	return publicPaths[path] || strings.HasPrefix(path, debugPrefix)
}

// Resolver dispatches each request to the strategy for the configured
// auth method and maps failures to HTTP status codes. Stateless after
// construction; safe for concurrent use.
type Resolver struct {
	cfg      config.AuthConfig
	strategy Strategy
	metrics  *metrics.Metrics
	audit    *audit.Logger
}

func NewResolver(cfg config.AuthConfig, tokens *TokenService, auditLog *audit.Logger) *Resolver {
	return &Resolver{
		cfg:      cfg,
		strategy: strategyFor(cfg, tokens),
		metrics:  metrics.GetMetrics(),
		audit:    auditLog,
	}
}

// Resolve authenticates a request from its headers. A configured method
// with no strategy is reported as not implemented.
func (r *Resolver) Resolve(headers http.Header) (string, *apperrors.AppError) {
	if r.strategy == nil {
		return "", apperrors.NotImplemented(msgMethodNotImplemented)
	}
	return r.strategy.Authenticate(headers)
}

// StatusFor maps an authentication failure to its HTTP status. All
// caller-facing credential failures are 401; only the disabled-feature
// and unimplemented-method cases differ.
func StatusFor(appErr *apperrors.AppError) int {
	switch {
	case errors.Is(appErr, apperrors.ErrNotImplemented):
		return http.StatusNotImplemented
	case errors.Is(appErr, apperrors.ErrNotEnabled):
		return http.StatusBadRequest
	case errors.Is(appErr, apperrors.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusUnauthorized
	}
}

// Middleware authenticates every request outside the public path set and
// stores the resolved identity on the request context.
func (r *Resolver) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if PublicPath(c.Request().URL.Path) {
				return next(c)
			}

			identity, appErr := r.Resolve(c.Request().Header)
			if appErr != nil {
				r.metrics.RecordAuthAttempt(string(r.cfg.Method), false)
				r.metrics.RecordAuthFailure(string(r.cfg.Method), appErr.Code)
				r.audit.Record(audit.Event{
					AuthMethod: string(r.cfg.Method),
					Action:     audit.ActionAuthenticate,
					Status:     audit.StatusFailure,
					IP:         c.RealIP(),
					UserAgent:  c.Request().UserAgent(),
					Detail:     appErr.Message,
				})

				status := StatusFor(appErr)
				if status == http.StatusUnauthorized && r.cfg.Method == config.MethodJWT {
					c.Response().Header().Set(HeaderWWWAuthenticate, bearerChallenge)
				}
				return c.JSON(status, map[string]string{jsonKeyDetail: appErr.Message})
			}

			r.metrics.RecordAuthAttempt(string(r.cfg.Method), true)
			c.Set(ContextKeyIdentity, identity)
			c.Set(ContextKeyAuthMethod, string(r.cfg.Method))

			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Middleware, or the
// anonymous sentinel when none was set.
func IdentityFrom(c echo.Context) string {
	if identity, ok := c.Get(ContextKeyIdentity).(string); ok && identity != "" {
		return identity
	}
	return AnonymousIdentity
}
