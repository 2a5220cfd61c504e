package http

import (
	"context"
	stdhttp "net/http"

	"subnet-calculator/internal/auth"
	"subnet-calculator/internal/cloudflare"
	"subnet-calculator/internal/config"
	"subnet-calculator/internal/http/handler"
	"subnet-calculator/internal/http/middleware"
	"subnet-calculator/pkg/metrics"
	"subnet-calculator/pkg/profiling"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const requestBodyLimit = "64K"

type ServerDependencies struct {
	Config      *config.Config
	Resolver    *auth.Resolver
	LoginIssuer *auth.LoginIssuer
	Ranges      *cloudflare.Cache
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID middleware (first, so all logs have request ID)
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))
	e.Use(metrics.Middleware())

	if len(deps.Config.CORS.Origins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: deps.Config.CORS.Origins,
			AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, auth.HeaderAPIKey},
		}))
	}

	// Host allow-list for unauthenticated SWA deployments, then the
	// auth middleware itself.
	e.Use(middleware.SWAHostValidation(deps.Config.Auth))
	e.Use(deps.Resolver.Middleware())

	// Global rate limiting
	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	// Strict rate limiting for the login endpoint
	strictRateLimiter := middleware.NewStrictRateLimiter()

	healthHandler := handler.NewHealthHandler(deps.Config.Auth.Method, deps.Ranges)
	authHandler := handler.NewAuthHandler(deps.LoginIssuer)
	subnetHandler := handler.NewSubnetHandler(deps.Ranges)

	e.GET("/", healthHandler.Root)
	e.GET("/metrics", metrics.Handler())

	api := e.Group("/api/v1")
	api.GET("/health", healthHandler.Health)
	api.GET("/health/ready", healthHandler.Ready)
	api.GET("/health/live", healthHandler.Live)

	api.POST("/auth/login", authHandler.Login, strictRateLimiter.Middleware())

	api.POST("/subnets/validate", subnetHandler.Validate)
	api.POST("/subnets/check-private", subnetHandler.CheckPrivate)
	api.POST("/subnets/check-cloudflare", subnetHandler.CheckCloudflare)
	api.POST("/subnets/ipv4", subnetHandler.IPv4)
	api.POST("/subnets/ipv6", subnetHandler.IPv6)

	if deps.Config.Server.EnablePprof {
		profiling.RegisterPprofRoutes(e)
		e.GET("/debug/memory", func(c echo.Context) error {
			return c.JSON(stdhttp.StatusOK, profiling.GetMemoryStats())
		})
	}

	return &Server{
		echo: e,
		deps: deps,
	}
}

// Echo exposes the underlying router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
