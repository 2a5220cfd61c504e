// Package app wires the service together and owns its lifecycle.
package app

import (
	"context"
	"log"
	"time"

	"subnet-calculator/internal/audit"
	"subnet-calculator/internal/cloudflare"
	"subnet-calculator/internal/config"
	"subnet-calculator/internal/http"
)

// Service is the assembled subnet calculator application.
type Service struct {
	config *config.Config
	ranges *cloudflare.Cache
	audit  *audit.Logger
	server *http.Server
}

// Start refreshes the Cloudflare range cache in the background and runs
// the HTTP server until it is shut down.
func (s *Service) Start() error {
	go s.refreshRanges()

	log.Printf("Starting subnet calculator (auth_method=%s, port=%s)",
		s.config.Auth.Method, s.config.Server.Port)
	return s.server.Start(":" + s.config.Server.Port)
}

// refreshRanges tries once to replace the pinned fallback lists with the
// published ones. Failure is logged and the fallback kept.
func (s *Service) refreshRanges() {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Cloudflare.FetchTimeout+time.Second)
	defer cancel()

	if err := s.ranges.Refresh(ctx); err != nil {
		log.Printf("Warning: using fallback Cloudflare ranges: %v", err)
	}
}

// ShutdownTimeout reports the configured grace period for Shutdown.
func (s *Service) ShutdownTimeout() time.Duration {
	return s.config.Server.ShutdownTimeout
}

// Shutdown gracefully shuts down the service
func (s *Service) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
