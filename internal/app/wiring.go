package app

import (
	"fmt"
	"os"

	"subnet-calculator/internal/audit"
	"subnet-calculator/internal/auth"
	"subnet-calculator/internal/cloudflare"
	"subnet-calculator/internal/config"
	"subnet-calculator/internal/http"
)

// InitializeService wires up all dependencies and returns a configured Service
func InitializeService() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	ranges := cloudflare.NewCache(cfg.Cloudflare, nil)
	auditLog := audit.NewLogger(os.Stdout)

	tokens := auth.NewTokenService(cfg.Auth)
	resolver := auth.NewResolver(cfg.Auth, tokens, auditLog)
	issuer := auth.NewLoginIssuer(cfg.Auth, tokens, auditLog)

	server := http.NewServer(&http.ServerDependencies{
		Config:      cfg,
		Resolver:    resolver,
		LoginIssuer: issuer,
		Ranges:      ranges,
	})

	return &Service{
		config: cfg,
		ranges: ranges,
		audit:  auditLog,
		server: server,
	}, nil
}
