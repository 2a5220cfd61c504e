package auth

import (
	"net/http"

	"subnet-calculator/internal/config"
	apperrors "subnet-calculator/pkg/errors"
)

// Strategy authenticates one request from its headers alone. It returns
// the resolved identity, or a failure describing exactly what was wrong
// with the presented credential.
type Strategy interface {
	// Method reports the auth method this strategy implements.
	Method() config.AuthMethod

	// Authenticate inspects the request headers and resolves an identity.
	Authenticate(headers http.Header) (string, *apperrors.AppError)
}

// strategyFor selects the strategy for the configured auth method.
// Returns nil for methods that are recognized but not implemented.
func strategyFor(cfg config.AuthConfig, tokens *TokenService) Strategy {
	switch cfg.Method {
	case config.MethodNone:
		return &noneStrategy{}
	case config.MethodAPIKey:
		return &apiKeyStrategy{keys: cfg.APIKeys}
	case config.MethodJWT:
		return &bearerStrategy{tokens: tokens}
	case config.MethodAzureSWA:
		return &principalStrategy{}
	case config.MethodAPIM:
		return &proxyStrategy{}
	default:
		return nil
	}
}
