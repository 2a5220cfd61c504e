package auth

import (
	"net/http"

	"subnet-calculator/internal/config"
	apperrors "subnet-calculator/pkg/errors"
)

// apiKeyStrategy authenticates requests by the X-API-Key header. A
// missing header and a wrong key are reported with distinct messages.
type apiKeyStrategy struct {
	keys []string
}

func (s *apiKeyStrategy) Method() config.AuthMethod {
	return config.MethodAPIKey
}

func (s *apiKeyStrategy) Authenticate(headers http.Header) (string, *apperrors.AppError) {
	provided := headers.Get(HeaderAPIKey)
	if provided == "" {
		return "", apperrors.MissingCredential(msgMissingAPIKey)
	}

	if !VerifyAPIKey(provided, s.keys) {
		return "", apperrors.UnknownPrincipal(msgInvalidAPIKey)
	}

	return identityAPIKeyUser, nil
}
