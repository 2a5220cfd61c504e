package auth

import (
	"net/http"
	"strings"

	"subnet-calculator/internal/config"
	apperrors "subnet-calculator/pkg/errors"
)

// bearerStrategy authenticates requests by a Bearer token in the
// Authorization header. The scheme word is matched case-insensitively;
// anything other than exactly scheme+token is rejected.
type bearerStrategy struct {
	tokens *TokenService
}

func (s *bearerStrategy) Method() config.AuthMethod {
	return config.MethodJWT
}

func (s *bearerStrategy) Authenticate(headers http.Header) (string, *apperrors.AppError) {
	raw := headers.Get(HeaderAuthorization)
	if raw == "" {
		return "", apperrors.MissingCredential(msgMissingAuthorization)
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", apperrors.MissingCredential(msgEmptyAuthorization)
	}

	parts := strings.Fields(trimmed)
	if !strings.EqualFold(parts[0], bearerScheme) {
		return "", apperrors.WrongScheme(msgInvalidScheme)
	}
	if len(parts) != 2 {
		return "", apperrors.MalformedCredential(msgInvalidAuthFormat)
	}

	claims, appErr := s.tokens.Verify(parts[1])
	if appErr != nil {
		return "", appErr
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", apperrors.UnknownPrincipal(msgMissingSubject)
	}

	return subject, nil
}
