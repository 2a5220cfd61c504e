package auth

import (
	"net/http"

	"subnet-calculator/internal/config"
	apperrors "subnet-calculator/pkg/errors"
)

// proxyStrategy authenticates requests by user headers set by a trusted
// gateway in front of the service. The human-readable email is preferred
// over the opaque id when both are present.
type proxyStrategy struct{}

func (s *proxyStrategy) Method() config.AuthMethod {
	return config.MethodAPIM
}

func (s *proxyStrategy) Authenticate(headers http.Header) (string, *apperrors.AppError) {
	email := headers.Get(HeaderUserEmail)
	id := headers.Get(HeaderUserID)

	if email != "" {
		return email, nil
	}
	if id != "" {
		return id, nil
	}

	return "", apperrors.MissingCredential(msgMissingProxyHeaders)
}
