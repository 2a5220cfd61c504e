package auth

import (
	"net/http"

	"subnet-calculator/internal/config"
	apperrors "subnet-calculator/pkg/errors"
)

// noneStrategy resolves every request to the anonymous identity without
// reading any header. Credentials that happen to be present are ignored,
// never validated.
type noneStrategy struct{}

func (s *noneStrategy) Method() config.AuthMethod {
	return config.MethodNone
}

func (s *noneStrategy) Authenticate(_ http.Header) (string, *apperrors.AppError) {
	return AnonymousIdentity, nil
}
