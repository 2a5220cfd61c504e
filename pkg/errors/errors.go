package errors

import (
	"errors"
	"fmt"
)

// Domain errors - Sentinel errors for use with errors.Is()
var (
	ErrMissingCredential   = errors.New("missing credential")
	ErrMalformedCredential = errors.New("malformed credential")
	ErrWrongScheme         = errors.New("wrong authorization scheme")
	ErrInvalidSignature    = errors.New("invalid token signature")
	ErrExpired             = errors.New("credential expired")
	ErrUnknownPrincipal    = errors.New("unknown principal")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNotEnabled          = errors.New("feature not enabled")
	ErrNotImplemented      = errors.New("not implemented")
	ErrConfiguration       = errors.New("invalid configuration")
	ErrBadRequest          = errors.New("bad request")
	ErrForbidden           = errors.New("forbidden")
	ErrInternalServer      = errors.New("internal server error")
)

// Custom error type with context
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Constructors
func MissingCredential(msg string) *AppError {
	return &AppError{Code: "MISSING_CREDENTIAL", Message: msg, Err: ErrMissingCredential}
}

func MalformedCredential(msg string) *AppError {
	return &AppError{Code: "MALFORMED_CREDENTIAL", Message: msg, Err: ErrMalformedCredential}
}

func WrongScheme(msg string) *AppError {
	return &AppError{Code: "WRONG_SCHEME", Message: msg, Err: ErrWrongScheme}
}

func InvalidSignature(msg string) *AppError {
	return &AppError{Code: "INVALID_SIGNATURE", Message: msg, Err: ErrInvalidSignature}
}

func Expired(msg string) *AppError {
	return &AppError{Code: "EXPIRED", Message: msg, Err: ErrExpired}
}

func UnknownPrincipal(msg string) *AppError {
	return &AppError{Code: "UNKNOWN_PRINCIPAL", Message: msg, Err: ErrUnknownPrincipal}
}

func InvalidCredentials() *AppError {
	return &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password", Err: ErrInvalidCredentials}
}

func NotEnabled(msg string) *AppError {
	return &AppError{Code: "NOT_ENABLED", Message: msg, Err: ErrNotEnabled}
}

func NotImplemented(msg string) *AppError {
	return &AppError{Code: "NOT_IMPLEMENTED", Message: msg, Err: ErrNotImplemented}
}

func Configuration(msg string) *AppError {
	return &AppError{Code: "CONFIGURATION", Message: msg, Err: ErrConfiguration}
}

func BadRequest(msg string) *AppError {
	return &AppError{Code: "BAD_REQUEST", Message: msg, Err: ErrBadRequest}
}

func InternalServer(msg string, err error) *AppError {
	return &AppError{Code: "INTERNAL_SERVER_ERROR", Message: msg, Err: err}
}
