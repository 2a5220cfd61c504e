package http

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "subnet-calculator/pkg/errors"

	"github.com/labstack/echo/v4"
)

const jsonKeyDetail = "detail"

// CustomHTTPErrorHandler handles all errors returned by handlers and
// middleware. It maps sentinel errors to HTTP status codes, sanitizes
// internal errors, and logs with request context.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = fmt.Sprintf("%v", httpErr.Message)
	} else {
		switch {
		case errors.Is(err, apperrors.ErrMissingCredential),
			errors.Is(err, apperrors.ErrMalformedCredential),
			errors.Is(err, apperrors.ErrWrongScheme),
			errors.Is(err, apperrors.ErrInvalidSignature),
			errors.Is(err, apperrors.ErrExpired),
			errors.Is(err, apperrors.ErrUnknownPrincipal),
			errors.Is(err, apperrors.ErrInvalidCredentials):
			code = http.StatusUnauthorized
			message = "Unauthorized"
		case errors.Is(err, apperrors.ErrForbidden):
			code = http.StatusForbidden
			message = "Forbidden"
		case errors.Is(err, apperrors.ErrNotEnabled),
			errors.Is(err, apperrors.ErrBadRequest):
			code = http.StatusBadRequest
			message = "Bad request"
		case errors.Is(err, apperrors.ErrNotImplemented):
			code = http.StatusNotImplemented
			message = "Not implemented"
		}

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if code < 500 {
				message = appErr.Message
			}
		}
	}

	requestID := c.Response().Header().Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = "unknown"
	}

	if code >= 500 {
		c.Logger().Error("internal_server_error",
			"request_id", requestID,
			"status", code,
			"error", err.Error())
		// Don't expose internal errors to clients
		message = "Internal server error"
	} else {
		c.Logger().Warn("client_error",
			"request_id", requestID,
			"status", code,
			"error", err.Error())
	}

	if err := c.JSON(code, map[string]string{jsonKeyDetail: message}); err != nil {
		c.Logger().Error(err)
	}
}
