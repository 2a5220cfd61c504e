package handler

import (
	"errors"
	"net/http"

	apperrors "subnet-calculator/pkg/errors"

	"github.com/labstack/echo/v4"
)

func respondDetail(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{jsonKeyDetail: message})
}

// respondAppError maps a domain failure to its status. Handlers only
// surface 400-level failures this way; anything unexpected is left to
// the central error handler.
func respondAppError(c echo.Context, appErr *apperrors.AppError) error {
	status := http.StatusBadRequest
	switch {
	case errors.Is(appErr, apperrors.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(appErr, apperrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(appErr, apperrors.ErrNotImplemented):
		status = http.StatusNotImplemented
	case appErr.Code == "INTERNAL_SERVER_ERROR":
		status = http.StatusInternalServerError
	}
	return respondDetail(c, status, appErr.Message)
}
