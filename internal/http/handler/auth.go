package handler

import (
	"errors"
	"net/http"
	"strings"

	"subnet-calculator/internal/auth"
	apperrors "subnet-calculator/pkg/errors"
	"subnet-calculator/pkg/validator"

	"github.com/labstack/echo/v4"
)

// AuthHandler serves the login endpoint that exchanges form-encoded
// credentials for an access token.
type AuthHandler struct {
	issuer *auth.LoginIssuer
}

func NewAuthHandler(issuer *auth.LoginIssuer) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login accepts username/password form fields. Failed credentials get a
// 401 with a Bearer challenge; a disabled login endpoint gets a 400.
func (h *AuthHandler) Login(c echo.Context) error {
	username := strings.TrimSpace(c.FormValue(formKeyUsername))
	password := c.FormValue(formKeyPassword)

	if err := validator.Username(username); err != nil {
		return respondDetail(c, http.StatusBadRequest, err.Error())
	}
	if err := validator.Password(password); err != nil {
		return respondDetail(c, http.StatusBadRequest, err.Error())
	}

	token, appErr := h.issuer.Login(username, password)
	if appErr != nil {
		if errors.Is(appErr, apperrors.ErrInvalidCredentials) {
			c.Response().Header().Set(auth.HeaderWWWAuthenticate, "Bearer")
		}
		return respondAppError(c, appErr)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
	})
}
