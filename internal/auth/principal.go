package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"subnet-calculator/internal/config"
	apperrors "subnet-calculator/pkg/errors"
)

// clientPrincipal is the decoded x-ms-client-principal payload. Static
// Web Apps sends the flat userDetails/userId form; the claims list is
// the App Service EasyAuth variant of the same header.
type clientPrincipal struct {
	UserDetails string           `json:"userDetails"`
	UserID      string           `json:"userId"`
	Claims      []principalClaim `json:"claims"`
}

type principalClaim struct {
	Type  string `json:"typ"`
	Value string `json:"val"`
}

// principalStrategy authenticates requests by the base64-encoded JSON
// principal header injected by the hosting platform after it has already
// authenticated the caller upstream.
type principalStrategy struct{}

func (s *principalStrategy) Method() config.AuthMethod {
	return config.MethodAzureSWA
}

func (s *principalStrategy) Authenticate(headers http.Header) (string, *apperrors.AppError) {
	encoded := headers.Get(HeaderClientPrincipal)
	if encoded == "" {
		return "", apperrors.MissingCredential(msgMissingPrincipal)
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", apperrors.MalformedCredential(fmt.Sprintf(msgInvalidPrincipalFmt, err))
	}

	var principal clientPrincipal
	if err := json.Unmarshal(decoded, &principal); err != nil {
		return "", apperrors.MalformedCredential(fmt.Sprintf(msgInvalidPrincipalFmt, err))
	}

	if principal.UserDetails != "" {
		return principal.UserDetails, nil
	}
	if principal.UserID != "" {
		return principal.UserID, nil
	}

	// Fall back to the claims-list form: first configured claim type wins.
	for _, claimType := range principalClaimTypes {
		for _, claim := range principal.Claims {
			if claim.Type == claimType && claim.Value != "" {
				return claim.Value, nil
			}
		}
	}

	return "", apperrors.UnknownPrincipal(msgPrincipalNoIdentity)
}
