package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"subnet-calculator/internal/config"
	apperrors "subnet-calculator/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

// VerifyAPIKey checks a presented key against the configured set.
// The provided key is trimmed; comparison is exact and case-sensitive.
// Never returns an error: empty, whitespace-only and unknown keys are
// all simply invalid.
func VerifyAPIKey(provided string, validKeys []string) bool {
	provided = strings.TrimSpace(provided)
	if provided == "" {
		return false
	}

	for _, key := range validKeys {
		if provided == key {
			return true
		}
	}

	return false
}

// TokenService mints and verifies signed access tokens.
type TokenService struct {
	secret    string
	algorithm string
	expiry    time.Duration
}

func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		secret:    cfg.JWTSecret,
		algorithm: cfg.JWTAlgorithm,
		expiry:    cfg.JWTExpiry,
	}
}

// Mint signs the supplied claims after stamping iat and exp. Timestamps
// are integer Unix seconds; two tokens minted within the same second for
// identical claims are byte-identical.
func (s *TokenService) Mint(claims map[string]interface{}) (string, error) {
	method := jwt.GetSigningMethod(s.algorithm)
	if method == nil {
		return "", fmt.Errorf(msgUnsupportedAlgorithm, s.algorithm)
	}

	now := time.Now().UTC()

	stamped := make(jwt.MapClaims, len(claims)+2)
	for k, v := range claims {
		stamped[k] = v
	}
	stamped["iat"] = jwt.NewNumericDate(now)
	stamped["exp"] = jwt.NewNumericDate(now.Add(s.expiry))

	key, err := s.signingKey(method)
	if err != nil {
		return "", fmt.Errorf(msgParseSigningKeyFmt, err)
	}

	token, err := jwt.NewWithClaims(method, stamped).SignedString(key)
	if err != nil {
		return "", fmt.Errorf(msgSignTokenFmt, err)
	}

	return token, nil
}

// Verify checks signature and expiry, returning the token claims.
// Expiry is reported distinctly from every other failure so callers can
// produce the correct detail message.
func (s *TokenService) Verify(tokenString string) (jwt.MapClaims, *apperrors.AppError) {
	claims := jwt.MapClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != s.algorithm {
			return nil, fmt.Errorf(msgUnexpectedSigningMethod, t.Header["alg"])
		}
		return s.verificationKey(t.Method)
	}, jwt.WithValidMethods([]string{s.algorithm}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Expired(msgTokenExpired)
		}
		return nil, apperrors.InvalidSignature(msgInvalidToken)
	}

	if !token.Valid {
		return nil, apperrors.InvalidSignature(msgInvalidToken)
	}

	return claims, nil
}

// signingKey selects the private key material for the algorithm family.
// HMAC uses the shared secret directly; RSA and ECDSA expect a PEM block.
func (s *TokenService) signingKey(method jwt.SigningMethod) (interface{}, error) {
	switch method.(type) {
	case *jwt.SigningMethodHMAC:
		return []byte(s.secret), nil
	case *jwt.SigningMethodRSA:
		return jwt.ParseRSAPrivateKeyFromPEM([]byte(s.secret))
	case *jwt.SigningMethodECDSA:
		return jwt.ParseECPrivateKeyFromPEM([]byte(s.secret))
	default:
		return nil, fmt.Errorf(msgUnsupportedAlgorithm, method.Alg())
	}
}

func (s *TokenService) verificationKey(method jwt.SigningMethod) (interface{}, error) {
	switch method.(type) {
	case *jwt.SigningMethodHMAC:
		return []byte(s.secret), nil
	case *jwt.SigningMethodRSA:
		if key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(s.secret)); err == nil {
			return key, nil
		}
		private, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(s.secret))
		if err != nil {
			return nil, err
		}
		return &private.PublicKey, nil
	case *jwt.SigningMethodECDSA:
		if key, err := jwt.ParseECPublicKeyFromPEM([]byte(s.secret)); err == nil {
			return key, nil
		}
		private, err := jwt.ParseECPrivateKeyFromPEM([]byte(s.secret))
		if err != nil {
			return nil, err
		}
		return &private.PublicKey, nil
	default:
		return nil, fmt.Errorf(msgUnsupportedAlgorithm, method.Alg())
	}
}
