package auth

import (
	"encoding/base64"
	"net/http"
	"testing"
	"time"

	"subnet-calculator/internal/config"
	apperrors "subnet-calculator/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headersWith(key, value string) http.Header {
	h := http.Header{}
	h.Set(key, value)
	return h
}

func TestNoneStrategyIgnoresHeaders(t *testing.T) {
	s := &noneStrategy{}

	identity, appErr := s.Authenticate(http.Header{})
	require.Nil(t, appErr)
	assert.Equal(t, AnonymousIdentity, identity)

	// Credentials that happen to be present are never validated.
	identity, appErr = s.Authenticate(headersWith(HeaderAuthorization, "Bearer garbage"))
	require.Nil(t, appErr)
	assert.Equal(t, AnonymousIdentity, identity)
}

func TestAPIKeyStrategy(t *testing.T) {
	s := &apiKeyStrategy{keys: []string{"k1", "k2"}}

	t.Run("valid key", func(t *testing.T) {
		identity, appErr := s.Authenticate(headersWith(HeaderAPIKey, "k1"))
		require.Nil(t, appErr)
		assert.Equal(t, identityAPIKeyUser, identity)
	})

	t.Run("missing header", func(t *testing.T) {
		_, appErr := s.Authenticate(http.Header{})
		require.NotNil(t, appErr)
		assert.ErrorIs(t, appErr, apperrors.ErrMissingCredential)
		assert.Equal(t, msgMissingAPIKey, appErr.Message)
	})

	t.Run("invalid key", func(t *testing.T) {
		_, appErr := s.Authenticate(headersWith(HeaderAPIKey, "k3"))
		require.NotNil(t, appErr)
		assert.Equal(t, msgInvalidAPIKey, appErr.Message)
	})
}

func TestBearerStrategy(t *testing.T) {
	tokens := testTokenService(30 * time.Minute)
	s := &bearerStrategy{tokens: tokens}

	valid, err := tokens.Mint(map[string]interface{}{"sub": "alice"})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		identity, appErr := s.Authenticate(headersWith(HeaderAuthorization, "Bearer "+valid))
		require.Nil(t, appErr)
		assert.Equal(t, "alice", identity)
	})

	t.Run("scheme is case-insensitive", func(t *testing.T) {
		for _, scheme := range []string{"bearer", "BEARER", "Bearer"} {
			identity, appErr := s.Authenticate(headersWith(HeaderAuthorization, scheme+" "+valid))
			require.Nil(t, appErr, scheme)
			assert.Equal(t, "alice", identity)
		}
	})

	t.Run("missing header", func(t *testing.T) {
		_, appErr := s.Authenticate(http.Header{})
		require.NotNil(t, appErr)
		assert.Equal(t, msgMissingAuthorization, appErr.Message)
	})

	t.Run("whitespace only header", func(t *testing.T) {
		_, appErr := s.Authenticate(headersWith(HeaderAuthorization, "   "))
		require.NotNil(t, appErr)
		assert.Equal(t, msgEmptyAuthorization, appErr.Message)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		_, appErr := s.Authenticate(headersWith(HeaderAuthorization, "Basic dXNlcjpwYXNz"))
		require.NotNil(t, appErr)
		assert.ErrorIs(t, appErr, apperrors.ErrWrongScheme)
		assert.Equal(t, msgInvalidScheme, appErr.Message)
	})

	t.Run("scheme without token", func(t *testing.T) {
		_, appErr := s.Authenticate(headersWith(HeaderAuthorization, "Bearer"))
		require.NotNil(t, appErr)
		assert.ErrorIs(t, appErr, apperrors.ErrMalformedCredential)
		assert.Equal(t, msgInvalidAuthFormat, appErr.Message)
	})

	t.Run("trailing garbage", func(t *testing.T) {
		_, appErr := s.Authenticate(headersWith(HeaderAuthorization, "Bearer "+valid+" extra"))
		require.NotNil(t, appErr)
		assert.ErrorIs(t, appErr, apperrors.ErrMalformedCredential)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := testTokenService(-1 * time.Minute).Mint(map[string]interface{}{"sub": "alice"})
		require.NoError(t, err)

		_, appErr := s.Authenticate(headersWith(HeaderAuthorization, "Bearer "+expired))
		require.NotNil(t, appErr)
		assert.ErrorIs(t, appErr, apperrors.ErrExpired)
		assert.Equal(t, msgTokenExpired, appErr.Message)
	})

	t.Run("token without subject", func(t *testing.T) {
		noSub, err := tokens.Mint(map[string]interface{}{"role": "admin"})
		require.NoError(t, err)

		_, appErr := s.Authenticate(headersWith(HeaderAuthorization, "Bearer "+noSub))
		require.NotNil(t, appErr)
		assert.ErrorIs(t, appErr, apperrors.ErrUnknownPrincipal)
		assert.Equal(t, msgMissingSubject, appErr.Message)
	})
}

func encodePrincipal(t *testing.T, raw string) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

func TestPrincipalStrategy(t *testing.T) {
	s := &principalStrategy{}

	t.Run("userDetails preferred", func(t *testing.T) {
		payload := encodePrincipal(t, `{"userDetails":"alice@example.com","userId":"abc123"}`)
		identity, appErr := s.Authenticate(headersWith(HeaderClientPrincipal, payload))
		require.Nil(t, appErr)
		assert.Equal(t, "alice@example.com", identity)
	})

	t.Run("userId fallback", func(t *testing.T) {
		payload := encodePrincipal(t, `{"userId":"abc123"}`)
		identity, appErr := s.Authenticate(headersWith(HeaderClientPrincipal, payload))
		require.Nil(t, appErr)
		assert.Equal(t, "abc123", identity)
	})

	t.Run("claims list fallback", func(t *testing.T) {
		payload := encodePrincipal(t, `{"claims":[
			{"typ":"aud","val":"api"},
			{"typ":"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress","val":"bob@example.com"}
		]}`)
		identity, appErr := s.Authenticate(headersWith(HeaderClientPrincipal, payload))
		require.Nil(t, appErr)
		assert.Equal(t, "bob@example.com", identity)
	})

	t.Run("preferred_username claim", func(t *testing.T) {
		payload := encodePrincipal(t, `{"claims":[{"typ":"preferred_username","val":"carol"}]}`)
		identity, appErr := s.Authenticate(headersWith(HeaderClientPrincipal, payload))
		require.Nil(t, appErr)
		assert.Equal(t, "carol", identity)
	})

	t.Run("missing header", func(t *testing.T) {
		_, appErr := s.Authenticate(http.Header{})
		require.NotNil(t, appErr)
		assert.ErrorIs(t, appErr, apperrors.ErrMissingCredential)
		assert.Equal(t, msgMissingPrincipal, appErr.Message)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, appErr := s.Authenticate(headersWith(HeaderClientPrincipal, "!!!not-base64!!!"))
		require.NotNil(t, appErr)
		assert.ErrorIs(t, appErr, apperrors.ErrMalformedCredential)
		assert.Contains(t, appErr.Message, "Invalid Azure SWA principal")
	})

	t.Run("invalid json", func(t *testing.T) {
		payload := encodePrincipal(t, `{not json`)
		_, appErr := s.Authenticate(headersWith(HeaderClientPrincipal, payload))
		require.NotNil(t, appErr)
		assert.ErrorIs(t, appErr, apperrors.ErrMalformedCredential)
	})

	t.Run("no identity fields", func(t *testing.T) {
		payload := encodePrincipal(t, `{"identityProvider":"aad"}`)
		_, appErr := s.Authenticate(headersWith(HeaderClientPrincipal, payload))
		require.NotNil(t, appErr)
		assert.ErrorIs(t, appErr, apperrors.ErrUnknownPrincipal)
		assert.Equal(t, msgPrincipalNoIdentity, appErr.Message)
	})
}

func TestProxyStrategy(t *testing.T) {
	s := &proxyStrategy{}

	t.Run("email preferred over id", func(t *testing.T) {
		h := http.Header{}
		h.Set(HeaderUserEmail, "alice@example.com")
		h.Set(HeaderUserID, "abc123")
		identity, appErr := s.Authenticate(h)
		require.Nil(t, appErr)
		assert.Equal(t, "alice@example.com", identity)
	})

	t.Run("id fallback", func(t *testing.T) {
		identity, appErr := s.Authenticate(headersWith(HeaderUserID, "abc123"))
		require.Nil(t, appErr)
		assert.Equal(t, "abc123", identity)
	})

	t.Run("both missing", func(t *testing.T) {
		_, appErr := s.Authenticate(http.Header{})
		require.NotNil(t, appErr)
		assert.ErrorIs(t, appErr, apperrors.ErrMissingCredential)
		assert.Equal(t, msgMissingProxyHeaders, appErr.Message)
	})
}

func TestStrategyFor(t *testing.T) {
	tokens := testTokenService(30 * time.Minute)

	tests := []struct {
		method config.AuthMethod
		want   config.AuthMethod
	}{
		{method: config.MethodNone, want: config.MethodNone},
		{method: config.MethodAPIKey, want: config.MethodAPIKey},
		{method: config.MethodJWT, want: config.MethodJWT},
		{method: config.MethodAzureSWA, want: config.MethodAzureSWA},
		{method: config.MethodAPIM, want: config.MethodAPIM},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			s := strategyFor(config.AuthConfig{Method: tt.method}, tokens)
			require.NotNil(t, s)
			assert.Equal(t, tt.want, s.Method())
		})
	}

	t.Run("azure_ad has no strategy", func(t *testing.T) {
		assert.Nil(t, strategyFor(config.AuthConfig{Method: config.MethodAzureAD}, tokens))
	})
}
