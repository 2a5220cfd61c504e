package auth

const (
	ContextKeyIdentity   = "identity"
	ContextKeyAuthMethod = "auth_method"

	jsonKeyDetail = "detail"

	HeaderAuthorization   = "Authorization"
	HeaderAPIKey          = "X-API-Key"
	HeaderClientPrincipal = "x-ms-client-principal"
	HeaderUserID          = "X-User-ID"
	HeaderUserEmail       = "X-User-Email"
	HeaderWWWAuthenticate = "WWW-Authenticate"

	bearerScheme    = "bearer"
	bearerChallenge = "Bearer"

	// AnonymousIdentity is the sentinel identity when no auth is configured.
	AnonymousIdentity = "anonymous"

	// identityAPIKeyUser is the shared identity for all API-key callers.
	identityAPIKeyUser = "api_key_user"
)

// Claim type URIs accepted in the nested claims-list form of the
// client principal header. Checked in order; first match wins.
var principalClaimTypes = []string{
	"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress",
	"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name",
	"preferred_username",
	"name",
}

const (
	msgMissingAuthorization = "Missing authorization header"
	msgEmptyAuthorization   = "Empty authorization header"
	msgInvalidScheme        = "Invalid authorization scheme. Expected Bearer"
	msgInvalidAuthFormat    = "Invalid authorization header format"
	msgTokenExpired         = "Token has expired"
	msgInvalidToken         = "Invalid token"
	msgMissingSubject       = "Could not validate credentials"
	msgMissingAPIKey        = "Missing X-API-Key header"
	msgInvalidAPIKey        = "Invalid API key"
	msgMissingPrincipal     = "Azure SWA authentication required but no principal found"
	msgInvalidPrincipalFmt  = "Invalid Azure SWA principal: %v"
	msgPrincipalNoIdentity  = "Invalid Azure SWA principal: missing user identity"
	msgMissingProxyHeaders  = "APIM authentication required but no user headers found"
	msgMethodNotImplemented = "Authentication method not implemented"
	msgJWTNotEnabled        = "JWT authentication not enabled (AUTH_METHOD != jwt)"

	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgUnsupportedAlgorithm    = "unsupported signing algorithm: %s"
	msgParseSigningKeyFmt      = "failed to parse signing key: %w"
	msgSignTokenFmt            = "failed to sign token: %w"
)
