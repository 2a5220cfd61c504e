package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envPort                  = "PORT"
	envServerReadTimeout     = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout    = "SERVER_WRITE_TIMEOUT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envAuthMethod            = "AUTH_METHOD"
	envAPIKeys               = "API_KEYS"
	envJWTSecretKey          = "JWT_SECRET_KEY"
	envJWTAlgorithm          = "JWT_ALGORITHM"
	envJWTExpireMinutes      = "JWT_ACCESS_TOKEN_EXPIRE_MINUTES"
	envJWTTestUsers          = "JWT_TEST_USERS"
	envCORSOrigins           = "CORS_ORIGINS"
	envAllowedSWAHosts       = "ALLOWED_SWA_HOSTS"
	envCloudflareIPv4URL     = "CLOUDFLARE_IPV4_URL"
	envCloudflareIPv6URL     = "CLOUDFLARE_IPV6_URL"
	envCloudflareTimeout     = "CLOUDFLARE_FETCH_TIMEOUT"
	envEnablePprof           = "ENABLE_PPROF"
)

const (
	defaultServerPort          = "8080"
	defaultServerReadTimeout   = 10 * time.Second
	defaultServerWriteTimeout  = 10 * time.Second
	defaultServerShutdown      = 10 * time.Second
	defaultJWTAlgorithm        = "HS256"
	defaultJWTExpireMinutes    = 30
	defaultCloudflareIPv4URL   = "https://www.cloudflare.com/ips-v4/"
	defaultCloudflareIPv6URL   = "https://www.cloudflare.com/ips-v6/"
	defaultCloudflareTimeout   = 5 * time.Second
	minJWTSecretLength         = 32
	errPortRequiredFmt         = "PORT must be set"
	errAPIKeysRequiredFmt      = "API_KEYS environment variable required when AUTH_METHOD=api_key"
	errAPIKeysEmptyFmt         = "API_KEYS cannot be empty when AUTH_METHOD=api_key"
	errJWTSecretRequiredFmt    = "JWT_SECRET_KEY environment variable required when AUTH_METHOD=jwt"
	errJWTSecretMinLengthFmt   = "JWT_SECRET_KEY must be at least %d characters long"
	errInvalidConfigurationFmt = "invalid configuration: %w"
)

// AuthMethod selects how inbound requests are authenticated.
type AuthMethod string

const (
	MethodNone     AuthMethod = "none"
	MethodAPIKey   AuthMethod = "api_key"
	MethodJWT      AuthMethod = "jwt"
	MethodAzureSWA AuthMethod = "azure_swa" // Azure Static Web Apps EasyAuth
	MethodAPIM     AuthMethod = "apim"      // Azure API Management (trust APIM validation)
	MethodAzureAD  AuthMethod = "azure_ad"  // Direct Azure AD/Entra ID integration
)

// ValidMethods lists every recognized AUTH_METHOD value, in the order
// reported by configuration errors.
var ValidMethods = []AuthMethod{
	MethodNone, MethodAPIKey, MethodJWT, MethodAzureSWA, MethodAPIM, MethodAzureAD,
}

// ValidJWTAlgorithms is the signing algorithm allow-list.
var ValidJWTAlgorithms = []string{
	"HS256", "HS384", "HS512",
	"RS256", "RS384", "RS512",
	"ES256", "ES384", "ES512",
}

type Config struct {
	Server     ServerConfig
	Auth       AuthConfig
	CORS       CORSConfig
	Cloudflare CloudflareConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	EnablePprof     bool
}

// AuthConfig is the validated authentication snapshot. It is read-only
// after Load returns; the key set and test-user map are never mutated.
type AuthConfig struct {
	Method       AuthMethod
	APIKeys      []string
	JWTSecret    string
	JWTAlgorithm string
	JWTExpiry    time.Duration

	// TestUsers maps username to Argon2 password hash. Development only.
	TestUsers map[string]string

	// AllowedSWAHosts restricts X-Forwarded-Host when Method is none.
	AllowedSWAHosts []string
}

type CORSConfig struct {
	Origins []string
}

type CloudflareConfig struct {
	IPv4URL      string
	IPv6URL      string
	FetchTimeout time.Duration
}

func Load() (*Config, error) {
	authCfg, err := loadAuthConfig()
	if err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ReadTimeout:     getDurationEnv(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    getDurationEnv(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: getDurationEnv(envServerShutdownTimeout, defaultServerShutdown),
			EnablePprof:     getEnv(envEnablePprof, "false") == "true",
		},
		Auth: *authCfg,
		CORS: CORSConfig{
			Origins: splitCSV(os.Getenv(envCORSOrigins)),
		},
		Cloudflare: CloudflareConfig{
			IPv4URL:      getEnv(envCloudflareIPv4URL, defaultCloudflareIPv4URL),
			IPv6URL:      getEnv(envCloudflareIPv6URL, defaultCloudflareIPv6URL),
			FetchTimeout: getDurationEnv(envCloudflareTimeout, defaultCloudflareTimeout),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	return cfg, nil
}

func loadAuthConfig() (*AuthConfig, error) {
	method, err := parseAuthMethod(os.Getenv(envAuthMethod))
	if err != nil {
		return nil, err
	}

	cfg := &AuthConfig{
		Method:          method,
		JWTExpiry:       time.Duration(getIntEnv(envJWTExpireMinutes, defaultJWTExpireMinutes)) * time.Minute,
		AllowedSWAHosts: splitCSV(os.Getenv(envAllowedSWAHosts)),
	}

	switch method {
	case MethodAPIKey:
		keys, err := parseAPIKeys(os.Getenv(envAPIKeys))
		if err != nil {
			return nil, err
		}
		cfg.APIKeys = keys

	case MethodJWT:
		secret := strings.TrimSpace(os.Getenv(envJWTSecretKey))
		if secret == "" {
			return nil, fmt.Errorf(errJWTSecretRequiredFmt)
		}
		if len(secret) < minJWTSecretLength {
			return nil, fmt.Errorf(errJWTSecretMinLengthFmt, minJWTSecretLength)
		}
		cfg.JWTSecret = secret

		algorithm, err := parseJWTAlgorithm(os.Getenv(envJWTAlgorithm))
		if err != nil {
			return nil, err
		}
		cfg.JWTAlgorithm = algorithm

		users, err := parseTestUsers(os.Getenv(envJWTTestUsers))
		if err != nil {
			return nil, err
		}
		cfg.TestUsers = users
	}

	return cfg, nil
}

func parseAuthMethod(raw string) (AuthMethod, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return MethodNone, nil
	}

	for _, m := range ValidMethods {
		if AuthMethod(value) == m {
			return m, nil
		}
	}

	return "", fmt.Errorf(messages.invalidAuthMethod(value))
}

func parseAPIKeys(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf(errAPIKeysRequiredFmt)
	}

	keys := splitCSV(raw)
	if len(keys) == 0 {
		return nil, fmt.Errorf(errAPIKeysEmptyFmt)
	}

	return keys, nil
}

func parseJWTAlgorithm(raw string) (string, error) {
	algorithm := strings.ToUpper(strings.TrimSpace(raw))
	if algorithm == "" {
		return defaultJWTAlgorithm, nil
	}

	for _, valid := range ValidJWTAlgorithms {
		if algorithm == valid {
			return algorithm, nil
		}
	}

	return "", fmt.Errorf(messages.invalidJWTAlgorithm(algorithm))
}

func parseTestUsers(raw string) (map[string]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]string{}, nil
	}

	var decoded interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf(messages.invalidTestUsersJSON(err))
	}

	object, ok := decoded.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf(messages.testUsersNotObject())
	}

	users := make(map[string]string, len(object))
	for username, value := range object {
		hash, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf(messages.testUsersNotObject())
		}
		users[username] = hash
	}

	return users, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf(errPortRequiredFmt)
	}

	return nil
}

// splitCSV splits a comma-separated value, trimming whitespace and
// discarding empty entries.
func splitCSV(raw string) []string {
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
