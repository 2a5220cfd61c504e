package auth

import (
	"subnet-calculator/internal/audit"
	"subnet-calculator/internal/config"
	apperrors "subnet-calculator/pkg/errors"
	"subnet-calculator/pkg/metrics"
	"subnet-calculator/pkg/password"
)

// LoginIssuer exchanges username/password credentials for a signed
// access token. Only available when the jwt method is configured.
type LoginIssuer struct {
	cfg     config.AuthConfig
	tokens  *TokenService
	metrics *metrics.Metrics
	audit   *audit.Logger
}

func NewLoginIssuer(cfg config.AuthConfig, tokens *TokenService, auditLog *audit.Logger) *LoginIssuer {
	return &LoginIssuer{
		cfg:     cfg,
		tokens:  tokens,
		metrics: metrics.GetMetrics(),
		audit:   auditLog,
	}
}

// Login verifies the credentials against the configured user map and
// mints a token on success. An unknown username and a wrong password
// produce the same failure; the unknown-user path burns an equivalent
// hash verification so the two are not distinguishable by timing.
func (i *LoginIssuer) Login(username, plainPassword string) (string, *apperrors.AppError) {
	if i.cfg.Method != config.MethodJWT {
		return "", apperrors.NotEnabled(msgJWTNotEnabled)
	}

	hash, ok := i.cfg.TestUsers[username]
	if !ok {
		password.BurnTime(plainPassword)
		i.recordFailure(username)
		return "", apperrors.InvalidCredentials()
	}

	if !password.Verify(plainPassword, hash) {
		i.recordFailure(username)
		return "", apperrors.InvalidCredentials()
	}

	token, err := i.tokens.Mint(map[string]interface{}{"sub": username})
	if err != nil {
		return "", apperrors.InternalServer("Could not create access token", err)
	}

	i.metrics.RecordLogin(true)
	i.audit.Record(audit.Event{
		Actor:      username,
		AuthMethod: string(i.cfg.Method),
		Action:     audit.ActionLogin,
		Status:     audit.StatusSuccess,
	})

	return token, nil
}

func (i *LoginIssuer) recordFailure(username string) {
	i.metrics.RecordLogin(false)
	i.audit.Record(audit.Event{
		Actor:      username,
		AuthMethod: string(i.cfg.Method),
		Action:     audit.ActionLogin,
		Status:     audit.StatusFailure,
	})
}
