package config

import "time"

// TokenConfig carries the token lifetimes and signing secret used by the
// development backend. The production backend enforces its own expiry; the
// console never decodes tokens locally.
type TokenConfig interface {
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetSigningSecret() string
}

type Tokens struct{}

var _ TokenConfig = Tokens{}

func (Tokens) GetAccessTokenExpiry() time.Duration {
	return 5 * time.Minute
}

func (Tokens) GetRefreshTokenExpiry() time.Duration {
	return 24 * time.Hour
}

func (Tokens) GetSigningSecret() string {
	return GetEnv("TOKEN_SIGNING_SECRET", "dev-only-signing-secret")
}
