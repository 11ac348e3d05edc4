package devbackend

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/oleastore/go-admin-console/internal/config"
	"github.com/oleastore/go-admin-console/users"
	"github.com/pkg/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// Token kinds carried in the token_type claim. A refresh credential can
// never be replayed as an access credential.
const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// TokenIssuer mints and verifies the HS256 credential pair the development
// backend hands out.
type TokenIssuer struct {
	config config.TokenConfig
}

func NewTokenIssuer(cfg config.TokenConfig) *TokenIssuer {
	return &TokenIssuer{config: cfg}
}

// TokenClaims is what a verified credential proves.
type TokenClaims struct {
	UserID string
	Email  string
	Role   users.RoleType
}

// CreateAccessToken mints a short-lived access credential for the user.
func (ti *TokenIssuer) CreateAccessToken(user *users.User) (string, error) {
	return ti.create(user, tokenTypeAccess, ti.config.GetAccessTokenExpiry())
}

// CreateRefreshToken mints the longer-lived refresh credential.
func (ti *TokenIssuer) CreateRefreshToken(user *users.User) (string, error) {
	return ti.create(user, tokenTypeRefresh, ti.config.GetRefreshTokenExpiry())
}

func (ti *TokenIssuer) create(user *users.User, tokenType string, expiry time.Duration) (string, error) {
	claims := jwtlib.MapClaims{
		"sub":        user.ID,
		"email":      user.Email,
		"role":       string(user.Role),
		"token_type": tokenType,
		"iat":        NowTimeFunc().Unix(),
		"exp":        NowTimeFunc().Add(expiry).Unix(),
		"jti":        uuid.New().String(),
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(ti.config.GetSigningSecret()))
	if err != nil {
		return "", errors.Wrap(err, "[TokenIssuer.create] signing")
	}
	return signed, nil
}

// VerifyAccessToken validates an access credential and returns its claims.
func (ti *TokenIssuer) VerifyAccessToken(rawToken string) (*TokenClaims, error) {
	return ti.verify(rawToken, tokenTypeAccess)
}

// VerifyRefreshToken validates a refresh credential and returns its claims.
func (ti *TokenIssuer) VerifyRefreshToken(rawToken string) (*TokenClaims, error) {
	return ti.verify(rawToken, tokenTypeRefresh)
}

func (ti *TokenIssuer) verify(rawToken, wantType string) (*TokenClaims, error) {
	token, err := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }),
	).Parse(rawToken, func(t *jwtlib.Token) (interface{}, error) {
		return []byte(ti.config.GetSigningSecret()), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "[TokenIssuer.verify] parse")
	}

	claims, ok := token.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.New("[TokenIssuer.verify] unexpected claims shape")
	}
	if tokenType, _ := claims["token_type"].(string); tokenType != wantType {
		return nil, errors.Errorf("[TokenIssuer.verify] token type %q, want %q", tokenType, wantType)
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return &TokenClaims{UserID: sub, Email: email, Role: users.RoleType(role)}, nil
}
