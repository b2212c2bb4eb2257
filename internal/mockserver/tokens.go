package mockserver

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenAccess  = "access"
	tokenRefresh = "refresh"
)

var errInvalidToken = errors.New("invalid token")

type claims struct {
	UserID string `json:"uid"`
	Type   string `json:"typ"`
	jwtlib.RegisteredClaims
}

// tokenIssuer signs HS256 access and refresh tokens for mock accounts.
type tokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func (t *tokenIssuer) issue(userID, kind string) (string, error) {
	ttl := t.accessTTL
	if kind == tokenRefresh {
		ttl = t.refreshTTL
	}
	now := t.now()
	c := claims{
		UserID: userID,
		Type:   kind,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// pair issues a fresh access and refresh token.
func (t *tokenIssuer) pair(userID string) (access, refresh string, err error) {
	if access, err = t.issue(userID, tokenAccess); err != nil {
		return "", "", err
	}
	if refresh, err = t.issue(userID, tokenRefresh); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// verify returns the user id of a valid token of the given kind.
func (t *tokenIssuer) verify(token, kind string) (string, error) {
	parsed, err := jwtlib.ParseWithClaims(token, &claims{}, func(tok *jwtlib.Token) (any, error) {
		return t.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}), jwtlib.WithTimeFunc(t.now))
	if err != nil || !parsed.Valid {
		return "", errInvalidToken
	}
	c, ok := parsed.Claims.(*claims)
	if !ok || c.Type != kind || c.UserID == "" {
		return "", errInvalidToken
	}
	return c.UserID, nil
}
