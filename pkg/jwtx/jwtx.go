// Package jwtx wraps golang-jwt with the small HS256 surface this service
// needs: issue a signed, time-bound token for a user id and verify it back
// into claims.
package jwtx

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the default lifetime for issued bearer tokens. There is
// no refresh flow; the token in the cookie is the session.
const DefaultTokenTTL = 90 * 24 * time.Hour

// ErrInvalidToken is returned for every verification failure: malformed
// structure, bad signature, expired token. Callers deliberately cannot tell
// which, so the failure mode leaks nothing to the client.
var ErrInvalidToken = errors.New("jwtx: invalid token")

// Claims are the access-token claims. Only registered claims are used:
// sub carries the decimal user id, iat/exp bound the validity window.
type Claims struct {
	jwt.RegisteredClaims
}

// NewClaims builds claims for a user id with the given TTL, anchored at now.
func NewClaims(userID int64, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// UserID parses the subject claim back into a numeric user id.
func (c Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// Codec signs and verifies HS256 tokens with a single process-wide secret.
type Codec struct {
	secret []byte
}

// NewCodec returns a Codec for the given shared secret.
func NewCodec(secret []byte) *Codec {
	return &Codec{secret: secret}
}

// Sign produces a compact serialized JWT for the claims.
func (c *Codec) Sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks signature and expiry in one step and returns the claims.
// Any failure collapses into ErrInvalidToken.
func (c *Codec) Verify(raw string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
