package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jotapp/jot/internal/jot/domain"
	"github.com/jotapp/jot/internal/jot/store"
	"github.com/jotapp/jot/pkg/cryptox"
	"github.com/jotapp/jot/pkg/jwtx"
	"github.com/jotapp/jot/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidRequest     = errors.New("invalid_request")
)

// AuthService authenticates users and issues signed access tokens.
type AuthService struct {
	Store    store.Store
	Codec    *jwtx.Codec
	TokenTTL time.Duration
}

// Login verifies a username/password pair and returns a signed token on success.
//
// Lookup misses and password mismatches both collapse to ErrInvalidCredentials
// so callers cannot distinguish which usernames exist. Unexpected store errors
// pass through unchanged.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", ErrInvalidRequest
	}

	user, err := s.Store.Users().GetUserByName(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		log.Error("login: user lookup failed", "error", err)
		return "", err
	}

	if cryptox.VerifyPassword(password, user.PasswordHash) != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// IssueTokenFor signs a token for an already authenticated user.
func (s *AuthService) IssueTokenFor(user domain.User) (string, error) {
	return s.issueToken(user)
}

// ValidateToken verifies a raw token and loads the user it belongs to.
// Signature, expiry, and subject failures all return jwtx.ErrInvalidToken.
func (s *AuthService) ValidateToken(ctx context.Context, raw string) (domain.User, error) {
	claims, err := s.Codec.Verify(raw)
	if err != nil {
		return domain.User{}, err
	}

	userID, err := claims.UserID()
	if err != nil {
		return domain.User{}, err
	}

	return s.Store.Users().GetUserByID(ctx, userID)
}

func (s *AuthService) issueToken(user domain.User) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultTokenTTL
	}

	return s.Codec.Sign(jwtx.NewClaims(user.ID, ttl, time.Now()))
}
