package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/jotapp/jot/internal/jot/domain"
	"github.com/jotapp/jot/internal/jot/store"
	"github.com/jotapp/jot/internal/jot/store/drivers/sqlite"
	"github.com/jotapp/jot/pkg/cryptox"
	"github.com/jotapp/jot/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUser(t *testing.T, s store.Store, name, password string) domain.User {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	user, err := s.Users().CreateUser(context.Background(), name, name+"@example.com", hash)
	require.NoError(t, err)
	return user
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAuthService(s store.Store) *AuthService {
	return &AuthService{
		Store: s,
		Codec: jwtx.NewCodec([]byte("test-secret")),
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	user := seedUser(t, s, "alice", "correct horse")
	svc := newAuthService(s)

	t.Run("valid credentials yield a verifiable token", func(t *testing.T) {
		token, err := svc.Login(ctx, "alice", "correct horse")
		require.NoError(t, err)

		got, err := svc.ValidateToken(ctx, token)
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)
		require.Equal(t, "alice", got.Name)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user collapses to the same error", func(t *testing.T) {
		_, err := svc.Login(ctx, "mallory", "correct horse")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty fields are rejected before any lookup", func(t *testing.T) {
		_, err := svc.Login(ctx, "", "pw")
		require.ErrorIs(t, err, ErrInvalidRequest)

		_, err = svc.Login(ctx, "alice", "")
		require.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestValidateToken(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	user := seedUser(t, s, "alice", "pw")
	svc := newAuthService(s)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken(ctx, "not-a-token")
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := &AuthService{Store: s, Codec: jwtx.NewCodec([]byte("other-secret"))}
		token, err := other.IssueTokenFor(user)
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := jwtx.NewClaims(user.ID, time.Minute, time.Now().Add(-time.Hour))
		token, err := svc.Codec.Sign(claims)
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	})

	t.Run("valid token for an unknown user misses", func(t *testing.T) {
		token, err := svc.IssueTokenFor(domain.User{ID: 9999})
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
