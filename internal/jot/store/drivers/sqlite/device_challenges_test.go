package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/jotapp/jot/internal/jot/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestDeviceChallengeLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	challenges := s.DeviceChallenges()

	now := time.Now().UTC()
	expiry := now.Add(10 * time.Minute)

	// Absent: reads miss, deletes are no-ops.
	_, err := challenges.GetActiveDeviceChallenge(ctx, "abc", now)
	require.ErrorIs(t, err, store.ErrNotFound)

	deleted, err := challenges.DeleteDeviceChallenge(ctx, "abc")
	require.NoError(t, err)
	require.False(t, deleted)

	// Pending after create.
	require.NoError(t, challenges.CreateDeviceChallenge(ctx, "abc", expiry))

	c, err := challenges.GetActiveDeviceChallenge(ctx, "abc", now)
	require.NoError(t, err)
	require.Equal(t, "abc", c.DeviceCode)
	require.False(t, c.Fulfilled())
	require.Equal(t, expiry.Unix(), c.ExpireDate.Unix())

	// Fulfilled after attach.
	attached, err := challenges.AttachToken(ctx, "abc", "tok", now)
	require.NoError(t, err)
	require.True(t, attached)

	c, err = challenges.GetActiveDeviceChallenge(ctx, "abc", now)
	require.NoError(t, err)
	require.True(t, c.Fulfilled())
	require.Equal(t, "tok", *c.Token)

	// Absent again after delete; a second delete reports false.
	deleted, err = challenges.DeleteDeviceChallenge(ctx, "abc")
	require.NoError(t, err)
	require.True(t, deleted)

	_, err = challenges.GetActiveDeviceChallenge(ctx, "abc", now)
	require.ErrorIs(t, err, store.ErrNotFound)

	deleted, err = challenges.DeleteDeviceChallenge(ctx, "abc")
	require.NoError(t, err)
	require.False(t, deleted)
}

func TestDeviceChallengeDuplicateCode(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	challenges := s.DeviceChallenges()

	expiry := time.Now().Add(time.Hour)
	require.NoError(t, challenges.CreateDeviceChallenge(ctx, "dup", expiry))

	err := challenges.CreateDeviceChallenge(ctx, "dup", expiry)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestDeviceChallengeExpiry(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	challenges := s.DeviceChallenges()

	now := time.Now().UTC()
	require.NoError(t, challenges.CreateDeviceChallenge(ctx, "old", now.Add(time.Minute)))

	after := now.Add(2 * time.Minute)

	// Past expire_date the row reads as absent...
	_, err := challenges.GetActiveDeviceChallenge(ctx, "old", after)
	require.ErrorIs(t, err, store.ErrNotFound)

	// ...and can no longer be fulfilled.
	attached, err := challenges.AttachToken(ctx, "old", "tok", after)
	require.NoError(t, err)
	require.False(t, attached)

	// The row physically remains until deleted or swept.
	deleted, err := challenges.DeleteDeviceChallenge(ctx, "old")
	require.NoError(t, err)
	require.True(t, deleted)
}

func TestDeleteExpiredDeviceChallenges(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	challenges := s.DeviceChallenges()

	now := time.Now().UTC()
	require.NoError(t, challenges.CreateDeviceChallenge(ctx, "expired", now.Add(-time.Minute)))
	require.NoError(t, challenges.CreateDeviceChallenge(ctx, "live", now.Add(time.Hour)))

	require.NoError(t, challenges.DeleteExpiredDeviceChallenges(ctx, now))

	// The expired row is gone for real now.
	deleted, err := challenges.DeleteDeviceChallenge(ctx, "expired")
	require.NoError(t, err)
	require.False(t, deleted)

	_, err = challenges.GetActiveDeviceChallenge(ctx, "live", now)
	require.NoError(t, err)
}

func TestAttachTokenUnknownCode(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	attached, err := s.DeviceChallenges().AttachToken(ctx, "never-created", "tok", time.Now())
	require.NoError(t, err)
	require.False(t, attached)
}
