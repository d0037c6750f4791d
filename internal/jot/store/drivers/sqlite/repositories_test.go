package sqlite

import (
	"context"
	"testing"

	"github.com/jotapp/jot/internal/jot/store"
	"github.com/stretchr/testify/require"
)

func TestRepositories(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	repos := s.Repositories()

	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	dotfiles, err := repos.CreateRepository(ctx, alice, "dotfiles")
	require.NoError(t, err)
	require.NotZero(t, dotfiles.ID)
	require.Equal(t, "dotfiles", dotfiles.Name)
	require.Equal(t, alice, dotfiles.UserID)

	_, err = repos.CreateRepository(ctx, bob, "journal")
	require.NoError(t, err)

	t.Run("list all", func(t *testing.T) {
		all, err := repos.ListRepositories(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
	})

	t.Run("list by user", func(t *testing.T) {
		mine, err := repos.ListRepositoriesByUser(ctx, alice)
		require.NoError(t, err)
		require.Len(t, mine, 1)
		require.Equal(t, "dotfiles", mine[0].Name)
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := repos.GetRepositoryByID(ctx, dotfiles.ID)
		require.NoError(t, err)
		require.Equal(t, dotfiles, got)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := repos.GetRepositoryByID(ctx, 9999)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
