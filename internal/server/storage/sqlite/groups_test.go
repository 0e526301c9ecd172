package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vincewoo/splitwiser/internal/server/storage"
	"github.com/vincewoo/splitwiser/pkg/api"
)

func TestGroupStorage_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	created, err := s.CreateGroup(ctx, userID, api.GroupRequest{
		Name:    "Roommates",
		Members: []string{"alice", "bob", "carol"},
	})
	require.NoError(t, err)
	assert.Equal(t, "1", created.ID)
	assert.Equal(t, int64(1), created.Version)

	got, err := s.GetGroup(ctx, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, "Roommates", got.Name)
	assert.Equal(t, []string{"alice", "bob", "carol"}, got.Members)
}

func TestGroupStorage_EmptyMembers(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	created, err := s.CreateGroup(ctx, userID, api.GroupRequest{Name: "Solo"})
	require.NoError(t, err)

	got, err := s.GetGroup(ctx, userID, mustParseID(t, created.ID))
	require.NoError(t, err)
	assert.Empty(t, got.Members)
}

func TestGroupStorage_UpdateBumpsVersion(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	created, err := s.CreateGroup(ctx, userID, api.GroupRequest{Name: "Trip", Members: []string{"alice"}})
	require.NoError(t, err)
	id := mustParseID(t, created.ID)

	updated, err := s.UpdateGroup(ctx, userID, id, api.GroupRequest{
		Name:    "Trip 2026",
		Members: []string{"alice", "bob"},
		Version: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, "Trip 2026", updated.Name)
	assert.Equal(t, []string{"alice", "bob"}, updated.Members)

	_, err = s.UpdateGroup(ctx, userID, id, api.GroupRequest{Name: "Stale", Version: 1})
	assert.ErrorIs(t, err, storage.ErrVersionConflict)
}

func TestGroupStorage_UpdateNotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	_, err := s.UpdateGroup(ctx, userID, 7, api.GroupRequest{Name: "Ghost", Version: 1})
	assert.ErrorIs(t, err, storage.ErrGroupNotFound)
}

func TestGroupStorage_DeleteAndList(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	first, err := s.CreateGroup(ctx, userID, api.GroupRequest{Name: "First"})
	require.NoError(t, err)
	_, err = s.CreateGroup(ctx, userID, api.GroupRequest{Name: "Second"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteGroup(ctx, userID, mustParseID(t, first.ID)))

	groups, err := s.ListGroups(ctx, userID)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Second", groups[0].Name)

	err = s.DeleteGroup(ctx, userID, mustParseID(t, first.ID))
	assert.ErrorIs(t, err, storage.ErrGroupNotFound)
}
