package idmap

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vincewoo/splitwiser/internal/client/storage/boltdb"
	"github.com/vincewoo/splitwiser/internal/models"
)

func newTestResolver(t *testing.T) (*Resolver, *boltdb.Storage) {
	t.Helper()

	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "idmap_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, store.Close()) })

	return NewResolver(store), store
}

func saveMapping(t *testing.T, store *boltdb.Storage, tempID, serverID string, kind models.EntityKind) {
	t.Helper()
	require.NoError(t, store.SaveMapping(context.Background(), &models.IDMapping{
		TempID:     tempID,
		ServerID:   serverID,
		EntityKind: kind,
		CreatedAt:  time.Now(),
	}))
}

func TestResolveTempIDs_ReplacesMappedIDs(t *testing.T) {
	ctx := context.Background()
	resolver, store := newTestResolver(t)

	tempGroup := models.NewTempID()
	saveMapping(t, store, tempGroup, "42", models.EntityGroup)

	payload, err := json.Marshal(map[string]any{
		"description": "Lunch",
		"amount":      1200,
		"group_id":    tempGroup,
	})
	require.NoError(t, err)

	resolved, err := resolver.ResolveTempIDs(ctx, payload)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(resolved, &got))
	assert.Equal(t, "42", got["group_id"])
	assert.Equal(t, "Lunch", got["description"])
}

func TestResolveTempIDs_UnmappedLeftAsIs(t *testing.T) {
	ctx := context.Background()
	resolver, _ := newTestResolver(t)

	tempGroup := models.NewTempID()
	payload, err := json.Marshal(map[string]any{"group_id": tempGroup})
	require.NoError(t, err)

	resolved, err := resolver.ResolveTempIDs(ctx, payload)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(resolved, &got))
	assert.Equal(t, tempGroup, got["group_id"])
}

func TestResolveTempIDs_WalksNestedStructures(t *testing.T) {
	ctx := context.Background()
	resolver, store := newTestResolver(t)

	tempA := models.NewTempID()
	tempB := models.NewTempID()
	saveMapping(t, store, tempA, "7", models.EntityExpense)
	saveMapping(t, store, tempB, "8", models.EntityExpense)

	payload, err := json.Marshal(map[string]any{
		"items": []any{tempA, "plain string", tempB},
		"nested": map[string]any{
			"ref": tempA,
		},
	})
	require.NoError(t, err)

	resolved, err := resolver.ResolveTempIDs(ctx, payload)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(resolved, &got))

	items := got["items"].([]any)
	assert.Equal(t, "7", items[0])
	assert.Equal(t, "plain string", items[1])
	assert.Equal(t, "8", items[2])

	nested := got["nested"].(map[string]any)
	assert.Equal(t, "7", nested["ref"])
}

func TestResolveTempIDs_EmptyPayload(t *testing.T) {
	ctx := context.Background()
	resolver, _ := newTestResolver(t)

	resolved, err := resolver.ResolveTempIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, resolved)
}

func TestResolveEntityID_ServerIDPassesThrough(t *testing.T) {
	ctx := context.Background()
	resolver, _ := newTestResolver(t)

	id, err := resolver.ResolveEntityID(ctx, "42", models.EntityExpense)
	require.NoError(t, err)
	assert.Equal(t, "42", id)
}

func TestResolveEntityID_MappedTempID(t *testing.T) {
	ctx := context.Background()
	resolver, store := newTestResolver(t)

	tempID := models.NewTempID()
	saveMapping(t, store, tempID, "13", models.EntityGroup)

	id, err := resolver.ResolveEntityID(ctx, tempID, models.EntityGroup)
	require.NoError(t, err)
	assert.Equal(t, "13", id)
}

func TestResolveEntityID_UnmappedIsHardFailure(t *testing.T) {
	ctx := context.Background()
	resolver, _ := newTestResolver(t)

	_, err := resolver.ResolveEntityID(ctx, models.NewTempID(), models.EntityExpense)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolvedReference)
}
