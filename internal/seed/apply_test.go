package seed_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breeew/folio-api/internal/seed"
	"github.com/breeew/folio-api/internal/store/kvstore"
	"github.com/breeew/folio-api/pkg/types"
)

func TestApply(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()

	// 已有的留言不能被示例数据覆盖
	existing, err := json.Marshal([]types.GuestbookEntry{{ID: "g-1", Author: "路人", Content: "hi"}})
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, types.KEY_GUESTBOOK_ENTRIES, existing))

	written, err := seed.Apply(ctx, kv)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		types.SECTION_CAMPUS.StorageKey(),
		types.SECTION_WORLD.StorageKey(),
		types.KEY_KNOWLEDGE_ITEMS,
		types.KEY_PROFILE_DATA,
	}, written)

	raw, err := kv.Get(ctx, types.KEY_GUESTBOOK_ENTRIES)
	require.NoError(t, err)
	assert.JSONEq(t, string(existing), string(raw))

	raw, err = kv.Get(ctx, types.SECTION_CAMPUS.StorageKey())
	require.NoError(t, err)
	var albums []types.Album
	require.NoError(t, json.Unmarshal(raw, &albums))
	assert.Len(t, albums, len(seed.CampusAlbums()))

	written, err = seed.Apply(ctx, kv)
	require.NoError(t, err)
	assert.Empty(t, written)
}
