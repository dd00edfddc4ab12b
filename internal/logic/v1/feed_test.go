package v1_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/breeew/folio-api/internal/logic/v1"
	"github.com/breeew/folio-api/internal/seed"
	"github.com/breeew/folio-api/pkg/types"
)

func TestFeedIsSortedUnion(t *testing.T) {
	c := setupCore(t)
	ctx := adminCtx(t, c)

	world, err := v1.NewAlbumLogic(ctx, c, types.SECTION_WORLD)
	require.NoError(t, err)
	created, err := world.CreateAlbum(v1.CreateAlbumArgs{Title: "冰岛", Location: "雷克雅未克", CoverURL: "https://picsum.photos/seed/ice/800/800"})
	require.NoError(t, err)

	feed, err := v1.NewFeedLogic(ctx, c).Feed()
	require.NoError(t, err)

	total := len(seed.CampusAlbums()) + len(seed.WorldAlbums()) + 1 + len(seed.KnowledgeItems())
	require.Len(t, feed, total)

	counts := map[types.FeedType]int{}
	for i, item := range feed {
		counts[item.Type]++
		if i > 0 {
			assert.GreaterOrEqual(t, feed[i-1].Date(), item.Date())
		}
	}
	assert.Equal(t, len(seed.CampusAlbums()), counts[types.FEED_TYPE_CAMPUS])
	assert.Equal(t, len(seed.WorldAlbums())+1, counts[types.FEED_TYPE_ADVENTURE])
	assert.Equal(t, len(seed.KnowledgeItems()), counts[types.FEED_TYPE_KNOWLEDGE])

	// 今天新建的相册日期最大
	assert.Equal(t, types.FEED_TYPE_ADVENTURE, feed[0].Type)
	assert.Equal(t, *created, feed[0].Data)
}

func TestFeedStableForEqualDates(t *testing.T) {
	c := setupCore(t)
	ctx := adminCtx(t, c)

	knowledge := v1.NewKnowledgeLogic(ctx, c)
	first, err := knowledge.CreateKnowledge(v1.CreateKnowledgeArgs{Title: "first", Content: "c"})
	require.NoError(t, err)
	second, err := knowledge.CreateKnowledge(v1.CreateKnowledgeArgs{Title: "second", Content: "c"})
	require.NoError(t, err)
	require.Equal(t, first.Date, second.Date)

	feed, err := v1.NewFeedLogic(ctx, c).Feed()
	require.NoError(t, err)
	// 同一天的条目保持集合内的顺序，后创建的在前
	assert.Equal(t, *second, feed[0].Data)
	assert.Equal(t, *first, feed[1].Data)
}
