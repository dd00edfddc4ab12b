package v1

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/pkg/errors"
	"github.com/breeew/folio-api/pkg/i18n"
	"github.com/breeew/folio-api/pkg/types"
)

type FeedLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewFeedLogic(ctx context.Context, core *core.Core) *FeedLogic {
	return &FeedLogic{
		ctx:  ctx,
		core: core,
	}
}

// Feed 合并两个相册栏目与知识条目，按日期字符串倒序，日期相同时保持合并顺序
func (l *FeedLogic) Feed() ([]types.FeedItem, error) {
	var feed []types.FeedItem
	for _, section := range []types.AlbumSection{types.SECTION_CAMPUS, types.SECTION_WORLD} {
		albums, err := albumCollection(l.core, section).Load(l.ctx)
		if err != nil {
			return nil, errors.New("FeedLogic.Feed.LoadAlbums", i18n.ERROR_INTERNAL, err)
		}
		feed = append(feed, lo.Map(albums, func(item types.Album, _ int) types.FeedItem {
			return types.NewFeedItem(section.FeedType(), item, item.Date)
		})...)
	}

	knowledge, err := knowledgeCollection(l.core).Load(l.ctx)
	if err != nil {
		return nil, errors.New("FeedLogic.Feed.LoadKnowledge", i18n.ERROR_INTERNAL, err)
	}
	feed = append(feed, lo.Map(knowledge, func(item types.KnowledgeItem, _ int) types.FeedItem {
		return types.NewFeedItem(types.FEED_TYPE_KNOWLEDGE, item, item.Date)
	})...)

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Date() > feed[j].Date()
	})
	if feed == nil {
		feed = []types.FeedItem{}
	}
	return feed, nil
}
