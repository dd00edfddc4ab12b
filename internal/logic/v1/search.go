package v1

import (
	"context"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/samber/lo"

	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/pkg/errors"
	"github.com/breeew/folio-api/pkg/i18n"
	"github.com/breeew/folio-api/pkg/types"
)

type sectionKeywords struct {
	match    types.SectionMatch
	keywords []string
}

// 按顺序匹配，先命中者优先
var sectionIndex = []sectionKeywords{
	{types.SectionMatch{Name: "校园生活", Path: "/campus"}, []string{"校园生活", "campus"}},
	{types.SectionMatch{Name: "闯荡世界", Path: "/world"}, []string{"闯荡世界", "world", "adventure"}},
	{types.SectionMatch{Name: "知识积累", Path: "/knowledge"}, []string{"知识积累", "knowledge"}},
	{types.SectionMatch{Name: "留言簿", Path: "/guestbook"}, []string{"留言簿", "guestbook"}},
	{types.SectionMatch{Name: "关于小田", Path: "/profile"}, []string{"关于", "profile"}},
}

type SearchLogic struct {
	ctx  context.Context
	core *core.Core
}

func NewSearchLogic(ctx context.Context, core *core.Core) *SearchLogic {
	return &SearchLogic{
		ctx:  ctx,
		core: core,
	}
}

func containsFold(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}

func matchSection(lowerQuery string) *types.SectionMatch {
	for _, v := range sectionIndex {
		if lo.ContainsBy(v.keywords, func(keyword string) bool {
			return strings.Contains(keyword, lowerQuery)
		}) {
			match := v.match
			return &match
		}
	}
	return nil
}

func (l *SearchLogic) Search(query string) (*types.SearchResult, error) {
	res := &types.SearchResult{
		Query:     query,
		Campus:    []types.Album{},
		Adventure: []types.Album{},
		Knowledge: []types.KnowledgeItem{},
	}
	if strings.TrimSpace(query) == "" {
		return res, nil
	}

	// 只在判空时去掉空白，匹配时保留原样
	lowerQ := strings.ToLower(query)
	res.Language = whatlanggo.DetectLang(query).Iso6391()
	res.SectionMatch = matchSection(lowerQ)

	albumFilter := func(item types.Album, _ int) bool {
		return containsFold(item.Title, lowerQ) || containsFold(item.Description, lowerQ) || containsFold(item.Location, lowerQ)
	}
	for _, section := range []types.AlbumSection{types.SECTION_CAMPUS, types.SECTION_WORLD} {
		albums, err := albumCollection(l.core, section).Load(l.ctx)
		if err != nil {
			return nil, errors.New("SearchLogic.Search.LoadAlbums", i18n.ERROR_INTERNAL, err)
		}
		if section == types.SECTION_CAMPUS {
			res.Campus = lo.Filter(albums, albumFilter)
		} else {
			res.Adventure = lo.Filter(albums, albumFilter)
		}
	}

	knowledge, err := knowledgeCollection(l.core).Load(l.ctx)
	if err != nil {
		return nil, errors.New("SearchLogic.Search.LoadKnowledge", i18n.ERROR_INTERNAL, err)
	}
	res.Knowledge = lo.Filter(knowledge, func(item types.KnowledgeItem, _ int) bool {
		return containsFold(item.Title, lowerQ) || containsFold(item.Content, lowerQ) || lo.ContainsBy(item.Tags, func(tag string) bool {
			return containsFold(tag, lowerQ)
		})
	})
	return res, nil
}
