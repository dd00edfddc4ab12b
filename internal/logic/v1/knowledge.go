package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/internal/core/srv"
	"github.com/breeew/folio-api/internal/store"
	"github.com/breeew/folio-api/pkg/errors"
	"github.com/breeew/folio-api/pkg/i18n"
	"github.com/breeew/folio-api/pkg/types"
	"github.com/breeew/folio-api/pkg/utils"
)

const KNOWLEDGE_DATE_LAYOUT = "2006-01-02"

// Tags 兼容逗号分隔的字符串与字符串数组两种写法
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*t = utils.NormalizeTags(list)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = utils.SplitTags(raw)
	return nil
}

type KnowledgeLogic struct {
	VisitorInfo
	ctx  context.Context
	core *core.Core
	coll *store.Collection[[]types.KnowledgeItem]
}

func NewKnowledgeLogic(ctx context.Context, core *core.Core) *KnowledgeLogic {
	l := &KnowledgeLogic{
		ctx:         ctx,
		core:        core,
		coll:        knowledgeCollection(core),
		VisitorInfo: setupVisitorInfo(ctx, core),
	}

	return l
}

func (l *KnowledgeLogic) Categories() []string {
	return types.KnowledgeCategories
}

// ListKnowledge category 为空或“全部”时返回全部
func (l *KnowledgeLogic) ListKnowledge(category string) ([]types.KnowledgeItem, error) {
	list, err := l.coll.Load(l.ctx)
	if err != nil {
		return nil, errors.New("KnowledgeLogic.ListKnowledge.Load", i18n.ERROR_INTERNAL, err)
	}

	if category == "" || category == types.KNOWLEDGE_CATEGORY_ALL {
		return list, nil
	}
	return lo.Filter(list, func(item types.KnowledgeItem, _ int) bool {
		return item.Category == category
	}), nil
}

func (l *KnowledgeLogic) GetKnowledge(id string) (*types.KnowledgeItem, error) {
	list, err := l.ListKnowledge("")
	if err != nil {
		return nil, errors.Trace("KnowledgeLogic.GetKnowledge", err)
	}

	item, exist := findItem(list, id)
	if !exist {
		return nil, errors.New("KnowledgeLogic.GetKnowledge.findItem", i18n.ERROR_NOTFOUND, nil).Code(http.StatusNotFound)
	}
	return &item, nil
}

type CreateKnowledgeArgs struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Tags     Tags   `json:"tags"`
	ImageURL string `json:"image_url"`
}

func (l *KnowledgeLogic) CreateKnowledge(args CreateKnowledgeArgs) (*types.KnowledgeItem, error) {
	if err := l.Identification(srv.PermissionEdit); err != nil {
		return nil, errors.Trace("KnowledgeLogic.CreateKnowledge", err)
	}

	args.Title = strings.TrimSpace(args.Title)
	if args.Title == "" || strings.TrimSpace(args.Content) == "" {
		return nil, errors.New("KnowledgeLogic.CreateKnowledge.args", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	category := lo.Ternary(args.Category == "", types.KNOWLEDGE_CATEGORY_DEFAULT, args.Category)
	if category == types.KNOWLEDGE_CATEGORY_ALL || !lo.Contains(types.KnowledgeCategories, category) {
		return nil, errors.New("KnowledgeLogic.CreateKnowledge.category", i18n.ERROR_INVALID_CATEGORY, nil).Code(http.StatusBadRequest)
	}

	item := types.KnowledgeItem{
		ID:       utils.GenSpecIDStr(),
		Title:    args.Title,
		Content:  args.Content,
		Date:     time.Now().Format(KNOWLEDGE_DATE_LAYOUT),
		Category: category,
		Tags:     utils.NormalizeTags(args.Tags),
		ImageURL: strings.TrimSpace(args.ImageURL),
		Likes:    0,
	}

	if err := prependItem(l.ctx, l.coll, item); err != nil {
		return nil, errors.New("KnowledgeLogic.CreateKnowledge.prependItem", i18n.ERROR_INTERNAL, err)
	}
	return &item, nil
}

func (l *KnowledgeLogic) DeleteKnowledge(id string) error {
	if err := l.Identification(srv.PermissionEdit); err != nil {
		return errors.Trace("KnowledgeLogic.DeleteKnowledge", err)
	}
	if err := removeItem(l.ctx, l.coll, id); err != nil {
		return errors.Trace("KnowledgeLogic.DeleteKnowledge", err)
	}
	return nil
}

func (l *KnowledgeLogic) LikeKnowledge(id string) (*types.KnowledgeItem, error) {
	if err := l.Identification(srv.PermissionLike); err != nil {
		return nil, errors.Trace("KnowledgeLogic.LikeKnowledge", err)
	}

	item, err := likeItem(l.ctx, l.core, l.VisitorID(), types.LIKE_SCOPE_KNOWLEDGE, l.coll, id, func(k *types.KnowledgeItem) {
		k.Likes++
	})
	if err != nil {
		return nil, errors.Trace("KnowledgeLogic.LikeKnowledge", err)
	}
	return &item, nil
}

func (l *KnowledgeLogic) Liked(id string) (bool, error) {
	liked, err := hasLiked(l.ctx, l.core, l.VisitorID(), types.LIKE_SCOPE_KNOWLEDGE, id)
	if err != nil {
		return false, errors.New("KnowledgeLogic.Liked", i18n.ERROR_INTERNAL, err)
	}
	return liked, nil
}
