package v1

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/samber/lo"

	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/internal/seed"
	"github.com/breeew/folio-api/internal/store"
	"github.com/breeew/folio-api/pkg/errors"
	"github.com/breeew/folio-api/pkg/i18n"
	"github.com/breeew/folio-api/pkg/types"
)

const LIKED_MARKER = "true"

func albumCollection(core *core.Core, section types.AlbumSection) *store.Collection[[]types.Album] {
	return store.NewCollection(core.Store(), section.StorageKey(), func() []types.Album {
		return seed.Albums(section)
	})
}

func knowledgeCollection(core *core.Core) *store.Collection[[]types.KnowledgeItem] {
	return store.NewCollection(core.Store(), types.KEY_KNOWLEDGE_ITEMS, seed.KnowledgeItems)
}

func guestbookCollection(core *core.Core) *store.Collection[[]types.GuestbookEntry] {
	return store.NewCollection(core.Store(), types.KEY_GUESTBOOK_ENTRIES, seed.GuestbookEntries)
}

func profileCollection(core *core.Core) *store.Collection[types.ProfileData] {
	return store.NewCollection(core.Store(), types.KEY_PROFILE_DATA, seed.Profile)
}

func findItem[T types.Likeable](items []T, id string) (T, bool) {
	return lo.Find(items, func(item T) bool {
		return item.GetID() == id
	})
}

// prependItem 新内容总是放在集合最前面
func prependItem[T any](ctx context.Context, coll *store.Collection[[]T], item T) error {
	_, err := coll.Mutate(ctx, func(items []T) ([]T, error) {
		return append([]T{item}, items...), nil
	})
	return err
}

// removeItem 只过滤掉 id 对应的一条，其余保持原有顺序
func removeItem[T types.Likeable](ctx context.Context, coll *store.Collection[[]T], id string) error {
	_, err := coll.Mutate(ctx, func(items []T) ([]T, error) {
		if _, exist := findItem(items, id); !exist {
			return nil, errors.New("removeItem.findItem", i18n.ERROR_NOTFOUND, nil).Code(http.StatusNotFound)
		}
		return lo.Reject(items, func(item T, _ int) bool {
			return item.GetID() == id
		}), nil
	})
	if err != nil {
		return errors.Trace("removeItem", err)
	}
	return nil
}

// likeItem 点赞标记在集合锁内检查与写入，同一访客对同一条内容最多计数一次
func likeItem[T types.Likeable](ctx context.Context, core *core.Core, visitorID string, scope types.LikeScope, coll *store.Collection[[]T], id string, incr func(*T)) (T, error) {
	var liked T
	if visitorID == "" {
		return liked, errors.New("likeItem.visitorID", i18n.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized)
	}

	var (
		kv        = core.Store()
		markerKey = types.VisitorLikeKey(visitorID, scope, id)
		marked    bool
	)
	_, err := coll.Mutate(ctx, func(items []T) ([]T, error) {
		_, idx, exist := lo.FindIndexOf(items, func(item T) bool {
			return item.GetID() == id
		})
		if !exist {
			return nil, errors.New("likeItem.FindIndexOf", i18n.ERROR_NOTFOUND, nil).Code(http.StatusNotFound)
		}

		if _, err := kv.Get(ctx, markerKey); err == nil {
			return nil, errors.New("likeItem.Marker", i18n.ERROR_LIKE_DUPLICATED, nil).Code(http.StatusConflict)
		} else if !store.IsNotFound(err) {
			return nil, errors.New("likeItem.Marker.Get", i18n.ERROR_INTERNAL, err)
		}

		if err := kv.Set(ctx, markerKey, []byte(LIKED_MARKER)); err != nil {
			return nil, errors.New("likeItem.Marker.Set", i18n.ERROR_INTERNAL, err)
		}
		marked = true

		incr(&items[idx])
		liked = items[idx]
		return items, nil
	})
	if err != nil {
		if marked {
			// 计数没有写回，撤销标记以便访客重试
			if derr := kv.Delete(ctx, markerKey); derr != nil {
				slog.Error("failed to rollback like marker", slog.String("key", markerKey), slog.String("error", derr.Error()))
			}
		}
		return liked, errors.Trace("likeItem", err)
	}

	core.Metrics().Likes.WithLabelValues(string(scope)).Inc()
	return liked, nil
}

// hasLiked 供列表接口标记当前访客的点赞状态
func hasLiked(ctx context.Context, core *core.Core, visitorID string, scope types.LikeScope, id string) (bool, error) {
	if visitorID == "" {
		return false, nil
	}
	_, err := core.Store().Get(ctx, types.VisitorLikeKey(visitorID, scope, id))
	if err != nil {
		if store.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
