package v1

import (
	"context"
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

const GUESTBOOK_DATE_LAYOUT = "2006-01-02 15:04"

type GuestbookLogic struct {
	VisitorInfo
	ctx  context.Context
	core *core.Core
	coll *store.Collection[[]types.GuestbookEntry]
}

func NewGuestbookLogic(ctx context.Context, core *core.Core) *GuestbookLogic {
	l := &GuestbookLogic{
		ctx:         ctx,
		core:        core,
		coll:        guestbookCollection(core),
		VisitorInfo: setupVisitorInfo(ctx, core),
	}

	return l
}

func (l *GuestbookLogic) ListEntries() ([]types.GuestbookEntry, error) {
	list, err := l.coll.Load(l.ctx)
	if err != nil {
		return nil, errors.New("GuestbookLogic.ListEntries.Load", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

// CreateEntry 留言对所有访客开放
func (l *GuestbookLogic) CreateEntry(author, content string) (*types.GuestbookEntry, error) {
	author = strings.TrimSpace(author)
	if author == "" || strings.TrimSpace(content) == "" {
		return nil, errors.New("GuestbookLogic.CreateEntry.args", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	entry := types.GuestbookEntry{
		ID:      utils.GenSpecIDStr(),
		Author:  author,
		Content: content,
		Date:    time.Now().Format(GUESTBOOK_DATE_LAYOUT),
		Likes:   0,
		Replies: []types.GuestbookReply{},
	}

	if err := prependItem(l.ctx, l.coll, entry); err != nil {
		return nil, errors.New("GuestbookLogic.CreateEntry.prependItem", i18n.ERROR_INTERNAL, err)
	}
	return &entry, nil
}

func (l *GuestbookLogic) DeleteEntry(id string) error {
	if err := l.Identification(srv.PermissionEdit); err != nil {
		return errors.Trace("GuestbookLogic.DeleteEntry", err)
	}
	if err := removeItem(l.ctx, l.coll, id); err != nil {
		return errors.Trace("GuestbookLogic.DeleteEntry", err)
	}
	return nil
}

func (l *GuestbookLogic) LikeEntry(id string) (*types.GuestbookEntry, error) {
	if err := l.Identification(srv.PermissionLike); err != nil {
		return nil, errors.Trace("GuestbookLogic.LikeEntry", err)
	}

	entry, err := likeItem(l.ctx, l.core, l.VisitorID(), types.LIKE_SCOPE_GUESTBOOK, l.coll, id, func(e *types.GuestbookEntry) {
		e.Likes++
	})
	if err != nil {
		return nil, errors.Trace("GuestbookLogic.LikeEntry", err)
	}
	return &entry, nil
}

func (l *GuestbookLogic) Liked(id string) (bool, error) {
	liked, err := hasLiked(l.ctx, l.core, l.VisitorID(), types.LIKE_SCOPE_GUESTBOOK, id)
	if err != nil {
		return false, errors.New("GuestbookLogic.Liked", i18n.ERROR_INTERNAL, err)
	}
	return liked, nil
}

// ReplyEntry 博主回复追加在末尾，内容为空时不做修改
func (l *GuestbookLogic) ReplyEntry(id, content string) (*types.GuestbookEntry, error) {
	if err := l.Identification(srv.PermissionEdit); err != nil {
		return nil, errors.Trace("GuestbookLogic.ReplyEntry", err)
	}

	var (
		replied types.GuestbookEntry
		noop    = strings.TrimSpace(content) == ""
	)
	_, err := l.coll.Mutate(l.ctx, func(entries []types.GuestbookEntry) ([]types.GuestbookEntry, error) {
		_, idx, exist := lo.FindIndexOf(entries, func(item types.GuestbookEntry) bool {
			return item.ID == id
		})
		if !exist {
			return nil, errors.New("GuestbookLogic.ReplyEntry.FindIndexOf", i18n.ERROR_NOTFOUND, nil).Code(http.StatusNotFound)
		}

		if !noop {
			entries[idx].Replies = append(entries[idx].Replies, types.GuestbookReply{
				ID:      utils.GenSpecIDStr(),
				Author:  l.core.Cfg().Admin.OwnerName,
				Content: content,
				Date:    time.Now().Format(GUESTBOOK_DATE_LAYOUT),
			})
		}
		replied = entries[idx]
		return entries, nil
	})
	if err != nil {
		return nil, errors.Trace("GuestbookLogic.ReplyEntry", err)
	}
	return &replied, nil
}
