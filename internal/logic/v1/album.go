package v1

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/internal/core/srv"
	"github.com/breeew/folio-api/internal/store"
	"github.com/breeew/folio-api/pkg/errors"
	"github.com/breeew/folio-api/pkg/i18n"
	"github.com/breeew/folio-api/pkg/types"
	"github.com/breeew/folio-api/pkg/utils"
)

const ALBUM_DATE_LAYOUT = "2006.01.02"

type AlbumLogic struct {
	VisitorInfo
	ctx     context.Context
	core    *core.Core
	section types.AlbumSection
	coll    *store.Collection[[]types.Album]
}

func NewAlbumLogic(ctx context.Context, core *core.Core, section types.AlbumSection) (*AlbumLogic, error) {
	if !section.Valid() {
		return nil, errors.New("NewAlbumLogic.section", i18n.ERROR_INVALID_SECTION, nil).Code(http.StatusBadRequest)
	}
	l := &AlbumLogic{
		ctx:         ctx,
		core:        core,
		section:     section,
		coll:        albumCollection(core, section),
		VisitorInfo: setupVisitorInfo(ctx, core),
	}

	return l, nil
}

func (l *AlbumLogic) ListAlbums() ([]types.Album, error) {
	list, err := l.coll.Load(l.ctx)
	if err != nil {
		return nil, errors.New("AlbumLogic.ListAlbums.Load", i18n.ERROR_INTERNAL, err)
	}
	return list, nil
}

func (l *AlbumLogic) GetAlbum(id string) (*types.Album, error) {
	list, err := l.ListAlbums()
	if err != nil {
		return nil, errors.Trace("AlbumLogic.GetAlbum", err)
	}

	album, exist := findItem(list, id)
	if !exist {
		return nil, errors.New("AlbumLogic.GetAlbum.findItem", i18n.ERROR_NOTFOUND, nil).Code(http.StatusNotFound)
	}
	return &album, nil
}

type CreateAlbumArgs struct {
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	CoverURL    string   `json:"cover_url"`
	Images      []string `json:"images"`
}

func (l *AlbumLogic) CreateAlbum(args CreateAlbumArgs) (*types.Album, error) {
	if err := l.Identification(srv.PermissionEdit); err != nil {
		return nil, errors.Trace("AlbumLogic.CreateAlbum", err)
	}

	args.Title = strings.TrimSpace(args.Title)
	args.Location = strings.TrimSpace(args.Location)
	args.CoverURL = strings.TrimSpace(args.CoverURL)
	if args.Title == "" || args.Location == "" || args.CoverURL == "" {
		return nil, errors.New("AlbumLogic.CreateAlbum.args", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	images := utils.NormalizeTags(args.Images)
	if len(images) == 0 {
		images = []string{args.CoverURL}
	}

	album := types.Album{
		ID:          utils.GenSpecIDStr(),
		Title:       args.Title,
		Location:    args.Location,
		Date:        time.Now().Format(ALBUM_DATE_LAYOUT),
		CoverURL:    args.CoverURL,
		Description: args.Description,
		Images:      images,
		Likes:       0,
	}

	if err := prependItem(l.ctx, l.coll, album); err != nil {
		return nil, errors.New("AlbumLogic.CreateAlbum.prependItem", i18n.ERROR_INTERNAL, err)
	}
	return &album, nil
}

func (l *AlbumLogic) DeleteAlbum(id string) error {
	if err := l.Identification(srv.PermissionEdit); err != nil {
		return errors.Trace("AlbumLogic.DeleteAlbum", err)
	}
	if err := removeItem(l.ctx, l.coll, id); err != nil {
		return errors.Trace("AlbumLogic.DeleteAlbum", err)
	}
	return nil
}

func (l *AlbumLogic) LikeAlbum(id string) (*types.Album, error) {
	if err := l.Identification(srv.PermissionLike); err != nil {
		return nil, errors.Trace("AlbumLogic.LikeAlbum", err)
	}

	album, err := likeItem(l.ctx, l.core, l.VisitorID(), l.section.LikeScope(), l.coll, id, func(a *types.Album) {
		a.Likes++
	})
	if err != nil {
		return nil, errors.Trace("AlbumLogic.LikeAlbum", err)
	}
	return &album, nil
}

func (l *AlbumLogic) Liked(id string) (bool, error) {
	liked, err := hasLiked(l.ctx, l.core, l.VisitorID(), l.section.LikeScope(), id)
	if err != nil {
		return false, errors.New("AlbumLogic.Liked", i18n.ERROR_INTERNAL, err)
	}
	return liked, nil
}
