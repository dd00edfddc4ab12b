package v1

import (
	"context"
	"io"
	"net/http"

	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/internal/core/srv"
	"github.com/breeew/folio-api/pkg/errors"
	"github.com/breeew/folio-api/pkg/i18n"
)

type MediaLogic struct {
	VisitorInfo
	ctx  context.Context
	core *core.Core
}

func NewMediaLogic(ctx context.Context, core *core.Core) *MediaLogic {
	l := &MediaLogic{
		ctx:         ctx,
		core:        core,
		VisitorInfo: setupVisitorInfo(ctx, core),
	}

	return l
}

func (l *MediaLogic) media() (*srv.Media, error) {
	if err := l.Identification(srv.PermissionEdit); err != nil {
		return nil, err
	}
	m := l.core.Srv().Media()
	if m == nil {
		return nil, errors.New("MediaLogic.media", i18n.ERROR_UNSUPPORTED_FEATURE, nil).Code(http.StatusForbidden)
	}
	return m, nil
}

// Upload 返回可以直接写入内容字段的访问地址
func (l *MediaLogic) Upload(fileName, contentType string, size int64, body io.Reader) (string, error) {
	m, err := l.media()
	if err != nil {
		return "", errors.Trace("MediaLogic.Upload", err)
	}
	if size > srv.MAX_MEDIA_FILE_SIZE {
		return "", errors.New("MediaLogic.Upload.size", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusRequestEntityTooLarge)
	}

	url, err := m.Upload(l.ctx, fileName, contentType, body)
	if err != nil {
		return "", errors.New("MediaLogic.Upload.Media.Upload", i18n.ERROR_INTERNAL, err)
	}
	return url, nil
}

func (l *MediaLogic) UploadKey(fileName, contentType string) (*srv.UploadKey, error) {
	m, err := l.media()
	if err != nil {
		return nil, errors.Trace("MediaLogic.UploadKey", err)
	}
	if fileName == "" {
		return nil, errors.New("MediaLogic.UploadKey.fileName", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}

	key, err := m.UploadKey(l.ctx, fileName, contentType)
	if err != nil {
		return nil, errors.New("MediaLogic.UploadKey.Media.UploadKey", i18n.ERROR_INTERNAL, err)
	}
	return &key, nil
}
