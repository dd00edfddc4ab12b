package v1

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/internal/core/srv"
	"github.com/breeew/folio-api/pkg/errors"
	"github.com/breeew/folio-api/pkg/i18n"
)

type _visitorInfo struct {
	ctx       context.Context
	core      *core.Core
	visitorID string
}

func (u *_visitorInfo) VisitorID() string {
	return u.visitorID
}

func (u *_visitorInfo) IsAdmin() (bool, error) {
	if u.visitorID == "" {
		return false, nil
	}
	isAdmin, err := u.core.Srv().Admin().IsAdmin(u.ctx, u.visitorID)
	if err != nil {
		return false, errors.New("_visitorInfo.IsAdmin", i18n.ERROR_INTERNAL, err)
	}
	return isAdmin, nil
}

// Identification 每次都从存储读取博主开关，退出博主模式后立即生效
func (u *_visitorInfo) Identification(permission string) error {
	isAdmin, err := u.IsAdmin()
	if err != nil {
		return errors.Trace("_visitorInfo.Identification", err)
	}
	if !u.core.Srv().RBAC().CheckPermission(srv.RoleOf(isAdmin), permission) {
		return errors.New("_visitorInfo.Identification", i18n.ERROR_PERMISSION_DENIED, nil).Code(http.StatusForbidden)
	}
	return nil
}

func setupVisitorInfo(ctx context.Context, core *core.Core) VisitorInfo {
	visitorID, ok := InjectVisitor(ctx)
	if !ok {
		slog.Debug("Not found visitor in context", slog.String("component", "logic.v1.setupVisitorInfo"))
	}
	return &_visitorInfo{
		ctx:       ctx,
		core:      core,
		visitorID: visitorID,
	}
}

type VisitorInfo interface {
	VisitorID() string
	IsAdmin() (bool, error)
	Identification(permission string) error
}
