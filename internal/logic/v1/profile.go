package v1

import (
	"context"
	"net/http"
	"strings"

	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/internal/core/srv"
	"github.com/breeew/folio-api/internal/store"
	"github.com/breeew/folio-api/pkg/errors"
	"github.com/breeew/folio-api/pkg/i18n"
	"github.com/breeew/folio-api/pkg/types"
)

type ProfileLogic struct {
	VisitorInfo
	ctx  context.Context
	core *core.Core
	coll *store.Collection[types.ProfileData]
}

func NewProfileLogic(ctx context.Context, core *core.Core) *ProfileLogic {
	l := &ProfileLogic{
		ctx:         ctx,
		core:        core,
		coll:        profileCollection(core),
		VisitorInfo: setupVisitorInfo(ctx, core),
	}

	return l
}

func (l *ProfileLogic) GetProfile() (*types.ProfileData, error) {
	data, err := l.coll.Load(l.ctx)
	if err != nil {
		return nil, errors.New("ProfileLogic.GetProfile.Load", i18n.ERROR_INTERNAL, err)
	}
	return &data, nil
}

// UpdateProfile 整体替换
func (l *ProfileLogic) UpdateProfile(data types.ProfileData) (*types.ProfileData, error) {
	if err := l.Identification(srv.PermissionEdit); err != nil {
		return nil, errors.Trace("ProfileLogic.UpdateProfile", err)
	}

	data.Name = strings.TrimSpace(data.Name)
	if data.Name == "" {
		return nil, errors.New("ProfileLogic.UpdateProfile.name", i18n.ERROR_INVALIDARGUMENT, nil).Code(http.StatusBadRequest)
	}
	if data.Skills == nil {
		data.Skills = []string{}
	}
	if data.Awards == nil {
		data.Awards = []types.Award{}
	}

	if err := l.coll.Save(l.ctx, data); err != nil {
		return nil, errors.New("ProfileLogic.UpdateProfile.Save", i18n.ERROR_INTERNAL, err)
	}
	return &data, nil
}
