package v1

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/pkg/errors"
	"github.com/breeew/folio-api/pkg/i18n"
)

type AdminLogic struct {
	VisitorInfo
	ctx  context.Context
	core *core.Core
}

func NewAdminLogic(ctx context.Context, core *core.Core) *AdminLogic {
	l := &AdminLogic{
		ctx:         ctx,
		core:        core,
		VisitorInfo: setupVisitorInfo(ctx, core),
	}

	return l
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Login 未配置博主凭证时任何登录都会失败
func (l *AdminLogic) Login(username, password string) error {
	if l.VisitorID() == "" {
		return errors.New("AdminLogic.Login.VisitorID", i18n.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized)
	}

	cfg := l.core.Cfg().Admin
	userOK := secureEqual(username, cfg.Username)
	passOK := secureEqual(password, cfg.Password)
	if cfg.Username == "" || cfg.Password == "" || !userOK || !passOK {
		return errors.New("AdminLogic.Login.Compare", i18n.ERROR_ADMIN_CREDENTIALS, nil).Code(http.StatusUnauthorized)
	}

	if err := l.core.Srv().Admin().Set(l.ctx, l.VisitorID(), true); err != nil {
		return errors.New("AdminLogic.Login.AdminState.Set", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

func (l *AdminLogic) Logout() error {
	if l.VisitorID() == "" {
		return nil
	}
	if err := l.core.Srv().Admin().Set(l.ctx, l.VisitorID(), false); err != nil {
		return errors.New("AdminLogic.Logout.AdminState.Set", i18n.ERROR_INTERNAL, err)
	}
	return nil
}

func (l *AdminLogic) State() (bool, error) {
	isAdmin, err := l.IsAdmin()
	if err != nil {
		return false, errors.Trace("AdminLogic.State", err)
	}
	return isAdmin, nil
}

// Subscribe 先推送当前状态，之后每次变化推送一次，ctx 结束时关闭
func (l *AdminLogic) Subscribe() (<-chan bool, error) {
	if l.VisitorID() == "" {
		return nil, errors.New("AdminLogic.Subscribe.VisitorID", i18n.ERROR_UNAUTHORIZED, nil).Code(http.StatusUnauthorized)
	}

	// 先订阅再读取当前值，避免漏掉两者之间的变更
	changes, err := l.core.Srv().Admin().Subscribe(l.ctx, l.VisitorID())
	if err != nil {
		return nil, errors.New("AdminLogic.Subscribe.AdminState.Subscribe", i18n.ERROR_INTERNAL, err)
	}
	current, err := l.State()
	if err != nil {
		return nil, errors.Trace("AdminLogic.Subscribe", err)
	}

	out := make(chan bool, 1)
	out <- current
	go func() {
		defer close(out)
		last := current
		for v := range changes {
			if v == last {
				continue
			}
			last = v
			select {
			case out <- v:
			case <-l.ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
