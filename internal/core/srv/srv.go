package srv

import (
	"context"
	"log/slog"

	"github.com/breeew/folio-api/internal/store"
	"github.com/breeew/folio-api/pkg/object-storage/s3"
)

type Srv struct {
	rbac  *RBACSrv
	ai    *AI
	admin *AdminState
	media *Media
}

func SetupSrvs(opts ...ApplyFunc) *Srv {
	a := &Srv{
		rbac: SetupRBACSrv(), // 角色鉴权
	}

	for _, opt := range opts {
		opt(a)
	}
	if a.ai == nil {
		a.ai = NewAI(nil)
	}
	return a
}

type ApplyFunc func(s *Srv)

func ApplyAI(cfg AIConfig) ApplyFunc {
	return func(s *Srv) {
		var err error
		if s.ai, err = SetupAI(context.Background(), cfg); err != nil {
			slog.Error("failed to setup ai drivers", slog.String("error", err.Error()))
		}
	}
}

// ApplyAIDriver 直接安装已经构建好的 driver，测试中用于注入假实现
func ApplyAIDriver(name string, driver any, usage map[string]string) ApplyFunc {
	return func(s *Srv) {
		if s.ai == nil {
			s.ai = NewAI(usage)
		}
		s.ai.Install(name, driver)
	}
}

func ApplyAdminState(kv store.KVStore) ApplyFunc {
	return func(s *Srv) {
		s.admin = NewAdminState(kv)
	}
}

func ApplyMedia(cfg s3.Config) ApplyFunc {
	return func(s *Srv) {
		if !cfg.Enabled() {
			return
		}
		m, err := NewMedia(context.Background(), cfg)
		if err != nil {
			slog.Error("failed to setup object storage", slog.String("error", err.Error()))
			return
		}
		s.media = m
	}
}

func (s *Srv) RBAC() *RBACSrv {
	return s.rbac
}

func (s *Srv) AI() *AI {
	return s.ai
}

func (s *Srv) Admin() *AdminState {
	return s.admin
}

// Media 未配置对象存储时返回 nil
func (s *Srv) Media() *Media {
	return s.media
}
