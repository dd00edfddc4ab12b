package srv

import (
	"context"
	"strconv"

	"github.com/breeew/folio-api/internal/store"
	"github.com/breeew/folio-api/pkg/types"
)

// AdminState 每个访客的博主模式开关，变更通过存储的订阅广播出去
type AdminState struct {
	kv store.KVStore
}

func NewAdminState(kv store.KVStore) *AdminState {
	return &AdminState{kv: kv}
}

func (s *AdminState) IsAdmin(ctx context.Context, visitorID string) (bool, error) {
	raw, err := s.kv.Get(ctx, types.VisitorAdminKey(visitorID))
	if err != nil {
		if store.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return string(raw) == "true", nil
}

func (s *AdminState) Set(ctx context.Context, visitorID string, isAdmin bool) error {
	return s.kv.Set(ctx, types.VisitorAdminKey(visitorID), []byte(strconv.FormatBool(isAdmin)))
}

// Subscribe 只推送变化后的值，ctx 结束时关闭
func (s *AdminState) Subscribe(ctx context.Context, visitorID string) (<-chan bool, error) {
	events, err := s.kv.Subscribe(ctx, types.VisitorAdminKey(visitorID))
	if err != nil {
		return nil, err
	}

	out := make(chan bool, 1)
	go func() {
		defer close(out)
		var (
			last  bool
			first = true
		)
		for e := range events {
			v := !e.Deleted && string(e.Value) == "true"
			if !first && v == last {
				continue
			}
			first, last = false, v
			select {
			case out <- v:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
