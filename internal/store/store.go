package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("store: key not found")

// Event 描述一次 key 的变更
type Event struct {
	Key     string
	Value   []byte
	Deleted bool
}

// KVStore 是站点全部持久化状态的存储端口，实现可以是内存、文件、SQL 或 Redis
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Subscribe 返回 key 的变更通知，ctx 结束后 channel 会被关闭
	Subscribe(ctx context.Context, key string) (<-chan Event, error)
	Close() error
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
