package kvstore

import (
	"context"
	"sync"

	"github.com/breeew/folio-api/internal/store"
	"github.com/breeew/folio-api/pkg/register"
)

const DRIVER_MEMORY = "memory"

func init() {
	register.RegisterFunc(registerKey{}, func(p *Provider) {
		p.drivers[DRIVER_MEMORY] = func(cfg Config) (store.KVStore, error) {
			return NewMemoryStore(), nil
		}
	})
}

type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	broker *store.Broker
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:   make(map[string][]byte),
		broker: store.NewBroker(),
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	v := append([]byte(nil), value...)
	// 在锁内发布，保证事件顺序与写入顺序一致
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = v
	s.broker.Publish(store.Event{Key: key, Value: v})
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	delete(s.data, key)
	if ok {
		s.broker.Publish(store.Event{Key: key, Deleted: true})
	}
	return nil
}

func (s *MemoryStore) Subscribe(ctx context.Context, key string) (<-chan store.Event, error) {
	return s.broker.Subscribe(ctx, key), nil
}

func (s *MemoryStore) Close() error {
	s.broker.Close()
	return nil
}
