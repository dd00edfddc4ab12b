package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

var keyLocks sync.Map

func lockKey(key string) *sync.Mutex {
	l, _ := keyLocks.LoadOrStore(key, &sync.Mutex{})
	return l.(*sync.Mutex)
}

// Collection 把一个 key 下的 JSON 快照映射为类型 T，key 不存在时使用 seed
type Collection[T any] struct {
	kv   KVStore
	key  string
	seed func() T
}

func NewCollection[T any](kv KVStore, key string, seed func() T) *Collection[T] {
	return &Collection[T]{
		kv:   kv,
		key:  key,
		seed: seed,
	}
}

func (c *Collection[T]) Key() string {
	return c.key
}

// Load 读取快照，存储中的数据无法解析时直接返回错误
func (c *Collection[T]) Load(ctx context.Context) (T, error) {
	var res T
	raw, err := c.kv.Get(ctx, c.key)
	if err != nil {
		if IsNotFound(err) {
			if c.seed != nil {
				return c.seed(), nil
			}
			return res, nil
		}
		return res, err
	}

	if err = json.Unmarshal(raw, &res); err != nil {
		return res, fmt.Errorf("failed to decode %s: %w", c.key, err)
	}
	return res, nil
}

// Exists 判断 key 是否已经写入过
func (c *Collection[T]) Exists(ctx context.Context) (bool, error) {
	_, err := c.kv.Get(ctx, c.key)
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *Collection[T]) Save(ctx context.Context, data T) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.kv.Set(ctx, c.key, raw)
}

// Mutate 在 key 级别的锁内完成读-改-写，fn 返回错误时不写回
func (c *Collection[T]) Mutate(ctx context.Context, fn func(T) (T, error)) (T, error) {
	l := lockKey(c.key)
	l.Lock()
	defer l.Unlock()

	current, err := c.Load(ctx)
	if err != nil {
		return current, err
	}

	next, err := fn(current)
	if err != nil {
		return current, err
	}

	if err = c.Save(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}
