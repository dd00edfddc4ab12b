package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v9"

	"github.com/breeew/folio-api/internal/store"
	"github.com/breeew/folio-api/pkg/register"
	"github.com/breeew/folio-api/pkg/safe"
)

const (
	DRIVER_REDIS = "redis"

	redisChannelPrefix = "folio:kv:"
)

func init() {
	register.RegisterFunc(registerKey{}, func(p *Provider) {
		p.drivers[DRIVER_REDIS] = func(cfg Config) (store.KVStore, error) {
			return NewRedisStore(cfg)
		}
	})
}

type redisEvent struct {
	Value   []byte `json:"value,omitempty"`
	Deleted bool   `json:"deleted,omitempty"`
}

// RedisStore 每次写入都会发布到 folio:kv:<key>，多个实例之间的订阅互通
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(cfg Config) (*RedisStore, error) {
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("redis storage requires redis_addr")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return err
	}
	return s.publish(ctx, key, redisEvent{Value: value})
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	n, err := s.client.Del(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	return s.publish(ctx, key, redisEvent{Deleted: true})
}

func (s *RedisStore) publish(ctx context.Context, key string, e redisEvent) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, redisChannelPrefix+key, raw).Err()
}

func (s *RedisStore) Subscribe(ctx context.Context, key string) (<-chan store.Event, error) {
	sub := s.client.Subscribe(ctx, redisChannelPrefix+key)
	// 等待订阅确认，避免之后的第一次发布丢失
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, err
	}

	out := make(chan store.Event, 8)
	go safe.Run(func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var e redisEvent
				if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
					slog.Warn("invalid redis storage event", slog.String("key", key), slog.String("error", err.Error()))
					continue
				}
				select {
				case out <- store.Event{Key: key, Value: e.Value, Deleted: e.Deleted}:
				case <-ctx.Done():
					return
				}
			}
		}
	})
	return out, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
