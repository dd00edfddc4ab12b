package kvstore

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breeew/folio-api/internal/store"
)

func waitEvent(t *testing.T, ch <-chan store.Event) store.Event {
	t.Helper()
	select {
	case e, ok := <-ch:
		require.True(t, ok, "subscription closed")
		return e
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for event")
	}
	return store.Event{}
}

func runKVStoreSuite(t *testing.T, s store.KVStore) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	key := "visitor:0b8f7c2e:IS_ADMIN"
	_ = s.Delete(ctx, key)

	_, err := s.Get(ctx, key)
	assert.True(t, store.IsNotFound(err))

	ch, err := s.Subscribe(ctx, key)
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, key, []byte("true")))
	raw, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "true", string(raw))

	e := waitEvent(t, ch)
	assert.Equal(t, key, e.Key)
	assert.Equal(t, "true", string(e.Value))
	assert.False(t, e.Deleted)

	require.NoError(t, s.Set(ctx, key, []byte("false")))
	e = waitEvent(t, ch)
	assert.Equal(t, "false", string(e.Value))

	require.NoError(t, s.Delete(ctx, key))
	e = waitEvent(t, ch)
	assert.True(t, e.Deleted)

	_, err = s.Get(ctx, key)
	assert.True(t, store.IsNotFound(err))

	// 删除不存在的 key 不报错
	assert.NoError(t, s.Delete(ctx, key))
}

func TestMemoryStore(t *testing.T) {
	s, err := New(Config{})
	require.NoError(t, err)
	defer s.Close()
	runKVStoreSuite(t, s)
}

// 并发写入同一个 key 时，最后一个事件必须与最终存储的值一致
func TestMemoryStoreEventOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewMemoryStore()
	defer s.Close()

	key := "visitor:0b8f7c2e:IS_ADMIN"
	for round := 0; round < 20; round++ {
		subCtx, unsubscribe := context.WithCancel(ctx)
		ch, err := s.Subscribe(subCtx, key)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				assert.NoError(t, s.Set(ctx, key, []byte(strconv.Itoa(i))))
			}(i)
		}
		wg.Wait()

		var last store.Event
	drain:
		for {
			select {
			case e := <-ch:
				last = e
			default:
				break drain
			}
		}

		raw, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, string(raw), string(last.Value))
		unsubscribe()
	}
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := New(Config{Driver: DRIVER_FILE, Dir: dir})
	require.NoError(t, err)
	defer s.Close()
	runKVStoreSuite(t, s)
}

func TestFileStoreExternalEdit(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Subscribe(ctx, "site_config_campus_video")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "site_config_campus_video.json"), []byte(`"https://example.com/a.mp4"`), 0o644))

	// 外部写入可能先产生一次空文件事件
	for {
		e := waitEvent(t, ch)
		if string(e.Value) == `"https://example.com/a.mp4"` {
			break
		}
	}

	raw, err := s.Get(ctx, "site_config_campus_video")
	require.NoError(t, err)
	assert.Equal(t, `"https://example.com/a.mp4"`, string(raw))
}

func TestSqliteStore(t *testing.T) {
	s, err := New(Config{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "folio.db")})
	require.NoError(t, err)
	defer s.Close()
	runKVStoreSuite(t, s)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("TEST_FOLIO_PG_DSN")
	if dsn == "" {
		t.Skip("TEST_FOLIO_PG_DSN not set")
	}
	s, err := New(Config{Driver: "postgres", DSN: dsn})
	require.NoError(t, err)
	defer s.Close()
	runKVStoreSuite(t, s)
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_FOLIO_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_FOLIO_REDIS_ADDR not set")
	}
	s, err := New(Config{Driver: DRIVER_REDIS, RedisAddr: addr})
	require.NoError(t, err)
	defer s.Close()
	runKVStoreSuite(t, s)
}

func TestUnknownDriver(t *testing.T) {
	_, err := New(Config{Driver: "etcd"})
	assert.Error(t, err)
	assert.ElementsMatch(t, []string{DRIVER_MEMORY, DRIVER_FILE, DRIVER_REDIS, "postgres", "sqlite"}, Drivers())
}
