package kvstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/breeew/folio-api/internal/store"
	"github.com/breeew/folio-api/pkg/register"
	"github.com/breeew/folio-api/pkg/safe"
)

const (
	DRIVER_FILE = "file"

	fileSuffix = ".json"
	tmpPrefix  = ".tmp-"
)

func init() {
	register.RegisterFunc(registerKey{}, func(p *Provider) {
		p.drivers[DRIVER_FILE] = func(cfg Config) (store.KVStore, error) {
			return NewFileStore(cfg.Dir)
		}
	})
}

// FileStore 每个 key 对应目录下的一个文件，目录被外部修改时同样会产生事件
type FileStore struct {
	dir     string
	broker  *store.Broker
	watcher *fsnotify.Watcher

	mu   sync.Mutex
	last map[string][]byte

	closeOnce sync.Once
	done      chan struct{}
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file storage requires a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err = w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	s := &FileStore{
		dir:     dir,
		broker:  store.NewBroker(),
		watcher: w,
		last:    make(map[string][]byte),
		done:    make(chan struct{}),
	}
	s.preload()
	go safe.Run(s.watch)
	return s, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+fileSuffix)
}

func keyFromPath(p string) (string, bool) {
	name := filepath.Base(p)
	if strings.HasPrefix(name, tmpPrefix) || !strings.HasSuffix(name, fileSuffix) {
		return "", false
	}
	key, err := url.PathUnescape(strings.TrimSuffix(name, fileSuffix))
	if err != nil {
		return "", false
	}
	return key, true
}

func (s *FileStore) preload() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		key, ok := keyFromPath(e.Name())
		if !ok || e.IsDir() {
			continue
		}
		if raw, err := os.ReadFile(filepath.Join(s.dir, e.Name())); err == nil {
			s.last[key] = raw
		}
	}
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(s.dir, tmpPrefix+"*")
	if err != nil {
		return err
	}
	if _, err = tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err = os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	v := append([]byte(nil), value...)
	s.last[key] = v
	s.broker.Publish(store.Event{Key: key, Value: v})
	return nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	delete(s.last, key)
	s.broker.Publish(store.Event{Key: key, Deleted: true})
	return nil
}

func (s *FileStore) Subscribe(ctx context.Context, key string) (<-chan store.Event, error) {
	return s.broker.Subscribe(ctx, key), nil
}

func (s *FileStore) watch() {
	for {
		select {
		case <-s.done:
			return
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("file storage watcher error", slog.String("dir", s.dir), slog.String("error", err.Error()))
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handle(ev)
		}
	}
}

// handle 只转发外部写入，自身的 Set/Delete 已经发布过事件
func (s *FileStore) handle(ev fsnotify.Event) {
	key, ok := keyFromPath(ev.Name)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(ev.Name)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return
		}
		if _, known := s.last[key]; !known {
			return
		}
		delete(s.last, key)
		s.broker.Publish(store.Event{Key: key, Deleted: true})
		return
	}

	if prev, known := s.last[key]; known && bytes.Equal(prev, raw) {
		return
	}
	s.last[key] = raw
	s.broker.Publish(store.Event{Key: key, Value: raw})
}

func (s *FileStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.watcher.Close()
		s.broker.Close()
	})
	return err
}
