package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/breeew/folio-api/internal/store"
	"github.com/breeew/folio-api/pkg/safe"
)

const NOTIFY_CHANNEL = "folio_kv"

// KVStore 把 key/value 快照保存在 folio_kv 表中
// postgres 通过 LISTEN/NOTIFY 让订阅跨进程生效，sqlite 只在进程内分发
type KVStore struct {
	CommonFields
	broker   *store.Broker
	listener *pq.Listener

	closeOnce sync.Once
	done      chan struct{}
}

func NewKVStore(driver, dsn string) (*KVStore, error) {
	db, err := open(driver, dsn)
	if err != nil {
		return nil, err
	}

	s := &KVStore{
		broker: store.NewBroker(),
		done:   make(chan struct{}),
	}
	s.db = db
	s.driver = driver
	s.SetTable(TABLE_KV)
	s.SetAllColumns("kv_key", "kv_value", "updated_at")

	if err = s.ensureTable(); err != nil {
		db.Close()
		return nil, err
	}

	if driver == DRIVER_POSTGRES {
		s.listener = pq.NewListener(dsn, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
			if err != nil {
				slog.Error("postgres listener event", slog.Int("event", int(ev)), slog.String("error", err.Error()))
			}
		})
		if err = s.listener.Listen(NOTIFY_CHANNEL); err != nil {
			s.listener.Close()
			db.Close()
			return nil, err
		}
		go safe.Run(s.listen)
	}
	return s, nil
}

func (s *KVStore) ensureTable() error {
	valueType := "BLOB"
	if s.driver == DRIVER_POSTGRES {
		valueType = "BYTEA"
	}
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	kv_key TEXT PRIMARY KEY,
	kv_value %s NOT NULL,
	updated_at BIGINT NOT NULL
)`, s.GetTable(), valueType)
	_, err := s.DB().Exec(ddl)
	return err
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := s.Builder().Select("kv_value").From(s.GetTable()).Where(sq.Eq{"kv_key": key})

	queryString, args, err := query.ToSql()
	if err != nil {
		return nil, errorSqlBuild(err)
	}

	var res []byte
	if err = s.DB().GetContext(ctx, &res, queryString, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return res, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	query := s.Builder().Insert(s.GetTable()).
		Columns(s.GetAllColumns()...).
		Values(key, value, time.Now().Unix()).
		Suffix("ON CONFLICT (kv_key) DO UPDATE SET kv_value = EXCLUDED.kv_value, updated_at = EXCLUDED.updated_at")

	queryString, args, err := query.ToSql()
	if err != nil {
		return errorSqlBuild(err)
	}

	if _, err = s.DB().ExecContext(ctx, queryString, args...); err != nil {
		return err
	}
	return s.notify(ctx, store.Event{Key: key, Value: value})
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	query := s.Builder().Delete(s.GetTable()).Where(sq.Eq{"kv_key": key})

	queryString, args, err := query.ToSql()
	if err != nil {
		return errorSqlBuild(err)
	}

	res, err := s.DB().ExecContext(ctx, queryString, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil
	}
	return s.notify(ctx, store.Event{Key: key, Deleted: true})
}

func (s *KVStore) notify(ctx context.Context, e store.Event) error {
	if s.listener == nil {
		s.broker.Publish(e)
		return nil
	}
	_, err := s.DB().ExecContext(ctx, "SELECT pg_notify($1, $2)", NOTIFY_CHANNEL, e.Key)
	return err
}

func (s *KVStore) listen() {
	for {
		select {
		case <-s.done:
			return
		case n, ok := <-s.listener.Notify:
			if !ok {
				return
			}
			// 重连后 n 为 nil，期间的变更无法补发
			if n == nil {
				continue
			}
			s.forward(n.Extra)
		case <-time.After(90 * time.Second):
			go safe.Run(func() {
				if err := s.listener.Ping(); err != nil {
					slog.Warn("postgres listener ping failed", slog.String("error", err.Error()))
				}
			})
		}
	}
}

func (s *KVStore) forward(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	raw, err := s.Get(ctx, key)
	if err != nil {
		if store.IsNotFound(err) {
			s.broker.Publish(store.Event{Key: key, Deleted: true})
			return
		}
		slog.Error("failed to load notified key", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	s.broker.Publish(store.Event{Key: key, Value: raw})
}

func (s *KVStore) Subscribe(ctx context.Context, key string) (<-chan store.Event, error) {
	return s.broker.Subscribe(ctx, key), nil
}

func (s *KVStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		if s.listener != nil {
			s.listener.Close()
		}
		s.broker.Close()
		err = s.db.Close()
	})
	return err
}
