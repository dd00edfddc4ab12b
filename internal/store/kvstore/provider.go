package kvstore

import (
	"fmt"

	"github.com/breeew/folio-api/internal/store"
	"github.com/breeew/folio-api/pkg/register"
)

type registerKey struct{}

// Config 对应配置文件中的 [storage]
type Config struct {
	Driver        string `toml:"driver"`
	DSN           string `toml:"dsn"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

type Factory func(cfg Config) (store.KVStore, error)

type Provider struct {
	drivers map[string]Factory
}

func newProvider() *Provider {
	p := &Provider{
		drivers: make(map[string]Factory),
	}
	for _, f := range register.ResolveFuncHandlers[*Provider](registerKey{}) {
		f(p)
	}
	return p
}

func Drivers() []string {
	p := newProvider()
	res := make([]string, 0, len(p.drivers))
	for k := range p.drivers {
		res = append(res, k)
	}
	return res
}

// New 按 driver 名称构建存储，driver 为空时使用内存存储
func New(cfg Config) (store.KVStore, error) {
	if cfg.Driver == "" {
		cfg.Driver = DRIVER_MEMORY
	}
	f, ok := newProvider().drivers[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
	}
	return f(cfg)
}

func MustSetup(cfg Config) store.KVStore {
	s, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return s
}
