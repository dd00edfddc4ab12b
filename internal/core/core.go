package core

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/breeew/folio-api/internal/core/srv"
	"github.com/breeew/folio-api/internal/store"
	"github.com/breeew/folio-api/internal/store/kvstore"
	"github.com/breeew/folio-api/pkg/security"
	"github.com/breeew/folio-api/pkg/utils"
)

type Core struct {
	cfg CoreConfig
	srv *srv.Srv

	kv      store.KVStore
	visitor *security.VisitorSigner

	metrics *Metrics

	limiterMu sync.Mutex
	limiters  map[string]*rate.Limiter
}

type Limiter interface {
	Allow() bool
}

func setupLogger(cfg Log) {
	var writer io.Writer = os.Stdout
	if cfg.Path != "" {
		writer = &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    500, // megabytes
			MaxBackups: 3,
			MaxAge:     28,   //days
			Compress:   true, // disabled by default
		}
	}
	l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(l)
}

func MustSetupCore(cfg CoreConfig) *Core {
	setupLogger(cfg.Log)

	kv := kvstore.MustSetup(cfg.Storage)
	return NewCore(cfg, kv,
		srv.ApplyAI(cfg.AI), // ai provider select
		srv.ApplyMedia(cfg.ObjectStorage.S3))
}

// NewCore 使用已经构建好的存储组装 Core，测试中直接传入内存存储与假的 AI driver
func NewCore(cfg CoreConfig, kv store.KVStore, opts ...srv.ApplyFunc) *Core {
	utils.SetupIDWorker(1)

	if cfg.Security.VisitorSecret == "" {
		cfg.Security.VisitorSecret = utils.MD5(time.Now().String())
		slog.Warn("visitor_secret is not set, visitor tokens will not survive a restart")
	}

	core := &Core{
		cfg:      cfg,
		kv:       kv,
		visitor:  security.NewVisitorSigner(cfg.Security.VisitorSecret, time.Duration(cfg.Security.VisitorTTLDays)*24*time.Hour),
		metrics:  NewMetrics("folio_api", "core"),
		limiters: make(map[string]*rate.Limiter),
	}

	core.srv = srv.SetupSrvs(append([]srv.ApplyFunc{srv.ApplyAdminState(kv)}, opts...)...)
	return core
}

func (s *Core) Cfg() CoreConfig {
	return s.cfg
}

func (s *Core) Metrics() *Metrics {
	return s.metrics
}

func (s *Core) Store() store.KVStore {
	return s.kv
}

func (s *Core) Srv() *srv.Srv {
	return s.srv
}

func (s *Core) Visitor() *security.VisitorSigner {
	return s.visitor
}

// UseLimiter ratelimit 代表每分钟允许的数量
func (s *Core) UseLimiter(key string, method string, defaultRatelimit int) Limiter {
	key = method + ":" + key

	s.limiterMu.Lock()
	defer s.limiterMu.Unlock()
	l, exist := s.limiters[key]
	if !exist {
		limit := rate.Every(time.Minute / time.Duration(defaultRatelimit))
		l = rate.NewLimiter(limit, defaultRatelimit*2)
		s.limiters[key] = l
	}
	return l
}

func (s *Core) Close() error {
	return s.kv.Close()
}
