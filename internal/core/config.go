package core

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/breeew/folio-api/internal/core/srv"
	"github.com/breeew/folio-api/internal/store/kvstore"
	"github.com/breeew/folio-api/pkg/object-storage/s3"
)

const (
	DEFAULT_ADDR       = ":33033"
	DEFAULT_OWNER_NAME = "我 (博主)"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var conf CoreConfig
	if err = toml.Unmarshal(raw, &conf); err != nil {
		panic(err)
	}
	conf.setDefault()
	return conf
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	c.setDefault()
	return c
}

type CoreConfig struct {
	Addr    string         `toml:"addr"`
	Log     Log            `toml:"log"`
	Storage kvstore.Config `toml:"storage"`

	Admin    Admin    `toml:"admin"`
	Security Security `toml:"security"`

	AI    srv.AIConfig `toml:"ai"`
	Video Video        `toml:"video"`

	ObjectStorage ObjectStorage `toml:"object_storage"`
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("FOLIO_API_SERVICE_ADDRESS")
	c.Log.FromENV()
	c.Storage.Driver = os.Getenv("FOLIO_API_STORAGE_DRIVER")
	c.Storage.DSN = os.Getenv("FOLIO_API_STORAGE_DSN")
	c.Storage.Dir = os.Getenv("FOLIO_API_STORAGE_DIR")
	c.Storage.RedisAddr = os.Getenv("FOLIO_API_STORAGE_REDIS_ADDR")
	c.Storage.RedisPassword = os.Getenv("FOLIO_API_STORAGE_REDIS_PASSWORD")
	c.Storage.RedisDB, _ = strconv.Atoi(os.Getenv("FOLIO_API_STORAGE_REDIS_DB"))
	c.Admin.FromENV()
	c.Security.FromENV()
	c.AI.FromENV()
	c.Video.FromENV()
	c.ObjectStorage.FromENV()
}

func (c *CoreConfig) setDefault() {
	if c.Addr == "" {
		c.Addr = DEFAULT_ADDR
	}
	if c.Admin.OwnerName == "" {
		c.Admin.OwnerName = DEFAULT_OWNER_NAME
	}
	if c.Security.VisitorTTLDays == 0 {
		c.Security.VisitorTTLDays = 365
	}
	if c.Video.InitialInterval.Duration == 0 {
		c.Video.InitialInterval.Duration = 5 * time.Second
	}
	if c.Video.MaxInterval.Duration == 0 {
		c.Video.MaxInterval.Duration = 30 * time.Second
	}
	if c.Video.Deadline.Duration == 0 {
		c.Video.Deadline.Duration = 10 * time.Minute
	}
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("FOLIO_API_LOG_LEVEL")
	l.Path = os.Getenv("FOLIO_API_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// Admin 博主登录凭证，不再写死在前端
type Admin struct {
	Username  string `toml:"username"`
	Password  string `toml:"password"`
	OwnerName string `toml:"owner_name"`
}

func (a *Admin) FromENV() {
	a.Username = os.Getenv("FOLIO_API_ADMIN_USERNAME")
	a.Password = os.Getenv("FOLIO_API_ADMIN_PASSWORD")
	a.OwnerName = os.Getenv("FOLIO_API_ADMIN_OWNER_NAME")
}

type Security struct {
	VisitorSecret  string `toml:"visitor_secret"`
	VisitorTTLDays int    `toml:"visitor_ttl_days"`
}

func (s *Security) FromENV() {
	s.VisitorSecret = os.Getenv("FOLIO_API_SECURITY_VISITOR_SECRET")
	s.VisitorTTLDays, _ = strconv.Atoi(os.Getenv("FOLIO_API_SECURITY_VISITOR_TTL_DAYS"))
}

// Duration 支持 "5s"、"10m" 形式的配置
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

type Video struct {
	InitialInterval Duration `toml:"initial_interval"`
	MaxInterval     Duration `toml:"max_interval"`
	Deadline        Duration `toml:"deadline"`
}

func (v *Video) FromENV() {
	for env, target := range map[string]*Duration{
		"FOLIO_API_VIDEO_INITIAL_INTERVAL": &v.InitialInterval,
		"FOLIO_API_VIDEO_MAX_INTERVAL":     &v.MaxInterval,
		"FOLIO_API_VIDEO_DEADLINE":         &v.Deadline,
	} {
		if raw := os.Getenv(env); raw != "" {
			if err := target.UnmarshalText([]byte(raw)); err != nil {
				slog.Warn("invalid duration in env", slog.String("env", env), slog.String("error", err.Error()))
			}
		}
	}
}

type ObjectStorage struct {
	S3 s3.Config `toml:"s3"`
}

func (o *ObjectStorage) FromENV() {
	o.S3.Endpoint = os.Getenv("FOLIO_API_S3_ENDPOINT")
	o.S3.Region = os.Getenv("FOLIO_API_S3_REGION")
	o.S3.Bucket = os.Getenv("FOLIO_API_S3_BUCKET")
	o.S3.AccessKey = os.Getenv("FOLIO_API_S3_ACCESS_KEY")
	o.S3.SecretKey = os.Getenv("FOLIO_API_S3_SECRET_KEY")
	o.S3.PublicHost = os.Getenv("FOLIO_API_S3_PUBLIC_HOST")
	o.S3.PathStyle = os.Getenv("FOLIO_API_S3_PATH_STYLE") == "true"
}
