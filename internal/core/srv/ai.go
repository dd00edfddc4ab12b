package srv

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/breeew/folio-api/pkg/ai"
	"github.com/breeew/folio-api/pkg/ai/gemini"
	"github.com/breeew/folio-api/pkg/ai/openai"
	"github.com/breeew/folio-api/pkg/types"
)

const (
	USAGE_EXPLORE = "explore"
	USAGE_IMAGE   = "image"
	USAGE_VIDEO   = "video"
	USAGE_LIVE    = "live"
)

type AIConfig struct {
	Gemini Gemini `toml:"gemini"`
	Openai Openai `toml:"openai"`
	// Usage list
	// explore
	// image
	// video
	// live
	Usage map[string]string `toml:"usage"`
}

func (c *AIConfig) FromENV() {
	c.Usage = make(map[string]string)
	for _, k := range []string{USAGE_EXPLORE, USAGE_IMAGE, USAGE_VIDEO, USAGE_LIVE} {
		if v := os.Getenv("FOLIO_API_AI_USAGE_" + strings.ToUpper(k)); v != "" {
			c.Usage[k] = v
		}
	}

	c.Gemini.FromENV()
	c.Openai.FromENV()
}

type Gemini struct {
	Token string `toml:"token"`
}

func (c *Gemini) FromENV() {
	c.Token = os.Getenv("FOLIO_API_AI_GEMINI_TOKEN")
}

func (cfg *Gemini) Install(root *AI) error {
	d, err := gemini.New(context.Background(), cfg.Token)
	if err != nil {
		return err
	}
	root.Install(gemini.NAME, d)
	return nil
}

type Openai struct {
	Token     string `toml:"token"`
	Endpoint  string `toml:"endpoint"`
	ChatModel string `toml:"chat_model"`
}

func (c *Openai) FromENV() {
	c.Token = os.Getenv("FOLIO_API_AI_OPENAI_TOKEN")
	c.Endpoint = os.Getenv("FOLIO_API_AI_OPENAI_ENDPOINT")
	c.ChatModel = os.Getenv("FOLIO_API_AI_OPENAI_CHAT_MODEL")
}

func (cfg *Openai) Install(root *AI) {
	root.Install(openai.NAME, openai.New(cfg.Token, cfg.Endpoint, cfg.ChatModel))
}

type AI struct {
	usage map[string]string
	// 安装顺序决定默认 driver
	names []string

	exploreDrivers  map[string]ai.Explorer
	editDrivers     map[string]ai.ImageEditor
	generateDrivers map[string]ai.ImageGenerator
	videoDrivers    map[string]ai.VideoGenerator
	liveDrivers     map[string]ai.LiveConnector

	breakers map[string]*gobreaker.CircuitBreaker
}

func NewAI(usage map[string]string) *AI {
	if usage == nil {
		usage = make(map[string]string)
	}
	return &AI{
		usage:           usage,
		exploreDrivers:  make(map[string]ai.Explorer),
		editDrivers:     make(map[string]ai.ImageEditor),
		generateDrivers: make(map[string]ai.ImageGenerator),
		videoDrivers:    make(map[string]ai.VideoGenerator),
		liveDrivers:     make(map[string]ai.LiveConnector),
		breakers:        make(map[string]*gobreaker.CircuitBreaker),
	}
}

func SetupAI(ctx context.Context, cfg AIConfig) (*AI, error) {
	a := NewAI(cfg.Usage)

	var errs []error
	if cfg.Gemini.Token != "" {
		if err := cfg.Gemini.Install(a); err != nil {
			errs = append(errs, err)
		}
	}
	if cfg.Openai.Token != "" {
		cfg.Openai.Install(a)
	}
	return a, errors.Join(errs...)
}

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// 调用方取消与不支持的功能不计入失败
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, ai.ErrUnsupportedFeature)
		},
	})
}

func (a *AI) Install(name string, driver any) {
	if _, exist := a.breakers[name]; !exist {
		a.names = append(a.names, name)
		a.breakers[name] = newBreaker(name)
	}
	if d, ok := driver.(ai.Explorer); ok {
		a.exploreDrivers[name] = d
	}
	if d, ok := driver.(ai.ImageEditor); ok {
		a.editDrivers[name] = d
	}
	if d, ok := driver.(ai.ImageGenerator); ok {
		a.generateDrivers[name] = d
	}
	if d, ok := driver.(ai.VideoGenerator); ok {
		a.videoDrivers[name] = d
	}
	if d, ok := driver.(ai.LiveConnector); ok {
		a.liveDrivers[name] = d
	}
}

func resolve[T any](a *AI, usage string, drivers map[string]T) (string, T, bool) {
	if name := a.usage[usage]; name != "" {
		if d, ok := drivers[name]; ok {
			return name, d, true
		}
	}
	for _, name := range a.names {
		if d, ok := drivers[name]; ok {
			return name, d, true
		}
	}
	var zero T
	return "", zero, false
}

func execute[T any](cb *gobreaker.CircuitBreaker, f func() (T, error)) (T, error) {
	res, err := cb.Execute(func() (interface{}, error) {
		return f()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	v, _ := res.(T)
	return v, nil
}

// Enabled 判断某项能力是否有可用的 driver
func (a *AI) Enabled(usage string) bool {
	switch usage {
	case USAGE_EXPLORE:
		return len(a.exploreDrivers) > 0
	case USAGE_IMAGE:
		return len(a.editDrivers) > 0 || len(a.generateDrivers) > 0
	case USAGE_VIDEO:
		return len(a.videoDrivers) > 0
	case USAGE_LIVE:
		return len(a.liveDrivers) > 0
	}
	return false
}

func (a *AI) Explore(ctx context.Context, req ai.ExploreRequest) (types.ExploreResult, error) {
	name, d, ok := resolve(a, USAGE_EXPLORE, a.exploreDrivers)
	if !ok {
		return types.ExploreResult{}, ai.ErrNotConfigured
	}
	// 地图模式只有 gemini 支持
	if req.Mode == types.EXPLORE_MODE_MAPS {
		if g, exist := a.exploreDrivers[gemini.NAME]; exist {
			name, d = gemini.NAME, g
		}
	}
	return execute(a.breakers[name], func() (types.ExploreResult, error) {
		return d.Explore(ctx, req)
	})
}

func (a *AI) EditImage(ctx context.Context, img ai.Image, prompt string) (ai.Image, error) {
	name, d, ok := resolve(a, USAGE_IMAGE, a.editDrivers)
	if !ok {
		return ai.Image{}, ai.ErrNotConfigured
	}
	return execute(a.breakers[name], func() (ai.Image, error) {
		return d.EditImage(ctx, img, prompt)
	})
}

func (a *AI) GenerateImage(ctx context.Context, prompt string, size types.ImageSize) (ai.Image, error) {
	name, d, ok := resolve(a, USAGE_IMAGE, a.generateDrivers)
	if !ok {
		return ai.Image{}, ai.ErrNotConfigured
	}
	return execute(a.breakers[name], func() (ai.Image, error) {
		return d.GenerateImage(ctx, prompt, size)
	})
}

func (a *AI) StartVideo(ctx context.Context, img ai.Image, prompt string) (*ai.VideoOperation, error) {
	name, d, ok := resolve(a, USAGE_VIDEO, a.videoDrivers)
	if !ok {
		return nil, ai.ErrNotConfigured
	}
	return execute(a.breakers[name], func() (*ai.VideoOperation, error) {
		return d.StartVideo(ctx, img, prompt)
	})
}

func (a *AI) PollVideo(ctx context.Context, opName string) (*ai.VideoOperation, error) {
	name, d, ok := resolve(a, USAGE_VIDEO, a.videoDrivers)
	if !ok {
		return nil, ai.ErrNotConfigured
	}
	return execute(a.breakers[name], func() (*ai.VideoOperation, error) {
		return d.PollVideo(ctx, opName)
	})
}

// DownloadVideo 返回的是流，不经过熔断器
func (a *AI) DownloadVideo(ctx context.Context, uri string) (io.ReadCloser, string, error) {
	_, d, ok := resolve(a, USAGE_VIDEO, a.videoDrivers)
	if !ok {
		return nil, "", ai.ErrNotConfigured
	}
	return d.DownloadVideo(ctx, uri)
}

func (a *AI) ConnectLive(ctx context.Context) (ai.LiveSession, error) {
	name, d, ok := resolve(a, USAGE_LIVE, a.liveDrivers)
	if !ok {
		return nil, ai.ErrNotConfigured
	}
	return execute(a.breakers[name], func() (ai.LiveSession, error) {
		return d.ConnectLive(ctx)
	})
}
