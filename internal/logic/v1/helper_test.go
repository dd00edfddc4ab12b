package v1_test

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/internal/core/srv"
	v1 "github.com/breeew/folio-api/internal/logic/v1"
	"github.com/breeew/folio-api/internal/store/kvstore"
	"github.com/breeew/folio-api/pkg/ai"
	"github.com/breeew/folio-api/pkg/errors"
	"github.com/breeew/folio-api/pkg/types"
)

const (
	testAdminUser     = "owner"
	testAdminPassword = "p@ssw0rd"
)

func setupCore(t *testing.T, opts ...srv.ApplyFunc) *core.Core {
	cfg := core.LoadBaseConfigFromENV()
	cfg.Admin.Username = testAdminUser
	cfg.Admin.Password = testAdminPassword
	cfg.Admin.OwnerName = core.DEFAULT_OWNER_NAME
	cfg.Security.VisitorSecret = "test-secret"
	cfg.Video.InitialInterval.Duration = 10 * time.Millisecond
	cfg.Video.MaxInterval.Duration = 20 * time.Millisecond
	cfg.Video.Deadline.Duration = 5 * time.Second

	c := core.NewCore(cfg, kvstore.NewMemoryStore(), opts...)
	t.Cleanup(func() {
		c.Close()
	})
	return c
}

func visitorCtx() context.Context {
	return context.WithValue(context.Background(), v1.VISITOR_CONTEXT_KEY, uuid.NewString())
}

func adminCtx(t *testing.T, c *core.Core) context.Context {
	ctx := visitorCtx()
	require.NoError(t, v1.NewAdminLogic(ctx, c).Login(testAdminUser, testAdminPassword))
	return ctx
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var ce *errors.CustomizedError
	require.True(t, errors.As(err, &ce), "unexpected error type: %v", err)
	return ce.HttpCode()
}

func errMessage(t *testing.T, err error) string {
	t.Helper()
	var ce *errors.CustomizedError
	require.True(t, errors.As(err, &ce), "unexpected error type: %v", err)
	return ce.Message()
}

// fakeDriver 实现全部 AI 能力，用于替代 gemini
type fakeDriver struct {
	mu sync.Mutex

	exploreRes types.ExploreResult
	exploreReq ai.ExploreRequest
	err        error

	image ai.Image

	// 第 doneAfter 次查询时视频生成完成
	doneAfter  int
	polls      int
	videoError string
	started    []string

	session *fakeSession
}

func (f *fakeDriver) Explore(ctx context.Context, req ai.ExploreRequest) (types.ExploreResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exploreReq = req
	return f.exploreRes, f.err
}

func (f *fakeDriver) EditImage(ctx context.Context, img ai.Image, prompt string) (ai.Image, error) {
	if f.err != nil {
		return ai.Image{}, f.err
	}
	if len(f.image.Data) == 0 {
		return ai.Image{}, ai.ErrNoImage
	}
	return f.image, nil
}

func (f *fakeDriver) GenerateImage(ctx context.Context, prompt string, size types.ImageSize) (ai.Image, error) {
	return f.EditImage(ctx, ai.Image{}, prompt)
}

func (f *fakeDriver) StartVideo(ctx context.Context, img ai.Image, prompt string) (*ai.VideoOperation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.started = append(f.started, prompt)
	return &ai.VideoOperation{Name: "operations/" + uuid.NewString()}, nil
}

func (f *fakeDriver) PollVideo(ctx context.Context, name string) (*ai.VideoOperation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.polls++
	if f.doneAfter <= 0 || f.polls < f.doneAfter {
		return &ai.VideoOperation{Name: name}, nil
	}
	if f.videoError != "" {
		return &ai.VideoOperation{Name: name, Done: true, Error: f.videoError}, nil
	}
	return &ai.VideoOperation{Name: name, Done: true, VideoURI: "https://example.com/files/video.mp4:download"}, nil
}

func (f *fakeDriver) DownloadVideo(ctx context.Context, uri string) (io.ReadCloser, string, error) {
	return io.NopCloser(strings.NewReader("mp4:" + uri)), "video/mp4", nil
}

func (f *fakeDriver) ConnectLive(ctx context.Context) (ai.LiveSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}
