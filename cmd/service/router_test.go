package service

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breeew/folio-api/cmd/service/handler"
	"github.com/breeew/folio-api/cmd/service/middleware"
	"github.com/breeew/folio-api/internal/core"
	"github.com/breeew/folio-api/internal/logic/v1/process"
	"github.com/breeew/folio-api/internal/seed"
	"github.com/breeew/folio-api/internal/store/kvstore"
)

func setupTestSrv(t *testing.T) *handler.HttpSrv {
	gin.SetMode(gin.TestMode)

	cfg := core.LoadBaseConfigFromENV()
	cfg.Admin.Username = "owner"
	cfg.Admin.Password = "p@ssw0rd"
	cfg.Security.VisitorSecret = "test-secret"

	app := core.NewCore(cfg, kvstore.NewMemoryStore())
	videos := process.StartVideoProcess(app)
	t.Cleanup(func() {
		videos.Stop()
		app.Close()
	})
	return NewHttpSrv(app, videos)
}

type testResponse struct {
	Meta struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"meta"`
	Data json.RawMessage `json:"data"`
}

func do(t *testing.T, s *handler.HttpSrv, method, path, token string, body any) (*httptest.ResponseRecorder, testResponse) {
	t.Helper()

	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.VISITOR_TOKEN_HEADER_KEY, token)
	}
	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, req)

	var res testResponse
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res), w.Body.String())
	}
	return w, res
}

func newVisitor(t *testing.T, s *handler.HttpSrv) string {
	w, _ := do(t, s, http.MethodGet, "/api/v1/mode", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	token := w.Header().Get(middleware.VISITOR_TOKEN_HEADER_KEY)
	require.NotEmpty(t, token)
	return token
}

func login(t *testing.T, s *handler.HttpSrv) string {
	token := newVisitor(t, s)
	w, _ := do(t, s, http.MethodPost, "/api/v1/admin/login", token, loginArgs("owner", "p@ssw0rd"))
	require.Equal(t, http.StatusOK, w.Code)
	return token
}

func loginArgs(username, password string) handler.LoginRequest {
	return handler.LoginRequest{Username: username, Password: password}
}

func TestVisitorToken(t *testing.T) {
	s := setupTestSrv(t)

	w, res := do(t, s, http.MethodGet, "/api/v1/mode", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	token := w.Header().Get(middleware.VISITOR_TOKEN_HEADER_KEY)
	assert.NotEmpty(t, token)
	assert.Contains(t, w.Header().Get("Set-Cookie"), middleware.VISITOR_COOKIE_KEY+"=")

	var mode handler.ModeResponse
	require.NoError(t, json.Unmarshal(res.Data, &mode))
	assert.Equal(t, kvstore.DRIVER_MEMORY, mode.Storage)
	assert.False(t, mode.ObjectStorage)

	// 有效 token 不会重新签发
	w, _ = do(t, s, http.MethodGet, "/api/v1/mode", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get(middleware.VISITOR_TOKEN_HEADER_KEY))

	// 被篡改的 token 换一个新的身份
	w, _ = do(t, s, http.MethodGet, "/api/v1/mode", token+"x", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.VISITOR_TOKEN_HEADER_KEY))
}

func TestWriteRequiresAdmin(t *testing.T) {
	s := setupTestSrv(t)
	token := newVisitor(t, s)

	w, res := do(t, s, http.MethodPost, "/api/v1/knowledge", token, map[string]any{
		"title":   "t",
		"content": "c",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, http.StatusForbidden, res.Meta.Code)

	w, _ = do(t, s, http.MethodPost, "/api/v1/admin/login", token, loginArgs("owner", "wrong"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminDeleteRequiresConfirm(t *testing.T) {
	s := setupTestSrv(t)
	token := login(t, s)
	id := seed.CampusAlbums()[0].ID

	w, _ := do(t, s, http.MethodGet, "/api/v1/admin/state", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, s, http.MethodDelete, "/api/v1/albums/campus/"+id, token, nil)
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)

	w, _ = do(t, s, http.MethodGet, "/api/v1/albums/campus/"+id, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, s, http.MethodDelete, "/api/v1/albums/campus/"+id+"?confirm=true", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, s, http.MethodGet, "/api/v1/albums/campus/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 退出后立即失去写权限
	w, _ = do(t, s, http.MethodPost, "/api/v1/admin/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, s, http.MethodDelete, "/api/v1/albums/campus/"+seed.CampusAlbums()[1].ID+"?confirm=true", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLikeOnce(t *testing.T) {
	s := setupTestSrv(t)
	token := newVisitor(t, s)
	item := seed.KnowledgeItems()[0]

	w, res := do(t, s, http.MethodPost, "/api/v1/knowledge/"+item.ID+"/like", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var liked struct {
		Likes int `json:"likes"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &liked))
	assert.Equal(t, item.Likes+1, liked.Likes)

	w, _ = do(t, s, http.MethodPost, "/api/v1/knowledge/"+item.ID+"/like", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, res = do(t, s, http.MethodGet, "/api/v1/knowledge/"+item.ID+"/like", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var state handler.LikedResponse
	require.NoError(t, json.Unmarshal(res.Data, &state))
	assert.True(t, state.Liked)

	// 另一个访客仍然可以点赞
	w, _ = do(t, s, http.MethodPost, "/api/v1/knowledge/"+item.ID+"/like", newVisitor(t, s), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGuestbookOpenToVisitors(t *testing.T) {
	s := setupTestSrv(t)
	token := newVisitor(t, s)

	w, _ := do(t, s, http.MethodPost, "/api/v1/guestbook", token, handler.CreateGuestbookRequest{
		Author:  "路人甲",
		Content: "你好",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, res := do(t, s, http.MethodGet, "/api/v1/guestbook", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []struct {
		Author string `json:"author"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &entries))
	require.NotEmpty(t, entries)
	assert.Equal(t, "路人甲", entries[0].Author)
}

func TestAINotConfigured(t *testing.T) {
	s := setupTestSrv(t)
	token := newVisitor(t, s)

	w, _ := do(t, s, http.MethodPost, "/api/v1/ai/image/generate", token, handler.GenerateImageRequest{Prompt: "a cat"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = do(t, s, http.MethodGet, "/api/v1/ai/video/unknown", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResetHeroRequiresConfirm(t *testing.T) {
	s := setupTestSrv(t)
	token := login(t, s)

	w, _ := do(t, s, http.MethodPut, "/api/v1/site/hero/campus", token, handler.SetHeroRequest{URL: "https://example.com/a.mp4"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, s, http.MethodDelete, "/api/v1/site/hero/campus", token, nil)
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)

	w, res := do(t, s, http.MethodGet, "/api/v1/site/hero/campus", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var hero struct {
		URL        string `json:"url"`
		Overridden bool   `json:"overridden"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &hero))
	assert.True(t, hero.Overridden)

	w, _ = do(t, s, http.MethodDelete, "/api/v1/site/hero/campus?confirm=true", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	_, res = do(t, s, http.MethodGet, "/api/v1/site/hero/campus", token, nil)
	require.NoError(t, json.Unmarshal(res.Data, &hero))
	assert.False(t, hero.Overridden)
}

type sseEvent struct {
	Event string
	Data  string
}

func readEvent(t *testing.T, r *bufio.Reader) sseEvent {
	t.Helper()
	var e sseEvent
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\r\n")
		switch {
		case line == "":
			if e.Event != "" || e.Data != "" {
				return e
			}
		case strings.HasPrefix(line, "event:"):
			e.Event = strings.TrimPrefix(line, "event:")
		case strings.HasPrefix(line, "data:"):
			e.Data = strings.TrimPrefix(line, "data:")
		}
	}
}

func TestAdminEventsStream(t *testing.T) {
	s := setupTestSrv(t)
	token := login(t, s)

	server := httptest.NewServer(s.Engine)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/api/v1/admin/events", nil)
	require.NoError(t, err)
	req.Header.Set(middleware.VISITOR_TOKEN_HEADER_KEY, token)

	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	reader := bufio.NewReader(resp.Body)
	e := readEvent(t, reader)
	assert.Equal(t, "admin", e.Event)
	assert.JSONEq(t, `{"is_admin":true}`, e.Data)

	// 另一个标签页退出，当前连接收到推送
	w, _ := do(t, s, http.MethodPost, "/api/v1/admin/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	e = readEvent(t, reader)
	assert.Equal(t, "admin", e.Event)
	assert.JSONEq(t, `{"is_admin":false}`, e.Data)
}

func TestMetricsEndpoint(t *testing.T) {
	s := setupTestSrv(t)
	newVisitor(t, s)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	raw, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `folio_api_core_http_requests_total{method="GET",route="/api/v1/mode",status="200"} 1`)
}
