package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitchdeck-ai-api/internal/application/deck"
	"pitchdeck-ai-api/internal/application/session"
	"pitchdeck-ai-api/internal/application/theme"
	"pitchdeck-ai-api/internal/config"
	"pitchdeck-ai-api/internal/infrastructure/llm"
	"pitchdeck-ai-api/internal/infrastructure/persistence/memory"
	"pitchdeck-ai-api/internal/interfaces/http/dto"
	"pitchdeck-ai-api/internal/interfaces/http/handler"
	wfchain "pitchdeck-ai-api/internal/workflow/chain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter 以演示模式网关组装完整路由：
// 不触网，生成路径全部走确定性合成文本。
func newTestRouter(t *testing.T) *Router {
	t.Helper()
	cfg := &config.Config{
		App: config.AppConfig{Name: "pitchdeck-test", Env: "test", Version: "test"},
		LLM: config.LLMConfig{DemoMode: true},
		Pipeline: config.PipelineConfig{
			SlidePacing:       0,
			MaxSlides:         20,
			OutlineMaxTokens:  1500,
			SlideMaxTokens:    1200,
			RevisionMaxTokens: 1200,
		},
		Session: config.SessionConfig{TTL: time.Hour, SweepInterval: time.Minute},
	}

	gateway := llm.NewGateway(cfg, nil)
	require.True(t, gateway.DemoMode())

	themes := theme.NewRegistry()
	outline := deck.NewOutlineGenerator(wfchain.NewOutlineChain(gateway), cfg)
	expander := deck.NewSlideExpander(wfchain.NewSlideChain(gateway), cfg)
	revision := deck.NewRevisionEngine(wfchain.NewRevisionChain(gateway), cfg)
	assembler := deck.NewAssembler(outline, expander, themes, cfg)
	svc := session.NewService(memory.NewSessionStore(cfg), outline, assembler, revision, themes)

	return New(cfg, Handlers{
		Health:  handler.NewHealthHandler(gateway, "test"),
		Session: handler.NewSessionHandler(svc),
		Theme:   handler.NewThemeHandler(themes),
	}, memory.NewRateLimiter())
}

func doJSON(t *testing.T, r *Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, req)
	return w
}

func decodeSession(t *testing.T, w *httptest.ResponseRecorder) dto.SessionResponse {
	t.Helper()
	var resp dto.Response[dto.SessionResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func TestRouter_HealthEndpoints(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(t, r, http.MethodGet, "/live", nil).Code)

	w := doJSON(t, r, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "demo")
}

func TestRouter_SessionLifecycle(t *testing.T) {
	r := newTestRouter(t)

	// 创建会话
	w := doJSON(t, r, http.MethodPost, "/v1/sessions", map[string]any{
		"description": "AI bookkeeping for small businesses",
		"slide_count": 3,
		"theme":       "vibrant",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	sess := decodeSession(t, w)
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, "no-outline", sess.State)
	assert.Equal(t, "vibrant", sess.ThemeID)

	base := "/v1/sessions/" + sess.ID

	// 生成大纲：演示模式下返回确定性合成大纲，截断到请求页数
	w = doJSON(t, r, http.MethodPost, base+"/outline", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sess = decodeSession(t, w)
	assert.Equal(t, "outline-ready", sess.State)
	require.NotNil(t, sess.Outline)
	assert.Len(t, sess.Outline.Stubs, 3)

	// 装配文稿
	w = doJSON(t, r, http.MethodPost, base+"/deck", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sess = decodeSession(t, w)
	assert.Equal(t, "deck-ready", sess.State)
	require.NotNil(t, sess.Deck)
	require.Len(t, sess.Deck.Slides, 3)
	for _, slide := range sess.Deck.Slides {
		assert.NotEmpty(t, slide.Content.Headline)
	}

	// 整页修订：演示模式下修订解析失败，应产生可见标注兜底
	w = doJSON(t, r, http.MethodPost, base+"/slides/1/revise", map[string]any{
		"instruction": "make it punchier",
	})
	require.Equal(t, http.StatusOK, w.Code)
	sess = decodeSession(t, w)
	assert.Contains(t, sess.Deck.Slides[0].Title, "(Enhanced)")
	assert.Contains(t, sess.Deck.Slides[0].Content.Headline, "make it punchier")

	// 更换主题
	w = doJSON(t, r, http.MethodPut, base+"/theme", map[string]any{"theme": "minimal"})
	require.Equal(t, http.StatusOK, w.Code)
	sess = decodeSession(t, w)
	assert.Equal(t, "minimal", sess.ThemeID)
	assert.Equal(t, "minimal", sess.Deck.ThemeID)

	// 删除后不可见
	assert.Equal(t, http.StatusNoContent, doJSON(t, r, http.MethodDelete, base, nil).Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, r, http.MethodGet, base, nil).Code)
}

func TestRouter_ValidationErrors(t *testing.T) {
	r := newTestRouter(t)

	// 缺少必填描述
	w := doJSON(t, r, http.MethodPost, "/v1/sessions", map[string]any{"industry": "fintech"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 未知会话
	w = doJSON(t, r, http.MethodPost, "/v1/sessions/unknown/deck", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// 文稿未就绪时修订
	w = doJSON(t, r, http.MethodPost, "/v1/sessions", map[string]any{"description": "robotics"})
	require.Equal(t, http.StatusCreated, w.Code)
	sess := decodeSession(t, w)
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/v1/sessions/%s/slides/1/revise", sess.ID), map[string]any{
		"instruction": "anything",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// 页号不是整数
	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/v1/sessions/%s/slides/abc/revise", sess.ID), map[string]any{
		"instruction": "anything",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_ThemeEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/v1/themes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.Response[dto.ThemeListResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Themes, 5)

	w = doJSON(t, r, http.MethodGet, "/v1/themes/dark", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/v1/themes/no-such-theme", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
