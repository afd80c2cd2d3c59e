package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/persx/persx-sub000/internal/data/graph"
	"github.com/persx/persx-sub000/internal/data/repos"
	"github.com/persx/persx-sub000/internal/data/repos/testutil"
	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/generation"
	httpH "github.com/persx/persx-sub000/internal/http/handlers"
	httpMW "github.com/persx/persx-sub000/internal/http/middleware"
	"github.com/persx/persx-sub000/internal/markdown"
	"github.com/persx/persx-sub000/internal/platform/cache"
	"github.com/persx/persx-sub000/internal/platform/logger"
	"github.com/persx/persx-sub000/internal/render"
	"github.com/persx/persx-sub000/internal/services"
)

type testEnv struct {
	router  *gin.Engine
	content services.ContentService
	token   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	db := testutil.DB(t)
	md := markdown.New()

	tags := services.NewTagService(log, repos.NewTagRepo(db, log))
	pages := services.NewPageCache(cache.NewMemory(), time.Minute, log)
	content := services.NewContentService(db, log, repos.NewContentRepo(db, log), tags, md, graph.NewContentGraph(nil, log), pages)
	auth := services.NewAuthService(log, repos.NewAdminUserRepo(db, log), "router-test-secret", time.Hour)
	gen, err := generation.NewService(nil, log)
	require.NoError(t, err)

	ctx := context.Background()
	_, err = auth.CreateUser(ctx, "admin@persx.ai", "Admin", "correct horse")
	require.NoError(t, err)
	login, err := auth.Login(ctx, "admin@persx.ai", "correct horse")
	require.NoError(t, err)

	r := NewRouter(RouterConfig{
		Log:             log,
		AuthHandler:     httpH.NewAuthHandler(auth, false),
		AuthMiddleware:  httpMW.NewAuthMiddleware(log, auth),
		ContentHandler:  httpH.NewContentHandler(content),
		BlockHandler:    httpH.NewBlockHandler(content),
		GenerateHandler: httpH.NewGenerateHandler(gen),
		TagHandler:      httpH.NewTagHandler(tags),
		PageHandler:     httpH.NewPageHandler(log, content, render.New(log, md, render.SiteConfig{}), pages),
		HealthHandler:   httpH.NewHealthHandler(nil),
	})
	return &testEnv{router: r, content: content, token: login.Token}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	env := decode(t, rec)
	e, ok := env["error"].(map[string]any)
	require.True(t, ok, rec.Body.String())
	code, _ := e["code"].(string)
	return code
}

func TestGenerateSummaryRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/content/generate-summary", map[string]any{"type": "title_only"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", errorCode(t, rec))
}

func TestGenerateSummaryRejectsUnknownType(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/content/generate-summary", map[string]any{
		"type":    "haiku",
		"sources": []map[string]string{{"title": "A"}},
	}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unknown_type", errorCode(t, rec))
}

func TestGenerateSummaryFallsBackWhenModelUnavailable(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/content/generate-summary", map[string]any{
		"title":   "T",
		"sources": []map[string]string{{"title": "A"}, {"title": "B"}},
		"type":    "title_and_summary",
	}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	out := decode(t, rec)
	assert.Equal(t, "Industry Insights: A, B...", out["title"])
	assert.Contains(t, out["summary"], "This roundup covers 2 key articles")
	assert.Equal(t, true, out["fallback"])

	rec = env.do(t, http.MethodPost, "/api/content/generate-summary", map[string]any{
		"type":  "tags",
		"title": "T",
	}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"marketing-technology", "industry-news", "digital-marketing"}, decode(t, rec)["tags"])
}

func TestLoginCookieAuthenticatesAdminAPI(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@persx.ai", "password": "nope"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@persx.ai", "password": "correct horse"}, false)
	require.Equal(t, http.StatusOK, rec.Code)
	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == httpMW.SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(session)
	me := httptest.NewRecorder()
	env.router.ServeHTTP(me, req)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, "admin@persx.ai", decode(t, me)["email"])
}

func TestContentAPIConflictsOnDuplicateSlug(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]any{"title": "Hello World", "content_type": "blog_post", "content": "Hi"}
	rec := env.do(t, http.MethodPost, "/api/content", body, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "hello-world", decode(t, rec)["slug"])

	rec = env.do(t, http.MethodPost, "/api/content", body, true)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", errorCode(t, rec))

	rec = env.do(t, http.MethodGet, "/api/content/not-a-uuid", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublicPagesArePersonalizedAndCached(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	home, err := env.content.Create(ctx, services.ContentInput{
		Title:       "Home",
		Slug:        "home",
		ContentType: types.ContentTypePage,
		Status:      types.StatusPublished,
		ContentBlocks: json.RawMessage(`[{"id":"hero-1","type":"hero","order":1,
			"data":{"headline":"Personalization for everyone","subheadline":"Default"},
			"personalization":{"enabled":true,"variants":{"saas":{"headline":"Personalization for SaaS","subheadline":"Trials"}}}}]`),
	})
	require.NoError(t, err)

	get := func(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		return rec
	}

	rec := get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Personalization for everyone")
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))

	rec = get("/?industry=saas")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Personalization for SaaS")

	rec = get("/", &http.Cookie{Name: httpMW.IndustryCookie, Value: "saas"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Contains(t, rec.Body.String(), "Personalization for SaaS")

	_, err = env.content.SetStatus(ctx, home.ID, types.StatusDraft)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, get("/").Code)
	assert.Equal(t, http.StatusNotFound, get("/knowledge/missing").Code)
	assert.Equal(t, http.StatusNotFound, get("/no/such/route").Code)
}

func TestPageCacheIgnoresUnusedQueryParams(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.content.Create(ctx, services.ContentInput{
		Title:       "Home",
		Slug:        "home",
		ContentType: types.ContentTypePage,
		Status:      types.StatusPublished,
		ContentBlocks: json.RawMessage(`[{"id":"callout-1","type":"callout","order":1,
			"data":{"title":"Hello","content":"World"}}]`),
	})
	require.NoError(t, err)
	_, err = env.content.Create(ctx, services.ContentInput{
		Title:       "SaaS onboarding",
		ContentType: types.ContentTypeGuide,
		Status:      types.StatusPublished,
		Content:     ptr("Body"),
		Tags:        []string{"saas"},
	})
	require.NoError(t, err)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
		return rec
	}

	assert.Equal(t, "MISS", get("/").Header().Get("X-Cache"))
	for _, path := range []string{"/?junk=1", "/?junk=2", "/?sent=1&utm_source=x"} {
		assert.Equal(t, "HIT", get(path).Header().Get("X-Cache"), path)
	}

	assert.Equal(t, "MISS", get("/knowledge?tag=saas&junk=1").Header().Get("X-Cache"))
	assert.Equal(t, "HIT", get("/knowledge?junk=2&tag=saas").Header().Get("X-Cache"))
	assert.Equal(t, "HIT", get("/knowledge?tag=saas&type=bogus").Header().Get("X-Cache"))

	// filters that match nothing are rendered but never stored
	for range 2 {
		assert.Empty(t, get("/knowledge?tag=no-such-tag").Header().Get("X-Cache"))
	}
}

func ptr(s string) *string { return &s }
