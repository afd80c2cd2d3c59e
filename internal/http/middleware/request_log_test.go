package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/persx/persx-sub000/internal/pkg/ctxutil"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

func loggedRouter(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.DebugLevel)
	r := gin.New()
	r.Use(RequestLogger(&logger.Logger{SugaredLogger: zap.New(core).Sugar()}))
	r.Use(Industry())
	r.GET("/healthcheck", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/knowledge/:slug", func(c *gin.Context) {
		c.Header("X-Cache", "HIT")
		c.String(http.StatusOK, "page")
	})
	r.PUT("/api/content/:id/blocks/:blockId", func(c *gin.Context) {
		ctx := ctxutil.WithRequestData(c.Request.Context(), &ctxutil.RequestData{UserID: uuid.Nil})
		c.Request = c.Request.WithContext(ctx)
		c.Status(http.StatusBadRequest)
	})
	return r, logs
}

func serve(r *gin.Engine, method, path string) {
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, path, nil).WithContext(context.Background()))
}

func TestRequestLoggerSitePage(t *testing.T) {
	r, logs := loggedRouter(t)
	serve(r, http.MethodGet, "/knowledge/saas-onboarding?industry=saas")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, SurfaceSite, fields["surface"])
	assert.Equal(t, "/knowledge/:slug", fields["route"])
	assert.Equal(t, "/knowledge/saas-onboarding", fields["path"])
	assert.Equal(t, "saas-onboarding", fields["slug"])
	assert.Equal(t, "saas", fields["industry"])
	assert.Equal(t, "hit", fields["cache"])
}

func TestRequestLoggerAdminBlockEdit(t *testing.T) {
	r, logs := loggedRouter(t)
	id := uuid.NewString()
	serve(r, http.MethodPut, "/api/content/"+id+"/blocks/hero-1")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.Equal(t, SurfaceAdmin, fields["surface"])
	assert.Equal(t, id, fields["content_id"])
	assert.Equal(t, "hero-1", fields["block_id"])
	assert.NotContains(t, fields, "cache")
}

func TestRequestLoggerHealthChecksAndUnmatched(t *testing.T) {
	r, logs := loggedRouter(t)
	serve(r, http.MethodGet, "/healthcheck")
	serve(r, http.MethodGet, "/no/such/route")

	require.Equal(t, 2, logs.Len())
	health, missing := logs.All()[0], logs.All()[1]
	assert.Equal(t, zapcore.DebugLevel, health.Level)
	assert.Equal(t, SurfaceHealth, health.ContextMap()["surface"])
	assert.Equal(t, zapcore.InfoLevel, missing.Level)
	assert.Equal(t, "unmatched", missing.ContextMap()["route"])
	assert.Equal(t, "/no/such/route", missing.ContextMap()["path"])
}
