package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/persx/persx-sub000/internal/pkg/ctxutil"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

// Surfaces of the app, used to slice request logs.
const (
	SurfaceSite   = "site"
	SurfaceAPI    = "api"
	SurfaceAdmin  = "admin"
	SurfaceHealth = "health"
)

// surface classifies a matched route. Authenticated API calls count as admin.
func surface(route string, authed bool) string {
	switch {
	case route == "/healthcheck" || route == "/readyz":
		return SurfaceHealth
	case strings.HasPrefix(route, "/api/"):
		if authed {
			return SurfaceAdmin
		}
		return SurfaceAPI
	default:
		return SurfaceSite
	}
}

// RequestLogger writes one line per request with the matched route, the
// content it addressed and, for site pages, the personalization and cache
// outcome. Healthy health checks log at debug.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if log == nil {
			return
		}
		ctx := c.Request.Context()
		status := c.Writer.Status()
		route := c.FullPath()
		rd := ctxutil.GetRequestData(ctx)
		area := surface(route, rd != nil)

		fields := []interface{}{
			"surface", area,
			"method", c.Request.Method,
			"route", routeOrUnmatched(route),
			"status", status,
			"bytes", c.Writer.Size(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if route == "" || strings.Contains(route, ":") {
			fields = append(fields, "path", c.Request.URL.Path)
		}
		if slug := c.Param("slug"); slug != "" {
			fields = append(fields, "slug", slug)
		}
		if id := c.Param("id"); id != "" {
			fields = append(fields, "content_id", id)
		}
		if blockID := c.Param("blockId"); blockID != "" {
			fields = append(fields, "block_id", blockID)
		}
		if area == SurfaceSite {
			if industry := ctxutil.Industry(ctx); industry != "" {
				fields = append(fields, "industry", industry)
			}
			if hit := c.Writer.Header().Get("X-Cache"); hit != "" {
				fields = append(fields, "cache", strings.ToLower(hit))
			}
		}
		if rd != nil {
			fields = append(fields, "admin_id", rd.UserID.String())
		}
		if td := ctxutil.GetTraceData(ctx); td != nil && td.TraceID != "" {
			fields = append(fields, "trace_id", td.TraceID)
		}
		if errs := c.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			fields = append(fields, "error", errs.String())
		}

		switch {
		case status >= http.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= http.StatusBadRequest && status != http.StatusNotFound:
			log.Warn("request", fields...)
		case area == SurfaceHealth:
			log.Debug("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

func routeOrUnmatched(route string) string {
	if route == "" {
		return "unmatched"
	}
	return route
}
