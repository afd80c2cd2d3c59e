package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	g "maragu.dev/gomponents"

	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/http/middleware"
	perrors "github.com/persx/persx-sub000/internal/pkg/errors"
	"github.com/persx/persx-sub000/internal/platform/logger"
	"github.com/persx/persx-sub000/internal/render"
	"github.com/persx/persx-sub000/internal/services"
)

const (
	homeSlug     = "home"
	htmlMIME     = "text/html; charset=utf-8"
	relatedLimit = 3
)

// PageHandler serves the public site. Anonymous responses are cached per
// path and industry.
type PageHandler struct {
	log            *logger.Logger
	contentService services.ContentService
	renderer       *render.Renderer
	pages          *services.PageCache
}

func NewPageHandler(log *logger.Logger, contentService services.ContentService, renderer *render.Renderer, pages *services.PageCache) *PageHandler {
	return &PageHandler{
		log:            log.With("handler", "PageHandler"),
		contentService: contentService,
		renderer:       renderer,
		pages:          pages,
	}
}

// GET /
func (h *PageHandler) Home(c *gin.Context) {
	h.cached(c, pageKey(c, nil), func() rendered { return asRendered(h.record(c, homeSlug, nil)) })
}

// GET /pages/:slug
func (h *PageHandler) Page(c *gin.Context) {
	slug := c.Param("slug")
	h.cached(c, pageKey(c, nil), func() rendered {
		return asRendered(h.record(c, slug, func(rec *types.ContentRecord) bool {
			return rec.ContentType == types.ContentTypePage
		}))
	})
}

// GET /knowledge/:slug
func (h *PageHandler) Article(c *gin.Context) {
	slug := c.Param("slug")
	h.cached(c, pageKey(c, nil), func() rendered {
		return asRendered(h.record(c, slug, func(rec *types.ContentRecord) bool {
			return rec.ContentType != types.ContentTypePage
		}))
	})
}

// GET /knowledge?type=&tag=
func (h *PageHandler) Knowledge(c *gin.Context) {
	f := render.IndexFilter{Type: types.ContentType(c.Query("type")), Tag: strings.TrimSpace(c.Query("tag"))}
	if f.Type != "" && !f.Type.Valid() {
		f.Type = ""
	}
	params := url.Values{}
	if f.Type != "" {
		params.Set("type", string(f.Type))
	}
	if f.Tag != "" {
		params.Set("tag", f.Tag)
	}
	h.cached(c, pageKey(c, params), func() rendered {
		recs, err := h.contentService.ListPublished(c.Request.Context(), f.Type, f.Tag)
		if err != nil {
			return asRendered(h.failed(c, err))
		}
		visible := recs[:0]
		for _, r := range recs {
			if r.ContentType != types.ContentTypePage {
				visible = append(visible, r)
			}
		}
		// empty filtered indexes are not stored
		return rendered{
			status:  http.StatusOK,
			node:    h.renderer.KnowledgeIndex(visible, f),
			noStore: len(params) > 0 && len(visible) == 0,
		}
	})
}

func (h *PageHandler) NotFound(c *gin.Context) {
	h.write(c, http.StatusNotFound, h.renderer.NotFound())
}

func (h *PageHandler) record(c *gin.Context, slug string, accept func(*types.ContentRecord) bool) (int, g.Node) {
	ctx := c.Request.Context()
	rec, err := h.contentService.GetPublished(ctx, slug)
	if errors.Is(err, perrors.ErrNotFound) || (err == nil && accept != nil && !accept(rec)) {
		return http.StatusNotFound, h.renderer.NotFound()
	}
	if err != nil {
		return h.failed(c, err)
	}
	var related []*types.ContentRecord
	if !rec.HasBlocks() {
		related, err = h.contentService.Related(ctx, rec, relatedLimit)
		if err != nil {
			h.log.Warn("related content lookup failed", "slug", slug, "error", err)
		}
	}
	return http.StatusOK, h.renderer.RecordPage(rec, middleware.RequestIndustry(c), related)
}

func (h *PageHandler) failed(c *gin.Context, err error) (int, g.Node) {
	_ = c.Error(err)
	return http.StatusInternalServerError, h.renderer.Page(render.PageMeta{Title: "Something went wrong"},
		g.El("p", g.Text("Something went wrong. Please try again shortly.")))
}

type rendered struct {
	status  int
	node    g.Node
	noStore bool
}

func asRendered(status int, node g.Node) rendered {
	return rendered{status: status, node: node}
}

// cached serves from the page cache when the visitor is anonymous, otherwise
// renders fresh. Only 200 responses are stored.
func (h *PageHandler) cached(c *gin.Context, key string, build func() rendered) {
	ctx := c.Request.Context()
	industry := string(middleware.RequestIndustry(c))
	anonymous := !hasSession(c)

	if anonymous {
		if body, ok := h.pages.Get(ctx, key, industry); ok {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, htmlMIME, body)
			return
		}
	}

	out := build()
	var buf bytes.Buffer
	if err := render.Write(&buf, out.node); err != nil {
		h.log.Error("page render failed", "path", key, "error", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	if anonymous && out.status == http.StatusOK && !out.noStore {
		h.pages.Set(ctx, key, industry, buf.Bytes())
		c.Header("X-Cache", "MISS")
	}
	c.Data(out.status, htmlMIME, buf.Bytes())
}

func (h *PageHandler) write(c *gin.Context, status int, node g.Node) {
	var buf bytes.Buffer
	if err := render.Write(&buf, node); err != nil {
		h.log.Error("page render failed", "path", c.Request.URL.Path, "error", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(status, htmlMIME, buf.Bytes())
}

// pageKey is the request path plus only the query params the page renders
// from. Anything else in the query shares the bare path's entry.
func pageKey(c *gin.Context, params url.Values) string {
	if len(params) == 0 {
		return c.Request.URL.Path
	}
	return c.Request.URL.Path + "?" + params.Encode()
}

func hasSession(c *gin.Context) bool {
	v, err := c.Cookie(middleware.SessionCookie)
	return err == nil && v != ""
}

