package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/persx/persx-sub000/internal/generation"
	"github.com/persx/persx-sub000/internal/http/response"
)

type GenerateHandler struct {
	gen *generation.Service
}

func NewGenerateHandler(gen *generation.Service) *GenerateHandler {
	return &GenerateHandler{gen: gen}
}

type generateRequest struct {
	Type    string              `json:"type"`
	Sources []generation.Source `json:"sources"`
	Source  *generation.Source  `json:"source"`
	Title   string              `json:"title"`
	Summary string              `json:"summary"`
}

func (r generateRequest) allSources() []generation.Source {
	if len(r.Sources) > 0 {
		return r.Sources
	}
	if r.Source != nil {
		return []generation.Source{*r.Source}
	}
	return nil
}

// POST /api/content/generate-summary
//
// Degraded output is flagged with "fallback": true and the first reason.
func (h *GenerateHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	op, ok := generation.ParseOp(req.Type)
	if !ok {
		response.RespondError(c, http.StatusBadRequest, "unknown_type", errors.New("unknown generation type: "+strings.TrimSpace(req.Type)))
		return
	}
	sources := req.allSources()
	if len(sources) == 0 && op != generation.OpTags {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("at least one source is required"))
		return
	}

	ctx := c.Request.Context()
	out := gin.H{}
	var reasons []string
	note := func(fallback bool, reason string) {
		if fallback {
			reasons = append(reasons, reason)
		}
	}

	switch op {
	case generation.OpTitleAndSummary:
		title, summary := h.gen.TitleAndSummary(ctx, sources)
		out["title"], out["summary"] = title.Value, summary.Value
		note(title.Fallback, title.Reason)
		note(summary.Fallback, summary.Reason)
	case generation.OpTitleOnly:
		title := h.gen.Title(ctx, sources)
		out["title"] = title.Value
		note(title.Fallback, title.Reason)
	case generation.OpSummaryOnly:
		summary := h.gen.Summary(ctx, sources, req.Title)
		out["summary"] = summary.Value
		note(summary.Fallback, summary.Reason)
	case generation.OpPerspective:
		p := h.gen.Perspective(ctx, sources[0])
		out["perspective"] = p.Value
		note(p.Fallback, p.Reason)
	case generation.OpTags:
		tags := h.gen.Tags(ctx, req.Title, req.Summary, sources)
		out["tags"] = tags.Tags
		note(tags.Fallback, tags.Reason)
	}

	if len(reasons) > 0 {
		out["fallback"] = true
		out["fallback_reason"] = reasons[0]
	}
	response.RespondOK(c, out)
}
