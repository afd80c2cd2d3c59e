package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/http/response"
	"github.com/persx/persx-sub000/internal/services"
)

type ContentHandler struct {
	contentService services.ContentService
}

func NewContentHandler(contentService services.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// GET /api/content
func (h *ContentHandler) List(c *gin.Context) {
	items, total, err := h.contentService.List(c.Request.Context(), services.ContentListInput{
		Status: c.Query("status"),
		Type:   c.Query("type"),
		Tag:    c.Query("tag"),
		Limit:  intQuery(c, "limit", 0),
		Offset: intQuery(c, "offset", 0),
	})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": items, "total": total})
}

// POST /api/content
func (h *ContentHandler) Create(c *gin.Context) {
	var in services.ContentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rec, err := h.contentService.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, rec)
}

// GET /api/content/:id
func (h *ContentHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	view, err := h.contentService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, view)
}

// PUT /api/content/:id
func (h *ContentHandler) Update(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var in services.ContentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rec, err := h.contentService.Update(c.Request.Context(), id, in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, rec)
}

// POST /api/content/:id/status
func (h *ContentHandler) SetStatus(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req struct {
		Status types.ContentStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rec, err := h.contentService.SetStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, rec)
}

// GET /api/content/:id/related lists published records sharing the most tags.
func (h *ContentHandler) Related(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	view, err := h.contentService.Get(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	limit := intQuery(c, "limit", 3)
	if limit > 20 {
		limit = 20
	}
	items, err := h.contentService.Related(c.Request.Context(), view.ContentRecord, limit)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}
