package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/persx/persx-sub000/internal/http/response"
	"github.com/persx/persx-sub000/internal/services"
)

type TagHandler struct {
	tagService services.TagService
}

func NewTagHandler(tagService services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// GET /api/tags?category=
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tagService.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"tags": tags})
}

// POST /api/tags
func (h *TagHandler) Create(c *gin.Context) {
	var in services.TagInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	tag, err := h.tagService.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, tag)
}
