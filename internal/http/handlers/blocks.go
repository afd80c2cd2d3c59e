package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/persx/persx-sub000/internal/domain/blocks"
	"github.com/persx/persx-sub000/internal/http/response"
	"github.com/persx/persx-sub000/internal/services"
)

type BlockHandler struct {
	contentService services.ContentService
}

func NewBlockHandler(contentService services.ContentService) *BlockHandler {
	return &BlockHandler{contentService: contentService}
}

type blockTypeInfo struct {
	Type           blocks.Type `json:"type"`
	Label          string      `json:"label"`
	FullWidth      bool        `json:"full_width"`
	Personalizable bool        `json:"personalizable"`
	Defaults       blocks.Data `json:"defaults"`
}

// GET /api/blocks/types lists the palette the editor offers.
func (h *BlockHandler) Types(c *gin.Context) {
	out := make([]blockTypeInfo, 0, len(blocks.Types))
	for _, t := range blocks.Types {
		d, err := blocks.DefaultData(t)
		if err != nil {
			response.RespondAPIError(c, err)
			return
		}
		out = append(out, blockTypeInfo{
			Type:           t,
			Label:          t.Label(),
			FullWidth:      t.FullWidth(),
			Personalizable: t.Personalizable(),
			Defaults:       d,
		})
	}
	industries := make([]gin.H, 0, len(blocks.Industries))
	for _, i := range blocks.Industries {
		industries = append(industries, gin.H{"id": i, "label": i.Label()})
	}
	response.RespondOK(c, gin.H{"types": out, "industries": industries})
}

// GET /api/content/:id/blocks
func (h *BlockHandler) List(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	bs, err := h.contentService.ListBlocks(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"blocks": bs})
}

// POST /api/content/:id/blocks
func (h *BlockHandler) Add(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req struct {
		Type blocks.Type `json:"type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if !req.Type.Known() {
		response.RespondError(c, http.StatusBadRequest, "unknown_type", blocks.ErrUnknownType)
		return
	}
	b, err := h.contentService.AddBlock(c.Request.Context(), id, req.Type)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, b)
}

// PUT /api/content/:id/blocks/:blockId
func (h *BlockHandler) Update(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var in services.BlockUpdate
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	b, err := h.contentService.UpdateBlock(c.Request.Context(), id, c.Param("blockId"), in)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, b)
}

// DELETE /api/content/:id/blocks/:blockId
func (h *BlockHandler) Delete(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if err := h.contentService.DeleteBlock(c.Request.Context(), id, c.Param("blockId")); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// POST /api/content/:id/blocks/:blockId/move
func (h *BlockHandler) Move(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	var req struct {
		Direction string `json:"direction" binding:"required,oneof=up down"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	bs, err := h.contentService.MoveBlock(c.Request.Context(), id, c.Param("blockId"), req.Direction)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"blocks": bs})
}
