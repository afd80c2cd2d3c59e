package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/http/response"
	"github.com/persx/persx-sub000/internal/services"
	"github.com/persx/persx-sub000/internal/wizard"
)

type QuickAddHandler struct {
	quickAdd services.QuickAddService
}

func NewQuickAddHandler(quickAdd services.QuickAddService) *QuickAddHandler {
	return &QuickAddHandler{quickAdd: quickAdd}
}

type sessionView struct {
	*wizard.Session
	StepName    string `json:"step_name"`
	ReadyToSave bool   `json:"ready_to_save"`
}

func view(s *wizard.Session) sessionView {
	return sessionView{Session: s, StepName: s.Step.String(), ReadyToSave: s.ReadyToSave()}
}

// respond writes the session, or for step-local wizard errors a 422 that
// still carries the unchanged session so the UI can stay on the step.
func (h *QuickAddHandler) respond(c *gin.Context, s *wizard.Session, err error) {
	if err == nil {
		response.RespondOK(c, view(s))
		return
	}
	code := stepErrorCode(err)
	switch {
	case code == "":
		response.RespondAPIError(c, err)
	case s != nil:
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   response.APIError{Message: err.Error(), Code: code},
			"session": view(s),
		})
	default:
		response.RespondError(c, http.StatusUnprocessableEntity, code, err)
	}
}

func stepErrorCode(err error) string {
	switch {
	case errors.Is(err, wizard.ErrURLRequired):
		return "url_required"
	case errors.Is(err, wizard.ErrTooManyURLs):
		return "too_many_urls"
	case errors.Is(err, wizard.ErrFetchFailed):
		return "fetch_failed"
	case errors.Is(err, wizard.ErrWrongStep):
		return "wrong_step"
	case errors.Is(err, wizard.ErrUnknownField):
		return "unknown_field"
	}
	return ""
}

// POST /api/quick-add
func (h *QuickAddHandler) Start(c *gin.Context) {
	s, err := h.quickAdd.Start(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondCreated(c, view(s))
}

// GET /api/quick-add/:id
func (h *QuickAddHandler) Get(c *gin.Context) {
	s, err := h.quickAdd.Get(c.Request.Context(), c.Param("id"))
	h.respond(c, s, err)
}

// PUT /api/quick-add/:id/urls
func (h *QuickAddHandler) SetURLs(c *gin.Context) {
	var req struct {
		URLs []string `json:"urls"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	s, err := h.quickAdd.SetURLs(c.Request.Context(), c.Param("id"), req.URLs)
	h.respond(c, s, err)
}

// POST /api/quick-add/:id/next
func (h *QuickAddHandler) Next(c *gin.Context) {
	s, err := h.quickAdd.Next(c.Request.Context(), c.Param("id"))
	h.respond(c, s, err)
}

// POST /api/quick-add/:id/back
func (h *QuickAddHandler) Back(c *gin.Context) {
	s, err := h.quickAdd.Back(c.Request.Context(), c.Param("id"))
	h.respond(c, s, err)
}

// POST /api/quick-add/:id/regenerate with {"field": "title"|"summary"|"tags"|"perspective:<i>"}
func (h *QuickAddHandler) Regenerate(c *gin.Context) {
	var req struct {
		Field string `json:"field" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	s, err := h.quickAdd.Regenerate(c.Request.Context(), c.Param("id"), req.Field)
	h.respond(c, s, err)
}

// PATCH /api/quick-add/:id
func (h *QuickAddHandler) Edit(c *gin.Context) {
	var e wizard.Edit
	if err := c.ShouldBindJSON(&e); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	s, err := h.quickAdd.Edit(c.Request.Context(), c.Param("id"), e)
	h.respond(c, s, err)
}

// POST /api/quick-add/:id/save
func (h *QuickAddHandler) Save(c *gin.Context) {
	var req struct {
		Status types.ContentStatus `json:"status"`
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
	}
	rec, err := h.quickAdd.Save(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.respond(c, nil, err)
		return
	}
	response.RespondCreated(c, rec)
}
