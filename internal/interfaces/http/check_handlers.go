package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListChecks handles GET /api/v1/checks
func (h *Handlers) ListChecks(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid query parameters"})
		return
	}
	req.normalize()

	checks, err := h.checkService.List(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, checks)
}

// GetCheck handles GET /api/v1/checks/:id
func (h *Handlers) GetCheck(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	check, err := h.checkService.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, check)
}

// ClearCheck handles POST /api/v1/checks/:id/clear
func (h *Handlers) ClearCheck(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	check, err := h.checkService.Clear(c.Request.Context(), id, actorID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, check)
}

// VoidCheck handles POST /api/v1/checks/:id/void
func (h *Handlers) VoidCheck(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req ReasonRequest
	_ = c.ShouldBindJSON(&req)

	check, err := h.checkService.Void(c.Request.Context(), id, actorID(c), req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, check)
}

// CancelCheck handles POST /api/v1/checks/:id/cancel
func (h *Handlers) CancelCheck(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	check, err := h.checkService.Cancel(c.Request.Context(), id, actorID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, check)
}

// CheckHistory handles GET /api/v1/checks/:id/history
func (h *Handlers) CheckHistory(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	records, err := h.checkService.History(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, records)
}
