package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rbcaldoza/docflows/internal/application/service"
	"github.com/rbcaldoza/docflows/pkg/utils"
)

// RequisitionItemRequest is one line item in a requisition payload
type RequisitionItemRequest struct {
	Quantity      float64 `json:"quantity" binding:"required"`
	Unit          string  `json:"unit"`
	Particulars   string  `json:"particulars" binding:"required"`
	UnitCostCents int64   `json:"unit_cost_cents"`
}

// RequisitionRequest is the create/update payload for a requisition slip
type RequisitionRequest struct {
	DepartmentID         string                   `json:"department_id" binding:"required"`
	ProcessingDepartment string                   `json:"processing_department" binding:"required"`
	RequestType          string                   `json:"request_type" binding:"required"`
	DateNeeded           time.Time                `json:"date_needed"`
	Purpose              string                   `json:"purpose"`
	Items                []RequisitionItemRequest `json:"items"`
}

func (r RequisitionRequest) toInput(requesterID string) service.CreateRequisitionInput {
	input := service.CreateRequisitionInput{
		RequesterID:          requesterID,
		DepartmentID:         r.DepartmentID,
		ProcessingDepartment: r.ProcessingDepartment,
		RequestType:          r.RequestType,
		DateNeeded:           r.DateNeeded,
		Purpose:              utils.SanitizeString(r.Purpose),
	}
	for _, item := range r.Items {
		input.Items = append(input.Items, service.RequisitionItemInput{
			Quantity:      item.Quantity,
			Unit:          item.Unit,
			Particulars:   utils.SanitizeString(item.Particulars),
			UnitCostCents: item.UnitCostCents,
		})
	}
	return input
}

// CreateRequisition handles POST /api/v1/requisitions
func (h *Handlers) CreateRequisition(c *gin.Context) {
	var req RequisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	slip, err := h.requisitionService.CreateDraft(c.Request.Context(), req.toInput(actorID(c)))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondCreated(c, slip)
}

// ListRequisitions handles GET /api/v1/requisitions
func (h *Handlers) ListRequisitions(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid query parameters"})
		return
	}
	req.normalize()

	slips, err := h.requisitionService.List(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, slips)
}

// GetRequisition handles GET /api/v1/requisitions/:id
func (h *Handlers) GetRequisition(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	slip, err := h.requisitionService.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, slip)
}

// UpdateRequisition handles PUT /api/v1/requisitions/:id
func (h *Handlers) UpdateRequisition(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req RequisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	slip, err := h.requisitionService.UpdateDraft(c.Request.Context(), id, actorID(c), req.toInput(actorID(c)))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, slip)
}

// DeleteRequisition handles DELETE /api/v1/requisitions/:id
func (h *Handlers) DeleteRequisition(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.requisitionService.DeleteDraft(c.Request.Context(), id, actorID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmitRequisition handles POST /api/v1/requisitions/:id/submit
func (h *Handlers) SubmitRequisition(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	slip, err := h.requisitionService.Submit(c.Request.Context(), id, actorID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, slip)
}

// ApproveRequisition handles POST /api/v1/requisitions/:id/approve
func (h *Handlers) ApproveRequisition(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req CommentRequest
	_ = c.ShouldBindJSON(&req)

	slip, err := h.requisitionService.Approve(c.Request.Context(), id, actorID(c), req.Comments)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, slip)
}

// RejectRequisition handles POST /api/v1/requisitions/:id/reject
func (h *Handlers) RejectRequisition(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req ReasonRequest
	_ = c.ShouldBindJSON(&req)

	slip, err := h.requisitionService.Reject(c.Request.Context(), id, actorID(c), req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, slip)
}

// CancelRequisition handles POST /api/v1/requisitions/:id/cancel
func (h *Handlers) CancelRequisition(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	slip, err := h.requisitionService.Cancel(c.Request.Context(), id, actorID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, slip)
}

// RequisitionHistory handles GET /api/v1/requisitions/:id/history
func (h *Handlers) RequisitionHistory(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	records, err := h.requisitionService.History(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, records)
}
