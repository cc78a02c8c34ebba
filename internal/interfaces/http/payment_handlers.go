package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rbcaldoza/docflows/internal/application/service"
	"github.com/rbcaldoza/docflows/pkg/utils"
)

// PaymentRequest is the create payload for a requisition for payment
type PaymentRequest struct {
	DepartmentID      string `json:"department_id" binding:"required"`
	RequisitionSlipID *int64 `json:"requisition_slip_id"`
	Payee             string `json:"payee"`
	Particulars       string `json:"particulars"`
	AmountCents       int64  `json:"amount_cents" binding:"required"`
}

// CreatePayment handles POST /api/v1/payments
func (h *Handlers) CreatePayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	rfp, err := h.paymentService.CreateDraft(c.Request.Context(), service.CreatePaymentInput{
		RequesterID:       actorID(c),
		DepartmentID:      req.DepartmentID,
		RequisitionSlipID: req.RequisitionSlipID,
		Payee:             utils.SanitizeString(req.Payee),
		Particulars:       utils.SanitizeString(req.Particulars),
		AmountCents:       req.AmountCents,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondCreated(c, rfp)
}

// ListPayments handles GET /api/v1/payments
func (h *Handlers) ListPayments(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid query parameters"})
		return
	}
	req.normalize()

	rfps, err := h.paymentService.List(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, rfps)
}

// GetPayment handles GET /api/v1/payments/:id
func (h *Handlers) GetPayment(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	rfp, err := h.paymentService.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, rfp)
}

// DeletePayment handles DELETE /api/v1/payments/:id
func (h *Handlers) DeletePayment(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.paymentService.DeleteDraft(c.Request.Context(), id, actorID(c)); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SubmitPayment handles POST /api/v1/payments/:id/submit
func (h *Handlers) SubmitPayment(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	rfp, err := h.paymentService.Submit(c.Request.Context(), id, actorID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, rfp)
}

// ApprovePayment handles POST /api/v1/payments/:id/approve
func (h *Handlers) ApprovePayment(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req CommentRequest
	_ = c.ShouldBindJSON(&req)

	rfp, err := h.paymentService.Approve(c.Request.Context(), id, actorID(c), req.Comments)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, rfp)
}

// RejectPayment handles POST /api/v1/payments/:id/reject
func (h *Handlers) RejectPayment(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req ReasonRequest
	_ = c.ShouldBindJSON(&req)

	rfp, err := h.paymentService.Reject(c.Request.Context(), id, actorID(c), req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, rfp)
}

// CancelPayment handles POST /api/v1/payments/:id/cancel
func (h *Handlers) CancelPayment(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	rfp, err := h.paymentService.Cancel(c.Request.Context(), id, actorID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, rfp)
}

// GenerateVoucher handles POST /api/v1/payments/:id/voucher
func (h *Handlers) GenerateVoucher(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	cv, err := h.paymentService.GenerateCheckVoucher(c.Request.Context(), id, actorID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondCreated(c, cv)
}

// PaymentHistory handles GET /api/v1/payments/:id/history
func (h *Handlers) PaymentHistory(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	records, err := h.paymentService.History(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, records)
}
