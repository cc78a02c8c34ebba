package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rbcaldoza/docflows/internal/domain/entity"
)

// VoucherExporter renders a check voucher as a printable spreadsheet
type VoucherExporter interface {
	Export(cv *entity.CheckVoucher, check *entity.Check) ([]byte, error)
}

// IssueCheckRequest is the payload for issuing a check against a voucher
type IssueCheckRequest struct {
	CheckNumber   string `json:"check_number" binding:"required"`
	BankAccountID string `json:"bank_account_id" binding:"required"`
}

// ListVouchers handles GET /api/v1/vouchers
func (h *Handlers) ListVouchers(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: "invalid query parameters"})
		return
	}
	req.normalize()

	vouchers, err := h.voucherService.List(c.Request.Context(), req.Limit, req.Offset)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, vouchers)
}

// GetVoucher handles GET /api/v1/vouchers/:id
func (h *Handlers) GetVoucher(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	cv, err := h.voucherService.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, cv)
}

// VerifyVoucher handles POST /api/v1/vouchers/:id/verify
func (h *Handlers) VerifyVoucher(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	cv, err := h.voucherService.Verify(c.Request.Context(), id, actorID(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, cv)
}

// ApproveVoucher handles POST /api/v1/vouchers/:id/approve
func (h *Handlers) ApproveVoucher(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req CommentRequest
	_ = c.ShouldBindJSON(&req)

	cv, err := h.voucherService.Approve(c.Request.Context(), id, actorID(c), req.Comments)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, cv)
}

// RejectVoucher handles POST /api/v1/vouchers/:id/reject
func (h *Handlers) RejectVoucher(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req ReasonRequest
	_ = c.ShouldBindJSON(&req)

	cv, err := h.voucherService.Reject(c.Request.Context(), id, actorID(c), req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, cv)
}

// IssueCheck handles POST /api/v1/vouchers/:id/check
func (h *Handlers) IssueCheck(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req IssueCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	check, err := h.voucherService.IssueCheck(c.Request.Context(), id, actorID(c), req.CheckNumber, req.BankAccountID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondCreated(c, check)
}

// ExportVoucher handles GET /api/v1/vouchers/:id/export, streaming the
// printable voucher form
func (h *Handlers) ExportVoucher(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	cv, err := h.voucherService.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	// The issued check, if any, appears on the printed form
	check, err := h.checkService.GetByVoucher(c.Request.Context(), cv.ID)
	if err != nil {
		check = nil
	}

	data, err := h.exporter.Export(cv, check)
	if err != nil {
		h.respondError(c, err)
		return
	}

	filename := fmt.Sprintf("%s.xlsx", cv.CVNumber)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// VoucherHistory handles GET /api/v1/vouchers/:id/history
func (h *Handlers) VoucherHistory(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	records, err := h.voucherService.History(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondOK(c, records)
}
