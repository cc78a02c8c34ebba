package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rbcaldoza/docflows/internal/application/service"
	domainwf "github.com/rbcaldoza/docflows/internal/domain/workflow"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	requisitionService service.RequisitionService
	paymentService     service.PaymentService
	voucherService     service.VoucherService
	checkService       service.CheckService
	exporter           VoucherExporter
	logger             Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	requisitionService service.RequisitionService,
	paymentService service.PaymentService,
	voucherService service.VoucherService,
	checkService service.CheckService,
	exporter VoucherExporter,
	logger Logger,
) *Handlers {
	return &Handlers{
		requisitionService: requisitionService,
		paymentService:     paymentService,
		voucherService:     voucherService,
		checkService:       checkService,
		exporter:           exporter,
		logger:             logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ListRequest represents query parameters for listing documents
type ListRequest struct {
	Limit  int `form:"limit"`
	Offset int `form:"offset"`
}

func (r *ListRequest) normalize() {
	if r.Limit <= 0 || r.Limit > 100 {
		r.Limit = 20
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}

// CommentRequest carries optional approval comments
type CommentRequest struct {
	Comments string `json:"comments"`
}

// ReasonRequest carries a mandatory rejection or void reason
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   "1.0.0",
		},
	})
}

// pathID parses the :id path parameter; a false return means the error
// response was already written
func (h *Handlers) pathID(c *gin.Context) (int64, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid document ID",
		})
		return 0, false
	}
	return id, true
}

// respondError translates service errors into HTTP status codes
func (h *Handlers) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, domainwf.ErrInvalidTransition):
		status = http.StatusUnprocessableEntity
		message = err.Error()
	default:
		h.logger.Error("Request failed", "error", err, "path", c.Request.URL.Path)
	}

	c.JSON(status, Response{
		Success: false,
		Error:   message,
	})
}

func (h *Handlers) respondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func (h *Handlers) respondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}
