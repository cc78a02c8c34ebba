package entity

import (
	"math"
	"time"
)

// RequisitionSlip is the entry document of the routing chain: a request for
// goods or services, approved through three management levels.
type RequisitionSlip struct {
	ID                   int64          `json:"id"`
	RequisitionNumber    string         `json:"requisition_number"`
	RequesterID          string         `json:"requester_id"`
	DepartmentID         string         `json:"department_id"`
	ProcessingDepartment string         `json:"processing_department"`
	RequestType          string         `json:"request_type"`
	DateRequested        time.Time      `json:"date_requested"`
	DateNeeded           time.Time      `json:"date_needed"`
	Purpose              string         `json:"purpose"`
	Status               string         `json:"status"`
	CurrentApprovalLevel int            `json:"current_approval_level"`
	Items                []*RequestItem `json:"items,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

// TotalCents sums the item subtotals
func (r *RequisitionSlip) TotalCents() int64 {
	var total int64
	for _, item := range r.Items {
		total += item.SubtotalCents
	}
	return total
}

// RequestItem is one line of a requisition slip
type RequestItem struct {
	ID            int64     `json:"id"`
	RequisitionID int64     `json:"requisition_id"`
	Quantity      float64   `json:"quantity"`
	Unit          string    `json:"unit"`
	Particulars   string    `json:"particulars"`
	UnitCostCents int64     `json:"unit_cost_cents"`
	SubtotalCents int64     `json:"subtotal_cents"`
	CreatedAt     time.Time `json:"created_at"`
}

// ComputeSubtotal returns quantity x unit cost rounded to the centavo.
// SubtotalCents must always equal this value.
func (i *RequestItem) ComputeSubtotal() int64 {
	return int64(math.Round(i.Quantity * float64(i.UnitCostCents)))
}
