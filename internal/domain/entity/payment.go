package entity

import "time"

// RequisitionForPayment is a request to disburse funds to a payee,
// optionally backed by an approved requisition slip.
type RequisitionForPayment struct {
	ID                   int64     `json:"id"`
	RFPNumber            string    `json:"rfp_number"`
	RequisitionSlipID    *int64    `json:"requisition_slip_id,omitempty"`
	RequesterID          string    `json:"requester_id"`
	DepartmentID         string    `json:"department_id"`
	Payee                string    `json:"payee"`
	Particulars          string    `json:"particulars"`
	AmountCents          int64     `json:"amount_cents"`
	Status               string    `json:"status"`
	CurrentApprovalLevel int       `json:"current_approval_level"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
