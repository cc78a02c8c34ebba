package entity

import "time"

// CheckVoucher is the accounting instrument generated from an approved
// requisition for payment, one per RFP.
type CheckVoucher struct {
	ID          int64     `json:"id"`
	CVNumber    string    `json:"cv_number"`
	RFPID       int64     `json:"rfp_id"`
	Payee       string    `json:"payee"`
	Particulars string    `json:"particulars"`
	AmountCents int64     `json:"amount_cents"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Check is the negotiable instrument issued against an approved check
// voucher, one per voucher.
type Check struct {
	ID               int64      `json:"id"`
	CheckNumber      string     `json:"check_number"`
	CheckVoucherID   int64      `json:"check_voucher_id"`
	BankAccountID    string     `json:"bank_account_id"`
	Status           string     `json:"status"`
	CheckDate        time.Time  `json:"check_date"`
	DisbursementDate *time.Time `json:"disbursement_date,omitempty"`
	VoidReason       string     `json:"void_reason,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
