package entity

// Status constants for RequisitionSlip and RequisitionForPayment
const (
	StatusDraft           = "DRAFT"
	StatusSubmitted       = "SUBMITTED"
	StatusPendingApproval = "PENDING_APPROVAL"
	StatusApproved        = "APPROVED"
	StatusRejected        = "REJECTED"
	StatusCancelled       = "CANCELLED"
)

// Additional status constants for RequisitionForPayment
const (
	StatusCVGenerated = "CV_GENERATED"
	StatusCheckIssued = "CHECK_ISSUED"
	StatusDisbursed   = "DISBURSED"
)

// Status constants for CheckVoucher
const (
	StatusPendingVerification = "PENDING_VERIFICATION"
	StatusVerified            = "VERIFIED"
)

// Status constants for Check
const (
	StatusIssued = "ISSUED"
	StatusVoided = "VOIDED"
)

// Entity type constants for ApprovalRecord
const (
	EntityTypeRequisitionSlip = "REQUISITION_SLIP"
	EntityTypePaymentRequest  = "REQUISITION_FOR_PAYMENT"
	EntityTypeCheckVoucher    = "CHECK_VOUCHER"
	EntityTypeCheck           = "CHECK"
)

// Action constants for ApprovalRecord
const (
	ActionSubmit          = "SUBMIT"
	ActionApprove         = "APPROVE"
	ActionReject          = "REJECT"
	ActionCancel          = "CANCEL"
	ActionGenerateVoucher = "GENERATE_VOUCHER"
	ActionVerify          = "VERIFY"
	ActionIssueCheck      = "ISSUE_CHECK"
	ActionClear           = "CLEAR"
	ActionVoid            = "VOID"
)

// Role constants for authority checks
const (
	RoleRequester = "REQUESTER"
	RoleFinance   = "FINANCE"
	RoleAdmin     = "ADMIN"
)

// Number series names
const (
	SeriesRequisition  = "RS"
	SeriesPayment      = "RFP"
	SeriesCheckVoucher = "CV"
)
