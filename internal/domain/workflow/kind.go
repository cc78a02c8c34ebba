package workflow

// DocumentKind identifies which document lifecycle a state machine governs
type DocumentKind string

const (
	KindRequisitionSlip DocumentKind = "REQUISITION_SLIP"
	KindPaymentRequest  DocumentKind = "REQUISITION_FOR_PAYMENT"
	KindCheckVoucher    DocumentKind = "CHECK_VOUCHER"
	KindCheck           DocumentKind = "CHECK"
)

// kindStates enumerates the states reachable (or declared) per document kind.
// PENDING_VERIFICATION is declared for check vouchers but no transition
// produces it; verification moves DRAFT directly to VERIFIED.
var kindStates = map[DocumentKind]map[State]bool{
	KindRequisitionSlip: {
		StateDraft:           true,
		StateSubmitted:       true,
		StatePendingApproval: true,
		StateApproved:        true,
		StateRejected:        true,
		StateCancelled:       true,
	},
	KindPaymentRequest: {
		StateDraft:           true,
		StateSubmitted:       true,
		StatePendingApproval: true,
		StateApproved:        true,
		StateCVGenerated:     true,
		StateCheckIssued:     true,
		StateDisbursed:       true,
		StateRejected:        true,
		StateCancelled:       true,
	},
	KindCheckVoucher: {
		StateDraft:               true,
		StatePendingVerification: true,
		StateVerified:            true,
		StateApproved:            true,
		StateCheckIssued:         true,
		StateRejected:            true,
	},
	KindCheck: {
		StateIssued:    true,
		StateDisbursed: true,
		StateVoided:    true,
		StateCancelled: true,
	},
}

var kindTerminalStates = map[DocumentKind]map[State]bool{
	KindRequisitionSlip: {
		StateApproved:  true,
		StateRejected:  true,
		StateCancelled: true,
	},
	KindPaymentRequest: {
		StateDisbursed: true,
		StateRejected:  true,
		StateCancelled: true,
	},
	KindCheckVoucher: {
		StateCheckIssued: true,
		StateRejected:    true,
	},
	KindCheck: {
		StateDisbursed: true,
		StateVoided:    true,
		StateCancelled: true,
	},
}

var kindInitialStates = map[DocumentKind]State{
	KindRequisitionSlip: StateDraft,
	KindPaymentRequest:  StateDraft,
	KindCheckVoucher:    StateDraft,
	KindCheck:           StateIssued,
}

// String returns the string representation of the kind
func (k DocumentKind) String() string {
	return string(k)
}

// IsValid returns true if the kind is a known document kind
func (k DocumentKind) IsValid() bool {
	_, ok := kindStates[k]
	return ok
}

// Initial returns the state a newly created document of this kind starts in
func (k DocumentKind) Initial() State {
	return kindInitialStates[k]
}

// Allows returns true if the state belongs to this kind's lifecycle
func (k DocumentKind) Allows(s State) bool {
	return kindStates[k][s]
}

// IsTerminal returns true if no transition leaves the state for this kind
func (k DocumentKind) IsTerminal(s State) bool {
	return kindTerminalStates[k][s]
}
