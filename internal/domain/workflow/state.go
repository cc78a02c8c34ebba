package workflow

// State represents a document status in the routing lifecycle
type State string

const (
	StateDraft               State = "DRAFT"
	StateSubmitted           State = "SUBMITTED"
	StatePendingApproval     State = "PENDING_APPROVAL"
	StateApproved            State = "APPROVED"
	StateRejected            State = "REJECTED"
	StateCancelled           State = "CANCELLED"
	StateCVGenerated         State = "CV_GENERATED"
	StateCheckIssued         State = "CHECK_ISSUED"
	StateDisbursed           State = "DISBURSED"
	StatePendingVerification State = "PENDING_VERIFICATION"
	StateVerified            State = "VERIFIED"
	StateIssued              State = "ISSUED"
	StateVoided              State = "VOIDED"
)

var validStates = map[State]bool{
	StateDraft:               true,
	StateSubmitted:           true,
	StatePendingApproval:     true,
	StateApproved:            true,
	StateRejected:            true,
	StateCancelled:           true,
	StateCVGenerated:         true,
	StateCheckIssued:         true,
	StateDisbursed:           true,
	StatePendingVerification: true,
	StateVerified:            true,
	StateIssued:              true,
	StateVoided:              true,
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state belongs to some document lifecycle
func (s State) IsValid() bool {
	return validStates[s]
}
