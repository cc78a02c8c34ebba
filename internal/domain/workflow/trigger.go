package workflow

// Trigger represents an action that can cause a state transition
type Trigger string

const (
	TriggerSubmit          Trigger = "SUBMIT"
	TriggerRoute           Trigger = "ROUTE"
	TriggerApprove         Trigger = "APPROVE"
	TriggerReject          Trigger = "REJECT"
	TriggerCancel          Trigger = "CANCEL"
	TriggerGenerateVoucher Trigger = "GENERATE_VOUCHER"
	TriggerVerify          Trigger = "VERIFY"
	TriggerIssueCheck      Trigger = "ISSUE_CHECK"
	TriggerClear           Trigger = "CLEAR"
	TriggerVoid            Trigger = "VOID"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
