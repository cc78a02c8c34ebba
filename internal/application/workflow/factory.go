package workflow

import (
	"context"
	"fmt"

	"github.com/rbcaldoza/docflows/internal/domain/approval"
	domainwf "github.com/rbcaldoza/docflows/internal/domain/workflow"
)

// BuildMachine creates the state machine for one document at its current
// state. The approval level matters only for requisition slips and payment
// requests, where it decides whether an approval stays in the loop or lands
// the document in APPROVED.
func BuildMachine(kind domainwf.DocumentKind, current domainwf.State, level approval.Level, policy approval.Policy) domainwf.StateMachine {
	switch kind {
	case domainwf.KindRequisitionSlip:
		return BuildRequisitionMachine(current, level, policy)
	case domainwf.KindPaymentRequest:
		return BuildPaymentMachine(current, level, policy)
	case domainwf.KindCheckVoucher:
		return BuildVoucherMachine(current)
	case domainwf.KindCheck:
		return BuildCheckMachine(current)
	default:
		panic(fmt.Sprintf("unknown document kind: %s", kind))
	}
}

// configureApprovalLoop wires the shared DRAFT/SUBMITTED/PENDING_APPROVAL
// portion used by requisition slips and payment requests
func configureApprovalLoop(builder *domainwf.Builder, level approval.Level, policy approval.Policy) {
	builder.Configure(domainwf.StateDraft).
		Permit(domainwf.TriggerSubmit, domainwf.StateSubmitted).
		Permit(domainwf.TriggerCancel, domainwf.StateCancelled)

	builder.Configure(domainwf.StateSubmitted).
		Permit(domainwf.TriggerRoute, domainwf.StatePendingApproval).
		Permit(domainwf.TriggerCancel, domainwf.StateCancelled)

	builder.Configure(domainwf.StatePendingApproval).
		PermitIf(domainwf.TriggerApprove, domainwf.StatePendingApproval, func(ctx context.Context) bool {
			return !policy.IsFinal(level)
		}).
		PermitIf(domainwf.TriggerApprove, domainwf.StateApproved, func(ctx context.Context) bool {
			return policy.IsFinal(level)
		}).
		Permit(domainwf.TriggerReject, domainwf.StateRejected).
		Permit(domainwf.TriggerCancel, domainwf.StateCancelled)
}

// BuildRequisitionMachine creates the requisition slip machine. APPROVED,
// REJECTED and CANCELLED are terminal.
func BuildRequisitionMachine(current domainwf.State, level approval.Level, policy approval.Policy) domainwf.StateMachine {
	builder := domainwf.NewBuilder(domainwf.KindRequisitionSlip)
	configureApprovalLoop(builder, level, policy)
	return builder.Build(current)
}

// BuildPaymentMachine creates the payment request machine. Beyond APPROVED
// the document mirrors its downstream instruments: voucher generation, check
// issuance, disbursement.
func BuildPaymentMachine(current domainwf.State, level approval.Level, policy approval.Policy) domainwf.StateMachine {
	builder := domainwf.NewBuilder(domainwf.KindPaymentRequest)
	configureApprovalLoop(builder, level, policy)

	builder.Configure(domainwf.StateApproved).
		Permit(domainwf.TriggerGenerateVoucher, domainwf.StateCVGenerated)

	builder.Configure(domainwf.StateCVGenerated).
		Permit(domainwf.TriggerIssueCheck, domainwf.StateCheckIssued)

	builder.Configure(domainwf.StateCheckIssued).
		Permit(domainwf.TriggerClear, domainwf.StateDisbursed)

	return builder.Build(current)
}

// BuildVoucherMachine creates the check voucher machine. Verification moves
// DRAFT directly to VERIFIED; PENDING_VERIFICATION is declared but nothing
// transitions into it.
func BuildVoucherMachine(current domainwf.State) domainwf.StateMachine {
	builder := domainwf.NewBuilder(domainwf.KindCheckVoucher)

	builder.Configure(domainwf.StateDraft).
		Permit(domainwf.TriggerVerify, domainwf.StateVerified).
		Permit(domainwf.TriggerReject, domainwf.StateRejected)

	builder.Configure(domainwf.StateVerified).
		Permit(domainwf.TriggerApprove, domainwf.StateApproved).
		Permit(domainwf.TriggerReject, domainwf.StateRejected)

	builder.Configure(domainwf.StateApproved).
		Permit(domainwf.TriggerIssueCheck, domainwf.StateCheckIssued)

	return builder.Build(current)
}

// BuildCheckMachine creates the check machine. Checks are born ISSUED.
func BuildCheckMachine(current domainwf.State) domainwf.StateMachine {
	builder := domainwf.NewBuilder(domainwf.KindCheck)

	builder.Configure(domainwf.StateIssued).
		Permit(domainwf.TriggerClear, domainwf.StateDisbursed).
		Permit(domainwf.TriggerVoid, domainwf.StateVoided).
		Permit(domainwf.TriggerCancel, domainwf.StateCancelled)

	return builder.Build(current)
}
