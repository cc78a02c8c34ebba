package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/rbcaldoza/docflows/internal/domain/approval"
	domainwf "github.com/rbcaldoza/docflows/internal/domain/workflow"
)

func TestRequisitionMachine_ApprovalLoop(t *testing.T) {
	policy := approval.Default()
	ctx := context.Background()

	// Below the final level an approval stays in the queue
	for _, level := range []approval.Level{approval.LevelDeptManager, approval.LevelUnitManager} {
		machine := BuildRequisitionMachine(domainwf.StatePendingApproval, level, policy)
		if err := machine.Fire(ctx, domainwf.TriggerApprove); err != nil {
			t.Fatalf("Fire(APPROVE) at level %d failed: %v", level, err)
		}
		if machine.State() != domainwf.StatePendingApproval {
			t.Errorf("state after approval at level %d = %v, want PENDING_APPROVAL", level, machine.State())
		}
	}

	// The final level's approval lands the document in APPROVED
	machine := BuildRequisitionMachine(domainwf.StatePendingApproval, approval.LevelGeneralManager, policy)
	if err := machine.Fire(ctx, domainwf.TriggerApprove); err != nil {
		t.Fatalf("Fire(APPROVE) at final level failed: %v", err)
	}
	if machine.State() != domainwf.StateApproved {
		t.Errorf("state after final approval = %v, want APPROVED", machine.State())
	}
}

func TestRequisitionMachine_RejectAtAnyLevel(t *testing.T) {
	policy := approval.Default()
	ctx := context.Background()

	for _, level := range []approval.Level{approval.LevelDeptManager, approval.LevelUnitManager, approval.LevelGeneralManager} {
		machine := BuildRequisitionMachine(domainwf.StatePendingApproval, level, policy)
		if err := machine.Fire(ctx, domainwf.TriggerReject); err != nil {
			t.Fatalf("Fire(REJECT) at level %d failed: %v", level, err)
		}
		if machine.State() != domainwf.StateRejected {
			t.Errorf("state after reject at level %d = %v, want REJECTED", level, machine.State())
		}
	}
}

func TestRequisitionMachine_CancelReachability(t *testing.T) {
	policy := approval.Default()
	ctx := context.Background()

	cancellable := []domainwf.State{domainwf.StateDraft, domainwf.StateSubmitted, domainwf.StatePendingApproval}
	for _, from := range cancellable {
		machine := BuildRequisitionMachine(from, approval.LevelDeptManager, policy)
		if err := machine.Fire(ctx, domainwf.TriggerCancel); err != nil {
			t.Errorf("Fire(CANCEL) from %s failed: %v", from, err)
		}
	}

	// An approved slip can no longer be cancelled
	machine := BuildRequisitionMachine(domainwf.StateApproved, approval.LevelGeneralManager, policy)
	err := machine.Fire(ctx, domainwf.TriggerCancel)
	if !errors.Is(err, domainwf.ErrInvalidTransition) {
		t.Errorf("Fire(CANCEL) from APPROVED error = %v, want ErrInvalidTransition", err)
	}
}

func TestRequisitionMachine_NoDownstreamTransitions(t *testing.T) {
	policy := approval.Default()

	machine := BuildRequisitionMachine(domainwf.StateApproved, approval.LevelGeneralManager, policy)
	err := machine.Fire(context.Background(), domainwf.TriggerGenerateVoucher)
	if !errors.Is(err, domainwf.ErrInvalidTransition) {
		t.Errorf("requisition slips have no voucher stage, got %v", err)
	}
}

func TestPaymentMachine_DownstreamChain(t *testing.T) {
	policy := approval.Default()
	ctx := context.Background()

	machine := BuildPaymentMachine(domainwf.StateApproved, approval.LevelGeneralManager, policy)

	steps := []struct {
		trigger domainwf.Trigger
		want    domainwf.State
	}{
		{domainwf.TriggerGenerateVoucher, domainwf.StateCVGenerated},
		{domainwf.TriggerIssueCheck, domainwf.StateCheckIssued},
		{domainwf.TriggerClear, domainwf.StateDisbursed},
	}

	for _, step := range steps {
		if err := machine.Fire(ctx, step.trigger); err != nil {
			t.Fatalf("Fire(%s) failed: %v", step.trigger, err)
		}
		if machine.State() != step.want {
			t.Fatalf("state after %s = %v, want %v", step.trigger, machine.State(), step.want)
		}
	}
}

func TestPaymentMachine_VoucherRequiresApproval(t *testing.T) {
	policy := approval.Default()

	machine := BuildPaymentMachine(domainwf.StatePendingApproval, approval.LevelDeptManager, policy)
	err := machine.Fire(context.Background(), domainwf.TriggerGenerateVoucher)
	if !errors.Is(err, domainwf.ErrInvalidTransition) {
		t.Errorf("Fire(GENERATE_VOUCHER) from PENDING_APPROVAL error = %v, want ErrInvalidTransition", err)
	}
}

func TestVoucherMachine_HappyPath(t *testing.T) {
	ctx := context.Background()
	machine := BuildVoucherMachine(domainwf.StateDraft)

	steps := []struct {
		trigger domainwf.Trigger
		want    domainwf.State
	}{
		{domainwf.TriggerVerify, domainwf.StateVerified},
		{domainwf.TriggerApprove, domainwf.StateApproved},
		{domainwf.TriggerIssueCheck, domainwf.StateCheckIssued},
	}

	for _, step := range steps {
		if err := machine.Fire(ctx, step.trigger); err != nil {
			t.Fatalf("Fire(%s) failed: %v", step.trigger, err)
		}
		if machine.State() != step.want {
			t.Fatalf("state after %s = %v, want %v", step.trigger, machine.State(), step.want)
		}
	}
}

func TestVoucherMachine_RejectFromDraftAndVerified(t *testing.T) {
	ctx := context.Background()

	for _, from := range []domainwf.State{domainwf.StateDraft, domainwf.StateVerified} {
		machine := BuildVoucherMachine(from)
		if err := machine.Fire(ctx, domainwf.TriggerReject); err != nil {
			t.Errorf("Fire(REJECT) from %s failed: %v", from, err)
		}
	}

	// Approved vouchers can only proceed to check issuance
	machine := BuildVoucherMachine(domainwf.StateApproved)
	err := machine.Fire(ctx, domainwf.TriggerReject)
	if !errors.Is(err, domainwf.ErrInvalidTransition) {
		t.Errorf("Fire(REJECT) from APPROVED error = %v, want ErrInvalidTransition", err)
	}
}

func TestVoucherMachine_CannotSkipVerification(t *testing.T) {
	machine := BuildVoucherMachine(domainwf.StateDraft)
	err := machine.Fire(context.Background(), domainwf.TriggerApprove)
	if !errors.Is(err, domainwf.ErrInvalidTransition) {
		t.Errorf("Fire(APPROVE) from DRAFT error = %v, want ErrInvalidTransition", err)
	}
}

func TestCheckMachine_Transitions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		trigger domainwf.Trigger
		want    domainwf.State
	}{
		{domainwf.TriggerClear, domainwf.StateDisbursed},
		{domainwf.TriggerVoid, domainwf.StateVoided},
		{domainwf.TriggerCancel, domainwf.StateCancelled},
	}

	for _, tt := range tests {
		machine := BuildCheckMachine(domainwf.StateIssued)
		if err := machine.Fire(ctx, tt.trigger); err != nil {
			t.Fatalf("Fire(%s) failed: %v", tt.trigger, err)
		}
		if machine.State() != tt.want {
			t.Errorf("state after %s = %v, want %v", tt.trigger, machine.State(), tt.want)
		}
	}

	// Disbursed checks cannot be voided
	machine := BuildCheckMachine(domainwf.StateDisbursed)
	err := machine.Fire(ctx, domainwf.TriggerVoid)
	if !errors.Is(err, domainwf.ErrInvalidTransition) {
		t.Errorf("Fire(VOID) from DISBURSED error = %v, want ErrInvalidTransition", err)
	}
}
