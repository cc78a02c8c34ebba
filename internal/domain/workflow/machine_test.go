package workflow

import (
	"context"
	"errors"
	"testing"
)

func TestDocumentKind_Initial(t *testing.T) {
	tests := []struct {
		kind     DocumentKind
		expected State
	}{
		{KindRequisitionSlip, StateDraft},
		{KindPaymentRequest, StateDraft},
		{KindCheckVoucher, StateDraft},
		{KindCheck, StateIssued},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Initial(); got != tt.expected {
				t.Errorf("Initial() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDocumentKind_IsTerminal(t *testing.T) {
	tests := []struct {
		kind     DocumentKind
		state    State
		expected bool
	}{
		{KindRequisitionSlip, StateDraft, false},
		{KindRequisitionSlip, StatePendingApproval, false},
		{KindRequisitionSlip, StateApproved, true},
		{KindRequisitionSlip, StateRejected, true},
		{KindRequisitionSlip, StateCancelled, true},
		{KindPaymentRequest, StateApproved, false},
		{KindPaymentRequest, StateCVGenerated, false},
		{KindPaymentRequest, StateDisbursed, true},
		{KindCheckVoucher, StateVerified, false},
		{KindCheckVoucher, StateCheckIssued, true},
		{KindCheck, StateIssued, false},
		{KindCheck, StateVoided, true},
		{KindCheck, StateDisbursed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+string(tt.state), func(t *testing.T) {
			if got := tt.kind.IsTerminal(tt.state); got != tt.expected {
				t.Errorf("IsTerminal(%s) = %v, want %v", tt.state, got, tt.expected)
			}
		})
	}
}

func TestDocumentKind_Allows(t *testing.T) {
	if KindRequisitionSlip.Allows(StateCVGenerated) {
		t.Error("requisition slips must not allow CV_GENERATED")
	}
	if !KindPaymentRequest.Allows(StateCVGenerated) {
		t.Error("payment requests must allow CV_GENERATED")
	}
	if !KindCheckVoucher.Allows(StatePendingVerification) {
		t.Error("PENDING_VERIFICATION is declared for check vouchers")
	}
	if KindCheck.Allows(StateDraft) {
		t.Error("checks are born ISSUED, never DRAFT")
	}
}

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		expected bool
	}{
		{"draft", StateDraft, true},
		{"voided", StateVoided, true},
		{"invalid state", State("INVALID"), false},
		{"empty state", State(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.expected {
				t.Errorf("State.IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuilder_Configure(t *testing.T) {
	builder := NewBuilder(KindRequisitionSlip)

	config := builder.Configure(StateDraft)
	if config == nil {
		t.Fatal("Configure() returned nil")
	}

	config2 := builder.Configure(StateDraft)
	if config != config2 {
		t.Error("Configure() should return same config for same state")
	}
}

func TestBuilder_ConfigurePanicsOnForeignState(t *testing.T) {
	builder := NewBuilder(KindCheck)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Configure() should panic on a state outside the kind's lifecycle")
		}
	}()

	builder.Configure(StatePendingApproval)
}

func TestBuilder_BuildPanicsOnForeignInitialState(t *testing.T) {
	builder := NewBuilder(KindRequisitionSlip)

	defer func() {
		if r := recover(); r == nil {
			t.Error("Build() should panic on a state outside the kind's lifecycle")
		}
	}()

	builder.Build(StateIssued)
}

func TestStateMachine_Permit(t *testing.T) {
	builder := NewBuilder(KindRequisitionSlip)
	builder.Configure(StateDraft).
		Permit(TriggerSubmit, StateSubmitted)

	machine := builder.Build(StateDraft)

	if !machine.CanFire(TriggerSubmit) {
		t.Error("CanFire() should return true for permitted trigger")
	}

	if err := machine.Fire(context.Background(), TriggerSubmit); err != nil {
		t.Errorf("Fire() failed: %v", err)
	}

	if machine.State() != StateSubmitted {
		t.Errorf("State after Fire() = %v, want %v", machine.State(), StateSubmitted)
	}
}

func TestStateMachine_PermitIf_GuardPasses(t *testing.T) {
	builder := NewBuilder(KindCheck)
	builder.Configure(StateIssued).
		PermitIf(TriggerClear, StateDisbursed, func(ctx context.Context) bool {
			return true
		})

	machine := builder.Build(StateIssued)

	if err := machine.Fire(context.Background(), TriggerClear); err != nil {
		t.Errorf("Fire() failed: %v", err)
	}

	if machine.State() != StateDisbursed {
		t.Errorf("State after Fire() = %v, want %v", machine.State(), StateDisbursed)
	}
}

func TestStateMachine_PermitIf_GuardFails(t *testing.T) {
	builder := NewBuilder(KindCheck)
	builder.Configure(StateIssued).
		PermitIf(TriggerVoid, StateVoided, func(ctx context.Context) bool {
			return false
		})

	machine := builder.Build(StateIssued)

	err := machine.Fire(context.Background(), TriggerVoid)
	if !errors.Is(err, ErrGuardFailed) {
		t.Errorf("Fire() error = %v, want ErrGuardFailed", err)
	}

	if machine.State() != StateIssued {
		t.Errorf("State must not change on guard failure, got %v", machine.State())
	}
}

func TestStateMachine_FirstPassingGuardWins(t *testing.T) {
	// Same-trigger candidates model the approval loop: stay in
	// PENDING_APPROVAL while levels remain, otherwise land in APPROVED.
	levelsRemain := false

	builder := NewBuilder(KindRequisitionSlip)
	builder.Configure(StatePendingApproval).
		PermitIf(TriggerApprove, StatePendingApproval, func(ctx context.Context) bool {
			return levelsRemain
		}).
		PermitIf(TriggerApprove, StateApproved, func(ctx context.Context) bool {
			return !levelsRemain
		})

	machine := builder.Build(StatePendingApproval)

	if err := machine.Fire(context.Background(), TriggerApprove); err != nil {
		t.Fatalf("Fire() failed: %v", err)
	}

	if machine.State() != StateApproved {
		t.Errorf("State = %v, want %v", machine.State(), StateApproved)
	}
}

func TestStateMachine_InvalidTransition(t *testing.T) {
	builder := NewBuilder(KindRequisitionSlip)
	builder.Configure(StateDraft).
		Permit(TriggerSubmit, StateSubmitted)

	machine := builder.Build(StateDraft)

	err := machine.Fire(context.Background(), TriggerApprove)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Fire() error = %v, want ErrInvalidTransition", err)
	}
}

func TestStateMachine_TerminalStateHasNoTransitions(t *testing.T) {
	builder := NewBuilder(KindRequisitionSlip)
	builder.Configure(StateDraft).
		Permit(TriggerSubmit, StateSubmitted)

	machine := builder.Build(StateRejected)

	if got := len(machine.PermittedTriggers()); got != 0 {
		t.Errorf("PermittedTriggers() from terminal state = %d triggers, want 0", got)
	}

	err := machine.Fire(context.Background(), TriggerSubmit)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Fire() error = %v, want ErrInvalidTransition", err)
	}
}

func TestBuilder_BuildIsolatesMachines(t *testing.T) {
	builder := NewBuilder(KindRequisitionSlip)
	builder.Configure(StateDraft).
		Permit(TriggerSubmit, StateSubmitted)

	machine := builder.Build(StateDraft)

	// Later edits to the builder must not leak into built machines
	builder.Configure(StateDraft).Permit(TriggerCancel, StateCancelled)

	if machine.CanFire(TriggerCancel) {
		t.Error("machine built before Permit(CANCEL) must not see it")
	}
}
