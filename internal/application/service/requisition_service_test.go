package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbcaldoza/docflows/internal/domain/entity"
	domainwf "github.com/rbcaldoza/docflows/internal/domain/workflow"
)

func draftSlipInput(requesterID string) CreateRequisitionInput {
	return CreateRequisitionInput{
		RequesterID:          requesterID,
		DepartmentID:         "SALES",
		ProcessingDepartment: "IT",
		RequestType:          "IT_EQUIPMENT",
		DateNeeded:           time.Now().AddDate(0, 0, 14),
		Purpose:              "Replacement laptops for the field team",
		Items: []RequisitionItemInput{
			{Quantity: 2, Unit: "pc", Particulars: "14-inch laptop", UnitCostCents: 5500000},
			{Quantity: 2, Unit: "pc", Particulars: "Laptop dock", UnitCostCents: 450000},
		},
	}
}

func mustCreateDraftSlip(t *testing.T, f *fixture, requesterID string) *entity.RequisitionSlip {
	t.Helper()
	slip, err := f.requisitionSvc.CreateDraft(context.Background(), draftSlipInput(requesterID))
	require.NoError(t, err)
	return slip
}

func TestRequisitionCreateDraft(t *testing.T) {
	f := newFixture()
	slip := mustCreateDraftSlip(t, f, "alice")

	assert.Equal(t, entity.StatusDraft, slip.Status)
	assert.Equal(t, 0, slip.CurrentApprovalLevel)
	assert.Equal(t, "RS-000001", slip.RequisitionNumber)
	require.Len(t, slip.Items, 2)
	assert.Equal(t, int64(11000000), slip.Items[0].SubtotalCents)
}

func TestRequisitionCreateDraftValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	t.Run("unknown request type", func(t *testing.T) {
		input := draftSlipInput("alice")
		input.RequestType = "CATERING"
		_, err := f.requisitionSvc.CreateDraft(ctx, input)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("department is not a process owner", func(t *testing.T) {
		input := draftSlipInput("alice")
		input.ProcessingDepartment = "HR"
		_, err := f.requisitionSvc.CreateDraft(ctx, input)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("open routing admits any department", func(t *testing.T) {
		input := draftSlipInput("alice")
		input.RequestType = "OTHERS"
		input.ProcessingDepartment = "HR"
		_, err := f.requisitionSvc.CreateDraft(ctx, input)
		assert.NoError(t, err)
	})

	t.Run("negative unit cost", func(t *testing.T) {
		input := draftSlipInput("alice")
		input.Items[0].UnitCostCents = -1
		_, err := f.requisitionSvc.CreateDraft(ctx, input)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestRequisitionSubmitEntersApprovalQueue(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	slip := mustCreateDraftSlip(t, f, "alice")

	slip, err := f.requisitionSvc.Submit(ctx, slip.ID, "alice")
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPendingApproval, slip.Status)
	assert.Equal(t, 1, slip.CurrentApprovalLevel)

	history, err := f.requisitionSvc.History(ctx, slip.ID)
	require.NoError(t, err)
	assert.Empty(t, history, "submission itself leaves no approval record")
}

func TestRequisitionSubmitValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	input := draftSlipInput("alice")
	input.Items = nil
	slip, err := f.requisitionSvc.CreateDraft(ctx, input)
	require.NoError(t, err)

	_, err = f.requisitionSvc.Submit(ctx, slip.ID, "alice")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRequisitionSubmitByStrangerUnauthorized(t *testing.T) {
	f := newFixture()
	slip := mustCreateDraftSlip(t, f, "alice")

	_, err := f.requisitionSvc.Submit(context.Background(), slip.ID, "mallory")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRequisitionThreeLevelApproval(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	dept, unit, general := f.grantApprovalChain("SALES")

	slip := mustCreateDraftSlip(t, f, "alice")
	_, err := f.requisitionSvc.Submit(ctx, slip.ID, "alice")
	require.NoError(t, err)

	slip, err = f.requisitionSvc.Approve(ctx, slip.ID, dept, "ok")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPendingApproval, slip.Status)
	assert.Equal(t, 2, slip.CurrentApprovalLevel)

	slip, err = f.requisitionSvc.Approve(ctx, slip.ID, unit, "ok")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPendingApproval, slip.Status)
	assert.Equal(t, 3, slip.CurrentApprovalLevel)

	slip, err = f.requisitionSvc.Approve(ctx, slip.ID, general, "final")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusApproved, slip.Status)

	history, err := f.requisitionSvc.History(ctx, slip.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for i, record := range history {
		assert.Equal(t, entity.ActionApprove, record.Action)
		assert.Equal(t, i+1, record.ApprovalLevel)
	}
	assert.Equal(t, dept, history[0].ActorID)
	assert.Equal(t, general, history[2].ActorID)
}

func TestRequisitionApproveWrongLevelUnauthorized(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, unit, _ := f.grantApprovalChain("SALES")

	slip := mustCreateDraftSlip(t, f, "alice")
	_, err := f.requisitionSvc.Submit(ctx, slip.ID, "alice")
	require.NoError(t, err)

	// level 2 approver cannot sign off while the slip waits at level 1
	_, err = f.requisitionSvc.Approve(ctx, slip.ID, unit, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRequisitionApproveFromDraftInvalidTransition(t *testing.T) {
	f := newFixture()
	dept, _, _ := f.grantApprovalChain("SALES")
	slip := mustCreateDraftSlip(t, f, "alice")

	_, err := f.requisitionSvc.Approve(context.Background(), slip.ID, dept, "")
	assert.ErrorIs(t, err, domainwf.ErrInvalidTransition)
}

func TestRequisitionRejectRequiresReason(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	dept, _, _ := f.grantApprovalChain("SALES")

	slip := mustCreateDraftSlip(t, f, "alice")
	_, err := f.requisitionSvc.Submit(ctx, slip.ID, "alice")
	require.NoError(t, err)

	_, err = f.requisitionSvc.Reject(ctx, slip.ID, dept, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRequisitionRejectPreservesLevel(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	dept, unit, _ := f.grantApprovalChain("SALES")

	slip := mustCreateDraftSlip(t, f, "alice")
	_, err := f.requisitionSvc.Submit(ctx, slip.ID, "alice")
	require.NoError(t, err)
	_, err = f.requisitionSvc.Approve(ctx, slip.ID, dept, "")
	require.NoError(t, err)

	slip, err = f.requisitionSvc.Reject(ctx, slip.ID, unit, "budget exceeded")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusRejected, slip.Status)
	assert.Equal(t, 2, slip.CurrentApprovalLevel, "rejection level is kept for audit")

	history, err := f.requisitionSvc.History(ctx, slip.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entity.ActionReject, history[1].Action)
	assert.Equal(t, "budget exceeded", history[1].Comments)
}

func TestRequisitionCancel(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.authority.grantRole("root", entity.RoleAdmin)

	t.Run("by requester", func(t *testing.T) {
		slip := mustCreateDraftSlip(t, f, "alice")
		slip, err := f.requisitionSvc.Cancel(ctx, slip.ID, "alice")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusCancelled, slip.Status)
	})

	t.Run("by admin", func(t *testing.T) {
		slip := mustCreateDraftSlip(t, f, "alice")
		slip, err := f.requisitionSvc.Cancel(ctx, slip.ID, "root")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusCancelled, slip.Status)
	})

	t.Run("by another user", func(t *testing.T) {
		slip := mustCreateDraftSlip(t, f, "alice")
		_, err := f.requisitionSvc.Cancel(ctx, slip.ID, "mallory")
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestRequisitionCancelAfterApprovedInvalid(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	dept, unit, general := f.grantApprovalChain("SALES")

	slip := mustCreateDraftSlip(t, f, "alice")
	_, err := f.requisitionSvc.Submit(ctx, slip.ID, "alice")
	require.NoError(t, err)
	for _, approver := range []string{dept, unit, general} {
		_, err = f.requisitionSvc.Approve(ctx, slip.ID, approver, "")
		require.NoError(t, err)
	}

	_, err = f.requisitionSvc.Cancel(ctx, slip.ID, "alice")
	assert.ErrorIs(t, err, domainwf.ErrInvalidTransition)
}

func TestRequisitionUpdateDraftOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	slip := mustCreateDraftSlip(t, f, "alice")

	input := draftSlipInput("alice")
	input.Purpose = "Updated purpose"
	slip, err := f.requisitionSvc.UpdateDraft(ctx, slip.ID, "alice", input)
	require.NoError(t, err)
	assert.Equal(t, "Updated purpose", slip.Purpose)

	_, err = f.requisitionSvc.Submit(ctx, slip.ID, "alice")
	require.NoError(t, err)
	_, err = f.requisitionSvc.UpdateDraft(ctx, slip.ID, "alice", input)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRequisitionDeleteDraftOnly(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	slip := mustCreateDraftSlip(t, f, "alice")
	require.NoError(t, f.requisitionSvc.DeleteDraft(ctx, slip.ID, "alice"))
	_, err := f.requisitionSvc.Get(ctx, slip.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	slip = mustCreateDraftSlip(t, f, "alice")
	_, err = f.requisitionSvc.Submit(ctx, slip.ID, "alice")
	require.NoError(t, err)
	err = f.requisitionSvc.DeleteDraft(ctx, slip.ID, "alice")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRequisitionGetMissing(t *testing.T) {
	f := newFixture()
	_, err := f.requisitionSvc.Get(context.Background(), 404)
	assert.True(t, errors.Is(err, ErrNotFound))
}
