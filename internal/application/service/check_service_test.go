package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbcaldoza/docflows/internal/domain/entity"
	domainwf "github.com/rbcaldoza/docflows/internal/domain/workflow"
)

// mustIssueCheck drives a payment request all the way to an issued check
func mustIssueCheck(t *testing.T, f *fixture) *entity.Check {
	t.Helper()
	cv := mustApproveVoucher(t, f)
	check, err := f.voucherSvc.IssueCheck(context.Background(), cv.ID, "fin-clerk", "0001234", "BDO-MAIN")
	require.NoError(t, err)
	return check
}

func TestCheckClear(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	check := mustIssueCheck(t, f)

	check, err := f.checkSvc.Clear(ctx, check.ID, "fin-clerk")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDisbursed, check.Status)
	require.NotNil(t, check.DisbursementDate)
	assert.False(t, check.DisbursementDate.IsZero())

	cv, err := f.voucherSvc.Get(ctx, check.CheckVoucherID)
	require.NoError(t, err)
	rfp, err := f.paymentSvc.Get(ctx, cv.RFPID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDisbursed, rfp.Status, "payment request closes with the check")
}

func TestCheckClearRequiresFinance(t *testing.T) {
	f := newFixture()
	check := mustIssueCheck(t, f)

	_, err := f.checkSvc.Clear(context.Background(), check.ID, "alice")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCheckClearTwiceInvalid(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	check := mustIssueCheck(t, f)

	_, err := f.checkSvc.Clear(ctx, check.ID, "fin-clerk")
	require.NoError(t, err)

	_, err = f.checkSvc.Clear(ctx, check.ID, "fin-clerk")
	assert.ErrorIs(t, err, domainwf.ErrInvalidTransition)
}

func TestCheckVoidRequiresReason(t *testing.T) {
	f := newFixture()
	check := mustIssueCheck(t, f)

	_, err := f.checkSvc.Void(context.Background(), check.ID, "fin-clerk", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCheckVoid(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	check := mustIssueCheck(t, f)

	check, err := f.checkSvc.Void(ctx, check.ID, "fin-clerk", "signature smudged")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusVoided, check.Status)
	assert.Equal(t, "signature smudged", check.VoidReason)
	assert.Nil(t, check.DisbursementDate)

	history, err := f.checkSvc.History(ctx, check.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entity.ActionVoid, history[0].Action)
}

func TestCheckVoidAfterClearInvalid(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	check := mustIssueCheck(t, f)

	_, err := f.checkSvc.Clear(ctx, check.ID, "fin-clerk")
	require.NoError(t, err)

	_, err = f.checkSvc.Void(ctx, check.ID, "fin-clerk", "too late")
	assert.ErrorIs(t, err, domainwf.ErrInvalidTransition)
}

func TestCheckCancelRequiresAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	check := mustIssueCheck(t, f)

	_, err := f.checkSvc.Cancel(ctx, check.ID, "fin-clerk")
	assert.ErrorIs(t, err, ErrUnauthorized)

	check, err = f.checkSvc.Cancel(ctx, check.ID, "root")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, check.Status)
}

func TestCheckGetMissing(t *testing.T) {
	f := newFixture()
	_, err := f.checkSvc.Get(context.Background(), 77)
	assert.ErrorIs(t, err, ErrNotFound)
}
