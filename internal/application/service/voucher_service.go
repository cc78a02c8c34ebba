package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rbcaldoza/docflows/internal/application/port"
	appwf "github.com/rbcaldoza/docflows/internal/application/workflow"
	"github.com/rbcaldoza/docflows/internal/domain/entity"
	domainwf "github.com/rbcaldoza/docflows/internal/domain/workflow"
	"github.com/rbcaldoza/docflows/pkg/utils"
)

// VoucherService manages check vouchers from generation through check
// issuance
type VoucherService interface {
	Get(ctx context.Context, id int64) (*entity.CheckVoucher, error)
	List(ctx context.Context, limit, offset int) ([]*entity.CheckVoucher, error)
	Verify(ctx context.Context, id int64, actorID string) (*entity.CheckVoucher, error)
	Approve(ctx context.Context, id int64, actorID, comments string) (*entity.CheckVoucher, error)
	Reject(ctx context.Context, id int64, actorID, reason string) (*entity.CheckVoucher, error)
	IssueCheck(ctx context.Context, id int64, actorID, checkNumber, bankAccountID string) (*entity.Check, error)
	History(ctx context.Context, id int64) ([]*entity.ApprovalRecord, error)
}

type voucherServiceImpl struct {
	repo        port.VoucherRepository
	paymentRepo port.PaymentRepository
	checkRepo   port.CheckRepository
	records     port.ApprovalRecordRepository
	authority   port.AuthorityChecker
	coordinator appwf.Coordinator
	logger      Logger
}

// NewVoucherService creates a new VoucherService
func NewVoucherService(
	repo port.VoucherRepository,
	paymentRepo port.PaymentRepository,
	checkRepo port.CheckRepository,
	records port.ApprovalRecordRepository,
	authority port.AuthorityChecker,
	coordinator appwf.Coordinator,
	logger Logger,
) VoucherService {
	return &voucherServiceImpl{
		repo:        repo,
		paymentRepo: paymentRepo,
		checkRepo:   checkRepo,
		records:     records,
		authority:   authority,
		coordinator: coordinator,
		logger:      logger,
	}
}

// Get retrieves a check voucher
func (s *voucherServiceImpl) Get(ctx context.Context, id int64) (*entity.CheckVoucher, error) {
	cv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cv == nil {
		return nil, fmt.Errorf("%w: check voucher %d", ErrNotFound, id)
	}
	return cv, nil
}

// List retrieves check vouchers with pagination
func (s *voucherServiceImpl) List(ctx context.Context, limit, offset int) ([]*entity.CheckVoucher, error) {
	return s.repo.List(ctx, limit, offset)
}

// Verify marks a DRAFT voucher as verified. Requires finance authority.
func (s *voucherServiceImpl) Verify(ctx context.Context, id int64, actorID string) (*entity.CheckVoucher, error) {
	cv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceOrAdmin(ctx, s.authority, actorID); err != nil {
		return nil, err
	}

	_, err = s.coordinator.Execute(ctx, appwf.Transition{
		Kind:     domainwf.KindCheckVoucher,
		EntityID: cv.ID,
		Current:  domainwf.State(cv.Status),
		Trigger:  domainwf.TriggerVerify,
		ActorID:  actorID,
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("Check voucher verified", "id", cv.ID, "actor_id", actorID)
	return s.Get(ctx, id)
}

// Approve approves a VERIFIED voucher. Requires admin authority.
func (s *voucherServiceImpl) Approve(ctx context.Context, id int64, actorID, comments string) (*entity.CheckVoucher, error) {
	cv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(ctx, s.authority, actorID); err != nil {
		return nil, err
	}

	_, err = s.coordinator.Execute(ctx, appwf.Transition{
		Kind:     domainwf.KindCheckVoucher,
		EntityID: cv.ID,
		Current:  domainwf.State(cv.Status),
		Trigger:  domainwf.TriggerApprove,
		ActorID:  actorID,
		Comments: comments,
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("Check voucher approved", "id", cv.ID, "actor_id", actorID)
	return s.Get(ctx, id)
}

// Reject rejects a voucher from DRAFT or VERIFIED with a mandatory reason
func (s *voucherServiceImpl) Reject(ctx context.Context, id int64, actorID, reason string) (*entity.CheckVoucher, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}
	cv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceOrAdmin(ctx, s.authority, actorID); err != nil {
		return nil, err
	}

	_, err = s.coordinator.Execute(ctx, appwf.Transition{
		Kind:     domainwf.KindCheckVoucher,
		EntityID: cv.ID,
		Current:  domainwf.State(cv.Status),
		Trigger:  domainwf.TriggerReject,
		ActorID:  actorID,
		Comments: reason,
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("Check voucher rejected", "id", cv.ID, "actor_id", actorID)
	return s.Get(ctx, id)
}

// IssueCheck creates the one check of an APPROVED voucher and moves the
// voucher and its payment request to CHECK_ISSUED atomically. A second call
// for the same voucher fails with a conflict.
func (s *voucherServiceImpl) IssueCheck(ctx context.Context, id int64, actorID, checkNumber, bankAccountID string) (*entity.Check, error) {
	if checkNumber == "" || bankAccountID == "" {
		return nil, fmt.Errorf("%w: check number and bank account are required", ErrValidation)
	}
	if err := utils.ValidateCheckNumber(checkNumber); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	cv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceOrAdmin(ctx, s.authority, actorID); err != nil {
		return nil, err
	}

	existing, err := s.checkRepo.GetByVoucherID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: check %s already issued for voucher %d",
			ErrConflict, existing.CheckNumber, id)
	}

	check := &entity.Check{
		CheckNumber:    checkNumber,
		CheckVoucherID: cv.ID,
		BankAccountID:  bankAccountID,
		Status:         entity.StatusIssued,
		CheckDate:      time.Now(),
	}

	_, err = s.coordinator.Execute(ctx, appwf.Transition{
		Kind:     domainwf.KindCheckVoucher,
		EntityID: cv.ID,
		Current:  domainwf.State(cv.Status),
		Trigger:  domainwf.TriggerIssueCheck,
		ActorID:  actorID,
		Comments: checkNumber,
		InTx: func(txCtx context.Context, next domainwf.State) error {
			if err := s.checkRepo.Create(txCtx, check); err != nil {
				return err
			}
			// The payment request mirrors its downstream instrument
			return s.paymentRepo.UpdateStatusIf(txCtx, cv.RFPID,
				entity.StatusCVGenerated, entity.StatusCheckIssued)
		},
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("Check issued", "cv_id", cv.ID, "check_id", check.ID, "check_number", checkNumber)
	return check, nil
}

// History returns the approval trail of a check voucher
func (s *voucherServiceImpl) History(ctx context.Context, id int64) ([]*entity.ApprovalRecord, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.records.GetByEntity(ctx, entity.EntityTypeCheckVoucher, id)
}
