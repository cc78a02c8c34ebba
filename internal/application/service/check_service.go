package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rbcaldoza/docflows/internal/application/port"
	appwf "github.com/rbcaldoza/docflows/internal/application/workflow"
	"github.com/rbcaldoza/docflows/internal/domain/entity"
	domainwf "github.com/rbcaldoza/docflows/internal/domain/workflow"
)

// CheckService manages issued checks through disbursement or voiding
type CheckService interface {
	Get(ctx context.Context, id int64) (*entity.Check, error)
	GetByVoucher(ctx context.Context, voucherID int64) (*entity.Check, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Check, error)
	Clear(ctx context.Context, id int64, actorID string) (*entity.Check, error)
	Void(ctx context.Context, id int64, actorID, reason string) (*entity.Check, error)
	Cancel(ctx context.Context, id int64, actorID string) (*entity.Check, error)
	History(ctx context.Context, id int64) ([]*entity.ApprovalRecord, error)
}

type checkServiceImpl struct {
	repo        port.CheckRepository
	voucherRepo port.VoucherRepository
	paymentRepo port.PaymentRepository
	records     port.ApprovalRecordRepository
	authority   port.AuthorityChecker
	coordinator appwf.Coordinator
	logger      Logger
}

// NewCheckService creates a new CheckService
func NewCheckService(
	repo port.CheckRepository,
	voucherRepo port.VoucherRepository,
	paymentRepo port.PaymentRepository,
	records port.ApprovalRecordRepository,
	authority port.AuthorityChecker,
	coordinator appwf.Coordinator,
	logger Logger,
) CheckService {
	return &checkServiceImpl{
		repo:        repo,
		voucherRepo: voucherRepo,
		paymentRepo: paymentRepo,
		records:     records,
		authority:   authority,
		coordinator: coordinator,
		logger:      logger,
	}
}

// Get retrieves a check
func (s *checkServiceImpl) Get(ctx context.Context, id int64) (*entity.Check, error) {
	check, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if check == nil {
		return nil, fmt.Errorf("%w: check %d", ErrNotFound, id)
	}
	return check, nil
}

// GetByVoucher retrieves the check issued against a voucher
func (s *checkServiceImpl) GetByVoucher(ctx context.Context, voucherID int64) (*entity.Check, error) {
	check, err := s.repo.GetByVoucherID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if check == nil {
		return nil, fmt.Errorf("%w: no check for voucher %d", ErrNotFound, voucherID)
	}
	return check, nil
}

// List retrieves checks with pagination
func (s *checkServiceImpl) List(ctx context.Context, limit, offset int) ([]*entity.Check, error) {
	return s.repo.List(ctx, limit, offset)
}

// Clear marks an ISSUED check as disbursed, recording the disbursement date
// and moving the owning payment request to DISBURSED atomically
func (s *checkServiceImpl) Clear(ctx context.Context, id int64, actorID string) (*entity.Check, error) {
	check, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceOrAdmin(ctx, s.authority, actorID); err != nil {
		return nil, err
	}

	cv, err := s.voucherRepo.GetByID(ctx, check.CheckVoucherID)
	if err != nil {
		return nil, err
	}
	if cv == nil {
		return nil, fmt.Errorf("%w: check voucher %d", ErrNotFound, check.CheckVoucherID)
	}

	_, err = s.coordinator.Execute(ctx, appwf.Transition{
		Kind:     domainwf.KindCheck,
		EntityID: check.ID,
		Current:  domainwf.State(check.Status),
		Trigger:  domainwf.TriggerClear,
		ActorID:  actorID,
		InTx: func(txCtx context.Context, next domainwf.State) error {
			if err := s.repo.SetDisbursementDate(txCtx, check.ID, time.Now()); err != nil {
				return err
			}
			return s.paymentRepo.UpdateStatusIf(txCtx, cv.RFPID,
				entity.StatusCheckIssued, entity.StatusDisbursed)
		},
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("Check cleared", "id", check.ID, "actor_id", actorID)
	return s.Get(ctx, id)
}

// Void voids an ISSUED check with a mandatory reason
func (s *checkServiceImpl) Void(ctx context.Context, id int64, actorID, reason string) (*entity.Check, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: void reason is required", ErrValidation)
	}
	check, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceOrAdmin(ctx, s.authority, actorID); err != nil {
		return nil, err
	}

	_, err = s.coordinator.Execute(ctx, appwf.Transition{
		Kind:     domainwf.KindCheck,
		EntityID: check.ID,
		Current:  domainwf.State(check.Status),
		Trigger:  domainwf.TriggerVoid,
		ActorID:  actorID,
		Comments: reason,
		InTx: func(txCtx context.Context, next domainwf.State) error {
			return s.repo.SetVoidReason(txCtx, check.ID, reason)
		},
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("Check voided", "id", check.ID, "actor_id", actorID, "reason", reason)
	return s.Get(ctx, id)
}

// Cancel cancels an ISSUED check. Requires admin authority.
func (s *checkServiceImpl) Cancel(ctx context.Context, id int64, actorID string) (*entity.Check, error) {
	check, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(ctx, s.authority, actorID); err != nil {
		return nil, err
	}

	_, err = s.coordinator.Execute(ctx, appwf.Transition{
		Kind:     domainwf.KindCheck,
		EntityID: check.ID,
		Current:  domainwf.State(check.Status),
		Trigger:  domainwf.TriggerCancel,
		ActorID:  actorID,
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("Check cancelled", "id", check.ID, "actor_id", actorID)
	return s.Get(ctx, id)
}

// History returns the audit trail of a check
func (s *checkServiceImpl) History(ctx context.Context, id int64) ([]*entity.ApprovalRecord, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.records.GetByEntity(ctx, entity.EntityTypeCheck, id)
}
