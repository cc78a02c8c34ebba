package service

import (
	"context"
	"fmt"

	"github.com/rbcaldoza/docflows/internal/application/port"
	appwf "github.com/rbcaldoza/docflows/internal/application/workflow"
	"github.com/rbcaldoza/docflows/internal/domain/approval"
	"github.com/rbcaldoza/docflows/internal/domain/entity"
	domainwf "github.com/rbcaldoza/docflows/internal/domain/workflow"
)

// CreatePaymentInput carries the fields of a new requisition for payment
type CreatePaymentInput struct {
	RequesterID       string
	DepartmentID      string
	RequisitionSlipID *int64
	Payee             string
	Particulars       string
	AmountCents       int64
}

// PaymentService manages requisitions for payment through their lifecycle,
// including generation of the downstream check voucher
type PaymentService interface {
	CreateDraft(ctx context.Context, input CreatePaymentInput) (*entity.RequisitionForPayment, error)
	Get(ctx context.Context, id int64) (*entity.RequisitionForPayment, error)
	List(ctx context.Context, limit, offset int) ([]*entity.RequisitionForPayment, error)
	DeleteDraft(ctx context.Context, id int64, actorID string) error
	Submit(ctx context.Context, id int64, actorID string) (*entity.RequisitionForPayment, error)
	Approve(ctx context.Context, id int64, actorID, comments string) (*entity.RequisitionForPayment, error)
	Reject(ctx context.Context, id int64, actorID, reason string) (*entity.RequisitionForPayment, error)
	Cancel(ctx context.Context, id int64, actorID string) (*entity.RequisitionForPayment, error)
	GenerateCheckVoucher(ctx context.Context, rfpID int64, actorID string) (*entity.CheckVoucher, error)
	History(ctx context.Context, id int64) ([]*entity.ApprovalRecord, error)
}

type paymentServiceImpl struct {
	repo            port.PaymentRepository
	requisitionRepo port.RequisitionRepository
	voucherRepo     port.VoucherRepository
	records         port.ApprovalRecordRepository
	series          port.NumberSeriesRepository
	authority       port.AuthorityChecker
	coordinator     appwf.Coordinator
	txManager       port.TransactionManager
	logger          Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	repo port.PaymentRepository,
	requisitionRepo port.RequisitionRepository,
	voucherRepo port.VoucherRepository,
	records port.ApprovalRecordRepository,
	series port.NumberSeriesRepository,
	authority port.AuthorityChecker,
	coordinator appwf.Coordinator,
	txManager port.TransactionManager,
	logger Logger,
) PaymentService {
	return &paymentServiceImpl{
		repo:            repo,
		requisitionRepo: requisitionRepo,
		voucherRepo:     voucherRepo,
		records:         records,
		series:          series,
		authority:       authority,
		coordinator:     coordinator,
		txManager:       txManager,
		logger:          logger,
	}
}

// CreateDraft creates a requisition for payment in DRAFT, optionally backed
// by an approved requisition slip
func (s *paymentServiceImpl) CreateDraft(ctx context.Context, input CreatePaymentInput) (*entity.RequisitionForPayment, error) {
	if input.RequesterID == "" || input.DepartmentID == "" {
		return nil, fmt.Errorf("%w: requester and department are required", ErrValidation)
	}
	if input.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if input.RequisitionSlipID != nil {
		slip, err := s.requisitionRepo.GetByID(ctx, *input.RequisitionSlipID)
		if err != nil {
			return nil, err
		}
		if slip == nil {
			return nil, fmt.Errorf("%w: requisition %d", ErrNotFound, *input.RequisitionSlipID)
		}
		if slip.Status != entity.StatusApproved {
			return nil, fmt.Errorf("%w: linked requisition %d is not approved (status %s)",
				ErrValidation, slip.ID, slip.Status)
		}
	}

	rfp := &entity.RequisitionForPayment{
		RequisitionSlipID:    input.RequisitionSlipID,
		RequesterID:          input.RequesterID,
		DepartmentID:         input.DepartmentID,
		Payee:                input.Payee,
		Particulars:          input.Particulars,
		AmountCents:          input.AmountCents,
		Status:               entity.StatusDraft,
		CurrentApprovalLevel: int(approval.LevelNotSubmitted),
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		number, err := s.series.Next(txCtx, entity.SeriesPayment)
		if err != nil {
			return fmt.Errorf("assign rfp number: %w", err)
		}
		rfp.RFPNumber = number
		return s.repo.Create(txCtx, rfp)
	})
	if err != nil {
		s.logger.Error("Failed to create payment request", "error", err, "requester_id", input.RequesterID)
		return nil, err
	}

	s.logger.Info("Payment request created", "id", rfp.ID, "number", rfp.RFPNumber)
	return rfp, nil
}

// Get retrieves a requisition for payment
func (s *paymentServiceImpl) Get(ctx context.Context, id int64) (*entity.RequisitionForPayment, error) {
	rfp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rfp == nil {
		return nil, fmt.Errorf("%w: payment request %d", ErrNotFound, id)
	}
	return rfp, nil
}

// List retrieves requisitions for payment with pagination
func (s *paymentServiceImpl) List(ctx context.Context, limit, offset int) ([]*entity.RequisitionForPayment, error) {
	return s.repo.List(ctx, limit, offset)
}

// DeleteDraft removes a DRAFT payment request
func (s *paymentServiceImpl) DeleteDraft(ctx context.Context, id int64, actorID string) error {
	rfp, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := requireRequesterOrAdmin(ctx, s.authority, rfp.RequesterID, actorID); err != nil {
		return err
	}
	if rfp.Status != entity.StatusDraft {
		return fmt.Errorf("%w: only draft payment requests can be deleted (status %s)", ErrValidation, rfp.Status)
	}
	return s.repo.Delete(ctx, id)
}

// Submit moves a DRAFT payment request into the approval queue at level one
func (s *paymentServiceImpl) Submit(ctx context.Context, id int64, actorID string) (*entity.RequisitionForPayment, error) {
	rfp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireRequesterOrAdmin(ctx, s.authority, rfp.RequesterID, actorID); err != nil {
		return nil, err
	}
	if rfp.Payee == "" {
		return nil, fmt.Errorf("%w: payee is required", ErrValidation)
	}
	if rfp.AmountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	_, err = s.coordinator.Execute(ctx, appwf.Transition{
		Kind:     domainwf.KindPaymentRequest,
		EntityID: rfp.ID,
		Current:  domainwf.State(rfp.Status),
		Level:    approval.Level(rfp.CurrentApprovalLevel),
		Trigger:  domainwf.TriggerSubmit,
		ActorID:  actorID,
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("Payment request submitted", "id", rfp.ID, "actor_id", actorID)
	return s.Get(ctx, id)
}

// Approve records the current level's sign-off
func (s *paymentServiceImpl) Approve(ctx context.Context, id int64, actorID, comments string) (*entity.RequisitionForPayment, error) {
	rfp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rfp.Status == entity.StatusPendingApproval {
		if err := requireLevel(ctx, s.authority, actorID, rfp.DepartmentID, rfp.CurrentApprovalLevel); err != nil {
			return nil, err
		}
	}

	_, err = s.coordinator.Execute(ctx, appwf.Transition{
		Kind:     domainwf.KindPaymentRequest,
		EntityID: rfp.ID,
		Current:  domainwf.State(rfp.Status),
		Level:    approval.Level(rfp.CurrentApprovalLevel),
		Trigger:  domainwf.TriggerApprove,
		ActorID:  actorID,
		Comments: comments,
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("Payment request approved", "id", rfp.ID, "actor_id", actorID, "level", rfp.CurrentApprovalLevel)
	return s.Get(ctx, id)
}

// Reject terminates the approval with a mandatory reason
func (s *paymentServiceImpl) Reject(ctx context.Context, id int64, actorID, reason string) (*entity.RequisitionForPayment, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}
	rfp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rfp.Status == entity.StatusPendingApproval {
		if err := requireLevel(ctx, s.authority, actorID, rfp.DepartmentID, rfp.CurrentApprovalLevel); err != nil {
			return nil, err
		}
	}

	_, err = s.coordinator.Execute(ctx, appwf.Transition{
		Kind:     domainwf.KindPaymentRequest,
		EntityID: rfp.ID,
		Current:  domainwf.State(rfp.Status),
		Level:    approval.Level(rfp.CurrentApprovalLevel),
		Trigger:  domainwf.TriggerReject,
		ActorID:  actorID,
		Comments: reason,
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("Payment request rejected", "id", rfp.ID, "actor_id", actorID)
	return s.Get(ctx, id)
}

// Cancel withdraws a payment request that has not reached APPROVED
func (s *paymentServiceImpl) Cancel(ctx context.Context, id int64, actorID string) (*entity.RequisitionForPayment, error) {
	rfp, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireRequesterOrAdmin(ctx, s.authority, rfp.RequesterID, actorID); err != nil {
		return nil, err
	}

	_, err = s.coordinator.Execute(ctx, appwf.Transition{
		Kind:     domainwf.KindPaymentRequest,
		EntityID: rfp.ID,
		Current:  domainwf.State(rfp.Status),
		Level:    approval.Level(rfp.CurrentApprovalLevel),
		Trigger:  domainwf.TriggerCancel,
		ActorID:  actorID,
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("Payment request cancelled", "id", rfp.ID, "actor_id", actorID)
	return s.Get(ctx, id)
}

// GenerateCheckVoucher creates the one check voucher of an APPROVED payment
// request. A second call for the same request fails with a conflict.
func (s *paymentServiceImpl) GenerateCheckVoucher(ctx context.Context, rfpID int64, actorID string) (*entity.CheckVoucher, error) {
	rfp, err := s.Get(ctx, rfpID)
	if err != nil {
		return nil, err
	}
	if err := requireFinanceOrAdmin(ctx, s.authority, actorID); err != nil {
		return nil, err
	}

	existing, err := s.voucherRepo.GetByRFPID(ctx, rfpID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: voucher %s already exists for payment request %d",
			ErrConflict, existing.CVNumber, rfpID)
	}

	cv := &entity.CheckVoucher{
		RFPID:       rfp.ID,
		Payee:       rfp.Payee,
		Particulars: rfp.Particulars,
		AmountCents: rfp.AmountCents,
		Status:      entity.StatusDraft,
	}

	_, err = s.coordinator.Execute(ctx, appwf.Transition{
		Kind:     domainwf.KindPaymentRequest,
		EntityID: rfp.ID,
		Current:  domainwf.State(rfp.Status),
		Level:    approval.Level(rfp.CurrentApprovalLevel),
		Trigger:  domainwf.TriggerGenerateVoucher,
		ActorID:  actorID,
		InTx: func(txCtx context.Context, next domainwf.State) error {
			number, err := s.series.Next(txCtx, entity.SeriesCheckVoucher)
			if err != nil {
				return fmt.Errorf("assign cv number: %w", err)
			}
			cv.CVNumber = number
			return s.voucherRepo.Create(txCtx, cv)
		},
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("Check voucher generated", "rfp_id", rfp.ID, "cv_id", cv.ID, "cv_number", cv.CVNumber)
	return cv, nil
}

// History returns the approval trail of a payment request
func (s *paymentServiceImpl) History(ctx context.Context, id int64) ([]*entity.ApprovalRecord, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.records.GetByEntity(ctx, entity.EntityTypePaymentRequest, id)
}
