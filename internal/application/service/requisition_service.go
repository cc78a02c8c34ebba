package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rbcaldoza/docflows/internal/application/port"
	appwf "github.com/rbcaldoza/docflows/internal/application/workflow"
	"github.com/rbcaldoza/docflows/internal/domain/approval"
	"github.com/rbcaldoza/docflows/internal/domain/entity"
	"github.com/rbcaldoza/docflows/internal/domain/routing"
	domainwf "github.com/rbcaldoza/docflows/internal/domain/workflow"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// RequisitionItemInput is one requested line item
type RequisitionItemInput struct {
	Quantity      float64
	Unit          string
	Particulars   string
	UnitCostCents int64
}

// CreateRequisitionInput carries the fields of a new requisition slip
type CreateRequisitionInput struct {
	RequesterID          string
	DepartmentID         string
	ProcessingDepartment string
	RequestType          string
	DateNeeded           time.Time
	Purpose              string
	Items                []RequisitionItemInput
}

// RequisitionService manages requisition slips through their lifecycle
type RequisitionService interface {
	CreateDraft(ctx context.Context, input CreateRequisitionInput) (*entity.RequisitionSlip, error)
	Get(ctx context.Context, id int64) (*entity.RequisitionSlip, error)
	List(ctx context.Context, limit, offset int) ([]*entity.RequisitionSlip, error)
	UpdateDraft(ctx context.Context, id int64, actorID string, input CreateRequisitionInput) (*entity.RequisitionSlip, error)
	DeleteDraft(ctx context.Context, id int64, actorID string) error
	Submit(ctx context.Context, id int64, actorID string) (*entity.RequisitionSlip, error)
	Approve(ctx context.Context, id int64, actorID, comments string) (*entity.RequisitionSlip, error)
	Reject(ctx context.Context, id int64, actorID, reason string) (*entity.RequisitionSlip, error)
	Cancel(ctx context.Context, id int64, actorID string) (*entity.RequisitionSlip, error)
	History(ctx context.Context, id int64) ([]*entity.ApprovalRecord, error)
}

type requisitionServiceImpl struct {
	repo        port.RequisitionRepository
	records     port.ApprovalRecordRepository
	series      port.NumberSeriesRepository
	authority   port.AuthorityChecker
	coordinator appwf.Coordinator
	txManager   port.TransactionManager
	table       routing.Table
	logger      Logger
}

// NewRequisitionService creates a new RequisitionService
func NewRequisitionService(
	repo port.RequisitionRepository,
	records port.ApprovalRecordRepository,
	series port.NumberSeriesRepository,
	authority port.AuthorityChecker,
	coordinator appwf.Coordinator,
	txManager port.TransactionManager,
	table routing.Table,
	logger Logger,
) RequisitionService {
	return &requisitionServiceImpl{
		repo:        repo,
		records:     records,
		series:      series,
		authority:   authority,
		coordinator: coordinator,
		txManager:   txManager,
		table:       table,
		logger:      logger,
	}
}

// CreateDraft creates a requisition slip in DRAFT
func (s *requisitionServiceImpl) CreateDraft(ctx context.Context, input CreateRequisitionInput) (*entity.RequisitionSlip, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	slip := &entity.RequisitionSlip{
		RequesterID:          input.RequesterID,
		DepartmentID:         input.DepartmentID,
		ProcessingDepartment: input.ProcessingDepartment,
		RequestType:          input.RequestType,
		DateRequested:        time.Now(),
		DateNeeded:           input.DateNeeded,
		Purpose:              input.Purpose,
		Status:               entity.StatusDraft,
		CurrentApprovalLevel: int(approval.LevelNotSubmitted),
	}
	for _, item := range input.Items {
		line := &entity.RequestItem{
			Quantity:      item.Quantity,
			Unit:          item.Unit,
			Particulars:   item.Particulars,
			UnitCostCents: item.UnitCostCents,
		}
		line.SubtotalCents = line.ComputeSubtotal()
		slip.Items = append(slip.Items, line)
	}

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		number, err := s.series.Next(txCtx, entity.SeriesRequisition)
		if err != nil {
			return fmt.Errorf("assign requisition number: %w", err)
		}
		slip.RequisitionNumber = number
		return s.repo.Create(txCtx, slip)
	})
	if err != nil {
		s.logger.Error("Failed to create requisition", "error", err, "requester_id", input.RequesterID)
		return nil, err
	}

	s.logger.Info("Requisition created", "id", slip.ID, "number", slip.RequisitionNumber)
	return slip, nil
}

// Get retrieves a requisition slip with its items
func (s *requisitionServiceImpl) Get(ctx context.Context, id int64) (*entity.RequisitionSlip, error) {
	slip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if slip == nil {
		return nil, fmt.Errorf("%w: requisition %d", ErrNotFound, id)
	}
	return slip, nil
}

// List retrieves requisition slips with pagination
func (s *requisitionServiceImpl) List(ctx context.Context, limit, offset int) ([]*entity.RequisitionSlip, error) {
	return s.repo.List(ctx, limit, offset)
}

// UpdateDraft replaces the editable fields of a DRAFT requisition
func (s *requisitionServiceImpl) UpdateDraft(ctx context.Context, id int64, actorID string, input CreateRequisitionInput) (*entity.RequisitionSlip, error) {
	slip, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireRequesterOrAdmin(ctx, s.authority, slip.RequesterID, actorID); err != nil {
		return nil, err
	}
	if slip.Status != entity.StatusDraft {
		return nil, fmt.Errorf("%w: only draft requisitions can be edited (status %s)", ErrValidation, slip.Status)
	}
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	slip.ProcessingDepartment = input.ProcessingDepartment
	slip.RequestType = input.RequestType
	slip.DateNeeded = input.DateNeeded
	slip.Purpose = input.Purpose
	slip.Items = nil
	for _, item := range input.Items {
		line := &entity.RequestItem{
			RequisitionID: slip.ID,
			Quantity:      item.Quantity,
			Unit:          item.Unit,
			Particulars:   item.Particulars,
			UnitCostCents: item.UnitCostCents,
		}
		line.SubtotalCents = line.ComputeSubtotal()
		slip.Items = append(slip.Items, line)
	}

	if err := s.repo.Update(ctx, slip); err != nil {
		return nil, err
	}
	return slip, nil
}

// DeleteDraft removes a DRAFT requisition. Submitted documents are never
// physically deleted.
func (s *requisitionServiceImpl) DeleteDraft(ctx context.Context, id int64, actorID string) error {
	slip, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := requireRequesterOrAdmin(ctx, s.authority, slip.RequesterID, actorID); err != nil {
		return err
	}
	if slip.Status != entity.StatusDraft {
		return fmt.Errorf("%w: only draft requisitions can be deleted (status %s)", ErrValidation, slip.Status)
	}
	return s.repo.Delete(ctx, id)
}

// Submit moves a DRAFT requisition into the approval queue at level one
func (s *requisitionServiceImpl) Submit(ctx context.Context, id int64, actorID string) (*entity.RequisitionSlip, error) {
	slip, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireRequesterOrAdmin(ctx, s.authority, slip.RequesterID, actorID); err != nil {
		return nil, err
	}
	if err := s.validateForSubmit(slip); err != nil {
		return nil, err
	}

	_, err = s.coordinator.Execute(ctx, appwf.Transition{
		Kind:     domainwf.KindRequisitionSlip,
		EntityID: slip.ID,
		Current:  domainwf.State(slip.Status),
		Level:    approval.Level(slip.CurrentApprovalLevel),
		Trigger:  domainwf.TriggerSubmit,
		ActorID:  actorID,
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("Requisition submitted", "id", slip.ID, "actor_id", actorID)
	return s.Get(ctx, id)
}

// Approve records the current level's sign-off, advancing the level or
// landing the slip in APPROVED at the final level
func (s *requisitionServiceImpl) Approve(ctx context.Context, id int64, actorID, comments string) (*entity.RequisitionSlip, error) {
	slip, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if slip.Status == entity.StatusPendingApproval {
		if err := requireLevel(ctx, s.authority, actorID, slip.DepartmentID, slip.CurrentApprovalLevel); err != nil {
			return nil, err
		}
	}

	next, err := s.coordinator.Execute(ctx, appwf.Transition{
		Kind:     domainwf.KindRequisitionSlip,
		EntityID: slip.ID,
		Current:  domainwf.State(slip.Status),
		Level:    approval.Level(slip.CurrentApprovalLevel),
		Trigger:  domainwf.TriggerApprove,
		ActorID:  actorID,
		Comments: comments,
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("Requisition approved", "id", slip.ID, "actor_id", actorID,
		"level", slip.CurrentApprovalLevel, "status", next.String())
	return s.Get(ctx, id)
}

// Reject terminates the approval with a mandatory reason. The approval
// level is preserved for audit.
func (s *requisitionServiceImpl) Reject(ctx context.Context, id int64, actorID, reason string) (*entity.RequisitionSlip, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}
	slip, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if slip.Status == entity.StatusPendingApproval {
		if err := requireLevel(ctx, s.authority, actorID, slip.DepartmentID, slip.CurrentApprovalLevel); err != nil {
			return nil, err
		}
	}

	_, err = s.coordinator.Execute(ctx, appwf.Transition{
		Kind:     domainwf.KindRequisitionSlip,
		EntityID: slip.ID,
		Current:  domainwf.State(slip.Status),
		Level:    approval.Level(slip.CurrentApprovalLevel),
		Trigger:  domainwf.TriggerReject,
		ActorID:  actorID,
		Comments: reason,
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("Requisition rejected", "id", slip.ID, "actor_id", actorID)
	return s.Get(ctx, id)
}

// Cancel withdraws a requisition that has not reached APPROVED. Only the
// original requester or an admin may cancel.
func (s *requisitionServiceImpl) Cancel(ctx context.Context, id int64, actorID string) (*entity.RequisitionSlip, error) {
	slip, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireRequesterOrAdmin(ctx, s.authority, slip.RequesterID, actorID); err != nil {
		return nil, err
	}

	_, err = s.coordinator.Execute(ctx, appwf.Transition{
		Kind:     domainwf.KindRequisitionSlip,
		EntityID: slip.ID,
		Current:  domainwf.State(slip.Status),
		Level:    approval.Level(slip.CurrentApprovalLevel),
		Trigger:  domainwf.TriggerCancel,
		ActorID:  actorID,
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	s.logger.Info("Requisition cancelled", "id", slip.ID, "actor_id", actorID)
	return s.Get(ctx, id)
}

// History returns the approval trail of a requisition
func (s *requisitionServiceImpl) History(ctx context.Context, id int64) ([]*entity.ApprovalRecord, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.records.GetByEntity(ctx, entity.EntityTypeRequisitionSlip, id)
}

func (s *requisitionServiceImpl) validateInput(input CreateRequisitionInput) error {
	if input.RequesterID == "" || input.DepartmentID == "" {
		return fmt.Errorf("%w: requester and department are required", ErrValidation)
	}
	rt := routing.RequestType(input.RequestType)
	if !s.table.Known(rt) {
		return fmt.Errorf("%w: unknown request type %q", ErrValidation, input.RequestType)
	}
	if input.ProcessingDepartment == "" {
		return fmt.Errorf("%w: processing department is required", ErrValidation)
	}
	if !s.table.CanProcess(rt, input.ProcessingDepartment) {
		return fmt.Errorf("%w: department %s is not a process owner for %s",
			ErrValidation, input.ProcessingDepartment, input.RequestType)
	}
	for i, item := range input.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d quantity must be positive", ErrValidation, i+1)
		}
		if item.UnitCostCents < 0 {
			return fmt.Errorf("%w: item %d unit cost must not be negative", ErrValidation, i+1)
		}
	}
	return nil
}

func (s *requisitionServiceImpl) validateForSubmit(slip *entity.RequisitionSlip) error {
	if slip.Purpose == "" {
		return fmt.Errorf("%w: purpose is required", ErrValidation)
	}
	if slip.DateNeeded.IsZero() {
		return fmt.Errorf("%w: date needed is required", ErrValidation)
	}
	if len(slip.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrValidation)
	}
	return nil
}

