// Package workflow coordinates document lifecycle transitions: it builds
// the state machine for the document's current snapshot, fires the trigger,
// persists the new status with a compare-and-swap, and appends the approval
// record, all inside one transaction.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/rbcaldoza/docflows/internal/application/port"
	"github.com/rbcaldoza/docflows/internal/domain/approval"
	"github.com/rbcaldoza/docflows/internal/domain/entity"
	domainwf "github.com/rbcaldoza/docflows/internal/domain/workflow"
)

// Transition describes one requested lifecycle transition. Current and
// Level are the caller's snapshot of the document; a concurrent writer that
// changes the status between read and commit loses with ErrConcurrentUpdate.
type Transition struct {
	Kind     domainwf.DocumentKind
	EntityID int64
	Current  domainwf.State
	Level    approval.Level
	Trigger  domainwf.Trigger
	ActorID  string
	Comments string

	// InTx runs inside the transition's transaction after the status update,
	// for work that must commit atomically with it (downstream document
	// creation, disbursement dates)
	InTx func(ctx context.Context, next domainwf.State) error
}

// Coordinator executes lifecycle transitions end to end
type Coordinator interface {
	Execute(ctx context.Context, t Transition) (domainwf.State, error)
}

type coordinatorImpl struct {
	stores  map[domainwf.DocumentKind]port.StatusUpdater
	levels  map[domainwf.DocumentKind]port.LevelUpdater
	records port.ApprovalRecordRepository
	tx      port.TransactionManager
	policy  approval.Policy
}

// NewCoordinator creates a lifecycle coordinator over the given document
// repositories
func NewCoordinator(
	requisitions port.RequisitionRepository,
	payments port.PaymentRepository,
	vouchers port.VoucherRepository,
	checks port.CheckRepository,
	records port.ApprovalRecordRepository,
	tx port.TransactionManager,
	policy approval.Policy,
) Coordinator {
	return &coordinatorImpl{
		stores: map[domainwf.DocumentKind]port.StatusUpdater{
			domainwf.KindRequisitionSlip: requisitions,
			domainwf.KindPaymentRequest:  payments,
			domainwf.KindCheckVoucher:    vouchers,
			domainwf.KindCheck:           checks,
		},
		levels: map[domainwf.DocumentKind]port.LevelUpdater{
			domainwf.KindRequisitionSlip: requisitions,
			domainwf.KindPaymentRequest:  payments,
		},
		records: records,
		tx:      tx,
		policy:  policy,
	}
}

var recordEntityTypes = map[domainwf.DocumentKind]string{
	domainwf.KindRequisitionSlip: entity.EntityTypeRequisitionSlip,
	domainwf.KindPaymentRequest:  entity.EntityTypePaymentRequest,
	domainwf.KindCheckVoucher:    entity.EntityTypeCheckVoucher,
	domainwf.KindCheck:           entity.EntityTypeCheck,
}

// Execute fires the trigger and persists the outcome. A submit rolls
// straight through SUBMITTED into PENDING_APPROVAL and sets approval level
// one; an approval below the final level advances the level and stays in
// PENDING_APPROVAL. Every trigger except submit appends an approval record.
func (c *coordinatorImpl) Execute(ctx context.Context, t Transition) (domainwf.State, error) {
	store, ok := c.stores[t.Kind]
	if !ok {
		return "", fmt.Errorf("no repository for document kind %s", t.Kind)
	}

	machine := BuildMachine(t.Kind, t.Current, t.Level, c.policy)

	if err := machine.Fire(ctx, t.Trigger); err != nil {
		return "", err
	}

	// Submitted documents enter the approval queue immediately
	if t.Trigger == domainwf.TriggerSubmit && machine.CanFire(domainwf.TriggerRoute) {
		if err := machine.Fire(ctx, domainwf.TriggerRoute); err != nil {
			return "", err
		}
	}

	next := machine.State()

	err := c.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := store.UpdateStatusIf(txCtx, t.EntityID, t.Current.String(), next.String()); err != nil {
			return err
		}

		if err := c.updateLevel(txCtx, t, next); err != nil {
			return err
		}

		if t.Trigger != domainwf.TriggerSubmit {
			record := &entity.ApprovalRecord{
				EntityType:    recordEntityTypes[t.Kind],
				EntityID:      t.EntityID,
				ApprovalLevel: int(t.Level),
				ActorID:       t.ActorID,
				Action:        t.Trigger.String(),
				Comments:      t.Comments,
				Timestamp:     time.Now(),
			}
			if err := c.records.Create(txCtx, record); err != nil {
				return fmt.Errorf("create approval record: %w", err)
			}
		}

		if t.InTx != nil {
			return t.InTx(txCtx, next)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return next, nil
}

// updateLevel advances the approval level where the transition calls for it.
// Rejection and cancellation preserve the level for audit.
func (c *coordinatorImpl) updateLevel(ctx context.Context, t Transition, next domainwf.State) error {
	levels, ok := c.levels[t.Kind]
	if !ok {
		return nil
	}

	switch {
	case t.Trigger == domainwf.TriggerSubmit && next == domainwf.StatePendingApproval:
		return levels.SetApprovalLevel(ctx, t.EntityID, int(approval.LevelDeptManager))

	case t.Trigger == domainwf.TriggerApprove && next == domainwf.StatePendingApproval:
		nextLevel, ok := c.policy.Next(t.Level)
		if !ok {
			return fmt.Errorf("approval level %d has no successor but document stayed pending", t.Level)
		}
		return levels.SetApprovalLevel(ctx, t.EntityID, int(nextLevel))
	}

	return nil
}
