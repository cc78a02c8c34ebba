package port

import (
	"context"
	"errors"
	"time"

	"github.com/rbcaldoza/docflows/internal/domain/entity"
)

var (
	// ErrConcurrentUpdate is returned by conditional status updates when the
	// stored status no longer matches the one read (optimistic-lock loss)
	ErrConcurrentUpdate = errors.New("document modified concurrently")

	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint (one downstream document per parent)
	ErrDuplicate = errors.New("duplicate record")
)

// StatusUpdater is the compare-and-swap surface every document repository
// provides: the update applies only if the stored status still equals from.
type StatusUpdater interface {
	UpdateStatusIf(ctx context.Context, id int64, from, to string) error
}

// LevelUpdater is implemented by repositories of documents that carry an
// approval level (requisition slips and payment requests)
type LevelUpdater interface {
	SetApprovalLevel(ctx context.Context, id int64, level int) error
}

// RequisitionRepository defines persistence operations for RequisitionSlip
type RequisitionRepository interface {
	StatusUpdater
	LevelUpdater
	Create(ctx context.Context, slip *entity.RequisitionSlip) error
	GetByID(ctx context.Context, id int64) (*entity.RequisitionSlip, error)
	List(ctx context.Context, limit, offset int) ([]*entity.RequisitionSlip, error)
	Update(ctx context.Context, slip *entity.RequisitionSlip) error
	Delete(ctx context.Context, id int64) error
}

// PaymentRepository defines persistence operations for RequisitionForPayment
type PaymentRepository interface {
	StatusUpdater
	LevelUpdater
	Create(ctx context.Context, rfp *entity.RequisitionForPayment) error
	GetByID(ctx context.Context, id int64) (*entity.RequisitionForPayment, error)
	List(ctx context.Context, limit, offset int) ([]*entity.RequisitionForPayment, error)
	Update(ctx context.Context, rfp *entity.RequisitionForPayment) error
	Delete(ctx context.Context, id int64) error
}

// VoucherRepository defines persistence operations for CheckVoucher
type VoucherRepository interface {
	StatusUpdater
	Create(ctx context.Context, cv *entity.CheckVoucher) error
	GetByID(ctx context.Context, id int64) (*entity.CheckVoucher, error)
	GetByRFPID(ctx context.Context, rfpID int64) (*entity.CheckVoucher, error)
	List(ctx context.Context, limit, offset int) ([]*entity.CheckVoucher, error)
}

// CheckRepository defines persistence operations for Check
type CheckRepository interface {
	StatusUpdater
	Create(ctx context.Context, check *entity.Check) error
	GetByID(ctx context.Context, id int64) (*entity.Check, error)
	GetByVoucherID(ctx context.Context, voucherID int64) (*entity.Check, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Check, error)
	SetDisbursementDate(ctx context.Context, id int64, t time.Time) error
	SetVoidReason(ctx context.Context, id int64, reason string) error
}

// ApprovalRecordRepository defines persistence operations for ApprovalRecord.
// Records are append-only; there is no update or delete.
type ApprovalRecordRepository interface {
	Create(ctx context.Context, record *entity.ApprovalRecord) error
	GetByEntity(ctx context.Context, entityType string, entityID int64) ([]*entity.ApprovalRecord, error)
}

// NumberSeriesRepository hands out sequential document numbers per series.
// Next must be called inside the transaction creating the document so a
// rolled-back creation does not burn a number silently.
type NumberSeriesRepository interface {
	Next(ctx context.Context, series string) (string, error)
}

// TransactionManager handles database transactions. Nested calls reuse the
// transaction carried in the context.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
