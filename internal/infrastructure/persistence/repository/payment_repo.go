package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/rbcaldoza/docflows/internal/application/port"
	"github.com/rbcaldoza/docflows/internal/domain/entity"
)

// PaymentRepository implements port.PaymentRepository
type PaymentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *sql.DB, logger *zap.Logger) port.PaymentRepository {
	return &PaymentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a requisition for payment
func (r *PaymentRepository) Create(ctx context.Context, rfp *entity.RequisitionForPayment) error {
	query := `
		INSERT INTO requisitions_for_payment (
			rfp_number, requisition_slip_id, requester_id, department_id,
			payee, particulars, amount_cents, status, current_approval_level
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		rfp.RFPNumber,
		rfp.RequisitionSlipID,
		rfp.RequesterID,
		rfp.DepartmentID,
		rfp.Payee,
		rfp.Particulars,
		rfp.AmountCents,
		rfp.Status,
		rfp.CurrentApprovalLevel,
	)
	if err != nil {
		r.logger.Error("Failed to create payment request", zap.Error(err))
		return mapInsertErr(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	rfp.ID = id
	return nil
}

// GetByID retrieves a requisition for payment by ID
func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*entity.RequisitionForPayment, error) {
	query := `
		SELECT id, rfp_number, requisition_slip_id, requester_id, department_id,
			payee, particulars, amount_cents, status, current_approval_level,
			created_at, updated_at
		FROM requisitions_for_payment
		WHERE id = ?
	`

	var rfp entity.RequisitionForPayment
	var slipID sql.NullInt64

	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&rfp.ID,
		&rfp.RFPNumber,
		&slipID,
		&rfp.RequesterID,
		&rfp.DepartmentID,
		&rfp.Payee,
		&rfp.Particulars,
		&rfp.AmountCents,
		&rfp.Status,
		&rfp.CurrentApprovalLevel,
		&rfp.CreatedAt,
		&rfp.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get payment request", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get payment request: %w", err)
	}

	if slipID.Valid {
		rfp.RequisitionSlipID = &slipID.Int64
	}
	return &rfp, nil
}

// List retrieves requisitions for payment with pagination, newest first
func (r *PaymentRepository) List(ctx context.Context, limit, offset int) ([]*entity.RequisitionForPayment, error) {
	query := `
		SELECT id, rfp_number, requisition_slip_id, requester_id, department_id,
			payee, particulars, amount_cents, status, current_approval_level,
			created_at, updated_at
		FROM requisitions_for_payment
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list payment requests", zap.Error(err))
		return nil, fmt.Errorf("failed to list payment requests: %w", err)
	}
	defer rows.Close()

	var rfps []*entity.RequisitionForPayment
	for rows.Next() {
		var rfp entity.RequisitionForPayment
		var slipID sql.NullInt64

		err := rows.Scan(
			&rfp.ID,
			&rfp.RFPNumber,
			&slipID,
			&rfp.RequesterID,
			&rfp.DepartmentID,
			&rfp.Payee,
			&rfp.Particulars,
			&rfp.AmountCents,
			&rfp.Status,
			&rfp.CurrentApprovalLevel,
			&rfp.CreatedAt,
			&rfp.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment request: %w", err)
		}
		if slipID.Valid {
			rfp.RequisitionSlipID = &slipID.Int64
		}
		rfps = append(rfps, &rfp)
	}
	return rfps, rows.Err()
}

// Update replaces the editable fields of a payment request
func (r *PaymentRepository) Update(ctx context.Context, rfp *entity.RequisitionForPayment) error {
	query := `
		UPDATE requisitions_for_payment
		SET payee = ?, particulars = ?, amount_cents = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	if _, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		rfp.Payee, rfp.Particulars, rfp.AmountCents, rfp.ID,
	); err != nil {
		r.logger.Error("Failed to update payment request", zap.Int64("id", rfp.ID), zap.Error(err))
		return fmt.Errorf("failed to update payment request: %w", err)
	}
	return nil
}

// Delete removes a payment request
func (r *PaymentRepository) Delete(ctx context.Context, id int64) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM requisitions_for_payment WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete payment request", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete payment request: %w", err)
	}
	return nil
}

// UpdateStatusIf applies the status change only if the stored status still
// matches from
func (r *PaymentRepository) UpdateStatusIf(ctx context.Context, id int64, from, to string) error {
	query := `
		UPDATE requisitions_for_payment
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, to, id, from)
	if err != nil {
		r.logger.Error("Failed to update payment status", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to update status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return port.ErrConcurrentUpdate
	}
	return nil
}

// SetApprovalLevel sets the pending approval level
func (r *PaymentRepository) SetApprovalLevel(ctx context.Context, id int64, level int) error {
	query := `
		UPDATE requisitions_for_payment
		SET current_approval_level = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	if _, err := getExecutor(ctx, r.db).ExecContext(ctx, query, level, id); err != nil {
		r.logger.Error("Failed to set approval level", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to set approval level: %w", err)
	}
	return nil
}

// Verify interface compliance
var _ port.PaymentRepository = (*PaymentRepository)(nil)
