package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/rbcaldoza/docflows/internal/application/port"
	"github.com/rbcaldoza/docflows/internal/domain/entity"
)

// RequisitionRepository implements port.RequisitionRepository
type RequisitionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRequisitionRepository creates a new requisition repository
func NewRequisitionRepository(db *sql.DB, logger *zap.Logger) port.RequisitionRepository {
	return &RequisitionRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a requisition slip and its line items
func (r *RequisitionRepository) Create(ctx context.Context, slip *entity.RequisitionSlip) error {
	query := `
		INSERT INTO requisition_slips (
			requisition_number, requester_id, department_id, processing_department,
			request_type, date_requested, date_needed, purpose, status,
			current_approval_level
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	exec := getExecutor(ctx, r.db)
	result, err := exec.ExecContext(ctx, query,
		slip.RequisitionNumber,
		slip.RequesterID,
		slip.DepartmentID,
		slip.ProcessingDepartment,
		slip.RequestType,
		slip.DateRequested,
		slip.DateNeeded,
		slip.Purpose,
		slip.Status,
		slip.CurrentApprovalLevel,
	)
	if err != nil {
		r.logger.Error("Failed to create requisition", zap.Error(err))
		return mapInsertErr(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	slip.ID = id

	return r.insertItems(ctx, exec, slip)
}

func (r *RequisitionRepository) insertItems(ctx context.Context, exec executor, slip *entity.RequisitionSlip) error {
	query := `
		INSERT INTO request_items (
			requisition_id, quantity, unit, particulars, unit_cost_cents, subtotal_cents
		) VALUES (?, ?, ?, ?, ?, ?)
	`
	for _, item := range slip.Items {
		item.RequisitionID = slip.ID
		result, err := exec.ExecContext(ctx, query,
			item.RequisitionID,
			item.Quantity,
			item.Unit,
			item.Particulars,
			item.UnitCostCents,
			item.SubtotalCents,
		)
		if err != nil {
			r.logger.Error("Failed to create request item", zap.Int64("requisition_id", slip.ID), zap.Error(err))
			return fmt.Errorf("failed to create request item: %w", err)
		}
		if item.ID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
	}
	return nil
}

// GetByID retrieves a requisition slip with its items
func (r *RequisitionRepository) GetByID(ctx context.Context, id int64) (*entity.RequisitionSlip, error) {
	query := `
		SELECT id, requisition_number, requester_id, department_id, processing_department,
			request_type, date_requested, date_needed, purpose, status,
			current_approval_level, created_at, updated_at
		FROM requisition_slips
		WHERE id = ?
	`

	var slip entity.RequisitionSlip
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&slip.ID,
		&slip.RequisitionNumber,
		&slip.RequesterID,
		&slip.DepartmentID,
		&slip.ProcessingDepartment,
		&slip.RequestType,
		&slip.DateRequested,
		&slip.DateNeeded,
		&slip.Purpose,
		&slip.Status,
		&slip.CurrentApprovalLevel,
		&slip.CreatedAt,
		&slip.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get requisition", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get requisition: %w", err)
	}

	if slip.Items, err = r.itemsByRequisition(ctx, id); err != nil {
		return nil, err
	}
	return &slip, nil
}

func (r *RequisitionRepository) itemsByRequisition(ctx context.Context, requisitionID int64) ([]*entity.RequestItem, error) {
	query := `
		SELECT id, requisition_id, quantity, unit, particulars,
			unit_cost_cents, subtotal_cents, created_at
		FROM request_items
		WHERE requisition_id = ?
		ORDER BY id
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, requisitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list request items: %w", err)
	}
	defer rows.Close()

	var items []*entity.RequestItem
	for rows.Next() {
		var item entity.RequestItem
		err := rows.Scan(
			&item.ID,
			&item.RequisitionID,
			&item.Quantity,
			&item.Unit,
			&item.Particulars,
			&item.UnitCostCents,
			&item.SubtotalCents,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request item: %w", err)
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

// List retrieves requisition slips with pagination, newest first. Line items
// are not loaded for listings.
func (r *RequisitionRepository) List(ctx context.Context, limit, offset int) ([]*entity.RequisitionSlip, error) {
	query := `
		SELECT id, requisition_number, requester_id, department_id, processing_department,
			request_type, date_requested, date_needed, purpose, status,
			current_approval_level, created_at, updated_at
		FROM requisition_slips
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list requisitions", zap.Error(err))
		return nil, fmt.Errorf("failed to list requisitions: %w", err)
	}
	defer rows.Close()

	var slips []*entity.RequisitionSlip
	for rows.Next() {
		var slip entity.RequisitionSlip
		err := rows.Scan(
			&slip.ID,
			&slip.RequisitionNumber,
			&slip.RequesterID,
			&slip.DepartmentID,
			&slip.ProcessingDepartment,
			&slip.RequestType,
			&slip.DateRequested,
			&slip.DateNeeded,
			&slip.Purpose,
			&slip.Status,
			&slip.CurrentApprovalLevel,
			&slip.CreatedAt,
			&slip.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan requisition: %w", err)
		}
		slips = append(slips, &slip)
	}
	return slips, rows.Err()
}

// Update replaces the editable fields of a slip and rewrites its items
func (r *RequisitionRepository) Update(ctx context.Context, slip *entity.RequisitionSlip) error {
	query := `
		UPDATE requisition_slips
		SET processing_department = ?, request_type = ?, date_needed = ?,
			purpose = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	exec := getExecutor(ctx, r.db)
	if _, err := exec.ExecContext(ctx, query,
		slip.ProcessingDepartment,
		slip.RequestType,
		slip.DateNeeded,
		slip.Purpose,
		slip.ID,
	); err != nil {
		r.logger.Error("Failed to update requisition", zap.Int64("id", slip.ID), zap.Error(err))
		return fmt.Errorf("failed to update requisition: %w", err)
	}

	if _, err := exec.ExecContext(ctx, `DELETE FROM request_items WHERE requisition_id = ?`, slip.ID); err != nil {
		return fmt.Errorf("failed to clear request items: %w", err)
	}
	return r.insertItems(ctx, exec, slip)
}

// Delete removes a requisition slip; items go with it via cascade
func (r *RequisitionRepository) Delete(ctx context.Context, id int64) error {
	_, err := getExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM requisition_slips WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("Failed to delete requisition", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete requisition: %w", err)
	}
	return nil
}

// UpdateStatusIf applies the status change only if the stored status still
// matches from. Zero rows affected means a concurrent writer won.
func (r *RequisitionRepository) UpdateStatusIf(ctx context.Context, id int64, from, to string) error {
	query := `
		UPDATE requisition_slips
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, to, id, from)
	if err != nil {
		r.logger.Error("Failed to update requisition status", zap.Int64("id", id), zap.Error(err))
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
func (r *RequisitionRepository) SetApprovalLevel(ctx context.Context, id int64, level int) error {
	query := `
		UPDATE requisition_slips
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
var _ port.RequisitionRepository = (*RequisitionRepository)(nil)
