package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/rbcaldoza/docflows/internal/application/port"
	"github.com/rbcaldoza/docflows/internal/domain/entity"
)

// VoucherRepository implements port.VoucherRepository. The check_vouchers
// table carries a unique index on rfp_id; a second voucher for the same
// payment request fails with port.ErrDuplicate.
type VoucherRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewVoucherRepository creates a new check voucher repository
func NewVoucherRepository(db *sql.DB, logger *zap.Logger) port.VoucherRepository {
	return &VoucherRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a check voucher
func (r *VoucherRepository) Create(ctx context.Context, cv *entity.CheckVoucher) error {
	query := `
		INSERT INTO check_vouchers (
			cv_number, rfp_id, payee, particulars, amount_cents, status
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		cv.CVNumber,
		cv.RFPID,
		cv.Payee,
		cv.Particulars,
		cv.AmountCents,
		cv.Status,
	)
	if err != nil {
		r.logger.Error("Failed to create check voucher", zap.Int64("rfp_id", cv.RFPID), zap.Error(err))
		return mapInsertErr(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	cv.ID = id
	return nil
}

// GetByID retrieves a check voucher by ID
func (r *VoucherRepository) GetByID(ctx context.Context, id int64) (*entity.CheckVoucher, error) {
	return r.getOne(ctx, `WHERE id = ?`, id)
}

// GetByRFPID retrieves the check voucher of a payment request
func (r *VoucherRepository) GetByRFPID(ctx context.Context, rfpID int64) (*entity.CheckVoucher, error) {
	return r.getOne(ctx, `WHERE rfp_id = ?`, rfpID)
}

func (r *VoucherRepository) getOne(ctx context.Context, where string, arg interface{}) (*entity.CheckVoucher, error) {
	query := `
		SELECT id, cv_number, rfp_id, payee, particulars, amount_cents, status,
			created_at, updated_at
		FROM check_vouchers ` + where

	var cv entity.CheckVoucher
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, arg).Scan(
		&cv.ID,
		&cv.CVNumber,
		&cv.RFPID,
		&cv.Payee,
		&cv.Particulars,
		&cv.AmountCents,
		&cv.Status,
		&cv.CreatedAt,
		&cv.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get check voucher", zap.Error(err))
		return nil, fmt.Errorf("failed to get check voucher: %w", err)
	}
	return &cv, nil
}

// List retrieves check vouchers with pagination, newest first
func (r *VoucherRepository) List(ctx context.Context, limit, offset int) ([]*entity.CheckVoucher, error) {
	query := `
		SELECT id, cv_number, rfp_id, payee, particulars, amount_cents, status,
			created_at, updated_at
		FROM check_vouchers
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list check vouchers", zap.Error(err))
		return nil, fmt.Errorf("failed to list check vouchers: %w", err)
	}
	defer rows.Close()

	var vouchers []*entity.CheckVoucher
	for rows.Next() {
		var cv entity.CheckVoucher
		err := rows.Scan(
			&cv.ID,
			&cv.CVNumber,
			&cv.RFPID,
			&cv.Payee,
			&cv.Particulars,
			&cv.AmountCents,
			&cv.Status,
			&cv.CreatedAt,
			&cv.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check voucher: %w", err)
		}
		vouchers = append(vouchers, &cv)
	}
	return vouchers, rows.Err()
}

// UpdateStatusIf applies the status change only if the stored status still
// matches from
func (r *VoucherRepository) UpdateStatusIf(ctx context.Context, id int64, from, to string) error {
	query := `
		UPDATE check_vouchers
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, to, id, from)
	if err != nil {
		r.logger.Error("Failed to update voucher status", zap.Int64("id", id), zap.Error(err))
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

// Verify interface compliance
var _ port.VoucherRepository = (*VoucherRepository)(nil)
