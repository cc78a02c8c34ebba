package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rbcaldoza/docflows/internal/application/port"
	"github.com/rbcaldoza/docflows/internal/domain/entity"
)

// CheckRepository implements port.CheckRepository. The checks table carries
// a unique index on check_voucher_id; one check per voucher.
type CheckRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCheckRepository creates a new check repository
func NewCheckRepository(db *sql.DB, logger *zap.Logger) port.CheckRepository {
	return &CheckRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a check
func (r *CheckRepository) Create(ctx context.Context, check *entity.Check) error {
	query := `
		INSERT INTO checks (
			check_number, check_voucher_id, bank_account_id, status, check_date
		) VALUES (?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		check.CheckNumber,
		check.CheckVoucherID,
		check.BankAccountID,
		check.Status,
		check.CheckDate,
	)
	if err != nil {
		r.logger.Error("Failed to create check", zap.Int64("check_voucher_id", check.CheckVoucherID), zap.Error(err))
		return mapInsertErr(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	check.ID = id
	return nil
}

// GetByID retrieves a check by ID
func (r *CheckRepository) GetByID(ctx context.Context, id int64) (*entity.Check, error) {
	return r.getOne(ctx, `WHERE id = ?`, id)
}

// GetByVoucherID retrieves the check issued against a voucher
func (r *CheckRepository) GetByVoucherID(ctx context.Context, voucherID int64) (*entity.Check, error) {
	return r.getOne(ctx, `WHERE check_voucher_id = ?`, voucherID)
}

func (r *CheckRepository) getOne(ctx context.Context, where string, arg interface{}) (*entity.Check, error) {
	query := `
		SELECT id, check_number, check_voucher_id, bank_account_id, status,
			check_date, disbursement_date, void_reason, created_at, updated_at
		FROM checks ` + where

	var check entity.Check
	var disbursementDate sql.NullTime
	var voidReason sql.NullString

	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, arg).Scan(
		&check.ID,
		&check.CheckNumber,
		&check.CheckVoucherID,
		&check.BankAccountID,
		&check.Status,
		&check.CheckDate,
		&disbursementDate,
		&voidReason,
		&check.CreatedAt,
		&check.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get check", zap.Error(err))
		return nil, fmt.Errorf("failed to get check: %w", err)
	}

	if disbursementDate.Valid {
		check.DisbursementDate = &disbursementDate.Time
	}
	if voidReason.Valid {
		check.VoidReason = voidReason.String
	}
	return &check, nil
}

// List retrieves checks with pagination, newest first
func (r *CheckRepository) List(ctx context.Context, limit, offset int) ([]*entity.Check, error) {
	query := `
		SELECT id, check_number, check_voucher_id, bank_account_id, status,
			check_date, disbursement_date, void_reason, created_at, updated_at
		FROM checks
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list checks", zap.Error(err))
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}
	defer rows.Close()

	var checks []*entity.Check
	for rows.Next() {
		var check entity.Check
		var disbursementDate sql.NullTime
		var voidReason sql.NullString

		err := rows.Scan(
			&check.ID,
			&check.CheckNumber,
			&check.CheckVoucherID,
			&check.BankAccountID,
			&check.Status,
			&check.CheckDate,
			&disbursementDate,
			&voidReason,
			&check.CreatedAt,
			&check.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan check: %w", err)
		}
		if disbursementDate.Valid {
			check.DisbursementDate = &disbursementDate.Time
		}
		if voidReason.Valid {
			check.VoidReason = voidReason.String
		}
		checks = append(checks, &check)
	}
	return checks, rows.Err()
}

// UpdateStatusIf applies the status change only if the stored status still
// matches from
func (r *CheckRepository) UpdateStatusIf(ctx context.Context, id int64, from, to string) error {
	query := `
		UPDATE checks
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query, to, id, from)
	if err != nil {
		r.logger.Error("Failed to update check status", zap.Int64("id", id), zap.Error(err))
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

// SetDisbursementDate records when the check cleared
func (r *CheckRepository) SetDisbursementDate(ctx context.Context, id int64, t time.Time) error {
	query := `UPDATE checks SET disbursement_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := getExecutor(ctx, r.db).ExecContext(ctx, query, t, id); err != nil {
		r.logger.Error("Failed to set disbursement date", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to set disbursement date: %w", err)
	}
	return nil
}

// SetVoidReason records why the check was voided
func (r *CheckRepository) SetVoidReason(ctx context.Context, id int64, reason string) error {
	query := `UPDATE checks SET void_reason = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := getExecutor(ctx, r.db).ExecContext(ctx, query, reason, id); err != nil {
		r.logger.Error("Failed to set void reason", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to set void reason: %w", err)
	}
	return nil
}

// Verify interface compliance
var _ port.CheckRepository = (*CheckRepository)(nil)
