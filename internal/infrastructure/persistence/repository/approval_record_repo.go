package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/rbcaldoza/docflows/internal/application/port"
	"github.com/rbcaldoza/docflows/internal/domain/entity"
)

// ApprovalRecordRepository implements port.ApprovalRecordRepository.
// Records are append-only.
type ApprovalRecordRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewApprovalRecordRepository creates a new approval record repository
func NewApprovalRecordRepository(db *sql.DB, logger *zap.Logger) port.ApprovalRecordRepository {
	return &ApprovalRecordRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends an approval record
func (r *ApprovalRecordRepository) Create(ctx context.Context, record *entity.ApprovalRecord) error {
	query := `
		INSERT INTO approval_records (
			entity_type, entity_id, approval_level, actor_id, action, comments, timestamp
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		record.EntityType,
		record.EntityID,
		record.ApprovalLevel,
		record.ActorID,
		record.Action,
		record.Comments,
		record.Timestamp,
	)
	if err != nil {
		r.logger.Error("Failed to create approval record",
			zap.String("entity_type", record.EntityType),
			zap.Int64("entity_id", record.EntityID),
			zap.Error(err))
		return fmt.Errorf("failed to create approval record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	record.ID = id
	return nil
}

// GetByEntity retrieves the approval trail of a document, oldest first
func (r *ApprovalRecordRepository) GetByEntity(ctx context.Context, entityType string, entityID int64) ([]*entity.ApprovalRecord, error) {
	query := `
		SELECT id, entity_type, entity_id, approval_level, actor_id, action, comments, timestamp
		FROM approval_records
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY id
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, entityType, entityID)
	if err != nil {
		r.logger.Error("Failed to list approval records", zap.Error(err))
		return nil, fmt.Errorf("failed to list approval records: %w", err)
	}
	defer rows.Close()

	var records []*entity.ApprovalRecord
	for rows.Next() {
		var record entity.ApprovalRecord
		err := rows.Scan(
			&record.ID,
			&record.EntityType,
			&record.EntityID,
			&record.ApprovalLevel,
			&record.ActorID,
			&record.Action,
			&record.Comments,
			&record.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval record: %w", err)
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}

// Verify interface compliance
var _ port.ApprovalRecordRepository = (*ApprovalRecordRepository)(nil)
