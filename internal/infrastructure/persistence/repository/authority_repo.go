package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/rbcaldoza/docflows/internal/application/port"
)

// AuthorityRepository implements port.AuthorityChecker over the users and
// approver_assignments tables
type AuthorityRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAuthorityRepository creates a new authority repository
func NewAuthorityRepository(db *sql.DB, logger *zap.Logger) port.AuthorityChecker {
	return &AuthorityRepository{
		db:     db,
		logger: logger,
	}
}

// ActorHasLevel reports whether the actor is the designated approver at the
// given level for the department
func (r *AuthorityRepository) ActorHasLevel(ctx context.Context, actorID, departmentID string, level int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM approver_assignments
			WHERE user_id = ? AND department_id = ? AND level = ?
		)
	`

	var exists bool
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, actorID, departmentID, level).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check approver level",
			zap.String("actor_id", actorID),
			zap.String("department_id", departmentID),
			zap.Error(err))
		return false, fmt.Errorf("failed to check approver level: %w", err)
	}
	return exists, nil
}

// ActorHasRole reports whether the actor holds the given role
func (r *AuthorityRepository) ActorHasRole(ctx context.Context, actorID, role string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE id = ? AND role = ?)`

	var exists bool
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, actorID, role).Scan(&exists)
	if err != nil {
		r.logger.Error("Failed to check role",
			zap.String("actor_id", actorID),
			zap.String("role", role),
			zap.Error(err))
		return false, fmt.Errorf("failed to check role: %w", err)
	}
	return exists, nil
}

// Verify interface compliance
var _ port.AuthorityChecker = (*AuthorityRepository)(nil)
