package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/rbcaldoza/docflows/internal/application/port"
)

// NumberSeriesRepository implements port.NumberSeriesRepository over the
// number_series table. Next must run inside the transaction that creates the
// document; the UPDATE takes the row lock so concurrent creators serialize.
type NumberSeriesRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewNumberSeriesRepository creates a new number series repository
func NewNumberSeriesRepository(db *sql.DB, logger *zap.Logger) port.NumberSeriesRepository {
	return &NumberSeriesRepository{
		db:     db,
		logger: logger,
	}
}

// Next advances the series counter and returns the formatted document number
func (r *NumberSeriesRepository) Next(ctx context.Context, series string) (string, error) {
	exec := getExecutor(ctx, r.db)

	result, err := exec.ExecContext(ctx,
		`UPDATE number_series SET next_value = next_value + 1 WHERE series = ?`, series)
	if err != nil {
		r.logger.Error("Failed to advance number series", zap.String("series", series), zap.Error(err))
		return "", fmt.Errorf("failed to advance number series: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return "", fmt.Errorf("unknown number series %q", series)
	}

	var value int64
	err = exec.QueryRowContext(ctx,
		`SELECT next_value - 1 FROM number_series WHERE series = ?`, series).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("failed to read number series: %w", err)
	}

	return fmt.Sprintf("%s-%06d", series, value), nil
}

// Verify interface compliance
var _ port.NumberSeriesRepository = (*NumberSeriesRepository)(nil)
