package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mes-workflow-api/internal/models"
)

// ErrDuplicateApproval signals that a passing inspection already exists for
// the order, so a second approval must not be applied.
var ErrDuplicateApproval = errors.New("duplicate passing inspection")

// QCRepository persists inspection records.
type QCRepository struct {
	db *sqlx.DB
}

// NewQCRepository creates a new instance of QCRepository.
func NewQCRepository(db *sqlx.DB) *QCRepository {
	return &QCRepository{db: db}
}

// RecordInspection appends an inspection and, for a passing one, flips the
// parent order to COMPLETED. Guard, insert and status flip run in a single
// transaction with the order row locked, so two concurrent passing
// submissions serialize: exactly one applies, the other observes the
// duplicate-approval conflict. Running these as three independent calls
// would reintroduce the double-approval race.
func (r *QCRepository) RecordInspection(ctx context.Context, inspection *models.QCInspection) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record inspection: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	// The row is fetched only as a lock vehicle and existence check.
	var locked int
	const lockQuery = `SELECT 1 FROM production_orders WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &locked, lockQuery, inspection.ProductionID); err != nil {
		if err == sql.ErrNoRows {
			return sql.ErrNoRows
		}
		return fmt.Errorf("lock order for inspection: %w", err)
	}

	if inspection.Passed {
		var approved bool
		const guardQuery = `SELECT EXISTS(SELECT 1 FROM qc_inspections WHERE production_id = $1 AND passed = TRUE)`
		if err := tx.GetContext(ctx, &approved, guardQuery, inspection.ProductionID); err != nil {
			return fmt.Errorf("check existing approval: %w", err)
		}
		if approved {
			return ErrDuplicateApproval
		}
	}

	if inspection.ID == "" {
		inspection.ID = uuid.NewString()
	}
	if inspection.CreatedAt.IsZero() {
		inspection.CreatedAt = time.Now().UTC()
	}

	const insertQuery = `INSERT INTO qc_inspections (id, production_id, inspector_id, passed, notes, created_at)
	VALUES (:id, :production_id, :inspector_id, :passed, :notes, :created_at)`
	if _, err := tx.NamedExecContext(ctx, insertQuery, inspection); err != nil {
		return fmt.Errorf("insert inspection: %w", err)
	}

	if inspection.Passed {
		const completeQuery = `UPDATE production_orders SET status = $2, updated_at = $3 WHERE id = $1`
		if _, err := tx.ExecContext(ctx, completeQuery, inspection.ProductionID, models.OrderStatusCompleted, time.Now().UTC()); err != nil {
			return fmt.Errorf("complete order: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record inspection: %w", err)
	}
	return nil
}

// CountSince counts inspections with the given outcome recorded after the
// cutoff.
func (r *QCRepository) CountSince(ctx context.Context, passed bool, since time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM qc_inspections WHERE passed = $1 AND created_at > $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, passed, since); err != nil {
		return 0, fmt.Errorf("count inspections: %w", err)
	}
	return count, nil
}
