package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/mes-workflow-api/internal/models"
)

// OrderRepository provides database access for production orders.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `id, reference_no, model_name, quantity, status, created_by, created_at, updated_at`

// Create inserts a new production order.
func (r *OrderRepository) Create(ctx context.Context, order *models.ProductionOrder) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	const query = `INSERT INTO production_orders (id, reference_no, model_name, quantity, status, created_by, created_at, updated_at)
	VALUES (:id, :reference_no, :model_name, :quantity, :status, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, order); err != nil {
		return fmt.Errorf("create production order: %w", err)
	}
	return nil
}

// FindByReference returns an order by its reference number.
func (r *OrderRepository) FindByReference(ctx context.Context, referenceNo string) (*models.ProductionOrder, error) {
	const query = `SELECT ` + orderColumns + ` FROM production_orders WHERE reference_no = $1 LIMIT 1`
	var order models.ProductionOrder
	if err := r.db.GetContext(ctx, &order, query, referenceNo); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find order by reference: %w", err)
	}
	return &order, nil
}

// ReferenceExists reports whether a reference number is already taken.
func (r *OrderRepository) ReferenceExists(ctx context.Context, referenceNo string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM production_orders WHERE reference_no = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, referenceNo); err != nil {
		return false, fmt.Errorf("check reference exists: %w", err)
	}
	return exists, nil
}

// List returns all orders newest first, each with its creator identity and
// the earliest inspection outcome when one exists.
func (r *OrderRepository) List(ctx context.Context) ([]models.OrderSummary, error) {
	const query = `SELECT o.id, o.reference_no, o.model_name, o.quantity, o.status, o.created_by, o.created_at, o.updated_at,
       u.name AS creator_name, u.email AS creator_email,
       qi.passed AS first_inspection_passed, qi.created_at AS first_inspection_at, iu.name AS first_inspector_name
	FROM production_orders o
	JOIN users u ON u.id = o.created_by
	LEFT JOIN LATERAL (
		SELECT passed, created_at, inspector_id FROM qc_inspections
		WHERE production_id = o.id ORDER BY created_at ASC LIMIT 1
	) qi ON TRUE
	LEFT JOIN users iu ON iu.id = qi.inspector_id
	ORDER BY o.created_at DESC`
	var orders []models.OrderSummary
	if err := r.db.SelectContext(ctx, &orders, query); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// DetailByReference loads a COMPLETED order with its creator identity.
// Non-completed orders are reported as sql.ErrNoRows: they have no
// exportable detail view.
func (r *OrderRepository) DetailByReference(ctx context.Context, referenceNo string) (*models.OrderDetail, error) {
	const query = `SELECT o.id, o.reference_no, o.model_name, o.quantity, o.status, o.created_by, o.created_at, o.updated_at,
       u.name AS creator_name, u.email AS creator_email
	FROM production_orders o
	JOIN users u ON u.id = o.created_by
	WHERE o.reference_no = $1 AND o.status = $2
	LIMIT 1`
	var detail models.OrderDetail
	if err := r.db.GetContext(ctx, &detail, query, referenceNo, models.OrderStatusCompleted); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("order detail by reference: %w", err)
	}
	return &detail, nil
}

// InspectionsForOrder returns the full inspection history earliest first,
// inspector identity included.
func (r *OrderRepository) InspectionsForOrder(ctx context.Context, orderID string) ([]models.QCInspection, error) {
	const query = `SELECT qi.id, qi.production_id, qi.inspector_id, qi.passed, qi.notes, qi.created_at,
       u.name AS inspector_name, u.email AS inspector_email
	FROM qc_inspections qi
	JOIN users u ON u.id = qi.inspector_id
	WHERE qi.production_id = $1
	ORDER BY qi.created_at ASC`
	var inspections []models.QCInspection
	if err := r.db.SelectContext(ctx, &inspections, query, orderID); err != nil {
		return nil, fmt.Errorf("inspections for order: %w", err)
	}
	return inspections, nil
}

// UpdateStatusByReference applies a manual status transition. It returns the
// number of affected rows; zero means the reference does not exist.
func (r *OrderRepository) UpdateStatusByReference(ctx context.Context, referenceNo string, status models.OrderStatus) (int64, error) {
	const query = `UPDATE production_orders SET status = $2, updated_at = $3 WHERE reference_no = $1`
	res, err := r.db.ExecContext(ctx, query, referenceNo, status, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("update order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update order status affected rows: %w", err)
	}
	return affected, nil
}

// DeletePendingByReference removes an order only while it is PENDING. A zero
// row count covers both "no such reference" and "no longer pending"; the
// caller surfaces one uniform error for either.
func (r *OrderRepository) DeletePendingByReference(ctx context.Context, referenceNo string) (int64, error) {
	const query = `DELETE FROM production_orders WHERE reference_no = $1 AND status = $2`
	res, err := r.db.ExecContext(ctx, query, referenceNo, models.OrderStatusPending)
	if err != nil {
		return 0, fmt.Errorf("delete pending order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete pending order affected rows: %w", err)
	}
	return affected, nil
}

// CountByStatusSince counts orders in the given status created after the
// cutoff.
func (r *OrderRepository) CountByStatusSince(ctx context.Context, status models.OrderStatus, since time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM production_orders WHERE status = $1 AND created_at > $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, status, since); err != nil {
		return 0, fmt.Errorf("count orders by status: %w", err)
	}
	return count, nil
}
