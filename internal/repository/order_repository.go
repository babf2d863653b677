package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fulcrum-wms/packer/internal/models"
)

// OrderRepository handles database operations for orders and order lines.
type OrderRepository struct {
	db sqlx.ExtContext
}

// NewOrderRepository creates a new order repository over db, which may be
// a *sqlx.DB or a *sqlx.Tx — the pipeline runner passes its own transaction
// so its status updates commit or roll back with the rest of the job (the
// GORM-backed archive write is not part of that transaction).
func NewOrderRepository(db sqlx.ExtContext) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts a new order in NEW status plus all of its lines, and
// fills in order's generated id and timestamps.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order, lines []models.OrderLine) error {
	query := `
		INSERT INTO orders (order_number, status)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	order.Status = models.OrderStatusNew
	row := r.db.QueryRowxContext(ctx, query, order.OrderNumber, order.Status)
	if err := row.Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt); err != nil {
		return fmt.Errorf("repository: create order %s: %w", order.OrderNumber, err)
	}

	for i := range lines {
		lines[i].OrderID = order.ID
		lineQuery := `
			INSERT INTO order_lines (order_id, sku, quantity)
			VALUES ($1, $2, $3)
			RETURNING id
		`
		if err := r.db.QueryRowxContext(ctx, lineQuery, lines[i].OrderID, lines[i].SKU, lines[i].Quantity).Scan(&lines[i].ID); err != nil {
			return fmt.Errorf("repository: create line %s for order %d: %w", lines[i].SKU, order.ID, err)
		}
	}
	return nil
}

// GetByID retrieves an order by id.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	query := `SELECT * FROM orders WHERE id = $1`

	var o models.Order
	if err := sqlx.GetContext(ctx, r.db, &o, query, id); err != nil {
		return nil, fmt.Errorf("repository: get order %d: %w", id, err)
	}
	return &o, nil
}

// ListLines retrieves every order line belonging to orderID.
func (r *OrderRepository) ListLines(ctx context.Context, orderID int64) ([]models.OrderLine, error) {
	query := `SELECT * FROM order_lines WHERE order_id = $1 ORDER BY id`

	var lines []models.OrderLine
	if err := sqlx.SelectContext(ctx, r.db, &lines, query, orderID); err != nil {
		return nil, fmt.Errorf("repository: list lines for order %d: %w", orderID, err)
	}
	return lines, nil
}

// UpdateStatus transitions an order to status and stores errReason (which
// may be nil) as its error_reason. Only the pipeline runner calls this,
// always inside its owning transaction, for RUNNING and READY.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus, errReason *string) error {
	query := `
		UPDATE orders
		SET status = $2, error_reason = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, status, errReason)
	if err != nil {
		return fmt.Errorf("repository: update order %d status: %w", id, err)
	}
	return nil
}

// ListNew retrieves up to limit orders still in NEW status, oldest first —
// used by cmd/packerd at startup to re-enqueue orders left pending after a
// restart.
func (r *OrderRepository) ListNew(ctx context.Context, limit int) ([]models.Order, error) {
	query := `SELECT * FROM orders WHERE status = $1 ORDER BY created_at ASC LIMIT $2`

	var orders []models.Order
	if err := sqlx.SelectContext(ctx, r.db, &orders, query, models.OrderStatusNew, limit); err != nil {
		return nil, fmt.Errorf("repository: list new orders: %w", err)
	}
	return orders, nil
}
