package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fulcrum-wms/packer/internal/models"
)

// InventoryRepository handles database operations for inventory rows (the
// product-to-location links the picking-order rank is derived from).
type InventoryRepository struct {
	db sqlx.ExtContext
}

// NewInventoryRepository creates a new inventory repository.
func NewInventoryRepository(db sqlx.ExtContext) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// LocationForProduct returns the warehouse location holding the most units
// of productID. Products stocked in more than one location are expected to
// be rare in this domain; the caller is told which location won.
func (r *InventoryRepository) LocationForProduct(ctx context.Context, productID uuid.UUID) (string, error) {
	query := `
		SELECT location FROM inventory
		WHERE product_id = $1
		ORDER BY quantity DESC
		LIMIT 1
	`

	var location string
	if err := sqlx.GetContext(ctx, r.db, &location, query, productID); err != nil {
		return "", fmt.Errorf("repository: location for product %s: %w", productID, err)
	}
	return location, nil
}

// ListByProductIDs bulk-loads inventory rows for a set of products, used to
// populate picking locations for a whole order in one round trip.
func (r *InventoryRepository) ListByProductIDs(ctx context.Context, ids []uuid.UUID) ([]models.Inventory, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM inventory WHERE product_id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("repository: build IN query: %w", err)
	}
	query = sqlx.Rebind(sqlx.BindType("postgres"), query)

	var rows []models.Inventory
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("repository: list inventory: %w", err)
	}
	return rows, nil
}
