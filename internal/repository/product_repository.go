// Package repository holds the sqlx-backed data access objects for the
// transactional path: products, inventory, orders and order lines. Each
// repository wraps a *sqlx.DB (or, inside a transaction, a *sqlx.Tx via
// the same interface) following the teacher's PipelineRepository idiom:
// QueryRowxContext().Scan for single-row writes that return
// generated columns, GetContext/SelectContext for reads.
package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fulcrum-wms/packer/internal/models"
)

// ProductRepository handles database operations for products.
type ProductRepository struct {
	db sqlx.ExtContext
}

// NewProductRepository creates a new product repository over db, which may
// be a *sqlx.DB or a *sqlx.Tx.
func NewProductRepository(db sqlx.ExtContext) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a new product and fills in its generated id and
// timestamps.
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (sku, name, width_cm, depth_cm, height_cm, weight_kg, is_fragile, allow_tipping)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	row := r.db.QueryRowxContext(ctx, query,
		p.SKU, p.Name, p.WidthCM, p.DepthCM, p.HeightCM, p.WeightKG, p.IsFragile, p.AllowTipping)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("repository: create product %q: %w", p.SKU, err)
	}
	return nil
}

// List retrieves every product, ordered by SKU.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	query := `SELECT * FROM products ORDER BY sku`

	var products []models.Product
	if err := sqlx.SelectContext(ctx, r.db, &products, query); err != nil {
		return nil, fmt.Errorf("repository: list products: %w", err)
	}
	return products, nil
}

// GetBySKU retrieves a product by its SKU.
func (r *ProductRepository) GetBySKU(ctx context.Context, sku string) (*models.Product, error) {
	query := `SELECT * FROM products WHERE sku = $1`

	var p models.Product
	if err := sqlx.GetContext(ctx, r.db, &p, query, sku); err != nil {
		return nil, fmt.Errorf("repository: get product %q: %w", sku, err)
	}
	return &p, nil
}

// GetByID retrieves a product by its id.
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	query := `SELECT * FROM products WHERE id = $1`

	var p models.Product
	if err := sqlx.GetContext(ctx, r.db, &p, query, id); err != nil {
		return nil, fmt.Errorf("repository: get product %s: %w", id, err)
	}
	return &p, nil
}

// ListBySKUs retrieves every product matching one of skus, in no
// particular order; callers join the result back onto order lines by SKU.
func (r *ProductRepository) ListBySKUs(ctx context.Context, skus []string) ([]models.Product, error) {
	if len(skus) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT * FROM products WHERE sku IN (?)`, skus)
	if err != nil {
		return nil, fmt.Errorf("repository: build IN query: %w", err)
	}
	query = sqlx.Rebind(sqlx.BindType("postgres"), query)

	var products []models.Product
	if err := sqlx.SelectContext(ctx, r.db, &products, query, args...); err != nil {
		return nil, fmt.Errorf("repository: list products: %w", err)
	}
	return products, nil
}
