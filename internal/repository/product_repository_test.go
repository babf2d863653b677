package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/fulcrum-wms/packer/internal/models"
	"github.com/fulcrum-wms/packer/internal/repository"
)

func newMockProducts(t *testing.T) (*repository.ProductRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	return repository.NewProductRepository(sqlxDB), mock, func() { db.Close() }
}

func TestProductRepository_Create(t *testing.T) {
	products, mock, closeDB := newMockProducts(t)
	defer closeDB()

	now := time.Now()
	id := uuid.New()
	mock.ExpectQuery("INSERT INTO products").
		WithArgs("SKU-A", "Widget", 10, 10, 10, 1.5, false, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(id, now, now))

	p := &models.Product{
		SKU: "SKU-A", Name: "Widget",
		WidthCM: 10, DepthCM: 10, HeightCM: 10,
		WeightKG: 1.5, IsFragile: false, AllowTipping: true,
	}
	err := products.Create(context.Background(), p)
	require.NoError(t, err)
	require.Equal(t, id, p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_List(t *testing.T) {
	products, mock, closeDB := newMockProducts(t)
	defer closeDB()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "sku", "name", "width_cm", "depth_cm", "height_cm", "weight_kg", "is_fragile", "allow_tipping", "created_at", "updated_at"}).
		AddRow(uuid.New(), "SKU-A", "Widget", 10, 10, 10, 1.5, false, true, now, now).
		AddRow(uuid.New(), "SKU-B", "Gadget", 5, 5, 5, 0.5, true, false, now, now)
	mock.ExpectQuery("SELECT \\* FROM products ORDER BY sku").
		WillReturnRows(rows)

	list, err := products.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "SKU-A", list[0].SKU)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetBySKU(t *testing.T) {
	products, mock, closeDB := newMockProducts(t)
	defer closeDB()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "sku", "name", "width_cm", "depth_cm", "height_cm", "weight_kg", "is_fragile", "allow_tipping", "created_at", "updated_at"}).
		AddRow(uuid.New(), "SKU-A", "Widget", 10, 10, 10, 1.5, false, true, now, now)
	mock.ExpectQuery("SELECT \\* FROM products WHERE sku = \\$1").
		WithArgs("SKU-A").
		WillReturnRows(rows)

	p, err := products.GetBySKU(context.Background(), "SKU-A")
	require.NoError(t, err)
	require.Equal(t, "Widget", p.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID(t *testing.T) {
	products, mock, closeDB := newMockProducts(t)
	defer closeDB()

	id := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "sku", "name", "width_cm", "depth_cm", "height_cm", "weight_kg", "is_fragile", "allow_tipping", "created_at", "updated_at"}).
		AddRow(id, "SKU-A", "Widget", 10, 10, 10, 1.5, false, true, now, now)
	mock.ExpectQuery("SELECT \\* FROM products WHERE id = \\$1").
		WithArgs(id).
		WillReturnRows(rows)

	p, err := products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListBySKUs(t *testing.T) {
	products, mock, closeDB := newMockProducts(t)
	defer closeDB()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "sku", "name", "width_cm", "depth_cm", "height_cm", "weight_kg", "is_fragile", "allow_tipping", "created_at", "updated_at"}).
		AddRow(uuid.New(), "SKU-A", "Widget", 10, 10, 10, 1.5, false, true, now, now).
		AddRow(uuid.New(), "SKU-B", "Gadget", 5, 5, 5, 0.5, true, false, now, now)
	mock.ExpectQuery("SELECT \\* FROM products WHERE sku IN \\(\\$1, \\$2\\)").
		WithArgs("SKU-A", "SKU-B").
		WillReturnRows(rows)

	list, err := products.ListBySKUs(context.Background(), []string{"SKU-A", "SKU-B"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_ListBySKUs_Empty(t *testing.T) {
	products, _, closeDB := newMockProducts(t)
	defer closeDB()

	list, err := products.ListBySKUs(context.Background(), nil)
	require.NoError(t, err)
	require.Nil(t, list)
}
