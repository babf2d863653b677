package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/fulcrum-wms/packer/internal/repository"
)

func newMockInventory(t *testing.T) (*repository.InventoryRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "postgres")
	return repository.NewInventoryRepository(sqlxDB), mock, func() { db.Close() }
}

func TestInventoryRepository_LocationForProduct(t *testing.T) {
	inventory, mock, closeDB := newMockInventory(t)
	defer closeDB()

	productID := uuid.New()
	mock.ExpectQuery("SELECT location FROM inventory").
		WithArgs(productID).
		WillReturnRows(sqlmock.NewRows([]string{"location"}).AddRow("A-01-03"))

	loc, err := inventory.LocationForProduct(context.Background(), productID)
	require.NoError(t, err)
	require.Equal(t, "A-01-03", loc)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepository_LocationForProduct_NotFound(t *testing.T) {
	inventory, mock, closeDB := newMockInventory(t)
	defer closeDB()

	productID := uuid.New()
	mock.ExpectQuery("SELECT location FROM inventory").
		WithArgs(productID).
		WillReturnError(sqlmock.ErrCancelled)

	_, err := inventory.LocationForProduct(context.Background(), productID)
	require.Error(t, err)
}

func TestInventoryRepository_ListByProductIDs(t *testing.T) {
	inventory, mock, closeDB := newMockInventory(t)
	defer closeDB()

	p1, p2 := uuid.New(), uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "product_id", "location", "quantity", "updated_at"}).
		AddRow(uuid.New(), p1, "A-01-03", 10, now).
		AddRow(uuid.New(), p2, "B-02-01", 4, now)
	mock.ExpectQuery("SELECT \\* FROM inventory WHERE product_id IN \\(\\$1, \\$2\\)").
		WithArgs(p1, p2).
		WillReturnRows(rows)

	list, err := inventory.ListByProductIDs(context.Background(), []uuid.UUID{p1, p2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryRepository_ListByProductIDs_Empty(t *testing.T) {
	inventory, _, closeDB := newMockInventory(t)
	defer closeDB()

	list, err := inventory.ListByProductIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Nil(t, list)
}
