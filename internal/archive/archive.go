// Package archive is the read-only GORM index over completed packing
// runs: it never writes anything the transactional sqlx path already
// owns, only records and later serves pallet_instruction_runs rows so
// internal/httpapi can answer "what happened to order N" without re-reading
// the artifact file.
package archive

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fulcrum-wms/packer/internal/models"
)

// Index wraps a GORM handle scoped to pallet_instruction_runs.
type Index struct {
	db *gorm.DB
}

// NewIndex constructs an Index over db.
func NewIndex(db *gorm.DB) *Index {
	return &Index{db: db}
}

// Record inserts a new run row. The pipeline runner calls this once per
// RunOrder: after the sqlx transaction has committed on success, or from
// its failure path before that transaction is rolled back. Either way the
// row is written outside the transaction — the archive is a secondary
// index, not the system of record for order status.
func (i *Index) Record(ctx context.Context, run *models.PalletInstructionRun) error {
	if err := i.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("archive: record run for order %d: %w", run.OrderID, err)
	}
	return nil
}

// ByOrderID retrieves the most recent run recorded for orderID.
func (i *Index) ByOrderID(ctx context.Context, orderID int64) (*models.PalletInstructionRun, error) {
	var run models.PalletInstructionRun
	err := i.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("started_at DESC").
		First(&run).Error
	if err != nil {
		return nil, fmt.Errorf("archive: lookup order %d: %w", orderID, err)
	}
	return &run, nil
}

// Recent lists the most recent limit runs, newest first.
func (i *Index) Recent(ctx context.Context, limit int) ([]models.PalletInstructionRun, error) {
	var runs []models.PalletInstructionRun
	err := i.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("archive: list recent runs: %w", err)
	}
	return runs, nil
}

// Failures lists the most recent limit failed runs, newest first — the
// collaborator-facing way to find orders stuck eligible for manual
// re-trigger.
func (i *Index) Failures(ctx context.Context, limit int) ([]models.PalletInstructionRun, error) {
	var runs []models.PalletInstructionRun
	err := i.db.WithContext(ctx).
		Where("succeeded = ?", false).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("archive: list failed runs: %w", err)
	}
	return runs, nil
}
