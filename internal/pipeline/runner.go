// Package pipeline owns the one transaction a pack job runs inside: load
// the order, build items, run the packing engine, write the artifact, and
// move the order to READY. The archive row is recorded outside that
// transaction, after it commits or, on failure, before it rolls back.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/fulcrum-wms/packer/internal/archive"
	"github.com/fulcrum-wms/packer/internal/artifact"
	"github.com/fulcrum-wms/packer/internal/metrics"
	"github.com/fulcrum-wms/packer/internal/models"
	"github.com/fulcrum-wms/packer/internal/packing"
	"github.com/fulcrum-wms/packer/internal/repository"
)

// Runner processes one order at a time: it is the engine's only
// collaborator that opens a database transaction.
type Runner struct {
	db          *sqlx.DB
	archive     *archive.Index
	artifactDir string
	pallet      packing.PalletSpec
	weights     packing.Weights
	metrics     *metrics.Metrics
	log         *zap.Logger
}

// NewRunner constructs a Runner.
func NewRunner(db *sqlx.DB, idx *archive.Index, artifactDir string, pallet packing.PalletSpec, weights packing.Weights, m *metrics.Metrics, log *zap.Logger) *Runner {
	return &Runner{
		db:          db,
		archive:     idx,
		artifactDir: artifactDir,
		pallet:      pallet,
		weights:     weights,
		metrics:     m,
		log:         log,
	}
}

// RunOrder loads orderID, packs its lines, and transitions it to READY on
// success. On any failure the whole sqlx transaction rolls back, including
// the RUNNING status written at the start, so the order reverts to NEW —
// per spec §5/§7, a failed job is eligible for a manual re-trigger, not an
// automatic retry. The archive write always happens outside that
// transaction since it is a secondary index, not the system of record —
// see internal/archive's doc comment.
func (r *Runner) RunOrder(ctx context.Context, orderID int64) error {
	started := time.Now()
	log := r.log.With(zap.Int64("order_id", orderID))

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pipeline: begin tx for order %d: %w", orderID, err)
	}
	defer tx.Rollback()

	orders := repository.NewOrderRepository(tx)
	lines := orders // same repository type owns both orders and order_lines

	order, err := orders.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("pipeline: load order %d: %w", orderID, err)
	}

	orderLines, err := lines.ListLines(ctx, orderID)
	if err != nil {
		return fmt.Errorf("pipeline: load lines for order %d: %w", orderID, err)
	}

	if err := orders.UpdateStatus(ctx, orderID, models.OrderStatusRunning, nil); err != nil {
		return fmt.Errorf("pipeline: mark order %d running: %w", orderID, err)
	}

	items, skipped, err := r.buildItems(ctx, tx, orderLines)
	if err != nil {
		return r.fail(ctx, orderID, order.OrderNumber, started, err, log)
	}
	for _, s := range skipped {
		log.Warn("skipped order line", zap.String("sku", s.SKU), zap.String("reason", s.Reason))
	}

	items = packing.AssignPickingOrder(items)
	items = packing.PreSort(items)

	solveStart := time.Now()
	pallets, err := packing.PackAll(items, r.pallet, r.weights)
	r.metrics.SolveDuration.Observe(time.Since(solveStart).Seconds())
	if err != nil {
		if critical, ok := err.(*packing.CriticalError); ok {
			r.metrics.ItemsUnplaced.Add(float64(len(critical.OffendingItemIDs)))
		}
		return r.fail(ctx, orderID, order.OrderNumber, started, err, log)
	}
	r.metrics.PalletsPerJob.Observe(float64(len(pallets)))

	path, err := artifact.Write(r.artifactDir, order.OrderNumber, pallets, started)
	if err != nil {
		return r.fail(ctx, orderID, order.OrderNumber, started, err, log)
	}

	if err := orders.UpdateStatus(ctx, orderID, models.OrderStatusReady, nil); err != nil {
		return fmt.Errorf("pipeline: mark order %d ready: %w", orderID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("pipeline: commit order %d: %w", orderID, err)
	}

	itemCount := 0
	for _, p := range pallets {
		itemCount += len(p.Items)
	}
	completed := time.Now()
	runErr := r.archive.Record(ctx, &models.PalletInstructionRun{
		OrderID:      orderID,
		OrderNumber:  order.OrderNumber,
		ArtifactPath: path,
		PalletCount:  len(pallets),
		ItemCount:    itemCount,
		Succeeded:    true,
		StartedAt:    started,
		CompletedAt:  &completed,
	})
	if runErr != nil {
		log.Error("archive record failed", zap.Error(runErr))
	}

	r.metrics.JobsProcessed.WithLabelValues("ready").Inc()
	log.Info("order packed", zap.Int("pallets", len(pallets)), zap.Duration("took", time.Since(started)))
	return nil
}

// fail records the failure and returns a non-nil error so the caller's
// queue consumer logs it. The in-progress sqlx transaction (including the
// RUNNING status written at the top of RunOrder) is always rolled back by
// RunOrder's deferred tx.Rollback() once this returns — per spec §5/§7 a
// failed job leaves its order in NEW, eligible for a manual re-trigger, so
// the UpdateStatus call here is deliberately omitted rather than raced
// against the rollback. The archive row, by contrast, lives outside the
// sqlx transaction (it is a secondary GORM-backed index, not the system of
// record) so it is written here, unconditionally, to keep a durable record
// of the failure even though the order itself reverts to NEW.
func (r *Runner) fail(ctx context.Context, orderID int64, orderNumber string, started time.Time, cause error, log *zap.Logger) error {
	msg := cause.Error()
	completed := time.Now()
	run := &models.PalletInstructionRun{
		OrderID:     orderID,
		OrderNumber: orderNumber,
		Succeeded:   false,
		FailureNote: &msg,
		StartedAt:   started,
		CompletedAt: &completed,
	}
	if critical, ok := cause.(*packing.CriticalError); ok {
		if ids, err := json.Marshal(critical.OffendingItemIDs); err == nil {
			run.OffendingItemIDs = datatypes.JSON(ids)
		}
	}
	if err := r.archive.Record(ctx, run); err != nil {
		log.Error("archive record of failure failed", zap.Error(err))
	}
	r.metrics.JobsProcessed.WithLabelValues("failed").Inc()
	log.Error("order pack failed", zap.Error(cause))
	return fmt.Errorf("pipeline: order %d: %w", orderID, cause)
}

// buildItems joins order lines against products and inventory to produce
// the engine's Item inputs, all within the caller's transaction so the
// product/inventory snapshot is consistent with the order itself.
func (r *Runner) buildItems(ctx context.Context, tx *sqlx.Tx, lines []models.OrderLine) ([]packing.Item, []packing.SkipReason, error) {
	products := repository.NewProductRepository(tx)
	inventory := repository.NewInventoryRepository(tx)

	inputs := make([]packing.LineInput, len(lines))
	for i, l := range lines {
		p, err := products.GetBySKU(ctx, l.SKU)
		if err != nil {
			inputs[i] = packing.LineInput{SKU: l.SKU, Quantity: l.Quantity}
			continue
		}
		location, err := inventory.LocationForProduct(ctx, p.ID)
		if err != nil {
			location = ""
		}
		inputs[i] = packing.LineInput{
			SKU:      l.SKU,
			Quantity: l.Quantity,
			Product: &packing.ProductInfo{
				SKU:          p.SKU,
				Name:         p.Name,
				W:            p.WidthCM,
				D:            p.DepthCM,
				H:            p.HeightCM,
				Weight:       p.WeightKG,
				IsFragile:    p.IsFragile,
				AllowTipping: p.AllowTipping,
				Location:     location,
			},
		}
	}

	items, skipped := packing.BuildItems(inputs)
	return items, skipped, nil
}
