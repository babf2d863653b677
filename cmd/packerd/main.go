// Command packerd is the warehouse pallet-packing service: it serves the
// HTTP API, consumes the job queue, and runs the packing engine against
// triggered orders. Adapted from the teacher's main.go, replacing its bare
// sqlx.Connect/gin.Default wiring with the full collaborator set described
// in SPEC_FULL.md.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/fulcrum-wms/packer/internal/archive"
	"github.com/fulcrum-wms/packer/internal/cache"
	"github.com/fulcrum-wms/packer/internal/config"
	"github.com/fulcrum-wms/packer/internal/db"
	"github.com/fulcrum-wms/packer/internal/health"
	"github.com/fulcrum-wms/packer/internal/httpapi"
	"github.com/fulcrum-wms/packer/internal/logging"
	"github.com/fulcrum-wms/packer/internal/metrics"
	"github.com/fulcrum-wms/packer/internal/pipeline"
	"github.com/fulcrum-wms/packer/internal/queue"
	"github.com/fulcrum-wms/packer/internal/repository"
	"github.com/fulcrum-wms/packer/internal/wshub"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	sqlxDB, err := db.OpenSQLX(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to open sqlx database", zap.Error(err))
	}
	defer sqlxDB.Close()

	gormDB, err := db.OpenGorm(cfg.ArchiveDSN, db.DefaultGormOptions())
	if err != nil {
		log.Fatal("failed to open archive database", zap.Error(err))
	}

	archiveIdx := archive.NewIndex(gormDB)

	var redisClient *redis.Client
	if cfg.CacheEnabled && cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	productCache := cache.New(redisClient, cfg.CacheTTL)

	m := metrics.New(prometheus.DefaultRegisterer)

	checker := health.NewChecker(sqlxDB)
	hub := wshub.NewHub()
	q := queue.New()

	runner := pipeline.NewRunner(sqlxDB, archiveIdx, cfg.ArtifactDir, cfg.ResolvedPallet(), cfg.ResolvedWeights(), m, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	requeuePending(ctx, sqlxDB, q, log)
	go consumeQueue(ctx, q, runner, hub, m, log)

	server := httpapi.NewServer(sqlxDB, archiveIdx, productCache, q, hub, checker, m, log, cfg.RateLimitRPS)
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.Router(),
	}

	go func() {
		log.Info("starting packerd", zap.String("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	waitForShutdown(log, httpServer, q, cancel)
}

// requeuePending re-enqueues any order left in NEW status from before this
// process started — e.g. one accepted by a prior instance's trigger
// endpoint but never dequeued before a restart. There is no cross-process
// queue (spec §5: "single-writer assumption"), so the in-memory queue is
// always empty at startup; this is the only recovery path for that
// backlog. Bounded at 500 per start so a pathological backlog can't block
// startup indefinitely.
func requeuePending(ctx context.Context, sqlxDB *sqlx.DB, q *queue.Queue, log *zap.Logger) {
	orders := repository.NewOrderRepository(sqlxDB)
	pending, err := orders.ListNew(ctx, 500)
	if err != nil {
		log.Error("failed to list pending orders at startup", zap.Error(err))
		return
	}
	for _, o := range pending {
		q.Enqueue(o.ID)
	}
	if len(pending) > 0 {
		log.Info("requeued pending orders from prior run", zap.Int("count", len(pending)))
	}
}

// consumeQueue is the single consumer draining the job queue: one order at
// a time, handed straight to the pipeline runner. The engine's own
// parallelism lives inside SolvePallet, not here.
func consumeQueue(ctx context.Context, q *queue.Queue, runner *pipeline.Runner, hub *wshub.Hub, m *metrics.Metrics, log *zap.Logger) {
	for {
		orderID, ok := q.Dequeue()
		if !ok {
			return
		}
		m.QueueDepth.Set(float64(q.Len()))
		hub.Broadcast(wshub.Event{Type: wshub.EventRunning, OrderID: orderID})

		if err := runner.RunOrder(ctx, orderID); err != nil {
			log.Error("run order failed", zap.Int64("order_id", orderID), zap.Error(err))
			hub.Broadcast(wshub.Event{Type: wshub.EventFailed, OrderID: orderID, Detail: err.Error()})
			continue
		}
		hub.Broadcast(wshub.Event{Type: wshub.EventReady, OrderID: orderID})
	}
}

func waitForShutdown(log *zap.Logger, httpServer *http.Server, q *queue.Queue, cancel context.CancelFunc) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	cancel()
	q.Close()

	ctx, timeout := context.WithTimeout(context.Background(), 10*time.Second)
	defer timeout()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
