// Package httpapi assembles the gin router: route registration follows
// the teacher's RegisterRoutes(*gin.RouterGroup) convention
// (handlers/pipeline.go), standardized onto gin alone — the teacher's own
// chi-based handlers (cmms_handlers.go, utils/chi_migration.go) are not
// carried forward, see DESIGN.md.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fulcrum-wms/packer/internal/archive"
	"github.com/fulcrum-wms/packer/internal/cache"
	"github.com/fulcrum-wms/packer/internal/health"
	"github.com/fulcrum-wms/packer/internal/metrics"
	"github.com/fulcrum-wms/packer/internal/queue"
	"github.com/fulcrum-wms/packer/internal/wshub"
	"github.com/jmoiron/sqlx"
)

// Server bundles every collaborator a handler might need.
type Server struct {
	db       *sqlx.DB
	archive  *archive.Index
	cache    *cache.Cache
	queue    *queue.Queue
	hub      *wshub.Hub
	health   *health.Checker
	metrics  *metrics.Metrics
	log      *zap.Logger
	rateRPS  float64
}

// NewServer constructs a Server.
func NewServer(db *sqlx.DB, idx *archive.Index, c *cache.Cache, q *queue.Queue, hub *wshub.Hub, checker *health.Checker, m *metrics.Metrics, log *zap.Logger, rateRPS float64) *Server {
	return &Server{db: db, archive: idx, cache: c, queue: q, hub: hub, health: checker, metrics: m, log: log, rateRPS: rateRPS}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(s.rateLimiter())

	api := r.Group("/api")
	{
		api.POST("/orders", s.CreateOrder)
		api.GET("/orders/:id", s.GetOrder)
		api.POST("/orders/:id/pack", s.TriggerPack)

		api.GET("/products", s.ListProducts)
		api.POST("/products", s.CreateProduct)

		api.GET("/inventory/:productID", s.GetInventoryLocation)

		api.GET("/users/:id", s.GetUser)

		api.GET("/pallet-runs/:orderNumber", s.GetPalletRun)

		api.GET("/health", s.Health)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws/queue", func(c *gin.Context) { s.hub.ServeHTTP(c.Writer, c.Request) })

	return r
}

// requestLogger replaces the teacher's gin.Logger() default middleware
// with structured zap output and records the packer_http_requests_total
// metric per route.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		class := "2xx"
		switch {
		case status >= 500:
			class = "5xx"
		case status >= 400:
			class = "4xx"
		}
		s.metrics.HTTPRequestTotal.WithLabelValues(c.FullPath(), class).Inc()

		s.log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("took", time.Since(start)),
		)
	}
}

// rateLimiter bounds request throughput with a single shared token bucket:
// this service has no per-client identity to key a limiter on, so one
// bucket protects the whole process.
func (s *Server) rateLimiter() gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(s.rateRPS), int(s.rateRPS)*2)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}
