// Package health answers /api/health with a point-in-time resource
// snapshot, grounded on the teacher's HealthService (services/health.go)
// but collapsed from its background-polling, multi-handler design into a
// single synchronous check — this service has exactly two dependencies
// worth reporting on (the database, the host's memory and disk usage), not
// an open-ended registry of pluggable checks.
package health

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// Status is one component's health verdict.
type Status string

const (
	StatusHealthy  Status = "healthy"
	StatusWarning  Status = "warning"
	StatusCritical Status = "critical"
)

// Report is the full /api/health payload.
type Report struct {
	Status    Status    `json:"status"`
	Database  Status    `json:"database"`
	MemoryPct float64   `json:"memory_used_percent"`
	DiskPct   float64   `json:"disk_used_percent"`
	CheckedAt time.Time `json:"checked_at"`
}

// Checker snapshots database connectivity and host resource usage.
type Checker struct {
	db *sqlx.DB
}

// NewChecker constructs a Checker over the transactional database handle.
func NewChecker(db *sqlx.DB) *Checker {
	return &Checker{db: db}
}

// Check runs the snapshot. Individual sub-check failures degrade the
// overall status rather than returning an error — a caller still gets a
// usable report even when one signal is unavailable.
func (c *Checker) Check(ctx context.Context) Report {
	r := Report{Status: StatusHealthy, CheckedAt: time.Now()}

	if err := c.db.PingContext(ctx); err != nil {
		r.Database = StatusCritical
		r.Status = StatusCritical
	} else {
		r.Database = StatusHealthy
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		r.MemoryPct = vm.UsedPercent
		if vm.UsedPercent > 90 && r.Status == StatusHealthy {
			r.Status = StatusWarning
		}
	}

	if usage, err := disk.UsageWithContext(ctx, "/"); err == nil {
		r.DiskPct = usage.UsedPercent
		if usage.UsedPercent > 90 && r.Status == StatusHealthy {
			r.Status = StatusWarning
		}
	}

	return r
}
