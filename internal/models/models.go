// Package models holds the persistence-shaped record types shared between
// internal/repository, internal/archive and internal/httpapi: one struct per
// table, tagged for both sqlx (db) and the JSON wire format (json).
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Product is a SKU's physical and handling attributes, as referenced by
// internal/packing.ProductInfo.
type Product struct {
	ID           uuid.UUID `json:"id" db:"id"`
	SKU          string    `json:"sku" db:"sku"`
	Name         string    `json:"name" db:"name"`
	WidthCM      int       `json:"width_cm" db:"width_cm"`
	DepthCM      int       `json:"depth_cm" db:"depth_cm"`
	HeightCM     int       `json:"height_cm" db:"height_cm"`
	WeightKG     float64   `json:"weight_kg" db:"weight_kg"`
	IsFragile    bool      `json:"is_fragile" db:"is_fragile"`
	AllowTipping bool      `json:"allow_tipping" db:"allow_tipping"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Inventory links a product to a warehouse location. Location is the string
// AssignPickingOrder ranks to derive picking_order.
type Inventory struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	Location  string    `json:"location" db:"location"`
	Quantity  int       `json:"quantity" db:"quantity"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// OrderStatus enumerates the lifecycle an order moves through. The pipeline
// runner reads NEW and writes RUNNING then READY inside one transaction; a
// failed run rolls back to NEW, so the runner never writes FAILED.
type OrderStatus string

const (
	OrderStatusNew     OrderStatus = "NEW"
	OrderStatusRunning OrderStatus = "RUNNING"
	OrderStatusReady   OrderStatus = "READY"
	OrderStatusFailed  OrderStatus = "FAILED"
)

// Order is a single pack request: a customer order whose lines need to be
// placed onto pallets.
type Order struct {
	ID          int64       `json:"id" db:"id"`
	OrderNumber string      `json:"order_number" db:"order_number"`
	Status      OrderStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
	ErrorReason *string     `json:"error_reason,omitempty" db:"error_reason"`
}

// OrderLine is one product/quantity pair within an order.
type OrderLine struct {
	ID        int64     `json:"id" db:"id"`
	OrderID   int64     `json:"order_id" db:"order_id"`
	ProductID uuid.UUID `json:"product_id" db:"product_id"`
	SKU       string    `json:"sku" db:"sku"`
	Quantity  int       `json:"quantity" db:"quantity"`
}

// User is a warehouse operator account. Authentication and role modeling
// are out of scope; this is a bare identity record for attributing triggers.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PalletInstructionRun is one completed (or failed) packing call: the
// archive's unit of record, pointed at the JSON artifact on disk.
type PalletInstructionRun struct {
	ID           int64      `json:"id" db:"id"`
	OrderID      int64      `json:"order_id" db:"order_id"`
	OrderNumber  string     `json:"order_number" db:"order_number"`
	ArtifactPath string     `json:"artifact_path" db:"artifact_path"`
	PalletCount  int        `json:"pallet_count" db:"pallet_count"`
	ItemCount    int        `json:"item_count" db:"item_count"`
	Succeeded    bool       `json:"succeeded" db:"succeeded"`
	FailureNote  *string    `json:"failure_note,omitempty" db:"failure_note"`
	// OffendingItemIDs holds the item ids a *packing.CriticalError reported,
	// when the failure was "item fits no empty pallet" rather than a load
	// or I/O error. Stored as JSONB since it's a variable-length list only
	// ever read back whole, never queried into — not worth a child table.
	OffendingItemIDs datatypes.JSON `json:"offending_item_ids,omitempty" db:"offending_item_ids"`
	StartedAt        time.Time      `json:"started_at" db:"started_at"`
	CompletedAt      *time.Time     `json:"completed_at,omitempty" db:"completed_at"`
}
