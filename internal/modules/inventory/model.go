package inventory

import (
	"time"

	"github.com/google/uuid"
)

// ItemRef is the item reference embedded in inventory responses.
type ItemRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	SKU  string    `json:"sku,omitempty"`
}

// WarehouseRef is the warehouse reference embedded in inventory responses.
type WarehouseRef struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	MaxCapacity int       `json:"maxCapacity"`
}

// Record states how many units of one item a warehouse currently holds.
// At most one record exists per (item, warehouse) pair.
type Record struct {
	ID               uuid.UUID    `json:"id"`
	Item             ItemRef      `json:"item"`
	Warehouse        WarehouseRef `json:"warehouse"`
	Quantity         int          `json:"quantity"`
	CreatedDate      time.Time    `json:"createdDate"`
	LastModifiedDate *time.Time   `json:"lastModifiedDate,omitempty"`
}
