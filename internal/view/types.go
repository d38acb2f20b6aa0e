// Package view implements the item overview pipeline: it pulls the item and
// inventory collections from the API, folds inventory records into per-item
// quantity summaries, filters items by a search query and projects the result
// into rows a presentation layer can render directly.
package view

import "time"

// Item is the boundary shape of an item as served by GET /api/item.
type Item struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	SKU              string     `json:"sku,omitempty"`
	CreatedDate      time.Time  `json:"createdDate"`
	LastModifiedDate *time.Time `json:"lastModifiedDate,omitempty"`
}

// ItemRef is the item reference embedded in an inventory record.
type ItemRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku,omitempty"`
}

// WarehouseRef is the warehouse reference embedded in an inventory record.
type WarehouseRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MaxCapacity int    `json:"maxCapacity"`
}

// InventoryRecord is the boundary shape of GET /api/inventory entries.
type InventoryRecord struct {
	ID        string       `json:"id"`
	Item      ItemRef      `json:"item"`
	Warehouse WarehouseRef `json:"warehouse"`
	Quantity  int          `json:"quantity"`
}

// Summary is the derived quantity breakdown for a single item.
type Summary struct {
	Total        int
	PerWarehouse map[string]int
}

// Summaries maps item id to its quantity breakdown. It is a pure projection
// of the two source collections and is rebuilt wholesale on every fetch.
type Summaries map[string]Summary
