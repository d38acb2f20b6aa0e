package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateBreakdown(t *testing.T) {
	items := []Item{
		{ID: "1", Name: "Widget", SKU: "KL-MED-15"},
		{ID: "2", Name: "Gadget", SKU: "AB-CDE-01"},
	}
	records := []InventoryRecord{
		{ID: "r1", Item: ItemRef{ID: "1"}, Warehouse: WarehouseRef{Name: "North"}, Quantity: 5},
		{ID: "r2", Item: ItemRef{ID: "1"}, Warehouse: WarehouseRef{Name: "South"}, Quantity: 3},
		{ID: "r3", Item: ItemRef{ID: "2"}, Warehouse: WarehouseRef{Name: "North"}, Quantity: 0},
	}

	summaries := Aggregate(items, records)

	require.Len(t, summaries, 2)
	assert.Equal(t, 8, summaries["1"].Total)
	assert.Equal(t, map[string]int{"North": 5, "South": 3}, summaries["1"].PerWarehouse)
	assert.Equal(t, 0, summaries["2"].Total)
	assert.Equal(t, map[string]int{"North": 0}, summaries["2"].PerWarehouse)
}

func TestAggregateItemWithoutRecords(t *testing.T) {
	summaries := Aggregate([]Item{{ID: "1", Name: "Widget"}}, nil)

	require.Contains(t, summaries, "1")
	assert.Equal(t, 0, summaries["1"].Total)
	assert.Empty(t, summaries["1"].PerWarehouse)
}

func TestAggregateIgnoresUnknownItemRefs(t *testing.T) {
	items := []Item{{ID: "1", Name: "Widget"}}
	records := []InventoryRecord{
		{ID: "r1", Item: ItemRef{ID: "ghost"}, Warehouse: WarehouseRef{Name: "North"}, Quantity: 9},
	}

	summaries := Aggregate(items, records)

	require.Len(t, summaries, 1)
	assert.Equal(t, 0, summaries["1"].Total)
}

// Two records for the same item and warehouse name: the later record wins the
// per-warehouse entry while the total counts both. This pins the observed
// overwrite-on-collision behavior.
func TestAggregateWarehouseNameCollision(t *testing.T) {
	items := []Item{{ID: "1", Name: "Widget"}}
	records := []InventoryRecord{
		{ID: "r1", Item: ItemRef{ID: "1"}, Warehouse: WarehouseRef{ID: "w1", Name: "North"}, Quantity: 5},
		{ID: "r2", Item: ItemRef{ID: "1"}, Warehouse: WarehouseRef{ID: "w2", Name: "North"}, Quantity: 7},
	}

	summaries := Aggregate(items, records)

	assert.Equal(t, 12, summaries["1"].Total)
	assert.Equal(t, map[string]int{"North": 7}, summaries["1"].PerWarehouse)
}

// The sum of all totals equals the sum of all quantities of records that
// reference a known item.
func TestAggregateTotalsConservation(t *testing.T) {
	items := []Item{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	records := []InventoryRecord{
		{Item: ItemRef{ID: "a"}, Warehouse: WarehouseRef{Name: "w1"}, Quantity: 4},
		{Item: ItemRef{ID: "a"}, Warehouse: WarehouseRef{Name: "w2"}, Quantity: 6},
		{Item: ItemRef{ID: "b"}, Warehouse: WarehouseRef{Name: "w1"}, Quantity: 11},
		{Item: ItemRef{ID: "missing"}, Warehouse: WarehouseRef{Name: "w1"}, Quantity: 100},
	}

	summaries := Aggregate(items, records)

	gotSum := 0
	for _, s := range summaries {
		gotSum += s.Total
	}
	wantSum := 0
	known := map[string]bool{"a": true, "b": true, "c": true}
	for _, r := range records {
		if known[r.Item.ID] {
			wantSum += r.Quantity
		}
	}
	assert.Equal(t, wantSum, gotSum)
}

func TestAggregateIdempotent(t *testing.T) {
	items := []Item{{ID: "1"}, {ID: "2"}}
	records := []InventoryRecord{
		{Item: ItemRef{ID: "1"}, Warehouse: WarehouseRef{Name: "North"}, Quantity: 5},
		{Item: ItemRef{ID: "2"}, Warehouse: WarehouseRef{Name: "South"}, Quantity: 2},
	}

	first := Aggregate(items, records)
	second := Aggregate(items, records)

	assert.Equal(t, first, second)
}
