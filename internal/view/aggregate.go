package view

// Aggregate folds inventory records into a per-item quantity summary.
//
// Every item id from items appears in the result, with Total 0 and no
// warehouse entries when no record matches. Records referencing an unknown
// item id are ignored. When two records for the same item share a warehouse
// name the later record's quantity wins the per-warehouse entry while Total
// still counts both; callers that care should key warehouses by id instead.
func Aggregate(items []Item, records []InventoryRecord) Summaries {
	out := make(Summaries, len(items))
	for _, it := range items {
		out[it.ID] = Summary{PerWarehouse: map[string]int{}}
	}
	for _, rec := range records {
		s, ok := out[rec.Item.ID]
		if !ok {
			continue
		}
		s.Total += rec.Quantity
		s.PerWarehouse[rec.Warehouse.Name] = rec.Quantity
		out[rec.Item.ID] = s
	}
	return out
}
