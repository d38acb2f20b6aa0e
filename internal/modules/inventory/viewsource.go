package inventory

import (
	"context"

	"github.com/stockroom/stockroom-backend/internal/view"
)

// ViewSource adapts the inventory repository to the boundary shape the view
// pipeline consumes. It satisfies item.InventorySource.
type ViewSource struct{ repo Repository }

func NewViewSource(repo Repository) *ViewSource { return &ViewSource{repo: repo} }

func (s *ViewSource) ListForView(ctx context.Context) ([]view.InventoryRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]view.InventoryRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, view.InventoryRecord{
			ID: rec.ID.String(),
			Item: view.ItemRef{
				ID:   rec.Item.ID.String(),
				Name: rec.Item.Name,
				SKU:  rec.Item.SKU,
			},
			Warehouse: view.WarehouseRef{
				ID:          rec.Warehouse.ID.String(),
				Name:        rec.Warehouse.Name,
				MaxCapacity: rec.Warehouse.MaxCapacity,
			},
			Quantity: rec.Quantity,
		})
	}
	return out, nil
}
