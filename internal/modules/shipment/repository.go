package shipment

import "context"

// Repository defines shipment and line item data storage.
type Repository interface {
	Create(ctx context.Context, sh *Shipment) error
	GetByID(ctx context.Context, id string) (*Shipment, error)
	List(ctx context.Context) ([]*Shipment, error)
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*Shipment, error)
	ListByWarehouses(ctx context.Context, warehouseIDs []string) ([]*Shipment, error)
	Update(ctx context.Context, sh *Shipment) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	// Complete marks the shipment COMPLETED and books the per-item deltas
	// into the destination warehouse's inventory in one transaction. A
	// shipment that is already COMPLETED yields ErrLocked and books nothing.
	Complete(ctx context.Context, id string, warehouseID string, deltas map[string]int) error
	// DeleteWithLineItems removes the shipment and its line items in one
	// transaction.
	DeleteWithLineItems(ctx context.Context, id string) error

	CreateLineItem(ctx context.Context, li *LineItem) error
	GetLineItem(ctx context.Context, id string) (*LineItem, error)
	ListLineItems(ctx context.Context, shipmentID string) ([]*LineItem, error)
	UpdateLineItem(ctx context.Context, li *LineItem) error
	DeleteLineItem(ctx context.Context, id string) error
}
