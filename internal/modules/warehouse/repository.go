package warehouse

import "context"

// Repository defines warehouse data storage.
type Repository interface {
	Create(ctx context.Context, wh *Warehouse) error
	GetByID(ctx context.Context, id string) (*Warehouse, error)
	List(ctx context.Context) ([]*Warehouse, error)
	ListByShop(ctx context.Context, shopID string) ([]*Warehouse, error)
	Update(ctx context.Context, wh *Warehouse) error
	Delete(ctx context.Context, id string) error
	WarehouseExists(ctx context.Context, id string) (bool, error)
	WarehouseIDsByShop(ctx context.Context, shopID string) ([]string, error)
}
