package inventory

import "context"

// Repository defines inventory data storage.
type Repository interface {
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context) ([]*Record, error)
	ListByItem(ctx context.Context, itemID string) ([]*Record, error)
	ListByWarehouse(ctx context.Context, warehouseID string) ([]*Record, error)
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id string) error
	CountByWarehouse(ctx context.Context, warehouseID string) (int, error)
}
