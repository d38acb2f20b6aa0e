package shop

import "context"

// Repository defines shop data storage.
type Repository interface {
	Create(ctx context.Context, s *Shop) error
	GetByID(ctx context.Context, id string) (*Shop, error)
	List(ctx context.Context) ([]*Shop, error)
	ShopExists(ctx context.Context, id string) (bool, error)
}
