package item

import "context"

// Repository defines item data storage.
type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context) ([]*Item, error)
	Update(ctx context.Context, it *Item) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
	ItemExists(ctx context.Context, id string) (bool, error)
}
