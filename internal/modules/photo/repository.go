package photo

import "context"

// Repository defines photo metadata storage.
type Repository interface {
	Create(ctx context.Context, p *Photo) error
	GetByID(ctx context.Context, id string) (*Photo, error)
	ListByOwner(ctx context.Context, ownerType OwnerType, ownerID string) ([]*Photo, error)
	Delete(ctx context.Context, id string) error
}
