package shop

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("shop not found")

// Service defines shop business logic.
type Service interface {
	CreateShop(ctx context.Context, req CreateShopRequest) (*Shop, error)
	GetShop(ctx context.Context, id string) (*Shop, error)
	ListShops(ctx context.Context) ([]*Shop, error)
}

// CreateShopRequest holds the data for creating a shop.
type CreateShopRequest struct {
	Name string `json:"name"`
}

type service struct{ repo Repository }

func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateShop(ctx context.Context, req CreateShopRequest) (*Shop, error) {
	if len(req.Name) < 2 || len(req.Name) > 100 {
		return nil, fmt.Errorf("shop name must be between 2 and 100 characters")
	}
	shop := &Shop{
		ID:   uuid.New(),
		Name: req.Name,
	}
	if err := s.repo.Create(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *service) GetShop(ctx context.Context, id string) (*Shop, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListShops(ctx context.Context) ([]*Shop, error) {
	return s.repo.List(ctx)
}
