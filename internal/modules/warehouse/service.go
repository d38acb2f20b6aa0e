package warehouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("warehouse not found")
	// ErrInUse is returned when deleting a warehouse that still holds inventory.
	ErrInUse = errors.New("warehouse still holds inventory records")
)

// ShopChecker resolves shop references; the shop repository satisfies it.
type ShopChecker interface {
	ShopExists(ctx context.Context, id string) (bool, error)
}

// InventoryCounter reports how many inventory records reference a warehouse;
// the inventory repository satisfies it.
type InventoryCounter interface {
	CountByWarehouse(ctx context.Context, warehouseID string) (int, error)
}

// Service defines warehouse business logic.
type Service interface {
	CreateWarehouse(ctx context.Context, req CreateWarehouseRequest) (*Warehouse, error)
	GetWarehouse(ctx context.Context, id string) (*Warehouse, error)
	ListWarehouses(ctx context.Context, shopID string) ([]*Warehouse, error)
	UpdateWarehouse(ctx context.Context, id string, req UpdateWarehouseRequest) (*Warehouse, error)
	DeleteWarehouse(ctx context.Context, id string) error
}

// CreateWarehouseRequest holds the data for creating a warehouse.
type CreateWarehouseRequest struct {
	ShopID      string   `json:"shopId"`
	Name        string   `json:"name"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Street      string   `json:"street"`
	Number      string   `json:"number"`
	City        string   `json:"city"`
	PostalCode  string   `json:"postalCode"`
	State       string   `json:"state"`
	Country     string   `json:"country"`
	MaxCapacity int      `json:"maxCapacity"`
}

// UpdateWarehouseRequest holds a partial update; nil fields are left untouched.
type UpdateWarehouseRequest struct {
	Name        *string  `json:"name"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Street      *string  `json:"street"`
	Number      *string  `json:"number"`
	City        *string  `json:"city"`
	PostalCode  *string  `json:"postalCode"`
	State       *string  `json:"state"`
	Country     *string  `json:"country"`
	MaxCapacity *int     `json:"maxCapacity"`
}

type service struct {
	repo      Repository
	shops     ShopChecker
	inventory InventoryCounter
}

func NewService(repo Repository, shops ShopChecker, inventory InventoryCounter) Service {
	return &service{repo: repo, shops: shops, inventory: inventory}
}

func (s *service) CreateWarehouse(ctx context.Context, req CreateWarehouseRequest) (*Warehouse, error) {
	shopID, err := uuid.Parse(req.ShopID)
	if err != nil {
		return nil, fmt.Errorf("invalid shopId: %w", err)
	}
	ok, err := s.shops.ShopExists(ctx, req.ShopID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("shop %s does not exist", req.ShopID)
	}
	if req.Name == "" {
		return nil, fmt.Errorf("warehouse name is required")
	}
	if req.MaxCapacity < 1 {
		return nil, fmt.Errorf("maxCapacity must be at least 1")
	}
	wh := &Warehouse{
		ID:          uuid.New(),
		ShopID:      shopID,
		Name:        req.Name,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Street:      req.Street,
		Number:      req.Number,
		City:        req.City,
		PostalCode:  req.PostalCode,
		State:       req.State,
		Country:     req.Country,
		MaxCapacity: req.MaxCapacity,
	}
	if err := s.repo.Create(ctx, wh); err != nil {
		return nil, err
	}
	return wh, nil
}

func (s *service) GetWarehouse(ctx context.Context, id string) (*Warehouse, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListWarehouses(ctx context.Context, shopID string) ([]*Warehouse, error) {
	if shopID != "" {
		return s.repo.ListByShop(ctx, shopID)
	}
	return s.repo.List(ctx)
}

func (s *service) UpdateWarehouse(ctx context.Context, id string, req UpdateWarehouseRequest) (*Warehouse, error) {
	wh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("warehouse name must not be empty")
		}
		wh.Name = *req.Name
	}
	if req.Lat != nil {
		wh.Lat = req.Lat
	}
	if req.Lng != nil {
		wh.Lng = req.Lng
	}
	if req.Street != nil {
		wh.Street = *req.Street
	}
	if req.Number != nil {
		wh.Number = *req.Number
	}
	if req.City != nil {
		wh.City = *req.City
	}
	if req.PostalCode != nil {
		wh.PostalCode = *req.PostalCode
	}
	if req.State != nil {
		wh.State = *req.State
	}
	if req.Country != nil {
		wh.Country = *req.Country
	}
	if req.MaxCapacity != nil {
		if *req.MaxCapacity < 1 {
			return nil, fmt.Errorf("maxCapacity must be at least 1")
		}
		wh.MaxCapacity = *req.MaxCapacity
	}
	if err := s.repo.Update(ctx, wh); err != nil {
		return nil, err
	}
	return wh, nil
}

func (s *service) DeleteWarehouse(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	count, err := s.inventory.CountByWarehouse(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrInUse
	}
	return s.repo.Delete(ctx, id)
}
