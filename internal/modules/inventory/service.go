package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("inventory record not found")

// ItemChecker resolves item references; the item repository satisfies it.
type ItemChecker interface {
	ItemExists(ctx context.Context, id string) (bool, error)
}

// WarehouseChecker resolves warehouse references; the warehouse repository
// satisfies it.
type WarehouseChecker interface {
	WarehouseExists(ctx context.Context, id string) (bool, error)
}

// Service defines inventory business logic.
type Service interface {
	CreateRecord(ctx context.Context, req CreateRecordRequest) (*Record, error)
	GetRecord(ctx context.Context, id string) (*Record, error)
	ListRecords(ctx context.Context, itemID, warehouseID string) ([]*Record, error)
	UpdateRecord(ctx context.Context, id string, req UpdateRecordRequest) (*Record, error)
	DeleteRecord(ctx context.Context, id string) error
}

// CreateRecordRequest holds the data for creating an inventory record.
type CreateRecordRequest struct {
	ItemID      string `json:"itemId"`
	WarehouseID string `json:"warehouseId"`
	Quantity    int    `json:"quantity"`
}

// UpdateRecordRequest holds a partial update; nil fields are left untouched.
// Moving the record to another item or warehouse re-validates the reference.
type UpdateRecordRequest struct {
	ItemID      *string `json:"itemId"`
	WarehouseID *string `json:"warehouseId"`
	Quantity    *int    `json:"quantity"`
}

type service struct {
	repo       Repository
	items      ItemChecker
	warehouses WarehouseChecker
}

func NewService(repo Repository, items ItemChecker, warehouses WarehouseChecker) Service {
	return &service{repo: repo, items: items, warehouses: warehouses}
}

func (s *service) CreateRecord(ctx context.Context, req CreateRecordRequest) (*Record, error) {
	if req.Quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative")
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("invalid itemId: %w", err)
	}
	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("invalid warehouseId: %w", err)
	}
	ok, err := s.items.ItemExists(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("item %s does not exist", req.ItemID)
	}
	ok, err = s.warehouses.WarehouseExists(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("warehouse %s does not exist", req.WarehouseID)
	}
	rec := &Record{
		ID:        uuid.New(),
		Item:      ItemRef{ID: itemID},
		Warehouse: WarehouseRef{ID: warehouseID},
		Quantity:  req.Quantity,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	// Re-read to pick up the joined item and warehouse names.
	return s.repo.GetByID(ctx, rec.ID.String())
}

func (s *service) GetRecord(ctx context.Context, id string) (*Record, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListRecords(ctx context.Context, itemID, warehouseID string) ([]*Record, error) {
	switch {
	case itemID != "":
		return s.repo.ListByItem(ctx, itemID)
	case warehouseID != "":
		return s.repo.ListByWarehouse(ctx, warehouseID)
	default:
		return s.repo.List(ctx)
	}
}

func (s *service) UpdateRecord(ctx context.Context, id string, req UpdateRecordRequest) (*Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.ItemID != nil {
		itemID, err := uuid.Parse(*req.ItemID)
		if err != nil {
			return nil, fmt.Errorf("invalid itemId: %w", err)
		}
		ok, err := s.items.ItemExists(ctx, *req.ItemID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("item %s does not exist", *req.ItemID)
		}
		rec.Item = ItemRef{ID: itemID}
	}
	if req.WarehouseID != nil {
		warehouseID, err := uuid.Parse(*req.WarehouseID)
		if err != nil {
			return nil, fmt.Errorf("invalid warehouseId: %w", err)
		}
		ok, err := s.warehouses.WarehouseExists(ctx, *req.WarehouseID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("warehouse %s does not exist", *req.WarehouseID)
		}
		rec.Warehouse = WarehouseRef{ID: warehouseID}
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			return nil, fmt.Errorf("quantity must not be negative")
		}
		rec.Quantity = *req.Quantity
	}
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	// Re-read to pick up the joined item and warehouse names.
	return s.repo.GetByID(ctx, id)
}

func (s *service) DeleteRecord(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
