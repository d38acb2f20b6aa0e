package item

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/stockroom/stockroom-backend/internal/view"
)

var (
	ErrNotFound   = errors.New("item not found")
	ErrInvalidSKU = errors.New("sku must match the pattern XX-XXX-NN (e.g. KL-MED-15)")
)

var skuPattern = regexp.MustCompile(`^[A-Za-z]{2}-[A-Za-z]{3}-[0-9]{2}$`)

// InventorySource supplies the inventory collection in the view package's
// boundary shape; the inventory module provides an implementation.
type InventorySource interface {
	ListForView(ctx context.Context) ([]view.InventoryRecord, error)
}

// Service defines item business logic, including the item overview that
// combines search filtering with per-warehouse quantity aggregation.
type Service interface {
	CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	ListItems(ctx context.Context) ([]*Item, error)
	UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (*Item, error)
	DeleteItem(ctx context.Context, id string) error
	DeleteAllItems(ctx context.Context) error
	ItemSummaries(ctx context.Context, query string) ([]view.ItemRow, error)
}

// CreateItemRequest holds the data for creating an item.
type CreateItemRequest struct {
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// UpdateItemRequest holds a partial update; nil fields are left untouched.
type UpdateItemRequest struct {
	Name *string `json:"name"`
	SKU  *string `json:"sku"`
}

type service struct {
	repo      Repository
	inventory InventorySource
}

func NewService(repo Repository, inventory InventorySource) Service {
	return &service{repo: repo, inventory: inventory}
}

func validateSKU(sku string) error {
	if sku != "" && !skuPattern.MatchString(sku) {
		return ErrInvalidSKU
	}
	return nil
}

func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	if len(req.Name) < 2 || len(req.Name) > 100 {
		return nil, fmt.Errorf("item name must be between 2 and 100 characters")
	}
	if err := validateSKU(req.SKU); err != nil {
		return nil, err
	}
	it := &Item{
		ID:   uuid.New(),
		Name: req.Name,
		SKU:  req.SKU,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) GetItem(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListItems(ctx context.Context) ([]*Item, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateItem(ctx context.Context, id string, req UpdateItemRequest) (*Item, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if len(*req.Name) < 2 || len(*req.Name) > 100 {
			return nil, fmt.Errorf("item name must be between 2 and 100 characters")
		}
		it.Name = *req.Name
	}
	if req.SKU != nil {
		if err := validateSKU(*req.SKU); err != nil {
			return nil, err
		}
		it.SKU = *req.SKU
	}
	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) DeleteItem(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) DeleteAllItems(ctx context.Context) error {
	return s.repo.DeleteAll(ctx)
}

// ItemSummaries runs the overview pipeline server-side: both collections are
// loaded in full, filtered by the query and folded into per-item quantity
// breakdowns. The summary is recomputed per call; invalidation is wholesale.
func (s *service) ItemSummaries(ctx context.Context, query string) ([]view.ItemRow, error) {
	stored, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.inventory.ListForView(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]view.Item, 0, len(stored))
	for _, it := range stored {
		items = append(items, view.Item{
			ID:               it.ID.String(),
			Name:             it.Name,
			SKU:              it.SKU,
			CreatedDate:      it.CreatedDate,
			LastModifiedDate: it.LastModifiedDate,
		})
	}
	filtered := view.FilterItems(query, items)
	summaries := view.Aggregate(items, records)
	return view.Project(filtered, summaries, false), nil
}
