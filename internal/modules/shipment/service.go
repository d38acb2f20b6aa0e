package shipment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotFound         = errors.New("shipment not found")
	ErrLineItemNotFound = errors.New("shipment line item not found")
	// ErrLocked is returned for any mutation of a COMPLETED shipment or its
	// line items.
	ErrLocked = errors.New("completed shipments cannot be modified")
)

// WarehouseChecker resolves warehouse references; the warehouse repository
// satisfies it.
type WarehouseChecker interface {
	WarehouseExists(ctx context.Context, id string) (bool, error)
	WarehouseIDsByShop(ctx context.Context, shopID string) ([]string, error)
}

// ItemChecker resolves item references; the item repository satisfies it.
type ItemChecker interface {
	ItemExists(ctx context.Context, id string) (bool, error)
}

// Service defines shipment business logic.
type Service interface {
	CreateShipment(ctx context.Context, req CreateShipmentRequest) (*Shipment, error)
	GetShipment(ctx context.Context, id string) (*Shipment, error)
	ListShipments(ctx context.Context) ([]*Shipment, error)
	ListShipmentsByWarehouse(ctx context.Context, warehouseID string) ([]*Shipment, error)
	ListShipmentsByShop(ctx context.Context, shopID string) ([]*Shipment, error)
	UpdateShipment(ctx context.Context, id string, req UpdateShipmentRequest) (*Shipment, error)
	UpdateStatus(ctx context.Context, id string, status string) (*Shipment, error)
	DeleteShipment(ctx context.Context, id string) error

	CreateLineItem(ctx context.Context, req CreateLineItemRequest) (*LineItem, error)
	ListLineItems(ctx context.Context, shipmentID string) ([]*LineItem, error)
	UpdateLineItem(ctx context.Context, id string, req UpdateLineItemRequest) (*LineItem, error)
	DeleteLineItem(ctx context.Context, id string) error
}

// CreateShipmentRequest holds the data for creating a shipment.
type CreateShipmentRequest struct {
	WarehouseID         string `json:"warehouseId"`
	ExpectedArrivalDate Date   `json:"expectedArrivalDate"`
	Status              string `json:"status"`
}

// UpdateShipmentRequest holds a partial update; nil fields are left untouched.
type UpdateShipmentRequest struct {
	WarehouseID         *string `json:"warehouseId"`
	ExpectedArrivalDate *Date   `json:"expectedArrivalDate"`
	Status              *string `json:"status"`
}

// CreateLineItemRequest holds the data for adding a line item to a shipment.
type CreateLineItemRequest struct {
	ShipmentID       string `json:"shipmentId"`
	ItemID           string `json:"itemId"`
	ExpectedQuantity int    `json:"expectedQuantity"`
	ReceivedQuantity int    `json:"receivedQuantity"`
}

// UpdateLineItemRequest holds a partial line item update.
type UpdateLineItemRequest struct {
	ItemID           *string `json:"itemId"`
	ExpectedQuantity *int    `json:"expectedQuantity"`
	ReceivedQuantity *int    `json:"receivedQuantity"`
}

type service struct {
	repo       Repository
	warehouses WarehouseChecker
	items      ItemChecker
	logger     *zap.Logger
}

func NewService(repo Repository, warehouses WarehouseChecker, items ItemChecker, logger *zap.Logger) Service {
	return &service{repo: repo, warehouses: warehouses, items: items, logger: logger}
}

func (s *service) CreateShipment(ctx context.Context, req CreateShipmentRequest) (*Shipment, error) {
	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("invalid warehouseId: %w", err)
	}
	ok, err := s.warehouses.WarehouseExists(ctx, req.WarehouseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("warehouse %s does not exist", req.WarehouseID)
	}
	if req.ExpectedArrivalDate.IsZero() {
		return nil, fmt.Errorf("expectedArrivalDate is required")
	}
	status := StatusOrdered
	if req.Status != "" {
		if status, err = ParseStatus(req.Status); err != nil {
			return nil, err
		}
	}
	if status == StatusCompleted {
		return nil, fmt.Errorf("shipments cannot be created in status COMPLETED")
	}
	sh := &Shipment{
		ID:                  uuid.New(),
		Warehouse:           WarehouseRef{ID: warehouseID},
		ExpectedArrivalDate: req.ExpectedArrivalDate,
		Status:              status,
	}
	if err := s.repo.Create(ctx, sh); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, sh.ID.String())
}

func (s *service) GetShipment(ctx context.Context, id string) (*Shipment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListShipments(ctx context.Context) ([]*Shipment, error) {
	return s.repo.List(ctx)
}

func (s *service) ListShipmentsByWarehouse(ctx context.Context, warehouseID string) ([]*Shipment, error) {
	ok, err := s.warehouses.WarehouseExists(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("warehouse %s does not exist", warehouseID)
	}
	return s.repo.ListByWarehouse(ctx, warehouseID)
}

func (s *service) ListShipmentsByShop(ctx context.Context, shopID string) ([]*Shipment, error) {
	ids, err := s.warehouses.WarehouseIDsByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*Shipment{}, nil
	}
	return s.repo.ListByWarehouses(ctx, ids)
}

func (s *service) UpdateShipment(ctx context.Context, id string, req UpdateShipmentRequest) (*Shipment, error) {
	sh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sh.Status == StatusCompleted {
		return nil, ErrLocked
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
		sh.Warehouse = WarehouseRef{ID: warehouseID}
	}
	if req.ExpectedArrivalDate != nil {
		sh.ExpectedArrivalDate = *req.ExpectedArrivalDate
	}
	if req.Status != nil {
		status, err := ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		if status == StatusCompleted {
			return nil, fmt.Errorf("use the status endpoint to complete a shipment")
		}
		sh.Status = status
	}
	if err := s.repo.Update(ctx, sh); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateStatus transitions a shipment. Completing it books every line item's
// received quantity into the destination warehouse's inventory, creating
// records for items the warehouse does not hold yet.
func (s *service) UpdateStatus(ctx context.Context, id string, status string) (*Shipment, error) {
	newStatus, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	sh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sh.Status == StatusCompleted {
		return nil, ErrLocked
	}
	if newStatus == StatusCompleted {
		if err := s.completeShipment(ctx, sh); err != nil {
			return nil, err
		}
	} else if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	sh.Status = newStatus
	return sh, nil
}

// completeShipment books the received quantities and flips the status through
// one repository call so a failed completion leaves nothing applied and a
// retry can never book the receipt twice.
func (s *service) completeShipment(ctx context.Context, sh *Shipment) error {
	lineItems, err := s.repo.ListLineItems(ctx, sh.ID.String())
	if err != nil {
		return err
	}
	if len(lineItems) == 0 {
		return fmt.Errorf("shipment has no line items")
	}
	deltas := make(map[string]int, len(lineItems))
	for _, li := range lineItems {
		deltas[li.Item.ID.String()] += li.ReceivedQuantity
	}
	if err := s.repo.Complete(ctx, sh.ID.String(), sh.Warehouse.ID.String(), deltas); err != nil {
		return err
	}
	s.logger.Info("shipment completed",
		zap.String("shipment_id", sh.ID.String()),
		zap.String("warehouse_id", sh.Warehouse.ID.String()),
		zap.Int("line_items", len(lineItems)))
	return nil
}

func (s *service) DeleteShipment(ctx context.Context, id string) error {
	sh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sh.Status == StatusCompleted {
		return ErrLocked
	}
	return s.repo.DeleteWithLineItems(ctx, id)
}

func (s *service) CreateLineItem(ctx context.Context, req CreateLineItemRequest) (*LineItem, error) {
	sh, err := s.repo.GetByID(ctx, req.ShipmentID)
	if err != nil {
		return nil, err
	}
	if sh.Status == StatusCompleted {
		return nil, ErrLocked
	}
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("invalid itemId: %w", err)
	}
	ok, err := s.items.ItemExists(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("item %s does not exist", req.ItemID)
	}
	if req.ExpectedQuantity < 1 {
		return nil, fmt.Errorf("expectedQuantity must be at least 1")
	}
	if req.ReceivedQuantity < 0 {
		return nil, fmt.Errorf("receivedQuantity must not be negative")
	}
	li := &LineItem{
		ID:               uuid.New(),
		ShipmentID:       sh.ID,
		Item:             ItemRef{ID: itemID},
		ExpectedQuantity: req.ExpectedQuantity,
		ReceivedQuantity: req.ReceivedQuantity,
	}
	if err := s.repo.CreateLineItem(ctx, li); err != nil {
		return nil, err
	}
	return s.repo.GetLineItem(ctx, li.ID.String())
}

func (s *service) ListLineItems(ctx context.Context, shipmentID string) ([]*LineItem, error) {
	if _, err := s.repo.GetByID(ctx, shipmentID); err != nil {
		return nil, err
	}
	return s.repo.ListLineItems(ctx, shipmentID)
}

func (s *service) UpdateLineItem(ctx context.Context, id string, req UpdateLineItemRequest) (*LineItem, error) {
	li, err := s.repo.GetLineItem(ctx, id)
	if err != nil {
		return nil, err
	}
	sh, err := s.repo.GetByID(ctx, li.ShipmentID.String())
	if err != nil {
		return nil, err
	}
	if sh.Status == StatusCompleted {
		return nil, ErrLocked
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
		li.Item = ItemRef{ID: itemID}
	}
	if req.ExpectedQuantity != nil {
		if *req.ExpectedQuantity < 1 {
			return nil, fmt.Errorf("expectedQuantity must be at least 1")
		}
		li.ExpectedQuantity = *req.ExpectedQuantity
	}
	if req.ReceivedQuantity != nil {
		if *req.ReceivedQuantity < 0 {
			return nil, fmt.Errorf("receivedQuantity must not be negative")
		}
		li.ReceivedQuantity = *req.ReceivedQuantity
	}
	if err := s.repo.UpdateLineItem(ctx, li); err != nil {
		return nil, err
	}
	return s.repo.GetLineItem(ctx, id)
}

func (s *service) DeleteLineItem(ctx context.Context, id string) error {
	li, err := s.repo.GetLineItem(ctx, id)
	if err != nil {
		return err
	}
	sh, err := s.repo.GetByID(ctx, li.ShipmentID.String())
	if err != nil {
		return err
	}
	if sh.Status == StatusCompleted {
		return ErrLocked
	}
	return s.repo.DeleteLineItem(ctx, id)
}
