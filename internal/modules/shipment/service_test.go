package shipment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type receipt struct {
	warehouseID string
	deltas      map[string]int
}

type mockRepo struct {
	mu          sync.Mutex
	shipments   map[string]*Shipment
	lineItems   map[string]*LineItem
	receipts    []receipt
	completeErr error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		shipments: make(map[string]*Shipment),
		lineItems: make(map[string]*LineItem),
	}
}

func (m *mockRepo) Create(_ context.Context, sh *Shipment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sh.CreatedDate = time.Now()
	m.shipments[sh.ID.String()] = sh
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id string) (*Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sh, ok := m.shipments[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *sh
	return &cp, nil
}

func (m *mockRepo) List(_ context.Context) ([]*Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Shipment, 0, len(m.shipments))
	for _, sh := range m.shipments {
		cp := *sh
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockRepo) ListByWarehouse(_ context.Context, warehouseID string) ([]*Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Shipment
	for _, sh := range m.shipments {
		if sh.Warehouse.ID.String() == warehouseID {
			cp := *sh
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockRepo) ListByWarehouses(_ context.Context, warehouseIDs []string) ([]*Shipment, error) {
	var out []*Shipment
	for _, id := range warehouseIDs {
		shipments, _ := m.ListByWarehouse(context.Background(), id)
		out = append(out, shipments...)
	}
	return out, nil
}

func (m *mockRepo) Update(_ context.Context, sh *Shipment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.shipments[sh.ID.String()]; !ok {
		return ErrNotFound
	}
	cp := *sh
	m.shipments[sh.ID.String()] = &cp
	return nil
}

func (m *mockRepo) UpdateStatus(_ context.Context, id string, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	sh, ok := m.shipments[id]
	if !ok {
		return ErrNotFound
	}
	sh.Status = status
	return nil
}

func (m *mockRepo) Complete(_ context.Context, id string, warehouseID string, deltas map[string]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.completeErr != nil {
		return m.completeErr
	}
	sh, ok := m.shipments[id]
	if !ok {
		return ErrNotFound
	}
	if sh.Status == StatusCompleted {
		return ErrLocked
	}
	sh.Status = StatusCompleted
	m.receipts = append(m.receipts, receipt{warehouseID: warehouseID, deltas: deltas})
	return nil
}

func (m *mockRepo) DeleteWithLineItems(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.shipments[id]; !ok {
		return ErrNotFound
	}
	delete(m.shipments, id)
	for liID, li := range m.lineItems {
		if li.ShipmentID.String() == id {
			delete(m.lineItems, liID)
		}
	}
	return nil
}

func (m *mockRepo) CreateLineItem(_ context.Context, li *LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	li.CreatedDate = time.Now()
	m.lineItems[li.ID.String()] = li
	return nil
}

func (m *mockRepo) GetLineItem(_ context.Context, id string) (*LineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	li, ok := m.lineItems[id]
	if !ok {
		return nil, ErrLineItemNotFound
	}
	cp := *li
	return &cp, nil
}

func (m *mockRepo) ListLineItems(_ context.Context, shipmentID string) ([]*LineItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*LineItem
	for _, li := range m.lineItems {
		if li.ShipmentID.String() == shipmentID {
			cp := *li
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockRepo) UpdateLineItem(_ context.Context, li *LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lineItems[li.ID.String()]; !ok {
		return ErrLineItemNotFound
	}
	cp := *li
	m.lineItems[li.ID.String()] = &cp
	return nil
}

func (m *mockRepo) DeleteLineItem(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lineItems[id]; !ok {
		return ErrLineItemNotFound
	}
	delete(m.lineItems, id)
	return nil
}

type mockChecker struct{}

func (mockChecker) WarehouseExists(context.Context, string) (bool, error) { return true, nil }
func (mockChecker) WarehouseIDsByShop(context.Context, string) ([]string, error) {
	return nil, nil
}
func (mockChecker) ItemExists(context.Context, string) (bool, error) { return true, nil }

func newTestService(repo *mockRepo) Service {
	return NewService(repo, mockChecker{}, mockChecker{}, zap.NewNop())
}

func seedShipment(t *testing.T, repo *mockRepo, status Status) *Shipment {
	t.Helper()
	sh := &Shipment{
		ID:                  uuid.New(),
		Warehouse:           WarehouseRef{ID: uuid.New(), Name: "North"},
		ExpectedArrivalDate: Date{time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)},
		Status:              status,
	}
	require.NoError(t, repo.Create(context.Background(), sh))
	return sh
}

func seedLineItem(t *testing.T, repo *mockRepo, sh *Shipment, itemID uuid.UUID, received int) *LineItem {
	t.Helper()
	li := &LineItem{
		ID:               uuid.New(),
		ShipmentID:       sh.ID,
		Item:             ItemRef{ID: itemID},
		ExpectedQuantity: received + 1,
		ReceivedQuantity: received,
	}
	require.NoError(t, repo.CreateLineItem(context.Background(), li))
	return li
}

func TestCompleteShipmentBooksReceivedQuantities(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	sh := seedShipment(t, repo, StatusInDelivery)
	itemA, itemB := uuid.New(), uuid.New()
	seedLineItem(t, repo, sh, itemA, 5)
	seedLineItem(t, repo, sh, itemB, 3)

	updated, err := svc.UpdateStatus(context.Background(), sh.ID.String(), "COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)

	require.Len(t, repo.receipts, 1)
	rec := repo.receipts[0]
	assert.Equal(t, sh.Warehouse.ID.String(), rec.warehouseID)
	assert.Equal(t, map[string]int{
		itemA.String(): 5,
		itemB.String(): 3,
	}, rec.deltas)
}

func TestCompleteShipmentSumsDuplicateItems(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	sh := seedShipment(t, repo, StatusInDelivery)
	item := uuid.New()
	seedLineItem(t, repo, sh, item, 2)
	seedLineItem(t, repo, sh, item, 4)

	_, err := svc.UpdateStatus(context.Background(), sh.ID.String(), "COMPLETED")
	require.NoError(t, err)

	require.Len(t, repo.receipts, 1)
	assert.Equal(t, map[string]int{item.String(): 6}, repo.receipts[0].deltas)
}

func TestCompleteShipmentRequiresLineItems(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	sh := seedShipment(t, repo, StatusOrdered)

	_, err := svc.UpdateStatus(context.Background(), sh.ID.String(), "COMPLETED")
	require.Error(t, err)
	assert.Empty(t, repo.receipts)

	got, err := repo.GetByID(context.Background(), sh.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusOrdered, got.Status)
}

func TestCompleteShipmentRetryBooksOnce(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	sh := seedShipment(t, repo, StatusInDelivery)
	seedLineItem(t, repo, sh, uuid.New(), 5)

	repo.completeErr = assert.AnError
	_, err := svc.UpdateStatus(context.Background(), sh.ID.String(), "COMPLETED")
	require.Error(t, err)

	got, err := repo.GetByID(context.Background(), sh.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusInDelivery, got.Status, "failed completion leaves the shipment completable")
	assert.Empty(t, repo.receipts, "failed completion books nothing")

	repo.completeErr = nil
	updated, err := svc.UpdateStatus(context.Background(), sh.ID.String(), "COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)
	assert.Len(t, repo.receipts, 1, "retry after a failure books the receipt exactly once")

	_, err = svc.UpdateStatus(context.Background(), sh.ID.String(), "COMPLETED")
	assert.ErrorIs(t, err, ErrLocked)
	assert.Len(t, repo.receipts, 1, "completing a completed shipment books nothing")
}

func TestCompletedShipmentIsLocked(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	sh := seedShipment(t, repo, StatusCompleted)
	li := seedLineItem(t, repo, sh, uuid.New(), 5)

	_, err := svc.UpdateStatus(context.Background(), sh.ID.String(), "ORDERED")
	assert.ErrorIs(t, err, ErrLocked)

	_, err = svc.UpdateShipment(context.Background(), sh.ID.String(), UpdateShipmentRequest{})
	assert.ErrorIs(t, err, ErrLocked)

	err = svc.DeleteShipment(context.Background(), sh.ID.String())
	assert.ErrorIs(t, err, ErrLocked)

	_, err = svc.CreateLineItem(context.Background(), CreateLineItemRequest{
		ShipmentID:       sh.ID.String(),
		ItemID:           uuid.New().String(),
		ExpectedQuantity: 1,
	})
	assert.ErrorIs(t, err, ErrLocked)

	newQty := 9
	_, err = svc.UpdateLineItem(context.Background(), li.ID.String(), UpdateLineItemRequest{ReceivedQuantity: &newQty})
	assert.ErrorIs(t, err, ErrLocked)

	err = svc.DeleteLineItem(context.Background(), li.ID.String())
	assert.ErrorIs(t, err, ErrLocked)
}

func TestDeleteShipmentCascadesLineItems(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	sh := seedShipment(t, repo, StatusOrdered)
	li := seedLineItem(t, repo, sh, uuid.New(), 2)

	require.NoError(t, svc.DeleteShipment(context.Background(), sh.ID.String()))

	_, err := repo.GetByID(context.Background(), sh.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetLineItem(context.Background(), li.ID.String())
	assert.ErrorIs(t, err, ErrLineItemNotFound)
}

func TestCreateShipmentRejectsCompletedStatus(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	_, err := svc.CreateShipment(context.Background(), CreateShipmentRequest{
		WarehouseID:         uuid.New().String(),
		ExpectedArrivalDate: Date{time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)},
		Status:              "COMPLETED",
	})
	require.Error(t, err)
}

func TestCreateShipmentDefaultsToOrdered(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	sh, err := svc.CreateShipment(context.Background(), CreateShipmentRequest{
		WarehouseID:         uuid.New().String(),
		ExpectedArrivalDate: Date{time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusOrdered, sh.Status)
}

func TestCreateLineItemValidatesQuantities(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	sh := seedShipment(t, repo, StatusOrdered)

	_, err := svc.CreateLineItem(context.Background(), CreateLineItemRequest{
		ShipmentID:       sh.ID.String(),
		ItemID:           uuid.New().String(),
		ExpectedQuantity: 0,
	})
	require.Error(t, err)

	_, err = svc.CreateLineItem(context.Background(), CreateLineItemRequest{
		ShipmentID:       sh.ID.String(),
		ItemID:           uuid.New().String(),
		ExpectedQuantity: 1,
		ReceivedQuantity: -1,
	})
	require.Error(t, err)
}

func TestParseStatusIsCaseInsensitive(t *testing.T) {
	got, err := ParseStatus("in_delivery")
	require.NoError(t, err)
	assert.Equal(t, StatusInDelivery, got)

	_, err = ParseStatus("SHIPPED")
	require.Error(t, err)
}
