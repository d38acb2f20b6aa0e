package inventory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockInventoryRepo struct {
	mu      sync.Mutex
	records map[string]*Record
}

func newMockInventoryRepo() *mockInventoryRepo {
	return &mockInventoryRepo{records: make(map[string]*Record)}
}

func (m *mockInventoryRepo) Create(_ context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec.CreatedDate = time.Now()
	m.records[rec.ID.String()] = rec
	return nil
}

func (m *mockInventoryRepo) GetByID(_ context.Context, id string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *mockInventoryRepo) List(_ context.Context) ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Record, 0, len(m.records))
	for _, rec := range m.records {
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockInventoryRepo) ListByItem(_ context.Context, itemID string) ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Record
	for _, rec := range m.records {
		if rec.Item.ID.String() == itemID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockInventoryRepo) ListByWarehouse(_ context.Context, warehouseID string) ([]*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Record
	for _, rec := range m.records {
		if rec.Warehouse.ID.String() == warehouseID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockInventoryRepo) Update(_ context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[rec.ID.String()]; !ok {
		return ErrNotFound
	}
	cp := *rec
	m.records[rec.ID.String()] = &cp
	return nil
}

func (m *mockInventoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *mockInventoryRepo) CountByWarehouse(_ context.Context, warehouseID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, rec := range m.records {
		if rec.Warehouse.ID.String() == warehouseID {
			count++
		}
	}
	return count, nil
}

type stubExists struct{ exists bool }

func (s stubExists) ItemExists(context.Context, string) (bool, error)      { return s.exists, nil }
func (s stubExists) WarehouseExists(context.Context, string) (bool, error) { return s.exists, nil }

func TestCreateRecordValidatesReferences(t *testing.T) {
	svc := NewService(newMockInventoryRepo(), stubExists{exists: false}, stubExists{exists: false})

	_, err := svc.CreateRecord(context.Background(), CreateRecordRequest{
		ItemID:      uuid.New().String(),
		WarehouseID: uuid.New().String(),
		Quantity:    5,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestCreateRecordRejectsNegativeQuantity(t *testing.T) {
	svc := NewService(newMockInventoryRepo(), stubExists{exists: true}, stubExists{exists: true})

	_, err := svc.CreateRecord(context.Background(), CreateRecordRequest{
		ItemID:      uuid.New().String(),
		WarehouseID: uuid.New().String(),
		Quantity:    -1,
	})
	require.Error(t, err)
}

func TestCreateRecordRejectsMalformedIDs(t *testing.T) {
	svc := NewService(newMockInventoryRepo(), stubExists{exists: true}, stubExists{exists: true})

	_, err := svc.CreateRecord(context.Background(), CreateRecordRequest{
		ItemID:      "not-a-uuid",
		WarehouseID: uuid.New().String(),
	})
	require.Error(t, err)
}

func TestUpdateRecordQuantity(t *testing.T) {
	repo := newMockInventoryRepo()
	svc := NewService(repo, stubExists{exists: true}, stubExists{exists: true})

	rec, err := svc.CreateRecord(context.Background(), CreateRecordRequest{
		ItemID:      uuid.New().String(),
		WarehouseID: uuid.New().String(),
		Quantity:    5,
	})
	require.NoError(t, err)

	qty := 12
	updated, err := svc.UpdateRecord(context.Background(), rec.ID.String(), UpdateRecordRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, 12, updated.Quantity)

	negative := -1
	_, err = svc.UpdateRecord(context.Background(), rec.ID.String(), UpdateRecordRequest{Quantity: &negative})
	require.Error(t, err)
}

func TestUpdateRecordMovesWarehouse(t *testing.T) {
	repo := newMockInventoryRepo()
	svc := NewService(repo, stubExists{exists: true}, stubExists{exists: true})

	rec, err := svc.CreateRecord(context.Background(), CreateRecordRequest{
		ItemID:      uuid.New().String(),
		WarehouseID: uuid.New().String(),
		Quantity:    5,
	})
	require.NoError(t, err)

	target := uuid.New().String()
	updated, err := svc.UpdateRecord(context.Background(), rec.ID.String(), UpdateRecordRequest{WarehouseID: &target})
	require.NoError(t, err)
	assert.Equal(t, target, updated.Warehouse.ID.String())
	assert.Equal(t, rec.Item.ID, updated.Item.ID, "item ref stays untouched when not in the request")
	assert.Equal(t, 5, updated.Quantity)
}

func TestUpdateRecordValidatesNewRefs(t *testing.T) {
	repo := newMockInventoryRepo()
	svc := NewService(repo, stubExists{exists: true}, stubExists{exists: true})

	rec, err := svc.CreateRecord(context.Background(), CreateRecordRequest{
		ItemID:      uuid.New().String(),
		WarehouseID: uuid.New().String(),
		Quantity:    5,
	})
	require.NoError(t, err)

	malformed := "not-a-uuid"
	_, err = svc.UpdateRecord(context.Background(), rec.ID.String(), UpdateRecordRequest{ItemID: &malformed})
	require.Error(t, err)

	missingSvc := NewService(repo, stubExists{exists: false}, stubExists{exists: false})
	ghost := uuid.New().String()
	_, err = missingSvc.UpdateRecord(context.Background(), rec.ID.String(), UpdateRecordRequest{ItemID: &ghost})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	unchanged, err := repo.GetByID(context.Background(), rec.ID.String())
	require.NoError(t, err)
	assert.Equal(t, rec.Item.ID, unchanged.Item.ID)
}

func TestViewSourceShapesRecords(t *testing.T) {
	repo := newMockInventoryRepo()
	rec := &Record{
		ID:        uuid.New(),
		Item:      ItemRef{ID: uuid.New(), Name: "Widget", SKU: "KL-MED-15"},
		Warehouse: WarehouseRef{ID: uuid.New(), Name: "North", MaxCapacity: 500},
		Quantity:  5,
	}
	require.NoError(t, repo.Create(context.Background(), rec))

	out, err := NewViewSource(repo).ListForView(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, rec.ID.String(), out[0].ID)
	assert.Equal(t, "Widget", out[0].Item.Name)
	assert.Equal(t, "North", out[0].Warehouse.Name)
	assert.Equal(t, 5, out[0].Quantity)
}
