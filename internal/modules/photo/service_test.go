package photo

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockPhotoRepo struct {
	mu     sync.Mutex
	photos map[string]*Photo
	err    error
}

func newMockPhotoRepo() *mockPhotoRepo {
	return &mockPhotoRepo{photos: make(map[string]*Photo)}
}

func (m *mockPhotoRepo) Create(_ context.Context, p *Photo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	p.CreatedDate = time.Now()
	m.photos[p.ID.String()] = p
	return nil
}

func (m *mockPhotoRepo) GetByID(_ context.Context, id string) (*Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.photos[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockPhotoRepo) ListByOwner(_ context.Context, ownerType OwnerType, ownerID string) ([]*Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*Photo
	for _, p := range m.photos {
		if p.OwnerType == ownerType && p.OwnerID.String() == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *mockPhotoRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.photos[id]; !ok {
		return ErrNotFound
	}
	delete(m.photos, id)
	return nil
}

func allowAllCheckers() map[OwnerType]OwnerChecker {
	exists := func(context.Context, string) (bool, error) { return true, nil }
	return map[OwnerType]OwnerChecker{
		OwnerItem:      exists,
		OwnerWarehouse: exists,
		OwnerShop:      exists,
	}
}

func newTestService(t *testing.T, repo Repository) Service {
	t.Helper()
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	return NewService(repo, storage, allowAllCheckers(), zap.NewNop())
}

func TestUploadStoresBytesAndMetadata(t *testing.T) {
	repo := newMockPhotoRepo()
	svc := newTestService(t, repo)
	ownerID := uuid.New().String()

	p, err := svc.Upload(context.Background(), "item", ownerID,
		"front.jpg", "image/jpeg", strings.NewReader("jpeg bytes"))
	require.NoError(t, err)
	assert.Equal(t, OwnerItem, p.OwnerType)
	assert.Equal(t, "front.jpg", p.FileName)
	assert.EqualValues(t, len("jpeg bytes"), p.SizeBytes)

	got, rc, err := svc.Get(context.Background(), p.ID.String())
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(body))
	assert.Equal(t, p.ID, got.ID)
}

func TestUploadRejectsUnknownOwnerType(t *testing.T) {
	svc := newTestService(t, newMockPhotoRepo())

	_, err := svc.Upload(context.Background(), "invoice", uuid.New().String(),
		"a.png", "image/png", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrUnknownOwner)
}

func TestUploadRejectsMissingOwner(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	checkers := map[OwnerType]OwnerChecker{
		OwnerItem: func(context.Context, string) (bool, error) { return false, nil },
	}
	svc := NewService(newMockPhotoRepo(), storage, checkers, zap.NewNop())

	_, err = svc.Upload(context.Background(), "item", uuid.New().String(),
		"a.png", "image/png", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestUploadCleansUpFileWhenMetadataInsertFails(t *testing.T) {
	repo := newMockPhotoRepo()
	repo.err = assert.AnError
	dir := t.TempDir()
	storage, err := NewFileStorage(dir)
	require.NoError(t, err)
	svc := NewService(repo, storage, allowAllCheckers(), zap.NewNop())

	_, err = svc.Upload(context.Background(), "shop", uuid.New().String(),
		"logo.png", "image/png", strings.NewReader("x"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDeleteRemovesMetadataAndFile(t *testing.T) {
	repo := newMockPhotoRepo()
	svc := newTestService(t, repo)

	p, err := svc.Upload(context.Background(), "warehouse", uuid.New().String(),
		"hall.jpg", "image/jpeg", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), p.ID.String()))

	_, _, err = svc.Get(context.Background(), p.ID.String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListByOwnerFiltersOtherOwners(t *testing.T) {
	repo := newMockPhotoRepo()
	svc := newTestService(t, repo)
	owner := uuid.New().String()

	_, err := svc.Upload(context.Background(), "item", owner, "a.png", "image/png", strings.NewReader("a"))
	require.NoError(t, err)
	_, err = svc.Upload(context.Background(), "item", uuid.New().String(), "b.png", "image/png", strings.NewReader("b"))
	require.NoError(t, err)

	photos, err := svc.ListByOwner(context.Background(), "item", owner)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "a.png", photos[0].FileName)
}
