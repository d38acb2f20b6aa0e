package photo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotFound     = errors.New("photo not found")
	ErrUnknownOwner = errors.New("unknown owner type")
)

// OwnerChecker verifies that the entity a photo is attached to exists. The
// composition root wires one per owner type.
type OwnerChecker func(ctx context.Context, id string) (bool, error)

// Service defines photo business logic.
type Service interface {
	Upload(ctx context.Context, ownerType, ownerID, fileName, contentType string, src io.Reader) (*Photo, error)
	ListByOwner(ctx context.Context, ownerType, ownerID string) ([]*Photo, error)
	Get(ctx context.Context, id string) (*Photo, io.ReadCloser, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	storage  Storage
	checkers map[OwnerType]OwnerChecker
	logger   *zap.Logger
}

func NewService(repo Repository, storage Storage, checkers map[OwnerType]OwnerChecker, logger *zap.Logger) Service {
	return &service{repo: repo, storage: storage, checkers: checkers, logger: logger}
}

func parseOwnerType(s string) (OwnerType, error) {
	switch OwnerType(strings.ToLower(s)) {
	case OwnerItem:
		return OwnerItem, nil
	case OwnerWarehouse:
		return OwnerWarehouse, nil
	case OwnerShop:
		return OwnerShop, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOwner, s)
	}
}

func (s *service) checkOwner(ctx context.Context, ownerType OwnerType, ownerID string) error {
	check, ok := s.checkers[ownerType]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOwner, ownerType)
	}
	exists, err := check(ctx, ownerID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%s %s does not exist", ownerType, ownerID)
	}
	return nil
}

func (s *service) Upload(ctx context.Context, ownerType, ownerID, fileName, contentType string, src io.Reader) (*Photo, error) {
	ot, err := parseOwnerType(ownerType)
	if err != nil {
		return nil, err
	}
	oid, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id: %w", err)
	}
	if err := s.checkOwner(ctx, ot, ownerID); err != nil {
		return nil, err
	}
	if fileName == "" {
		return nil, fmt.Errorf("file name is required")
	}

	p := &Photo{
		ID:          uuid.New(),
		OwnerType:   ot,
		OwnerID:     oid,
		FileName:    fileName,
		ContentType: contentType,
	}
	path, size, err := s.storage.Save(p.ID.String(), src)
	if err != nil {
		return nil, fmt.Errorf("store photo: %w", err)
	}
	p.StoragePath = path
	p.SizeBytes = size

	if err := s.repo.Create(ctx, p); err != nil {
		if rmErr := s.storage.Remove(path); rmErr != nil {
			s.logger.Warn("orphaned photo file left behind",
				zap.String("path", path), zap.Error(rmErr))
		}
		return nil, err
	}
	return p, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerType, ownerID string) ([]*Photo, error) {
	ot, err := parseOwnerType(ownerType)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, ot, ownerID)
}

// Get returns the photo metadata and an open reader for the image bytes.
// The caller closes the reader.
func (s *service) Get(ctx context.Context, id string) (*Photo, io.ReadCloser, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.storage.Open(p.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open photo file: %w", err)
	}
	return p, rc, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.Remove(p.StoragePath); err != nil {
		s.logger.Warn("photo file removal failed",
			zap.String("path", p.StoragePath), zap.Error(err))
	}
	return nil
}
