package photo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const photoColumns = `id, owner_type, owner_id, file_name, content_type, size_bytes, storage_path, created_date`

func scanPhoto(row interface{ Scan(...interface{}) error }) (*Photo, error) {
	p := &Photo{}
	err := row.Scan(&p.ID, &p.OwnerType, &p.OwnerID, &p.FileName,
		&p.ContentType, &p.SizeBytes, &p.StoragePath, &p.CreatedDate)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Create(ctx context.Context, p *Photo) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO photos (id, owner_type, owner_id, file_name, content_type, size_bytes, storage_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_date`,
		p.ID, p.OwnerType, p.OwnerID, p.FileName, p.ContentType, p.SizeBytes, p.StoragePath).
		Scan(&p.CreatedDate)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Photo, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	p, err := scanPhoto(r.db.QueryRowContext(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE id=$1`, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) ListByOwner(ctx context.Context, ownerType OwnerType, ownerID string) ([]*Photo, error) {
	uid, err := uuid.Parse(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id: %w", err)
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+photoColumns+` FROM photos WHERE owner_type=$1 AND owner_id=$2 ORDER BY created_date`,
		ownerType, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var photos []*Photo
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM photos WHERE id=$1`, uid)
	return err
}
