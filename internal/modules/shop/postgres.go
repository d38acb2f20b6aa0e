package shop

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, s *Shop) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO shops (id, name) VALUES ($1, $2)
		RETURNING created_date`,
		s.ID, s.Name).Scan(&s.CreatedDate)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Shop, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	s := &Shop{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, name, created_date, last_modified_date
		FROM shops WHERE id=$1`, uid).
		Scan(&s.ID, &s.Name, &s.CreatedDate, &s.LastModifiedDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

func (r *postgresRepo) List(ctx context.Context) ([]*Shop, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_date, last_modified_date
		FROM shops ORDER BY created_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var shops []*Shop
	for rows.Next() {
		s := &Shop{}
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedDate, &s.LastModifiedDate); err != nil {
			return nil, err
		}
		shops = append(shops, s)
	}
	return shops, rows.Err()
}

func (r *postgresRepo) ShopExists(ctx context.Context, id string) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	var exists bool
	err = r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM shops WHERE id=$1)`, uid).Scan(&exists)
	return exists, err
}
