package item

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, it *Item) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO items (id, name, sku) VALUES ($1, $2, NULLIF($3, ''))
		RETURNING created_date`,
		it.ID, it.Name, it.SKU).Scan(&it.CreatedDate)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Item, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	it := &Item{}
	var sku sql.NullString
	err = r.db.QueryRowContext(ctx, `
		SELECT id, name, sku, created_date, last_modified_date
		FROM items WHERE id=$1`, uid).
		Scan(&it.ID, &it.Name, &sku, &it.CreatedDate, &it.LastModifiedDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	it.SKU = sku.String
	return it, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]*Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, sku, created_date, last_modified_date
		FROM items ORDER BY created_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Item
	for rows.Next() {
		it := &Item{}
		var sku sql.NullString
		if err := rows.Scan(&it.ID, &it.Name, &sku, &it.CreatedDate, &it.LastModifiedDate); err != nil {
			return nil, err
		}
		it.SKU = sku.String
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, it *Item) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE items SET name=$2, sku=NULLIF($3, ''), last_modified_date=now()
		WHERE id=$1`,
		it.ID, it.Name, it.SKU)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM items WHERE id=$1`, uid)
	return err
}

func (r *postgresRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM items`)
	return err
}

func (r *postgresRepo) ItemExists(ctx context.Context, id string) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	var exists bool
	err = r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM items WHERE id=$1)`, uid).Scan(&exists)
	return exists, err
}
