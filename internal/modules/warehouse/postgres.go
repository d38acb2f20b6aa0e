package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const warehouseColumns = `id, shop_id, name, lat, lng, street, number, city,
	postal_code, state, country, max_capacity, created_date, last_modified_date`

func scanWarehouse(row interface{ Scan(...interface{}) error }) (*Warehouse, error) {
	wh := &Warehouse{}
	err := row.Scan(&wh.ID, &wh.ShopID, &wh.Name, &wh.Lat, &wh.Lng,
		&wh.Street, &wh.Number, &wh.City, &wh.PostalCode, &wh.State,
		&wh.Country, &wh.MaxCapacity, &wh.CreatedDate, &wh.LastModifiedDate)
	return wh, err
}

func (r *postgresRepo) Create(ctx context.Context, wh *Warehouse) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO warehouses
		  (id, shop_id, name, lat, lng, street, number, city, postal_code, state, country, max_capacity)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING created_date`,
		wh.ID, wh.ShopID, wh.Name, wh.Lat, wh.Lng, wh.Street, wh.Number,
		wh.City, wh.PostalCode, wh.State, wh.Country, wh.MaxCapacity).
		Scan(&wh.CreatedDate)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Warehouse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	wh, err := scanWarehouse(r.db.QueryRowContext(ctx,
		`SELECT `+warehouseColumns+` FROM warehouses WHERE id=$1`, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return wh, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]*Warehouse, error) {
	return r.queryWarehouses(ctx,
		`SELECT `+warehouseColumns+` FROM warehouses ORDER BY created_date`)
}

func (r *postgresRepo) ListByShop(ctx context.Context, shopID string) ([]*Warehouse, error) {
	uid, err := uuid.Parse(shopID)
	if err != nil {
		return nil, fmt.Errorf("invalid shop id: %w", err)
	}
	return r.queryWarehouses(ctx,
		`SELECT `+warehouseColumns+` FROM warehouses WHERE shop_id=$1 ORDER BY created_date`, uid)
}

func (r *postgresRepo) queryWarehouses(ctx context.Context, query string, args ...interface{}) ([]*Warehouse, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var warehouses []*Warehouse
	for rows.Next() {
		wh, err := scanWarehouse(rows)
		if err != nil {
			return nil, err
		}
		warehouses = append(warehouses, wh)
	}
	return warehouses, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, wh *Warehouse) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE warehouses SET
		  name=$2, lat=$3, lng=$4, street=$5, number=$6, city=$7,
		  postal_code=$8, state=$9, country=$10, max_capacity=$11,
		  last_modified_date=now()
		WHERE id=$1`,
		wh.ID, wh.Name, wh.Lat, wh.Lng, wh.Street, wh.Number, wh.City,
		wh.PostalCode, wh.State, wh.Country, wh.MaxCapacity)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM warehouses WHERE id=$1`, uid)
	return err
}

func (r *postgresRepo) WarehouseExists(ctx context.Context, id string) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	var exists bool
	err = r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM warehouses WHERE id=$1)`, uid).Scan(&exists)
	return exists, err
}

func (r *postgresRepo) WarehouseIDsByShop(ctx context.Context, shopID string) ([]string, error) {
	uid, err := uuid.Parse(shopID)
	if err != nil {
		return nil, fmt.Errorf("invalid shop id: %w", err)
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM warehouses WHERE shop_id=$1`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id.String())
	}
	return ids, rows.Err()
}
