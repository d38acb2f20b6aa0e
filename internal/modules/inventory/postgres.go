package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const recordSelect = `
	SELECT inv.id, inv.quantity, inv.created_date, inv.last_modified_date,
	       i.id, i.name, i.sku,
	       w.id, w.name, w.max_capacity
	FROM inventory inv
	JOIN items i ON i.id = inv.item_id
	JOIN warehouses w ON w.id = inv.warehouse_id`

func scanRecord(row interface{ Scan(...interface{}) error }) (*Record, error) {
	rec := &Record{}
	var sku sql.NullString
	err := row.Scan(&rec.ID, &rec.Quantity, &rec.CreatedDate, &rec.LastModifiedDate,
		&rec.Item.ID, &rec.Item.Name, &sku,
		&rec.Warehouse.ID, &rec.Warehouse.Name, &rec.Warehouse.MaxCapacity)
	if err != nil {
		return nil, err
	}
	rec.Item.SKU = sku.String
	return rec, nil
}

func (r *postgresRepo) Create(ctx context.Context, rec *Record) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO inventory (id, item_id, warehouse_id, quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING created_date`,
		rec.ID, rec.Item.ID, rec.Warehouse.ID, rec.Quantity).
		Scan(&rec.CreatedDate)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Record, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	rec, err := scanRecord(r.db.QueryRowContext(ctx, recordSelect+` WHERE inv.id=$1`, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]*Record, error) {
	return r.queryRecords(ctx, recordSelect+` ORDER BY inv.created_date`)
}

func (r *postgresRepo) ListByItem(ctx context.Context, itemID string) ([]*Record, error) {
	uid, err := uuid.Parse(itemID)
	if err != nil {
		return nil, fmt.Errorf("invalid item id: %w", err)
	}
	return r.queryRecords(ctx, recordSelect+` WHERE inv.item_id=$1 ORDER BY inv.created_date`, uid)
}

func (r *postgresRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]*Record, error) {
	uid, err := uuid.Parse(warehouseID)
	if err != nil {
		return nil, fmt.Errorf("invalid warehouse id: %w", err)
	}
	return r.queryRecords(ctx, recordSelect+` WHERE inv.warehouse_id=$1 ORDER BY inv.created_date`, uid)
}

func (r *postgresRepo) queryRecords(ctx context.Context, query string, args ...interface{}) ([]*Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, rec *Record) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE inventory SET item_id=$2, warehouse_id=$3, quantity=$4, last_modified_date=now()
		WHERE id=$1`,
		rec.ID, rec.Item.ID, rec.Warehouse.ID, rec.Quantity)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM inventory WHERE id=$1`, uid)
	return err
}

func (r *postgresRepo) CountByWarehouse(ctx context.Context, warehouseID string) (int, error) {
	uid, err := uuid.Parse(warehouseID)
	if err != nil {
		return 0, nil
	}
	var count int
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM inventory WHERE warehouse_id=$1`, uid).Scan(&count)
	return count, err
}
