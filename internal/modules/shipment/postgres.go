package shipment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const shipmentSelect = `
	SELECT s.id, s.expected_arrival_date, s.status, s.created_date, s.last_modified_date,
	       w.id, w.name, w.max_capacity
	FROM shipments s
	JOIN warehouses w ON w.id = s.warehouse_id`

func scanShipment(row interface{ Scan(...interface{}) error }) (*Shipment, error) {
	sh := &Shipment{}
	err := row.Scan(&sh.ID, &sh.ExpectedArrivalDate.Time, &sh.Status, &sh.CreatedDate, &sh.LastModifiedDate,
		&sh.Warehouse.ID, &sh.Warehouse.Name, &sh.Warehouse.MaxCapacity)
	if err != nil {
		return nil, err
	}
	return sh, nil
}

func (r *postgresRepo) Create(ctx context.Context, sh *Shipment) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO shipments (id, warehouse_id, expected_arrival_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_date`,
		sh.ID, sh.Warehouse.ID, sh.ExpectedArrivalDate.Time, sh.Status).
		Scan(&sh.CreatedDate)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Shipment, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	sh, err := scanShipment(r.db.QueryRowContext(ctx, shipmentSelect+` WHERE s.id=$1`, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sh, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]*Shipment, error) {
	return r.queryShipments(ctx, shipmentSelect+` ORDER BY s.expected_arrival_date, s.created_date`)
}

func (r *postgresRepo) ListByWarehouse(ctx context.Context, warehouseID string) ([]*Shipment, error) {
	uid, err := uuid.Parse(warehouseID)
	if err != nil {
		return nil, fmt.Errorf("invalid warehouse id: %w", err)
	}
	return r.queryShipments(ctx,
		shipmentSelect+` WHERE s.warehouse_id=$1 ORDER BY s.expected_arrival_date, s.created_date`, uid)
}

func (r *postgresRepo) ListByWarehouses(ctx context.Context, warehouseIDs []string) ([]*Shipment, error) {
	ids := make([]uuid.UUID, 0, len(warehouseIDs))
	for _, id := range warehouseIDs {
		uid, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid warehouse id %q: %w", id, err)
		}
		ids = append(ids, uid)
	}
	return r.queryShipments(ctx,
		shipmentSelect+` WHERE s.warehouse_id = ANY($1) ORDER BY s.expected_arrival_date, s.created_date`,
		pq.Array(ids))
}

func (r *postgresRepo) queryShipments(ctx context.Context, query string, args ...interface{}) ([]*Shipment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var shipments []*Shipment
	for rows.Next() {
		sh, err := scanShipment(rows)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, sh)
	}
	return shipments, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, sh *Shipment) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE shipments
		SET warehouse_id=$2, expected_arrival_date=$3, status=$4, last_modified_date=now()
		WHERE id=$1`,
		sh.ID, sh.Warehouse.ID, sh.ExpectedArrivalDate.Time, sh.Status)
	return err
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE shipments SET status=$2, last_modified_date=now() WHERE id=$1`,
		uid, status)
	return err
}

// Complete runs the guarded status flip and the inventory upserts in one
// transaction. The status predicate makes completion idempotent: once the
// transaction has committed, a retry matches zero rows and books nothing.
func (r *postgresRepo) Complete(ctx context.Context, id string, warehouseID string, deltas map[string]int) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	wid, err := uuid.Parse(warehouseID)
	if err != nil {
		return fmt.Errorf("invalid warehouse id: %w", err)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE shipments SET status=$2, last_modified_date=now()
		WHERE id=$1 AND status <> $2`,
		uid, StatusCompleted)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLocked
	}

	for itemID, qty := range deltas {
		iid, err := uuid.Parse(itemID)
		if err != nil {
			return fmt.Errorf("invalid item id %q: %w", itemID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO inventory (id, item_id, warehouse_id, quantity)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (item_id, warehouse_id)
			DO UPDATE SET quantity = inventory.quantity + EXCLUDED.quantity,
			              last_modified_date = now()`,
			uuid.New(), iid, wid, qty)
		if err != nil {
			return fmt.Errorf("book receipt for item %s: %w", itemID, err)
		}
	}
	return tx.Commit()
}

func (r *postgresRepo) DeleteWithLineItems(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shipment_line_items WHERE shipment_id=$1`, uid); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM shipments WHERE id=$1`, uid); err != nil {
		return err
	}
	return tx.Commit()
}

const lineItemSelect = `
	SELECT li.id, li.shipment_id, li.expected_quantity, li.received_quantity,
	       li.created_date, li.last_modified_date,
	       i.id, i.name, i.sku
	FROM shipment_line_items li
	JOIN items i ON i.id = li.item_id`

func scanLineItem(row interface{ Scan(...interface{}) error }) (*LineItem, error) {
	li := &LineItem{}
	var sku sql.NullString
	err := row.Scan(&li.ID, &li.ShipmentID, &li.ExpectedQuantity, &li.ReceivedQuantity,
		&li.CreatedDate, &li.LastModifiedDate,
		&li.Item.ID, &li.Item.Name, &sku)
	if err != nil {
		return nil, err
	}
	li.Item.SKU = sku.String
	return li, nil
}

func (r *postgresRepo) CreateLineItem(ctx context.Context, li *LineItem) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO shipment_line_items (id, shipment_id, item_id, expected_quantity, received_quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_date`,
		li.ID, li.ShipmentID, li.Item.ID, li.ExpectedQuantity, li.ReceivedQuantity).
		Scan(&li.CreatedDate)
}

func (r *postgresRepo) GetLineItem(ctx context.Context, id string) (*LineItem, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrLineItemNotFound
	}
	li, err := scanLineItem(r.db.QueryRowContext(ctx, lineItemSelect+` WHERE li.id=$1`, uid))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLineItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return li, nil
}

func (r *postgresRepo) ListLineItems(ctx context.Context, shipmentID string) ([]*LineItem, error) {
	uid, err := uuid.Parse(shipmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid shipment id: %w", err)
	}
	rows, err := r.db.QueryContext(ctx,
		lineItemSelect+` WHERE li.shipment_id=$1 ORDER BY li.created_date`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lineItems []*LineItem
	for rows.Next() {
		li, err := scanLineItem(rows)
		if err != nil {
			return nil, err
		}
		lineItems = append(lineItems, li)
	}
	return lineItems, rows.Err()
}

func (r *postgresRepo) UpdateLineItem(ctx context.Context, li *LineItem) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE shipment_line_items
		SET item_id=$2, expected_quantity=$3, received_quantity=$4, last_modified_date=now()
		WHERE id=$1`,
		li.ID, li.Item.ID, li.ExpectedQuantity, li.ReceivedQuantity)
	return err
}

func (r *postgresRepo) DeleteLineItem(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrLineItemNotFound
	}
	_, err = r.db.ExecContext(ctx, `DELETE FROM shipment_line_items WHERE id=$1`, uid)
	return err
}
