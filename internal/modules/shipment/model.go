package shipment

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a shipment. There is no fixed transition
// order, but a COMPLETED shipment is locked: neither the shipment nor its
// line items can change afterwards.
type Status string

const (
	StatusOrdered    Status = "ORDERED"
	StatusProcessed  Status = "PROCESSED"
	StatusInDelivery Status = "IN_DELIVERY"
	StatusCompleted  Status = "COMPLETED"
)

func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToUpper(s)) {
	case StatusOrdered:
		return StatusOrdered, nil
	case StatusProcessed:
		return StatusProcessed, nil
	case StatusInDelivery:
		return StatusInDelivery, nil
	case StatusCompleted:
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("unknown shipment status %q", s)
	}
}

// Date is a calendar day serialized as "2006-01-02".
type Date struct{ time.Time }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format("2006-01-02") + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("expected date as YYYY-MM-DD: %w", err)
	}
	d.Time = t
	return nil
}

// WarehouseRef is the destination warehouse embedded in shipment responses.
type WarehouseRef struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	MaxCapacity int       `json:"maxCapacity"`
}

// ItemRef is the item reference embedded in line item responses.
type ItemRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	SKU  string    `json:"sku,omitempty"`
}

// Shipment is a delivery headed for one warehouse.
type Shipment struct {
	ID                  uuid.UUID    `json:"id"`
	Warehouse           WarehouseRef `json:"warehouse"`
	ExpectedArrivalDate Date         `json:"expectedArrivalDate"`
	Status              Status       `json:"status"`
	CreatedDate         time.Time    `json:"createdDate"`
	LastModifiedDate    *time.Time   `json:"lastModifiedDate,omitempty"`
}

// LineItem is one item position on a shipment. ExpectedQuantity is what was
// ordered, ReceivedQuantity what actually arrived; completion books the
// received quantity into the destination warehouse's inventory.
type LineItem struct {
	ID               uuid.UUID  `json:"id"`
	ShipmentID       uuid.UUID  `json:"shipmentId"`
	Item             ItemRef    `json:"item"`
	ExpectedQuantity int        `json:"expectedQuantity"`
	ReceivedQuantity int        `json:"receivedQuantity"`
	CreatedDate      time.Time  `json:"createdDate"`
	LastModifiedDate *time.Time `json:"lastModifiedDate,omitempty"`
}
