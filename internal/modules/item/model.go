package item

import (
	"time"

	"github.com/google/uuid"
)

// Item is a sellable/storable article. The SKU is optional; when present it
// follows the pattern two letters, three letters, two digits, dash-separated
// (e.g. KL-MED-15) and must be unique.
type Item struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	SKU              string     `json:"sku,omitempty"`
	CreatedDate      time.Time  `json:"createdDate"`
	LastModifiedDate *time.Time `json:"lastModifiedDate,omitempty"`
}
