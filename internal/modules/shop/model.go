package shop

import (
	"time"

	"github.com/google/uuid"
)

// Shop is the top-level tenant; every warehouse belongs to exactly one shop.
type Shop struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	CreatedDate      time.Time  `json:"createdDate"`
	LastModifiedDate *time.Time `json:"lastModifiedDate,omitempty"`
}
