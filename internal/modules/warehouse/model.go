package warehouse

import (
	"time"

	"github.com/google/uuid"
)

// Warehouse is a storage site belonging to a shop. Address and geolocation
// are optional; maxCapacity is the total number of units the site can hold.
type Warehouse struct {
	ID               uuid.UUID  `json:"id"`
	ShopID           uuid.UUID  `json:"shopId"`
	Name             string     `json:"name"`
	Lat              *float64   `json:"lat,omitempty"`
	Lng              *float64   `json:"lng,omitempty"`
	Street           string     `json:"street,omitempty"`
	Number           string     `json:"number,omitempty"`
	City             string     `json:"city,omitempty"`
	PostalCode       string     `json:"postalCode,omitempty"`
	State            string     `json:"state,omitempty"`
	Country          string     `json:"country,omitempty"`
	MaxCapacity      int        `json:"maxCapacity"`
	CreatedDate      time.Time  `json:"createdDate"`
	LastModifiedDate *time.Time `json:"lastModifiedDate,omitempty"`
}
