package photo

import (
	"time"

	"github.com/google/uuid"
)

// OwnerType names the kind of entity a photo is attached to.
type OwnerType string

const (
	OwnerItem      OwnerType = "item"
	OwnerWarehouse OwnerType = "warehouse"
	OwnerShop      OwnerType = "shop"
)

// Photo is the stored metadata for one uploaded image. The image bytes live
// on disk under the configured photo directory; StoragePath locates them.
type Photo struct {
	ID          uuid.UUID `json:"id"`
	OwnerType   OwnerType `json:"ownerType"`
	OwnerID     uuid.UUID `json:"ownerId"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	StoragePath string    `json:"-"`
	CreatedDate time.Time `json:"createdDate"`
}
