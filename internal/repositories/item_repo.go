package repositories

import (
	"lelang/internal/models"
)

// ItemRepository defines the interface for item data access. All lookups
// except Get are scoped to the owning user; deletes are soft.
type ItemRepository interface {
	ListByOwner(ownerID uint) ([]models.Item, error)
	GetOwned(id, ownerID uint) (*models.Item, error)
	Create(item *models.Item) error
	Update(item *models.Item) error
	SoftDelete(id, ownerID uint) error
}
