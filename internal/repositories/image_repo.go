package repositories

import "lelang/internal/models"

// ImageRepository defines the interface for image metadata access.
// ListAll exists so list endpoints can fetch every image once and group
// in memory instead of querying per row.
type ImageRepository interface {
	ListByItem(itemID uint) ([]models.Image, error)
	ListAll() ([]models.Image, error)
	Create(image *models.Image) error
}
