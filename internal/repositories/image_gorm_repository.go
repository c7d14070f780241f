package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"lelang/internal/models"
)

// GORMImageRepository is a GORM implementation of ImageRepository.
type GORMImageRepository struct {
	db *gorm.DB
}

// NewGORMImageRepository creates a new instance of GORMImageRepository.
func NewGORMImageRepository(db *gorm.DB) *GORMImageRepository {
	return &GORMImageRepository{
		db: db,
	}
}

// ListByItem retrieves all images of one item in insertion order.
func (r *GORMImageRepository) ListByItem(itemID uint) ([]models.Image, error) {
	var images []models.Image
	if err := r.db.Where("item_id = ?", itemID).Order("id ASC").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to list images for item %d: %w", itemID, err)
	}
	return images, nil
}

// ListAll retrieves every image row.
func (r *GORMImageRepository) ListAll() ([]models.Image, error) {
	var images []models.Image
	if err := r.db.Order("id ASC").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	return images, nil
}

// Create inserts a new image row.
func (r *GORMImageRepository) Create(image *models.Image) error {
	if err := r.db.Create(image).Error; err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	return nil
}
