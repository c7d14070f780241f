package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"lelang/internal/apperrors"
	"lelang/internal/models"
)

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{
		db: db,
	}
}

// ListByOwner retrieves all non-deleted items owned by ownerID.
func (r *GORMItemRepository) ListByOwner(ownerID uint) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.Where("user_id = ?", ownerID).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list items for user %d: %w", ownerID, err)
	}
	return items, nil
}

// GetOwned retrieves one item scoped to its owner. Ownership mismatch
// reads the same as absence.
func (r *GORMItemRepository) GetOwned(id, ownerID uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.First(&item, "id = ? AND user_id = ?", id, ownerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("item %d: %w", id, apperrors.ErrItemNotFound)
		}
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}
	return &item, nil
}

// Create inserts a new item row.
func (r *GORMItemRepository) Create(item *models.Item) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// Update saves all fields of an existing item.
func (r *GORMItemRepository) Update(item *models.Item) error {
	result := r.db.Save(item)
	if result.Error != nil {
		return fmt.Errorf("failed to update item %d: %w", item.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("item %d: %w", item.ID, apperrors.ErrItemNotFound)
	}
	return nil
}

// SoftDelete marks an item owned by ownerID as deleted.
func (r *GORMItemRepository) SoftDelete(id, ownerID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Item{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete item %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("item %d: %w", id, apperrors.ErrItemNotFound)
	}
	return nil
}
