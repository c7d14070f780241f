package services

import (
	"lelang/internal/apperrors"
	"lelang/internal/models"
	"lelang/internal/repositories"
	"lelang/pkg/imageurl"
)

// ItemUpdate carries the optional fields of an item update. Nil fields
// keep the stored value.
type ItemUpdate struct {
	Name         *string
	Description  *string
	InitialPrice *float64
}

// ItemService handles ownership-scoped item CRUD with image attachment.
type ItemService struct {
	itemRepo  repositories.ItemRepository
	imageRepo repositories.ImageRepository
	urls      *imageurl.Builder
}

// NewItemService creates a new ItemService.
func NewItemService(itemRepo repositories.ItemRepository, imageRepo repositories.ImageRepository, urls *imageurl.Builder) *ItemService {
	return &ItemService{
		itemRepo:  itemRepo,
		imageRepo: imageRepo,
		urls:      urls,
	}
}

// List returns the acting user's items with their image URLs, images
// resolved with a single bulk fetch.
func (s *ItemService) List(actingUserID uint) ([]models.ItemResponse, error) {
	items, err := s.itemRepo.ListByOwner(actingUserID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.ErrNoItems
	}

	images, err := s.imageRepo.ListAll()
	if err != nil {
		return nil, err
	}
	grouped := make(map[uint][]models.ImageURL)
	for _, img := range images {
		grouped[img.ItemID] = append(grouped[img.ItemID], models.ImageURL{URL: s.urls.URL(img.Filename)})
	}

	responses := make([]models.ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, models.NewItemResponse(item, grouped[item.ID]))
	}
	return responses, nil
}

// Get returns one of the acting user's items with its image URLs.
func (s *ItemService) Get(id, actingUserID uint) (*models.ItemResponse, error) {
	item, err := s.itemRepo.GetOwned(id, actingUserID)
	if err != nil {
		return nil, err
	}

	images, err := s.imageRepo.ListByItem(item.ID)
	if err != nil {
		return nil, err
	}
	var urls []models.ImageURL
	for _, img := range images {
		urls = append(urls, models.ImageURL{URL: s.urls.URL(img.Filename)})
	}

	resp := models.NewItemResponse(*item, urls)
	return &resp, nil
}

// Create records a new item owned by the acting user.
func (s *ItemService) Create(actingUserID uint, name, description string, initialPrice float64) error {
	item := &models.Item{
		UserID:       actingUserID,
		Name:         name,
		Description:  description,
		InitialPrice: initialPrice,
	}
	return s.itemRepo.Create(item)
}

// Update applies the non-nil fields of upd to one of the acting user's
// items.
func (s *ItemService) Update(id, actingUserID uint, upd ItemUpdate) error {
	item, err := s.itemRepo.GetOwned(id, actingUserID)
	if err != nil {
		return err
	}

	if upd.Name != nil {
		item.Name = *upd.Name
	}
	if upd.Description != nil {
		item.Description = *upd.Description
	}
	if upd.InitialPrice != nil {
		item.InitialPrice = *upd.InitialPrice
	}
	return s.itemRepo.Update(item)
}

// AddImage attaches a stored image filename to one of the acting user's
// items.
func (s *ItemService) AddImage(id, actingUserID uint, filename string) error {
	item, err := s.itemRepo.GetOwned(id, actingUserID)
	if err != nil {
		return err
	}
	return s.imageRepo.Create(&models.Image{
		ItemID:   item.ID,
		Filename: filename,
	})
}

// Delete soft-deletes one of the acting user's items.
func (s *ItemService) Delete(id, actingUserID uint) error {
	return s.itemRepo.SoftDelete(id, actingUserID)
}
