package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"lelang/internal/apperrors"
	"lelang/internal/models"
)

// GORMBidRepository is a GORM implementation of BidRepository.
type GORMBidRepository struct {
	db *gorm.DB
}

// NewGORMBidRepository creates a new instance of GORMBidRepository.
func NewGORMBidRepository(db *gorm.DB) *GORMBidRepository {
	return &GORMBidRepository{
		db: db,
	}
}

// Create inserts a new bid row.
func (r *GORMBidRepository) Create(bid *models.Bid) error {
	if err := r.db.Create(bid).Error; err != nil {
		return fmt.Errorf("failed to create bid: %w", err)
	}
	return nil
}

// ListByAuction retrieves all bids on an auction, highest price first.
func (r *GORMBidRepository) ListByAuction(auctionID uint) ([]models.Bid, error) {
	var bids []models.Bid
	if err := r.db.Where("auction_id = ?", auctionID).Order("bid_price DESC").Find(&bids).Error; err != nil {
		return nil, fmt.Errorf("failed to list bids for auction %d: %w", auctionID, err)
	}
	return bids, nil
}

// GetHighest retrieves the current highest bid on an auction.
func (r *GORMBidRepository) GetHighest(auctionID uint) (*models.Bid, error) {
	var bid models.Bid
	if err := r.db.Where("auction_id = ?", auctionID).Order("bid_price DESC").First(&bid).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("auction %d: %w", auctionID, apperrors.ErrNoBids)
		}
		return nil, fmt.Errorf("failed to get highest bid for auction %d: %w", auctionID, err)
	}
	return &bid, nil
}
