package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"lelang/internal/apperrors"
	"lelang/internal/models"
)

// auctionSelect is the fixed projection shared by every joined auction
// read. Aliases match the models.AuctionRow field names.
const auctionSelect = "auctions.id AS auction_id, items.id AS item_id, items.user_id AS user_id, " +
	"users.username, users.name, users.email, users.phone, users.profile_image, " +
	"items.name AS item_name, items.description, items.initial_price, " +
	"auctions.final_price, auctions.winner_user_id, auctions.status, auctions.created_at"

// bidAuctionSelect backs the bid history join.
const bidAuctionSelect = "bids.id AS bid_id, bids.auction_id AS auction_id, bids.bid_price, " +
	"bids.created_at AS bid_created_at, items.id AS item_id, items.user_id AS user_id, " +
	"items.name AS item_name, items.description, items.initial_price, " +
	"auctions.winner_user_id, auctions.status, auctions.created_at"

// GORMAuctionRepository is a GORM implementation of AuctionRepository.
type GORMAuctionRepository struct {
	db *gorm.DB
}

// NewGORMAuctionRepository creates a new instance of GORMAuctionRepository.
func NewGORMAuctionRepository(db *gorm.DB) *GORMAuctionRepository {
	return &GORMAuctionRepository{
		db: db,
	}
}

// joined builds the base items ⋈ auctions ⋈ users query. Soft-deleted
// rows of all three tables are excluded explicitly because the query
// runs over Table() rather than a model.
func (r *GORMAuctionRepository) joined(filter AuctionFilter) *gorm.DB {
	q := r.db.Table("auctions").
		Select(auctionSelect).
		Joins("INNER JOIN items ON items.id = auctions.item_id").
		Joins("INNER JOIN users ON users.id = auctions.user_id").
		Where("auctions.deleted_at IS NULL AND items.deleted_at IS NULL AND users.deleted_at IS NULL")
	if filter.Status != "" {
		q = q.Where("auctions.status = ?", filter.Status)
	}
	if filter.OwnerID != 0 {
		q = q.Where("auctions.user_id = ?", filter.OwnerID)
	}
	return q
}

// GetAuction retrieves one joined auction record matching the filter.
func (r *GORMAuctionRepository) GetAuction(id uint, filter AuctionFilter) (*models.AuctionRow, error) {
	var row models.AuctionRow
	result := r.joined(filter).Where("auctions.id = ?", id).Limit(1).Scan(&row)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to get auction %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("auction %d: %w", id, apperrors.ErrAuctionNotFound)
	}
	return &row, nil
}

// ListAuctions retrieves all joined auction records matching the filter,
// newest first.
func (r *GORMAuctionRepository) ListAuctions(filter AuctionFilter) ([]models.AuctionRow, error) {
	var rows []models.AuctionRow
	if err := r.joined(filter).Order("auctions.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list auctions: %w", err)
	}
	return rows, nil
}

// Create inserts a new auction row.
func (r *GORMAuctionRepository) Create(auction *models.Auction) error {
	if err := r.db.Create(auction).Error; err != nil {
		return fmt.Errorf("failed to create auction: %w", err)
	}
	return nil
}

// UpdateStatus sets the status of an auction owned by ownerID. Ownership
// mismatch and absence both report not-found.
func (r *GORMAuctionRepository) UpdateStatus(id, ownerID uint, status string) error {
	result := r.db.Model(&models.Auction{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update auction %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("auction %d: %w", id, apperrors.ErrAuctionNotFound)
	}
	return nil
}

// SoftDelete marks an auction owned by ownerID as deleted.
func (r *GORMAuctionRepository) SoftDelete(id, ownerID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Auction{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete auction %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("auction %d: %w", id, apperrors.ErrAuctionNotFound)
	}
	return nil
}

// SetWinner copies the bid's user and price into the auction's winner
// fields. The bid lookup is scoped to the auction so a bid placed on a
// different auction reads as not-found, and the read and write share one
// transaction so concurrent winner assignments cannot interleave.
func (r *GORMAuctionRepository) SetWinner(auctionID, ownerID, bidID uint) (*models.Auction, error) {
	var auction models.Auction
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var bid models.Bid
		if err := tx.First(&bid, "id = ? AND auction_id = ?", bidID, auctionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("bid %d on auction %d: %w", bidID, auctionID, apperrors.ErrBidNotFound)
			}
			return fmt.Errorf("failed to get bid %d: %w", bidID, err)
		}

		if err := tx.First(&auction, "id = ? AND user_id = ?", auctionID, ownerID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("auction %d owner check: %w", auctionID, apperrors.ErrForbidden)
			}
			return fmt.Errorf("failed to get auction %d: %w", auctionID, err)
		}

		updates := map[string]any{
			"winner_user_id": bid.UserID,
			"final_price":    bid.BidPrice,
		}
		if err := tx.Model(&auction).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to set winner on auction %d: %w", auctionID, err)
		}
		auction.WinnerUserID = &bid.UserID
		auction.FinalPrice = &bid.BidPrice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &auction, nil
}

// Close transitions an auction owned by ownerID to closed. Ownership
// mismatch reports forbidden, matching the winner-selection path.
func (r *GORMAuctionRepository) Close(auctionID, ownerID uint) error {
	result := r.db.Model(&models.Auction{}).
		Where("id = ? AND user_id = ?", auctionID, ownerID).
		Update("status", models.AuctionStatusClosed)
	if result.Error != nil {
		return fmt.Errorf("failed to close auction %d: %w", auctionID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("auction %d owner check: %w", auctionID, apperrors.ErrForbidden)
	}
	return nil
}

// ListBidAuctions returns the user's bids joined with the current state
// of their auctions, newest bid first.
func (r *GORMAuctionRepository) ListBidAuctions(userID uint) ([]models.BidAuctionRow, error) {
	var rows []models.BidAuctionRow
	err := r.db.Table("bids").
		Select(bidAuctionSelect).
		Joins("INNER JOIN auctions ON auctions.id = bids.auction_id").
		Joins("INNER JOIN items ON items.id = auctions.item_id").
		Where("bids.user_id = ? AND auctions.deleted_at IS NULL AND items.deleted_at IS NULL", userID).
		Order("bids.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bid history for user %d: %w", userID, err)
	}
	return rows, nil
}
