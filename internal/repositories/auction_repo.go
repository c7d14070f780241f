package repositories

import (
	"lelang/internal/models"
)

// AuctionFilter narrows the joined auction reads. Zero values mean "no
// filter" for the respective field.
type AuctionFilter struct {
	Status  string // "open", "closed" or "" for any
	OwnerID uint   // auction creator, 0 for any
}

// AuctionRepository defines the interface for auction data access.
// Reads go through the items ⋈ auctions ⋈ users join and exclude
// soft-deleted items and users; absence of rows is reported via the
// apperrors sentinels, never as a raw driver error.
type AuctionRepository interface {
	GetAuction(id uint, filter AuctionFilter) (*models.AuctionRow, error)
	ListAuctions(filter AuctionFilter) ([]models.AuctionRow, error)
	Create(auction *models.Auction) error
	UpdateStatus(id, ownerID uint, status string) error
	SoftDelete(id, ownerID uint) error
	SetWinner(auctionID, ownerID, bidID uint) (*models.Auction, error)
	Close(auctionID, ownerID uint) error
	ListBidAuctions(userID uint) ([]models.BidAuctionRow, error)
}
