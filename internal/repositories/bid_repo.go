package repositories

import (
	"lelang/internal/models"
)

// BidRepository defines the interface for bid data access. Bids are
// append-only; there is no update or delete.
type BidRepository interface {
	Create(bid *models.Bid) error
	ListByAuction(auctionID uint) ([]models.Bid, error)
	GetHighest(auctionID uint) (*models.Bid, error)
}
