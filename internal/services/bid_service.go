package services

import (
	"errors"
	"fmt"

	"lelang/internal/apperrors"
	"lelang/internal/models"
	"lelang/internal/repositories"
)

// BidService handles bid placement and bid reads. Bids are immutable
// once recorded.
type BidService struct {
	bidRepo     repositories.BidRepository
	auctionRepo repositories.AuctionRepository
}

// NewBidService creates a new BidService.
func NewBidService(bidRepo repositories.BidRepository, auctionRepo repositories.AuctionRepository) *BidService {
	return &BidService{
		bidRepo:     bidRepo,
		auctionRepo: auctionRepo,
	}
}

// PlaceBid validates and records a bid against an open auction. The
// price must reach the item's initial price and beat the current highest
// bid; auction owners cannot bid on their own auctions.
func (s *BidService) PlaceBid(auctionID, actingUserID uint, bidPrice float64) (*models.Bid, error) {
	auction, err := s.auctionRepo.GetAuction(auctionID, repositories.AuctionFilter{})
	if err != nil {
		return nil, err
	}
	if auction.Status != models.AuctionStatusOpen {
		return nil, fmt.Errorf("auction %d: %w", auctionID, apperrors.ErrAuctionClosed)
	}
	if auction.UserID == actingUserID {
		return nil, fmt.Errorf("auction %d: %w", auctionID, apperrors.ErrOwnAuction)
	}
	if bidPrice < auction.InitialPrice {
		return nil, fmt.Errorf("bid below initial price %.2f: %w", auction.InitialPrice, apperrors.ErrBidTooLow)
	}

	highest, err := s.bidRepo.GetHighest(auctionID)
	if err == nil {
		if bidPrice <= highest.BidPrice {
			return nil, fmt.Errorf("current highest bid is %.2f: %w", highest.BidPrice, apperrors.ErrBidTooLow)
		}
	} else if !errors.Is(err, apperrors.ErrNoBids) {
		return nil, err
	}

	bid := &models.Bid{
		AuctionID: auctionID,
		UserID:    actingUserID,
		BidPrice:  bidPrice,
	}
	if err := s.bidRepo.Create(bid); err != nil {
		return nil, err
	}
	return bid, nil
}

// ListBids returns all bids on an auction, highest price first.
func (s *BidService) ListBids(auctionID uint) ([]models.Bid, error) {
	if _, err := s.auctionRepo.GetAuction(auctionID, repositories.AuctionFilter{}); err != nil {
		return nil, err
	}

	bids, err := s.bidRepo.ListByAuction(auctionID)
	if err != nil {
		return nil, err
	}
	if len(bids) == 0 {
		return nil, fmt.Errorf("auction %d: %w", auctionID, apperrors.ErrNoBids)
	}
	return bids, nil
}
