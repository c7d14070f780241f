package services

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"lelang/internal/apperrors"
	"lelang/internal/models"
	"lelang/internal/repositories"
	"lelang/pkg/imageurl"
	"lelang/pkg/logging"
	"lelang/pkg/rabbitmq"
)

// EventPublisher is the subset of the RabbitMQ client the services need.
// A nil publisher disables event publication.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// AuctionService handles the auction lifecycle and the joined reads that
// back the public auction views.
type AuctionService struct {
	auctionRepo repositories.AuctionRepository
	itemRepo    repositories.ItemRepository
	userRepo    repositories.UserRepository
	imageRepo   repositories.ImageRepository
	urls        *imageurl.Builder
	publisher   EventPublisher
}

// NewAuctionService creates a new AuctionService.
func NewAuctionService(
	auctionRepo repositories.AuctionRepository,
	itemRepo repositories.ItemRepository,
	userRepo repositories.UserRepository,
	imageRepo repositories.ImageRepository,
	urls *imageurl.Builder,
	publisher EventPublisher,
) *AuctionService {
	return &AuctionService{
		auctionRepo: auctionRepo,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		imageRepo:   imageRepo,
		urls:        urls,
		publisher:   publisher,
	}
}

// ListOpen returns all open auctions, newest first.
func (s *AuctionService) ListOpen() ([]models.AuctionResponse, error) {
	return s.list(repositories.AuctionFilter{Status: models.AuctionStatusOpen})
}

// ListMine returns all auctions created by ownerID regardless of status.
func (s *AuctionService) ListMine(ownerID uint) ([]models.AuctionResponse, error) {
	return s.list(repositories.AuctionFilter{OwnerID: ownerID})
}

// ListHistory returns closed auctions, optionally narrowed to one owner.
func (s *AuctionService) ListHistory(ownerID uint) ([]models.AuctionResponse, error) {
	return s.list(repositories.AuctionFilter{Status: models.AuctionStatusClosed, OwnerID: ownerID})
}

// GetOpen returns one open auction by id.
func (s *AuctionService) GetOpen(id uint) (*models.AuctionResponse, error) {
	return s.get(id, models.AuctionStatusOpen)
}

// GetHistory returns one closed auction by id.
func (s *AuctionService) GetHistory(id uint) (*models.AuctionResponse, error) {
	return s.get(id, models.AuctionStatusClosed)
}

// Create opens a new auction for an item. The item must exist and belong
// to the acting user; anything else reads as item-not-found, including
// items owned by someone else.
func (s *AuctionService) Create(itemID, actingUserID uint) error {
	if _, err := s.itemRepo.GetOwned(itemID, actingUserID); err != nil {
		return err
	}

	auction := &models.Auction{
		ItemID: itemID,
		UserID: actingUserID,
		Status: models.AuctionStatusOpen,
	}
	if err := s.auctionRepo.Create(auction); err != nil {
		return err
	}

	s.publishEvent("auction.created", map[string]any{
		"auctionId": auction.ID,
		"itemId":    auction.ItemID,
		"userId":    auction.UserID,
		"status":    auction.Status,
	})
	return nil
}

// Update changes the status of an auction owned by the acting user. An
// empty status keeps the current one.
func (s *AuctionService) Update(id, actingUserID uint, status string) error {
	existing, err := s.auctionRepo.GetAuction(id, repositories.AuctionFilter{OwnerID: actingUserID})
	if err != nil {
		return err
	}
	if status == "" {
		status = existing.Status
	}
	return s.auctionRepo.UpdateStatus(id, actingUserID, status)
}

// Delete soft-deletes an auction owned by the acting user.
func (s *AuctionService) Delete(id, actingUserID uint) error {
	return s.auctionRepo.SoftDelete(id, actingUserID)
}

// SetWinner picks a winning bid for an auction owned by the acting user.
// The bid must exist on this auction; a missing bid reads as not-found
// before the ownership check, an ownership mismatch as forbidden. The
// status stays untouched.
func (s *AuctionService) SetWinner(id, bidID, actingUserID uint) error {
	auction, err := s.auctionRepo.SetWinner(id, actingUserID, bidID)
	if err != nil {
		return err
	}

	s.publishEvent("auction.winner_set", map[string]any{
		"auctionId":    auction.ID,
		"winnerUserId": auction.WinnerUserID,
		"finalPrice":   auction.FinalPrice,
	})
	return nil
}

// Close transitions an auction owned by the acting user to closed. No
// winner is required.
func (s *AuctionService) Close(id, actingUserID uint) error {
	if err := s.auctionRepo.Close(id, actingUserID); err != nil {
		return err
	}

	s.publishEvent("auction.closed", map[string]any{
		"auctionId": id,
		"status":    models.AuctionStatusClosed,
	})
	return nil
}

// MyBids returns the acting user's bid history as bid/auction pairs. The
// auction part reflects current state, not the state at bid time.
func (s *AuctionService) MyBids(actingUserID uint) ([]models.BidHistoryEntry, error) {
	rows, err := s.auctionRepo.ListBidAuctions(actingUserID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrNoBids
	}

	imagesByItem, err := s.imagesByItem()
	if err != nil {
		return nil, err
	}

	entries := make([]models.BidHistoryEntry, 0, len(rows))
	for _, row := range rows {
		var image *models.ImageURL
		if urls := imagesByItem[row.ItemID]; len(urls) > 0 {
			image = &urls[0]
		}
		entries = append(entries, models.NewBidHistoryEntry(row, image))
	}
	return entries, nil
}

// list runs a filtered joined read and shapes every row, resolving
// images and winners in bulk rather than per row.
func (s *AuctionService) list(filter repositories.AuctionFilter) ([]models.AuctionResponse, error) {
	rows, err := s.auctionRepo.ListAuctions(filter)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrNoAuctions
	}

	imagesByItem, err := s.imagesByItem()
	if err != nil {
		return nil, err
	}
	winners, err := s.winnersByID(rows)
	if err != nil {
		return nil, err
	}

	responses := make([]models.AuctionResponse, 0, len(rows))
	for _, row := range rows {
		var winner *models.User
		if row.WinnerUserID != nil {
			if u, ok := winners[*row.WinnerUserID]; ok {
				winner = &u
			}
		}
		responses = append(responses, models.NewAuctionResponse(row, winner, imagesByItem[row.ItemID]))
	}
	return responses, nil
}

// get fetches one joined row with a status filter and attaches its
// images and winner.
func (s *AuctionService) get(id uint, status string) (*models.AuctionResponse, error) {
	row, err := s.auctionRepo.GetAuction(id, repositories.AuctionFilter{Status: status})
	if err != nil {
		return nil, err
	}

	images, err := s.imageRepo.ListByItem(row.ItemID)
	if err != nil {
		return nil, err
	}
	var urls []models.ImageURL
	for _, img := range images {
		urls = append(urls, models.ImageURL{URL: s.urls.URL(img.Filename)})
	}

	var winner *models.User
	if row.WinnerUserID != nil {
		winner, err = s.userRepo.GetByID(*row.WinnerUserID)
		if err != nil {
			return nil, err
		}
	}

	resp := models.NewAuctionResponse(*row, winner, urls)
	return &resp, nil
}

// imagesByItem fetches every image once and groups the resolved URLs by
// item id. Items without images are simply absent, so lookups return a
// nil slice that serializes as null.
func (s *AuctionService) imagesByItem() (map[uint][]models.ImageURL, error) {
	images, err := s.imageRepo.ListAll()
	if err != nil {
		return nil, err
	}
	grouped := make(map[uint][]models.ImageURL)
	for _, img := range images {
		grouped[img.ItemID] = append(grouped[img.ItemID], models.ImageURL{URL: s.urls.URL(img.Filename)})
	}
	return grouped, nil
}

// winnersByID bulk-fetches the winner users referenced by the rows.
func (s *AuctionService) winnersByID(rows []models.AuctionRow) (map[uint]models.User, error) {
	seen := make(map[uint]bool)
	var ids []uint
	for _, row := range rows {
		if row.WinnerUserID != nil && !seen[*row.WinnerUserID] {
			seen[*row.WinnerUserID] = true
			ids = append(ids, *row.WinnerUserID)
		}
	}
	users, err := s.userRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

// publishEvent sends a lifecycle event best-effort. Publish failures are
// logged, never surfaced to the caller.
func (s *AuctionService) publishEvent(routingKey string, payload map[string]any) {
	if s.publisher == nil {
		return
	}
	payload["eventId"] = uuid.New().String()

	body, err := json.Marshal(payload)
	if err != nil {
		logging.Error("failed to marshal auction event", map[string]any{
			"routing_key": routingKey,
			"error":       err.Error(),
		})
		return
	}
	if err := s.publisher.Publish(rabbitmq.ExchangeAuctions, routingKey, body); err != nil {
		logging.Warn(fmt.Sprintf("failed to publish %s event", routingKey), map[string]any{
			"error": err.Error(),
		})
	}
}
