package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lelang/internal/services"
	"lelang/pkg/logging"
)

// BidHandler handles HTTP requests for bid placement and bid reads.
type BidHandler struct {
	bidService     *services.BidService
	auctionService *services.AuctionService
	validate       *validator.Validate
}

// NewBidHandler creates a new BidHandler.
func NewBidHandler(bidService *services.BidService, auctionService *services.AuctionService) *BidHandler {
	return &BidHandler{
		bidService:     bidService,
		auctionService: auctionService,
		validate:       validator.New(),
	}
}

// PlaceBidRequest is the body of POST /bids.
type PlaceBidRequest struct {
	AuctionID uint    `json:"auctionId" validate:"required,numeric"`
	BidPrice  float64 `json:"bidPrice" validate:"required,gt=0"`
}

// RegisterRoutes registers the bid routes with the Fiber app.
func (h *BidHandler) RegisterRoutes(router fiber.Router) {
	bidRoutes := router.Group("/bids")
	bidRoutes.Post("/", h.HandlePlaceBid)
	bidRoutes.Get("/mine", h.HandleMyBids)

	router.Get("/auctions/:id/bids", h.HandleListBids)
}

// HandlePlaceBid records a bid by the acting user on an open auction.
func (h *BidHandler) HandlePlaceBid(c *fiber.Ctx) error {
	var req PlaceBidRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	userID := actingUserID(c)
	bid, err := h.bidService.PlaceBid(req.AuctionID, userID, req.BidPrice)
	if err != nil {
		return respondServiceError(c, "HandlePlaceBid", err)
	}

	logging.Info("bid placed", map[string]any{
		"bid_id":     bid.ID,
		"auction_id": bid.AuctionID,
		"user_id":    userID,
		"bid_price":  bid.BidPrice,
	})
	return respondSuccess(c, fiber.StatusCreated, "Bid successfully placed", bid)
}

// HandleMyBids retrieves the acting user's bid history paired with the
// current state of each auction.
func (h *BidHandler) HandleMyBids(c *fiber.Ctx) error {
	entries, err := h.auctionService.MyBids(actingUserID(c))
	if err != nil {
		return respondServiceError(c, "HandleMyBids", err)
	}
	return respondSuccess(c, fiber.StatusOK, "OK", entries)
}

// HandleListBids retrieves all bids on an auction, highest first.
func (h *BidHandler) HandleListBids(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid auction ID")
	}

	bids, err := h.bidService.ListBids(id)
	if err != nil {
		return respondServiceError(c, "HandleListBids", err)
	}
	return respondSuccess(c, fiber.StatusOK, "OK", bids)
}
