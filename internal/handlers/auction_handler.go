package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lelang/internal/services"
	"lelang/pkg/logging"
)

// AuctionHandler handles HTTP requests for the auction lifecycle.
type AuctionHandler struct {
	service  *services.AuctionService
	validate *validator.Validate
}

// NewAuctionHandler creates a new AuctionHandler.
func NewAuctionHandler(service *services.AuctionService) *AuctionHandler {
	return &AuctionHandler{
		service:  service,
		validate: validator.New(),
	}
}

// CreateAuctionRequest is the body of POST /auctions.
type CreateAuctionRequest struct {
	ItemID uint `json:"itemId" validate:"required,numeric"`
}

// UpdateAuctionRequest is the body of PUT /auctions/:id. An empty status
// keeps the current one.
type UpdateAuctionRequest struct {
	Status string `json:"status" validate:"omitempty,oneof=open closed"`
}

// SetWinnerRequest is the body of PUT /auctions/:id/winner.
type SetWinnerRequest struct {
	BidID uint `json:"bidId" validate:"required,numeric"`
}

// RegisterRoutes registers the auction routes with the Fiber app. The
// static paths go first so they are not swallowed by /:id.
func (h *AuctionHandler) RegisterRoutes(router fiber.Router) {
	auctionRoutes := router.Group("/auctions")
	auctionRoutes.Get("/mine", h.HandleMyAuctions)
	auctionRoutes.Get("/history", h.HandleHistory)
	auctionRoutes.Get("/history/:id", h.HandleShowHistory)
	auctionRoutes.Get("/", h.HandleList)
	auctionRoutes.Post("/", h.HandleCreate)
	auctionRoutes.Get("/:id", h.HandleShow)
	auctionRoutes.Put("/:id", h.HandleUpdate)
	auctionRoutes.Delete("/:id", h.HandleDelete)
	auctionRoutes.Put("/:id/winner", h.HandleSetWinner)
	auctionRoutes.Put("/:id/close", h.HandleClose)
}

// HandleList retrieves all open auctions.
func (h *AuctionHandler) HandleList(c *fiber.Ctx) error {
	auctions, err := h.service.ListOpen()
	if err != nil {
		return respondServiceError(c, "HandleList", err)
	}
	return respondSuccess(c, fiber.StatusOK, "OK", auctions)
}

// HandleShow retrieves a single open auction.
func (h *AuctionHandler) HandleShow(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid auction ID")
	}

	auction, err := h.service.GetOpen(id)
	if err != nil {
		return respondServiceError(c, "HandleShow", err)
	}
	return respondSuccess(c, fiber.StatusOK, "OK", auction)
}

// HandleCreate opens a new auction on one of the acting user's items.
// The response carries no created-resource body.
func (h *AuctionHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateAuctionRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	userID := actingUserID(c)
	if err := h.service.Create(req.ItemID, userID); err != nil {
		return respondServiceError(c, "HandleCreate", err)
	}

	logging.Info("auction created", map[string]any{"item_id": req.ItemID, "user_id": userID})
	return respondSuccess(c, fiber.StatusCreated, "OK", nil)
}

// HandleUpdate changes the status of one of the acting user's auctions.
func (h *AuctionHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid auction ID")
	}

	var req UpdateAuctionRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.service.Update(id, actingUserID(c), req.Status); err != nil {
		return respondServiceError(c, "HandleUpdate", err)
	}
	return respondSuccess(c, fiber.StatusOK, "Auction updated successfully", nil)
}

// HandleDelete soft-deletes one of the acting user's auctions.
func (h *AuctionHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid auction ID")
	}

	if err := h.service.Delete(id, actingUserID(c)); err != nil {
		return respondServiceError(c, "HandleDelete", err)
	}
	return respondSuccess(c, fiber.StatusOK, "Auction successfully deleted", nil)
}

// HandleMyAuctions retrieves the acting user's auctions in any status.
func (h *AuctionHandler) HandleMyAuctions(c *fiber.Ctx) error {
	auctions, err := h.service.ListMine(actingUserID(c))
	if err != nil {
		return respondServiceError(c, "HandleMyAuctions", err)
	}
	return respondSuccess(c, fiber.StatusOK, "OK", auctions)
}

// HandleHistory retrieves closed auctions, optionally filtered with the
// userId query parameter.
func (h *AuctionHandler) HandleHistory(c *fiber.Ctx) error {
	// Negative values would wrap around on the uint conversion; treat
	// them like an absent filter.
	var ownerID uint
	if v := c.QueryInt("userId", 0); v > 0 {
		ownerID = uint(v)
	}

	auctions, err := h.service.ListHistory(ownerID)
	if err != nil {
		return respondServiceError(c, "HandleHistory", err)
	}
	return respondSuccess(c, fiber.StatusOK, "OK", auctions)
}

// HandleShowHistory retrieves a single closed auction.
func (h *AuctionHandler) HandleShowHistory(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid auction ID")
	}

	auction, err := h.service.GetHistory(id)
	if err != nil {
		return respondServiceError(c, "HandleShowHistory", err)
	}
	return respondSuccess(c, fiber.StatusOK, "OK", auction)
}

// HandleSetWinner attaches a winning bid to one of the acting user's
// auctions.
func (h *AuctionHandler) HandleSetWinner(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid auction ID")
	}

	var req SetWinnerRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	userID := actingUserID(c)
	if err := h.service.SetWinner(id, req.BidID, userID); err != nil {
		return respondServiceError(c, "HandleSetWinner", err)
	}

	logging.Info("auction winner set", map[string]any{
		"auction_id": id,
		"bid_id":     req.BidID,
		"user_id":    userID,
	})
	return respondSuccess(c, fiber.StatusOK, "Auction winner successfully added", nil)
}

// HandleClose transitions one of the acting user's auctions to closed.
func (h *AuctionHandler) HandleClose(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid auction ID")
	}

	userID := actingUserID(c)
	if err := h.service.Close(id, userID); err != nil {
		return respondServiceError(c, "HandleClose", err)
	}

	logging.Info("auction closed", map[string]any{"auction_id": id, "user_id": userID})
	return respondSuccess(c, fiber.StatusOK, "Auction status successfully changed", nil)
}
