package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lelang/internal/services"
	"lelang/pkg/logging"
)

// ItemHandler handles HTTP requests for the acting user's items.
type ItemHandler struct {
	service  *services.ItemService
	validate *validator.Validate
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *services.ItemService) *ItemHandler {
	return &ItemHandler{
		service:  service,
		validate: validator.New(),
	}
}

// CreateItemRequest is the body of POST /items.
type CreateItemRequest struct {
	ItemName     string  `json:"itemName" validate:"required,max=255"`
	Description  string  `json:"description" validate:"required"`
	InitialPrice float64 `json:"initialPrice" validate:"required,gt=0"`
}

// UpdateItemRequest is the body of PUT /items/:id. Absent fields keep
// the stored value.
type UpdateItemRequest struct {
	ItemName     *string  `json:"itemName" validate:"omitempty,max=255"`
	Description  *string  `json:"description"`
	InitialPrice *float64 `json:"initialPrice" validate:"omitempty,gt=0"`
}

// AttachImageRequest is the body of POST /items/:id/images. The file
// itself lives outside this service; only its stored name is recorded.
type AttachImageRequest struct {
	Filename string `json:"filename" validate:"required,max=255"`
}

// RegisterRoutes registers the item routes with the Fiber app.
func (h *ItemHandler) RegisterRoutes(router fiber.Router) {
	itemRoutes := router.Group("/items")
	itemRoutes.Get("/", h.HandleList)
	itemRoutes.Post("/", h.HandleCreate)
	itemRoutes.Get("/:id", h.HandleShow)
	itemRoutes.Put("/:id", h.HandleUpdate)
	itemRoutes.Delete("/:id", h.HandleDelete)
	itemRoutes.Post("/:id/images", h.HandleAttachImage)
}

// HandleList retrieves the acting user's items with their images.
func (h *ItemHandler) HandleList(c *fiber.Ctx) error {
	items, err := h.service.List(actingUserID(c))
	if err != nil {
		return respondServiceError(c, "HandleList", err)
	}
	return respondSuccess(c, fiber.StatusOK, "OK", items)
}

// HandleShow retrieves one of the acting user's items.
func (h *ItemHandler) HandleShow(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid item ID")
	}

	item, err := h.service.Get(id, actingUserID(c))
	if err != nil {
		return respondServiceError(c, "HandleShow", err)
	}
	return respondSuccess(c, fiber.StatusOK, "OK", item)
}

// HandleCreate records a new item owned by the acting user.
func (h *ItemHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	userID := actingUserID(c)
	if err := h.service.Create(userID, req.ItemName, req.Description, req.InitialPrice); err != nil {
		return respondServiceError(c, "HandleCreate", err)
	}

	logging.Info("item created", map[string]any{"user_id": userID, "item_name": req.ItemName})
	return respondSuccess(c, fiber.StatusCreated, "OK", nil)
}

// HandleUpdate applies a partial update to one of the acting user's
// items.
func (h *ItemHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid item ID")
	}

	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	upd := services.ItemUpdate{
		Name:         req.ItemName,
		Description:  req.Description,
		InitialPrice: req.InitialPrice,
	}
	if err := h.service.Update(id, actingUserID(c), upd); err != nil {
		return respondServiceError(c, "HandleUpdate", err)
	}
	return respondSuccess(c, fiber.StatusOK, "Item updated successfully", nil)
}

// HandleAttachImage records an image filename against one of the acting
// user's items.
func (h *ItemHandler) HandleAttachImage(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid item ID")
	}

	var req AttachImageRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	userID := actingUserID(c)
	if err := h.service.AddImage(id, userID, req.Filename); err != nil {
		return respondServiceError(c, "HandleAttachImage", err)
	}

	logging.Info("item image attached", map[string]any{"item_id": id, "user_id": userID, "filename": req.Filename})
	return respondSuccess(c, fiber.StatusCreated, "OK", nil)
}

// HandleDelete soft-deletes one of the acting user's items.
func (h *ItemHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid item ID")
	}

	if err := h.service.Delete(id, actingUserID(c)); err != nil {
		return respondServiceError(c, "HandleDelete", err)
	}
	return respondSuccess(c, fiber.StatusOK, "Item successfully deleted", nil)
}
