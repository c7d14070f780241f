package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"lelang/internal/apperrors"
	"lelang/pkg/logging"
)

// Every response, success or failure, uses the same envelope:
// {status, messages:{success|error}, data?}. Validation failures put the
// per-field messages directly under messages.

func respondSuccess(c *fiber.Ctx, status int, message string, data any) error {
	body := fiber.Map{
		"status":   status,
		"messages": fiber.Map{"success": message},
	}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":   status,
		"messages": fiber.Map{"error": message},
	})
}

// respondValidationErrors converts validator failures into a 422
// envelope with one message per field.
func respondValidationErrors(c *fiber.Ctx, err error) error {
	fields := fiber.Map{}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	} else {
		fields["error"] = err.Error()
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"status":   fiber.StatusUnprocessableEntity,
		"messages": fields,
	})
}

// mapError translates service errors into an HTTP status and public
// message. Anything unrecognized is a server error.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrNoAuctions):
		return fiber.StatusNotFound, "Auctions not found"
	case errors.Is(err, apperrors.ErrAuctionNotFound):
		return fiber.StatusNotFound, "Auction not found"
	case errors.Is(err, apperrors.ErrItemNotFound):
		return fiber.StatusNotFound, "Item not found"
	case errors.Is(err, apperrors.ErrNoItems):
		return fiber.StatusNotFound, "Items not found"
	case errors.Is(err, apperrors.ErrBidNotFound):
		return fiber.StatusNotFound, "Bid not found"
	case errors.Is(err, apperrors.ErrNoBids):
		return fiber.StatusNotFound, "Bids not found"
	case errors.Is(err, apperrors.ErrUserNotFound):
		return fiber.StatusNotFound, "User not found"
	case errors.Is(err, apperrors.ErrForbidden):
		return fiber.StatusForbidden, "Access Forbidden"
	case errors.Is(err, apperrors.ErrAuctionClosed):
		return fiber.StatusConflict, "Auction is closed"
	case errors.Is(err, apperrors.ErrBidTooLow):
		return fiber.StatusConflict, "Bid price too low"
	case errors.Is(err, apperrors.ErrOwnAuction):
		return fiber.StatusForbidden, "Cannot bid on your own auction"
	case errors.Is(err, apperrors.ErrUsernameTaken):
		return fiber.StatusConflict, "Username already taken"
	case errors.Is(err, apperrors.ErrEmailTaken):
		return fiber.StatusConflict, "Email already registered"
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}

// respondServiceError maps the error, logs server-side failures with
// their cause, and writes the error envelope.
func respondServiceError(c *fiber.Ctx, handlerName string, err error) error {
	status, message := mapError(err)
	if status == fiber.StatusInternalServerError {
		logging.Error(handlerName+": unexpected error", map[string]any{
			"path":  c.Path(),
			"error": err.Error(),
		})
	} else {
		logging.Warn(handlerName+": "+message, map[string]any{
			"path":  c.Path(),
			"error": err.Error(),
		})
	}
	return respondError(c, status, message)
}

// actingUserID returns the authenticated user id the middleware stored
// on the request. Zero means no user, which fails every ownership check.
func actingUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("user_id").(uint)
	return id
}

// parseIDParam parses a numeric route parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s parameter %q", name, raw)
	}
	return uint(id), nil
}
