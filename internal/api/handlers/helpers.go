package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/pixelgram/internal/apperr"
	"github.com/maheshrc27/pixelgram/internal/authz"
)

func GetUserID(c *fiber.Ctx) int64 {
	value, ok := c.Locals("user_id").(string)
	if !ok {
		return 0
	}
	userID, _ := strconv.Atoi(value)
	return int64(userID)
}

// GetRequester builds the requester identity from what the middleware
// stored. Requests without a token come out anonymous.
func GetRequester(c *fiber.Ctx) authz.Requester {
	isStaff, _ := c.Locals("is_staff").(bool)
	return authz.Requester{
		ID:      GetUserID(c),
		IsStaff: isStaff,
	}
}

// handleError maps the service error taxonomy onto HTTP statuses.
func handleError(c *fiber.Ctx, err error) error {
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ve.Message,
			"field": ve.Field,
		})
	}

	var de *apperr.DeniedError
	if errors.As(err, &de) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":  "not allowed",
			"reason": de.Reason,
		})
	}

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "not found",
		})
	case errors.Is(err, apperr.ErrAuthentication):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "authentication required",
		})
	case errors.Is(err, apperr.ErrInvalidOTP):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid or expired code",
		})
	case errors.Is(err, apperr.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid email or password",
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "something went wrong",
	})
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
