package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/pixelgram/internal/service"
	"github.com/maheshrc27/pixelgram/internal/transfer"
)

type ProfileHandler struct {
	s service.ProfileService
}

func NewProfileHandler(service service.ProfileService) *ProfileHandler {
	return &ProfileHandler{s: service}
}

func (h *ProfileHandler) Search(c *fiber.Ctx) error {
	query := c.Query("query")
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 10)

	result, err := h.s.Search(c.Context(), query, page, pageSize)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	profileID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid profile id",
		})
	}

	profile, err := h.s.Get(c.Context(), GetRequester(c), profileID)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	profileID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid profile id",
		})
	}

	var update transfer.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	profile, err := h.s.Update(c.Context(), GetRequester(c), profileID, update)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) ListFollowers(c *fiber.Ctx) error {
	profileID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid profile id",
		})
	}

	followers, err := h.s.Followers(c.Context(), GetRequester(c), profileID)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(followers)
}

func (h *ProfileHandler) ListFollowings(c *fiber.Ctx) error {
	profileID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid profile id",
		})
	}

	followings, err := h.s.Followings(c.Context(), GetRequester(c), profileID)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(followings)
}

func (h *ProfileHandler) Follow(c *fiber.Ctx) error {
	profileID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid profile id",
		})
	}

	if err := h.s.Follow(c.Context(), GetRequester(c), profileID); err != nil {
		return handleError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *ProfileHandler) Unfollow(c *fiber.Ctx) error {
	profileID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid profile id",
		})
	}

	if err := h.s.Unfollow(c.Context(), GetRequester(c), profileID); err != nil {
		return handleError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
