package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/pixelgram/internal/models"
	"github.com/maheshrc27/pixelgram/internal/service"
	"github.com/maheshrc27/pixelgram/internal/transfer"
)

type CommentHandler struct {
	s  service.CommentService
	ls service.LikeService
}

func NewCommentHandler(service service.CommentService, likeService service.LikeService) *CommentHandler {
	return &CommentHandler{s: service, ls: likeService}
}

func (h *CommentHandler) UpdateComment(c *fiber.Ctx) error {
	commentID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid comment id",
		})
	}

	var update transfer.CommentUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	comment, err := h.s.Update(c.Context(), GetRequester(c), commentID, update.Text)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(comment)
}

func (h *CommentHandler) RemoveComment(c *fiber.Ctx) error {
	commentID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid comment id",
		})
	}

	if err := h.s.Remove(c.Context(), GetRequester(c), commentID); err != nil {
		return handleError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *CommentHandler) ToggleLike(c *fiber.Ctx) error {
	commentID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid comment id",
		})
	}

	result, err := h.ls.Toggle(c.Context(), GetRequester(c), models.LikeTargetComment, commentID)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}
