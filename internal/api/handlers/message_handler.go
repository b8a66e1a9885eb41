package handlers

import (
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/pixelgram/internal/service"
	"github.com/maheshrc27/pixelgram/internal/transfer"
)

type MessageHandler struct {
	s service.MessageService
}

func NewMessageHandler(service service.MessageService) *MessageHandler {
	return &MessageHandler{s: service}
}

// SendMessage accepts multipart form data so a message can carry media
// alongside its text and optional post or story reference.
func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	profileID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid profile id",
		})
	}

	creation := transfer.MessageCreation{
		Text: c.FormValue("text"),
	}
	if v := c.FormValue("post_id"); v != "" {
		creation.PostID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v := c.FormValue("story_id"); v != "" {
		creation.StoryID, _ = strconv.ParseInt(v, 10, 64)
	}

	var file *multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		if files := form.File["file"]; len(files) > 0 {
			file = files[0]
		}
	}

	message, err := h.s.Send(c.Context(), GetRequester(c), profileID, creation, file)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

// SendStoryMessage replies to a story; the message lands in the story
// owner's conversation with the requester.
func (h *MessageHandler) SendStoryMessage(c *fiber.Ctx) error {
	storyID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid story id",
		})
	}

	var file *multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		if files := form.File["file"]; len(files) > 0 {
			file = files[0]
		}
	}

	message, err := h.s.SendToStory(c.Context(), GetRequester(c), storyID, c.FormValue("text"), file)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

func (h *MessageHandler) ListConversation(c *fiber.Ctx) error {
	profileID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid profile id",
		})
	}

	messages, err := h.s.Conversation(c.Context(), GetRequester(c), profileID)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(messages)
}

func (h *MessageHandler) UpdateMessage(c *fiber.Ctx) error {
	messageID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid message id",
		})
	}

	var update transfer.MessageUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	message, err := h.s.Update(c.Context(), GetRequester(c), messageID, update.Text)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(message)
}

func (h *MessageHandler) RemoveMessage(c *fiber.Ctx) error {
	messageID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid message id",
		})
	}

	if err := h.s.Remove(c.Context(), GetRequester(c), messageID); err != nil {
		return handleError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
