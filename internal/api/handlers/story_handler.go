package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/pixelgram/internal/models"
	"github.com/maheshrc27/pixelgram/internal/service"
	"github.com/maheshrc27/pixelgram/internal/transfer"
)

type StoryHandler struct {
	s  service.StoryService
	ls service.LikeService
}

func NewStoryHandler(service service.StoryService, likeService service.LikeService) *StoryHandler {
	return &StoryHandler{s: service, ls: likeService}
}

// ListStories returns unexpired stories from open profiles.
func (h *StoryHandler) ListStories(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 10)

	result, err := h.s.ListOpenActive(c.Context(), page, pageSize)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *StoryHandler) CreateStory(c *fiber.Ctx) error {
	userID := GetUserID(c)
	caption := c.FormValue("caption")

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse form",
		})
	}

	files := form.File["file"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file selected",
		})
	}

	story, err := h.s.Create(c.Context(), userID, caption, files[0])
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(story)
}

func (h *StoryHandler) GetStory(c *fiber.Ctx) error {
	storyID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid story id",
		})
	}

	story, err := h.s.Get(c.Context(), GetRequester(c), storyID)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(story)
}

func (h *StoryHandler) RemoveStory(c *fiber.Ctx) error {
	storyID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid story id",
		})
	}

	if err := h.s.Remove(c.Context(), GetRequester(c), storyID); err != nil {
		return handleError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *StoryHandler) ListLikes(c *fiber.Ctx) error {
	storyID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid story id",
		})
	}

	likes, err := h.s.Likes(c.Context(), GetRequester(c), storyID)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(likes)
}

func (h *StoryHandler) ToggleLike(c *fiber.Ctx) error {
	storyID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid story id",
		})
	}

	result, err := h.ls.Toggle(c.Context(), GetRequester(c), models.LikeTargetStory, storyID)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *StoryHandler) ListComments(c *fiber.Ctx) error {
	storyID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid story id",
		})
	}

	comments, err := h.s.Comments(c.Context(), GetRequester(c), storyID)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(comments)
}

func (h *StoryHandler) AddComment(c *fiber.Ctx) error {
	storyID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid story id",
		})
	}

	var creation transfer.CommentCreation
	if err := c.BodyParser(&creation); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	comment, err := h.s.AddComment(c.Context(), GetRequester(c), storyID, creation.Text)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}
