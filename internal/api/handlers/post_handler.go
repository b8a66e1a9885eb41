package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/pixelgram/internal/models"
	"github.com/maheshrc27/pixelgram/internal/service"
	"github.com/maheshrc27/pixelgram/internal/transfer"
)

type PostHandler struct {
	s  service.PostService
	ls service.LikeService
}

func NewPostHandler(service service.PostService, likeService service.LikeService) *PostHandler {
	return &PostHandler{s: service, ls: likeService}
}

// ListPosts returns the paginated feed of posts from open profiles.
func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 10)

	result, err := h.s.ListOpen(c.Context(), page, pageSize)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
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

	post, err := h.s.Create(c.Context(), userID, caption, files[0])
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	post, err := h.s.Get(c.Context(), GetRequester(c), postID)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	var update transfer.PostUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	post, err := h.s.UpdateCaption(c.Context(), GetRequester(c), postID, update.Caption)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(post)
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	if err := h.s.Remove(c.Context(), GetRequester(c), postID); err != nil {
		return handleError(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *PostHandler) ListLikes(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	likes, err := h.s.Likes(c.Context(), GetRequester(c), postID)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(likes)
}

// ToggleLike flips the requester's like on the post and reports the
// resulting state.
func (h *PostHandler) ToggleLike(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	result, err := h.ls.Toggle(c.Context(), GetRequester(c), models.LikeTargetPost, postID)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PostHandler) ListComments(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	comments, err := h.s.Comments(c.Context(), GetRequester(c), postID)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(comments)
}

func (h *PostHandler) AddComment(c *fiber.Ctx) error {
	postID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	var creation transfer.CommentCreation
	if err := c.BodyParser(&creation); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	comment, err := h.s.AddComment(c.Context(), GetRequester(c), postID, creation.Text)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}
