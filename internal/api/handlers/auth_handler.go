package handlers

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	config "github.com/maheshrc27/pixelgram/configs"
	"github.com/maheshrc27/pixelgram/internal/models"
	"github.com/maheshrc27/pixelgram/internal/queue"
	"github.com/maheshrc27/pixelgram/internal/service"
	"github.com/maheshrc27/pixelgram/internal/transfer"
	"github.com/maheshrc27/pixelgram/pkg/utils"
)

type AuthHandler struct {
	s           service.AuthService
	cfg         config.Config
	AsynqClient *asynq.Client
}

func NewAuthHandler(cfg config.Config, service service.AuthService, asynqClient *asynq.Client) *AuthHandler {
	return &AuthHandler{s: service, cfg: cfg, AsynqClient: asynqClient}
}

func (h *AuthHandler) setTokenCookie(c *fiber.Ctx, user *models.User) (string, error) {
	token, err := utils.GenerateToken(h.cfg.SecretKey, fmt.Sprintf("%d", user.ID), user.IsStaff, 24*time.Hour)
	if err != nil {
		return "", err
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   false,
		SameSite: fiber.CookieSameSiteNoneMode,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return token, nil
}

// RequestOTP issues a registration code and queues the delivery email.
func (h *AuthHandler) RequestOTP(c *fiber.Ctx) error {
	var req transfer.OTPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	code, err := h.s.RequestOTP(c.Context(), req)
	if err != nil {
		return handleError(c, err)
	}

	err = queue.EnqueueEmail(h.AsynqClient, queue.TaskTypeSendOTP, queue.EmailPayload{
		Email: req.Email,
		Code:  code,
	})
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to send verification code",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Verification code sent",
	})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var reg transfer.Registration
	if err := c.BodyParser(&reg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	user, err := h.s.Register(c.Context(), reg)
	if err != nil {
		return handleError(c, err)
	}

	token, err := h.setTokenCookie(c, user)
	if err != nil {
		return handleError(c, err)
	}

	err = queue.EnqueueEmail(h.AsynqClient, queue.TaskTypeSendWelcome, queue.EmailPayload{
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		slog.Info(err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var login transfer.Login
	if err := c.BodyParser(&login); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	user, err := h.s.Login(c.Context(), login)
	if err != nil {
		return handleError(c, err)
	}

	token, err := h.setTokenCookie(c, user)
	if err != nil {
		return handleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout revokes the presented token and clears the cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	tokenString, _ := c.Locals("token").(string)
	if tokenString != "" {
		if err := h.s.RevokeToken(c.Context(), tokenString); err != nil {
			slog.Info(err.Error())
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:   h.cfg.CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1, // Delete cookie
	})

	return c.SendStatus(fiber.StatusOK)
}

func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	authURL := "https://accounts.google.com/o/oauth2/v2/auth"
	params := url.Values{}
	params.Add("client_id", h.cfg.GoogleClientID)
	params.Add("redirect_uri", h.cfg.GoogleRedirectURI)
	params.Add("response_type", "code")
	params.Add("scope", "https://www.googleapis.com/auth/userinfo.profile https://www.googleapis.com/auth/userinfo.email")
	params.Add("access_type", "offline")

	fullURL := fmt.Sprintf("%s?%s", authURL, params.Encode())
	return c.Redirect(fullURL)
}

func (h *AuthHandler) GoogleLoginCallback(c *fiber.Ctx) error {
	code := c.Query("code")

	user, err := h.s.GoogleLoginCallback(c.Context(), code)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	if _, err := h.setTokenCookie(c, user); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	return c.Redirect(h.cfg.FrontendURL, fiber.StatusTemporaryRedirect)
}
