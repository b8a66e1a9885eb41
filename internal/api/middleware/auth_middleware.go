package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/pixelgram/configs"
	"github.com/maheshrc27/pixelgram/internal/service"
	"github.com/maheshrc27/pixelgram/pkg/utils"
)

type AuthMiddleware struct {
	s   service.AuthService
	cfg config.Config
}

func NewAuthMiddleware(cfg config.Config, service service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{s: service, cfg: cfg}
}

func (m *AuthMiddleware) token(c *fiber.Ctx) string {
	tokenString := c.Cookies(m.cfg.CookieName)
	if tokenString != "" {
		return tokenString
	}

	header := c.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func (m *AuthMiddleware) authenticate(c *fiber.Ctx, tokenString string) error {
	claims, err := utils.ValidateToken(m.cfg.SecretKey, tokenString)
	if err != nil {
		c.Cookie(&fiber.Cookie{
			Name:   m.cfg.CookieName,
			Value:  "",
			Path:   "/",
			MaxAge: -1, // Delete cookie
		})

		log.Printf("Token validation failed: %v", err)
		return err
	}

	revoked, err := m.s.IsTokenRevoked(c.Context(), tokenString)
	if err != nil {
		return err
	}
	if revoked {
		return fiber.NewError(fiber.StatusUnauthorized, "token revoked")
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("is_staff", claims.IsStaff)
	c.Locals("token", tokenString)
	return nil
}

// AuthMiddleware rejects requests without a valid, unrevoked token.
func (m *AuthMiddleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := m.token(c)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing token or cookies",
			})
		}

		if err := m.authenticate(c, tokenString); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}
		return c.Next()
	}
}

// OptionalAuthMiddleware identifies the requester when a token is
// present but lets anonymous requests through. Public listings and
// profile views use it so visibility rules, not the router, decide.
func (m *AuthMiddleware) OptionalAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := m.token(c)
		if tokenString != "" {
			if err := m.authenticate(c, tokenString); err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid or expired token",
				})
			}
		}
		return c.Next()
	}
}
