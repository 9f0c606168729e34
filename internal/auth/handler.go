package auth

import (
	"strings"
	"time"

	"github.com/Siskaumami/Dip-N-Fly/internal/database"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/login
func LoginHandler(secret string, db *database.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "username & password required")
		}

		snap := db.Snapshot()
		idx, ok := snap.FindUser(body.Username)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}
		user := snap.Users[idx]

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}

		token, err := GenerateToken(secret, &user, time.Now())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Token could not be created")
		}

		return c.JSON(fiber.Map{
			"token":    token,
			"role":     user.Role,
			"username": user.Username,
		})
	}
}

// GET /api/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user": IdentityFrom(c)})
	}
}
