package auth

import (
	"fmt"
	"strings"

	"github.com/Siskaumami/Dip-N-Fly/internal/apperr"
	"github.com/Siskaumami/Dip-N-Fly/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUserRoleKey = "user_role"
	CtxUsernameKey = "username"
)

// Identity is what the rest of the app knows about the caller.
type Identity struct {
	ID       string          `json:"id"`
	Role     models.UserRole `json:"role"`
	Username string          `json:"username"`
}

func JWTMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return apperr.Unauthorized("Unauthorized")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return apperr.Unauthorized("Authorization must be 'Bearer <token>'")
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return apperr.Unauthorized("Invalid or expired token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return apperr.Unauthorized("Token could not be decoded")
		}

		c.Locals(CtxUserIDKey, claims.Subject)
		c.Locals(CtxUserRoleKey, claims.Role)
		c.Locals(CtxUsernameKey, claims.Username)

		return c.Next()
	}
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(CtxUserRoleKey).(models.UserRole)
		if !ok {
			return apperr.Unauthorized("Unauthorized")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return apperr.Forbidden("Forbidden")
	}
}

// IdentityFrom reads the identity JWTMiddleware stored on c.
func IdentityFrom(c *fiber.Ctx) Identity {
	id, _ := c.Locals(CtxUserIDKey).(string)
	role, _ := c.Locals(CtxUserRoleKey).(models.UserRole)
	username, _ := c.Locals(CtxUsernameKey).(string)
	return Identity{ID: id, Role: role, Username: username}
}
