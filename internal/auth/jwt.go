package auth

import (
	"time"

	"github.com/Siskaumami/Dip-N-Fly/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const TokenTTL = 12 * time.Hour

type JWTCustomClaims struct {
	Role     models.UserRole `json:"role"`
	Username string          `json:"username"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, user *models.User, now time.Time) (string, error) {
	claims := &JWTCustomClaims{
		Role:     user.Role,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
