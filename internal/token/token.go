package token

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/akorbut/storefront/internal/domain/models"
	"github.com/golang-jwt/jwt/v5"
)

// New generates a signed JWT for the given user with the given lifetime.
// The signing secret is taken from the JWT_SECRET environment variable.
func New(ctx context.Context, user *models.User, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"role":  user.Role,
		"email": user.Email,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	secretStr := os.Getenv("JWT_SECRET")
	if secretStr == "" {
		return "", errors.New("JWT_SECRET environment variable is not set")
	}
	secret := []byte(secretStr)
	return token.SignedString(secret)
}
