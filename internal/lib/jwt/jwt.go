package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/IlyasAtabaev731/expense-tracker/internal/domain/models"
	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

type identityClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// NewToken issues an HS256 token that identifies user until duration elapses.
func NewToken(user *models.User, jwtSecret string, duration time.Duration) (string, error) {
	claims := identityClaims{
		UID:   user.ID,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
}

// ParseIdentity validates signature and expiry and returns the caller the token was issued to.
func ParseIdentity(tokenString string, secret string) (models.Identity, error) {
	var claims identityClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return models.Identity{}, err
	}
	if !token.Valid || claims.UID == "" {
		return models.Identity{}, ErrInvalidToken
	}

	return models.Identity{UserID: claims.UID, Email: claims.Email}, nil
}
