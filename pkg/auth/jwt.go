package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims bind a bearer to one game session and the side they play in it.
type Claims struct {
	GameID string `json:"gameId"`
	Side   string `json:"side"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a token for gameID. A ttl of zero means the
// token never expires; the session itself still ages out.
func GenerateSessionToken(secret, gameID, side string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		GameID: gameID,
		Side:   side,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       GenerateToken(),
			Subject:  gameID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateSessionToken checks the signature and expiry and returns the claims
func ValidateSessionToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.GameID != "" {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
