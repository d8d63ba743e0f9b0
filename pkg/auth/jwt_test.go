package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("secret", "game-1", "blue", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken: %v", err)
	}
	claims, err := ValidateSessionToken("secret", token)
	if err != nil {
		t.Fatalf("ValidateSessionToken: %v", err)
	}
	if claims.GameID != "game-1" || claims.Side != "blue" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		t.Fatalf("expected token id and expiry, got %+v", claims.RegisteredClaims)
	}
}

func TestSessionTokenRejected(t *testing.T) {
	token, _ := GenerateSessionToken("secret", "game-1", "blue", time.Hour)
	if _, err := ValidateSessionToken("other", token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
	if _, err := ValidateSessionToken("secret", "not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		GameID: "game-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, _ := expired.SignedString([]byte("secret"))
	if _, err := ValidateSessionToken("secret", signed); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expired token error, got %v", err)
	}

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{GameID: "game-1"})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if _, err := ValidateSessionToken("secret", unsigned); err == nil {
		t.Fatalf("expected unsigned token to be rejected")
	}
}

func TestGenerateTokenIsRandom(t *testing.T) {
	a, b := GenerateToken(), GenerateToken()
	if len(a) != 32 || a == b {
		t.Fatalf("unexpected tokens %q %q", a, b)
	}
}
