package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateToken creates a random 128-bit token id
func GenerateToken() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
