package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const sessionTokenBytes = 32

// SessionTokenGenerator mints opaque bearer tokens. Only the SHA-256 hex
// digest of a token is ever persisted.
type SessionTokenGenerator struct{}

func NewSessionTokenGenerator() *SessionTokenGenerator {
	return &SessionTokenGenerator{}
}

// Generate returns a 256-bit random token (hex) and its storage hash.
func (g *SessionTokenGenerator) Generate() (plainToken, tokenHash string, err error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("failed to generate session token: %w", err)
	}
	plainToken = hex.EncodeToString(b)
	return plainToken, g.Hash(plainToken), nil
}

// Hash returns the storage form of a presented token.
func (g *SessionTokenGenerator) Hash(plainToken string) string {
	sum := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(sum[:])
}
