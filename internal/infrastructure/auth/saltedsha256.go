package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
)

const saltSize = 16

// SaltedSHA256Hasher reproduces the legacy account store encoding:
// base64(salt) ":" base64(SHA-256(password + base64(salt))).
// It is kept so accounts imported from that store can still sign in.
type SaltedSHA256Hasher struct{}

func NewSaltedSHA256Hasher() *SaltedSHA256Hasher {
	return &SaltedSHA256Hasher{}
}

func (h *SaltedSHA256Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	encodedSalt := base64.StdEncoding.EncodeToString(salt)
	return encodedSalt + ":" + digest(password, encodedSalt), nil
}

// Verify returns false for anything that is not a well-formed salt:digest pair.
func (h *SaltedSHA256Hasher) Verify(password, encoded string) bool {
	encodedSalt, want, ok := strings.Cut(encoded, ":")
	if !ok || encodedSalt == "" || want == "" || strings.Contains(want, ":") {
		return false
	}
	if _, err := base64.StdEncoding.DecodeString(encodedSalt); err != nil {
		return false
	}
	got := digest(password, encodedSalt)
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func digest(password, encodedSalt string) string {
	sum := sha256.Sum256([]byte(password + encodedSalt))
	return base64.StdEncoding.EncodeToString(sum[:])
}
