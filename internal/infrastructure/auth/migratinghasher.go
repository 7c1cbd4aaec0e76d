package auth

import (
	"medrecords/internal/domain/user"
	"medrecords/internal/shared/config"
)

// MigratingPasswordHasher hashes with one primary scheme and verifies both
// bcrypt and legacy salted SHA-256 encodings, telling them apart by the
// bcrypt "$2" prefix.
type MigratingPasswordHasher struct {
	primary user.PasswordHasher
	bcrypt  *BcryptPasswordHasher
	legacy  *SaltedSHA256Hasher
	scheme  string
}

// NewPasswordHasher builds the hasher selected by cfg.Scheme (bcrypt by default).
func NewPasswordHasher(cfg config.PasswordConfig) *MigratingPasswordHasher {
	h := &MigratingPasswordHasher{
		bcrypt: NewBcryptPasswordHasher(cfg.BcryptCost),
		legacy: NewSaltedSHA256Hasher(),
		scheme: cfg.Scheme,
	}
	if cfg.Scheme == config.PasswordSchemeSHA256 {
		h.primary = h.legacy
	} else {
		h.scheme = config.PasswordSchemeBcrypt
		h.primary = h.bcrypt
	}
	return h
}

func (h *MigratingPasswordHasher) Hash(password string) (string, error) {
	return h.primary.Hash(password)
}

func (h *MigratingPasswordHasher) Verify(password, encoded string) bool {
	if isBcryptHash(encoded) {
		return h.bcrypt.Verify(password, encoded)
	}
	return h.legacy.Verify(password, encoded)
}

// NeedsRehash reports whether encoded was produced by a scheme other than
// the primary one.
func (h *MigratingPasswordHasher) NeedsRehash(encoded string) bool {
	if h.scheme == config.PasswordSchemeBcrypt {
		return !isBcryptHash(encoded)
	}
	return isBcryptHash(encoded)
}
