package user

import (
	"context"
	"time"
)

// Repository persists users. GetByEmail returns (nil, nil) when no user
// matches; GetByID returns a NotFound error.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// ExistsByEmail ignores the user with id excludeID ("" excludes nobody).
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	// UpdateProfile persists name, email, gender, phone and picture only.
	UpdateProfile(ctx context.Context, user *User) error
	// RecordLogin reports false when userID is not an active user.
	RecordLogin(ctx context.Context, userID string, at time.Time, passwordHash string) (bool, error)
	Deactivate(ctx context.Context, userID string) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	// GetByTokenHash returns (nil, nil) for an unknown hash.
	GetByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	// Touch persists a new LastAccessedAt, never moving it backwards.
	Touch(ctx context.Context, sessionID string, at time.Time) error
	// Deactivate reports whether an active session was switched off.
	Deactivate(ctx context.Context, sessionID string) (bool, error)
	DeactivateByUserID(ctx context.Context, userID string) (int64, error)
	// DeactivateExpired switches off active sessions expired at now.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

// PasswordHasher turns passwords into self-describing encoded hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

// RehashChecker is implemented by hashers that can tell an outdated encoding.
type RehashChecker interface {
	NeedsRehash(encoded string) bool
}
