package user

import (
	"fmt"
	"time"
)

// Session is a server-side login record. Only a hash of the bearer token is
// kept. Once deactivated or expired a session never becomes usable again.
type Session struct {
	ID             string
	UserID         string
	TokenHash      string
	CreatedAt      time.Time
	ExpiresAt      time.Time
	LastAccessedAt time.Time
	IPAddress      string
	UserAgent      string
	IsActive       bool
}

func NewSession(id, userID, tokenHash, ipAddress, userAgent string, now time.Time, lifetime time.Duration) (*Session, error) {
	if id == "" || userID == "" {
		return nil, fmt.Errorf("session id and user id are required")
	}
	if tokenHash == "" {
		return nil, fmt.Errorf("token hash is required")
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("session lifetime must be positive")
	}
	return &Session{
		ID:             id,
		UserID:         userID,
		TokenHash:      tokenHash,
		CreatedAt:      now,
		ExpiresAt:      now.Add(lifetime),
		LastAccessedAt: now,
		IPAddress:      truncate(ipAddress, 45),
		UserAgent:      truncate(userAgent, 512),
		IsActive:       true,
	}, nil
}

// IsExpired reports whether now is at or past the expiry instant.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// IsUsable is true only for an active session that has not yet expired.
func (s *Session) IsUsable(now time.Time) bool {
	return s.IsActive && !s.IsExpired(now)
}

// Touch moves LastAccessedAt forward to now; it never moves it back.
func (s *Session) Touch(now time.Time) {
	if now.After(s.LastAccessedAt) {
		s.LastAccessedAt = now
	}
}

func (s *Session) Deactivate() {
	s.IsActive = false
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
