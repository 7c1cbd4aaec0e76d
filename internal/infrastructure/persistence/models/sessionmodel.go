package models

import "time"

// SessionModel represents the database persistence model for sessions.
// TokenHash is the SHA-256 hex digest of the cookie token.
type SessionModel struct {
	ID             string     `gorm:"primarykey;size:36"`
	UserID         string     `gorm:"size:36;not null;index"`
	User           *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	TokenHash      string     `gorm:"size:64;not null;uniqueIndex:idx_sessions_token_hash"`
	IPAddress      string     `gorm:"size:45"`
	UserAgent      string     `gorm:"size:512"`
	IsActive       bool       `gorm:"not null;index:idx_sessions_active_expires,priority:1"`
	ExpiresAt      time.Time  `gorm:"not null;index:idx_sessions_active_expires,priority:2"`
	LastAccessedAt time.Time  `gorm:"not null"`
	CreatedAt      time.Time
}

// TableName specifies the table name for GORM
func (SessionModel) TableName() string {
	return "sessions"
}
