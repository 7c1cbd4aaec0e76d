package models

import "time"

// UserModel represents the database persistence model for users.
type UserModel struct {
	ID           string `gorm:"primarykey;size:36"`
	FullName     string `gorm:"size:255;not null"`
	Email        string `gorm:"size:255;not null;uniqueIndex:idx_users_email"`
	Gender       string `gorm:"size:16;not null"`
	PhoneNumber  string `gorm:"size:32"`
	PasswordHash string `gorm:"size:255;not null"`
	ProfileImage string `gorm:"size:512"`
	IsActive     bool   `gorm:"not null"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}
