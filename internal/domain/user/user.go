package user

import (
	"fmt"
	"strings"
	"time"
)

// User is the account holder. The password hash never leaves the domain
// and persistence layers.
type User struct {
	id           string
	fullName     string
	email        string
	gender       Gender
	phoneNumber  string
	passwordHash string
	profileImage string
	createdAt    time.Time
	lastLoginAt  *time.Time
	isActive     bool
}

// NewUser creates an active user. Email is trimmed but otherwise stored as given.
func NewUser(id, fullName, email string, gender Gender, phoneNumber, passwordHash string, now time.Time) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("user id is required")
	}
	if !gender.IsValid() {
		return nil, fmt.Errorf("invalid gender %q", gender)
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	return &User{
		id:           id,
		fullName:     strings.TrimSpace(fullName),
		email:        NormalizeEmail(email),
		gender:       gender,
		phoneNumber:  strings.TrimSpace(phoneNumber),
		passwordHash: passwordHash,
		createdAt:    now,
		isActive:     true,
	}, nil
}

// ReconstructUser rebuilds a user from persistence without validation.
func ReconstructUser(
	id, fullName, email string,
	gender Gender,
	phoneNumber, passwordHash, profileImage string,
	createdAt time.Time,
	lastLoginAt *time.Time,
	isActive bool,
) *User {
	return &User{
		id:           id,
		fullName:     fullName,
		email:        email,
		gender:       gender,
		phoneNumber:  phoneNumber,
		passwordHash: passwordHash,
		profileImage: profileImage,
		createdAt:    createdAt,
		lastLoginAt:  lastLoginAt,
		isActive:     isActive,
	}
}

// NormalizeEmail trims surrounding whitespace; case is preserved.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func (u *User) ID() string              { return u.id }
func (u *User) FullName() string        { return u.fullName }
func (u *User) Email() string           { return u.email }
func (u *User) Gender() Gender          { return u.gender }
func (u *User) PhoneNumber() string     { return u.phoneNumber }
func (u *User) PasswordHash() string    { return u.passwordHash }
func (u *User) ProfileImage() string    { return u.profileImage }
func (u *User) CreatedAt() time.Time    { return u.createdAt }
func (u *User) LastLoginAt() *time.Time { return u.lastLoginAt }
func (u *User) IsActive() bool          { return u.isActive }

// VerifyPassword checks password against the stored hash.
func (u *User) VerifyPassword(password string, hasher PasswordHasher) bool {
	return hasher.Verify(password, u.passwordHash)
}

// RecordLogin stamps the last successful login.
func (u *User) RecordLogin(at time.Time) {
	u.lastLoginAt = &at
}

// ReplacePasswordHash swaps in a rehashed password, e.g. after a scheme upgrade.
func (u *User) ReplacePasswordHash(hash string) {
	if hash != "" {
		u.passwordHash = hash
	}
}

// UpdateProfile overwrites the editable identity fields.
func (u *User) UpdateProfile(fullName, email string, gender Gender, phoneNumber string) error {
	if !gender.IsValid() {
		return fmt.Errorf("invalid gender %q", gender)
	}
	u.fullName = strings.TrimSpace(fullName)
	u.email = NormalizeEmail(email)
	u.gender = gender
	u.phoneNumber = strings.TrimSpace(phoneNumber)
	return nil
}

// SetProfileImage records the relative storage path of the new picture and
// returns the previous one (possibly "").
func (u *User) SetProfileImage(path string) string {
	prev := u.profileImage
	u.profileImage = path
	return prev
}

func (u *User) Deactivate() {
	u.isActive = false
}
