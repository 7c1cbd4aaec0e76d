package dto

import (
	"time"

	"medrecords/internal/domain/user"
)

// StaticFilesPrefix is where profile pictures are served from.
const StaticFilesPrefix = "/staticfiles/"

// UserResponse is the public view of a user. It never carries the password hash.
type UserResponse struct {
	ID           string     `json:"id"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	Gender       string     `json:"gender"`
	PhoneNumber  string     `json:"phone_number"`
	ProfileImage string     `json:"profile_image"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// LoginResponse is returned by the login endpoint. The token is also set
// as the session cookie.
type LoginResponse struct {
	User         *UserResponse `json:"user"`
	SessionToken string        `json:"session_token"`
	ExpiresAt    time.Time     `json:"expires_at"`
}

// ToUserResponse converts a user to its public view. The profile image is
// returned as a URL under /staticfiles.
func ToUserResponse(u *user.User) *UserResponse {
	if u == nil {
		return nil
	}
	resp := &UserResponse{
		ID:          u.ID(),
		FullName:    u.FullName(),
		Email:       u.Email(),
		Gender:      u.Gender().String(),
		PhoneNumber: u.PhoneNumber(),
		CreatedAt:   u.CreatedAt(),
		LastLoginAt: u.LastLoginAt(),
	}
	if p := u.ProfileImage(); p != "" {
		resp.ProfileImage = StaticFilesPrefix + p
	}
	return resp
}
