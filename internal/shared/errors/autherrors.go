package errors

import (
	stderrors "errors"
	"net/http"
)

const (
	ErrorTypeInvalidCredentials ErrorType = "invalid_credentials"
	ErrorTypeSessionInvalid     ErrorType = "session_invalid"
)

// AuthError carries logging hints alongside the AppError
type AuthError struct {
	*AppError
	// ShouldLog is false for expected failures such as a wrong password
	ShouldLog bool
	// SecurityEvent marks failures worth counting for brute force detection
	SecurityEvent bool
}

func (e *AuthError) Error() string {
	return e.AppError.Error()
}

// Unwrap lets errors.As reach the embedded AppError
func (e *AuthError) Unwrap() error {
	return e.AppError
}

// NewInvalidCredentialsError is used for unknown email, inactive account and
// wrong password alike so callers cannot tell which one happened.
func NewInvalidCredentialsError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeInvalidCredentials,
			Message: "Invalid email or password",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: true,
	}
}

// NewSessionInvalidError covers unknown, revoked and expired session tokens.
func NewSessionInvalidError() *AuthError {
	return &AuthError{
		AppError: &AppError{
			Type:    ErrorTypeSessionInvalid,
			Message: "Not authenticated",
			Code:    http.StatusUnauthorized,
		},
		ShouldLog:     false,
		SecurityEvent: false,
	}
}

func GetAuthError(err error) *AuthError {
	var authErr *AuthError
	if stderrors.As(err, &authErr) {
		return authErr
	}
	return nil
}

// ShouldLogAuthError defaults to true for anything that is not an AuthError
func ShouldLogAuthError(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.ShouldLog
	}
	return true
}

func IsSecurityEvent(err error) bool {
	if authErr := GetAuthError(err); authErr != nil {
		return authErr.SecurityEvent
	}
	return false
}

func IsInvalidCredentialsError(err error) bool { return isType(err, ErrorTypeInvalidCredentials) }
func IsSessionInvalidError(err error) bool     { return isType(err, ErrorTypeSessionInvalid) }
