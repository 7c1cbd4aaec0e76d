// Package errors provides application-level error types and utilities.
// Use cases return *AppError values; the HTTP layer maps them to status codes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation     ErrorType = "validation_error"
	ErrorTypeNotFound       ErrorType = "not_found"
	ErrorTypeUnauthorized   ErrorType = "unauthorized"
	ErrorTypeDuplicateEmail ErrorType = "duplicate_email"
	ErrorTypeStorageFailure ErrorType = "storage_failure"
	ErrorTypeInternal       ErrorType = "internal_error"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func newAppError(t ErrorType, code int, message string, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{Type: t, Message: message, Code: code, Details: detail}
}

func NewValidationError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, message, details)
}

func NewNotFoundError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, message, details)
}

func NewUnauthorizedError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeUnauthorized, http.StatusUnauthorized, message, details)
}

// NewDuplicateEmailError is returned when an email is already registered.
func NewDuplicateEmailError(details ...string) *AppError {
	return newAppError(ErrorTypeDuplicateEmail, http.StatusConflict, "Email already exists", details)
}

// NewStorageFailureError reports a blob store or persistence failure while
// handling file content. Details never reach the client.
func NewStorageFailureError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeStorageFailure, http.StatusInternalServerError, message, details)
}

func NewInternalError(message string, details ...string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, message, details)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

func IsNotFoundError(err error) bool       { return isType(err, ErrorTypeNotFound) }
func IsValidationError(err error) bool     { return isType(err, ErrorTypeValidation) }
func IsUnauthorizedError(err error) bool   { return isType(err, ErrorTypeUnauthorized) }
func IsDuplicateEmailError(err error) bool { return isType(err, ErrorTypeDuplicateEmail) }
func IsStorageFailureError(err error) bool { return isType(err, ErrorTypeStorageFailure) }

const (
	mysqlDuplicateEntry  = 1062
	pgUniqueViolation    = "23505"
	sqliteUniqueFailed   = "UNIQUE constraint failed"
	sqliteUniqueFailedV2 = "constraint failed: UNIQUE"
)

// IsDuplicateError reports whether err is a unique-index violation from any
// of the supported database drivers.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	msg := err.Error()
	return strings.Contains(msg, sqliteUniqueFailed) || strings.Contains(msg, sqliteUniqueFailedV2)
}
