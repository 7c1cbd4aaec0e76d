package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medrecords/internal/shared/errors"
)

// APIResponse represents a standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorInfo represents error information in API response
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// FileEnvelope is the response shape of the /files endpoints: the file or
// files sit beside success and message instead of under data.
type FileEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	File    interface{} `json:"file,omitempty"`
	Files   interface{} `json:"files,omitempty"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Type:    "error",
			Message: message,
		},
	})
}

// ErrorResponseWithError renders err using its AppError type and code.
// Anything else becomes a 500 without details.
func ErrorResponseWithError(c *gin.Context, err error) {
	statusCode, info := errorInfo(err)
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error:   &info,
	})
}

// FileErrorResponse renders err in the /files envelope.
func FileErrorResponse(c *gin.Context, err error) {
	statusCode, info := errorInfo(err)
	c.JSON(statusCode, FileEnvelope{
		Success: false,
		Message: info.Message,
	})
}

func errorInfo(err error) (int, ErrorInfo) {
	appErr := errors.GetAppError(err)
	if appErr == nil {
		return http.StatusInternalServerError, ErrorInfo{
			Type:    string(errors.ErrorTypeInternal),
			Message: "Internal server error occurred",
		}
	}

	info := ErrorInfo{
		Type:    string(appErr.Type),
		Message: appErr.Message,
		Details: appErr.Details,
	}
	// storage and internal failures may carry paths or driver messages
	if appErr.Code >= http.StatusInternalServerError {
		info.Details = ""
	}
	return appErr.Code, info
}
