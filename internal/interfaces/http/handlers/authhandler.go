package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	userDTO "medrecords/internal/application/user/dto"
	"medrecords/internal/application/user/usecases"
	"medrecords/internal/shared/config"
	"medrecords/internal/shared/errors"
	"medrecords/internal/shared/logger"
	"medrecords/internal/shared/utils"
)

type AuthHandler struct {
	signupUseCase   signupUseCase
	loginUseCase    loginUseCase
	logoutUseCase   logoutUseCase
	getUserUseCase  getUserUseCase
	cookieConfig    config.CookieConfig
	sessionLifetime time.Duration
	logger          logger.Interface
}

func NewAuthHandler(
	signupUC signupUseCase,
	loginUC loginUseCase,
	logoutUC logoutUseCase,
	getUserUC getUserUseCase,
	cookieConfig config.CookieConfig,
	sessionLifetime time.Duration,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		signupUseCase:   signupUC,
		loginUseCase:    loginUC,
		logoutUseCase:   logoutUC,
		getUserUseCase:  getUserUC,
		cookieConfig:    cookieConfig,
		sessionLifetime: sessionLifetime,
		logger:          logger,
	}
}

type SignupRequest struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Gender      string `json:"gender"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body"))
		return
	}

	resp, err := h.signupUseCase.Execute(c.Request.Context(), usecases.SignupCommand{
		FullName:    req.FullName,
		Email:       req.Email,
		Gender:      req.Gender,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, "signup successful", resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body"))
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		if errors.ShouldLogAuthError(err) {
			h.logger.Errorw("login failed", "error", err, "email", utils.MaskEmail(req.Email))
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetSessionCookie(c, h.cookieConfig, result.Token, int(h.sessionLifetime.Seconds()))

	utils.SuccessResponse(c, http.StatusOK, "login successful", userDTO.LoginResponse{
		User:         result.User,
		SessionToken: result.Token,
		ExpiresAt:    result.ExpiresAt,
	})
}

// Logout always clears the cookie, even when the session was already gone.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := utils.GetSessionToken(c); token != "" {
		if _, err := h.logoutUseCase.Execute(c.Request.Context(), token); err != nil {
			h.logger.Errorw("logout failed", "error", err)
		}
	}

	utils.ClearSessionCookie(c, h.cookieConfig)
	utils.SuccessResponse(c, http.StatusOK, "logged out successfully", nil)
}

func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	resp, err := h.getUserUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Not authenticated")
			return
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", resp)
}
