package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userDTO "medrecords/internal/application/user/dto"
	userUsecases "medrecords/internal/application/user/usecases"
	"medrecords/internal/interfaces/http/handlers/testutil"
	"medrecords/internal/shared/config"
	"medrecords/internal/shared/errors"
	"medrecords/internal/shared/logger"
	"medrecords/internal/shared/utils"
)

var testCookieConfig = config.CookieConfig{Path: "/", Secure: true, SameSite: "Strict"}

func newAuthHandler(signup *fakeSignup, login *fakeLogin, logout *fakeLogout, getUser *fakeGetUser) *AuthHandler {
	return NewAuthHandler(signup, login, logout, getUser, testCookieConfig, 7*24*time.Hour, logger.NewNopLogger())
}

func findCookie(t *testing.T, resp *http.Response, name string) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func TestAuthHandler_Signup(t *testing.T) {
	var got userUsecases.SignupCommand
	signup := &fakeSignup{fn: func(_ context.Context, cmd userUsecases.SignupCommand) (*userDTO.UserResponse, error) {
		got = cmd
		return &userDTO.UserResponse{ID: "u-1", Email: cmd.Email}, nil
	}}
	h := newAuthHandler(signup, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/signup", map[string]string{
		"full_name":    "Ada",
		"email":        "a@x.com",
		"gender":       "Female",
		"phone_number": "555",
		"password":     "secret1",
	})
	h.Signup(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Ada", got.FullName)
	assert.Equal(t, "secret1", got.Password)
	assert.NotContains(t, w.Body.String(), "secret1")
}

func TestAuthHandler_SignupDuplicate(t *testing.T) {
	signup := &fakeSignup{fn: func(context.Context, userUsecases.SignupCommand) (*userDTO.UserResponse, error) {
		return nil, errors.NewDuplicateEmailError()
	}}
	h := newAuthHandler(signup, nil, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/signup", map[string]string{"email": "a@x.com"})
	h.Signup(c)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "duplicate_email", resp.Error.Type)
}

func TestAuthHandler_Login(t *testing.T) {
	expires := time.Date(2026, 5, 17, 12, 0, 0, 0, time.UTC)
	var got userUsecases.LoginCommand
	login := &fakeLogin{fn: func(_ context.Context, cmd userUsecases.LoginCommand) (*userUsecases.LoginResult, error) {
		got = cmd
		return &userUsecases.LoginResult{Token: "tok-abc", ExpiresAt: expires, User: &userDTO.UserResponse{ID: "u-1"}}, nil
	}}
	h := newAuthHandler(nil, login, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", map[string]string{"email": "a@x.com", "password": "pw"})
	c.Request.Header.Set("User-Agent", "test-agent")
	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test-agent", got.UserAgent)

	cookie := findCookie(t, w.Result(), utils.SessionTokenCookie)
	assert.Equal(t, "tok-abc", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, 7*24*3600, cookie.MaxAge)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data userDTO.LoginResponse
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.Equal(t, "tok-abc", data.SessionToken)
	assert.Equal(t, "u-1", data.User.ID)
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	login := &fakeLogin{fn: func(context.Context, userUsecases.LoginCommand) (*userUsecases.LoginResult, error) {
		return nil, errors.NewInvalidCredentialsError()
	}}
	h := newAuthHandler(nil, login, nil, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", map[string]string{"email": "a@x.com", "password": "nope"})
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestAuthHandler_LogoutClearsCookie(t *testing.T) {
	logout := &fakeLogout{}
	h := newAuthHandler(nil, nil, logout, nil)

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/logout", nil)
	c.Request.AddCookie(&http.Cookie{Name: utils.SessionTokenCookie, Value: "tok-abc"})
	h.Logout(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"tok-abc"}, logout.tokens)
	cookie := findCookie(t, w.Result(), utils.SessionTokenCookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)

	// no cookie: nothing to revoke, still clears
	c, w = testutil.NewTestContext(http.MethodPost, "/auth/logout", nil)
	h.Logout(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, logout.tokens, 1)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	getUser := &fakeGetUser{fn: func(_ context.Context, userID string) (*userDTO.UserResponse, error) {
		return &userDTO.UserResponse{ID: userID, Email: "a@x.com"}, nil
	}}
	h := newAuthHandler(nil, nil, nil, getUser)

	c, w := testutil.NewTestContext(http.MethodGet, "/auth/me", nil)
	h.GetCurrentUser(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, w = testutil.NewTestContext(http.MethodGet, "/auth/me", nil)
	testutil.SetAuthContext(c, "u-7")
	h.GetCurrentUser(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u-7"`)
	assert.NotContains(t, w.Body.String(), "password")
}
