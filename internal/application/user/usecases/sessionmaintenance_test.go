package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "medrecords/internal/shared/errors"
	"medrecords/internal/shared/logger"
)

func TestSweepExpiredSessionsUseCase(t *testing.T) {
	sessions := new(mockSessionRepository)
	sessions.On("DeactivateExpired", mock.Anything, testNow).Return(int64(3), nil).Once()

	n, err := NewSweepExpiredSessionsUseCase(sessions, fixedClock, logger.NewNopLogger()).Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	sessions.AssertExpectations(t)
}

func TestSweepExpiredSessionsUseCase_Error(t *testing.T) {
	sessions := new(mockSessionRepository)
	sessions.On("DeactivateExpired", mock.Anything, testNow).Return(int64(0), errors.New("db down"))

	_, err := NewSweepExpiredSessionsUseCase(sessions, fixedClock, logger.NewNopLogger()).Execute(context.Background())

	assert.Error(t, err)
}

func TestDeactivateUserUseCase(t *testing.T) {
	users := new(mockUserRepository)
	sessions := new(mockSessionRepository)
	tx := &passthroughTransactor{}
	u := newActiveUser("u-1", "a@x.com", "h:pw")

	users.On("GetByEmail", mock.Anything, "a@x.com").Return(u, nil)
	users.On("Deactivate", mock.Anything, "u-1").Return(nil)
	sessions.On("DeactivateByUserID", mock.Anything, "u-1").Return(int64(2), nil)

	revoked, err := NewDeactivateUserUseCase(users, sessions, tx, logger.NewNopLogger()).Execute(context.Background(), " a@x.com ")

	require.NoError(t, err)
	assert.Equal(t, int64(2), revoked)
	assert.Equal(t, 1, tx.calls)
	users.AssertExpectations(t)
	sessions.AssertExpectations(t)
}

func TestDeactivateUserUseCase_UnknownEmail(t *testing.T) {
	users := new(mockUserRepository)
	users.On("GetByEmail", mock.Anything, "nobody@x.com").Return(nil, nil)

	_, err := NewDeactivateUserUseCase(users, new(mockSessionRepository), &passthroughTransactor{}, logger.NewNopLogger()).
		Execute(context.Background(), "nobody@x.com")

	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestGetUserUseCase(t *testing.T) {
	users := new(mockUserRepository)
	u := newActiveUser("u-1", "a@x.com", "h:pw")
	u.SetProfileImage("profiles/me_abc.png")
	users.On("GetByID", mock.Anything, "u-1").Return(u, nil)
	users.On("GetByID", mock.Anything, "u-9").Return(nil, apperrors.NewNotFoundError("user not found"))

	uc := NewGetUserUseCase(users, logger.NewNopLogger())

	resp, err := uc.Execute(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "/staticfiles/profiles/me_abc.png", resp.ProfileImage)

	_, err = uc.Execute(context.Background(), "u-9")
	assert.True(t, apperrors.IsNotFoundError(err))
}
