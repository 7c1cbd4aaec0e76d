package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"medrecords/internal/domain/user"
	"medrecords/internal/infrastructure/auth"
	apperrors "medrecords/internal/shared/errors"
	"medrecords/internal/shared/logger"
)

func validSignup() SignupCommand {
	return SignupCommand{
		FullName:    "Ada Lovelace",
		Email:       " a@x.com ",
		Gender:      "female",
		PhoneNumber: "555-0100",
		Password:    "secret1",
	}
}

func TestSignupUseCase_Success(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("ExistsByEmail", mock.Anything, "a@x.com", "").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
		return u.Email() == "a@x.com" && u.PasswordHash() == "h:secret1" && u.IsActive() && u.Gender() == user.GenderFemale
	})).Return(nil)

	uc := NewSignupUseCase(repo, &fakeHasher{}, fixedClock, logger.NewNopLogger())
	resp, err := uc.Execute(context.Background(), validSignup())

	require.NoError(t, err)
	assert.Equal(t, "a@x.com", resp.Email)
	assert.Equal(t, "Female", resp.Gender)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, testNow, resp.CreatedAt)
	repo.AssertExpectations(t)
}

func TestSignupUseCase_DuplicateEmail(t *testing.T) {
	t.Run("precheck", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("ExistsByEmail", mock.Anything, "a@x.com", "").Return(true, nil)

		uc := NewSignupUseCase(repo, &fakeHasher{}, fixedClock, logger.NewNopLogger())
		_, err := uc.Execute(context.Background(), validSignup())

		assert.True(t, apperrors.IsDuplicateEmailError(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lost race on unique index", func(t *testing.T) {
		repo := new(mockUserRepository)
		repo.On("ExistsByEmail", mock.Anything, "a@x.com", "").Return(false, nil)
		repo.On("Create", mock.Anything, mock.Anything).Return(apperrors.NewDuplicateEmailError())

		uc := NewSignupUseCase(repo, &fakeHasher{}, fixedClock, logger.NewNopLogger())
		_, err := uc.Execute(context.Background(), validSignup())

		assert.True(t, apperrors.IsDuplicateEmailError(err))
	})
}

func TestSignupUseCase_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SignupCommand)
	}{
		{"short password", func(c *SignupCommand) { c.Password = "12345" }},
		{"bad email", func(c *SignupCommand) { c.Email = "not-an-email" }},
		{"missing name", func(c *SignupCommand) { c.FullName = "  " }},
		{"markup only name", func(c *SignupCommand) { c.FullName = "<script>x</script>" }},
		{"missing phone", func(c *SignupCommand) { c.PhoneNumber = "" }},
		{"unknown gender", func(c *SignupCommand) { c.Gender = "robot" }},
		{"password over 72 bytes", func(c *SignupCommand) { c.Password = strings.Repeat("a", 73) }},
		{"multibyte password over 72 bytes", func(c *SignupCommand) { c.Password = strings.Repeat("ä", 40) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockUserRepository)
			uc := NewSignupUseCase(repo, &fakeHasher{}, fixedClock, logger.NewNopLogger())

			cmd := validSignup()
			tt.mutate(&cmd)
			_, err := uc.Execute(context.Background(), cmd)

			assert.True(t, apperrors.IsValidationError(err), "got %v", err)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestSignupUseCase_MultibytePasswordAtLimit(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("ExistsByEmail", mock.Anything, "a@x.com", "").Return(false, nil)

	hasher := auth.NewBcryptPasswordHasher(bcrypt.MinCost)
	cmd := validSignup()
	cmd.Password = strings.Repeat("ä", 36)

	var stored string
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*user.User).PasswordHash()
	}).Return(nil)

	_, err := NewSignupUseCase(repo, hasher, fixedClock, logger.NewNopLogger()).Execute(context.Background(), cmd)

	require.NoError(t, err)
	assert.True(t, hasher.Verify(cmd.Password, stored))
}

func TestSignupUseCase_HashFailure(t *testing.T) {
	repo := new(mockUserRepository)
	repo.On("ExistsByEmail", mock.Anything, "a@x.com", "").Return(false, nil)

	uc := NewSignupUseCase(repo, &fakeHasher{hashErr: errors.New("entropy")}, fixedClock, logger.NewNopLogger())
	_, err := uc.Execute(context.Background(), validSignup())

	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeInternal, appErr.Type)
}
