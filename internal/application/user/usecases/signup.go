package usecases

import (
	"context"
	"fmt"
	"strings"

	"medrecords/internal/application/user/dto"
	"medrecords/internal/domain/user"
	"medrecords/internal/shared/biztime"
	"medrecords/internal/shared/errors"
	"medrecords/internal/shared/id"
	"medrecords/internal/shared/logger"
	"medrecords/internal/shared/utils"
)

type SignupCommand struct {
	FullName    string `json:"full_name" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email,max=255"`
	Gender      string `json:"gender" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required,max=32"`
	Password    string `json:"password" validate:"required,min=6"`
}

// maxPasswordBytes is the bcrypt input limit. It counts bytes, so a
// password of multibyte characters reaches it with fewer characters.
const maxPasswordBytes = 72

// SignupUseCase registers an account. It does not log the user in.
type SignupUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
	clock    biztime.Clock
	logger   logger.Interface
}

func NewSignupUseCase(userRepo user.Repository, hasher user.PasswordHasher, clock biztime.Clock, logger logger.Interface) *SignupUseCase {
	return &SignupUseCase{
		userRepo: userRepo,
		hasher:   hasher,
		clock:    clock.OrDefault(),
		logger:   logger,
	}
}

func (uc *SignupUseCase) Execute(ctx context.Context, cmd SignupCommand) (*dto.UserResponse, error) {
	cmd.FullName = utils.SanitizeText(cmd.FullName)
	cmd.Email = user.NormalizeEmail(cmd.Email)
	cmd.PhoneNumber = strings.TrimSpace(cmd.PhoneNumber)
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}
	if len(cmd.Password) > maxPasswordBytes {
		return nil, errors.NewValidationError("Password is too long", fmt.Sprintf("at most %d bytes", maxPasswordBytes))
	}

	gender, err := user.ParseGender(cmd.Gender)
	if err != nil {
		return nil, err
	}

	exists, err := uc.userRepo.ExistsByEmail(ctx, cmd.Email, "")
	if err != nil {
		uc.logger.Errorw("failed to check email existence", "error", err)
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		uc.logger.Infow("signup rejected, email already registered", "email", utils.MaskEmail(cmd.Email))
		return nil, errors.NewDuplicateEmailError()
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to process password")
	}

	newUser, err := user.NewUser(id.New(), cmd.FullName, cmd.Email, gender, cmd.PhoneNumber, hash, uc.clock())
	if err != nil {
		return nil, errors.NewValidationError("Invalid user data", err.Error())
	}

	// a concurrent signup that passed the precheck is caught by the unique index
	if err := uc.userRepo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	uc.logger.Infow("user signed up", "user_id", newUser.ID())
	return dto.ToUserResponse(newUser), nil
}
