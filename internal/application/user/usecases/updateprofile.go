package usecases

import (
	"context"
	"fmt"
	"io"
	"strings"

	"medrecords/internal/application/user/dto"
	"medrecords/internal/domain/blob"
	"medrecords/internal/domain/user"
	"medrecords/internal/shared/errors"
	"medrecords/internal/shared/logger"
	"medrecords/internal/shared/utils"
)

type UpdateProfileCommand struct {
	FullName    string         `json:"full_name" form:"full_name" validate:"required,max=255"`
	Email       string         `json:"email" form:"email" validate:"required,email,max=255"`
	Gender      string         `json:"gender" form:"gender" validate:"required"`
	PhoneNumber string         `json:"phone_number" form:"phone_number" validate:"required,max=32"`
	Picture     *PictureUpload `json:"-" form:"-"`
}

// PictureUpload is an optional new profile picture. Size is the declared
// size; the stored byte count is checked again after writing.
type PictureUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type UpdateProfileUseCase struct {
	userRepo user.Repository
	store    blob.Store
	policy   *blob.UploadPolicy
	logger   logger.Interface
}

func NewUpdateProfileUseCase(userRepo user.Repository, store blob.Store, policy *blob.UploadPolicy, logger logger.Interface) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
		store:    store,
		policy:   policy,
		logger:   logger,
	}
}

// Execute writes a new picture before the user row so a failed write never
// leaves the profile pointing at nothing. The previous picture is removed
// last and a failure there only gets logged.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, userID string, cmd UpdateProfileCommand) (*dto.UserResponse, error) {
	cmd.FullName = utils.SanitizeText(cmd.FullName)
	cmd.Email = user.NormalizeEmail(cmd.Email)
	cmd.PhoneNumber = strings.TrimSpace(cmd.PhoneNumber)
	if err := utils.ValidateStruct(cmd); err != nil {
		return nil, err
	}

	gender, err := user.ParseGender(cmd.Gender)
	if err != nil {
		return nil, err
	}

	if cmd.Picture != nil {
		if err := uc.policy.Validate(cmd.Picture.FileName, cmd.Picture.ContentType, cmd.Picture.Size); err != nil {
			return nil, err
		}
	}

	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if cmd.Email != u.Email() {
		exists, err := uc.userRepo.ExistsByEmail(ctx, cmd.Email, u.ID())
		if err != nil {
			uc.logger.Errorw("failed to check email existence", "user_id", userID, "error", err)
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return nil, errors.NewDuplicateEmailError()
		}
	}

	if err := u.UpdateProfile(cmd.FullName, cmd.Email, gender, cmd.PhoneNumber); err != nil {
		return nil, errors.NewValidationError("Invalid profile data", err.Error())
	}

	var newPicture, oldPicture string
	if cmd.Picture != nil {
		newPicture, err = uc.savePicture(ctx, cmd.Picture)
		if err != nil {
			return nil, err
		}
		oldPicture = u.SetProfileImage(newPicture)
	}

	if err := uc.userRepo.UpdateProfile(ctx, u); err != nil {
		if newPicture != "" {
			uc.removeBlob(ctx, newPicture)
		}
		return nil, err
	}

	if oldPicture != "" && oldPicture != newPicture {
		uc.removeBlob(ctx, oldPicture)
	}

	uc.logger.Infow("profile updated", "user_id", u.ID(), "picture_changed", newPicture != "")
	return dto.ToUserResponse(u), nil
}

func (uc *UpdateProfileUseCase) savePicture(ctx context.Context, pic *PictureUpload) (string, error) {
	limited := io.LimitReader(pic.Content, uc.policy.MaxSize()+1)
	path, written, err := uc.store.Save(ctx, limited, pic.FileName, pic.ContentType, blob.SubfolderProfiles)
	if err != nil {
		uc.logger.Errorw("failed to store profile picture", "error", err)
		return "", errors.NewStorageFailureError("Failed to store profile picture", err.Error())
	}
	if err := uc.policy.ValidateSize(written); err != nil {
		uc.removeBlob(ctx, path)
		return "", err
	}
	return path, nil
}

func (uc *UpdateProfileUseCase) removeBlob(ctx context.Context, path string) {
	if _, err := uc.store.Delete(ctx, path); err != nil {
		uc.logger.Warnw("failed to delete profile picture", "path", path, "error", err)
	}
}
