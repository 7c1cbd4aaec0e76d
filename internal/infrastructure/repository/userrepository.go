package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"medrecords/internal/domain/user"
	"medrecords/internal/infrastructure/persistence/mappers"
	"medrecords/internal/infrastructure/persistence/models"
	"medrecords/internal/shared/db"
	apperrors "medrecords/internal/shared/errors"
	"medrecords/internal/shared/logger"
)

// UserRepository implements user.Repository on gorm.
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

func NewUserRepository(db *gorm.DB, logger logger.Interface) *UserRepository {
	return &UserRepository{
		db:     db,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

// Create maps a unique-index violation on email to a DuplicateEmail error,
// which is how concurrent signups with the same address are resolved.
func (r *UserRepository) Create(ctx context.Context, userEntity *user.User) error {
	model := r.mapper.ToModel(userEntity)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewDuplicateEmailError()
		}
		r.logger.Errorw("failed to create user in database", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Infow("user created successfully", "id", model.ID)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	var model models.UserModel

	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		r.logger.Errorw("failed to get user by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetByEmail matches the stored address exactly and returns (nil, nil) when
// no user has it.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel

	if err := db.GetTxFromContext(ctx, r.db).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	var count int64

	query := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{}).Where("email = ?", email)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

// UpdateProfile writes only the profile columns. Login bookkeeping and the
// active flag have their own targeted updates so concurrent writers never
// overwrite each other's columns with stale values.
func (r *UserRepository) UpdateProfile(ctx context.Context, userEntity *user.User) error {
	model := r.mapper.ToModel(userEntity)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{ID: model.ID}).
		Select("full_name", "email", "gender", "phone_number", "profile_image", "updated_at").
		Updates(model)
	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return apperrors.NewDuplicateEmailError()
		}
		r.logger.Errorw("failed to update user profile", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	return nil
}

// RecordLogin stamps last_login_at, and password_hash when passwordHash is
// not empty, on an active user. It reports false when the user is missing
// or was deactivated since it was read.
func (r *UserRepository) RecordLogin(ctx context.Context, userID string, at time.Time, passwordHash string) (bool, error) {
	updates := map[string]any{"last_login_at": at, "updated_at": at}
	if passwordHash != "" {
		updates["password_hash"] = passwordHash
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("id = ? AND is_active = ?", userID, true).
		Updates(updates)
	if result.Error != nil {
		r.logger.Errorw("failed to record login", "id", userID, "error", result.Error)
		return false, fmt.Errorf("failed to record login: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (r *UserRepository) Deactivate(ctx context.Context, userID string) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("id = ?", userID).
		Update("is_active", false)
	if result.Error != nil {
		r.logger.Errorw("failed to deactivate user", "id", userID, "error", result.Error)
		return fmt.Errorf("failed to deactivate user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("user not found")
	}
	return nil
}

var _ user.Repository = (*UserRepository)(nil)
