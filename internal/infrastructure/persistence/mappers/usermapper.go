package mappers

import (
	"fmt"
	"time"

	"medrecords/internal/domain/user"
	"medrecords/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between User domain entities and persistence models.
type UserMapper interface {
	ToModel(entity *user.User) *models.UserModel
	ToEntity(model *models.UserModel) (*user.User, error)
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(entity *user.User) *models.UserModel {
	if entity == nil {
		return nil
	}
	var lastLogin *time.Time
	if t := entity.LastLoginAt(); t != nil {
		utc := t.UTC()
		lastLogin = &utc
	}
	return &models.UserModel{
		ID:           entity.ID(),
		FullName:     entity.FullName(),
		Email:        entity.Email(),
		Gender:       entity.Gender().String(),
		PhoneNumber:  entity.PhoneNumber(),
		PasswordHash: entity.PasswordHash(),
		ProfileImage: entity.ProfileImage(),
		IsActive:     entity.IsActive(),
		LastLoginAt:  lastLogin,
		CreatedAt:    entity.CreatedAt().UTC(),
	}
}

// ToEntity fails only when the stored gender is no longer a known value.
func (m *UserMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}
	gender, err := user.ParseGender(model.Gender)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", model.ID, err)
	}
	return user.ReconstructUser(
		model.ID,
		model.FullName,
		model.Email,
		gender,
		model.PhoneNumber,
		model.PasswordHash,
		model.ProfileImage,
		model.CreatedAt,
		model.LastLoginAt,
		model.IsActive,
	), nil
}
