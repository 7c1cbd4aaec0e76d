package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"medrecords/internal/domain/medicalfile"
	"medrecords/internal/infrastructure/persistence/mappers"
	"medrecords/internal/infrastructure/persistence/models"
	"medrecords/internal/shared/db"
	apperrors "medrecords/internal/shared/errors"
	"medrecords/internal/shared/logger"
)

type MedicalFileRepository struct {
	db     *gorm.DB
	mapper mappers.MedicalFileMapper
	logger logger.Interface
}

func NewMedicalFileRepository(db *gorm.DB, logger logger.Interface) *MedicalFileRepository {
	return &MedicalFileRepository{
		db:     db,
		mapper: mappers.NewMedicalFileMapper(),
		logger: logger,
	}
}

func (r *MedicalFileRepository) Create(ctx context.Context, file *medicalfile.MedicalFile) error {
	model := r.mapper.ToModel(file)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create medical file record", "id", file.ID, "error", err)
		return fmt.Errorf("failed to create medical file: %w", err)
	}
	return nil
}

func (r *MedicalFileRepository) GetByID(ctx context.Context, id string) (*medicalfile.MedicalFile, error) {
	var model models.MedicalFileModel
	if err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("file not found")
		}
		return nil, fmt.Errorf("failed to get medical file: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *MedicalFileRepository) ListByOwner(ctx context.Context, ownerID string) ([]*medicalfile.MedicalFile, error) {
	var list []models.MedicalFileModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.OwnedBy(ownerID), db.NewestFirst("uploaded_at")).
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list medical files: %w", err)
	}
	return r.mapper.ToDomainList(list), nil
}

// Delete removes the row only when ownerID owns it.
func (r *MedicalFileRepository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("id = ?", id).
		Scopes(db.OwnedBy(ownerID)).
		Delete(&models.MedicalFileModel{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete medical file: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

var _ medicalfile.Repository = (*MedicalFileRepository)(nil)
