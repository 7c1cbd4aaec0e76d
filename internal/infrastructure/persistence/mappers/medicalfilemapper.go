package mappers

import (
	"medrecords/internal/domain/medicalfile"
	"medrecords/internal/infrastructure/persistence/models"
)

type MedicalFileMapper interface {
	ToModel(entity *medicalfile.MedicalFile) *models.MedicalFileModel
	ToDomain(model *models.MedicalFileModel) *medicalfile.MedicalFile
	ToDomainList(models []models.MedicalFileModel) []*medicalfile.MedicalFile
}

type MedicalFileMapperImpl struct{}

func NewMedicalFileMapper() MedicalFileMapper {
	return &MedicalFileMapperImpl{}
}

func (m *MedicalFileMapperImpl) ToModel(entity *medicalfile.MedicalFile) *models.MedicalFileModel {
	if entity == nil {
		return nil
	}
	return &models.MedicalFileModel{
		ID:          entity.ID,
		UserID:      entity.OwnerID,
		DisplayName: entity.DisplayName,
		Category:    entity.Category.String(),
		StoragePath: entity.StoragePath,
		ContentType: entity.ContentType,
		Size:        entity.Size,
		UploadedAt:  entity.UploadedAt.UTC(),
	}
}

// ToDomain keeps an unknown stored category as-is rather than failing the
// whole listing.
func (m *MedicalFileMapperImpl) ToDomain(model *models.MedicalFileModel) *medicalfile.MedicalFile {
	if model == nil {
		return nil
	}
	return &medicalfile.MedicalFile{
		ID:          model.ID,
		DisplayName: model.DisplayName,
		Category:    medicalfile.Category(model.Category),
		StoragePath: model.StoragePath,
		Size:        model.Size,
		UploadedAt:  model.UploadedAt,
		OwnerID:     model.UserID,
		ContentType: model.ContentType,
	}
}

func (m *MedicalFileMapperImpl) ToDomainList(list []models.MedicalFileModel) []*medicalfile.MedicalFile {
	files := make([]*medicalfile.MedicalFile, 0, len(list))
	for i := range list {
		files = append(files, m.ToDomain(&list[i]))
	}
	return files
}
