package usecases

import (
	"context"
	"fmt"

	"medrecords/internal/application/medicalfile/dto"
	"medrecords/internal/domain/medicalfile"
	"medrecords/internal/shared/logger"
)

type ListFilesUseCase struct {
	fileRepo medicalfile.Repository
	logger   logger.Interface
}

func NewListFilesUseCase(fileRepo medicalfile.Repository, logger logger.Interface) *ListFilesUseCase {
	return &ListFilesUseCase{fileRepo: fileRepo, logger: logger}
}

// Execute returns the owner's files, newest first.
func (uc *ListFilesUseCase) Execute(ctx context.Context, ownerID string) ([]*dto.MedicalFileResponse, error) {
	files, err := uc.fileRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		uc.logger.Errorw("failed to list medical files", "owner_id", ownerID, "error", err)
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	return dto.ToMedicalFileResponseList(files), nil
}
