package usecases

import (
	"context"
	"fmt"

	"medrecords/internal/domain/blob"
	"medrecords/internal/domain/medicalfile"
	"medrecords/internal/shared/errors"
	"medrecords/internal/shared/logger"
)

type DeleteFileUseCase struct {
	fileRepo medicalfile.Repository
	store    blob.Store
	logger   logger.Interface
}

func NewDeleteFileUseCase(fileRepo medicalfile.Repository, store blob.Store, logger logger.Interface) *DeleteFileUseCase {
	return &DeleteFileUseCase{fileRepo: fileRepo, store: store, logger: logger}
}

// Execute reports false for a missing or foreign file. Content goes first:
// content that is already gone does not block removing the row, but any
// other storage error leaves the row in place.
func (uc *DeleteFileUseCase) Execute(ctx context.Context, fileID, requesterID string) (bool, error) {
	file, err := findOwnedFile(ctx, uc.fileRepo, fileID, requesterID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}

	existed, err := uc.store.Delete(ctx, file.StoragePath)
	if err != nil {
		uc.logger.Errorw("failed to delete medical file content", "file_id", file.ID, "path", file.StoragePath, "error", err)
		return false, errors.NewStorageFailureError("Failed to delete file", err.Error())
	}
	if !existed {
		uc.logger.Warnw("medical file content already absent", "file_id", file.ID, "path", file.StoragePath)
	}

	removed, err := uc.fileRepo.Delete(ctx, file.ID, requesterID)
	if err != nil {
		uc.logger.Errorw("failed to delete medical file record", "file_id", file.ID, "error", err)
		return false, fmt.Errorf("failed to delete file: %w", err)
	}

	if removed {
		uc.logger.Infow("medical file deleted", "file_id", file.ID, "owner_id", requesterID)
	}
	return removed, nil
}
