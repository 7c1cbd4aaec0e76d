package usecases

import (
	"context"
	stderrors "errors"
	"io"

	"medrecords/internal/domain/blob"
	"medrecords/internal/domain/medicalfile"
	"medrecords/internal/shared/errors"
	"medrecords/internal/shared/logger"
)

const fileNotFoundMessage = "file not found or access denied"

// FileContent is an open stream of a stored file. The caller closes Reader.
type FileContent struct {
	Reader      io.ReadCloser
	FileName    string
	ContentType string
	Size        int64
}

type FetchFileUseCase struct {
	fileRepo medicalfile.Repository
	store    blob.Store
	logger   logger.Interface
}

func NewFetchFileUseCase(fileRepo medicalfile.Repository, store blob.Store, logger logger.Interface) *FetchFileUseCase {
	return &FetchFileUseCase{fileRepo: fileRepo, store: store, logger: logger}
}

// Execute answers the same NotFound for a missing file and for one owned by
// someone else.
func (uc *FetchFileUseCase) Execute(ctx context.Context, fileID, requesterID string) (*FileContent, error) {
	file, err := findOwnedFile(ctx, uc.fileRepo, fileID, requesterID)
	if err != nil {
		return nil, err
	}

	rc, err := uc.store.Open(ctx, file.StoragePath)
	if err != nil {
		if stderrors.Is(err, blob.ErrNotFound) {
			uc.logger.Warnw("medical file content missing", "file_id", file.ID, "path", file.StoragePath)
			return nil, errors.NewNotFoundError(fileNotFoundMessage)
		}
		uc.logger.Errorw("failed to open medical file", "file_id", file.ID, "error", err)
		return nil, errors.NewStorageFailureError("Failed to read file", err.Error())
	}

	return &FileContent{
		Reader:      rc,
		FileName:    file.DownloadName(),
		ContentType: file.ContentType,
		Size:        file.Size,
	}, nil
}

// findOwnedFile hides both absence and foreign ownership behind NotFound.
func findOwnedFile(ctx context.Context, repo medicalfile.Repository, fileID, requesterID string) (*medicalfile.MedicalFile, error) {
	if fileID == "" || requesterID == "" {
		return nil, errors.NewNotFoundError(fileNotFoundMessage)
	}
	file, err := repo.GetByID(ctx, fileID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError(fileNotFoundMessage)
		}
		return nil, err
	}
	if !file.IsOwnedBy(requesterID) {
		return nil, errors.NewNotFoundError(fileNotFoundMessage)
	}
	return file, nil
}
