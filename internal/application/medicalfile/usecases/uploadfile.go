package usecases

import (
	"context"
	"io"
	"strings"

	"medrecords/internal/application/medicalfile/dto"
	"medrecords/internal/domain/blob"
	"medrecords/internal/domain/medicalfile"
	"medrecords/internal/shared/biztime"
	"medrecords/internal/shared/errors"
	"medrecords/internal/shared/id"
	"medrecords/internal/shared/logger"
	"medrecords/internal/shared/utils"
)

type UploadFileCommand struct {
	OwnerID     string
	DisplayName string
	Category    string
	FileName    string
	ContentType string
	// Size is the size declared by the client; the stored byte count is
	// checked again after the write.
	Size    int64
	Content io.Reader
}

type UploadFileUseCase struct {
	fileRepo medicalfile.Repository
	store    blob.Store
	policy   *blob.UploadPolicy
	clock    biztime.Clock
	logger   logger.Interface
}

func NewUploadFileUseCase(
	fileRepo medicalfile.Repository,
	store blob.Store,
	policy *blob.UploadPolicy,
	clock biztime.Clock,
	logger logger.Interface,
) *UploadFileUseCase {
	return &UploadFileUseCase{
		fileRepo: fileRepo,
		store:    store,
		policy:   policy,
		clock:    clock.OrDefault(),
		logger:   logger,
	}
}

// Execute stores the content first and the metadata second. The blob is
// removed again whenever the metadata cannot be written.
func (uc *UploadFileUseCase) Execute(ctx context.Context, cmd UploadFileCommand) (*dto.MedicalFileResponse, error) {
	if cmd.OwnerID == "" {
		return nil, errors.NewUnauthorizedError("Not authenticated")
	}
	if cmd.Content == nil {
		return nil, errors.NewValidationError("No file provided")
	}
	if err := uc.policy.Validate(cmd.FileName, cmd.ContentType, cmd.Size); err != nil {
		return nil, err
	}

	category, err := medicalfile.ParseCategory(cmd.Category)
	if err != nil {
		return nil, err
	}

	displayName := utils.SanitizeText(cmd.DisplayName)
	if displayName == "" {
		displayName = utils.SanitizeText(cmd.FileName)
	}
	if len(displayName) > 255 {
		displayName = strings.ToValidUTF8(displayName[:255], "")
	}

	limited := io.LimitReader(cmd.Content, uc.policy.MaxSize()+1)
	storagePath, written, err := uc.store.Save(ctx, limited, cmd.FileName, blob.NormalizeContentType(cmd.ContentType), blob.SubfolderMedicalFiles)
	if err != nil {
		uc.logger.Errorw("failed to store medical file", "owner_id", cmd.OwnerID, "error", err)
		return nil, errors.NewStorageFailureError("Failed to store file", err.Error())
	}

	if err := uc.policy.ValidateSize(written); err != nil {
		uc.removeBlob(ctx, storagePath)
		return nil, err
	}

	file, err := medicalfile.NewMedicalFile(id.New(), displayName, category, storagePath, written,
		cmd.OwnerID, blob.NormalizeContentType(cmd.ContentType), uc.clock())
	if err != nil {
		uc.removeBlob(ctx, storagePath)
		return nil, errors.NewValidationError("Invalid file data", err.Error())
	}

	if err := uc.fileRepo.Create(ctx, file); err != nil {
		uc.logger.Errorw("failed to persist medical file metadata", "owner_id", cmd.OwnerID, "path", storagePath, "error", err)
		uc.removeBlob(ctx, storagePath)
		return nil, errors.NewStorageFailureError("Failed to save file record", err.Error())
	}

	uc.logger.Infow("medical file uploaded",
		"file_id", file.ID,
		"owner_id", file.OwnerID,
		"category", file.Category,
		"size", file.Size,
	)
	return dto.ToMedicalFileResponse(file), nil
}

func (uc *UploadFileUseCase) removeBlob(ctx context.Context, path string) {
	if _, err := uc.store.Delete(ctx, path); err != nil {
		uc.logger.Warnw("failed to remove orphaned blob", "path", path, "error", err)
	}
}
