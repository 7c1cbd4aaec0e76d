package handlers

import (
	"context"

	fileDTO "medrecords/internal/application/medicalfile/dto"
	fileUsecases "medrecords/internal/application/medicalfile/usecases"
	userDTO "medrecords/internal/application/user/dto"
	userUsecases "medrecords/internal/application/user/usecases"
)

// Use case interfaces consumed by the handlers; tests substitute fakes.

type signupUseCase interface {
	Execute(ctx context.Context, cmd userUsecases.SignupCommand) (*userDTO.UserResponse, error)
}

type loginUseCase interface {
	Execute(ctx context.Context, cmd userUsecases.LoginCommand) (*userUsecases.LoginResult, error)
}

type logoutUseCase interface {
	Execute(ctx context.Context, token string) (bool, error)
}

type getUserUseCase interface {
	Execute(ctx context.Context, userID string) (*userDTO.UserResponse, error)
}

type updateProfileUseCase interface {
	Execute(ctx context.Context, userID string, cmd userUsecases.UpdateProfileCommand) (*userDTO.UserResponse, error)
}

type uploadFileUseCase interface {
	Execute(ctx context.Context, cmd fileUsecases.UploadFileCommand) (*fileDTO.MedicalFileResponse, error)
}

type listFilesUseCase interface {
	Execute(ctx context.Context, ownerID string) ([]*fileDTO.MedicalFileResponse, error)
}

type fetchFileUseCase interface {
	Execute(ctx context.Context, fileID, requesterID string) (*fileUsecases.FileContent, error)
}

type deleteFileUseCase interface {
	Execute(ctx context.Context, fileID, requesterID string) (bool, error)
}
