package handlers

import (
	"context"

	fileDTO "medrecords/internal/application/medicalfile/dto"
	fileUsecases "medrecords/internal/application/medicalfile/usecases"
	userDTO "medrecords/internal/application/user/dto"
	userUsecases "medrecords/internal/application/user/usecases"
)

type fakeSignup struct {
	fn func(ctx context.Context, cmd userUsecases.SignupCommand) (*userDTO.UserResponse, error)
}

func (f *fakeSignup) Execute(ctx context.Context, cmd userUsecases.SignupCommand) (*userDTO.UserResponse, error) {
	return f.fn(ctx, cmd)
}

type fakeLogin struct {
	fn func(ctx context.Context, cmd userUsecases.LoginCommand) (*userUsecases.LoginResult, error)
}

func (f *fakeLogin) Execute(ctx context.Context, cmd userUsecases.LoginCommand) (*userUsecases.LoginResult, error) {
	return f.fn(ctx, cmd)
}

type fakeLogout struct {
	tokens []string
}

func (f *fakeLogout) Execute(_ context.Context, token string) (bool, error) {
	f.tokens = append(f.tokens, token)
	return true, nil
}

type fakeGetUser struct {
	fn func(ctx context.Context, userID string) (*userDTO.UserResponse, error)
}

func (f *fakeGetUser) Execute(ctx context.Context, userID string) (*userDTO.UserResponse, error) {
	return f.fn(ctx, userID)
}

type fakeUpdateProfile struct {
	fn func(ctx context.Context, userID string, cmd userUsecases.UpdateProfileCommand) (*userDTO.UserResponse, error)
}

func (f *fakeUpdateProfile) Execute(ctx context.Context, userID string, cmd userUsecases.UpdateProfileCommand) (*userDTO.UserResponse, error) {
	return f.fn(ctx, userID, cmd)
}

type fakeUpload struct {
	fn func(ctx context.Context, cmd fileUsecases.UploadFileCommand) (*fileDTO.MedicalFileResponse, error)
}

func (f *fakeUpload) Execute(ctx context.Context, cmd fileUsecases.UploadFileCommand) (*fileDTO.MedicalFileResponse, error) {
	return f.fn(ctx, cmd)
}

type fakeList struct {
	fn func(ctx context.Context, ownerID string) ([]*fileDTO.MedicalFileResponse, error)
}

func (f *fakeList) Execute(ctx context.Context, ownerID string) ([]*fileDTO.MedicalFileResponse, error) {
	return f.fn(ctx, ownerID)
}

type fakeFetch struct {
	fn func(ctx context.Context, fileID, requesterID string) (*fileUsecases.FileContent, error)
}

func (f *fakeFetch) Execute(ctx context.Context, fileID, requesterID string) (*fileUsecases.FileContent, error) {
	return f.fn(ctx, fileID, requesterID)
}

type fakeDelete struct {
	fn func(ctx context.Context, fileID, requesterID string) (bool, error)
}

func (f *fakeDelete) Execute(ctx context.Context, fileID, requesterID string) (bool, error) {
	return f.fn(ctx, fileID, requesterID)
}
