package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"medrecords/internal/application/user/usecases"
	"medrecords/internal/shared/errors"
	"medrecords/internal/shared/logger"
	"medrecords/internal/shared/utils"
)

// ProfilePictureField is the multipart field carrying the optional picture.
const ProfilePictureField = "profile_picture"

type ProfileHandler struct {
	updateProfileUseCase updateProfileUseCase
	maxPictureSize       int64
	logger               logger.Interface
}

func NewProfileHandler(updateProfileUC updateProfileUseCase, maxPictureSize int64, logger logger.Interface) *ProfileHandler {
	return &ProfileHandler{
		updateProfileUseCase: updateProfileUC,
		maxPictureSize:       maxPictureSize,
		logger:               logger,
	}
}

// UpdateProfile accepts a multipart form (or JSON without a picture).
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	limitBody(c, h.maxPictureSize)

	var cmd usecases.UpdateProfileCommand
	if err := c.ShouldBind(&cmd); err != nil {
		if isBodyTooLarge(err) {
			utils.ErrorResponseWithError(c, errors.NewValidationError("File too large"))
			return
		}
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid data provided"))
		return
	}

	fh, err := c.FormFile(ProfilePictureField)
	switch {
	case err == nil:
		upload, err := openUpload(fh)
		if err != nil {
			h.logger.Warnw("failed to open profile picture part", "error", err)
			utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid profile picture"))
			return
		}
		defer upload.file.Close()
		cmd.Picture = &usecases.PictureUpload{
			FileName:    upload.fileName,
			ContentType: upload.contentType,
			Size:        upload.size,
			Content:     upload.file,
		}
	case stderrors.Is(err, http.ErrMissingFile), stderrors.Is(err, http.ErrNotMultipart):
		// no new picture
	default:
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid data provided"))
		return
	}

	resp, err := h.updateProfileUseCase.Execute(c.Request.Context(), userID, cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "profile updated successfully", resp)
}
