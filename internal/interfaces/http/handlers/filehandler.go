package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medrecords/internal/application/medicalfile/usecases"
	"medrecords/internal/shared/errors"
	"medrecords/internal/shared/logger"
	"medrecords/internal/shared/utils"
)

// Multipart fields of an upload.
const (
	UploadFieldFileName = "file_name"
	UploadFieldFileType = "file_type"
	UploadFieldFile     = "file"
)

type FileHandler struct {
	uploadUseCase uploadFileUseCase
	listUseCase   listFilesUseCase
	fetchUseCase  fetchFileUseCase
	deleteUseCase deleteFileUseCase
	maxFileSize   int64
	logger        logger.Interface
}

func NewFileHandler(
	uploadUC uploadFileUseCase,
	listUC listFilesUseCase,
	fetchUC fetchFileUseCase,
	deleteUC deleteFileUseCase,
	maxFileSize int64,
	logger logger.Interface,
) *FileHandler {
	return &FileHandler{
		uploadUseCase: uploadUC,
		listUseCase:   listUC,
		fetchUseCase:  fetchUC,
		deleteUseCase: deleteUC,
		maxFileSize:   maxFileSize,
		logger:        logger,
	}
}

func (h *FileHandler) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.FileErrorResponse(c, errors.NewUnauthorizedError("User not authenticated"))
		return
	}

	limitBody(c, h.maxFileSize)

	fh, err := c.FormFile(UploadFieldFile)
	if err != nil {
		if isBodyTooLarge(err) {
			utils.FileErrorResponse(c, errors.NewValidationError("File too large"))
			return
		}
		utils.FileErrorResponse(c, errors.NewValidationError("No file provided"))
		return
	}

	upload, err := openUpload(fh)
	if err != nil {
		h.logger.Warnw("failed to open uploaded part", "error", err)
		utils.FileErrorResponse(c, errors.NewValidationError("No file provided"))
		return
	}
	defer upload.file.Close()

	resp, err := h.uploadUseCase.Execute(c.Request.Context(), usecases.UploadFileCommand{
		OwnerID:     userID,
		DisplayName: c.PostForm(UploadFieldFileName),
		Category:    c.PostForm(UploadFieldFileType),
		FileName:    upload.fileName,
		ContentType: upload.contentType,
		Size:        upload.size,
		Content:     upload.file,
	})
	if err != nil {
		utils.FileErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.FileEnvelope{
		Success: true,
		Message: "File uploaded successfully",
		File:    resp,
	})
}

func (h *FileHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.FileErrorResponse(c, errors.NewUnauthorizedError("User not authenticated"))
		return
	}

	files, err := h.listUseCase.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.FileErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.FileEnvelope{
		Success: true,
		Message: "Files retrieved successfully",
		Files:   files,
	})
}

// View streams the file for display in the browser.
func (h *FileHandler) View(c *gin.Context) {
	h.serve(c, "inline", "unknown")
}

// Download streams the file as an attachment.
func (h *FileHandler) Download(c *gin.Context) {
	h.serve(c, "attachment", "download")
}

func (h *FileHandler) serve(c *gin.Context, disposition, fallbackName string) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	content, err := h.fetchUseCase.Execute(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer content.Reader.Close()

	contentType := content.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	fileName := strings.TrimSpace(content.FileName)
	if fileName == "" {
		fileName = fallbackName
	}

	setNoCacheHeaders(c)
	c.DataFromReader(http.StatusOK, content.Size, contentType, content.Reader, map[string]string{
		"Content-Disposition": contentDisposition(disposition, fileName),
	})
}

func (h *FileHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.FileErrorResponse(c, errors.NewUnauthorizedError("User not authenticated"))
		return
	}

	deleted, err := h.deleteUseCase.Execute(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		utils.FileErrorResponse(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, utils.FileEnvelope{
			Success: false,
			Message: "File not found or access denied",
		})
		return
	}

	c.JSON(http.StatusOK, utils.FileEnvelope{
		Success: true,
		Message: "File deleted successfully",
	})
}
