package handlers

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"medrecords/internal/domain/blob"
	"medrecords/internal/shared/logger"
)

type blobOpener interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

var staticContentTypes = map[string]string{
	".pdf":  "application/pdf",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// StaticFileHandler serves profile pictures. Medical files are only
// reachable through the ownership-checked file routes.
type StaticFileHandler struct {
	store  blobOpener
	logger logger.Interface
}

func NewStaticFileHandler(store blobOpener, logger logger.Interface) *StaticFileHandler {
	return &StaticFileHandler{store: store, logger: logger}
}

func (h *StaticFileHandler) Serve(c *gin.Context) {
	p := strings.TrimPrefix(c.Param("path"), "/")
	if !strings.HasPrefix(p, blob.SubfolderProfiles+"/") {
		c.Status(http.StatusNotFound)
		return
	}

	rc, err := h.store.Open(c.Request.Context(), p)
	if err != nil {
		if !stderrors.Is(err, blob.ErrNotFound) && !stderrors.Is(err, blob.ErrInvalidPath) {
			h.logger.Errorw("failed to open static file", "path", p, "error", err)
		}
		c.Status(http.StatusNotFound)
		return
	}
	defer rc.Close()

	contentType, ok := staticContentTypes[strings.ToLower(path.Ext(p))]
	if !ok {
		contentType = "application/octet-stream"
	}
	if strings.HasPrefix(contentType, "image/") {
		c.Header("Cache-Control", "public, max-age=3600")
	}

	c.DataFromReader(http.StatusOK, -1, contentType, rc, nil)
}
