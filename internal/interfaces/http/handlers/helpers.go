package handlers

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"medrecords/internal/shared/authctx"
)

// multipartOverhead is the allowance for form fields and part headers on top
// of the largest accepted file.
const multipartOverhead = 1 << 20

// currentUserID reads the id set by the session middleware. Handlers never
// take a user id from the request body.
func currentUserID(c *gin.Context) (string, bool) {
	return authctx.UserID(c.Request.Context())
}

// limitBody caps the request body so an oversized upload fails while parsing.
func limitBody(c *gin.Context, maxFileSize int64) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFileSize+multipartOverhead)
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

// openedUpload is a multipart file together with its effective content type.
type openedUpload struct {
	file        multipart.File
	fileName    string
	contentType string
	size        int64
}

// openUpload opens a multipart part. When the part carries no Content-Type
// the type is sniffed from its first bytes.
func openUpload(fh *multipart.FileHeader) (*openedUpload, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}

	contentType := strings.TrimSpace(fh.Header.Get("Content-Type"))
	if contentType == "" {
		mt, err := mimetype.DetectReader(f)
		if err == nil {
			contentType = mt.String()
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			f.Close()
			return nil, err
		}
	}

	return &openedUpload{
		file:        f,
		fileName:    fh.Filename,
		contentType: contentType,
		size:        fh.Size,
	}, nil
}

// contentDisposition builds an inline or attachment header value. Non-ASCII
// names are encoded per RFC 2231.
func contentDisposition(dispositionType, fileName string) string {
	fileName = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, fileName)
	if v := mime.FormatMediaType(dispositionType, map[string]string{"filename": fileName}); v != "" {
		return v
	}
	return dispositionType
}

func setNoCacheHeaders(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
}
