package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"

	"github.com/gin-gonic/gin"

	"medrecords/internal/shared/authctx"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewTestContext creates a test gin.Context with the given method, path, and optional JSON body.
func NewTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	return c, w
}

// SetAuthContext simulates the session middleware.
func SetAuthContext(c *gin.Context, userID string) {
	c.Request = c.Request.WithContext(authctx.WithUserID(c.Request.Context(), userID))
	c.Set("user_id", userID)
}

func SetURLParam(c *gin.Context, key, value string) {
	c.Params = append(c.Params, gin.Param{Key: key, Value: value})
}

// FilePart describes one file in a multipart body. An empty ContentType
// leaves the part without a Content-Type header.
type FilePart struct {
	Field       string
	FileName    string
	ContentType string
	Content     []byte
}

// MultipartBody encodes fields and files and returns the body with its
// Content-Type header value.
func MultipartBody(fields map[string]string, files ...FilePart) (io.Reader, string) {
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.Field+`"; filename="`+f.FileName+`"`)
		if f.ContentType != "" {
			h.Set("Content-Type", f.ContentType)
		}
		part, _ := mw.CreatePart(h)
		_, _ = part.Write(f.Content)
	}
	_ = mw.Close()
	return buf, mw.FormDataContentType()
}

// NewMultipartContext builds a gin.Context carrying a multipart request.
func NewMultipartContext(method, path string, fields map[string]string, files ...FilePart) (*gin.Context, *httptest.ResponseRecorder) {
	body, contentType := MultipartBody(fields, files...)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func ParseResponse(w *httptest.ResponseRecorder, target interface{}) error {
	return json.Unmarshal(w.Body.Bytes(), target)
}

// APIResponse mirrors utils.APIResponse for test assertions.
type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// FileEnvelope mirrors utils.FileEnvelope for test assertions.
type FileEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	File    json.RawMessage `json:"file,omitempty"`
	Files   json.RawMessage `json:"files,omitempty"`
}
