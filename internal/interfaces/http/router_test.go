package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"medrecords/internal/infrastructure/config"
	"medrecords/internal/infrastructure/persistence/models"
	"medrecords/internal/infrastructure/storage"
	"medrecords/internal/interfaces/http/handlers/testutil"
	sharedConfig "medrecords/internal/shared/config"
	"medrecords/internal/shared/logger"
	"medrecords/internal/shared/utils"
)

func testConfig(basePath string) *config.Config {
	return &config.Config{
		Server: sharedConfig.ServerConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Auth: sharedConfig.AuthConfig{
			Password: sharedConfig.PasswordConfig{Scheme: sharedConfig.PasswordSchemeBcrypt, BcryptCost: 4},
			Session:  sharedConfig.SessionConfig{ExpDays: 7},
			Cookie:   sharedConfig.CookieConfig{Path: "/", Secure: true, SameSite: "Strict"},
		},
		Storage: sharedConfig.StorageConfig{
			Driver:                   sharedConfig.StorageDriverLocal,
			BasePath:                 basePath,
			MaxFileSize:              10 << 20,
			MaxProfileImageSize:      5 << 20,
			AllowedExtensions:        []string{".pdf", ".jpg", ".png"},
			AllowedContentTypes:      []string{"application/pdf", "image/jpeg", "image/png"},
			AllowedImageExtensions:   []string{".jpg", ".png"},
			AllowedImageContentTypes: []string{"image/jpeg", "image/png"},
		},
	}
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, gdb.AutoMigrate(models.All()...))

	log := logger.NewNopLogger()
	store, err := storage.NewLocalStore(t.TempDir(), log)
	require.NoError(t, err)

	router := NewRouter(gdb, testConfig(t.TempDir()), store, nil, log)
	router.SetupRoutes()
	return router.GetEngine()
}

type apiClient struct {
	t      *testing.T
	engine *gin.Engine
	cookie *http.Cookie
}

func (a *apiClient) do(req *http.Request) *httptest.ResponseRecorder {
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *apiClient) json(method, path string, body any) *httptest.ResponseRecorder {
	data, err := json.Marshal(body)
	require.NoError(a.t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return a.do(req)
}

func (a *apiClient) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *apiClient) signupAndLogin(email string) {
	w := a.json(http.MethodPost, "/auth/signup", map[string]string{
		"full_name":    "Test Patient",
		"email":        email,
		"gender":       "Female",
		"phone_number": "555-0100",
		"password":     "secret123",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())

	w = a.json(http.MethodPost, "/auth/login", map[string]string{"email": email, "password": "secret123"})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	for _, c := range w.Result().Cookies() {
		if c.Name == utils.SessionTokenCookie {
			a.cookie = c
		}
	}
	require.NotNil(a.t, a.cookie)
}

func (a *apiClient) upload(displayName, category string, part testutil.FilePart) *httptest.ResponseRecorder {
	body, contentType := testutil.MultipartBody(map[string]string{"file_name": displayName, "file_type": category}, part)
	req := httptest.NewRequest(http.MethodPost, "/files/upload", body)
	req.Header.Set("Content-Type", contentType)
	return a.do(req)
}

type listedFile struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size"`
	FileURL  string `json:"file_url"`
}

func (a *apiClient) listFiles() []listedFile {
	w := a.get("/files")
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	var env testutil.FileEnvelope
	require.NoError(a.t, testutil.ParseResponse(w, &env))
	var files []listedFile
	require.NoError(a.t, json.Unmarshal(env.Files, &files))
	return files
}

func TestRouter_SessionLifecycle(t *testing.T) {
	engine := newTestEngine(t)
	client := &apiClient{t: t, engine: engine}

	assert.Equal(t, http.StatusUnauthorized, client.get("/auth/me").Code)

	client.signupAndLogin("patient@example.com")
	assert.True(t, client.cookie.HttpOnly)

	w := client.get("/auth/me")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"patient@example.com"`)
	assert.NotContains(t, w.Body.String(), "secret123")

	w = client.json(http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// the revoked token is no longer accepted even if a client keeps sending it
	assert.Equal(t, http.StatusUnauthorized, client.get("/auth/me").Code)
}

func TestRouter_DuplicateSignupAndBadLogin(t *testing.T) {
	engine := newTestEngine(t)
	client := &apiClient{t: t, engine: engine}
	client.signupAndLogin("dup@example.com")

	w := client.json(http.MethodPost, "/auth/signup", map[string]string{
		"full_name":    "Other",
		"email":        "DUP@example.com",
		"gender":       "Male",
		"phone_number": "555-0101",
		"password":     "secret456",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = client.json(http.MethodPost, "/auth/login", map[string]string{"email": "dup@example.com", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_MedicalFileLifecycle(t *testing.T) {
	engine := newTestEngine(t)
	owner := &apiClient{t: t, engine: engine}
	owner.signupAndLogin("owner@example.com")
	other := &apiClient{t: t, engine: engine}
	other.signupAndLogin("other@example.com")

	content := append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte{'a'}, 2*1024*1024-9)...)
	w := owner.upload("Blood work", "LabReport", testutil.FilePart{
		Field:       "file",
		FileName:    "report.pdf",
		ContentType: "application/pdf",
		Content:     content,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	files := owner.listFiles()
	require.Len(t, files, 1)
	fileID := files[0].ID
	assert.Equal(t, "Blood work", files[0].FileName)
	assert.Equal(t, "LabReport", files[0].FileType)
	assert.EqualValues(t, 2097152, files[0].FileSize)
	assert.Equal(t, "/files/"+fileID+"/view", files[0].FileURL)

	assert.Empty(t, other.listFiles())

	w = owner.get("/files/" + fileID + "/download")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, content, w.Body.Bytes())
	assert.Equal(t, `attachment; filename="Blood work.pdf"`, w.Header().Get("Content-Disposition"))

	w = other.get("/files/" + fileID + "/view")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = other.do(httptest.NewRequest(http.MethodDelete, "/files/"+fileID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = owner.do(httptest.NewRequest(http.MethodDelete, "/files/"+fileID, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusNotFound, owner.get("/files/"+fileID+"/view").Code)
	assert.Empty(t, owner.listFiles())
}

func TestRouter_UploadRejections(t *testing.T) {
	engine := newTestEngine(t)
	client := &apiClient{t: t, engine: engine}

	w := client.upload("x", "LabReport", testutil.FilePart{Field: "file", FileName: "a.pdf", ContentType: "application/pdf", Content: []byte("%PDF-")})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	client.signupAndLogin("rejects@example.com")

	w = client.upload("x", "LabReport", testutil.FilePart{Field: "file", FileName: "run.exe", ContentType: "application/x-msdownload", Content: []byte("MZ")})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = client.upload("x", "Horoscope", testutil.FilePart{Field: "file", FileName: "a.pdf", ContentType: "application/pdf", Content: []byte("%PDF-")})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Empty(t, client.listFiles())
}

func TestRouter_ProfilePictureIsServedStatically(t *testing.T) {
	engine := newTestEngine(t)
	client := &apiClient{t: t, engine: engine}
	client.signupAndLogin("pic@example.com")

	png := []byte("\x89PNG\r\n\x1a\nfake-image")
	body, contentType := testutil.MultipartBody(map[string]string{
		"full_name":    "Pic Patient",
		"email":        "pic@example.com",
		"gender":       "Female",
		"phone_number": "555-0100",
	}, testutil.FilePart{Field: "profile_picture", FileName: "me.png", ContentType: "image/png", Content: png})
	req := httptest.NewRequest(http.MethodPut, "/profile/update", body)
	req.Header.Set("Content-Type", contentType)
	w := client.do(req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var profile struct {
		ProfileImage string `json:"profile_image"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &profile))
	require.NotEmpty(t, profile.ProfileImage)

	anonymous := &apiClient{t: t, engine: engine}
	w = anonymous.get(profile.ProfileImage)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, png, w.Body.Bytes())
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestRouter_Health(t *testing.T) {
	engine := newTestEngine(t)
	client := &apiClient{t: t, engine: engine}

	w := client.get("/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
