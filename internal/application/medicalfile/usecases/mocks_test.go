package usecases

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"medrecords/internal/domain/blob"
	"medrecords/internal/domain/medicalfile"
)

type mockFileRepository struct {
	mock.Mock
}

func (m *mockFileRepository) Create(ctx context.Context, file *medicalfile.MedicalFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *mockFileRepository) GetByID(ctx context.Context, id string) (*medicalfile.MedicalFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*medicalfile.MedicalFile), args.Error(1)
}

func (m *mockFileRepository) ListByOwner(ctx context.Context, ownerID string) ([]*medicalfile.MedicalFile, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*medicalfile.MedicalFile), args.Error(1)
}

func (m *mockFileRepository) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Bool(0), args.Error(1)
}

// memStore is an in-memory blob.Store with injectable failures.
type memStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	seq       int
	saveErr   error
	deleteErr error
	openErr   error
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (s *memStore) Save(_ context.Context, r io.Reader, suggestedName, _, subfolder string) (string, int64, error) {
	if s.saveErr != nil {
		return "", 0, s.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	p := fmt.Sprintf("%s/%d_%s", subfolder, s.seq, suggestedName)
	s.objects[p] = data
	return p, int64(len(data)), nil
}

func (s *memStore) Open(_ context.Context, p string) (io.ReadCloser, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[p]
	if !ok {
		return nil, blob.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memStore) Delete(_ context.Context, p string) (bool, error) {
	if s.deleteErr != nil {
		return false, s.deleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[p]
	delete(s.objects, p)
	return ok, nil
}

func (s *memStore) Exists(_ context.Context, p string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[p]
	return ok, nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

var testNow = time.Date(2026, 6, 1, 8, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func newTestPolicy() *blob.UploadPolicy {
	return blob.NewUploadPolicy(1024,
		[]string{".pdf", ".jpg", ".jpeg", ".png", ".gif", ".doc", ".docx"},
		[]string{"application/pdf", "image/jpeg", "image/png", "image/gif", "application/msword", "application/octet-stream"},
	)
}

func storedFile(id, ownerID, path string) *medicalfile.MedicalFile {
	return &medicalfile.MedicalFile{
		ID:          id,
		DisplayName: "Blood panel",
		Category:    medicalfile.CategoryBloodReport,
		StoragePath: path,
		Size:        5,
		UploadedAt:  testNow,
		OwnerID:     ownerID,
		ContentType: "application/pdf",
	}
}
