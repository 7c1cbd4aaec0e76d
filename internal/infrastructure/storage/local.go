package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"medrecords/internal/domain/blob"
	"medrecords/internal/shared/logger"
)

const (
	dirPerm  = 0750
	filePerm = 0640

	maxNameAttempts = 3
)

// LocalStore keeps blobs on the local (or mounted) filesystem below basePath.
type LocalStore struct {
	basePath string
	logger   logger.Interface
}

func NewLocalStore(basePath string, log logger.Interface) (*LocalStore, error) {
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage base path: %w", err)
	}
	if err := os.MkdirAll(abs, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create storage base path: %w", err)
	}
	return &LocalStore{basePath: abs, logger: log}, nil
}

func (s *LocalStore) Save(ctx context.Context, r io.Reader, suggestedName, contentType, subfolder string) (string, int64, error) {
	if !blob.IsKnownSubfolder(subfolder) {
		return "", 0, blob.ErrInvalidPath
	}
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	dir := filepath.Join(s.basePath, subfolder)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", 0, fmt.Errorf("failed to create storage directory: %w", err)
	}

	var (
		file *os.File
		rel  string
	)
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name, err := BuildObjectName(suggestedName)
		if err != nil {
			return "", 0, fmt.Errorf("failed to build object name: %w", err)
		}
		rel = path.Join(subfolder, name)
		file, err = os.OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", 0, fmt.Errorf("failed to create blob: %w", err)
		}
		file = nil
	}
	if file == nil {
		return "", 0, fmt.Errorf("failed to allocate a unique blob name for %q", suggestedName)
	}

	written, copyErr := io.Copy(file, r)
	closeErr := file.Close()
	if copyErr != nil || closeErr != nil {
		if rmErr := os.Remove(filepath.Join(s.basePath, filepath.FromSlash(rel))); rmErr != nil {
			s.logger.Warnw("failed to remove partial blob", "path", rel, "error", rmErr)
		}
		if copyErr != nil {
			return "", 0, fmt.Errorf("failed to write blob: %w", copyErr)
		}
		return "", 0, fmt.Errorf("failed to close blob: %w", closeErr)
	}

	s.logger.Debugw("blob saved", "path", rel, "size", written, "content_type", contentType)
	return rel, written, nil
}

func (s *LocalStore) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	full, err := s.resolve(p)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, blob.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat blob: %w", err)
	}
	if info.IsDir() {
		f.Close()
		return nil, blob.ErrNotFound
	}
	return f, nil
}

func (s *LocalStore) Delete(ctx context.Context, p string) (bool, error) {
	full, err := s.resolve(p)
	if err != nil {
		return false, err
	}
	if err := os.Remove(full); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete blob: %w", err)
	}
	return true, nil
}

func (s *LocalStore) Exists(ctx context.Context, p string) (bool, error) {
	full, err := s.resolve(p)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat blob: %w", err)
	}
	return !info.IsDir(), nil
}

// resolve maps a validated relative path to an absolute path that is
// guaranteed to stay inside basePath.
func (s *LocalStore) resolve(p string) (string, error) {
	if err := ValidatePath(p); err != nil {
		return "", err
	}
	full := filepath.Join(s.basePath, filepath.FromSlash(p))
	if !strings.HasPrefix(full, s.basePath+string(filepath.Separator)) {
		return "", blob.ErrInvalidPath
	}
	return full, nil
}
