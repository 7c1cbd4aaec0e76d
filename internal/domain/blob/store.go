// Package blob defines the port for storing uploaded file content.
package blob

import (
	"context"
	"errors"
	"io"
)

// Subfolders under the storage root. Paths handed out by a Store always
// start with one of these.
const (
	SubfolderMedicalFiles = "medical-files"
	SubfolderProfiles     = "profiles"
)

var (
	ErrNotFound    = errors.New("blob not found")
	ErrInvalidPath = errors.New("invalid blob path")
)

// Store keeps binary content addressed by relative paths such as
// "medical-files/report_Ab12Cd34Ef56.pdf".
type Store interface {
	// Save writes r under subfolder using a sanitized, collision-free name
	// derived from suggestedName and returns the relative path and byte count.
	Save(ctx context.Context, r io.Reader, suggestedName, contentType, subfolder string) (string, int64, error)
	// Open returns ErrNotFound when nothing is stored at path.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete reports false when nothing was stored at path.
	Delete(ctx context.Context, path string) (bool, error)
	Exists(ctx context.Context, path string) (bool, error)
}

// IsKnownSubfolder reports whether s is one of the storage subfolders.
func IsKnownSubfolder(s string) bool {
	return s == SubfolderMedicalFiles || s == SubfolderProfiles
}
