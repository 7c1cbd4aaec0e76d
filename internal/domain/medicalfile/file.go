package medicalfile

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// MedicalFile is the metadata of one uploaded document. The bytes live in
// blob storage at StoragePath.
type MedicalFile struct {
	ID          string
	DisplayName string
	Category    Category
	StoragePath string
	Size        int64
	UploadedAt  time.Time
	OwnerID     string
	ContentType string
}

func NewMedicalFile(id, displayName string, category Category, storagePath string, size int64, ownerID, contentType string, now time.Time) (*MedicalFile, error) {
	switch {
	case id == "" || ownerID == "":
		return nil, fmt.Errorf("file id and owner id are required")
	case storagePath == "":
		return nil, fmt.Errorf("storage path is required")
	case size <= 0:
		return nil, fmt.Errorf("file size must be positive")
	case !category.IsValid():
		return nil, fmt.Errorf("invalid category %q", category)
	}
	return &MedicalFile{
		ID:          id,
		DisplayName: displayName,
		Category:    category,
		StoragePath: storagePath,
		Size:        size,
		UploadedAt:  now,
		OwnerID:     ownerID,
		ContentType: contentType,
	}, nil
}

// IsOwnedBy reports whether userID may see this file.
func (f *MedicalFile) IsOwnedBy(userID string) bool {
	return userID != "" && f.OwnerID == userID
}

// AccessURL is the client-facing location for viewing the file.
func (f *MedicalFile) AccessURL() string {
	return "/files/" + f.ID + "/view"
}

// Extension returns the lowercase extension of the stored object.
func (f *MedicalFile) Extension() string {
	return strings.ToLower(path.Ext(f.StoragePath))
}

// DownloadName is the display name with the stored extension appended when
// the display name has none.
func (f *MedicalFile) DownloadName() string {
	name := strings.TrimSpace(f.DisplayName)
	if name == "" {
		name = "download"
	}
	if path.Ext(name) == "" {
		name += f.Extension()
	}
	return name
}
