package dto

import (
	"time"

	"medrecords/internal/domain/medicalfile"
)

// MedicalFileResponse is the public view of an uploaded medical document.
type MedicalFileResponse struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	FileType    string    `json:"file_type"`
	FileSize    int64     `json:"file_size"`
	UploadDate  time.Time `json:"upload_date"`
	ContentType string    `json:"content_type"`
	FileURL     string    `json:"file_url"`
}

func ToMedicalFileResponse(f *medicalfile.MedicalFile) *MedicalFileResponse {
	if f == nil {
		return nil
	}
	return &MedicalFileResponse{
		ID:          f.ID,
		FileName:    f.DisplayName,
		FileType:    f.Category.String(),
		FileSize:    f.Size,
		UploadDate:  f.UploadedAt,
		ContentType: f.ContentType,
		FileURL:     f.AccessURL(),
	}
}

// ToMedicalFileResponseList never returns nil so the list renders as [].
func ToMedicalFileResponseList(files []*medicalfile.MedicalFile) []*MedicalFileResponse {
	out := make([]*MedicalFileResponse, 0, len(files))
	for _, f := range files {
		out = append(out, ToMedicalFileResponse(f))
	}
	return out
}
