package models

import "time"

// MedicalFileModel represents the database persistence model for uploaded
// medical documents. The content itself lives in blob storage.
type MedicalFileModel struct {
	ID          string     `gorm:"primarykey;size:36"`
	UserID      string     `gorm:"size:36;not null;index:idx_medical_files_owner_uploaded,priority:1"`
	User        *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	DisplayName string     `gorm:"size:255;not null"`
	Category    string     `gorm:"size:32;not null"`
	StoragePath string     `gorm:"size:512;not null;uniqueIndex:idx_medical_files_storage_path"`
	ContentType string     `gorm:"size:255"`
	Size        int64      `gorm:"not null"`
	UploadedAt  time.Time  `gorm:"not null;index:idx_medical_files_owner_uploaded,priority:2"`
}

// TableName specifies the table name for GORM
func (MedicalFileModel) TableName() string {
	return "medical_files"
}
