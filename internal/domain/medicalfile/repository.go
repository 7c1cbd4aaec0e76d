package medicalfile

import "context"

type Repository interface {
	Create(ctx context.Context, file *MedicalFile) error
	// GetByID returns a NotFound error when absent.
	GetByID(ctx context.Context, id string) (*MedicalFile, error)
	// ListByOwner returns the owner's files, newest upload first.
	ListByOwner(ctx context.Context, ownerID string) ([]*MedicalFile, error)
	// Delete removes the row only when it belongs to ownerID and reports
	// whether a row was removed.
	Delete(ctx context.Context, id, ownerID string) (bool, error)
}
