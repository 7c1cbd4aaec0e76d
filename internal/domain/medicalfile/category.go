package medicalfile

import (
	"strings"

	"medrecords/internal/shared/errors"
)

// Category classifies an uploaded medical document.
type Category string

const (
	CategoryLabReport    Category = "LabReport"
	CategoryPrescription Category = "Prescription"
	CategoryXRay         Category = "XRay"
	CategoryBloodReport  Category = "BloodReport"
	CategoryMRIScan      Category = "MRIScan"
	CategoryCTScan       Category = "CTScan"
)

var categories = []Category{
	CategoryLabReport,
	CategoryPrescription,
	CategoryXRay,
	CategoryBloodReport,
	CategoryMRIScan,
	CategoryCTScan,
}

// Categories lists every known category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, known := range categories {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", errors.NewValidationError("Invalid file type",
		"file_type must be one of LabReport, Prescription, XRay, BloodReport, MRIScan, CTScan")
}
