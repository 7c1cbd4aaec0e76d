package user

import (
	"strings"

	"medrecords/internal/shared/errors"
)

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

func (g Gender) String() string { return string(g) }

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale
}

// ParseGender accepts any casing of a known gender name.
func ParseGender(s string) (Gender, error) {
	switch {
	case strings.EqualFold(strings.TrimSpace(s), string(GenderMale)):
		return GenderMale, nil
	case strings.EqualFold(strings.TrimSpace(s), string(GenderFemale)):
		return GenderFemale, nil
	default:
		return "", errors.NewValidationError("Invalid gender", "gender must be Male or Female")
	}
}
