package domain

import (
	"strings"
	"time"
)

// Group is a taxonomy classification node (an ISCO-like branch). Groups can
// contain occupations or other groups but never carry synonyms directly.
type Group struct {
	ID               int64
	ESCOCode         *string
	PreferredLabelEn string
	DescriptionEn    *string
	DescriptionAr    *string
	AltLabels        *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks field-level rules for create/update.
func (g Group) Validate() error {
	if strings.TrimSpace(g.PreferredLabelEn) == "" {
		return NewValidationError("preferredLabelEn", "required")
	}
	return nil
}
