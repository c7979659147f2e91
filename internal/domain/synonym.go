package domain

import (
	"strings"
	"time"
)

// Synonym is an alternative title for one or more occupations. Titles are
// globally unique by exact match.
type Synonym struct {
	ID        int64
	Title     string
	TitleOrig *string
	Language  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks field-level rules for create/update.
func (s Synonym) Validate() error {
	var errs []FieldError

	if strings.TrimSpace(s.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "required"})
	}
	if s.Language != "" && len(s.Language) != 2 {
		errs = append(errs, FieldError{Field: "language", Message: "must be a two-letter code"})
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// SynonymFilter defines parameters for searching and paginating synonyms.
type SynonymFilter struct {
	// Search performs ILIKE '%...%' on title.
	Search string
	// SourceID filters synonyms mapped to the given source.
	SourceID *int64
	// OccupationID filters synonyms linked to the given occupation.
	OccupationID *int64
	Limit        int
	Offset       int
}

// OccupationSynonym is one row of the occupation↔synonym join table.
type OccupationSynonym struct {
	ID           int64
	OccupationID int64
	SynonymID    int64
	CreatedAt    time.Time
}
