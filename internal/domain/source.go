package domain

import (
	"strings"
	"time"
)

// Source is a provenance tag attachable to occupations and synonyms.
type Source struct {
	ID          int64
	Name        string
	Description *string
	CreatedAt   time.Time
}

// Validate checks field-level rules for create/update.
func (s Source) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return NewValidationError("name", "required")
	}
	return nil
}

// SourceMapping links an occupation or synonym to a source with verification
// metadata. At most one source per entity is kept; updates replace the
// mapping wholesale.
type SourceMapping struct {
	ID                 int64
	EntityID           int64
	SourceID           int64
	IsVerified         bool
	VerificationMethod *string
	ConfidenceScore    float64
	IsModerated        bool
	CreatedAt          time.Time
}

// SourceCount is a per-source aggregate used by the dashboard.
type SourceCount struct {
	SourceID   int64  `json:"sourceId"`
	SourceName string `json:"sourceName"`
	Count      int    `json:"count"`
}
