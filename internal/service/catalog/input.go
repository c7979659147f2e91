package catalog

import (
	"strings"

	"github.com/talentwire/taxonomy-backend/internal/domain"
)

// SynonymInput is an inline synonym on occupation create: either a reference
// to an existing synonym or a new title.
type SynonymInput struct {
	ID       *int64
	Title    string
	Language string
}

// ParentInput is the optional parent relation on occupation create.
type ParentInput struct {
	Type domain.EntityType
	ID   int64
}

// CreateOccupationInput carries everything a composite occupation create may
// set in one request.
type CreateOccupationInput struct {
	Occupation domain.Occupation
	Synonyms   []SynonymInput
	Parent     *ParentInput
	SourceID   *int64
}

// Validate checks the input before any database work.
func (in CreateOccupationInput) Validate() error {
	if err := in.Occupation.Validate(); err != nil {
		return err
	}

	for _, syn := range in.Synonyms {
		if syn.ID == nil && strings.TrimSpace(syn.Title) == "" {
			return domain.NewValidationError("synonyms", "each synonym needs an id or a title")
		}
	}

	if in.Parent != nil {
		if !in.Parent.Type.IsValid() {
			return domain.NewValidationError("parentType", "must be 'occupation' or 'group'")
		}
		if in.Parent.ID <= 0 {
			return domain.NewValidationError("parentId", "required")
		}
	}

	if in.SourceID != nil && *in.SourceID <= 0 {
		return domain.NewValidationError("sourceId", "must be positive")
	}

	return nil
}

// UpdateOccupationInput carries field updates plus the source mapping
// replacement switch: SourceID set replaces the mapping, SourceSet with a nil
// SourceID clears it, SourceSet false leaves it alone.
type UpdateOccupationInput struct {
	Occupation domain.Occupation
	SourceID   *int64
	SourceSet  bool
}

// UpdateSynonymInput mirrors UpdateOccupationInput for synonyms.
type UpdateSynonymInput struct {
	Synonym   domain.Synonym
	SourceID  *int64
	SourceSet bool
}
