package domain

import (
	"strings"
	"time"
)

// Career level bounds. Levels are ordinal stages from student (0) to
// executive (6).
const (
	CareerLevelMin = 0
	CareerLevelMax = 6
)

// Occupation is a leaf (or inner) node of the taxonomy carrying the actual
// occupation identity: labels per language, descriptions, and career range.
type Occupation struct {
	ID               int64
	ESCOCode         *string
	URI              *string
	PreferredLabelEn string
	PreferredLabelAr *string
	DescriptionEn    *string
	DescriptionAr    *string
	Definition       *string
	ScopeNote        *string
	IsGenericTitle   bool
	MinCareerLevel   *int
	MaxCareerLevel   *int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Validate checks field-level rules for create/update.
func (o Occupation) Validate() error {
	var errs []FieldError

	if strings.TrimSpace(o.PreferredLabelEn) == "" {
		errs = append(errs, FieldError{Field: "preferredLabelEn", Message: "required"})
	}
	if o.MinCareerLevel != nil && (*o.MinCareerLevel < CareerLevelMin || *o.MinCareerLevel > CareerLevelMax) {
		errs = append(errs, FieldError{Field: "minCareerLevel", Message: "must be between 0 and 6"})
	}
	if o.MaxCareerLevel != nil && (*o.MaxCareerLevel < CareerLevelMin || *o.MaxCareerLevel > CareerLevelMax) {
		errs = append(errs, FieldError{Field: "maxCareerLevel", Message: "must be between 0 and 6"})
	}
	if o.MinCareerLevel != nil && o.MaxCareerLevel != nil && *o.MinCareerLevel > *o.MaxCareerLevel {
		errs = append(errs, FieldError{Field: "maxCareerLevel", Message: "must not be less than minCareerLevel"})
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// OccupationFilter defines parameters for searching and paginating occupations.
type OccupationFilter struct {
	// Search performs ILIKE '%...%' on both preferred labels.
	Search string
	// SourceID filters occupations mapped to the given source.
	SourceID *int64
	// Unlinked filters occupations with no incoming contains-edge.
	Unlinked bool
	Limit    int
	Offset   int
}

// OccupationDetails is an occupation together with its position in the tree.
type OccupationDetails struct {
	Occupation Occupation
	Parent     *ParentInfo
	Children   []OccupationChild
}

// OccupationChild is a child occupation with its synonym titles aggregated.
type OccupationChild struct {
	ID               int64
	PreferredLabelEn string
	PreferredLabelAr *string
	ESCOCode         *string
	Synonyms         []string
}
