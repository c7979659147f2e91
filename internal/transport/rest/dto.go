package rest

import (
	"encoding/json"
	"time"

	"github.com/talentwire/taxonomy-backend/internal/domain"
	"github.com/talentwire/taxonomy-backend/internal/service/catalog"
)

type occupationResponse struct {
	ID               int64     `json:"id"`
	ESCOCode         *string   `json:"escoCode"`
	URI              *string   `json:"uri"`
	PreferredLabelEn string    `json:"preferredLabelEn"`
	PreferredLabelAr *string   `json:"preferredLabelAr"`
	DescriptionEn    *string   `json:"descriptionEn"`
	DescriptionAr    *string   `json:"descriptionAr"`
	Definition       *string   `json:"definition"`
	ScopeNote        *string   `json:"scopeNote"`
	IsGenericTitle   bool      `json:"isGenericTitle"`
	MinCareerLevel   *int      `json:"minCareerLevel"`
	MaxCareerLevel   *int      `json:"maxCareerLevel"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toOccupationResponse(o domain.Occupation) occupationResponse {
	return occupationResponse{
		ID:               o.ID,
		ESCOCode:         o.ESCOCode,
		URI:              o.URI,
		PreferredLabelEn: o.PreferredLabelEn,
		PreferredLabelAr: o.PreferredLabelAr,
		DescriptionEn:    o.DescriptionEn,
		DescriptionAr:    o.DescriptionAr,
		Definition:       o.Definition,
		ScopeNote:        o.ScopeNote,
		IsGenericTitle:   o.IsGenericTitle,
		MinCareerLevel:   o.MinCareerLevel,
		MaxCareerLevel:   o.MaxCareerLevel,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
}

func toOccupationResponses(occs []domain.Occupation) []occupationResponse {
	out := make([]occupationResponse, 0, len(occs))
	for _, o := range occs {
		out = append(out, toOccupationResponse(o))
	}
	return out
}

type synonymResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	TitleOrig *string   `json:"titleOrig"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toSynonymResponse(s domain.Synonym) synonymResponse {
	return synonymResponse{
		ID:        s.ID,
		Title:     s.Title,
		TitleOrig: s.TitleOrig,
		Language:  s.Language,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toSynonymResponses(syns []domain.Synonym) []synonymResponse {
	out := make([]synonymResponse, 0, len(syns))
	for _, s := range syns {
		out = append(out, toSynonymResponse(s))
	}
	return out
}

type groupResponse struct {
	ID               int64     `json:"id"`
	ESCOCode         *string   `json:"escoCode"`
	PreferredLabelEn string    `json:"preferredLabelEn"`
	DescriptionEn    *string   `json:"descriptionEn"`
	DescriptionAr    *string   `json:"descriptionAr"`
	AltLabels        *string   `json:"altLabels"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toGroupResponse(g domain.Group) groupResponse {
	return groupResponse{
		ID:               g.ID,
		ESCOCode:         g.ESCOCode,
		PreferredLabelEn: g.PreferredLabelEn,
		DescriptionEn:    g.DescriptionEn,
		DescriptionAr:    g.DescriptionAr,
		AltLabels:        g.AltLabels,
		CreatedAt:        g.CreatedAt,
		UpdatedAt:        g.UpdatedAt,
	}
}

func toGroupResponses(groups []domain.Group) []groupResponse {
	out := make([]groupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroupResponse(g))
	}
	return out
}

type sourceResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toSourceResponse(s domain.Source) sourceResponse {
	return sourceResponse{ID: s.ID, Name: s.Name, Description: s.Description, CreatedAt: s.CreatedAt}
}

type sourceMappingResponse struct {
	ID                 int64   `json:"id"`
	SourceID           int64   `json:"sourceId"`
	IsVerified         bool    `json:"isVerified"`
	VerificationMethod *string `json:"verificationMethod"`
	ConfidenceScore    float64 `json:"confidenceScore"`
	IsModerated        bool    `json:"isModerated"`
}

func toSourceMappingResponses(mappings []domain.SourceMapping) []sourceMappingResponse {
	out := make([]sourceMappingResponse, 0, len(mappings))
	for _, m := range mappings {
		out = append(out, sourceMappingResponse{
			ID:                 m.ID,
			SourceID:           m.SourceID,
			IsVerified:         m.IsVerified,
			VerificationMethod: m.VerificationMethod,
			ConfidenceScore:    m.ConfidenceScore,
			IsModerated:        m.IsModerated,
		})
	}
	return out
}

type parentResponse struct {
	Type domain.EntityType `json:"type"`
	ID   int64             `json:"id"`
	Name string            `json:"name"`
	Code string            `json:"code,omitempty"`
}

func toParentResponse(p *domain.ParentInfo) *parentResponse {
	if p == nil {
		return nil
	}
	return &parentResponse{Type: p.Ref.Type, ID: p.Ref.ID, Name: p.Name, Code: p.Code}
}

type occupationChildResponse struct {
	ID               int64    `json:"id"`
	PreferredLabelEn string   `json:"preferredLabelEn"`
	PreferredLabelAr *string  `json:"preferredLabelAr"`
	ESCOCode         *string  `json:"escoCode"`
	Synonyms         []string `json:"synonyms"`
}

type occupationDetailsResponse struct {
	Occupation occupationResponse        `json:"occupation"`
	Parent     *parentResponse           `json:"parent"`
	Children   []occupationChildResponse `json:"children"`
}

func toOccupationDetailsResponse(d *domain.OccupationDetails) occupationDetailsResponse {
	children := make([]occupationChildResponse, 0, len(d.Children))
	for _, c := range d.Children {
		children = append(children, occupationChildResponse{
			ID:               c.ID,
			PreferredLabelEn: c.PreferredLabelEn,
			PreferredLabelAr: c.PreferredLabelAr,
			ESCOCode:         c.ESCOCode,
			Synonyms:         c.Synonyms,
		})
	}
	return occupationDetailsResponse{
		Occupation: toOccupationResponse(d.Occupation),
		Parent:     toParentResponse(d.Parent),
		Children:   children,
	}
}

type relationshipResponse struct {
	ID               int64  `json:"id"`
	SourceEntityType string `json:"sourceEntityType"`
	SourceEntityID   int64  `json:"sourceEntityId"`
	TargetEntityType string `json:"targetEntityType"`
	TargetEntityID   int64  `json:"targetEntityId"`
	RelationshipType string `json:"relationshipType"`
}

func toRelationshipResponses(rels []domain.Relationship) []relationshipResponse {
	out := make([]relationshipResponse, 0, len(rels))
	for _, rel := range rels {
		out = append(out, relationshipResponse{
			ID:               rel.ID,
			SourceEntityType: rel.Source.Type.String(),
			SourceEntityID:   rel.Source.ID,
			TargetEntityType: rel.Target.Type.String(),
			TargetEntityID:   rel.Target.ID,
			RelationshipType: rel.Kind.String(),
		})
	}
	return out
}

// occupationRequest is the writable field set of an occupation.
type occupationRequest struct {
	ESCOCode         *string `json:"escoCode"`
	URI              *string `json:"uri"`
	PreferredLabelEn string  `json:"preferredLabelEn"`
	PreferredLabelAr *string `json:"preferredLabelAr"`
	DescriptionEn    *string `json:"descriptionEn"`
	DescriptionAr    *string `json:"descriptionAr"`
	Definition       *string `json:"definition"`
	ScopeNote        *string `json:"scopeNote"`
	IsGenericTitle   bool    `json:"isGenericTitle"`
	MinCareerLevel   *int    `json:"minCareerLevel"`
	MaxCareerLevel   *int    `json:"maxCareerLevel"`
}

func (req occupationRequest) toDomain() domain.Occupation {
	return domain.Occupation{
		ESCOCode:         req.ESCOCode,
		URI:              req.URI,
		PreferredLabelEn: req.PreferredLabelEn,
		PreferredLabelAr: req.PreferredLabelAr,
		DescriptionEn:    req.DescriptionEn,
		DescriptionAr:    req.DescriptionAr,
		Definition:       req.Definition,
		ScopeNote:        req.ScopeNote,
		IsGenericTitle:   req.IsGenericTitle,
		MinCareerLevel:   req.MinCareerLevel,
		MaxCareerLevel:   req.MaxCareerLevel,
	}
}

// synonymInputRequest is one inline synonym on occupation create: an
// existing synonym by ID or a new one by title.
type synonymInputRequest struct {
	ID       *int64 `json:"id"`
	Title    string `json:"title"`
	Language string `json:"language"`
}

func toSynonymInputs(reqs []synonymInputRequest) []catalog.SynonymInput {
	out := make([]catalog.SynonymInput, 0, len(reqs))
	for _, req := range reqs {
		out = append(out, catalog.SynonymInput{ID: req.ID, Title: req.Title, Language: req.Language})
	}
	return out
}

// optionalID distinguishes an absent JSON field from an explicit null so
// updates can tell "leave the source mapping alone" from "clear it".
type optionalID struct {
	Set   bool
	Value *int64
}

func (o *optionalID) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}
