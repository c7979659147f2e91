package domain

import (
	"fmt"
	"time"
)

// EntityType identifies the kind of node a relationship endpoint refers to.
type EntityType string

const (
	EntityTypeOccupation EntityType = "occupation"
	EntityTypeGroup      EntityType = "group"
)

func (t EntityType) String() string { return string(t) }

func (t EntityType) IsValid() bool {
	switch t {
	case EntityTypeOccupation, EntityTypeGroup:
		return true
	}
	return false
}

// RelationshipKind is the direction tag on a stored edge. Every logical
// parent-child link is persisted as two rows: a forward Contains edge
// (parent→child) and its ContainedBy mirror (child→parent).
type RelationshipKind string

const (
	RelationshipContains    RelationshipKind = "contains"
	RelationshipContainedBy RelationshipKind = "contained_by"
)

func (k RelationshipKind) String() string { return string(k) }

func (k RelationshipKind) IsValid() bool {
	switch k {
	case RelationshipContains, RelationshipContainedBy:
		return true
	}
	return false
}

// EntityRef is a tagged reference to either an occupation or a group row.
type EntityRef struct {
	Type EntityType
	ID   int64
}

// OccupationRef returns an EntityRef pointing at an occupation.
func OccupationRef(id int64) EntityRef {
	return EntityRef{Type: EntityTypeOccupation, ID: id}
}

// GroupRef returns an EntityRef pointing at a taxonomy group.
func GroupRef(id int64) EntityRef {
	return EntityRef{Type: EntityTypeGroup, ID: id}
}

func (r EntityRef) String() string {
	return fmt.Sprintf("%s/%d", r.Type, r.ID)
}

func (r EntityRef) IsValid() bool {
	return r.Type.IsValid() && r.ID > 0
}

// Relationship is one stored edge of the taxonomy graph.
type Relationship struct {
	ID        int64
	Source    EntityRef
	Target    EntityRef
	Kind      RelationshipKind
	CreatedAt time.Time
}

// Validate checks the structural rules that hold for every edge regardless
// of graph state: valid endpoints, a known kind, and the two shapes that are
// forbidden outright — occupations never contain groups, and groups are
// never contained by occupations.
func (rel Relationship) Validate() error {
	if !rel.Source.IsValid() {
		return NewValidationError("source", "invalid entity reference")
	}
	if !rel.Target.IsValid() {
		return NewValidationError("target", "invalid entity reference")
	}
	if !rel.Kind.IsValid() {
		return NewValidationError("relationshipType", "must be 'contains' or 'contained_by'")
	}
	if rel.Kind == RelationshipContains &&
		rel.Source.Type == EntityTypeOccupation && rel.Target.Type == EntityTypeGroup {
		return NewValidationError("relationship", "occupations cannot contain groups")
	}
	if rel.Kind == RelationshipContainedBy &&
		rel.Source.Type == EntityTypeGroup && rel.Target.Type == EntityTypeOccupation {
		return NewValidationError("relationship", "groups cannot be contained by occupations")
	}
	return nil
}

// Mirror returns the inverse edge of rel: endpoints swapped, kind flipped.
func (rel Relationship) Mirror() Relationship {
	kind := RelationshipContains
	if rel.Kind == RelationshipContains {
		kind = RelationshipContainedBy
	}
	return Relationship{
		Source: rel.Target,
		Target: rel.Source,
		Kind:   kind,
	}
}

// TreeNode is one entry of a children or roots listing.
type TreeNode struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Type        EntityType `json:"type"`
	HasChildren bool       `json:"hasChildren"`
	ChildCount  int        `json:"childCount"`
}

// ParentInfo describes the current parent of an occupation.
type ParentInfo struct {
	Ref  EntityRef
	Name string
	Code string
}
