package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// ParentConflictError is returned when an occupation that already has a
// parent is assigned a different one. It carries the current parent so the
// caller can name it.
type ParentConflictError struct {
	ChildID    int64
	Parent     EntityRef
	ParentName string
}

func (e *ParentConflictError) Error() string {
	return fmt.Sprintf("occupation %d is already linked to parent %q (%s %d); multiple parents are not allowed",
		e.ChildID, e.ParentName, e.Parent.Type, e.Parent.ID)
}

func (e *ParentConflictError) Unwrap() error { return ErrConflict }

// CycleError is returned when a relationship would make a node an ancestor
// of its own ancestor chain. Node identifies the entity that closes the cycle.
type CycleError struct {
	Node     EntityRef
	NodeName string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular relationship: %q (%s %d) would be both ancestor and descendant",
		e.NodeName, e.Node.Type, e.Node.ID)
}

func (e *CycleError) Unwrap() error { return ErrConflict }

// SelfReferenceError is returned when an occupation is assigned as its own parent.
type SelfReferenceError struct {
	ID int64
}

func (e *SelfReferenceError) Error() string {
	return fmt.Sprintf("occupation %d cannot be its own parent", e.ID)
}

func (e *SelfReferenceError) Unwrap() error { return ErrValidation }

// HierarchyError is returned when merging an occupation into its own
// descendant, which would sever the subtree from the rest of the tree.
type HierarchyError struct {
	SourceID int64
	TargetID int64
}

func (e *HierarchyError) Error() string {
	return fmt.Sprintf("merge not allowed: occupation %d is a descendant of occupation %d; merging would break the hierarchy",
		e.TargetID, e.SourceID)
}

func (e *HierarchyError) Unwrap() error { return ErrConflict }
