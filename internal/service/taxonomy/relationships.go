package taxonomy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/talentwire/taxonomy-backend/internal/domain"
	"github.com/talentwire/taxonomy-backend/pkg/ctxutil"
)

// CreateRelationship is the generic edge API. The edge may be given in
// either direction; it is normalized to its contains form before the checks,
// and the mirrored pair is inserted in one transaction. Unlike AssignParent
// there is no same-parent shortcut: an occupation that already has a parent
// is always a conflict.
func (s *Service) CreateRelationship(ctx context.Context, rel domain.Relationship) ([]int64, error) {
	actx, ok := ctxutil.AuditContextFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := rel.Validate(); err != nil {
		return nil, err
	}

	// Normalize to parent contains child.
	parent, child := rel.Source, rel.Target
	if rel.Kind == domain.RelationshipContainedBy {
		parent, child = rel.Target, rel.Source
	}

	if parent == child {
		return nil, &domain.SelfReferenceError{ID: child.ID}
	}

	var ids []int64
	err := s.tx.RunInTxWithAudit(ctx, actx, func(txCtx context.Context) error {
		if child.Type == domain.EntityTypeOccupation {
			if err := s.occupations.Lock(txCtx, child.ID); err != nil {
				return fmt.Errorf("lock occupation: %w", err)
			}
		}

		existing, err := s.relationships.GetParentInfo(txCtx, child)
		if err != nil {
			return fmt.Errorf("get current parent: %w", err)
		}
		if existing != nil {
			return &domain.ParentConflictError{
				ChildID:    child.ID,
				Parent:     existing.Ref,
				ParentName: existing.Name,
			}
		}

		cyclic, err := s.isAncestor(txCtx, parent, child)
		if err != nil {
			return fmt.Errorf("cycle check: %w", err)
		}
		if cyclic {
			return &domain.CycleError{
				Node:     parent,
				NodeName: s.entityName(txCtx, parent),
			}
		}

		if err := s.entityExists(txCtx, parent); err != nil {
			return fmt.Errorf("parent %s: %w", parent, err)
		}
		if err := s.entityExists(txCtx, child); err != nil {
			return fmt.Errorf("child %s: %w", child, err)
		}

		ids, err = s.relationships.CreatePair(txCtx, parent, child)
		if err != nil {
			return fmt.Errorf("create relationship pair: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "relationship created",
		slog.String("parent", parent.String()),
		slog.String("child", child.String()),
	)

	return ids, nil
}

// DeleteRelationship removes a stored edge together with its mirror twin.
func (s *Service) DeleteRelationship(ctx context.Context, relationshipID int64) error {
	actx, ok := ctxutil.AuditContextFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTxWithAudit(ctx, actx, func(txCtx context.Context) error {
		rel, err := s.relationships.GetByID(txCtx, relationshipID)
		if err != nil {
			return err
		}

		if _, err := s.relationships.DeletePair(txCtx, rel.Source, rel.Target); err != nil {
			return fmt.Errorf("delete relationship pair: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "relationship deleted",
		slog.Int64("relationship_id", relationshipID),
	)

	return nil
}

// RemoveParent unlinks an occupation from its current parent, deleting both
// edge rows. Returns domain.ErrNotFound when the occupation has no parent.
func (s *Service) RemoveParent(ctx context.Context, childID int64) error {
	actx, ok := ctxutil.AuditContextFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	child := domain.OccupationRef(childID)

	err := s.tx.RunInTxWithAudit(ctx, actx, func(txCtx context.Context) error {
		parent, err := s.relationships.GetParentRef(txCtx, child)
		if err != nil {
			return fmt.Errorf("get current parent: %w", err)
		}
		if parent == nil {
			return fmt.Errorf("occupation %d has no parent: %w", childID, domain.ErrNotFound)
		}

		if _, err := s.relationships.DeletePair(txCtx, *parent, child); err != nil {
			return fmt.Errorf("delete relationship pair: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "parent removed", slog.Int64("occupation_id", childID))

	return nil
}

// ListByEntity returns every stored edge touching the entity.
func (s *Service) ListByEntity(ctx context.Context, ref domain.EntityRef) ([]domain.Relationship, error) {
	if !ref.IsValid() {
		return nil, domain.NewValidationError("entity", "invalid entity reference")
	}
	return s.relationships.ListByEntity(ctx, ref)
}

// Parent returns the current parent of an occupation, or nil when unlinked.
func (s *Service) Parent(ctx context.Context, childID int64) (*domain.ParentInfo, error) {
	if _, err := s.occupations.GetByID(ctx, childID); err != nil {
		return nil, err
	}
	return s.relationships.GetParentInfo(ctx, domain.OccupationRef(childID))
}
