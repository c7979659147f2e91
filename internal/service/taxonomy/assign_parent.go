package taxonomy

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/talentwire/taxonomy-backend/internal/domain"
	"github.com/talentwire/taxonomy-backend/pkg/ctxutil"
)

// AssignParentResult reports what AssignParent did.
type AssignParentResult struct {
	// AlreadyAssigned is true when the occupation was already linked to the
	// requested parent and nothing was written.
	AlreadyAssigned bool

	// RelationshipIDs are the two edge rows created, empty when AlreadyAssigned.
	RelationshipIDs []int64
}

// AssignParent links an occupation under a parent occupation or group,
// enforcing the single-parent rule. Re-assigning the same parent succeeds
// without writing; a different existing parent, a self-reference, or a cycle
// is rejected. All checks and the mirrored pair insert run in one
// transaction, with the child row locked first so concurrent assignments to
// the same child serialize.
func (s *Service) AssignParent(ctx context.Context, childID int64, parent domain.EntityRef) (*AssignParentResult, error) {
	actx, ok := ctxutil.AuditContextFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if !parent.Type.IsValid() {
		return nil, domain.NewValidationError("parentType", "must be 'occupation' or 'group'")
	}
	if parent.ID <= 0 {
		return nil, domain.NewValidationError("parentId", "required")
	}
	if childID <= 0 {
		return nil, domain.NewValidationError("occupationId", "required")
	}

	child := domain.OccupationRef(childID)

	var result AssignParentResult
	err := s.tx.RunInTxWithAudit(ctx, actx, func(txCtx context.Context) error {
		if err := s.occupations.Lock(txCtx, childID); err != nil {
			return fmt.Errorf("lock occupation: %w", err)
		}

		existing, err := s.relationships.GetParentInfo(txCtx, child)
		if err != nil {
			return fmt.Errorf("get current parent: %w", err)
		}
		if existing != nil {
			if existing.Ref == parent {
				result.AlreadyAssigned = true
				return nil
			}
			return &domain.ParentConflictError{
				ChildID:    childID,
				Parent:     existing.Ref,
				ParentName: existing.Name,
			}
		}

		if parent == child {
			return &domain.SelfReferenceError{ID: childID}
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

		ids, err := s.relationships.CreatePair(txCtx, parent, child)
		if err != nil {
			return fmt.Errorf("create relationship pair: %w", err)
		}
		result.RelationshipIDs = ids

		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.AlreadyAssigned {
		s.log.InfoContext(ctx, "parent already assigned",
			slog.Int64("occupation_id", childID),
			slog.String("parent", parent.String()),
		)
	} else {
		s.log.InfoContext(ctx, "parent assigned",
			slog.Int64("occupation_id", childID),
			slog.String("parent", parent.String()),
		)
	}

	return &result, nil
}
