// Package taxonomy implements the relationship graph engine: single-parent
// assignment, generic edge management, and tree traversal over the mirrored
// contains/contained_by edge pairs.
package taxonomy

import (
	"context"
	"log/slog"

	"github.com/talentwire/taxonomy-backend/internal/domain"
)

type relationshipRepo interface {
	CreatePair(ctx context.Context, parent, child domain.EntityRef) ([]int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Relationship, error)
	DeletePair(ctx context.Context, a, b domain.EntityRef) (int, error)
	GetParentRef(ctx context.Context, ref domain.EntityRef) (*domain.EntityRef, error)
	GetParentInfo(ctx context.Context, ref domain.EntityRef) (*domain.ParentInfo, error)
	Children(ctx context.Context, ref domain.EntityRef) ([]domain.TreeNode, error)
	Roots(ctx context.Context) ([]domain.TreeNode, error)
	Descendants(ctx context.Context, ref domain.EntityRef) ([]domain.EntityRef, error)
	ListByEntity(ctx context.Context, ref domain.EntityRef) ([]domain.Relationship, error)
}

type occupationRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Occupation, error)
	Lock(ctx context.Context, id int64) error
}

type groupRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Group, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
	RunInTxWithAudit(ctx context.Context, actx domain.AuditContext, fn func(ctx context.Context) error) error
}

// maxAncestorHops caps the upward walk during cycle detection. The visited
// set is the real guard; the cap is a backstop against corrupted data.
const maxAncestorHops = 50

// Service provides taxonomy graph operations.
type Service struct {
	relationships relationshipRepo
	occupations   occupationRepo
	groups        groupRepo
	tx            txManager
	log           *slog.Logger
}

// NewService creates a new taxonomy service.
func NewService(
	log *slog.Logger,
	relationships relationshipRepo,
	occupations occupationRepo,
	groups groupRepo,
	tx txManager,
) *Service {
	return &Service{
		relationships: relationships,
		occupations:   occupations,
		groups:        groups,
		tx:            tx,
		log:           log.With("service", "taxonomy"),
	}
}

// entityExists verifies that the referenced occupation or group row exists.
func (s *Service) entityExists(ctx context.Context, ref domain.EntityRef) error {
	switch ref.Type {
	case domain.EntityTypeOccupation:
		_, err := s.occupations.GetByID(ctx, ref.ID)
		return err
	case domain.EntityTypeGroup:
		_, err := s.groups.GetByID(ctx, ref.ID)
		return err
	default:
		return domain.NewValidationError("entityType", "must be 'occupation' or 'group'")
	}
}

// entityName returns the display label of the referenced entity, or "" when
// the row is missing. Used only to enrich error messages.
func (s *Service) entityName(ctx context.Context, ref domain.EntityRef) string {
	switch ref.Type {
	case domain.EntityTypeOccupation:
		occ, err := s.occupations.GetByID(ctx, ref.ID)
		if err != nil {
			return ""
		}
		return occ.PreferredLabelEn
	case domain.EntityTypeGroup:
		grp, err := s.groups.GetByID(ctx, ref.ID)
		if err != nil {
			return ""
		}
		return grp.PreferredLabelEn
	}
	return ""
}

// isAncestor reports whether candidate appears in the ancestor chain of
// start (inclusive of start itself). The walk follows contained_by edges
// with a visited set and a hop cap.
func (s *Service) isAncestor(ctx context.Context, start, candidate domain.EntityRef) (bool, error) {
	visited := map[domain.EntityRef]bool{}

	cur := &start
	for hops := 0; cur != nil && hops < maxAncestorHops; hops++ {
		if *cur == candidate {
			return true, nil
		}
		if visited[*cur] {
			break
		}
		visited[*cur] = true

		next, err := s.relationships.GetParentRef(ctx, *cur)
		if err != nil {
			return false, err
		}
		cur = next
	}

	return false, nil
}
