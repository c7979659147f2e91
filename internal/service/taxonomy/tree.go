package taxonomy

import (
	"context"

	"github.com/talentwire/taxonomy-backend/internal/domain"
)

// Children returns the direct children of a node with per-child subtree counts.
func (s *Service) Children(ctx context.Context, ref domain.EntityRef) ([]domain.TreeNode, error) {
	if !ref.IsValid() {
		return nil, domain.NewValidationError("entity", "invalid entity reference")
	}

	if err := s.entityExists(ctx, ref); err != nil {
		return nil, err
	}

	return s.relationships.Children(ctx, ref)
}

// Roots returns the top-level groups of the taxonomy.
func (s *Service) Roots(ctx context.Context) ([]domain.TreeNode, error) {
	return s.relationships.Roots(ctx)
}

// Ancestors returns the chain of ancestors of a node, nearest first.
func (s *Service) Ancestors(ctx context.Context, ref domain.EntityRef) ([]domain.ParentInfo, error) {
	if !ref.IsValid() {
		return nil, domain.NewValidationError("entity", "invalid entity reference")
	}

	var chain []domain.ParentInfo
	visited := map[domain.EntityRef]bool{ref: true}

	cur := ref
	for hops := 0; hops < maxAncestorHops; hops++ {
		info, err := s.relationships.GetParentInfo(ctx, cur)
		if err != nil {
			return nil, err
		}
		if info == nil || visited[info.Ref] {
			break
		}
		visited[info.Ref] = true
		chain = append(chain, *info)
		cur = info.Ref
	}

	if chain == nil {
		chain = []domain.ParentInfo{}
	}

	return chain, nil
}

// Descendants returns the closure of nodes below the entity.
func (s *Service) Descendants(ctx context.Context, ref domain.EntityRef) ([]domain.EntityRef, error) {
	if !ref.IsValid() {
		return nil, domain.NewValidationError("entity", "invalid entity reference")
	}
	return s.relationships.Descendants(ctx, ref)
}
