package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/talentwire/taxonomy-backend/internal/domain"
)

// SearchResults groups the capped per-kind matches of a global search.
type SearchResults struct {
	Occupations []domain.Occupation `json:"occupations"`
	Synonyms    []domain.Synonym    `json:"synonyms"`
	Groups      []domain.Group      `json:"groups"`
}

// Search runs a global search across occupations, synonyms, and groups.
func (s *Service) Search(ctx context.Context, query string) (*SearchResults, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewValidationError("q", "required")
	}

	occupations, err := s.occupations.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search occupations: %w", err)
	}

	synonyms, err := s.synonyms.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search synonyms: %w", err)
	}

	groups, err := s.groups.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search groups: %w", err)
	}

	return &SearchResults{
		Occupations: occupations,
		Synonyms:    synonyms,
		Groups:      groups,
	}, nil
}
