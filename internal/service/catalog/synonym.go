package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/talentwire/taxonomy-backend/internal/domain"
	"github.com/talentwire/taxonomy-backend/pkg/ctxutil"
)

// SynonymWithMappings is a synonym bundled with its source mappings.
type SynonymWithMappings struct {
	Synonym  domain.Synonym
	Mappings []domain.SourceMapping
}

// GetSynonym returns a synonym with its source mappings.
func (s *Service) GetSynonym(ctx context.Context, id int64) (*SynonymWithMappings, error) {
	syn, err := s.synonyms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	mappings, err := s.synonyms.ListSourceMappings(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("synonym mappings: %w", err)
	}

	return &SynonymWithMappings{Synonym: *syn, Mappings: mappings}, nil
}

// ListSynonyms returns one page of synonyms with the filter-wide total.
func (s *Service) ListSynonyms(ctx context.Context, filter domain.SynonymFilter) ([]domain.Synonym, int, error) {
	return s.synonyms.List(ctx, filter)
}

// CreateSynonym inserts a synonym, optionally mapping it to a source.
// A taken title is a conflict.
func (s *Service) CreateSynonym(ctx context.Context, syn domain.Synonym, sourceID *int64) (*domain.Synonym, error) {
	actx, ok := ctxutil.AuditContextFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	syn.Title = strings.TrimSpace(syn.Title)
	if syn.Language == "" {
		syn.Language = "en"
	}
	if err := syn.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Synonym
	err := s.tx.RunInTxWithAudit(ctx, actx, func(txCtx context.Context) error {
		var err error
		created, err = s.synonyms.Create(txCtx, &syn)
		if err != nil {
			return fmt.Errorf("create synonym: %w", err)
		}

		if sourceID != nil {
			_, err := s.synonyms.CreateSourceMapping(txCtx, &domain.SourceMapping{
				EntityID: created.ID,
				SourceID: *sourceID,
			})
			if err != nil {
				return fmt.Errorf("create source mapping: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "synonym created",
		slog.Int64("synonym_id", created.ID),
		slog.String("title", created.Title),
	)

	return created, nil
}

// UpdateSynonym updates synonym fields, replacing the source mapping
// wholesale when the input says so.
func (s *Service) UpdateSynonym(ctx context.Context, input UpdateSynonymInput) (*domain.Synonym, error) {
	actx, ok := ctxutil.AuditContextFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	input.Synonym.Title = strings.TrimSpace(input.Synonym.Title)
	if err := input.Synonym.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Synonym
	err := s.tx.RunInTxWithAudit(ctx, actx, func(txCtx context.Context) error {
		var err error
		updated, err = s.synonyms.Update(txCtx, &input.Synonym)
		if err != nil {
			return fmt.Errorf("update synonym: %w", err)
		}

		if input.SourceSet {
			if err := s.synonyms.DeleteSourceMappings(txCtx, updated.ID); err != nil {
				return fmt.Errorf("clear source mappings: %w", err)
			}
			if input.SourceID != nil {
				_, err := s.synonyms.CreateSourceMapping(txCtx, &domain.SourceMapping{
					EntityID: updated.ID,
					SourceID: *input.SourceID,
				})
				if err != nil {
					return fmt.Errorf("create source mapping: %w", err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "synonym updated", slog.Int64("synonym_id", updated.ID))

	return updated, nil
}

// DeleteSynonym removes a synonym after severing its occupation links and
// source mappings.
func (s *Service) DeleteSynonym(ctx context.Context, id int64) error {
	actx, ok := ctxutil.AuditContextFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTxWithAudit(ctx, actx, func(txCtx context.Context) error {
		if _, err := s.synonyms.GetByID(txCtx, id); err != nil {
			return err
		}

		if err := s.synonyms.DeleteOccupationLinks(txCtx, id); err != nil {
			return fmt.Errorf("delete occupation links: %w", err)
		}
		if err := s.synonyms.DeleteSourceMappings(txCtx, id); err != nil {
			return fmt.Errorf("delete source mappings: %w", err)
		}
		if err := s.synonyms.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete synonym: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "synonym deleted", slog.Int64("synonym_id", id))

	return nil
}
