package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/talentwire/taxonomy-backend/internal/domain"
	"github.com/talentwire/taxonomy-backend/pkg/ctxutil"
)

// GetOccupation returns a single occupation row.
func (s *Service) GetOccupation(ctx context.Context, id int64) (*domain.Occupation, error) {
	return s.occupations.GetByID(ctx, id)
}

// ListOccupations returns one page of occupations with the filter-wide total.
func (s *Service) ListOccupations(ctx context.Context, filter domain.OccupationFilter) ([]domain.Occupation, int, error) {
	return s.occupations.List(ctx, filter)
}

// OccupationSynonyms returns the synonyms linked to an occupation.
func (s *Service) OccupationSynonyms(ctx context.Context, id int64) ([]domain.Synonym, error) {
	if _, err := s.occupations.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.occupations.ListSynonyms(ctx, id)
}

// OccupationDetails returns an occupation with its parent and its child
// occupations carrying aggregated synonym titles.
func (s *Service) OccupationDetails(ctx context.Context, id int64) (*domain.OccupationDetails, error) {
	occ, err := s.occupations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	parent, err := s.relationships.GetParentInfo(ctx, domain.OccupationRef(id))
	if err != nil {
		return nil, fmt.Errorf("occupation parent: %w", err)
	}

	children, err := s.occupations.ChildrenWithSynonyms(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("occupation children: %w", err)
	}

	return &domain.OccupationDetails{
		Occupation: *occ,
		Parent:     parent,
		Children:   children,
	}, nil
}

// CreateOccupation inserts an occupation together with its inline synonyms,
// optional parent relation, and optional source mapping, all in one audited
// transaction. A duplicate English label is rejected up front.
func (s *Service) CreateOccupation(ctx context.Context, input CreateOccupationInput) (*domain.Occupation, error) {
	actx, ok := ctxutil.AuditContextFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	label := strings.TrimSpace(input.Occupation.PreferredLabelEn)
	if existing, err := s.occupations.GetByLabel(ctx, label); err == nil {
		return nil, fmt.Errorf("occupation %q already exists (id %d): %w",
			label, existing.ID, domain.ErrAlreadyExists)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}

	occ := input.Occupation
	occ.PreferredLabelEn = label

	var created *domain.Occupation
	err := s.tx.RunInTxWithAudit(ctx, actx, func(txCtx context.Context) error {
		var err error
		created, err = s.occupations.Create(txCtx, &occ)
		if err != nil {
			return fmt.Errorf("create occupation: %w", err)
		}

		for _, syn := range input.Synonyms {
			synonymID, err := s.resolveSynonym(txCtx, syn)
			if err != nil {
				return err
			}
			if err := s.occupations.LinkSynonym(txCtx, created.ID, synonymID); err != nil {
				return fmt.Errorf("link synonym: %w", err)
			}
		}

		if input.Parent != nil {
			parent := domain.EntityRef{Type: input.Parent.Type, ID: input.Parent.ID}
			if _, err := s.graph.AssignParent(txCtx, created.ID, parent); err != nil {
				return fmt.Errorf("assign parent: %w", err)
			}
		}

		if input.SourceID != nil {
			_, err := s.occupations.CreateSourceMapping(txCtx, &domain.SourceMapping{
				EntityID: created.ID,
				SourceID: *input.SourceID,
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

	s.log.InfoContext(ctx, "occupation created",
		slog.Int64("occupation_id", created.ID),
		slog.String("label", created.PreferredLabelEn),
	)

	return created, nil
}

// resolveSynonym returns the ID of an existing synonym or creates one for a
// new title. Reusing an existing title is not an error.
func (s *Service) resolveSynonym(ctx context.Context, input SynonymInput) (int64, error) {
	if input.ID != nil {
		syn, err := s.synonyms.GetByID(ctx, *input.ID)
		if err != nil {
			return 0, fmt.Errorf("synonym %d: %w", *input.ID, err)
		}
		return syn.ID, nil
	}

	language := input.Language
	if language == "" {
		language = "en"
	}

	syn, err := s.synonyms.CreateIfAbsent(ctx, &domain.Synonym{
		Title:    strings.TrimSpace(input.Title),
		Language: language,
	})
	if err != nil {
		return 0, fmt.Errorf("create synonym %q: %w", input.Title, err)
	}

	return syn.ID, nil
}

// UpdateOccupation updates occupation fields, replacing the source mapping
// wholesale when the input says so.
func (s *Service) UpdateOccupation(ctx context.Context, input UpdateOccupationInput) (*domain.Occupation, error) {
	actx, ok := ctxutil.AuditContextFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Occupation.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Occupation
	err := s.tx.RunInTxWithAudit(ctx, actx, func(txCtx context.Context) error {
		var err error
		updated, err = s.occupations.Update(txCtx, &input.Occupation)
		if err != nil {
			return fmt.Errorf("update occupation: %w", err)
		}

		if input.SourceSet {
			if err := s.occupations.DeleteSourceMappings(txCtx, updated.ID); err != nil {
				return fmt.Errorf("clear source mappings: %w", err)
			}
			if input.SourceID != nil {
				_, err := s.occupations.CreateSourceMapping(txCtx, &domain.SourceMapping{
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

	s.log.InfoContext(ctx, "occupation updated", slog.Int64("occupation_id", updated.ID))

	return updated, nil
}

// DeleteOccupation removes an occupation with its relationships, synonym
// links, and source mappings in one audited transaction.
func (s *Service) DeleteOccupation(ctx context.Context, id int64) error {
	actx, ok := ctxutil.AuditContextFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTxWithAudit(ctx, actx, func(txCtx context.Context) error {
		if _, err := s.occupations.GetByID(txCtx, id); err != nil {
			return err
		}

		if _, err := s.relationships.DeleteByEntity(txCtx, domain.OccupationRef(id)); err != nil {
			return fmt.Errorf("delete relationships: %w", err)
		}
		if err := s.occupations.DeleteSynonymLinks(txCtx, id); err != nil {
			return fmt.Errorf("delete synonym links: %w", err)
		}
		if err := s.occupations.DeleteSourceMappings(txCtx, id); err != nil {
			return fmt.Errorf("delete source mappings: %w", err)
		}
		if err := s.occupations.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete occupation: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "occupation deleted", slog.Int64("occupation_id", id))

	return nil
}

// LinkOccupationSynonym attaches an existing synonym to an occupation.
func (s *Service) LinkOccupationSynonym(ctx context.Context, occupationID, synonymID int64) error {
	actx, ok := ctxutil.AuditContextFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	return s.tx.RunInTxWithAudit(ctx, actx, func(txCtx context.Context) error {
		if _, err := s.occupations.GetByID(txCtx, occupationID); err != nil {
			return err
		}
		if _, err := s.synonyms.GetByID(txCtx, synonymID); err != nil {
			return err
		}
		return s.occupations.LinkSynonym(txCtx, occupationID, synonymID)
	})
}

// UnlinkOccupationSynonym detaches a synonym from an occupation.
func (s *Service) UnlinkOccupationSynonym(ctx context.Context, occupationID, synonymID int64) error {
	actx, ok := ctxutil.AuditContextFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	return s.tx.RunInTxWithAudit(ctx, actx, func(txCtx context.Context) error {
		return s.occupations.UnlinkSynonym(txCtx, occupationID, synonymID)
	})
}

// ExportRow is one line of the occupations CSV export.
type ExportRow struct {
	ID               int64
	ESCOCode         string
	PreferredLabelEn string
	PreferredLabelAr string
	Synonyms         []string
}

// ExportOccupations returns every occupation with its synonym titles for the
// CSV export.
func (s *Service) ExportOccupations(ctx context.Context) ([]ExportRow, error) {
	occupations, _, err := s.occupations.List(ctx, domain.OccupationFilter{Limit: 200})
	if err != nil {
		return nil, err
	}

	rows := make([]ExportRow, 0, len(occupations))
	for len(occupations) > 0 {
		for _, occ := range occupations {
			synonyms, err := s.occupations.ListSynonyms(ctx, occ.ID)
			if err != nil {
				return nil, fmt.Errorf("synonyms of %d: %w", occ.ID, err)
			}

			row := ExportRow{
				ID:               occ.ID,
				PreferredLabelEn: occ.PreferredLabelEn,
			}
			if occ.ESCOCode != nil {
				row.ESCOCode = *occ.ESCOCode
			}
			if occ.PreferredLabelAr != nil {
				row.PreferredLabelAr = *occ.PreferredLabelAr
			}
			for _, syn := range synonyms {
				row.Synonyms = append(row.Synonyms, syn.Title)
			}
			rows = append(rows, row)
		}

		occupations, _, err = s.occupations.List(ctx, domain.OccupationFilter{
			Limit:  200,
			Offset: len(rows),
		})
		if err != nil {
			return nil, err
		}
	}

	return rows, nil
}
