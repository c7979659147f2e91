// Package merge implements occupation consolidation: the source occupation's
// labels and synonym links move to the target, its relationships are severed,
// and the source row is deleted, all in one audited transaction.
package merge

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/talentwire/taxonomy-backend/internal/domain"
	"github.com/talentwire/taxonomy-backend/pkg/ctxutil"
)

type occupationRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Occupation, error)
	Delete(ctx context.Context, id int64) error
	DeleteSourceMappings(ctx context.Context, occupationID int64) error
	ListSynonyms(ctx context.Context, occupationID int64) ([]domain.Synonym, error)
	LinkSynonym(ctx context.Context, occupationID, synonymID int64) error
	RepointSynonymLinks(ctx context.Context, fromID, toID int64) error
}

type synonymRepo interface {
	CreateIfAbsent(ctx context.Context, s *domain.Synonym) (*domain.Synonym, error)
}

type relationshipRepo interface {
	Descendants(ctx context.Context, ref domain.EntityRef) ([]domain.EntityRef, error)
	DeleteByEntity(ctx context.Context, ref domain.EntityRef) (int, error)
}

type txManager interface {
	RunInTxWithAudit(ctx context.Context, actx domain.AuditContext, fn func(ctx context.Context) error) error
}

// Service merges occupations.
type Service struct {
	occupations   occupationRepo
	synonyms      synonymRepo
	relationships relationshipRepo
	tx            txManager
	log           *slog.Logger
}

// NewService creates a new merge service.
func NewService(
	log *slog.Logger,
	occupations occupationRepo,
	synonyms synonymRepo,
	relationships relationshipRepo,
	tx txManager,
) *Service {
	return &Service{
		occupations:   occupations,
		synonyms:      synonyms,
		relationships: relationships,
		tx:            tx,
		log:           log.With("service", "merge"),
	}
}

// Result summarizes what a merge moved.
type Result struct {
	SourceID             int64  `json:"sourceId"`
	TargetID             int64  `json:"targetId"`
	SourceLabel          string `json:"sourceLabel"`
	SynonymsCreated      int    `json:"synonymsCreated"`
	RelationshipsRemoved int    `json:"relationshipsRemoved"`
}

// Merge folds the source occupation into the target. The source's preferred
// labels become synonyms of the target, its synonym links are re-pointed,
// every relationship touching it is removed, and the source row is deleted.
// Merging an occupation into one of its own descendants is rejected, as the
// subtree would be severed.
func (s *Service) Merge(ctx context.Context, sourceID, targetID int64) (*Result, error) {
	actx, ok := ctxutil.AuditContextFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if sourceID <= 0 || targetID <= 0 {
		return nil, domain.NewValidationError("occupationId", "required")
	}
	if sourceID == targetID {
		return nil, domain.NewValidationError("targetId", "cannot merge an occupation into itself")
	}

	source, err := s.occupations.GetByID(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("source occupation: %w", err)
	}
	target, err := s.occupations.GetByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("target occupation: %w", err)
	}

	broken, err := s.wouldBreakHierarchy(ctx, sourceID, targetID)
	if err != nil {
		return nil, fmt.Errorf("hierarchy guard: %w", err)
	}
	if broken {
		return nil, &domain.HierarchyError{SourceID: sourceID, TargetID: targetID}
	}

	result := &Result{
		SourceID:    sourceID,
		TargetID:    targetID,
		SourceLabel: source.PreferredLabelEn,
	}

	err = s.tx.RunInTxWithAudit(ctx, actx, func(txCtx context.Context) error {
		created, err := s.adoptLabels(txCtx, source, target)
		if err != nil {
			return err
		}
		result.SynonymsCreated = created

		if err := s.occupations.RepointSynonymLinks(txCtx, sourceID, targetID); err != nil {
			return fmt.Errorf("re-point synonym links: %w", err)
		}

		removed, err := s.relationships.DeleteByEntity(txCtx, domain.OccupationRef(sourceID))
		if err != nil {
			return fmt.Errorf("delete source relationships: %w", err)
		}
		result.RelationshipsRemoved = removed

		if err := s.occupations.DeleteSourceMappings(txCtx, sourceID); err != nil {
			return fmt.Errorf("delete source mappings: %w", err)
		}

		if err := s.occupations.Delete(txCtx, sourceID); err != nil {
			return fmt.Errorf("delete source occupation: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "occupations merged",
		slog.Int64("source_id", sourceID),
		slog.Int64("target_id", targetID),
		slog.Int("synonyms_created", result.SynonymsCreated),
		slog.Int("relationships_removed", result.RelationshipsRemoved),
	)

	return result, nil
}

// wouldBreakHierarchy reports whether target sits in the descendant closure
// of source.
func (s *Service) wouldBreakHierarchy(ctx context.Context, sourceID, targetID int64) (bool, error) {
	descendants, err := s.relationships.Descendants(ctx, domain.OccupationRef(sourceID))
	if err != nil {
		return false, err
	}

	targetRef := domain.OccupationRef(targetID)
	for _, d := range descendants {
		if d == targetRef {
			return true, nil
		}
	}

	return false, nil
}

// adoptLabels turns the source's preferred labels into synonyms of the
// target, skipping titles the target already carries either as its own label
// or as a linked synonym. Returns how many labels were adopted.
func (s *Service) adoptLabels(ctx context.Context, source, target *domain.Occupation) (int, error) {
	existing, err := s.occupations.ListSynonyms(ctx, target.ID)
	if err != nil {
		return 0, fmt.Errorf("list target synonyms: %w", err)
	}

	taken := map[string]bool{normalizeTitle(target.PreferredLabelEn): true}
	for _, syn := range existing {
		taken[normalizeTitle(syn.Title)] = true
	}

	labels := []struct {
		title    string
		language string
	}{
		{source.PreferredLabelEn, "en"},
	}
	if source.PreferredLabelAr != nil {
		labels = append(labels, struct {
			title    string
			language string
		}{*source.PreferredLabelAr, "ar"})
	}

	created := 0
	for _, label := range labels {
		title := strings.TrimSpace(label.title)
		if title == "" || taken[normalizeTitle(title)] {
			continue
		}

		syn, err := s.synonyms.CreateIfAbsent(ctx, &domain.Synonym{
			Title:    title,
			Language: label.language,
		})
		if err != nil {
			return created, fmt.Errorf("create synonym %q: %w", title, err)
		}

		if err := s.occupations.LinkSynonym(ctx, target.ID, syn.ID); err != nil {
			return created, fmt.Errorf("link synonym %q: %w", title, err)
		}

		taken[normalizeTitle(title)] = true
		created++
	}

	return created, nil
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
