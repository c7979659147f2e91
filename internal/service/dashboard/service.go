// Package dashboard aggregates catalog metrics for the dashboard panels.
package dashboard

import (
	"context"
	"log/slog"

	"github.com/talentwire/taxonomy-backend/internal/domain"
)

// recentLimit is the fixed size of the last-added panels.
const recentLimit = 3

type statsRepo interface {
	Overview(ctx context.Context) (*domain.DashboardOverview, error)
	AverageSynonymsPerOccupation(ctx context.Context) (float64, error)
	UnlinkedOccupationCount(ctx context.Context) (int, error)
	MostSynonyms(ctx context.Context) (*domain.SynonymExtreme, error)
	FewestSynonyms(ctx context.Context) (*domain.SynonymExtreme, error)
	LastAddedOccupations(ctx context.Context, limit int) ([]domain.RecentOccupation, error)
	LastAddedSynonyms(ctx context.Context, limit int) ([]domain.RecentSynonym, error)
	OccupationsWithoutSource(ctx context.Context) (int, error)
	SynonymsWithoutSource(ctx context.Context) (int, error)
}

type sourceRepo interface {
	CountMappedOccupations(ctx context.Context) ([]domain.SourceCount, error)
	CountMappedSynonyms(ctx context.Context) ([]domain.SourceCount, error)
}

// Service serves dashboard metrics.
type Service struct {
	stats   statsRepo
	sources sourceRepo
	log     *slog.Logger
}

// NewService creates a new dashboard service.
func NewService(log *slog.Logger, stats statsRepo, sources sourceRepo) *Service {
	return &Service{
		stats:   stats,
		sources: sources,
		log:     log.With("service", "dashboard"),
	}
}

// Overview returns the headline occupation and synonym counts.
func (s *Service) Overview(ctx context.Context) (*domain.DashboardOverview, error) {
	return s.stats.Overview(ctx)
}

// OccupationCountPerSource returns per-source occupation mapping counts.
func (s *Service) OccupationCountPerSource(ctx context.Context) ([]domain.SourceCount, error) {
	return s.sources.CountMappedOccupations(ctx)
}

// SynonymCountPerSource returns per-source synonym mapping counts.
func (s *Service) SynonymCountPerSource(ctx context.Context) ([]domain.SourceCount, error) {
	return s.sources.CountMappedSynonyms(ctx)
}

// AverageSynonymsPerOccupation returns the mean synonym count over linked
// occupations.
func (s *Service) AverageSynonymsPerOccupation(ctx context.Context) (float64, error) {
	return s.stats.AverageSynonymsPerOccupation(ctx)
}

// UnlinkedOccupationCount returns how many occupations sit outside the tree.
func (s *Service) UnlinkedOccupationCount(ctx context.Context) (int, error) {
	return s.stats.UnlinkedOccupationCount(ctx)
}

// MostSynonyms returns the occupation with the most linked synonyms, or nil
// when no links exist.
func (s *Service) MostSynonyms(ctx context.Context) (*domain.SynonymExtreme, error) {
	return s.stats.MostSynonyms(ctx)
}

// FewestSynonyms returns the occupation with the fewest (non-zero) linked
// synonyms, or nil when no links exist.
func (s *Service) FewestSynonyms(ctx context.Context) (*domain.SynonymExtreme, error) {
	return s.stats.FewestSynonyms(ctx)
}

// LastAddedOccupations returns the three most recently created occupations.
func (s *Service) LastAddedOccupations(ctx context.Context) ([]domain.RecentOccupation, error) {
	return s.stats.LastAddedOccupations(ctx, recentLimit)
}

// LastAddedSynonyms returns the three most recently created synonyms.
func (s *Service) LastAddedSynonyms(ctx context.Context) ([]domain.RecentSynonym, error) {
	return s.stats.LastAddedSynonyms(ctx, recentLimit)
}

// OccupationsWithoutSource returns how many occupations have no provenance.
func (s *Service) OccupationsWithoutSource(ctx context.Context) (int, error) {
	return s.stats.OccupationsWithoutSource(ctx)
}

// SynonymsWithoutSource returns how many synonyms have no provenance.
func (s *Service) SynonymsWithoutSource(ctx context.Context) (int, error) {
	return s.stats.SynonymsWithoutSource(ctx)
}
