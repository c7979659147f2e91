// Package dashboard implements the cross-table aggregate queries feeding the
// dashboard panels.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/talentwire/taxonomy-backend/internal/adapter/postgres"
	"github.com/talentwire/taxonomy-backend/internal/domain"
)

// Repo runs dashboard aggregates against PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new dashboard repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const overviewSQL = `
SELECT
	(SELECT count(*) FROM occupations),
	(SELECT count(*) FROM synonyms)`

// Overview returns the total occupation and synonym counts.
func (r *Repo) Overview(ctx context.Context) (*domain.DashboardOverview, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var o domain.DashboardOverview
	if err := querier.QueryRow(ctx, overviewSQL).Scan(&o.TotalOccupations, &o.TotalSynonyms); err != nil {
		return nil, fmt.Errorf("dashboard overview: %w", err)
	}

	return &o, nil
}

const avgSynonymsSQL = `
SELECT coalesce(round(count(synonym_id)::numeric / nullif(count(DISTINCT occupation_id), 0), 2), 0)
FROM occupation_synonyms`

// AverageSynonymsPerOccupation returns the mean synonym-link count over
// occupations that have at least one synonym, rounded to two decimals.
// Returns 0 when no links exist.
func (r *Repo) AverageSynonymsPerOccupation(ctx context.Context) (float64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var avg float64
	if err := querier.QueryRow(ctx, avgSynonymsSQL).Scan(&avg); err != nil {
		return 0, fmt.Errorf("average synonyms per occupation: %w", err)
	}

	return avg, nil
}

const unlinkedCountSQL = `
SELECT count(*)
FROM occupations o
WHERE NOT EXISTS (
	SELECT 1 FROM taxonomy_relationships tr
	WHERE tr.source_entity_type = 'occupation' AND tr.source_entity_id = o.id
	AND tr.relationship_type = 'contained_by')`

// UnlinkedOccupationCount returns how many occupations have no parent edge.
func (r *Repo) UnlinkedOccupationCount(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := querier.QueryRow(ctx, unlinkedCountSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("unlinked occupation count: %w", err)
	}

	return n, nil
}

const synonymExtremeSQL = `
SELECT o.id, o.preferred_label_en, count(os.synonym_id) AS synonym_count
FROM occupations o
JOIN occupation_synonyms os ON os.occupation_id = o.id
GROUP BY o.id, o.preferred_label_en
ORDER BY synonym_count %s, o.id
LIMIT 1`

// MostSynonyms returns the occupation with the highest synonym-link count,
// or nil when no occupation has any synonyms.
func (r *Repo) MostSynonyms(ctx context.Context) (*domain.SynonymExtreme, error) {
	return r.synonymExtreme(ctx, "DESC")
}

// FewestSynonyms returns the occupation with the lowest non-zero
// synonym-link count, or nil when no occupation has any synonyms.
func (r *Repo) FewestSynonyms(ctx context.Context) (*domain.SynonymExtreme, error) {
	return r.synonymExtreme(ctx, "ASC")
}

func (r *Repo) synonymExtreme(ctx context.Context, order string) (*domain.SynonymExtreme, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var e domain.SynonymExtreme
	err := querier.QueryRow(ctx, fmt.Sprintf(synonymExtremeSQL, order)).
		Scan(&e.OccupationID, &e.PreferredLabelEn, &e.SynonymCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("synonym extreme: %w", err)
	}

	return &e, nil
}

const lastOccupationsSQL = `
SELECT id, preferred_label_en, esco_code, created_at
FROM occupations
ORDER BY created_at DESC, id DESC
LIMIT $1`

// LastAddedOccupations returns the most recently created occupations.
func (r *Repo) LastAddedOccupations(ctx context.Context, limit int) ([]domain.RecentOccupation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, lastOccupationsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("last added occupations: %w", err)
	}
	defer rows.Close()

	result := []domain.RecentOccupation{}
	for rows.Next() {
		var o domain.RecentOccupation
		if err := rows.Scan(&o.ID, &o.PreferredLabelEn, &o.ESCOCode, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent occupation: %w", err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("last added occupations: %w", err)
	}

	return result, nil
}

const lastSynonymsSQL = `
SELECT id, title, created_at
FROM synonyms
ORDER BY created_at DESC, id DESC
LIMIT $1`

// LastAddedSynonyms returns the most recently created synonyms.
func (r *Repo) LastAddedSynonyms(ctx context.Context, limit int) ([]domain.RecentSynonym, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, lastSynonymsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("last added synonyms: %w", err)
	}
	defer rows.Close()

	result := []domain.RecentSynonym{}
	for rows.Next() {
		var s domain.RecentSynonym
		if err := rows.Scan(&s.ID, &s.Title, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recent synonym: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("last added synonyms: %w", err)
	}

	return result, nil
}

const occupationsWithoutSourceSQL = `
SELECT count(*)
FROM occupations o
WHERE NOT EXISTS (
	SELECT 1 FROM occupation_source_mapping m WHERE m.occupation_id = o.id)`

// OccupationsWithoutSource returns how many occupations carry no source mapping.
func (r *Repo) OccupationsWithoutSource(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := querier.QueryRow(ctx, occupationsWithoutSourceSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("occupations without source: %w", err)
	}

	return n, nil
}

const synonymsWithoutSourceSQL = `
SELECT count(*)
FROM synonyms s
WHERE NOT EXISTS (
	SELECT 1 FROM synonym_source_mapping m WHERE m.synonym_id = s.id)`

// SynonymsWithoutSource returns how many synonyms carry no source mapping.
func (r *Repo) SynonymsWithoutSource(ctx context.Context) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var n int
	if err := querier.QueryRow(ctx, synonymsWithoutSourceSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("synonyms without source: %w", err)
	}

	return n, nil
}
