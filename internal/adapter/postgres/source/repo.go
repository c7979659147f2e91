// Package source implements the taxonomy source repository using PostgreSQL.
package source

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/talentwire/taxonomy-backend/internal/adapter/postgres"
	"github.com/talentwire/taxonomy-backend/internal/domain"
)

// Repo provides taxonomy source persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new source repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const sourceColumns = ` id, name, description, created_at`

const getByIDSQL = `SELECT` + sourceColumns + ` FROM taxonomy_sources WHERE id = $1`

// GetByID returns a source by primary key.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Source, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)
	s, err := scanSource(row)
	if err != nil {
		return nil, postgres.MapError(err, "source", id)
	}

	return s, nil
}

const listSQL = `SELECT` + sourceColumns + ` FROM taxonomy_sources ORDER BY name`

// List returns all sources ordered by name.
func (r *Repo) List(ctx context.Context) ([]domain.Source, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var result []domain.Source
	for rows.Next() {
		s, err := scanSource(rows)
		if err != nil {
			return nil, fmt.Errorf("list sources: %w", err)
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}

	if result == nil {
		result = []domain.Source{}
	}

	return result, nil
}

const countByOccupationSQL = `
SELECT s.id, s.name, count(m.id)
FROM taxonomy_sources s
LEFT JOIN occupation_source_mapping m ON m.source_id = s.id
GROUP BY s.id, s.name
ORDER BY s.name`

// CountMappedOccupations returns, per source, how many occupation mappings it has.
func (r *Repo) CountMappedOccupations(ctx context.Context) ([]domain.SourceCount, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, countByOccupationSQL)
	if err != nil {
		return nil, fmt.Errorf("count mapped occupations: %w", err)
	}
	defer rows.Close()

	var result []domain.SourceCount
	for rows.Next() {
		var c domain.SourceCount
		if err := rows.Scan(&c.SourceID, &c.SourceName, &c.Count); err != nil {
			return nil, fmt.Errorf("scan source count: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count mapped occupations: %w", err)
	}

	if result == nil {
		result = []domain.SourceCount{}
	}

	return result, nil
}

const countBySynonymSQL = `
SELECT s.id, s.name, count(m.id)
FROM taxonomy_sources s
LEFT JOIN synonym_source_mapping m ON m.source_id = s.id
GROUP BY s.id, s.name
ORDER BY s.name`

// CountMappedSynonyms returns, per source, how many synonym mappings it has.
func (r *Repo) CountMappedSynonyms(ctx context.Context) ([]domain.SourceCount, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, countBySynonymSQL)
	if err != nil {
		return nil, fmt.Errorf("count mapped synonyms: %w", err)
	}
	defer rows.Close()

	var result []domain.SourceCount
	for rows.Next() {
		var c domain.SourceCount
		if err := rows.Scan(&c.SourceID, &c.SourceName, &c.Count); err != nil {
			return nil, fmt.Errorf("scan source count: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count mapped synonyms: %w", err)
	}

	if result == nil {
		result = []domain.SourceCount{}
	}

	return result, nil
}

const createSQL = `
INSERT INTO taxonomy_sources (name, description)
VALUES ($1, $2)
RETURNING` + sourceColumns

// Create inserts a new source.
func (r *Repo) Create(ctx context.Context, s *domain.Source) (*domain.Source, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL, s.Name, s.Description)
	created, err := scanSource(row)
	if err != nil {
		return nil, postgres.MapError(err, "source", 0)
	}

	return created, nil
}

const updateSQL = `
UPDATE taxonomy_sources SET name = $2, description = $3
WHERE id = $1
RETURNING` + sourceColumns

// Update replaces the mutable columns of a source.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Update(ctx context.Context, s *domain.Source) (*domain.Source, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateSQL, s.ID, s.Name, s.Description)
	updated, err := scanSource(row)
	if err != nil {
		return nil, postgres.MapError(err, "source", s.ID)
	}

	return updated, nil
}

const deleteSQL = `DELETE FROM taxonomy_sources WHERE id = $1`

// Delete removes a source row.
// Returns domain.ErrNotFound if the source does not exist and
// domain.ErrNotFound via FK mapping when mappings still reference it.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "source", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("source %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanSource(row pgx.Row) (*domain.Source, error) {
	var s domain.Source
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
