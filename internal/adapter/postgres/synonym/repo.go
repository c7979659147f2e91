// Package synonym implements the synonym repository using PostgreSQL.
// Synonym titles are globally unique, which the merge flow relies on when
// consolidating labels.
package synonym

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/talentwire/taxonomy-backend/internal/adapter/postgres"
	"github.com/talentwire/taxonomy-backend/internal/domain"
)

// Repo provides synonym persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new synonym repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const synonymColumns = ` id, title, title_orig, language, created_at, updated_at`

const getByIDSQL = `SELECT` + synonymColumns + ` FROM synonyms WHERE id = $1`

const getByTitleSQL = `SELECT` + synonymColumns + ` FROM synonyms WHERE title = $1`

// GetByID returns a synonym by primary key.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Synonym, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)
	s, err := scanSynonym(row)
	if err != nil {
		return nil, postgres.MapError(err, "synonym", id)
	}

	return s, nil
}

// GetByTitle returns a synonym by its exact title.
// Returns domain.ErrNotFound if no synonym has that title.
func (r *Repo) GetByTitle(ctx context.Context, title string) (*domain.Synonym, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByTitleSQL, title)
	s, err := scanSynonym(row)
	if err != nil {
		return nil, postgres.MapError(err, "synonym", 0)
	}

	return s, nil
}

// List returns synonyms matching the filter, ordered by title, with the total
// count matching the filter ignoring limit/offset.
func (r *Repo) List(ctx context.Context, filter domain.SynonymFilter) ([]domain.Synonym, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	base := sq.Select().From("synonyms").PlaceholderFormat(sq.Dollar)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"title_orig": pattern},
		})
	}
	if filter.SourceID != nil {
		base = base.Where(
			"EXISTS (SELECT 1 FROM synonym_source_mapping m WHERE m.synonym_id = synonyms.id AND m.source_id = ?)",
			*filter.SourceID,
		)
	}
	if filter.OccupationID != nil {
		base = base.Where(
			"EXISTS (SELECT 1 FROM occupation_synonyms os WHERE os.synonym_id = synonyms.id AND os.occupation_id = ?)",
			*filter.OccupationID,
		)
	}

	countSQL, countArgs, err := base.Column("count(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count synonyms: %w", err)
	}

	listSQL, listArgs, err := base.
		Column("id, title, title_orig, language, created_at, updated_at").
		OrderBy("title").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list synonyms: %w", err)
	}
	defer rows.Close()

	synonyms, err := scanSynonyms(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list synonyms: %w", err)
	}

	return synonyms, total, nil
}

const searchSQL = `
SELECT` + synonymColumns + `
FROM synonyms
WHERE title ILIKE $1 OR title_orig ILIKE $1
ORDER BY title
LIMIT $2`

// Search returns synonyms whose title matches the query.
func (r *Repo) Search(ctx context.Context, query string, limit int) ([]domain.Synonym, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, searchSQL, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search synonyms: %w", err)
	}
	defer rows.Close()

	result, err := scanSynonyms(rows)
	if err != nil {
		return nil, fmt.Errorf("search synonyms: %w", err)
	}

	return result, nil
}

const createSQL = `
INSERT INTO synonyms (title, title_orig, language)
VALUES ($1, $2, $3)
RETURNING` + synonymColumns

// Create inserts a new synonym.
// Returns domain.ErrAlreadyExists if the title is taken.
func (r *Repo) Create(ctx context.Context, s *domain.Synonym) (*domain.Synonym, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL, s.Title, s.TitleOrig, s.Language)
	created, err := scanSynonym(row)
	if err != nil {
		return nil, postgres.MapError(err, "synonym", 0)
	}

	return created, nil
}

const createIfAbsentSQL = `
INSERT INTO synonyms (title, title_orig, language)
VALUES ($1, $2, $3)
ON CONFLICT (title) DO NOTHING
RETURNING` + synonymColumns

// CreateIfAbsent inserts a synonym unless one with the same title already
// exists. Returns the inserted or the existing row.
func (r *Repo) CreateIfAbsent(ctx context.Context, s *domain.Synonym) (*domain.Synonym, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createIfAbsentSQL, s.Title, s.TitleOrig, s.Language)
	created, err := scanSynonym(row)
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, postgres.MapError(err, "synonym", 0)
	}

	return r.GetByTitle(ctx, s.Title)
}

const updateSQL = `
UPDATE synonyms SET title = $2, title_orig = $3, language = $4, updated_at = now()
WHERE id = $1
RETURNING` + synonymColumns

// Update replaces the mutable columns of a synonym.
// Returns domain.ErrNotFound if it does not exist and domain.ErrAlreadyExists
// on a title collision.
func (r *Repo) Update(ctx context.Context, s *domain.Synonym) (*domain.Synonym, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateSQL, s.ID, s.Title, s.TitleOrig, s.Language)
	updated, err := scanSynonym(row)
	if err != nil {
		return nil, postgres.MapError(err, "synonym", s.ID)
	}

	return updated, nil
}

const deleteSQL = `DELETE FROM synonyms WHERE id = $1`

// Delete removes a synonym row.
// Returns domain.ErrNotFound if the synonym does not exist.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "synonym", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("synonym %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Join tables: synonym_source_mapping, occupation_synonyms
// ---------------------------------------------------------------------------

const listSourceMappingsSQL = `
SELECT id, synonym_id, source_id, is_verified, verification_method,
       confidence_score, is_moderated, created_at
FROM synonym_source_mapping
WHERE synonym_id = $1
ORDER BY id`

// ListSourceMappings returns the source mappings of a synonym.
func (r *Repo) ListSourceMappings(ctx context.Context, synonymID int64) ([]domain.SourceMapping, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSourceMappingsSQL, synonymID)
	if err != nil {
		return nil, fmt.Errorf("list synonym source mappings: %w", err)
	}
	defer rows.Close()

	var result []domain.SourceMapping
	for rows.Next() {
		var m domain.SourceMapping
		if err := rows.Scan(&m.ID, &m.EntityID, &m.SourceID, &m.IsVerified, &m.VerificationMethod,
			&m.ConfidenceScore, &m.IsModerated, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan synonym source mapping: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list synonym source mappings: %w", err)
	}

	if result == nil {
		result = []domain.SourceMapping{}
	}

	return result, nil
}

const createSourceMappingSQL = `
INSERT INTO synonym_source_mapping
    (synonym_id, source_id, is_verified, verification_method, confidence_score, is_moderated)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`

// CreateSourceMapping links a synonym to a taxonomy source.
func (r *Repo) CreateSourceMapping(ctx context.Context, m *domain.SourceMapping) (*domain.SourceMapping, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	result := *m
	err := querier.QueryRow(ctx, createSourceMappingSQL,
		m.EntityID, m.SourceID, m.IsVerified, m.VerificationMethod, m.ConfidenceScore, m.IsModerated,
	).Scan(&result.ID, &result.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "synonym_source_mapping", m.EntityID)
	}

	return &result, nil
}

const deleteSourceMappingsSQL = `DELETE FROM synonym_source_mapping WHERE synonym_id = $1`

// DeleteSourceMappings removes all source mappings of a synonym.
func (r *Repo) DeleteSourceMappings(ctx context.Context, synonymID int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteSourceMappingsSQL, synonymID); err != nil {
		return postgres.MapError(err, "synonym_source_mapping", synonymID)
	}

	return nil
}

const deleteOccupationLinksSQL = `DELETE FROM occupation_synonyms WHERE synonym_id = $1`

// DeleteOccupationLinks removes every occupation link pointing at a synonym.
func (r *Repo) DeleteOccupationLinks(ctx context.Context, synonymID int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteOccupationLinksSQL, synonymID); err != nil {
		return postgres.MapError(err, "occupation_synonym", synonymID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanSynonym(row pgx.Row) (*domain.Synonym, error) {
	var s domain.Synonym
	if err := row.Scan(&s.ID, &s.Title, &s.TitleOrig, &s.Language, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSynonyms(rows pgx.Rows) ([]domain.Synonym, error) {
	var result []domain.Synonym
	for rows.Next() {
		s, err := scanSynonym(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.Synonym{}
	}

	return result, nil
}
