// Package occupation implements the occupation repository using PostgreSQL.
// Besides CRUD it owns the occupation-side join tables: occupation_synonyms
// and occupation_source_mapping.
package occupation

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/talentwire/taxonomy-backend/internal/adapter/postgres"
	"github.com/talentwire/taxonomy-backend/internal/domain"
)

// Repo provides occupation persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new occupation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const occupationColumns = `
    id, esco_code, uri, preferred_label_en, preferred_label_ar,
    description_en, description_ar, definition, scope_note,
    is_generic_title, min_career_level, max_career_level,
    created_at, updated_at`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getByIDSQL = `SELECT` + occupationColumns + ` FROM occupations WHERE id = $1`

const getByLabelSQL = `SELECT` + occupationColumns + ` FROM occupations WHERE preferred_label_en = $1`

// GetByID returns an occupation by primary key.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Occupation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)
	occ, err := scanOccupation(row)
	if err != nil {
		return nil, postgres.MapError(err, "occupation", id)
	}

	return occ, nil
}

// GetByLabel returns an occupation by its exact English preferred label.
func (r *Repo) GetByLabel(ctx context.Context, label string) (*domain.Occupation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByLabelSQL, label)
	occ, err := scanOccupation(row)
	if err != nil {
		return nil, postgres.MapError(err, "occupation", 0)
	}

	return occ, nil
}

// List returns occupations matching the filter, newest first, with the total
// count matching the filter ignoring limit/offset.
func (r *Repo) List(ctx context.Context, filter domain.OccupationFilter) ([]domain.Occupation, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	filter = normalizeFilter(filter)

	base := sq.Select().From("occupations o").PlaceholderFormat(sq.Dollar)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where(sq.Or{
			sq.ILike{"o.preferred_label_en": pattern},
			sq.ILike{"o.preferred_label_ar": pattern},
			sq.ILike{"o.esco_code": pattern},
		})
	}
	if filter.SourceID != nil {
		base = base.Where(
			"EXISTS (SELECT 1 FROM occupation_source_mapping osm WHERE osm.occupation_id = o.id AND osm.source_id = ?)",
			*filter.SourceID,
		)
	}
	if filter.Unlinked {
		base = base.Where(
			"NOT EXISTS (SELECT 1 FROM taxonomy_relationships tr" +
				" WHERE tr.source_entity_type = 'occupation' AND tr.source_entity_id = o.id" +
				" AND tr.relationship_type = 'contained_by')",
		)
	}

	countSQL, countArgs, err := base.Column("count(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count occupations: %w", err)
	}

	listSQL, listArgs, err := base.
		Column("o.id, o.esco_code, o.uri, o.preferred_label_en, o.preferred_label_ar," +
			" o.description_en, o.description_ar, o.definition, o.scope_note," +
			" o.is_generic_title, o.min_career_level, o.max_career_level," +
			" o.created_at, o.updated_at").
		OrderBy("o.created_at DESC", "o.id DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list occupations: %w", err)
	}
	defer rows.Close()

	occupations, err := scanOccupations(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list occupations: %w", err)
	}

	return occupations, total, nil
}

const listSynonymsSQL = `
SELECT s.id, s.title, s.title_orig, s.language, s.created_at, s.updated_at
FROM occupation_synonyms os
JOIN synonyms s ON os.synonym_id = s.id
WHERE os.occupation_id = $1
ORDER BY s.title`

// ListSynonyms returns the synonyms linked to an occupation ordered by title.
// Returns an empty slice (not nil) when none are linked.
func (r *Repo) ListSynonyms(ctx context.Context, occupationID int64) ([]domain.Synonym, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSynonymsSQL, occupationID)
	if err != nil {
		return nil, fmt.Errorf("list occupation synonyms: %w", err)
	}
	defer rows.Close()

	var result []domain.Synonym
	for rows.Next() {
		var s domain.Synonym
		if err := rows.Scan(&s.ID, &s.Title, &s.TitleOrig, &s.Language, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan occupation synonym: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list occupation synonyms: %w", err)
	}

	if result == nil {
		result = []domain.Synonym{}
	}

	return result, nil
}

const listSourceMappingsSQL = `
SELECT m.id, m.occupation_id, m.source_id, m.is_verified, m.verification_method,
       m.confidence_score, m.is_moderated, m.created_at
FROM occupation_source_mapping m
WHERE m.occupation_id = $1
ORDER BY m.id`

// ListSourceMappings returns the source mappings of an occupation.
func (r *Repo) ListSourceMappings(ctx context.Context, occupationID int64) ([]domain.SourceMapping, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSourceMappingsSQL, occupationID)
	if err != nil {
		return nil, fmt.Errorf("list source mappings: %w", err)
	}
	defer rows.Close()

	var result []domain.SourceMapping
	for rows.Next() {
		var m domain.SourceMapping
		if err := rows.Scan(&m.ID, &m.EntityID, &m.SourceID, &m.IsVerified, &m.VerificationMethod,
			&m.ConfidenceScore, &m.IsModerated, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan source mapping: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list source mappings: %w", err)
	}

	if result == nil {
		result = []domain.SourceMapping{}
	}

	return result, nil
}

const searchSQL = `
SELECT` + occupationColumns + `
FROM occupations
WHERE preferred_label_en ILIKE $1 OR preferred_label_ar ILIKE $1 OR esco_code ILIKE $1
ORDER BY preferred_label_en
LIMIT $2`

// Search returns occupations whose labels or code match the query.
func (r *Repo) Search(ctx context.Context, query string, limit int) ([]domain.Occupation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, searchSQL, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search occupations: %w", err)
	}
	defer rows.Close()

	result, err := scanOccupations(rows)
	if err != nil {
		return nil, fmt.Errorf("search occupations: %w", err)
	}

	return result, nil
}

const childrenWithSynonymsSQL = `
SELECT o.id, o.preferred_label_en, o.preferred_label_ar, o.esco_code,
       COALESCE(array_agg(s.title ORDER BY s.title) FILTER (WHERE s.title IS NOT NULL), '{}')
FROM taxonomy_relationships tr
JOIN occupations o ON o.id = tr.target_entity_id
LEFT JOIN occupation_synonyms os ON os.occupation_id = o.id
LEFT JOIN synonyms s ON s.id = os.synonym_id
WHERE tr.source_entity_type = 'occupation' AND tr.source_entity_id = $1
  AND tr.target_entity_type = 'occupation' AND tr.relationship_type = 'contains'
GROUP BY o.id, o.preferred_label_en, o.preferred_label_ar, o.esco_code
ORDER BY o.preferred_label_en`

// ChildrenWithSynonyms returns the child occupations of an occupation with
// their synonym titles aggregated.
func (r *Repo) ChildrenWithSynonyms(ctx context.Context, occupationID int64) ([]domain.OccupationChild, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, childrenWithSynonymsSQL, occupationID)
	if err != nil {
		return nil, fmt.Errorf("children with synonyms: %w", err)
	}
	defer rows.Close()

	var result []domain.OccupationChild
	for rows.Next() {
		var c domain.OccupationChild
		if err := rows.Scan(&c.ID, &c.PreferredLabelEn, &c.PreferredLabelAr, &c.ESCOCode, &c.Synonyms); err != nil {
			return nil, fmt.Errorf("scan child occupation: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("children with synonyms: %w", err)
	}

	if result == nil {
		result = []domain.OccupationChild{}
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createSQL = `
INSERT INTO occupations (
    esco_code, uri, preferred_label_en, preferred_label_ar,
    description_en, description_ar, definition, scope_note,
    is_generic_title, min_career_level, max_career_level
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING` + occupationColumns

// Create inserts a new occupation and returns the persisted row.
func (r *Repo) Create(ctx context.Context, occ *domain.Occupation) (*domain.Occupation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		occ.ESCOCode, occ.URI, occ.PreferredLabelEn, occ.PreferredLabelAr,
		occ.DescriptionEn, occ.DescriptionAr, occ.Definition, occ.ScopeNote,
		occ.IsGenericTitle, occ.MinCareerLevel, occ.MaxCareerLevel,
	)

	created, err := scanOccupation(row)
	if err != nil {
		return nil, postgres.MapError(err, "occupation", 0)
	}

	return created, nil
}

const updateSQL = `
UPDATE occupations SET
    esco_code = $2, uri = $3, preferred_label_en = $4, preferred_label_ar = $5,
    description_en = $6, description_ar = $7, definition = $8, scope_note = $9,
    is_generic_title = $10, min_career_level = $11, max_career_level = $12,
    updated_at = now()
WHERE id = $1
RETURNING` + occupationColumns

// Update replaces all mutable columns of an occupation.
// Returns domain.ErrNotFound if the occupation does not exist.
func (r *Repo) Update(ctx context.Context, occ *domain.Occupation) (*domain.Occupation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateSQL,
		occ.ID,
		occ.ESCOCode, occ.URI, occ.PreferredLabelEn, occ.PreferredLabelAr,
		occ.DescriptionEn, occ.DescriptionAr, occ.Definition, occ.ScopeNote,
		occ.IsGenericTitle, occ.MinCareerLevel, occ.MaxCareerLevel,
	)

	updated, err := scanOccupation(row)
	if err != nil {
		return nil, postgres.MapError(err, "occupation", occ.ID)
	}

	return updated, nil
}

const deleteSQL = `DELETE FROM occupations WHERE id = $1`

// Delete removes an occupation row.
// Returns domain.ErrNotFound if the occupation does not exist.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "occupation", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("occupation %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

const lockSQL = `SELECT id FROM occupations WHERE id = $1 FOR UPDATE`

// Lock takes a row-level lock on an occupation for the duration of the
// current transaction. Used to serialize concurrent parent assignments.
func (r *Repo) Lock(ctx context.Context, id int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var locked int64
	if err := querier.QueryRow(ctx, lockSQL, id).Scan(&locked); err != nil {
		return postgres.MapError(err, "occupation", id)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Join tables: occupation_synonyms
// ---------------------------------------------------------------------------

const linkSynonymSQL = `
INSERT INTO occupation_synonyms (occupation_id, synonym_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING`

// LinkSynonym attaches a synonym to an occupation.
// Idempotent: linking the same pair twice is not an error.
func (r *Repo) LinkSynonym(ctx context.Context, occupationID, synonymID int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, linkSynonymSQL, occupationID, synonymID); err != nil {
		return postgres.MapError(err, "occupation_synonym", occupationID)
	}

	return nil
}

const unlinkSynonymSQL = `
DELETE FROM occupation_synonyms WHERE occupation_id = $1 AND synonym_id = $2`

// UnlinkSynonym removes the link between an occupation and a synonym.
// Not an error if the link does not exist.
func (r *Repo) UnlinkSynonym(ctx context.Context, occupationID, synonymID int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, unlinkSynonymSQL, occupationID, synonymID); err != nil {
		return postgres.MapError(err, "occupation_synonym", occupationID)
	}

	return nil
}

const repointLinksSQL = `
UPDATE occupation_synonyms os
SET occupation_id = $2
WHERE os.occupation_id = $1
  AND NOT EXISTS (
      SELECT 1 FROM occupation_synonyms t
      WHERE t.occupation_id = $2 AND t.synonym_id = os.synonym_id
  )`

const deleteLinksSQL = `DELETE FROM occupation_synonyms WHERE occupation_id = $1`

// RepointSynonymLinks moves synonym links from one occupation to another,
// skipping synonyms the target is already linked to, then removes whatever
// links remain on the source.
func (r *Repo) RepointSynonymLinks(ctx context.Context, fromID, toID int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, repointLinksSQL, fromID, toID); err != nil {
		return postgres.MapError(err, "occupation_synonym", fromID)
	}
	if _, err := querier.Exec(ctx, deleteLinksSQL, fromID); err != nil {
		return postgres.MapError(err, "occupation_synonym", fromID)
	}

	return nil
}

// DeleteSynonymLinks removes every synonym link of an occupation.
func (r *Repo) DeleteSynonymLinks(ctx context.Context, occupationID int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteLinksSQL, occupationID); err != nil {
		return postgres.MapError(err, "occupation_synonym", occupationID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Join tables: occupation_source_mapping
// ---------------------------------------------------------------------------

const createSourceMappingSQL = `
INSERT INTO occupation_source_mapping
    (occupation_id, source_id, is_verified, verification_method, confidence_score, is_moderated)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`

// CreateSourceMapping links an occupation to a taxonomy source.
func (r *Repo) CreateSourceMapping(ctx context.Context, m *domain.SourceMapping) (*domain.SourceMapping, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	result := *m
	err := querier.QueryRow(ctx, createSourceMappingSQL,
		m.EntityID, m.SourceID, m.IsVerified, m.VerificationMethod, m.ConfidenceScore, m.IsModerated,
	).Scan(&result.ID, &result.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "occupation_source_mapping", m.EntityID)
	}

	return &result, nil
}

const deleteSourceMappingsSQL = `DELETE FROM occupation_source_mapping WHERE occupation_id = $1`

// DeleteSourceMappings removes all source mappings of an occupation.
func (r *Repo) DeleteSourceMappings(ctx context.Context, occupationID int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, deleteSourceMappingsSQL, occupationID); err != nil {
		return postgres.MapError(err, "occupation_source_mapping", occupationID)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Filter defaults
// ---------------------------------------------------------------------------

const (
	defaultLimit = 50
	maxLimit     = 200
)

func normalizeFilter(f domain.OccupationFilter) domain.OccupationFilter {
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanOccupation(row pgx.Row) (*domain.Occupation, error) {
	var o domain.Occupation
	err := row.Scan(
		&o.ID, &o.ESCOCode, &o.URI, &o.PreferredLabelEn, &o.PreferredLabelAr,
		&o.DescriptionEn, &o.DescriptionAr, &o.Definition, &o.ScopeNote,
		&o.IsGenericTitle, &o.MinCareerLevel, &o.MaxCareerLevel,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func scanOccupations(rows pgx.Rows) ([]domain.Occupation, error) {
	var result []domain.Occupation
	for rows.Next() {
		o, err := scanOccupation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.Occupation{}
	}

	return result, nil
}
