// Package group implements the taxonomy group repository using PostgreSQL.
package group

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/talentwire/taxonomy-backend/internal/adapter/postgres"
	"github.com/talentwire/taxonomy-backend/internal/domain"
)

// Repo provides taxonomy group persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new group repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const groupColumns = `
    id, esco_code, preferred_label_en, description_en, description_ar,
    alt_labels, created_at, updated_at`

const getByIDSQL = `SELECT` + groupColumns + ` FROM taxonomy_groups WHERE id = $1`

// GetByID returns a group by primary key.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)
	g, err := scanGroup(row)
	if err != nil {
		return nil, postgres.MapError(err, "group", id)
	}

	return g, nil
}

const listSQL = `SELECT` + groupColumns + ` FROM taxonomy_groups ORDER BY esco_code NULLS LAST, id`

// List returns all groups ordered by ESCO code.
func (r *Repo) List(ctx context.Context) ([]domain.Group, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listSQL)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	groups, err := scanGroups(rows)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	return groups, nil
}

const searchSQL = `
SELECT` + groupColumns + `
FROM taxonomy_groups
WHERE preferred_label_en ILIKE $1 OR esco_code ILIKE $1 OR alt_labels ILIKE $1
ORDER BY esco_code NULLS LAST, id
LIMIT $2`

// Search returns groups whose label, code, or alternative labels match the query.
func (r *Repo) Search(ctx context.Context, query string, limit int) ([]domain.Group, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, searchSQL, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search groups: %w", err)
	}
	defer rows.Close()

	groups, err := scanGroups(rows)
	if err != nil {
		return nil, fmt.Errorf("search groups: %w", err)
	}

	return groups, nil
}

const createSQL = `
INSERT INTO taxonomy_groups (esco_code, preferred_label_en, description_en, description_ar, alt_labels)
VALUES ($1, $2, $3, $4, $5)
RETURNING` + groupColumns

// Create inserts a new group.
func (r *Repo) Create(ctx context.Context, g *domain.Group) (*domain.Group, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		g.ESCOCode, g.PreferredLabelEn, g.DescriptionEn, g.DescriptionAr, g.AltLabels)
	created, err := scanGroup(row)
	if err != nil {
		return nil, postgres.MapError(err, "group", 0)
	}

	return created, nil
}

const updateSQL = `
UPDATE taxonomy_groups SET
    esco_code = $2, preferred_label_en = $3, description_en = $4,
    description_ar = $5, alt_labels = $6, updated_at = now()
WHERE id = $1
RETURNING` + groupColumns

// Update replaces the mutable columns of a group.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) Update(ctx context.Context, g *domain.Group) (*domain.Group, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateSQL,
		g.ID, g.ESCOCode, g.PreferredLabelEn, g.DescriptionEn, g.DescriptionAr, g.AltLabels)
	updated, err := scanGroup(row)
	if err != nil {
		return nil, postgres.MapError(err, "group", g.ID)
	}

	return updated, nil
}

const deleteSQL = `DELETE FROM taxonomy_groups WHERE id = $1`

// Delete removes a group row.
// Returns domain.ErrNotFound if the group does not exist.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "group", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("group %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanGroup(row pgx.Row) (*domain.Group, error) {
	var g domain.Group
	err := row.Scan(
		&g.ID, &g.ESCOCode, &g.PreferredLabelEn, &g.DescriptionEn, &g.DescriptionAr,
		&g.AltLabels, &g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func scanGroups(rows pgx.Rows) ([]domain.Group, error) {
	var result []domain.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.Group{}
	}

	return result, nil
}
