// Package relationship implements the taxonomy edge repository using
// PostgreSQL. Every logical parent-child link is stored as a mirrored pair of
// rows; CreatePair is the only constructor, so a lone unmirrored edge cannot
// enter the table through this package.
package relationship

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/talentwire/taxonomy-backend/internal/adapter/postgres"
	"github.com/talentwire/taxonomy-backend/internal/domain"
)

// Repo provides relationship persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new relationship repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const relationshipColumns = `
    relationship_id, source_entity_type, source_entity_id,
    target_entity_type, target_entity_id, relationship_type, created_at`

// ---------------------------------------------------------------------------
// Pair construction and deletion
// ---------------------------------------------------------------------------

const createPairSQL = `
INSERT INTO taxonomy_relationships
    (source_entity_type, source_entity_id, target_entity_type, target_entity_id, relationship_type)
VALUES
    ($1, $2, $3, $4, 'contains'),
    ($3, $4, $1, $2, 'contained_by')
RETURNING relationship_id`

// CreatePair inserts the forward contains edge parent→child together with its
// contained_by mirror in a single statement. Must run inside a transaction so
// the pair is atomic with whatever checks preceded it.
func (r *Repo) CreatePair(ctx context.Context, parent, child domain.EntityRef) ([]int64, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, createPairSQL,
		string(parent.Type), parent.ID, string(child.Type), child.ID)
	if err != nil {
		return nil, postgres.MapError(err, "relationship", child.ID)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan relationship id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "relationship", child.ID)
	}

	return ids, nil
}

const getByIDSQL = `
SELECT` + relationshipColumns + `
FROM taxonomy_relationships
WHERE relationship_id = $1`

// GetByID returns a single stored edge.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Relationship, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rel, err := scanRelationship(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "relationship", id)
	}

	return rel, nil
}

const deletePairSQL = `
DELETE FROM taxonomy_relationships
WHERE (source_entity_type = $1 AND source_entity_id = $2
       AND target_entity_type = $3 AND target_entity_id = $4)
   OR (source_entity_type = $3 AND source_entity_id = $4
       AND target_entity_type = $1 AND target_entity_id = $2)`

// DeletePair removes both rows of the edge between the two endpoints,
// whichever direction each row was stored in. Returns the number of rows
// removed.
func (r *Repo) DeletePair(ctx context.Context, a, b domain.EntityRef) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deletePairSQL,
		string(a.Type), a.ID, string(b.Type), b.ID)
	if err != nil {
		return 0, postgres.MapError(err, "relationship", a.ID)
	}

	return int(tag.RowsAffected()), nil
}

const deleteByEntitySQL = `
DELETE FROM taxonomy_relationships
WHERE (source_entity_type = $1 AND source_entity_id = $2)
   OR (target_entity_type = $1 AND target_entity_id = $2)`

// DeleteByEntity removes every edge touching the entity in either role.
// Used when an entity is deleted or merged away.
func (r *Repo) DeleteByEntity(ctx context.Context, ref domain.EntityRef) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteByEntitySQL, string(ref.Type), ref.ID)
	if err != nil {
		return 0, postgres.MapError(err, ref.Type.String(), ref.ID)
	}

	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Parent lookups
// ---------------------------------------------------------------------------

const getParentRefSQL = `
SELECT target_entity_type, target_entity_id
FROM taxonomy_relationships
WHERE source_entity_type = $1 AND source_entity_id = $2
  AND relationship_type = 'contained_by'
LIMIT 1`

// GetParentRef returns the parent endpoint of the entity, or nil when the
// entity has no parent edge.
func (r *Repo) GetParentRef(ctx context.Context, ref domain.EntityRef) (*domain.EntityRef, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		parentType string
		parentID   int64
	)
	err := querier.QueryRow(ctx, getParentRefSQL, string(ref.Type), ref.ID).
		Scan(&parentType, &parentID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get parent of %s: %w", ref, err)
	}

	parent := domain.EntityRef{Type: domain.EntityType(parentType), ID: parentID}
	return &parent, nil
}

const getParentInfoSQL = `
SELECT tr.target_entity_type, tr.target_entity_id,
       COALESCE(o.preferred_label_en, g.preferred_label_en, ''),
       COALESCE(o.esco_code, g.esco_code, '')
FROM taxonomy_relationships tr
LEFT JOIN occupations o
       ON tr.target_entity_type = 'occupation' AND o.id = tr.target_entity_id
LEFT JOIN taxonomy_groups g
       ON tr.target_entity_type = 'group' AND g.id = tr.target_entity_id
WHERE tr.source_entity_type = $1 AND tr.source_entity_id = $2
  AND tr.relationship_type = 'contained_by'
LIMIT 1`

// GetParentInfo returns the parent of the entity together with its display
// name and code, or nil when the entity has no parent.
func (r *Repo) GetParentInfo(ctx context.Context, ref domain.EntityRef) (*domain.ParentInfo, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		parentType string
		info       domain.ParentInfo
	)
	err := querier.QueryRow(ctx, getParentInfoSQL, string(ref.Type), ref.ID).
		Scan(&parentType, &info.Ref.ID, &info.Name, &info.Code)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get parent info of %s: %w", ref, err)
	}

	info.Ref.Type = domain.EntityType(parentType)
	return &info, nil
}

// ---------------------------------------------------------------------------
// Tree queries
// ---------------------------------------------------------------------------

const childrenSQL = `
SELECT tr.target_entity_type, tr.target_entity_id,
       COALESCE(o.preferred_label_en, g.preferred_label_en) AS name,
       (SELECT count(*) FROM taxonomy_relationships c
        WHERE c.source_entity_type = tr.target_entity_type
          AND c.source_entity_id = tr.target_entity_id
          AND c.relationship_type = 'contains') AS child_count
FROM taxonomy_relationships tr
LEFT JOIN occupations o
       ON tr.target_entity_type = 'occupation' AND o.id = tr.target_entity_id
LEFT JOIN taxonomy_groups g
       ON tr.target_entity_type = 'group' AND g.id = tr.target_entity_id
WHERE tr.source_entity_type = $1 AND tr.source_entity_id = $2
  AND tr.relationship_type = 'contains'
  AND COALESCE(o.preferred_label_en, g.preferred_label_en) IS NOT NULL
ORDER BY tr.target_entity_type, name`

// Children returns the direct children of the entity with per-child subtree
// counts. Edges whose target row no longer exists are excluded.
func (r *Repo) Children(ctx context.Context, ref domain.EntityRef) ([]domain.TreeNode, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, childrenSQL, string(ref.Type), ref.ID)
	if err != nil {
		return nil, fmt.Errorf("children of %s: %w", ref, err)
	}
	defer rows.Close()

	nodes, err := scanTreeNodes(rows)
	if err != nil {
		return nil, fmt.Errorf("children of %s: %w", ref, err)
	}

	return nodes, nil
}

const rootsSQL = `
SELECT 'group', g.id, g.preferred_label_en,
       (SELECT count(*) FROM taxonomy_relationships c
        WHERE c.source_entity_type = 'group'
          AND c.source_entity_id = g.id
          AND c.relationship_type = 'contains') AS child_count
FROM taxonomy_groups g
WHERE NOT EXISTS (
    SELECT 1 FROM taxonomy_relationships tr
    WHERE tr.source_entity_type = 'group'
      AND tr.source_entity_id = g.id
      AND tr.relationship_type = 'contained_by'
)
ORDER BY g.preferred_label_en`

// Roots returns the groups without a parent, ordered by label.
func (r *Repo) Roots(ctx context.Context) ([]domain.TreeNode, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, rootsSQL)
	if err != nil {
		return nil, fmt.Errorf("roots: %w", err)
	}
	defer rows.Close()

	nodes, err := scanTreeNodes(rows)
	if err != nil {
		return nil, fmt.Errorf("roots: %w", err)
	}

	return nodes, nil
}

const descendantsSQL = `
WITH RECURSIVE descendants AS (
    SELECT target_entity_type AS entity_type, target_entity_id AS entity_id, 1 AS depth
    FROM taxonomy_relationships
    WHERE source_entity_type = $1 AND source_entity_id = $2
      AND relationship_type = 'contains'
    UNION
    SELECT tr.target_entity_type, tr.target_entity_id, d.depth + 1
    FROM taxonomy_relationships tr
    JOIN descendants d
      ON tr.source_entity_type = d.entity_type
     AND tr.source_entity_id = d.entity_id
     AND tr.relationship_type = 'contains'
    WHERE d.depth < $3
)
SELECT entity_type, entity_id FROM descendants`

const maxTraversalDepth = 50

// Descendants returns the closure of contains-edges below the entity.
// UNION (not UNION ALL) deduplicates, so a corrupted cyclic graph terminates
// at the depth cap instead of recursing forever.
func (r *Repo) Descendants(ctx context.Context, ref domain.EntityRef) ([]domain.EntityRef, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, descendantsSQL, string(ref.Type), ref.ID, maxTraversalDepth)
	if err != nil {
		return nil, fmt.Errorf("descendants of %s: %w", ref, err)
	}
	defer rows.Close()

	var result []domain.EntityRef
	for rows.Next() {
		var (
			entityType string
			entityID   int64
		)
		if err := rows.Scan(&entityType, &entityID); err != nil {
			return nil, fmt.Errorf("scan descendant: %w", err)
		}
		result = append(result, domain.EntityRef{Type: domain.EntityType(entityType), ID: entityID})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("descendants of %s: %w", ref, err)
	}

	if result == nil {
		result = []domain.EntityRef{}
	}

	return result, nil
}

const listByEntitySQL = `
SELECT` + relationshipColumns + `
FROM taxonomy_relationships
WHERE (source_entity_type = $1 AND source_entity_id = $2)
   OR (target_entity_type = $1 AND target_entity_id = $2)
ORDER BY relationship_id`

// ListByEntity returns every stored edge touching the entity in either role.
func (r *Repo) ListByEntity(ctx context.Context, ref domain.EntityRef) ([]domain.Relationship, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByEntitySQL, string(ref.Type), ref.ID)
	if err != nil {
		return nil, fmt.Errorf("list relationships of %s: %w", ref, err)
	}
	defer rows.Close()

	var result []domain.Relationship
	for rows.Next() {
		rel, err := scanRelationship(rows)
		if err != nil {
			return nil, fmt.Errorf("scan relationship: %w", err)
		}
		result = append(result, *rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list relationships of %s: %w", ref, err)
	}

	if result == nil {
		result = []domain.Relationship{}
	}

	return result, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

func scanRelationship(row pgx.Row) (*domain.Relationship, error) {
	var (
		rel        domain.Relationship
		sourceType string
		targetType string
		kind       string
	)
	err := row.Scan(&rel.ID, &sourceType, &rel.Source.ID, &targetType, &rel.Target.ID, &kind, &rel.CreatedAt)
	if err != nil {
		return nil, err
	}

	rel.Source.Type = domain.EntityType(sourceType)
	rel.Target.Type = domain.EntityType(targetType)
	rel.Kind = domain.RelationshipKind(kind)
	return &rel, nil
}

func scanTreeNodes(rows pgx.Rows) ([]domain.TreeNode, error) {
	var result []domain.TreeNode
	for rows.Next() {
		var (
			node       domain.TreeNode
			entityType string
		)
		if err := rows.Scan(&entityType, &node.ID, &node.Name, &node.ChildCount); err != nil {
			return nil, err
		}
		node.Type = domain.EntityType(entityType)
		node.HasChildren = node.ChildCount > 0
		result = append(result, node)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if result == nil {
		result = []domain.TreeNode{}
	}

	return result, nil
}
