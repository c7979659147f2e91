package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentwire/taxonomy-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedOccupation creates an occupation with a unique English label.
// Returns the filled domain.Occupation.
func SeedOccupation(t *testing.T, pool *pgxpool.Pool, label string) domain.Occupation {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	if label == "" {
		label = "Occupation " + suffix
	}
	code := "occ-" + suffix

	occ := domain.Occupation{
		ESCOCode:         &code,
		PreferredLabelEn: label,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO occupations (esco_code, preferred_label_en)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		occ.ESCOCode, occ.PreferredLabelEn,
	).Scan(&occ.ID, &occ.CreatedAt, &occ.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedOccupation insert: %v", err)
	}

	return occ
}

// SeedGroup creates a taxonomy group with a unique ESCO code.
func SeedGroup(t *testing.T, pool *pgxpool.Pool, label string) domain.Group {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	if label == "" {
		label = "Group " + suffix
	}
	code := "grp-" + suffix

	grp := domain.Group{
		ESCOCode:         &code,
		PreferredLabelEn: label,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO taxonomy_groups (esco_code, preferred_label_en)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		grp.ESCOCode, grp.PreferredLabelEn,
	).Scan(&grp.ID, &grp.CreatedAt, &grp.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedGroup insert: %v", err)
	}

	return grp
}

// SeedSynonym creates a synonym with a unique title in the given language.
func SeedSynonym(t *testing.T, pool *pgxpool.Pool, language string) domain.Synonym {
	t.Helper()
	ctx := context.Background()

	if language == "" {
		language = "en"
	}

	syn := domain.Synonym{
		Title:    "synonym-" + uniqueSuffix(),
		Language: language,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO synonyms (title, language)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		syn.Title, syn.Language,
	).Scan(&syn.ID, &syn.CreatedAt, &syn.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedSynonym insert: %v", err)
	}

	return syn
}

// SeedSource creates a taxonomy source with a unique name.
func SeedSource(t *testing.T, pool *pgxpool.Pool) domain.Source {
	t.Helper()
	ctx := context.Background()

	src := domain.Source{
		Name: "source-" + uniqueSuffix(),
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO taxonomy_sources (name) VALUES ($1)
		 RETURNING id, created_at`,
		src.Name,
	).Scan(&src.ID, &src.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedSource insert: %v", err)
	}

	return src
}

// LinkSynonym attaches an existing synonym to an occupation.
func LinkSynonym(t *testing.T, pool *pgxpool.Pool, occupationID, synonymID int64) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO occupation_synonyms (occupation_id, synonym_id) VALUES ($1, $2)`,
		occupationID, synonymID,
	)
	if err != nil {
		t.Fatalf("testhelper: LinkSynonym insert: %v", err)
	}
}

// SeedRelationshipPair inserts the mirrored edge pair parent-contains-child
// and child-contained_by-parent directly, bypassing service-level checks.
func SeedRelationshipPair(t *testing.T, pool *pgxpool.Pool, parent, child domain.EntityRef) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO taxonomy_relationships
		     (source_entity_type, source_entity_id, target_entity_type, target_entity_id, relationship_type)
		 VALUES
		     ($1, $2, $3, $4, 'contains'),
		     ($3, $4, $1, $2, 'contained_by')`,
		string(parent.Type), parent.ID, string(child.Type), child.ID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRelationshipPair insert: %v", err)
	}
}

// TruncateAll empties every taxonomy table, including the audit log.
// Used by tests that assert on global state such as roots or dashboard counts.
func TruncateAll(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`TRUNCATE taxonomy_audit_log, occupation_taxonomy_mapping, synonym_source_mapping,
		          occupation_source_mapping, synonym_relationships, occupation_synonyms,
		          taxonomy_relationships, taxonomy_groups, occupations, synonyms,
		          taxonomy_sources RESTART IDENTITY CASCADE`,
	)
	if err != nil {
		t.Fatalf("testhelper: TruncateAll: %v", err)
	}
}
