package source_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentwire/taxonomy-backend/internal/adapter/postgres/source"
	"github.com/talentwire/taxonomy-backend/internal/adapter/postgres/testhelper"
	"github.com/talentwire/taxonomy-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*source.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return source.New(pool), pool
}

func TestRepo_Create_And_GetByID(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	desc := "European skills and occupations classification"
	input := &domain.Source{
		Name:        "esco-" + uuid.New().String()[:8],
		Description: &desc,
	}

	created, err := repo.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("Create: ID not assigned")
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.Name != input.Name {
		t.Errorf("Name: got %q, want %q", got.Name, input.Name)
	}
	if got.Description == nil || *got.Description != desc {
		t.Errorf("Description: got %v, want %q", got.Description, desc)
	}
}

func TestRepo_Update(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedSource(t, pool)
	seeded.Name = "renamed-" + uuid.New().String()[:8]

	updated, err := repo.Update(ctx, &seeded)
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if updated.Name != seeded.Name {
		t.Errorf("Name: got %q, want %q", updated.Name, seeded.Name)
	}
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedSource(t, pool)

	if err := repo.Delete(ctx, seeded.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}
	if _, err := repo.GetByID(ctx, seeded.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID after delete: got %v, want ErrNotFound", err)
	}
}

func TestRepo_CountMappedOccupations(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	src := testhelper.SeedSource(t, pool)
	occA := testhelper.SeedOccupation(t, pool, "")
	occB := testhelper.SeedOccupation(t, pool, "")

	for _, id := range []int64{occA.ID, occB.ID} {
		if _, err := pool.Exec(ctx,
			`INSERT INTO occupation_source_mapping (occupation_id, source_id) VALUES ($1, $2)`,
			id, src.ID); err != nil {
			t.Fatalf("seed mapping: %v", err)
		}
	}

	counts, err := repo.CountMappedOccupations(ctx)
	if err != nil {
		t.Fatalf("CountMappedOccupations: unexpected error: %v", err)
	}

	var got *domain.SourceCount
	for i := range counts {
		if counts[i].SourceID == src.ID {
			got = &counts[i]
		}
	}
	if got == nil {
		t.Fatal("CountMappedOccupations: seeded source missing")
	}
	if got.Count != 2 {
		t.Errorf("Count: got %d, want 2", got.Count)
	}
	if got.SourceName != src.Name {
		t.Errorf("SourceName: got %q, want %q", got.SourceName, src.Name)
	}
}

func TestRepo_CountMappedSynonyms_IncludesEmptySources(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	src := testhelper.SeedSource(t, pool)

	counts, err := repo.CountMappedSynonyms(ctx)
	if err != nil {
		t.Fatalf("CountMappedSynonyms: unexpected error: %v", err)
	}

	var got *domain.SourceCount
	for i := range counts {
		if counts[i].SourceID == src.ID {
			got = &counts[i]
		}
	}
	if got == nil {
		t.Fatal("CountMappedSynonyms: unmapped source missing from listing")
	}
	if got.Count != 0 {
		t.Errorf("Count: got %d, want 0", got.Count)
	}
}
