package occupation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentwire/taxonomy-backend/internal/adapter/postgres/occupation"
	"github.com/talentwire/taxonomy-backend/internal/adapter/postgres/testhelper"
	"github.com/talentwire/taxonomy-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*occupation.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return occupation.New(pool), pool
}

func uniqueLabel(prefix string) string {
	return prefix + " " + uuid.New().String()[:8]
}

// ---------------------------------------------------------------------------
// CRUD
// ---------------------------------------------------------------------------

func TestRepo_Create_And_GetByID(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	code := "2512." + uuid.New().String()[:8]
	ar := "مطور برمجيات"
	input := &domain.Occupation{
		ESCOCode:         &code,
		PreferredLabelEn: uniqueLabel("Software Developer"),
		PreferredLabelAr: &ar,
		IsGenericTitle:   true,
	}

	created, err := repo.Create(ctx, input)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("Create: ID not assigned")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("Create: timestamps not set")
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.PreferredLabelEn != input.PreferredLabelEn {
		t.Errorf("PreferredLabelEn: got %q, want %q", got.PreferredLabelEn, input.PreferredLabelEn)
	}
	if got.ESCOCode == nil || *got.ESCOCode != code {
		t.Errorf("ESCOCode: got %v, want %q", got.ESCOCode, code)
	}
	if got.PreferredLabelAr == nil || *got.PreferredLabelAr != ar {
		t.Errorf("PreferredLabelAr: got %v, want %q", got.PreferredLabelAr, ar)
	}
	if !got.IsGenericTitle {
		t.Error("IsGenericTitle: got false, want true")
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByID(context.Background(), 999999999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByID: got %v, want ErrNotFound", err)
	}
}

func TestRepo_GetByLabel(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedOccupation(t, pool, uniqueLabel("Data Engineer"))

	got, err := repo.GetByLabel(ctx, seeded.PreferredLabelEn)
	if err != nil {
		t.Fatalf("GetByLabel: unexpected error: %v", err)
	}
	if got.ID != seeded.ID {
		t.Errorf("ID: got %d, want %d", got.ID, seeded.ID)
	}

	if _, err := repo.GetByLabel(ctx, uniqueLabel("Nonexistent")); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByLabel(missing): got %v, want ErrNotFound", err)
	}
}

func TestRepo_Update(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedOccupation(t, pool, "")

	desc := "Designs and maintains data pipelines"
	seeded.PreferredLabelEn = uniqueLabel("Updated")
	seeded.DescriptionEn = &desc

	updated, err := repo.Update(ctx, &seeded)
	if err != nil {
		t.Fatalf("Update: unexpected error: %v", err)
	}
	if updated.PreferredLabelEn != seeded.PreferredLabelEn {
		t.Errorf("PreferredLabelEn: got %q, want %q", updated.PreferredLabelEn, seeded.PreferredLabelEn)
	}
	if updated.DescriptionEn == nil || *updated.DescriptionEn != desc {
		t.Errorf("DescriptionEn: got %v, want %q", updated.DescriptionEn, desc)
	}
	if updated.UpdatedAt.Before(seeded.UpdatedAt) {
		t.Error("UpdatedAt should not move backwards on update")
	}
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedOccupation(t, pool, "")

	if err := repo.Delete(ctx, seeded.ID); err != nil {
		t.Fatalf("Delete: unexpected error: %v", err)
	}
	if _, err := repo.GetByID(ctx, seeded.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetByID after delete: got %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, seeded.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second Delete: got %v, want ErrNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// Listing and search
// ---------------------------------------------------------------------------

func TestRepo_List_SearchFilter(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	needle := "zlist-" + uuid.New().String()[:8]
	a := testhelper.SeedOccupation(t, pool, "Alpha "+needle)
	b := testhelper.SeedOccupation(t, pool, "Beta "+needle)
	testhelper.SeedOccupation(t, pool, uniqueLabel("Unrelated"))

	got, total, err := repo.List(ctx, domain.OccupationFilter{
		Search: needle,
		Limit:  10,
	})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if total != 2 {
		t.Errorf("total: got %d, want 2", total)
	}
	if len(got) != 2 {
		t.Fatalf("len: got %d, want 2", len(got))
	}
	// Newest first.
	if got[0].ID != b.ID || got[1].ID != a.ID {
		t.Errorf("order: got [%d %d], want [%d %d]", got[0].ID, got[1].ID, b.ID, a.ID)
	}
}

func TestRepo_List_Pagination(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	needle := "zpage-" + uuid.New().String()[:8]
	for i := 0; i < 5; i++ {
		testhelper.SeedOccupation(t, pool, uniqueLabel(needle))
	}

	got, total, err := repo.List(ctx, domain.OccupationFilter{
		Search: needle,
		Limit:  2,
		Offset: 4,
	})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if total != 5 {
		t.Errorf("total: got %d, want 5", total)
	}
	if len(got) != 1 {
		t.Errorf("len: got %d, want 1 (last page)", len(got))
	}
}

func TestRepo_List_SourceFilter(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	src := testhelper.SeedSource(t, pool)
	needle := "zsrc-" + uuid.New().String()[:8]
	mapped := testhelper.SeedOccupation(t, pool, uniqueLabel(needle))
	testhelper.SeedOccupation(t, pool, uniqueLabel(needle))

	if _, err := repo.CreateSourceMapping(ctx, &domain.SourceMapping{
		EntityID: mapped.ID,
		SourceID: src.ID,
	}); err != nil {
		t.Fatalf("CreateSourceMapping: unexpected error: %v", err)
	}

	got, total, err := repo.List(ctx, domain.OccupationFilter{
		Search:   needle,
		SourceID: &src.ID,
		Limit:    10,
	})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if total != 1 || len(got) != 1 {
		t.Fatalf("got total=%d len=%d, want 1/1", total, len(got))
	}
	if got[0].ID != mapped.ID {
		t.Errorf("ID: got %d, want %d", got[0].ID, mapped.ID)
	}
}

func TestRepo_List_UnlinkedFilter(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	needle := "zunl-" + uuid.New().String()[:8]
	linked := testhelper.SeedOccupation(t, pool, uniqueLabel(needle))
	unlinked := testhelper.SeedOccupation(t, pool, uniqueLabel(needle))
	parent := testhelper.SeedGroup(t, pool, "")

	testhelper.SeedRelationshipPair(t, pool,
		domain.GroupRef(parent.ID), domain.OccupationRef(linked.ID))

	got, total, err := repo.List(ctx, domain.OccupationFilter{
		Search:   needle,
		Unlinked: true,
		Limit:    10,
	})
	if err != nil {
		t.Fatalf("List: unexpected error: %v", err)
	}
	if total != 1 || len(got) != 1 {
		t.Fatalf("got total=%d len=%d, want 1/1", total, len(got))
	}
	if got[0].ID != unlinked.ID {
		t.Errorf("ID: got %d, want %d", got[0].ID, unlinked.ID)
	}
}

func TestRepo_Search_MatchesLabelAndCode(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	needle := "zsearch" + uuid.New().String()[:8]
	byLabel := testhelper.SeedOccupation(t, pool, "Label "+needle)
	byCode := testhelper.SeedOccupation(t, pool, uniqueLabel("Plain"))
	testhelper.SeedOccupation(t, pool, uniqueLabel("Other"))

	_, err := pool.Exec(ctx, `UPDATE occupations SET esco_code = $1 WHERE id = $2`,
		"code-"+needle, byCode.ID)
	if err != nil {
		t.Fatalf("set esco code: %v", err)
	}

	got, err := repo.Search(ctx, needle, 10)
	if err != nil {
		t.Fatalf("Search: unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Search: got %d results, want 2", len(got))
	}

	found := map[int64]bool{}
	for _, occ := range got {
		found[occ.ID] = true
	}
	if !found[byLabel.ID] {
		t.Error("Search: occupation matching by label missing")
	}
	if !found[byCode.ID] {
		t.Error("Search: occupation matching by code missing")
	}
}

// ---------------------------------------------------------------------------
// Synonym links
// ---------------------------------------------------------------------------

func TestRepo_LinkSynonym_And_ListSynonyms(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	occ := testhelper.SeedOccupation(t, pool, "")
	syn := testhelper.SeedSynonym(t, pool, "en")

	if err := repo.LinkSynonym(ctx, occ.ID, syn.ID); err != nil {
		t.Fatalf("LinkSynonym: unexpected error: %v", err)
	}
	// Idempotent: repeated link is a no-op.
	if err := repo.LinkSynonym(ctx, occ.ID, syn.ID); err != nil {
		t.Errorf("duplicate LinkSynonym: unexpected error: %v", err)
	}

	synonyms, err := repo.ListSynonyms(ctx, occ.ID)
	if err != nil {
		t.Fatalf("ListSynonyms: unexpected error: %v", err)
	}
	if len(synonyms) != 1 || synonyms[0].ID != syn.ID {
		t.Fatalf("ListSynonyms: got %v, want one synonym %d", synonyms, syn.ID)
	}
}

func TestRepo_UnlinkSynonym(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	occ := testhelper.SeedOccupation(t, pool, "")
	syn := testhelper.SeedSynonym(t, pool, "en")
	testhelper.LinkSynonym(t, pool, occ.ID, syn.ID)

	if err := repo.UnlinkSynonym(ctx, occ.ID, syn.ID); err != nil {
		t.Fatalf("UnlinkSynonym: unexpected error: %v", err)
	}

	synonyms, err := repo.ListSynonyms(ctx, occ.ID)
	if err != nil {
		t.Fatalf("ListSynonyms: unexpected error: %v", err)
	}
	if len(synonyms) != 0 {
		t.Errorf("ListSynonyms after unlink: got %d, want 0", len(synonyms))
	}

	// Unlinking an absent pair is a no-op.
	if err := repo.UnlinkSynonym(ctx, occ.ID, syn.ID); err != nil {
		t.Errorf("second UnlinkSynonym: unexpected error: %v", err)
	}
}

func TestRepo_RepointSynonymLinks(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	from := testhelper.SeedOccupation(t, pool, "")
	to := testhelper.SeedOccupation(t, pool, "")
	shared := testhelper.SeedSynonym(t, pool, "en")
	only := testhelper.SeedSynonym(t, pool, "en")

	// shared is linked to both sides; repoint must not duplicate it.
	testhelper.LinkSynonym(t, pool, from.ID, shared.ID)
	testhelper.LinkSynonym(t, pool, to.ID, shared.ID)
	testhelper.LinkSynonym(t, pool, from.ID, only.ID)

	if err := repo.RepointSynonymLinks(ctx, from.ID, to.ID); err != nil {
		t.Fatalf("RepointSynonymLinks: unexpected error: %v", err)
	}

	fromSyns, err := repo.ListSynonyms(ctx, from.ID)
	if err != nil {
		t.Fatalf("ListSynonyms(from): unexpected error: %v", err)
	}
	if len(fromSyns) != 0 {
		t.Errorf("from still has %d synonyms, want 0", len(fromSyns))
	}

	toSyns, err := repo.ListSynonyms(ctx, to.ID)
	if err != nil {
		t.Fatalf("ListSynonyms(to): unexpected error: %v", err)
	}
	if len(toSyns) != 2 {
		t.Errorf("to has %d synonyms, want 2", len(toSyns))
	}
}

// ---------------------------------------------------------------------------
// Source mappings
// ---------------------------------------------------------------------------

func TestRepo_SourceMappings_Lifecycle(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	occ := testhelper.SeedOccupation(t, pool, "")
	src := testhelper.SeedSource(t, pool)

	created, err := repo.CreateSourceMapping(ctx, &domain.SourceMapping{
		EntityID:        occ.ID,
		SourceID:        src.ID,
		IsVerified:      true,
		ConfidenceScore: 0.9,
	})
	if err != nil {
		t.Fatalf("CreateSourceMapping: unexpected error: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("CreateSourceMapping: ID not assigned")
	}

	mappings, err := repo.ListSourceMappings(ctx, occ.ID)
	if err != nil {
		t.Fatalf("ListSourceMappings: unexpected error: %v", err)
	}
	if len(mappings) != 1 {
		t.Fatalf("ListSourceMappings: got %d, want 1", len(mappings))
	}
	if mappings[0].SourceID != src.ID || !mappings[0].IsVerified {
		t.Errorf("mapping: got %+v", mappings[0])
	}

	if err := repo.DeleteSourceMappings(ctx, occ.ID); err != nil {
		t.Fatalf("DeleteSourceMappings: unexpected error: %v", err)
	}
	mappings, err = repo.ListSourceMappings(ctx, occ.ID)
	if err != nil {
		t.Fatalf("ListSourceMappings after delete: unexpected error: %v", err)
	}
	if len(mappings) != 0 {
		t.Errorf("ListSourceMappings after delete: got %d, want 0", len(mappings))
	}
}
