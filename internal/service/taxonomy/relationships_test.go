package taxonomy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentwire/taxonomy-backend/internal/domain"
)

func TestCreateRelationship_NormalizesContainedBy(t *testing.T) {
	t.Parallel()

	rels := &relationshipRepoMock{
		GetParentInfoFunc: func(ctx context.Context, ref domain.EntityRef) (*domain.ParentInfo, error) {
			return nil, nil
		},
		CreatePairFunc: func(ctx context.Context, parent, child domain.EntityRef) ([]int64, error) {
			assert.Equal(t, domain.GroupRef(7), parent)
			assert.Equal(t, domain.OccupationRef(3), child)
			return []int64{11, 12}, nil
		},
	}
	occs := &occupationRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Occupation, error) {
			return occ(id, "Plumber"), nil
		},
	}
	grps := &groupRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Group, error) {
			return &domain.Group{ID: id, PreferredLabelEn: "Trades"}, nil
		},
	}

	svc := newTestService(rels, occs, grps)

	ids, err := svc.CreateRelationship(auditCtx(), domain.Relationship{
		Source: domain.OccupationRef(3),
		Target: domain.GroupRef(7),
		Kind:   domain.RelationshipContainedBy,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 12}, ids)
}

func TestCreateRelationship_RejectsOccupationContainingGroup(t *testing.T) {
	t.Parallel()

	svc := newTestService(&relationshipRepoMock{}, &occupationRepoMock{}, &groupRepoMock{})

	_, err := svc.CreateRelationship(auditCtx(), domain.Relationship{
		Source: domain.OccupationRef(3),
		Target: domain.GroupRef(7),
		Kind:   domain.RelationshipContains,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateRelationship_NoSameParentShortcut(t *testing.T) {
	t.Parallel()

	parent := domain.GroupRef(7)
	rels := &relationshipRepoMock{
		GetParentInfoFunc: func(ctx context.Context, ref domain.EntityRef) (*domain.ParentInfo, error) {
			return &domain.ParentInfo{Ref: parent, Name: "Trades"}, nil
		},
	}

	svc := newTestService(rels, &occupationRepoMock{}, &groupRepoMock{})

	// AssignParent would treat this as idempotent; the generic API rejects it.
	_, err := svc.CreateRelationship(auditCtx(), domain.Relationship{
		Source: parent,
		Target: domain.OccupationRef(3),
		Kind:   domain.RelationshipContains,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDeleteRelationship_RemovesMirrorToo(t *testing.T) {
	t.Parallel()

	edge := domain.Relationship{
		ID:     41,
		Source: domain.GroupRef(7),
		Target: domain.OccupationRef(3),
		Kind:   domain.RelationshipContains,
	}

	var deletedA, deletedB domain.EntityRef
	rels := &relationshipRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Relationship, error) {
			require.Equal(t, int64(41), id)
			return &edge, nil
		},
		DeletePairFunc: func(ctx context.Context, a, b domain.EntityRef) (int, error) {
			deletedA, deletedB = a, b
			return 2, nil
		},
	}

	svc := newTestService(rels, &occupationRepoMock{}, &groupRepoMock{})

	err := svc.DeleteRelationship(auditCtx(), 41)
	require.NoError(t, err)
	assert.Equal(t, edge.Source, deletedA)
	assert.Equal(t, edge.Target, deletedB)
}

func TestDeleteRelationship_NotFound(t *testing.T) {
	t.Parallel()

	rels := &relationshipRepoMock{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Relationship, error) {
			return nil, domain.ErrNotFound
		},
	}

	svc := newTestService(rels, &occupationRepoMock{}, &groupRepoMock{})

	err := svc.DeleteRelationship(auditCtx(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveParent_NoParent(t *testing.T) {
	t.Parallel()

	rels := &relationshipRepoMock{
		GetParentRefFunc: func(ctx context.Context, ref domain.EntityRef) (*domain.EntityRef, error) {
			return nil, nil
		},
	}

	svc := newTestService(rels, &occupationRepoMock{}, &groupRepoMock{})

	err := svc.RemoveParent(auditCtx(), 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChildren_UnknownEntityType(t *testing.T) {
	t.Parallel()

	svc := newTestService(&relationshipRepoMock{}, &occupationRepoMock{}, &groupRepoMock{})

	_, err := svc.Children(context.Background(), domain.EntityRef{Type: "cluster", ID: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAncestors_StopsAtRoot(t *testing.T) {
	t.Parallel()

	parents := map[domain.EntityRef]domain.ParentInfo{
		domain.OccupationRef(3): {Ref: domain.GroupRef(7), Name: "Trades"},
		domain.GroupRef(7):      {Ref: domain.GroupRef(1), Name: "All"},
	}

	rels := &relationshipRepoMock{
		GetParentInfoFunc: func(ctx context.Context, ref domain.EntityRef) (*domain.ParentInfo, error) {
			if info, ok := parents[ref]; ok {
				return &info, nil
			}
			return nil, nil
		},
	}

	svc := newTestService(rels, &occupationRepoMock{}, &groupRepoMock{})

	chain, err := svc.Ancestors(context.Background(), domain.OccupationRef(3))
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, domain.GroupRef(7), chain[0].Ref)
	assert.Equal(t, domain.GroupRef(1), chain[1].Ref)
}
