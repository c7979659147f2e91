package dashboard

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentwire/taxonomy-backend/internal/domain"
)

type statsRepoMock struct {
	OverviewFunc                     func(ctx context.Context) (*domain.DashboardOverview, error)
	AverageSynonymsPerOccupationFunc func(ctx context.Context) (float64, error)
	UnlinkedOccupationCountFunc      func(ctx context.Context) (int, error)
	MostSynonymsFunc                 func(ctx context.Context) (*domain.SynonymExtreme, error)
	FewestSynonymsFunc               func(ctx context.Context) (*domain.SynonymExtreme, error)
	LastAddedOccupationsFunc         func(ctx context.Context, limit int) ([]domain.RecentOccupation, error)
	LastAddedSynonymsFunc            func(ctx context.Context, limit int) ([]domain.RecentSynonym, error)
	OccupationsWithoutSourceFunc     func(ctx context.Context) (int, error)
	SynonymsWithoutSourceFunc        func(ctx context.Context) (int, error)
}

func (m *statsRepoMock) Overview(ctx context.Context) (*domain.DashboardOverview, error) {
	return m.OverviewFunc(ctx)
}

func (m *statsRepoMock) AverageSynonymsPerOccupation(ctx context.Context) (float64, error) {
	return m.AverageSynonymsPerOccupationFunc(ctx)
}

func (m *statsRepoMock) UnlinkedOccupationCount(ctx context.Context) (int, error) {
	return m.UnlinkedOccupationCountFunc(ctx)
}

func (m *statsRepoMock) MostSynonyms(ctx context.Context) (*domain.SynonymExtreme, error) {
	return m.MostSynonymsFunc(ctx)
}

func (m *statsRepoMock) FewestSynonyms(ctx context.Context) (*domain.SynonymExtreme, error) {
	return m.FewestSynonymsFunc(ctx)
}

func (m *statsRepoMock) LastAddedOccupations(ctx context.Context, limit int) ([]domain.RecentOccupation, error) {
	return m.LastAddedOccupationsFunc(ctx, limit)
}

func (m *statsRepoMock) LastAddedSynonyms(ctx context.Context, limit int) ([]domain.RecentSynonym, error) {
	return m.LastAddedSynonymsFunc(ctx, limit)
}

func (m *statsRepoMock) OccupationsWithoutSource(ctx context.Context) (int, error) {
	return m.OccupationsWithoutSourceFunc(ctx)
}

func (m *statsRepoMock) SynonymsWithoutSource(ctx context.Context) (int, error) {
	return m.SynonymsWithoutSourceFunc(ctx)
}

type sourceRepoMock struct {
	CountMappedOccupationsFunc func(ctx context.Context) ([]domain.SourceCount, error)
	CountMappedSynonymsFunc    func(ctx context.Context) ([]domain.SourceCount, error)
}

func (m *sourceRepoMock) CountMappedOccupations(ctx context.Context) ([]domain.SourceCount, error) {
	return m.CountMappedOccupationsFunc(ctx)
}

func (m *sourceRepoMock) CountMappedSynonyms(ctx context.Context) ([]domain.SourceCount, error) {
	return m.CountMappedSynonymsFunc(ctx)
}

func TestLastAdded_UsesFixedLimit(t *testing.T) {
	t.Parallel()

	stats := &statsRepoMock{
		LastAddedOccupationsFunc: func(ctx context.Context, limit int) ([]domain.RecentOccupation, error) {
			assert.Equal(t, 3, limit)
			return []domain.RecentOccupation{{ID: 10, PreferredLabelEn: "Welder"}}, nil
		},
		LastAddedSynonymsFunc: func(ctx context.Context, limit int) ([]domain.RecentSynonym, error) {
			assert.Equal(t, 3, limit)
			return []domain.RecentSynonym{}, nil
		},
	}
	svc := NewService(slog.Default(), stats, &sourceRepoMock{})

	occs, err := svc.LastAddedOccupations(context.Background())
	require.NoError(t, err)
	require.Len(t, occs, 1)
	assert.Equal(t, "Welder", occs[0].PreferredLabelEn)

	syns, err := svc.LastAddedSynonyms(context.Background())
	require.NoError(t, err)
	assert.Empty(t, syns)
}

func TestPerSourceCounts_Delegate(t *testing.T) {
	t.Parallel()

	sources := &sourceRepoMock{
		CountMappedOccupationsFunc: func(ctx context.Context) ([]domain.SourceCount, error) {
			return []domain.SourceCount{{SourceID: 1, SourceName: "ESCO", Count: 42}}, nil
		},
		CountMappedSynonymsFunc: func(ctx context.Context) ([]domain.SourceCount, error) {
			return []domain.SourceCount{{SourceID: 1, SourceName: "ESCO", Count: 7}}, nil
		},
	}
	svc := NewService(slog.Default(), &statsRepoMock{}, sources)

	byOcc, err := svc.OccupationCountPerSource(context.Background())
	require.NoError(t, err)
	require.Len(t, byOcc, 1)
	assert.Equal(t, 42, byOcc[0].Count)

	bySyn, err := svc.SynonymCountPerSource(context.Background())
	require.NoError(t, err)
	require.Len(t, bySyn, 1)
	assert.Equal(t, 7, bySyn[0].Count)
}

func TestMostSynonyms_NilWhenNoLinks(t *testing.T) {
	t.Parallel()

	stats := &statsRepoMock{
		MostSynonymsFunc: func(ctx context.Context) (*domain.SynonymExtreme, error) {
			return nil, nil
		},
	}
	svc := NewService(slog.Default(), stats, &sourceRepoMock{})

	extreme, err := svc.MostSynonyms(context.Background())
	require.NoError(t, err)
	assert.Nil(t, extreme)
}
