package catalog

import (
	"context"

	"github.com/talentwire/taxonomy-backend/internal/domain"
	"github.com/talentwire/taxonomy-backend/internal/service/taxonomy"
)

var (
	_ occupationRepo   = &occupationRepoMock{}
	_ synonymRepo      = &synonymRepoMock{}
	_ groupRepo        = &groupRepoMock{}
	_ sourceRepo       = &sourceRepoMock{}
	_ relationshipRepo = &relationshipRepoMock{}
	_ graphService     = &graphServiceMock{}
	_ txManager        = &txManagerMock{}
)

type occupationRepoMock struct {
	GetByIDFunc              func(ctx context.Context, id int64) (*domain.Occupation, error)
	GetByLabelFunc           func(ctx context.Context, label string) (*domain.Occupation, error)
	ListFunc                 func(ctx context.Context, filter domain.OccupationFilter) ([]domain.Occupation, int, error)
	SearchFunc               func(ctx context.Context, query string, limit int) ([]domain.Occupation, error)
	CreateFunc               func(ctx context.Context, occ *domain.Occupation) (*domain.Occupation, error)
	UpdateFunc               func(ctx context.Context, occ *domain.Occupation) (*domain.Occupation, error)
	DeleteFunc               func(ctx context.Context, id int64) error
	ListSynonymsFunc         func(ctx context.Context, occupationID int64) ([]domain.Synonym, error)
	ChildrenWithSynonymsFunc func(ctx context.Context, occupationID int64) ([]domain.OccupationChild, error)
	LinkSynonymFunc          func(ctx context.Context, occupationID, synonymID int64) error
	UnlinkSynonymFunc        func(ctx context.Context, occupationID, synonymID int64) error
	DeleteSynonymLinksFunc   func(ctx context.Context, occupationID int64) error
	ListSourceMappingsFunc   func(ctx context.Context, occupationID int64) ([]domain.SourceMapping, error)
	CreateSourceMappingFunc  func(ctx context.Context, m *domain.SourceMapping) (*domain.SourceMapping, error)
	DeleteSourceMappingsFunc func(ctx context.Context, occupationID int64) error
}

func (m *occupationRepoMock) GetByID(ctx context.Context, id int64) (*domain.Occupation, error) {
	if m.GetByIDFunc == nil {
		return &domain.Occupation{ID: id, PreferredLabelEn: "Occupation"}, nil
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *occupationRepoMock) GetByLabel(ctx context.Context, label string) (*domain.Occupation, error) {
	if m.GetByLabelFunc == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetByLabelFunc(ctx, label)
}

func (m *occupationRepoMock) List(ctx context.Context, filter domain.OccupationFilter) ([]domain.Occupation, int, error) {
	if m.ListFunc == nil {
		return []domain.Occupation{}, 0, nil
	}
	return m.ListFunc(ctx, filter)
}

func (m *occupationRepoMock) Search(ctx context.Context, query string, limit int) ([]domain.Occupation, error) {
	if m.SearchFunc == nil {
		return []domain.Occupation{}, nil
	}
	return m.SearchFunc(ctx, query, limit)
}

func (m *occupationRepoMock) Create(ctx context.Context, occ *domain.Occupation) (*domain.Occupation, error) {
	if m.CreateFunc == nil {
		panic("occupationRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, occ)
}

func (m *occupationRepoMock) Update(ctx context.Context, occ *domain.Occupation) (*domain.Occupation, error) {
	if m.UpdateFunc == nil {
		panic("occupationRepoMock.UpdateFunc is nil")
	}
	return m.UpdateFunc(ctx, occ)
}

func (m *occupationRepoMock) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, id)
}

func (m *occupationRepoMock) ListSynonyms(ctx context.Context, occupationID int64) ([]domain.Synonym, error) {
	if m.ListSynonymsFunc == nil {
		return []domain.Synonym{}, nil
	}
	return m.ListSynonymsFunc(ctx, occupationID)
}

func (m *occupationRepoMock) ChildrenWithSynonyms(ctx context.Context, occupationID int64) ([]domain.OccupationChild, error) {
	if m.ChildrenWithSynonymsFunc == nil {
		return []domain.OccupationChild{}, nil
	}
	return m.ChildrenWithSynonymsFunc(ctx, occupationID)
}

func (m *occupationRepoMock) LinkSynonym(ctx context.Context, occupationID, synonymID int64) error {
	if m.LinkSynonymFunc == nil {
		return nil
	}
	return m.LinkSynonymFunc(ctx, occupationID, synonymID)
}

func (m *occupationRepoMock) UnlinkSynonym(ctx context.Context, occupationID, synonymID int64) error {
	if m.UnlinkSynonymFunc == nil {
		return nil
	}
	return m.UnlinkSynonymFunc(ctx, occupationID, synonymID)
}

func (m *occupationRepoMock) DeleteSynonymLinks(ctx context.Context, occupationID int64) error {
	if m.DeleteSynonymLinksFunc == nil {
		return nil
	}
	return m.DeleteSynonymLinksFunc(ctx, occupationID)
}

func (m *occupationRepoMock) ListSourceMappings(ctx context.Context, occupationID int64) ([]domain.SourceMapping, error) {
	if m.ListSourceMappingsFunc == nil {
		return []domain.SourceMapping{}, nil
	}
	return m.ListSourceMappingsFunc(ctx, occupationID)
}

func (m *occupationRepoMock) CreateSourceMapping(ctx context.Context, sm *domain.SourceMapping) (*domain.SourceMapping, error) {
	if m.CreateSourceMappingFunc == nil {
		created := *sm
		created.ID = 1
		return &created, nil
	}
	return m.CreateSourceMappingFunc(ctx, sm)
}

func (m *occupationRepoMock) DeleteSourceMappings(ctx context.Context, occupationID int64) error {
	if m.DeleteSourceMappingsFunc == nil {
		return nil
	}
	return m.DeleteSourceMappingsFunc(ctx, occupationID)
}

type synonymRepoMock struct {
	GetByIDFunc              func(ctx context.Context, id int64) (*domain.Synonym, error)
	GetByTitleFunc           func(ctx context.Context, title string) (*domain.Synonym, error)
	ListFunc                 func(ctx context.Context, filter domain.SynonymFilter) ([]domain.Synonym, int, error)
	SearchFunc               func(ctx context.Context, query string, limit int) ([]domain.Synonym, error)
	CreateFunc               func(ctx context.Context, s *domain.Synonym) (*domain.Synonym, error)
	CreateIfAbsentFunc       func(ctx context.Context, s *domain.Synonym) (*domain.Synonym, error)
	UpdateFunc               func(ctx context.Context, s *domain.Synonym) (*domain.Synonym, error)
	DeleteFunc               func(ctx context.Context, id int64) error
	ListSourceMappingsFunc   func(ctx context.Context, synonymID int64) ([]domain.SourceMapping, error)
	CreateSourceMappingFunc  func(ctx context.Context, m *domain.SourceMapping) (*domain.SourceMapping, error)
	DeleteSourceMappingsFunc func(ctx context.Context, synonymID int64) error
	DeleteOccupationLinksFunc func(ctx context.Context, synonymID int64) error
}

func (m *synonymRepoMock) GetByID(ctx context.Context, id int64) (*domain.Synonym, error) {
	if m.GetByIDFunc == nil {
		return &domain.Synonym{ID: id, Title: "synonym", Language: "en"}, nil
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *synonymRepoMock) GetByTitle(ctx context.Context, title string) (*domain.Synonym, error) {
	if m.GetByTitleFunc == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetByTitleFunc(ctx, title)
}

func (m *synonymRepoMock) List(ctx context.Context, filter domain.SynonymFilter) ([]domain.Synonym, int, error) {
	if m.ListFunc == nil {
		return []domain.Synonym{}, 0, nil
	}
	return m.ListFunc(ctx, filter)
}

func (m *synonymRepoMock) Search(ctx context.Context, query string, limit int) ([]domain.Synonym, error) {
	if m.SearchFunc == nil {
		return []domain.Synonym{}, nil
	}
	return m.SearchFunc(ctx, query, limit)
}

func (m *synonymRepoMock) Create(ctx context.Context, s *domain.Synonym) (*domain.Synonym, error) {
	if m.CreateFunc == nil {
		panic("synonymRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, s)
}

func (m *synonymRepoMock) CreateIfAbsent(ctx context.Context, s *domain.Synonym) (*domain.Synonym, error) {
	if m.CreateIfAbsentFunc == nil {
		created := *s
		created.ID = 1
		return &created, nil
	}
	return m.CreateIfAbsentFunc(ctx, s)
}

func (m *synonymRepoMock) Update(ctx context.Context, s *domain.Synonym) (*domain.Synonym, error) {
	if m.UpdateFunc == nil {
		panic("synonymRepoMock.UpdateFunc is nil")
	}
	return m.UpdateFunc(ctx, s)
}

func (m *synonymRepoMock) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, id)
}

func (m *synonymRepoMock) ListSourceMappings(ctx context.Context, synonymID int64) ([]domain.SourceMapping, error) {
	if m.ListSourceMappingsFunc == nil {
		return []domain.SourceMapping{}, nil
	}
	return m.ListSourceMappingsFunc(ctx, synonymID)
}

func (m *synonymRepoMock) CreateSourceMapping(ctx context.Context, sm *domain.SourceMapping) (*domain.SourceMapping, error) {
	if m.CreateSourceMappingFunc == nil {
		created := *sm
		created.ID = 1
		return &created, nil
	}
	return m.CreateSourceMappingFunc(ctx, sm)
}

func (m *synonymRepoMock) DeleteSourceMappings(ctx context.Context, synonymID int64) error {
	if m.DeleteSourceMappingsFunc == nil {
		return nil
	}
	return m.DeleteSourceMappingsFunc(ctx, synonymID)
}

func (m *synonymRepoMock) DeleteOccupationLinks(ctx context.Context, synonymID int64) error {
	if m.DeleteOccupationLinksFunc == nil {
		return nil
	}
	return m.DeleteOccupationLinksFunc(ctx, synonymID)
}

type groupRepoMock struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Group, error)
	ListFunc    func(ctx context.Context) ([]domain.Group, error)
	SearchFunc  func(ctx context.Context, query string, limit int) ([]domain.Group, error)
	CreateFunc  func(ctx context.Context, g *domain.Group) (*domain.Group, error)
	UpdateFunc  func(ctx context.Context, g *domain.Group) (*domain.Group, error)
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *groupRepoMock) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	if m.GetByIDFunc == nil {
		return &domain.Group{ID: id, PreferredLabelEn: "Group"}, nil
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *groupRepoMock) List(ctx context.Context) ([]domain.Group, error) {
	if m.ListFunc == nil {
		return []domain.Group{}, nil
	}
	return m.ListFunc(ctx)
}

func (m *groupRepoMock) Search(ctx context.Context, query string, limit int) ([]domain.Group, error) {
	if m.SearchFunc == nil {
		return []domain.Group{}, nil
	}
	return m.SearchFunc(ctx, query, limit)
}

func (m *groupRepoMock) Create(ctx context.Context, g *domain.Group) (*domain.Group, error) {
	if m.CreateFunc == nil {
		panic("groupRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, g)
}

func (m *groupRepoMock) Update(ctx context.Context, g *domain.Group) (*domain.Group, error) {
	if m.UpdateFunc == nil {
		panic("groupRepoMock.UpdateFunc is nil")
	}
	return m.UpdateFunc(ctx, g)
}

func (m *groupRepoMock) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, id)
}

type sourceRepoMock struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Source, error)
	ListFunc    func(ctx context.Context) ([]domain.Source, error)
	CreateFunc  func(ctx context.Context, s *domain.Source) (*domain.Source, error)
	UpdateFunc  func(ctx context.Context, s *domain.Source) (*domain.Source, error)
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *sourceRepoMock) GetByID(ctx context.Context, id int64) (*domain.Source, error) {
	if m.GetByIDFunc == nil {
		return &domain.Source{ID: id, Name: "Source"}, nil
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *sourceRepoMock) List(ctx context.Context) ([]domain.Source, error) {
	if m.ListFunc == nil {
		return []domain.Source{}, nil
	}
	return m.ListFunc(ctx)
}

func (m *sourceRepoMock) Create(ctx context.Context, s *domain.Source) (*domain.Source, error) {
	if m.CreateFunc == nil {
		panic("sourceRepoMock.CreateFunc is nil")
	}
	return m.CreateFunc(ctx, s)
}

func (m *sourceRepoMock) Update(ctx context.Context, s *domain.Source) (*domain.Source, error) {
	if m.UpdateFunc == nil {
		panic("sourceRepoMock.UpdateFunc is nil")
	}
	return m.UpdateFunc(ctx, s)
}

func (m *sourceRepoMock) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, id)
}

type relationshipRepoMock struct {
	GetParentInfoFunc  func(ctx context.Context, ref domain.EntityRef) (*domain.ParentInfo, error)
	DeleteByEntityFunc func(ctx context.Context, ref domain.EntityRef) (int, error)
}

func (m *relationshipRepoMock) GetParentInfo(ctx context.Context, ref domain.EntityRef) (*domain.ParentInfo, error) {
	if m.GetParentInfoFunc == nil {
		return nil, nil
	}
	return m.GetParentInfoFunc(ctx, ref)
}

func (m *relationshipRepoMock) DeleteByEntity(ctx context.Context, ref domain.EntityRef) (int, error) {
	if m.DeleteByEntityFunc == nil {
		return 0, nil
	}
	return m.DeleteByEntityFunc(ctx, ref)
}

type graphServiceMock struct {
	AssignParentFunc func(ctx context.Context, childID int64, parent domain.EntityRef) (*taxonomy.AssignParentResult, error)
}

func (m *graphServiceMock) AssignParent(ctx context.Context, childID int64, parent domain.EntityRef) (*taxonomy.AssignParentResult, error) {
	if m.AssignParentFunc == nil {
		return &taxonomy.AssignParentResult{RelationshipIDs: []int64{1, 2}}, nil
	}
	return m.AssignParentFunc(ctx, childID, parent)
}

type txManagerMock struct{}

func (txManagerMock) RunInTxWithAudit(ctx context.Context, actx domain.AuditContext, fn func(ctx context.Context) error) error {
	if err := actx.Validate(); err != nil {
		return err
	}
	return fn(ctx)
}
