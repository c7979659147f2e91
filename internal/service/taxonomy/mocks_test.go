package taxonomy

import (
	"context"

	"github.com/talentwire/taxonomy-backend/internal/domain"
)

var (
	_ relationshipRepo = &relationshipRepoMock{}
	_ occupationRepo   = &occupationRepoMock{}
	_ groupRepo        = &groupRepoMock{}
	_ txManager        = &txManagerMock{}
)

type relationshipRepoMock struct {
	CreatePairFunc    func(ctx context.Context, parent, child domain.EntityRef) ([]int64, error)
	GetByIDFunc       func(ctx context.Context, id int64) (*domain.Relationship, error)
	DeletePairFunc    func(ctx context.Context, a, b domain.EntityRef) (int, error)
	GetParentRefFunc  func(ctx context.Context, ref domain.EntityRef) (*domain.EntityRef, error)
	GetParentInfoFunc func(ctx context.Context, ref domain.EntityRef) (*domain.ParentInfo, error)
	ChildrenFunc      func(ctx context.Context, ref domain.EntityRef) ([]domain.TreeNode, error)
	RootsFunc         func(ctx context.Context) ([]domain.TreeNode, error)
	DescendantsFunc   func(ctx context.Context, ref domain.EntityRef) ([]domain.EntityRef, error)
	ListByEntityFunc  func(ctx context.Context, ref domain.EntityRef) ([]domain.Relationship, error)
}

func (m *relationshipRepoMock) CreatePair(ctx context.Context, parent, child domain.EntityRef) ([]int64, error) {
	if m.CreatePairFunc == nil {
		panic("relationshipRepoMock.CreatePairFunc is nil")
	}
	return m.CreatePairFunc(ctx, parent, child)
}

func (m *relationshipRepoMock) GetByID(ctx context.Context, id int64) (*domain.Relationship, error) {
	if m.GetByIDFunc == nil {
		panic("relationshipRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *relationshipRepoMock) DeletePair(ctx context.Context, a, b domain.EntityRef) (int, error) {
	if m.DeletePairFunc == nil {
		panic("relationshipRepoMock.DeletePairFunc is nil")
	}
	return m.DeletePairFunc(ctx, a, b)
}

func (m *relationshipRepoMock) GetParentRef(ctx context.Context, ref domain.EntityRef) (*domain.EntityRef, error) {
	if m.GetParentRefFunc == nil {
		return nil, nil
	}
	return m.GetParentRefFunc(ctx, ref)
}

func (m *relationshipRepoMock) GetParentInfo(ctx context.Context, ref domain.EntityRef) (*domain.ParentInfo, error) {
	if m.GetParentInfoFunc == nil {
		return nil, nil
	}
	return m.GetParentInfoFunc(ctx, ref)
}

func (m *relationshipRepoMock) Children(ctx context.Context, ref domain.EntityRef) ([]domain.TreeNode, error) {
	if m.ChildrenFunc == nil {
		panic("relationshipRepoMock.ChildrenFunc is nil")
	}
	return m.ChildrenFunc(ctx, ref)
}

func (m *relationshipRepoMock) Roots(ctx context.Context) ([]domain.TreeNode, error) {
	if m.RootsFunc == nil {
		panic("relationshipRepoMock.RootsFunc is nil")
	}
	return m.RootsFunc(ctx)
}

func (m *relationshipRepoMock) Descendants(ctx context.Context, ref domain.EntityRef) ([]domain.EntityRef, error) {
	if m.DescendantsFunc == nil {
		panic("relationshipRepoMock.DescendantsFunc is nil")
	}
	return m.DescendantsFunc(ctx, ref)
}

func (m *relationshipRepoMock) ListByEntity(ctx context.Context, ref domain.EntityRef) ([]domain.Relationship, error) {
	if m.ListByEntityFunc == nil {
		panic("relationshipRepoMock.ListByEntityFunc is nil")
	}
	return m.ListByEntityFunc(ctx, ref)
}

type occupationRepoMock struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Occupation, error)
	LockFunc    func(ctx context.Context, id int64) error
}

func (m *occupationRepoMock) GetByID(ctx context.Context, id int64) (*domain.Occupation, error) {
	if m.GetByIDFunc == nil {
		panic("occupationRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *occupationRepoMock) Lock(ctx context.Context, id int64) error {
	if m.LockFunc == nil {
		return nil
	}
	return m.LockFunc(ctx, id)
}

type groupRepoMock struct {
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Group, error)
}

func (m *groupRepoMock) GetByID(ctx context.Context, id int64) (*domain.Group, error) {
	if m.GetByIDFunc == nil {
		panic("groupRepoMock.GetByIDFunc is nil")
	}
	return m.GetByIDFunc(ctx, id)
}

type txManagerMock struct {
	RunInTxFunc          func(ctx context.Context, fn func(ctx context.Context) error) error
	RunInTxWithAuditFunc func(ctx context.Context, actx domain.AuditContext, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc != nil {
		return m.RunInTxFunc(ctx, fn)
	}
	return fn(ctx)
}

func (m *txManagerMock) RunInTxWithAudit(ctx context.Context, actx domain.AuditContext, fn func(ctx context.Context) error) error {
	if m.RunInTxWithAuditFunc != nil {
		return m.RunInTxWithAuditFunc(ctx, actx, fn)
	}
	if err := actx.Validate(); err != nil {
		return err
	}
	return fn(ctx)
}
