// Package catalog orchestrates CRUD over occupations, synonyms, groups, and
// sources, including the composite occupation flows that touch synonym links,
// source mappings, and the taxonomy graph in one transaction.
package catalog

import (
	"context"
	"log/slog"

	"github.com/talentwire/taxonomy-backend/internal/domain"
	"github.com/talentwire/taxonomy-backend/internal/service/taxonomy"
)

type occupationRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Occupation, error)
	GetByLabel(ctx context.Context, label string) (*domain.Occupation, error)
	List(ctx context.Context, filter domain.OccupationFilter) ([]domain.Occupation, int, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Occupation, error)
	Create(ctx context.Context, occ *domain.Occupation) (*domain.Occupation, error)
	Update(ctx context.Context, occ *domain.Occupation) (*domain.Occupation, error)
	Delete(ctx context.Context, id int64) error
	ListSynonyms(ctx context.Context, occupationID int64) ([]domain.Synonym, error)
	ChildrenWithSynonyms(ctx context.Context, occupationID int64) ([]domain.OccupationChild, error)
	LinkSynonym(ctx context.Context, occupationID, synonymID int64) error
	UnlinkSynonym(ctx context.Context, occupationID, synonymID int64) error
	DeleteSynonymLinks(ctx context.Context, occupationID int64) error
	ListSourceMappings(ctx context.Context, occupationID int64) ([]domain.SourceMapping, error)
	CreateSourceMapping(ctx context.Context, m *domain.SourceMapping) (*domain.SourceMapping, error)
	DeleteSourceMappings(ctx context.Context, occupationID int64) error
}

type synonymRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Synonym, error)
	GetByTitle(ctx context.Context, title string) (*domain.Synonym, error)
	List(ctx context.Context, filter domain.SynonymFilter) ([]domain.Synonym, int, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Synonym, error)
	Create(ctx context.Context, s *domain.Synonym) (*domain.Synonym, error)
	CreateIfAbsent(ctx context.Context, s *domain.Synonym) (*domain.Synonym, error)
	Update(ctx context.Context, s *domain.Synonym) (*domain.Synonym, error)
	Delete(ctx context.Context, id int64) error
	ListSourceMappings(ctx context.Context, synonymID int64) ([]domain.SourceMapping, error)
	CreateSourceMapping(ctx context.Context, m *domain.SourceMapping) (*domain.SourceMapping, error)
	DeleteSourceMappings(ctx context.Context, synonymID int64) error
	DeleteOccupationLinks(ctx context.Context, synonymID int64) error
}

type groupRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Group, error)
	List(ctx context.Context) ([]domain.Group, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Group, error)
	Create(ctx context.Context, g *domain.Group) (*domain.Group, error)
	Update(ctx context.Context, g *domain.Group) (*domain.Group, error)
	Delete(ctx context.Context, id int64) error
}

type sourceRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Source, error)
	List(ctx context.Context) ([]domain.Source, error)
	Create(ctx context.Context, s *domain.Source) (*domain.Source, error)
	Update(ctx context.Context, s *domain.Source) (*domain.Source, error)
	Delete(ctx context.Context, id int64) error
}

type relationshipRepo interface {
	GetParentInfo(ctx context.Context, ref domain.EntityRef) (*domain.ParentInfo, error)
	DeleteByEntity(ctx context.Context, ref domain.EntityRef) (int, error)
}

// graphService is the slice of the taxonomy service the catalog needs for
// composite creates. AssignParent nests its own transaction inside the
// catalog's, which the tx manager executes inline.
type graphService interface {
	AssignParent(ctx context.Context, childID int64, parent domain.EntityRef) (*taxonomy.AssignParentResult, error)
}

type txManager interface {
	RunInTxWithAudit(ctx context.Context, actx domain.AuditContext, fn func(ctx context.Context) error) error
}

const searchLimit = 20

// Service provides catalog CRUD operations.
type Service struct {
	occupations   occupationRepo
	synonyms      synonymRepo
	groups        groupRepo
	sources       sourceRepo
	relationships relationshipRepo
	graph         graphService
	tx            txManager
	log           *slog.Logger
}

// NewService creates a new catalog service.
func NewService(
	log *slog.Logger,
	occupations occupationRepo,
	synonyms synonymRepo,
	groups groupRepo,
	sources sourceRepo,
	relationships relationshipRepo,
	graph graphService,
	tx txManager,
) *Service {
	return &Service{
		occupations:   occupations,
		synonyms:      synonyms,
		groups:        groups,
		sources:       sources,
		relationships: relationships,
		graph:         graph,
		tx:            tx,
		log:           log.With("service", "catalog"),
	}
}
