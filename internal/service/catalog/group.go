package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/talentwire/taxonomy-backend/internal/domain"
	"github.com/talentwire/taxonomy-backend/pkg/ctxutil"
)

// GetGroup returns a taxonomy group by ID.
func (s *Service) GetGroup(ctx context.Context, id int64) (*domain.Group, error) {
	return s.groups.GetByID(ctx, id)
}

// ListGroups returns every taxonomy group.
func (s *Service) ListGroups(ctx context.Context) ([]domain.Group, error) {
	return s.groups.List(ctx)
}

// CreateGroup inserts a taxonomy group.
func (s *Service) CreateGroup(ctx context.Context, g domain.Group) (*domain.Group, error) {
	actx, ok := ctxutil.AuditContextFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Group
	err := s.tx.RunInTxWithAudit(ctx, actx, func(txCtx context.Context) error {
		var err error
		created, err = s.groups.Create(txCtx, &g)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}

	s.log.InfoContext(ctx, "group created",
		slog.Int64("group_id", created.ID),
		slog.String("label", created.PreferredLabelEn),
	)

	return created, nil
}

// UpdateGroup updates a taxonomy group.
func (s *Service) UpdateGroup(ctx context.Context, g domain.Group) (*domain.Group, error) {
	actx, ok := ctxutil.AuditContextFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Group
	err := s.tx.RunInTxWithAudit(ctx, actx, func(txCtx context.Context) error {
		var err error
		updated, err = s.groups.Update(txCtx, &g)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update group: %w", err)
	}

	s.log.InfoContext(ctx, "group updated", slog.Int64("group_id", updated.ID))

	return updated, nil
}

// DeleteGroup removes a taxonomy group and every edge touching it.
func (s *Service) DeleteGroup(ctx context.Context, id int64) error {
	actx, ok := ctxutil.AuditContextFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTxWithAudit(ctx, actx, func(txCtx context.Context) error {
		if _, err := s.groups.GetByID(txCtx, id); err != nil {
			return err
		}

		if _, err := s.relationships.DeleteByEntity(txCtx, domain.GroupRef(id)); err != nil {
			return fmt.Errorf("delete relationships: %w", err)
		}

		return s.groups.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "group deleted", slog.Int64("group_id", id))

	return nil
}

// GetSource returns a taxonomy source by ID.
func (s *Service) GetSource(ctx context.Context, id int64) (*domain.Source, error) {
	return s.sources.GetByID(ctx, id)
}

// ListSources returns every taxonomy source.
func (s *Service) ListSources(ctx context.Context) ([]domain.Source, error) {
	return s.sources.List(ctx)
}

// CreateSource inserts a taxonomy source.
func (s *Service) CreateSource(ctx context.Context, src domain.Source) (*domain.Source, error) {
	actx, ok := ctxutil.AuditContextFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := src.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Source
	err := s.tx.RunInTxWithAudit(ctx, actx, func(txCtx context.Context) error {
		var err error
		created, err = s.sources.Create(txCtx, &src)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create source: %w", err)
	}

	s.log.InfoContext(ctx, "source created", slog.Int64("source_id", created.ID))

	return created, nil
}

// UpdateSource updates a taxonomy source.
func (s *Service) UpdateSource(ctx context.Context, src domain.Source) (*domain.Source, error) {
	actx, ok := ctxutil.AuditContextFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := src.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Source
	err := s.tx.RunInTxWithAudit(ctx, actx, func(txCtx context.Context) error {
		var err error
		updated, err = s.sources.Update(txCtx, &src)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update source: %w", err)
	}

	s.log.InfoContext(ctx, "source updated", slog.Int64("source_id", updated.ID))

	return updated, nil
}

// DeleteSource removes a taxonomy source.
func (s *Service) DeleteSource(ctx context.Context, id int64) error {
	actx, ok := ctxutil.AuditContextFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTxWithAudit(ctx, actx, func(txCtx context.Context) error {
		return s.sources.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "source deleted", slog.Int64("source_id", id))

	return nil
}
