// Package audit exposes the read surface over the trigger-fed audit trail.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/talentwire/taxonomy-backend/internal/domain"
)

type auditLogRepo interface {
	List(ctx context.Context, filter domain.AuditLogFilter, limit, offset int) ([]domain.AuditLogEntry, int, error)
	RecordHistory(ctx context.Context, tableName, recordID string) ([]domain.AuditLogEntry, error)
	Stats(ctx context.Context, recentDays int) (*domain.AuditStats, error)
}

// Config bounds pagination and the stats window.
type Config struct {
	DefaultPageSize    int
	MaxPageSize        int
	RecentActivityDays int
}

// Service provides audit log reads.
type Service struct {
	repo auditLogRepo
	cfg  Config
	log  *slog.Logger
}

// NewService creates a new audit service.
func NewService(log *slog.Logger, repo auditLogRepo, cfg Config) *Service {
	if cfg.DefaultPageSize <= 0 {
		cfg.DefaultPageSize = 50
	}
	if cfg.MaxPageSize <= 0 {
		cfg.MaxPageSize = 200
	}
	if cfg.RecentActivityDays <= 0 {
		cfg.RecentActivityDays = 7
	}
	return &Service{
		repo: repo,
		cfg:  cfg,
		log:  log.With("service", "audit"),
	}
}

// List returns one page of audit entries matching the filter, newest first.
// Page numbers are 1-based.
func (s *Service) List(ctx context.Context, filter domain.AuditLogFilter, page, limit int) (*domain.AuditLogPage, error) {
	if filter.Operation != "" && !filter.Operation.IsValid() {
		return nil, domain.NewValidationError("operation", "must be INSERT, UPDATE, or DELETE")
	}
	if filter.TableName != "" && !slices.Contains(domain.AuditedTables, filter.TableName) {
		return nil, domain.NewValidationError("tableName", "not an audited table")
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = s.cfg.DefaultPageSize
	}
	if limit > s.cfg.MaxPageSize {
		limit = s.cfg.MaxPageSize
	}

	entries, total, err := s.repo.List(ctx, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return &domain.AuditLogPage{
		Data:       entries,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// Stats aggregates the audit trail.
func (s *Service) Stats(ctx context.Context) (*domain.AuditStats, error) {
	return s.repo.Stats(ctx, s.cfg.RecentActivityDays)
}

// RecordHistory returns the full trail of one record, newest first.
func (s *Service) RecordHistory(ctx context.Context, tableName, recordID string) ([]domain.AuditLogEntry, error) {
	if !slices.Contains(domain.AuditedTables, tableName) {
		return nil, domain.NewValidationError("tableName", "not an audited table")
	}
	if recordID == "" {
		return nil, domain.NewValidationError("recordId", "required")
	}

	return s.repo.RecordHistory(ctx, tableName, recordID)
}
