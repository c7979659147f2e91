package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/talentwire/taxonomy-backend/internal/domain"
)

type auditService interface {
	List(ctx context.Context, filter domain.AuditLogFilter, page, limit int) (*domain.AuditLogPage, error)
	Stats(ctx context.Context) (*domain.AuditStats, error)
	RecordHistory(ctx context.Context, tableName, recordID string) ([]domain.AuditLogEntry, error)
}

// AuditHandler serves the /api/audit-logs surface.
type AuditHandler struct {
	svc auditService
	log *slog.Logger
}

// NewAuditHandler creates an AuditHandler.
func NewAuditHandler(svc auditService, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{svc: svc, log: logger.With("handler", "audit")}
}

// List handles GET /api/audit-logs.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.AuditLogFilter{
		TableName: r.URL.Query().Get("tableName"),
		Operation: domain.AuditOperation(r.URL.Query().Get("operation")),
		UserID:    r.URL.Query().Get("userId"),
		RecordID:  r.URL.Query().Get("recordId"),
		From:      queryTimePtr(r, "from"),
		To:        queryTimePtr(r, "to"),
	}

	page, err := h.svc.List(r.Context(), filter, queryInt(r, "page", 1), queryInt(r, "limit", 0))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Stats handles GET /api/audit-logs/stats.
func (h *AuditHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// RecordHistory handles GET /api/audit-logs/record/{tableName}/{recordId}.
func (h *AuditHandler) RecordHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.RecordHistory(r.Context(), r.PathValue("tableName"), r.PathValue("recordId"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
