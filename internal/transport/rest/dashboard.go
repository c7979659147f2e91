package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/talentwire/taxonomy-backend/internal/domain"
)

type dashboardService interface {
	Overview(ctx context.Context) (*domain.DashboardOverview, error)
	OccupationCountPerSource(ctx context.Context) ([]domain.SourceCount, error)
	SynonymCountPerSource(ctx context.Context) ([]domain.SourceCount, error)
	AverageSynonymsPerOccupation(ctx context.Context) (float64, error)
	UnlinkedOccupationCount(ctx context.Context) (int, error)
	MostSynonyms(ctx context.Context) (*domain.SynonymExtreme, error)
	FewestSynonyms(ctx context.Context) (*domain.SynonymExtreme, error)
	LastAddedOccupations(ctx context.Context) ([]domain.RecentOccupation, error)
	LastAddedSynonyms(ctx context.Context) ([]domain.RecentSynonym, error)
	OccupationsWithoutSource(ctx context.Context) (int, error)
	SynonymsWithoutSource(ctx context.Context) (int, error)
}

// DashboardHandler serves the /api/dashboard surface.
type DashboardHandler struct {
	svc dashboardService
	log *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(svc dashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, log: logger.With("handler", "dashboard")}
}

// Stats handles GET /api/dashboard/stats.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.Overview(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, overview)
}

// OccupationCountPerSource handles GET /api/dashboard/occupation-count-per-source.
func (h *DashboardHandler) OccupationCountPerSource(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.OccupationCountPerSource(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, counts)
}

// SynonymCountPerSource handles GET /api/dashboard/synonym-count-per-source.
func (h *DashboardHandler) SynonymCountPerSource(w http.ResponseWriter, r *http.Request) {
	counts, err := h.svc.SynonymCountPerSource(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, counts)
}

// AverageSynonyms handles GET /api/dashboard/average-synonyms-per-occupation.
func (h *DashboardHandler) AverageSynonyms(w http.ResponseWriter, r *http.Request) {
	avg, err := h.svc.AverageSynonymsPerOccupation(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]float64{"averageSynonymsPerOccupation": avg})
}

// UnlinkedOccupations handles GET /api/dashboard/unlinked-occupations-count.
func (h *DashboardHandler) UnlinkedOccupations(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.UnlinkedOccupationCount(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"unlinkedOccupationCount": count})
}

// MostSynonyms handles GET /api/dashboard/occupation-most-synonyms.
func (h *DashboardHandler) MostSynonyms(w http.ResponseWriter, r *http.Request) {
	extreme, err := h.svc.MostSynonyms(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, extreme)
}

// FewestSynonyms handles GET /api/dashboard/occupation-fewest-synonyms.
func (h *DashboardHandler) FewestSynonyms(w http.ResponseWriter, r *http.Request) {
	extreme, err := h.svc.FewestSynonyms(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, extreme)
}

// LastAddedOccupations handles GET /api/dashboard/last-added-occupations.
func (h *DashboardHandler) LastAddedOccupations(w http.ResponseWriter, r *http.Request) {
	occs, err := h.svc.LastAddedOccupations(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, occs)
}

// LastAddedSynonyms handles GET /api/dashboard/last-added-synonyms.
func (h *DashboardHandler) LastAddedSynonyms(w http.ResponseWriter, r *http.Request) {
	syns, err := h.svc.LastAddedSynonyms(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, syns)
}

// OccupationsWithoutSource handles GET /api/dashboard/occupations-without-source.
func (h *DashboardHandler) OccupationsWithoutSource(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.OccupationsWithoutSource(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"occupationsWithoutSource": count})
}

// SynonymsWithoutSource handles GET /api/dashboard/synonyms-without-source.
func (h *DashboardHandler) SynonymsWithoutSource(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.SynonymsWithoutSource(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"synonymsWithoutSource": count})
}
