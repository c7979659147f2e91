package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/talentwire/taxonomy-backend/internal/service/catalog"
)

type searchService interface {
	Search(ctx context.Context, query string) (*catalog.SearchResults, error)
}

// SearchHandler serves GET /api/search.
type SearchHandler struct {
	svc searchService
	log *slog.Logger
}

// NewSearchHandler creates a SearchHandler.
func NewSearchHandler(svc searchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{svc: svc, log: logger.With("handler", "search")}
}

// Search handles GET /api/search?q=...
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}
