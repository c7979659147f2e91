package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/talentwire/taxonomy-backend/internal/domain"
)

type sourceCatalog interface {
	GetSource(ctx context.Context, id int64) (*domain.Source, error)
	ListSources(ctx context.Context) ([]domain.Source, error)
	CreateSource(ctx context.Context, src domain.Source) (*domain.Source, error)
	UpdateSource(ctx context.Context, src domain.Source) (*domain.Source, error)
	DeleteSource(ctx context.Context, id int64) error
}

// SourceHandler serves the /api/taxonomy-sources surface.
type SourceHandler struct {
	catalog sourceCatalog
	log     *slog.Logger
}

// NewSourceHandler creates a SourceHandler.
func NewSourceHandler(catalog sourceCatalog, logger *slog.Logger) *SourceHandler {
	return &SourceHandler{catalog: catalog, log: logger.With("handler", "source")}
}

// List handles GET /api/taxonomy-sources.
func (h *SourceHandler) List(w http.ResponseWriter, r *http.Request) {
	sources, err := h.catalog.ListSources(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]sourceResponse, 0, len(sources))
	for _, s := range sources {
		out = append(out, toSourceResponse(s))
	}
	writeJSON(w, http.StatusOK, out)
}

type sourceRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// Create handles POST /api/taxonomy-sources.
func (h *SourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	created, err := h.catalog.CreateSource(r.Context(), domain.Source{Name: req.Name, Description: req.Description})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSourceResponse(*created))
}

// Update handles PUT /api/taxonomy-sources/{id}.
func (h *SourceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req sourceRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	updated, err := h.catalog.UpdateSource(r.Context(), domain.Source{ID: id, Name: req.Name, Description: req.Description})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSourceResponse(*updated))
}

// Delete handles DELETE /api/taxonomy-sources/{id}.
func (h *SourceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.catalog.DeleteSource(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
