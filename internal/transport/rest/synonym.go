package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/talentwire/taxonomy-backend/internal/domain"
	"github.com/talentwire/taxonomy-backend/internal/service/catalog"
)

type synonymCatalog interface {
	GetSynonym(ctx context.Context, id int64) (*catalog.SynonymWithMappings, error)
	ListSynonyms(ctx context.Context, filter domain.SynonymFilter) ([]domain.Synonym, int, error)
	CreateSynonym(ctx context.Context, syn domain.Synonym, sourceID *int64) (*domain.Synonym, error)
	UpdateSynonym(ctx context.Context, input catalog.UpdateSynonymInput) (*domain.Synonym, error)
	DeleteSynonym(ctx context.Context, id int64) error
}

// SynonymHandler serves the /api/synonyms surface.
type SynonymHandler struct {
	catalog synonymCatalog
	log     *slog.Logger
}

// NewSynonymHandler creates a SynonymHandler.
func NewSynonymHandler(catalog synonymCatalog, logger *slog.Logger) *SynonymHandler {
	return &SynonymHandler{catalog: catalog, log: logger.With("handler", "synonym")}
}

// List handles GET /api/synonyms.
func (h *SynonymHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := queryInt(r, "limit", 50)
	if limit < 1 {
		limit = 50
	}

	filter := domain.SynonymFilter{
		Search:       r.URL.Query().Get("search"),
		SourceID:     queryInt64Ptr(r, "sourceId"),
		OccupationID: queryInt64Ptr(r, "occupationId"),
		Limit:        limit,
		Offset:       (page - 1) * limit,
	}

	synonyms, total, err := h.catalog.ListSynonyms(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newPageResponse(toSynonymResponses(synonyms), total, page, limit))
}

type synonymWithMappingsResponse struct {
	synonymResponse
	SourceMappings []sourceMappingResponse `json:"sourceMappings"`
}

// Get handles GET /api/synonyms/{id}.
func (h *SynonymHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	syn, err := h.catalog.GetSynonym(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, synonymWithMappingsResponse{
		synonymResponse: toSynonymResponse(syn.Synonym),
		SourceMappings:  toSourceMappingResponses(syn.Mappings),
	})
}

type synonymRequest struct {
	Title     string     `json:"title"`
	TitleOrig *string    `json:"titleOrig"`
	Language  string     `json:"language"`
	SourceID  optionalID `json:"sourceId"`
}

// Create handles POST /api/synonyms.
func (h *SynonymHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req synonymRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	syn := domain.Synonym{Title: req.Title, TitleOrig: req.TitleOrig, Language: req.Language}
	created, err := h.catalog.CreateSynonym(r.Context(), syn, req.SourceID.Value)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toSynonymResponse(*created))
}

// Update handles PUT /api/synonyms/{id}.
func (h *SynonymHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req synonymRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	updated, err := h.catalog.UpdateSynonym(r.Context(), catalog.UpdateSynonymInput{
		Synonym:   domain.Synonym{ID: id, Title: req.Title, TitleOrig: req.TitleOrig, Language: req.Language},
		SourceID:  req.SourceID.Value,
		SourceSet: req.SourceID.Set,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSynonymResponse(*updated))
}

// Delete handles DELETE /api/synonyms/{id}.
func (h *SynonymHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.catalog.DeleteSynonym(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
