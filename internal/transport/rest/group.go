package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/talentwire/taxonomy-backend/internal/domain"
)

type groupCatalog interface {
	GetGroup(ctx context.Context, id int64) (*domain.Group, error)
	ListGroups(ctx context.Context) ([]domain.Group, error)
	CreateGroup(ctx context.Context, g domain.Group) (*domain.Group, error)
	UpdateGroup(ctx context.Context, g domain.Group) (*domain.Group, error)
	DeleteGroup(ctx context.Context, id int64) error
}

// GroupHandler serves the /api/taxonomy-groups surface.
type GroupHandler struct {
	catalog groupCatalog
	log     *slog.Logger
}

// NewGroupHandler creates a GroupHandler.
func NewGroupHandler(catalog groupCatalog, logger *slog.Logger) *GroupHandler {
	return &GroupHandler{catalog: catalog, log: logger.With("handler", "group")}
}

// List handles GET /api/taxonomy-groups.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	groups, err := h.catalog.ListGroups(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toGroupResponses(groups))
}

// Get handles GET /api/taxonomy-groups/{id}.
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	g, err := h.catalog.GetGroup(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toGroupResponse(*g))
}

type groupRequest struct {
	ESCOCode         *string `json:"escoCode"`
	PreferredLabelEn string  `json:"preferredLabelEn"`
	DescriptionEn    *string `json:"descriptionEn"`
	DescriptionAr    *string `json:"descriptionAr"`
	AltLabels        *string `json:"altLabels"`
}

func (req groupRequest) toDomain() domain.Group {
	return domain.Group{
		ESCOCode:         req.ESCOCode,
		PreferredLabelEn: req.PreferredLabelEn,
		DescriptionEn:    req.DescriptionEn,
		DescriptionAr:    req.DescriptionAr,
		AltLabels:        req.AltLabels,
	}
}

// Create handles POST /api/taxonomy-groups.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	created, err := h.catalog.CreateGroup(r.Context(), req.toDomain())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGroupResponse(*created))
}

// Update handles PUT /api/taxonomy-groups/{id}.
func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	g := req.toDomain()
	g.ID = id

	updated, err := h.catalog.UpdateGroup(r.Context(), g)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toGroupResponse(*updated))
}

// Delete handles DELETE /api/taxonomy-groups/{id}.
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.catalog.DeleteGroup(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
