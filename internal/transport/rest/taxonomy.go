package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/talentwire/taxonomy-backend/internal/domain"
)

type graphService interface {
	Roots(ctx context.Context) ([]domain.TreeNode, error)
	Children(ctx context.Context, ref domain.EntityRef) ([]domain.TreeNode, error)
	Ancestors(ctx context.Context, ref domain.EntityRef) ([]domain.ParentInfo, error)
	CreateRelationship(ctx context.Context, rel domain.Relationship) ([]int64, error)
	DeleteRelationship(ctx context.Context, relationshipID int64) error
	ListByEntity(ctx context.Context, ref domain.EntityRef) ([]domain.Relationship, error)
}

// TaxonomyHandler serves the tree and relationship surface.
type TaxonomyHandler struct {
	graph graphService
	log   *slog.Logger
}

// NewTaxonomyHandler creates a TaxonomyHandler.
func NewTaxonomyHandler(graph graphService, logger *slog.Logger) *TaxonomyHandler {
	return &TaxonomyHandler{graph: graph, log: logger.With("handler", "taxonomy")}
}

// Roots handles GET /api/tree/roots.
func (h *TaxonomyHandler) Roots(w http.ResponseWriter, r *http.Request) {
	roots, err := h.graph.Roots(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, roots)
}

// entityRefFromPath builds an EntityRef from {entityType}/{entityId} path segments.
func entityRefFromPath(r *http.Request) (domain.EntityRef, error) {
	entityType := domain.EntityType(r.PathValue("entityType"))
	if !entityType.IsValid() {
		return domain.EntityRef{}, domain.NewValidationError("entityType", "must be 'occupation' or 'group'")
	}

	id, err := pathID(r, "entityId")
	if err != nil {
		return domain.EntityRef{}, err
	}

	return domain.EntityRef{Type: entityType, ID: id}, nil
}

// Children handles GET /api/tree/children/{entityType}/{entityId}.
func (h *TaxonomyHandler) Children(w http.ResponseWriter, r *http.Request) {
	ref, err := entityRefFromPath(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	children, err := h.graph.Children(r.Context(), ref)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, children)
}

// Ancestors handles GET /api/tree/ancestors/{entityType}/{entityId},
// returning the parent chain nearest-first.
func (h *TaxonomyHandler) Ancestors(w http.ResponseWriter, r *http.Request) {
	ref, err := entityRefFromPath(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	chain, err := h.graph.Ancestors(r.Context(), ref)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]parentResponse, 0, len(chain))
	for i := range chain {
		out = append(out, *toParentResponse(&chain[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

type relationshipRequest struct {
	SourceEntityType domain.EntityType       `json:"sourceEntityType"`
	SourceEntityID   int64                   `json:"sourceEntityId"`
	TargetEntityType domain.EntityType       `json:"targetEntityType"`
	TargetEntityID   int64                   `json:"targetEntityId"`
	RelationshipType domain.RelationshipKind `json:"relationshipType"`
}

// CreateRelationship handles POST /api/taxonomy-relationships.
func (h *TaxonomyHandler) CreateRelationship(w http.ResponseWriter, r *http.Request) {
	var req relationshipRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	ids, err := h.graph.CreateRelationship(r.Context(), domain.Relationship{
		Source: domain.EntityRef{Type: req.SourceEntityType, ID: req.SourceEntityID},
		Target: domain.EntityRef{Type: req.TargetEntityType, ID: req.TargetEntityID},
		Kind:   req.RelationshipType,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"relationshipIds": ids})
}

// DeleteRelationship handles DELETE /api/taxonomy-relationships/{id}.
// Removes the edge together with its mirror twin.
func (h *TaxonomyHandler) DeleteRelationship(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.graph.DeleteRelationship(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListRelationships handles GET /api/taxonomy-relationships.
// Requires entityType and entityId query parameters.
func (h *TaxonomyHandler) ListRelationships(w http.ResponseWriter, r *http.Request) {
	entityType := domain.EntityType(r.URL.Query().Get("entityType"))
	if !entityType.IsValid() {
		handleError(h.log, w, r, domain.NewValidationError("entityType", "must be 'occupation' or 'group'"))
		return
	}

	entityID := queryInt64Ptr(r, "entityId")
	if entityID == nil {
		handleError(h.log, w, r, domain.NewValidationError("entityId", "required"))
		return
	}

	rels, err := h.graph.ListByEntity(r.Context(), domain.EntityRef{Type: entityType, ID: *entityID})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRelationshipResponses(rels))
}
