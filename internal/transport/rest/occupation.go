package rest

import (
	"context"
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/talentwire/taxonomy-backend/internal/domain"
	"github.com/talentwire/taxonomy-backend/internal/service/catalog"
	"github.com/talentwire/taxonomy-backend/internal/service/merge"
	"github.com/talentwire/taxonomy-backend/internal/service/taxonomy"
)

// occupationCatalog is the slice of the catalog service used by OccupationHandler.
type occupationCatalog interface {
	GetOccupation(ctx context.Context, id int64) (*domain.Occupation, error)
	ListOccupations(ctx context.Context, filter domain.OccupationFilter) ([]domain.Occupation, int, error)
	OccupationDetails(ctx context.Context, id int64) (*domain.OccupationDetails, error)
	OccupationSynonyms(ctx context.Context, id int64) ([]domain.Synonym, error)
	CreateOccupation(ctx context.Context, input catalog.CreateOccupationInput) (*domain.Occupation, error)
	UpdateOccupation(ctx context.Context, input catalog.UpdateOccupationInput) (*domain.Occupation, error)
	DeleteOccupation(ctx context.Context, id int64) error
	LinkOccupationSynonym(ctx context.Context, occupationID, synonymID int64) error
	UnlinkOccupationSynonym(ctx context.Context, occupationID, synonymID int64) error
	ExportOccupations(ctx context.Context) ([]catalog.ExportRow, error)
}

type mergeService interface {
	Merge(ctx context.Context, sourceID, targetID int64) (*merge.Result, error)
}

type parentAssigner interface {
	AssignParent(ctx context.Context, childID int64, parent domain.EntityRef) (*taxonomy.AssignParentResult, error)
	RemoveParent(ctx context.Context, childID int64) error
}

// OccupationHandler serves the /api/occupations surface.
type OccupationHandler struct {
	catalog occupationCatalog
	merger  mergeService
	graph   parentAssigner
	log     *slog.Logger
}

// NewOccupationHandler creates an OccupationHandler.
func NewOccupationHandler(catalog occupationCatalog, merger mergeService, graph parentAssigner, logger *slog.Logger) *OccupationHandler {
	return &OccupationHandler{
		catalog: catalog,
		merger:  merger,
		graph:   graph,
		log:     logger.With("handler", "occupation"),
	}
}

// List handles GET /api/occupations.
func (h *OccupationHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := queryInt(r, "limit", 50)
	if limit < 1 {
		limit = 50
	}

	filter := domain.OccupationFilter{
		Search:   r.URL.Query().Get("search"),
		SourceID: queryInt64Ptr(r, "sourceId"),
		Unlinked: r.URL.Query().Get("unlinked") == "true",
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}

	occupations, total, err := h.catalog.ListOccupations(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newPageResponse(toOccupationResponses(occupations), total, page, limit))
}

// Get handles GET /api/occupations/{id}.
func (h *OccupationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	occ, err := h.catalog.GetOccupation(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOccupationResponse(*occ))
}

// Details handles GET /api/occupations/{id}/details.
func (h *OccupationHandler) Details(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	details, err := h.catalog.OccupationDetails(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOccupationDetailsResponse(details))
}

// Synonyms handles GET /api/occupations/{id}/synonyms.
func (h *OccupationHandler) Synonyms(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	synonyms, err := h.catalog.OccupationSynonyms(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toSynonymResponses(synonyms))
}

type createOccupationRequest struct {
	Occupation     occupationRequest     `json:"occupation"`
	Synonyms       []synonymInputRequest `json:"synonyms"`
	ParentRelation *struct {
		Type domain.EntityType `json:"type"`
		ID   int64             `json:"id"`
	} `json:"parentRelation"`
	SourceID *int64 `json:"sourceId"`
}

// Create handles POST /api/occupations.
func (h *OccupationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOccupationRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input := catalog.CreateOccupationInput{
		Occupation: req.Occupation.toDomain(),
		Synonyms:   toSynonymInputs(req.Synonyms),
		SourceID:   req.SourceID,
	}
	if req.ParentRelation != nil {
		input.Parent = &catalog.ParentInput{Type: req.ParentRelation.Type, ID: req.ParentRelation.ID}
	}

	occ, err := h.catalog.CreateOccupation(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOccupationResponse(*occ))
}

type updateOccupationRequest struct {
	occupationRequest
	SourceID optionalID `json:"sourceId"`
}

// Update handles PUT /api/occupations/{id}.
func (h *OccupationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req updateOccupationRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	occ := req.toDomain()
	occ.ID = id

	updated, err := h.catalog.UpdateOccupation(r.Context(), catalog.UpdateOccupationInput{
		Occupation: occ,
		SourceID:   req.SourceID.Value,
		SourceSet:  req.SourceID.Set,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toOccupationResponse(*updated))
}

// Delete handles DELETE /api/occupations/{id}.
func (h *OccupationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.catalog.DeleteOccupation(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type mergeRequest struct {
	SourceID int64 `json:"sourceId"`
	TargetID int64 `json:"targetId"`
}

// Merge handles POST /api/occupations/merge.
func (h *OccupationHandler) Merge(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	result, err := h.merger.Merge(r.Context(), req.SourceID, req.TargetID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type assignParentRequest struct {
	ParentType domain.EntityType `json:"parentType"`
	ParentID   int64             `json:"parentId"`
}

// AssignParent handles PUT /api/occupations/{id}/relationship.
func (h *OccupationHandler) AssignParent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req assignParentRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	result, err := h.graph.AssignParent(r.Context(), id, domain.EntityRef{Type: req.ParentType, ID: req.ParentID})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"alreadyAssigned": result.AlreadyAssigned,
		"relationshipIds": result.RelationshipIDs,
	})
}

// RemoveParent handles DELETE /api/occupations/{id}/relationship.
func (h *OccupationHandler) RemoveParent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.graph.RemoveParent(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

type linkSynonymRequest struct {
	OccupationID int64 `json:"occupationId"`
	SynonymID    int64 `json:"synonymId"`
}

// LinkSynonym handles POST /api/occupation-synonyms.
func (h *OccupationHandler) LinkSynonym(w http.ResponseWriter, r *http.Request) {
	var req linkSynonymRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.catalog.LinkOccupationSynonym(r.Context(), req.OccupationID, req.SynonymID); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"status": "linked"})
}

// UnlinkSynonym handles DELETE /api/occupation-synonyms.
// Identifies the link by occupationId and synonymId query parameters.
func (h *OccupationHandler) UnlinkSynonym(w http.ResponseWriter, r *http.Request) {
	occupationID := queryInt64Ptr(r, "occupationId")
	synonymID := queryInt64Ptr(r, "synonymId")
	if occupationID == nil || synonymID == nil {
		handleError(h.log, w, r, domain.NewValidationError("occupationId", "occupationId and synonymId are required"))
		return
	}

	if err := h.catalog.UnlinkOccupationSynonym(r.Context(), *occupationID, *synonymID); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "unlinked"})
}

// Export handles GET /api/occupations/export, streaming all occupations with
// their synonym titles as CSV.
func (h *OccupationHandler) Export(w http.ResponseWriter, r *http.Request) {
	rows, err := h.catalog.ExportOccupations(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="occupations.csv"`)

	cw := csv.NewWriter(w)
	cw.Write([]string{"id", "escoCode", "preferredLabelEn", "preferredLabelAr", "synonyms"}) //nolint:errcheck
	for _, row := range rows {
		cw.Write([]string{ //nolint:errcheck
			strconv.FormatInt(row.ID, 10),
			row.ESCOCode,
			row.PreferredLabelEn,
			row.PreferredLabelAr,
			strings.Join(row.Synonyms, "; "),
		})
	}
	cw.Flush()

	if err := cw.Error(); err != nil {
		h.log.ErrorContext(r.Context(), "csv export", slog.String("error", err.Error()))
	}
}
