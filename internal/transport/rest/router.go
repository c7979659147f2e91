package rest

import (
	"log/slog"
	"net/http"

	"github.com/talentwire/taxonomy-backend/internal/config"
	"github.com/talentwire/taxonomy-backend/internal/transport/middleware"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Occupations *OccupationHandler
	Synonyms    *SynonymHandler
	Groups      *GroupHandler
	Sources     *SourceHandler
	Taxonomy    *TaxonomyHandler
	Audit       *AuditHandler
	Dashboard   *DashboardHandler
	Search      *SearchHandler
	Auth        *AuthHandler
	Health      *HealthHandler

	TokenValidator interface {
		ValidateAccessToken(token string) (string, error)
	}
	LoginLimiter *middleware.RateLimiter
	CORS         config.CORSConfig
	Logger       *slog.Logger
}

// NewRouter builds the full /api mux. Every route except health and login
// sits behind the auth + audit-context chain.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	public := middleware.Chain(
		middleware.Recovery(deps.Logger),
		middleware.RequestID,
		middleware.CORS(deps.CORS),
		middleware.Logger(deps.Logger),
	)

	protected := middleware.Chain(
		middleware.Auth(deps.TokenValidator),
		middleware.AuditContext,
	)

	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, protected(h))
	}

	// Health and login stay outside the auth chain.
	mux.HandleFunc("GET /live", deps.Health.Live)
	mux.HandleFunc("GET /ready", deps.Health.Ready)
	mux.HandleFunc("GET /health", deps.Health.Health)

	login := http.Handler(http.HandlerFunc(deps.Auth.Login))
	if deps.LoginLimiter != nil {
		login = deps.LoginLimiter.Limit(10)(login)
	}
	mux.Handle("POST /api/auth/login", login)

	// Occupations.
	handle("GET /api/occupations", deps.Occupations.List)
	handle("GET /api/occupations/export", deps.Occupations.Export)
	handle("GET /api/occupations/{id}", deps.Occupations.Get)
	handle("GET /api/occupations/{id}/details", deps.Occupations.Details)
	handle("GET /api/occupations/{id}/synonyms", deps.Occupations.Synonyms)
	handle("POST /api/occupations", deps.Occupations.Create)
	handle("PUT /api/occupations/{id}", deps.Occupations.Update)
	handle("DELETE /api/occupations/{id}", deps.Occupations.Delete)
	handle("POST /api/occupations/merge", deps.Occupations.Merge)
	handle("PUT /api/occupations/{id}/relationship", deps.Occupations.AssignParent)
	handle("DELETE /api/occupations/{id}/relationship", deps.Occupations.RemoveParent)

	// Occupation-synonym links.
	handle("POST /api/occupation-synonyms", deps.Occupations.LinkSynonym)
	handle("DELETE /api/occupation-synonyms", deps.Occupations.UnlinkSynonym)

	// Synonyms.
	handle("GET /api/synonyms", deps.Synonyms.List)
	handle("GET /api/synonyms/{id}", deps.Synonyms.Get)
	handle("POST /api/synonyms", deps.Synonyms.Create)
	handle("PUT /api/synonyms/{id}", deps.Synonyms.Update)
	handle("DELETE /api/synonyms/{id}", deps.Synonyms.Delete)

	// Groups.
	handle("GET /api/taxonomy-groups", deps.Groups.List)
	handle("GET /api/taxonomy-groups/{id}", deps.Groups.Get)
	handle("POST /api/taxonomy-groups", deps.Groups.Create)
	handle("PUT /api/taxonomy-groups/{id}", deps.Groups.Update)
	handle("DELETE /api/taxonomy-groups/{id}", deps.Groups.Delete)

	// Sources.
	handle("GET /api/taxonomy-sources", deps.Sources.List)
	handle("POST /api/taxonomy-sources", deps.Sources.Create)
	handle("PUT /api/taxonomy-sources/{id}", deps.Sources.Update)
	handle("DELETE /api/taxonomy-sources/{id}", deps.Sources.Delete)

	// Tree and relationships.
	handle("GET /api/tree/roots", deps.Taxonomy.Roots)
	handle("GET /api/tree/children/{entityType}/{entityId}", deps.Taxonomy.Children)
	handle("GET /api/tree/ancestors/{entityType}/{entityId}", deps.Taxonomy.Ancestors)
	handle("GET /api/taxonomy-relationships", deps.Taxonomy.ListRelationships)
	handle("POST /api/taxonomy-relationships", deps.Taxonomy.CreateRelationship)
	handle("DELETE /api/taxonomy-relationships/{id}", deps.Taxonomy.DeleteRelationship)

	// Audit logs.
	handle("GET /api/audit-logs", deps.Audit.List)
	handle("GET /api/audit-logs/stats", deps.Audit.Stats)
	handle("GET /api/audit-logs/record/{tableName}/{recordId}", deps.Audit.RecordHistory)

	// Dashboard.
	handle("GET /api/dashboard/stats", deps.Dashboard.Stats)
	handle("GET /api/dashboard/occupation-count-per-source", deps.Dashboard.OccupationCountPerSource)
	handle("GET /api/dashboard/synonym-count-per-source", deps.Dashboard.SynonymCountPerSource)
	handle("GET /api/dashboard/average-synonyms-per-occupation", deps.Dashboard.AverageSynonyms)
	handle("GET /api/dashboard/unlinked-occupations-count", deps.Dashboard.UnlinkedOccupations)
	handle("GET /api/dashboard/occupation-most-synonyms", deps.Dashboard.MostSynonyms)
	handle("GET /api/dashboard/occupation-fewest-synonyms", deps.Dashboard.FewestSynonyms)
	handle("GET /api/dashboard/last-added-occupations", deps.Dashboard.LastAddedOccupations)
	handle("GET /api/dashboard/last-added-synonyms", deps.Dashboard.LastAddedSynonyms)
	handle("GET /api/dashboard/occupations-without-source", deps.Dashboard.OccupationsWithoutSource)
	handle("GET /api/dashboard/synonyms-without-source", deps.Dashboard.SynonymsWithoutSource)

	// Search.
	handle("GET /api/search", deps.Search.Search)

	return public(mux)
}
