package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/research-ledger/internal/auth"
	"github.com/heartmarshall/research-ledger/internal/transport/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health      *HealthHandler
	Resources   *ResourceHandler
	Versions    *VersionHandler
	Comparisons *ComparisonHandler
	Audit       *AuditHandler
	// Metrics is mounted at MetricsPath when non-nil.
	Metrics     http.Handler
	MetricsPath string
}

var (
	editors   = roles(auth.RoleEditor, auth.RoleAdmin)
	reviewers = roles(auth.RoleReviewer, auth.RoleAdmin)
	auditors  = roles(auth.RoleAuditor, auth.RoleAdmin)
)

func roles(rs ...auth.Role) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.String()
	}
	return out
}

// NewRouter builds the HTTP surface. global wraps every route, including
// probes; api wraps /api/v1 only. Every /api/v1 route requires an
// authenticated caller; write routes additionally gate on role.
func NewRouter(h Handlers, global []middleware.Middleware, api []middleware.Middleware) http.Handler {
	r := chi.NewRouter()
	for _, mw := range global {
		r.Use(mw)
	}

	r.Get("/live", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/health", h.Health.Health)
	if h.Metrics != nil && h.MetricsPath != "" {
		r.Handle(h.MetricsPath, h.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		for _, mw := range api {
			r.Use(mw)
		}
		r.Use(middleware.RequireRole(roles(auth.RoleEditor, auth.RoleReviewer, auth.RoleAuditor, auth.RoleAdmin)...))

		r.Route("/resources", func(r chi.Router) {
			r.With(middleware.RequireRole(editors...)).Post("/", h.Resources.Create)
			r.Get("/{id}", h.Resources.Get)
			r.Get("/{id}/versions/{kind}", h.Versions.History)
			r.Get("/{id}/versions/{kind}/current", h.Versions.Current)
		})

		r.Route("/versions", func(r chi.Router) {
			r.With(middleware.RequireRole(editors...)).Post("/", h.Versions.Create)
			r.Get("/{id}", h.Versions.Get)
			r.With(middleware.RequireRole(editors...)).Patch("/{id}", h.Versions.Update)
			r.With(middleware.RequireRole(reviewers...)).Post("/{id}/lock", h.Versions.Lock)
			r.Get("/{id}/comparisons", h.Comparisons.ListByVersion)
		})

		r.Route("/comparisons", func(r chi.Router) {
			r.Post("/", h.Comparisons.Compute)
			r.Get("/unified", h.Comparisons.Unified)
		})

		r.Route("/audit", func(r chi.Router) {
			r.With(middleware.RequireRole(editors...)).Post("/events", h.Audit.Append)
			r.Get("/entries", h.Audit.List)
			r.Get("/entries/{id}", h.Audit.Get)
			r.Get("/last-hash", h.Audit.LastHash)
			r.With(middleware.RequireRole(auditors...)).Get("/verify", h.Audit.Verify)
			r.With(middleware.RequireRole(auditors...)).Get("/export", h.Audit.Export)
		})
	})

	return r
}
