package app

import (
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/research-ledger/internal/adapter/phi"
	"github.com/heartmarshall/research-ledger/internal/adapter/postgres"
	"github.com/heartmarshall/research-ledger/internal/adapter/postgres/audit"
	comparisonrepo "github.com/heartmarshall/research-ledger/internal/adapter/postgres/comparison"
	resourcerepo "github.com/heartmarshall/research-ledger/internal/adapter/postgres/resource"
	"github.com/heartmarshall/research-ledger/internal/adapter/postgres/version"
	"github.com/heartmarshall/research-ledger/internal/auth"
	"github.com/heartmarshall/research-ledger/internal/config"
	"github.com/heartmarshall/research-ledger/internal/metrics"
	"github.com/heartmarshall/research-ledger/internal/service/comparison"
	"github.com/heartmarshall/research-ledger/internal/service/ledger"
	"github.com/heartmarshall/research-ledger/internal/service/resource"
	"github.com/heartmarshall/research-ledger/internal/service/versioning"
	"github.com/heartmarshall/research-ledger/internal/transport/middleware"
	"github.com/heartmarshall/research-ledger/internal/transport/rest"
)

// Services holds the domain services built on one pool.
type Services struct {
	Ledger      *ledger.Service
	Versions    *versioning.Service
	Comparisons *comparison.Service
	Resources   *resource.Service
}

// NewServices builds repositories and services. m may be nil.
func NewServices(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger, m *metrics.Metrics) *Services {
	txm := postgres.NewTxManager(pool)

	auditRepo := audit.New(pool)
	versionRepo := version.New(pool)
	resourceRepo := resourcerepo.New(pool)
	comparisonRepo := comparisonrepo.New(pool)

	alg := cfg.Ledger.Algorithm()

	ledgerService := ledger.NewService(logger, auditRepo, txm, m, ledger.Config{
		Algorithm:     alg,
		AppendRetries: cfg.Ledger.AppendRetries,
		LockKey:       cfg.Ledger.LockKey,
	})

	return &Services{
		Ledger: ledgerService,
		Versions: versioning.NewService(logger, versionRepo, resourceRepo, ledgerService, txm, m, versioning.Config{
			Algorithm:       alg,
			MaxRetries:      cfg.Versioning.MaxRetries,
			HistoryPageSize: cfg.Versioning.HistoryPageSize,
		}),
		Comparisons: comparison.NewService(logger, versionRepo, comparisonRepo, phi.NewScanner(), ledgerService, txm, m, comparison.Config{
			Algorithm:    alg,
			MaxLines:     cfg.Diff.MaxLines,
			MaxCells:     cfg.Diff.MaxCells,
			ContextLines: cfg.Diff.ContextLines,
			DigestLength: cfg.Diff.DigestLength,
		}),
		Resources: resource.NewService(logger, resourceRepo, ledgerService, txm),
	}
}

// NewHTTPHandler assembles the router and middleware stack. The returned
// limiter must be stopped on shutdown.
func NewHTTPHandler(
	cfg *config.Config,
	pool *pgxpool.Pool,
	logger *slog.Logger,
	m *metrics.Metrics,
	svcs *Services,
	jwtManager *auth.JWTManager,
) (http.Handler, *middleware.RateLimiter) {
	limiter := middleware.NewRateLimiter(rateLimitCleanupInterval)

	handlers := rest.Handlers{
		Health:      rest.NewHealthHandler(pool, svcs.Ledger, BuildVersion()),
		Resources:   rest.NewResourceHandler(svcs.Resources, logger),
		Versions:    rest.NewVersionHandler(svcs.Versions, logger),
		Comparisons: rest.NewComparisonHandler(svcs.Comparisons, logger),
		Audit:       rest.NewAuditHandler(svcs.Ledger, logger),
	}
	if cfg.Metrics.Enabled && m != nil {
		handlers.Metrics = m.Handler()
		handlers.MetricsPath = cfg.Metrics.Path
	}

	global := []middleware.Middleware{
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(jwtManager),
		middleware.Logger(logger),
	}
	api := []middleware.Middleware{
		limiter.Limit(cfg.Server.RateLimitPerMinute),
	}

	return rest.NewRouter(handlers, global, api), limiter
}
