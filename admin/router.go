package admin

import (
	"context"
	"net/http"
	"time"

	"redirect-gateway/middleware/redirect/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RuleStore é o que o admin precisa da tabela.
type RuleStore interface {
	domain.Store
	Rules() []domain.Rule
	Len() int
}

// Reloader é satisfeito por infra.Reloader.
type Reloader interface {
	Trigger(ctx context.Context) error
	Loaded() bool
}

type Options struct {
	Store    RuleStore
	Reloader Reloader // opcional
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
}

// NewRouter monta o router administrativo.
func NewRouter(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	h := &handlers{store: opts.Store, reloader: opts.Reloader, logger: opts.Logger}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/healthz", healthzHandler)
	r.Get("/readyz", h.readyz)

	r.Get("/rules", h.listRules)
	r.Put("/rules", h.putRule)
	r.Delete("/rules", h.deleteRule)
	r.Post("/reload", h.reload)

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))

	return r
}
