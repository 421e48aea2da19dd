package infra

import (
	"context"

	"redirect-gateway/middleware/redirect/domain"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusStatsStore conta lookups por outcome (hit/miss).
// Path não vira label por causa da cardinalidade.
type PrometheusStatsStore struct {
	lookups *prometheus.CounterVec
}

func NewPrometheusStatsStore(reg prometheus.Registerer) *PrometheusStatsStore {
	s := &PrometheusStatsStore{
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "redirect",
				Name:      "lookups_total",
				Help:      "Total number of redirect table lookups by outcome",
			},
			[]string{"outcome"},
		),
	}
	if reg != nil {
		reg.MustRegister(s.lookups)
	}
	return s
}

func (s *PrometheusStatsStore) Record(_ context.Context, ev domain.LookupEvent) error {
	s.lookups.WithLabelValues(ev.Outcome()).Inc()
	return nil
}

// MultiStats repassa o evento para todos os stores; devolve o primeiro erro.
type MultiStats []domain.StatsStore

func (m MultiStats) Record(ctx context.Context, ev domain.LookupEvent) error {
	var first error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Record(ctx, ev); err != nil && first == nil {
			first = err
		}
	}
	return first
}
