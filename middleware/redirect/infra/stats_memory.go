package infra

import (
	"context"
	"sync"

	"redirect-gateway/middleware/redirect/domain"
)

type Counters struct {
	Hits   int64
	Misses int64
}

// MemoryStatsStore é uma implementação simples em memória.
// Útil para testes e desenvolvimento.
//
// Não faz expiração e não é indicada para produção.
type MemoryStatsStore struct {
	mu     sync.Mutex
	total  Counters
	byPath map[string]Counters

	trackPaths bool
}

type MemoryStatsOption func(*MemoryStatsStore)

func WithTrackPaths(track bool) MemoryStatsOption {
	return func(s *MemoryStatsStore) { s.trackPaths = track }
}

func NewMemoryStatsStore(opts ...MemoryStatsOption) *MemoryStatsStore {
	s := &MemoryStatsStore{byPath: make(map[string]Counters)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.LookupEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bump := func(c Counters) Counters {
		if ev.Matched {
			c.Hits++
		} else {
			c.Misses++
		}
		return c
	}

	s.total = bump(s.total)
	if s.trackPaths {
		s.byPath[ev.Path] = bump(s.byPath[ev.Path])
	}
	return nil
}

func (s *MemoryStatsStore) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

func (s *MemoryStatsStore) ByPath() map[string]Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]Counters, len(s.byPath))
	for k, v := range s.byPath {
		out[k] = v
	}
	return out
}
