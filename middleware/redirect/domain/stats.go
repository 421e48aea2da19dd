package domain

import (
	"context"
	"time"
)

const (
	OutcomeHit  = "hit"
	OutcomeMiss = "miss"
)

// LookupEvent representa o resultado de uma consulta à tabela de redirects.
//
// Observação: Path tem cardinalidade alta (qualquer URL que chega no
// gateway), então stores que indexam por path devem ser opt-in.
type LookupEvent struct {
	Path        string
	Matched     bool
	Destination string

	Method string

	At time.Time
}

func (ev LookupEvent) Outcome() string {
	if ev.Matched {
		return OutcomeHit
	}
	return OutcomeMiss
}

// StatsStore é a estratégia de persistência para estatísticas de lookup.
//
// O middleware trata erro como best-effort (não derruba request).
type StatsStore interface {
	Record(ctx context.Context, ev LookupEvent) error
}
