package domain

// Camada de domínio do redirect.
//
// Regras e contratos (interfaces/tipos) sem dependência de net/http.

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrEmptySource      = errors.New("redirect rule has empty source path")
	ErrEmptyDestination = errors.New("redirect rule has empty destination url")
)

// Rule mapeia um path+query legado para o destino do redirecionamento.
type Rule struct {
	// SourcePath é a chave normalizada (minúsculas, inclui a query string).
	SourcePath string `json:"from" yaml:"from"`
	// DestinationURL pode ser absoluta ou relativa.
	DestinationURL string `json:"to" yaml:"to"`
}

// Validate é usado pelos loaders; Resolve nunca devolve erro.
func (r Rule) Validate() error {
	if r.SourcePath == "" {
		return ErrEmptySource
	}
	if strings.TrimSpace(r.DestinationURL) == "" {
		return ErrEmptyDestination
	}
	return nil
}

// NormalizePath transforma path+query na chave da tabela.
//
// Só faz lower-case: sem trim, sem decode, sem remover barra final.
func NormalizePath(pathAndQuery string) string {
	return strings.ToLower(pathAndQuery)
}

// RuleReader é o lado de leitura da tabela, usado por request.
// Get deve ser seguro para leitores concorrentes e nunca bloquear.
type RuleReader interface {
	Get(normalizedPath string) (Rule, bool)
}

// Store é a tabela de regras completa.
//
// Put/Remove/Reload são raros (administração) e não podem expor uma
// tabela pela metade para quem está lendo.
type Store interface {
	RuleReader
	Put(rule Rule)
	Remove(normalizedPath string)
	Reload(rules []Rule)
}

// Source entrega o conjunto completo de regras a partir de uma persistência
// externa (arquivo, SQLite, Redis...).
type Source interface {
	Load(ctx context.Context) ([]Rule, error)
}
