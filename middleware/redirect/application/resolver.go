package application

import (
	"redirect-gateway/middleware/redirect/domain"
)

// Resolver normaliza o path+query recebido e consulta a tabela.
//
// Não tem efeito colateral: decidir se redireciona (e com qual status)
// é de quem chama.
type Resolver struct {
	Store domain.RuleReader
}

// Resolve devolve o destino da regra ou ok=false quando não há regra.
// "Sem regra" é o caso comum e não é erro.
func (r Resolver) Resolve(rawPathAndQuery string) (string, bool) {
	if r.Store == nil {
		return "", false
	}
	rule, ok := r.Store.Get(domain.NormalizePath(rawPathAndQuery))
	if !ok {
		return "", false
	}
	return rule.DestinationURL, true
}
