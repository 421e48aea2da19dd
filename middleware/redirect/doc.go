// Package redirect fornece o adapter HTTP (net/http) para redirects de URLs legadas.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (sem dependência de net/http)
//   - application: caso de uso Resolve (normaliza e consulta a tabela) sem net/http
//   - infra: tabela em memória, loaders (arquivo, SQLite, Redis), recarga e estatísticas
//   - redirect (este pacote): middleware HTTP + extração da chave + tradução para 301
//
// Fluxo no gateway:
//
//   1) Extrai a chave do request (path+query como recebido)
//   2) Chama a camada application para resolver o destino
//   3) Se achou, responde 301 com Location
//   4) Se não achou, chama o próximo handler (ex: reverse proxy)
//
// No modo fallback a ordem inverte: o próximo handler roda antes e a tabela só
// é consultada se ele responder 404, assim uma página publicada sempre ganha
// de uma regra de redirect para a mesma URL.
//
// Variáveis de ambiente do binário gateway (cmd/gateway) controlam o comportamento,
// como REDIRECT_MODE, REDIRECT_STATUS, RULES_SOURCE e RELOAD_EVERY.
package redirect
