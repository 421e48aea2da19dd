// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
// Exemplos:
//   - MemoryStore: tabela copy-on-write em memória (leitura sem lock)
//   - FileSource, SQLiteSource, RedisSource: loaders de regras
//   - Reloader: recarga periódica / sob demanda (golang.org/x/time/rate)
//   - MemoryStatsStore, RedisStatsStore, PrometheusStatsStore: estatísticas de lookup
package infra
