// Package admin expõe a superfície administrativa do gateway: health,
// readiness, edição pontual da tabela, recarga e métricas.
//
// Escuta num endereço separado do tráfego público (ADMIN_ADDR).
package admin
