// Package domain define contratos e tipos de domínio para o redirecionamento
// de URLs legadas.
//
// Este pacote não depende de net/http nem de implementações concretas.
// A intenção é permitir testes de unidade puros e desacoplar a regra de
// casamento (path+query em minúsculas) dos detalhes de armazenamento.
package domain
