// Package application contém o caso de uso de resolução de redirects.
//
// Ele depende apenas do pacote domain e não conhece net/http.
// Ex.: Resolver.Resolve("/About-Us") devolve ("/about", true) ou ("", false).
package application
