package admin

import "net/http"

// healthzHandler só indica que o processo está de pé.
func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Pronto quando a primeira carga deu certo, ou, sem reloader, quando há regras.
func (h *handlers) readyz(w http.ResponseWriter, r *http.Request) {
	ready := h.store.Len() > 0
	if h.reloader != nil {
		ready = h.reloader.Loaded()
	}
	if !ready {
		http.Error(w, "rules not loaded", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
