package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"redirect-gateway/middleware/redirect/domain"
	"redirect-gateway/middleware/redirect/infra"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type handlers struct {
	store    RuleStore
	reloader Reloader
	logger   *zap.Logger
}

func (h *handlers) listRules(w http.ResponseWriter, r *http.Request) {
	rules := h.store.Rules()
	if rules == nil {
		rules = []domain.Rule{}
	}
	writeJSON(w, http.StatusOK, rules)
}

// putRule altera só a tabela em memória; a próxima recarga do source
// sobrescreve.
func (h *handlers) putRule(w http.ResponseWriter, r *http.Request) {
	var rule domain.Rule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	if err := rule.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.store.Put(rule)
	h.logger.Info("redirect rule put",
		zap.String("from", domain.NormalizePath(rule.SourcePath)),
		zap.String("to", rule.DestinationURL),
		zap.String("request_id", middleware.GetReqID(r.Context())))
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) deleteRule(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	if from == "" {
		http.Error(w, "from parameter is required", http.StatusBadRequest)
		return
	}
	h.store.Remove(from)
	h.logger.Info("redirect rule removed",
		zap.String("from", domain.NormalizePath(from)),
		zap.String("request_id", middleware.GetReqID(r.Context())))
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) reload(w http.ResponseWriter, r *http.Request) {
	if h.reloader == nil {
		http.Error(w, "no rule source configured", http.StatusNotImplemented)
		return
	}
	err := h.reloader.Trigger(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusAccepted, map[string]int{"rules": h.store.Len()})
	case errors.Is(err, infra.ErrReloadThrottled):
		w.Header().Set("Retry-After", "5")
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	default:
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
