package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"redirect-gateway/middleware/redirect/domain"
	"redirect-gateway/middleware/redirect/infra"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type fakeReloader struct {
	err    error
	loaded bool
	calls  int
}

func (f *fakeReloader) Trigger(context.Context) error {
	f.calls++
	return f.err
}

func (f *fakeReloader) Loaded() bool { return f.loaded }

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestRouter_Healthz(t *testing.T) {
	h := NewRouter(Options{Store: infra.NewMemoryStore()})
	w := do(t, h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ok", w.Body.String())
}

func TestRouter_ReadyzWithoutReloaderDependsOnRules(t *testing.T) {
	store := infra.NewMemoryStore()
	h := NewRouter(Options{Store: store})

	require.Equal(t, http.StatusServiceUnavailable, do(t, h, http.MethodGet, "/readyz", "").Code)
	store.Put(domain.Rule{SourcePath: "/a", DestinationURL: "/b"})
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/readyz", "").Code)
}

func TestRouter_ReadyzUsesReloader(t *testing.T) {
	rl := &fakeReloader{}
	h := NewRouter(Options{Store: infra.NewMemoryStore(), Reloader: rl})

	require.Equal(t, http.StatusServiceUnavailable, do(t, h, http.MethodGet, "/readyz", "").Code)
	// tabela vazia carregada com sucesso também está pronta
	rl.loaded = true
	require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/readyz", "").Code)
}

func TestRouter_PutListDelete(t *testing.T) {
	store := infra.NewMemoryStore()
	h := NewRouter(Options{Store: store})

	w := do(t, h, http.MethodPut, "/rules", `{"from":"/Old-Page","to":"/new-page"}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, h, http.MethodGet, "/rules", "")
	require.Equal(t, http.StatusOK, w.Code)
	var rules []domain.Rule
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rules))
	require.Equal(t, []domain.Rule{{SourcePath: "/old-page", DestinationURL: "/new-page"}}, rules)

	w = do(t, h, http.MethodDelete, "/rules?from=/OLD-PAGE", "")
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, 0, store.Len())

	w = do(t, h, http.MethodGet, "/rules", "")
	require.JSONEq(t, `[]`, w.Body.String())
}

func TestRouter_PutRejectsInvalidRules(t *testing.T) {
	h := NewRouter(Options{Store: infra.NewMemoryStore()})

	require.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/rules", `{`).Code)
	require.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPut, "/rules", `{"from":"/a"}`).Code)
	require.Equal(t, http.StatusBadRequest, do(t, h, http.MethodDelete, "/rules", "").Code)
}

func TestRouter_Reload(t *testing.T) {
	rl := &fakeReloader{}
	h := NewRouter(Options{Store: infra.NewMemoryStore(), Reloader: rl})

	require.Equal(t, http.StatusAccepted, do(t, h, http.MethodPost, "/reload", "").Code)

	rl.err = infra.ErrReloadThrottled
	w := do(t, h, http.MethodPost, "/reload", "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.NotEmpty(t, w.Header().Get("Retry-After"))

	rl.err = errors.New("source down")
	require.Equal(t, http.StatusBadGateway, do(t, h, http.MethodPost, "/reload", "").Code)
	require.Equal(t, 3, rl.calls)
}

func TestRouter_ReloadWithoutSource(t *testing.T) {
	h := NewRouter(Options{Store: infra.NewMemoryStore()})
	require.Equal(t, http.StatusNotImplemented, do(t, h, http.MethodPost, "/reload", "").Code)
}

func TestRouter_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	stats := infra.NewPrometheusStatsStore(reg)
	require.NoError(t, stats.Record(context.Background(), domain.LookupEvent{Matched: true}))

	h := NewRouter(Options{Store: infra.NewMemoryStore(), Gatherer: reg})
	w := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `redirect_lookups_total{outcome="hit"} 1`)
}
