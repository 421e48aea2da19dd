package redirect

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"redirect-gateway/middleware/redirect/application"
	"redirect-gateway/middleware/redirect/domain"

	"go.uber.org/zap"
)

type Mode string

const (
	// ModeFirst consulta a tabela antes do próximo handler.
	ModeFirst Mode = "first"
	// ModeFallback só consulta a tabela quando o próximo handler responde 404.
	ModeFallback Mode = "fallback"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeFirst:
		return ModeFirst, nil
	case ModeFallback:
		return ModeFallback, nil
	}
	return "", fmt.Errorf("unknown redirect mode %q", s)
}

type KeyFunc func(r *http.Request) string

type Options struct {
	Store  domain.RuleReader
	Stats  domain.StatsStore
	Logger *zap.Logger
	KeyFn  KeyFunc
	// Status padrão é 301. Aceita 302, 307 e 308.
	Status  int
	Mode    Mode
	Methods []string
}

// DefaultKeyFunc devolve path+query como veio na requisição (sem decode).
func DefaultKeyFunc(r *http.Request) string {
	return r.URL.RequestURI()
}

// ValidStatus informa se o status pode ser usado para redirect.
func ValidStatus(code int) bool {
	switch code {
	case http.StatusMovedPermanently, http.StatusFound,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

func Middleware(opts Options) func(next http.Handler) http.Handler {
	if !ValidStatus(opts.Status) {
		opts.Status = http.StatusMovedPermanently
	}
	if opts.Mode == "" {
		opts.Mode = ModeFirst
	}
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if len(opts.Methods) == 0 {
		opts.Methods = []string{http.MethodGet, http.MethodHead}
	}

	m := &middleware{
		opts:    opts,
		svc:     application.Resolver{Store: opts.Store},
		methods: make(map[string]struct{}, len(opts.Methods)),
	}
	for _, meth := range opts.Methods {
		m.methods[strings.ToUpper(meth)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := m.methods[r.Method]; !ok {
				next.ServeHTTP(w, r)
				return
			}

			if m.opts.Mode == ModeFallback {
				m.serveFallback(w, r, next)
				return
			}

			if m.tryRedirect(w, r) {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type middleware struct {
	opts    Options
	svc     application.Resolver
	methods map[string]struct{}
}

func (m *middleware) serveFallback(w http.ResponseWriter, r *http.Request, next http.Handler) {
	// headers de antes do next: o redirect não herda nada do 404
	before := w.Header().Clone()

	nf := &notFoundWriter{ResponseWriter: w}
	next.ServeHTTP(nf, r)
	if !nf.notFound {
		return
	}

	dest, ok := m.lookup(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write(nf.body.Bytes())
		return
	}

	h := w.Header()
	for k := range h {
		delete(h, k)
	}
	for k, v := range before {
		h[k] = v
	}
	m.redirect(w, r, dest)
}

// tryRedirect responde o redirect e devolve true quando há regra.
func (m *middleware) tryRedirect(w http.ResponseWriter, r *http.Request) bool {
	dest, ok := m.lookup(r)
	if !ok {
		return false
	}
	m.redirect(w, r, dest)
	return true
}

// lookup resolve a chave do request e registra a estatística.
func (m *middleware) lookup(r *http.Request) (string, bool) {
	key := m.opts.KeyFn(r)
	dest, ok := m.svc.Resolve(key)

	if ok && selfRedirect(r, key, dest) {
		m.opts.Logger.Warn("ignoring self-referencing redirect rule",
			zap.String("path", key),
			zap.String("destination", dest))
		ok = false
	}

	if m.opts.Stats != nil {
		ev := domain.LookupEvent{
			Path:        domain.NormalizePath(key),
			Matched:     ok,
			Destination: dest,
			Method:      r.Method,
			At:          time.Now(),
		}
		if err := m.opts.Stats.Record(r.Context(), ev); err != nil {
			m.opts.Logger.Debug("redirect stats record failed", zap.Error(err))
		}
	}
	return dest, ok
}

func (m *middleware) redirect(w http.ResponseWriter, r *http.Request, dest string) {
	m.opts.Logger.Debug("redirecting",
		zap.String("path", r.URL.RequestURI()),
		zap.String("destination", dest),
		zap.Int("status", m.opts.Status))
	http.Redirect(w, r, dest, m.opts.Status)
}

// selfRedirect detecta regra que aponta para a própria URL, seja relativa
// ou absoluta no mesmo host.
func selfRedirect(r *http.Request, key, dest string) bool {
	want := domain.NormalizePath(key)
	if domain.NormalizePath(dest) == want {
		return true
	}
	u, err := url.Parse(dest)
	if err != nil || u.Host == "" {
		return false
	}
	if !strings.EqualFold(u.Host, r.Host) {
		return false
	}
	return domain.NormalizePath(u.RequestURI()) == want
}
