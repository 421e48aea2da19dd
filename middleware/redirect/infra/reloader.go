package infra

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"redirect-gateway/middleware/redirect/domain"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var ErrReloadThrottled = errors.New("reload throttled")

// Reloader carrega as regras de um Source e troca a tabela do Store.
//
// Se o Source falhar, a tabela anterior continua valendo.
type Reloader struct {
	source  domain.Source
	store   domain.Store
	every   time.Duration
	limiter *rate.Limiter
	logger  *zap.Logger

	loaded  atomic.Bool
	lastErr atomic.Pointer[error]
}

type ReloaderOption func(*Reloader)

// WithReloadEvery define o intervalo da recarga periódica (0 desliga).
func WithReloadEvery(d time.Duration) ReloaderOption {
	return func(r *Reloader) { r.every = d }
}

// WithTriggerLimit limita recargas sob demanda (Trigger).
func WithTriggerLimit(rps float64, burst int) ReloaderOption {
	return func(r *Reloader) { r.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

func WithReloadLogger(l *zap.Logger) ReloaderOption {
	return func(r *Reloader) {
		if l != nil {
			r.logger = l
		}
	}
}

func NewReloader(source domain.Source, store domain.Store, opts ...ReloaderOption) *Reloader {
	r := &Reloader{
		source:  source,
		store:   store,
		every:   time.Minute,
		limiter: rate.NewLimiter(rate.Every(5*time.Second), 1),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Reloader) Reload(ctx context.Context) error {
	start := time.Now()
	rules, err := r.source.Load(ctx)
	if err != nil {
		err = fmt.Errorf("load rules: %w", err)
		r.lastErr.Store(&err)
		r.logger.Warn("redirect reload failed, keeping previous table", zap.Error(err))
		return err
	}

	r.store.Reload(rules)
	r.loaded.Store(true)
	r.lastErr.Store(nil)
	r.logger.Info("redirect rules reloaded",
		zap.Int("rules", len(rules)),
		zap.Duration("took", time.Since(start)))
	return nil
}

// Trigger é a recarga sob demanda (admin/SIGHUP), sujeita ao rate limit.
func (r *Reloader) Trigger(ctx context.Context) error {
	if !r.limiter.Allow() {
		return ErrReloadThrottled
	}
	return r.Reload(ctx)
}

// Loaded informa se alguma carga já teve sucesso.
func (r *Reloader) Loaded() bool { return r.loaded.Load() }

// LastError devolve o erro da última tentativa (nil se deu certo).
func (r *Reloader) LastError() error {
	if p := r.lastErr.Load(); p != nil {
		return *p
	}
	return nil
}

// Start inicia uma goroutine que recarrega periodicamente.
// Pare cancelando o contexto.
func (r *Reloader) Start(ctx context.Context) {
	if r.every <= 0 {
		return
	}

	t := time.NewTicker(r.every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				_ = r.Reload(ctx)
			}
		}
	}()
}
