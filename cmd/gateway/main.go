package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"redirect-gateway/admin"
	"redirect-gateway/middleware/redirect"
	"redirect-gateway/middleware/redirect/domain"
	"redirect-gateway/middleware/redirect/infra"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := readConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := newLogger(cfg.logDevelopment)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	target, err := url.Parse(cfg.upstreamURL)
	if err != nil {
		logger.Fatal("invalid UPSTREAM_URL", zap.Error(err))
	}

	proxy := httputil.NewSingleHostReverseProxy(target)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Warn("proxy error", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}

	var rdb *redis.Client
	if cfg.rulesSource == "redis" || cfg.statsRedisEnabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.rulesRedisAddr,
			Password: cfg.rulesRedisPassword,
			DB:       cfg.rulesRedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			logger.Fatal("redis ping error", zap.String("addr", cfg.rulesRedisAddr), zap.Error(err))
		}
	}

	source, closeSource, err := newSource(cfg, rdb)
	if err != nil {
		logger.Fatal("rule source error", zap.String("source", cfg.rulesSource), zap.Error(err))
	}
	defer closeSource()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	stats := infra.MultiStats{infra.NewPrometheusStatsStore(reg)}
	if cfg.statsRedisEnabled {
		stats = append(stats, infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.statsRedisPrefix),
			infra.WithStatsTTL(cfg.statsRedisTTL),
			infra.WithStatsTrackPaths(cfg.statsTrackPaths),
		))
	}

	store := infra.NewMemoryStore()
	reloader := infra.NewReloader(source, store,
		infra.WithReloadEvery(cfg.reloadEvery),
		infra.WithTriggerLimit(cfg.reloadRPS, cfg.reloadBurst),
		infra.WithReloadLogger(logger.Named("reload")),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// sem regras o gateway ainda funciona (tudo cai no upstream); readyz acusa
	_ = reloader.Reload(ctx)
	reloader.Start(ctx)
	go reloadOnHangup(ctx, reloader, logger)

	h := redirect.Middleware(redirect.Options{
		Store:  store,
		Stats:  stats,
		Logger: logger.Named("redirect"),
		Status: cfg.redirectStatus,
		Mode:   cfg.redirectMode,
	})(proxy)

	srv := &http.Server{
		Addr:              cfg.listenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
	adminSrv := &http.Server{
		Addr: cfg.adminAddr,
		Handler: admin.NewRouter(admin.Options{
			Store:    store,
			Reloader: reloader,
			Gatherer: reg,
			Logger:   logger.Named("admin"),
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = adminSrv.Shutdown(shutdownCtx)
		_ = srv.Shutdown(shutdownCtx)
	}()

	go func() {
		if err := adminSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("admin server error", zap.Error(err))
		}
	}()

	logger.Info("gateway listening",
		zap.String("addr", cfg.listenAddr),
		zap.String("upstream", target.String()),
		zap.String("admin", cfg.adminAddr))
	logger.Info("redirect config",
		zap.String("mode", string(cfg.redirectMode)),
		zap.Int("status", cfg.redirectStatus),
		zap.String("source", cfg.rulesSource),
		zap.Int("rules", store.Len()),
		zap.Duration("reloadEvery", cfg.reloadEvery),
		zap.Bool("redisStats", cfg.statsRedisEnabled))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newSource(cfg config, rdb *redis.Client) (domain.Source, func(), error) {
	switch cfg.rulesSource {
	case "sqlite":
		src, err := infra.OpenSQLiteSource(cfg.rulesSQLitePath, cfg.rulesSQLiteTable)
		if err != nil {
			return nil, nil, err
		}
		return src, func() { _ = src.Close() }, nil
	case "redis":
		return infra.NewRedisSource(rdb, cfg.rulesRedisKey), func() {}, nil
	default:
		return infra.FileSource{Path: cfg.rulesFile}, func() {}, nil
	}
}

// reloadOnHangup recarrega as regras a cada SIGHUP (sujeito ao rate limit).
func reloadOnHangup(ctx context.Context, r *infra.Reloader, logger *zap.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := r.Trigger(ctx); errors.Is(err, infra.ErrReloadThrottled) {
				logger.Warn("SIGHUP reload throttled")
			}
		}
	}
}
