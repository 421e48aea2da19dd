package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"redirect-gateway/middleware/redirect"
	"redirect-gateway/middleware/redirect/domain"
	"redirect-gateway/middleware/redirect/infra"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Exemplo: injetando o middleware diretamente no seu webserver (sem proxy)
	store := infra.NewMemoryStore(
		domain.Rule{SourcePath: "/about-us", DestinationURL: "/about"},
		domain.Rule{SourcePath: "/products.aspx?id=7", DestinationURL: "/products/7"},
	)
	stats := infra.NewMemoryStatsStore(infra.WithTrackPaths(true))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.HandleFunc("/about", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("about\n"))
	})

	h := redirect.Middleware(redirect.Options{
		Store:  store,
		Stats:  stats,
		Logger: logger,
		Mode:   redirect.ModeFallback, // páginas do mux têm prioridade
	})(mux)

	addr := ":8081"
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		addr = v
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		t := stats.Total()
		logger.Info("redirect lookups", zap.Int64("hits", t.Hits), zap.Int64("misses", t.Misses))
	}()

	logger.Info("example server listening", zap.String("addr", addr), zap.Int("rules", store.Len()))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
