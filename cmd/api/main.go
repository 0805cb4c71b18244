package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"stock-quote-proxy/internal/application"
	"stock-quote-proxy/internal/bootstrap"
	"stock-quote-proxy/internal/config"
	"stock-quote-proxy/internal/domain"
	"stock-quote-proxy/internal/infrastructure/cache"
	httpserver "stock-quote-proxy/internal/infrastructure/http"
	"stock-quote-proxy/internal/infrastructure/logx"
	"stock-quote-proxy/internal/infrastructure/metrics"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	logger := logx.L()
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	addr := ":" + cfg.Port

	prov, err := bootstrap.BuildProvider(cfg)
	if err != nil {
		logger.Fatal("bootstrap provider", zap.Error(err))
	}
	limiter, closeLimiter, err := bootstrap.BuildLimiter(cfg)
	if err != nil {
		logger.Fatal("bootstrap limiter", zap.Error(err))
	}
	defer closeLimiter()

	quotes := cache.NewMemory()
	svc := application.NewQuoteService(quotes, prov, cfg.CacheTTL)
	srv := httpserver.NewServer(svc)
	mux := httpserver.NewRouter(srv, limiter)

	metrics.SetTrackedSymbols(len(domain.WatchedSymbols))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	refresher := bootstrap.BuildRefresher(quotes, prov, cfg)
	go refresher.Start(ctx)

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		logger.Info("server started", zap.String("addr", addr), zap.String("provider", cfg.Provider))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	cancel()
	shutdownCtx, shCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shCancel()
	_ = server.Shutdown(shutdownCtx)
	logger.Info("server stopped")
}
