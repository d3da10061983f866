package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Voisin-comme-cochon/Web-sub001/config"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/api/handler"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/api/router"
	"github.com/Voisin-comme-cochon/Web-sub001/internal/service"
	"github.com/Voisin-comme-cochon/Web-sub001/pkg/datefmt"
	applogger "github.com/Voisin-comme-cochon/Web-sub001/pkg/logger"
	"github.com/Voisin-comme-cochon/Web-sub001/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	// 1. Config
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("base_url", cfg.Server.BaseURL),
		zap.String("log_level", cfg.Log.Level),
		zap.String("locale", cfg.Availability.Locale),
		zap.String("timezone", cfg.Availability.Timezone),
	)

	// 3. Redis (optional: the rate limiter falls back to memory)
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("redis unavailable, rate limiting is per process", zap.Error(err))
			rdb = nil
		}
	}

	// 4. Service → Handler
	svc := service.NewService(cfg, datefmt.New(), logger)
	h := handler.NewHandler(svc)

	// 5. Router
	engine := router.Setup(cfg, h, rdb, logger)

	// 6. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.ICS.FetchTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}
