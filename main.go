package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moviezone-bot/internal/bot"
	"moviezone-bot/internal/catalog"
	"moviezone-bot/internal/config"
	"moviezone-bot/internal/logger"
	"moviezone-bot/internal/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Default().Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Init(cfg.Env, cfg.Debug)
	log := logger.Default()

	store, err := catalog.New(cfg.DataDir, cfg.OwnerID, log)
	if err != nil {
		log.Error("could not open catalog", "dir", cfg.DataDir, "error", err)
		os.Exit(1)
	}

	met := metrics.New()

	b, err := bot.New(cfg, store, met, log)
	if err != nil {
		log.Error("could not create bot", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", met.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("http server listening", "addr", cfg.ListenAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	go b.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	b.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Warn("http shutdown", "error", err)
	}
	log.Info("stopped")
}
