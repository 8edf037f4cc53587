package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"scpod/cache"
	"scpod/config"
	"scpod/core/feed"
	"scpod/core/soundcloud"
	"scpod/logger"

	"github.com/gorilla/mux"
)

// Start initializes dependencies and runs the HTTP server until SIGINT or
// SIGTERM.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})

	// A missing or unreachable cache backend degrades smart timestamps to
	// now() but never blocks startup.
	var store cache.TimestampStore = cache.NewNoopTimestampStore()
	if cfg.CacheConfigured() {
		client, err := cache.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("cache backend unreachable, smart timestamps degrade to now()",
				logger.ErrorField(err),
			)
		} else {
			defer client.Close()
			store = cache.NewRedisTimestampStore(client, cfg.CacheTimeout)
			logger.Info("connected to timestamp cache backend")
		}
	} else {
		logger.Info("no cache backend configured, running in no-backend mode")
	}

	scClient := soundcloud.NewClient(cfg)
	assembler := feed.NewAssembler(feed.NewResolver(store))
	feedHandler := NewFeedHandler(scClient, assembler)

	router := mux.NewRouter()
	router.Use(requestLogMiddleware, corsMiddleware)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	// Everything else is a feed path; the classifier decides what it means.
	router.PathPrefix("/").HandlerFunc(feedHandler.ServeFeed).Methods(http.MethodGet, http.MethodHead)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server listening", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", logger.ErrorField(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown did not complete cleanly", logger.ErrorField(err))
	}
}
