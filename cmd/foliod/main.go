package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tsawler/folio/internal/config"
	"github.com/tsawler/folio/internal/httpapi"
	"github.com/tsawler/folio/internal/store"
	"github.com/tsawler/folio/translate"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()

	st, err := store.Open(cfg.SnapshotDir, log)
	if err != nil {
		log.Error("opening document store", "error", err)
		os.Exit(1)
	}
	log.Info("document store ready", "dir", cfg.SnapshotDir, "documents", len(st.List()))

	var translator translate.Service
	if cfg.DeepLAPIKey != "" {
		translator = translate.NewDeepL(cfg.DeepLAPIKey, cfg.DeepLHost)
	} else {
		log.Info("no DEEPL_API_KEY set; translation endpoint disabled")
	}

	srv := httpapi.NewServer(st, translator, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting foliod", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
