package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwebster45206/nitecrawlers/internal/config"
	"github.com/jwebster45206/nitecrawlers/internal/engine"
	"github.com/jwebster45206/nitecrawlers/internal/handlers"
	"github.com/jwebster45206/nitecrawlers/internal/logger"
	"github.com/jwebster45206/nitecrawlers/internal/middleware"
	"github.com/jwebster45206/nitecrawlers/internal/services"
	"github.com/jwebster45206/nitecrawlers/internal/storage"
	"github.com/jwebster45206/nitecrawlers/pkg/recognition"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log := logger.Setup(cfg)

	log.Info("Starting NiteCrawlers API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"storage_backend", cfg.StorageBackend,
		"advice_url", cfg.AdviceURL)

	store, err := storage.Open(cfg, log)
	if err != nil {
		log.Error("Failed to open storage", "error", err)
		os.Exit(1)
	}

	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitReady(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}
	log.Info("Storage connection established successfully")

	var opts []engine.Option
	if cfg.AdviceURL != "" {
		opts = append(opts, engine.WithAdvice(services.NewHTTPAdviceService(cfg.AdviceURL, cfg.AdviceTimeout, log), cfg.AdviceTimeout))
		log.Info("Using advice provider", "url", cfg.AdviceURL, "timeout", cfg.AdviceTimeout)
	} else {
		log.Info("No advice provider configured, using fallback tips")
	}

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	controller := engine.New(loadCtx, store, log, opts...)
	loadCancel()

	catalog, err := recognition.LoadCatalog(cfg.CatalogPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warn("Catalog file not found, using built-in catalog", "path", cfg.CatalogPath)
		catalog = recognition.DefaultCatalog()
	case err != nil:
		log.Error("Failed to load catalog", "error", err)
		os.Exit(1)
	}

	mux := http.NewServeMux()

	mux.Handle("/health", handlers.NewHealthHandler(store, log))

	profileHandler := handlers.NewProfileHandler(controller, log)
	mux.Handle("/v1/profile", profileHandler)
	mux.Handle("/v1/profile/", profileHandler)

	mux.Handle("/v1/decisions", handlers.NewDecisionHandler(controller, catalog, log))

	dictionaryHandler := handlers.NewDictionaryHandler(controller, log)
	mux.Handle("/v1/dictionary", dictionaryHandler)
	mux.Handle("/v1/dictionary/", dictionaryHandler)

	mux.Handle("/v1/transactions", handlers.NewTransactionsHandler(controller, log))
	mux.Handle("/v1/catalog", handlers.NewCatalogHandler(catalog, log))

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AdviceTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	// Close storage after in-flight decisions have finished
	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}

	log.Info("Server exited")
}
