package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okozhin/notion-ics/app/api"
	"github.com/okozhin/notion-ics/app/calendar"
	"github.com/okozhin/notion-ics/app/cfg"
	"github.com/okozhin/notion-ics/app/notion"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogging(appCfg.Debug)

	slog.Info("Starting Notion ICS server", "version", appCfg.Version)

	// Load view configurations
	configCache := calendar.NewConfigCache(appCfg.ViewsDir)
	if err := configCache.Run(); err != nil {
		slog.Error("Failed to load view configurations", "error", err)
		os.Exit(1)
	}
	slog.Info("View configurations loaded", "dir", appCfg.ViewsDir, "count", configCache.GetConfigCount())

	// Initialize core components
	notionClient := notion.NewClient(appCfg.NotionToken, appCfg.NotionVersion,
		appCfg.UserAgent, time.Duration(appCfg.RequestTimeout)*time.Second)
	assembler := calendar.NewAssembler(notionClient)

	// Initialize HTTP server
	handler := api.NewHandler(configCache, assembler)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		slog.Info("Endpoints available",
			"calendar", "/calendars/<name>.ics",
			"health", "/health")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	// Graceful shutdown
	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
