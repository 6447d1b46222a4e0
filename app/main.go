package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avolkov/news-digest/app/analyzer"
	"github.com/avolkov/news-digest/app/api"
	"github.com/avolkov/news-digest/app/cfg"
	"github.com/avolkov/news-digest/app/database"
	"github.com/avolkov/news-digest/app/digest"
	"github.com/avolkov/news-digest/app/feed"
	"github.com/avolkov/news-digest/app/scheduler"
	"github.com/avolkov/news-digest/app/sources"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting News Digest server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	table := sources.NewTable()
	if appCfg.SourcesFile != "" {
		if err := table.LoadFile(appCfg.SourcesFile); err != nil {
			slog.Error("Failed to load sources file", "file", appCfg.SourcesFile, "error", err)
			os.Exit(1)
		}
	}

	fetchTimeout := time.Duration(appCfg.FetchTimeout) * time.Second
	httpClient := &http.Client{}
	collector := feed.NewCollector(httpClient, appCfg.UserAgent, fetchTimeout)
	extractor := analyzer.NewExtractor(httpClient, appCfg.UserAgent, fetchTimeout)
	processor := digest.NewProcessor(table, collector, extractor)
	runRepo := database.NewRunRepository(db)

	digestDefaults := digest.Request{
		HoursBack:         appCfg.HoursBack,
		MaxPerSource:      appCfg.MaxPerSource,
		InterestThreshold: appCfg.InterestMin,
		PolitenessDelay:   time.Duration(appCfg.PolitenessDelay) * time.Millisecond,
		MaxContentLength:  appCfg.MaxContentLength,
	}

	if appCfg.DigestCron != "" {
		scheduledRequest := digestDefaults
		scheduledRequest.SourceCategories = sources.ParseList(appCfg.DigestSources)

		digestScheduler, err := scheduler.New(processor, runRepo, appCfg.DigestCron, scheduledRequest)
		if err != nil {
			slog.Error("Failed to create digest scheduler", "error", err)
			os.Exit(1)
		}
		digestScheduler.Start()
		defer digestScheduler.Stop()
		slog.Info("Scheduled digests enabled", "cron", appCfg.DigestCron, "sources", appCfg.DigestSources)
	}

	apiHandler := api.NewHandler(processor, collector, table, runRepo, digestDefaults)
	server := api.NewServer(apiHandler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
