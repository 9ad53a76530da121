package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"newswire/internal/config"
	"newswire/internal/database"
	"newswire/internal/ingest"
	"newswire/internal/provider"
	"newswire/internal/server"
)

var (
	// Version will be set during build
	Version = "dev"

	// Command line flags
	port    = flag.Int("port", 0, "Port to run the server on (default: 8080 or NEWSWIRE_PORT)")
	dbPath  = flag.String("db", "", "Path to database file (default: data/newswire.db or NEWSWIRE_DB_PATH)")
	keyword = flag.String("keyword", "", "Search keyword sent to providers (default: NEWSWIRE_SEARCH_KEYWORD)")
	version = flag.Bool("version", false, "Print version information")
	noFetch = flag.Bool("no-fetch", false, "Disable the scheduled ingestion cycle (serve the read API only)")
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("Newswire version %s\n", Version)
		return
	}

	// Setup logging
	logger := log.New(os.Stdout, "newswire: ", log.LstdFlags|log.Lshortfile)

	// Get base configuration from environment
	cfg := config.GetConfig()

	// Override with command line flags if provided
	if *port > 0 {
		cfg.Port = *port
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *keyword != "" {
		cfg.SearchKeyword = *keyword
	}

	logger.Printf("Starting Newswire v%s", Version)
	logger.Printf("Port: %d", cfg.Port)
	logger.Printf("Database: %s", cfg.DBPath)
	logger.Printf("Fetch interval: %ds", cfg.FetchInterval)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		logger.Fatalf("Failed to create database directory: %v", err)
	}

	// Initialize database with optimized configuration
	db, err := database.NewDB(cfg.DBPath, database.DefaultConfig())
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if !db.HasFullTextIndex() {
		logger.Printf("FTS5 unavailable in this sqlite build, keyword search uses LIKE fallback")
	}

	// Wire up the configured providers
	var providers []provider.Provider
	if cfg.NewsAPIKey != "" {
		providers = append(providers, provider.NewNewsAPI(cfg.NewsAPIURL, cfg.NewsAPIKey))
	}
	if cfg.GuardianKey != "" {
		providers = append(providers, provider.NewGuardian(cfg.GuardianURL, cfg.GuardianKey))
	}
	if cfg.RSSFeedURL != "" {
		providers = append(providers, provider.NewRSS(cfg.RSSFeedURL))
	}

	if len(providers) > 0 && !*noFetch {
		interval := time.Duration(cfg.FetchInterval) * time.Second
		ingestSvc := ingest.NewService(db, logger, providers, cfg.SearchKeyword, interval)
		ingestSvc.Start()
		defer ingestSvc.Stop()
	} else {
		logger.Printf("Ingestion disabled (no providers configured or -no-fetch set)")
	}

	// Start server
	srv := server.NewServer(db, logger)
	logger.Printf("Starting server on port %d", cfg.Port)
	if err := srv.Start(cfg.GetAddress()); err != nil {
		logger.Fatalf("Server error: %v", err)
	}
}
