package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"profilescraper/pkg/config"
	"profilescraper/pkg/fetch"
	"profilescraper/pkg/logger"
	"profilescraper/pkg/scraper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	baseURL    = flag.String("base-url", "", "Base URL of the external profile host")
	minDelay   = flag.Duration("min-delay", 0, "Minimum delay between outbound requests")
	cacheTTL   = flag.Duration("ttl", 0, "Cache TTL for scraped profiles")
	logLevel   = flag.String("log-level", "", "Log level (debug, info, warn, error)")
)

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: profilescraper [flags] <identifier> [identifier...]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Build command line flags map
	flags := make(map[string]interface{})
	if *baseURL != "" {
		flags["base-url"] = *baseURL
	}
	if *minDelay > 0 {
		flags["min-delay"] = *minDelay
	}
	if *cacheTTL > 0 {
		flags["cache-ttl"] = *cacheTTL
	}
	if *logLevel != "" {
		flags["log-level"] = *logLevel
	}

	// Load configuration
	cfg, err := config.Load(*configFile, flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Initialize(&cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	s, err := scraper.New(cfg)
	if err != nil {
		logger.WithError(err).Error("failed to initialize scraper")
		os.Exit(1)
	}

	exitCode := 0
	for _, raw := range args {
		identifier := fetch.SanitizeIdentifier(raw)
		if !fetch.ValidIdentifier(identifier) {
			fmt.Fprintf(os.Stderr, "invalid identifier: %q\n", raw)
			exitCode = 1
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(),
			cfg.Scraper.MinRequestDelay+cfg.Scraper.FetchTimeout+5*time.Second)
		profile := s.GetProfile(ctx, identifier)
		cancel()

		if profile == nil {
			fmt.Printf("%s: unavailable\n", identifier)
			exitCode = 1
			continue
		}

		out, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			logger.WithError(err).WithField("identifier", identifier).Error("failed to encode profile")
			exitCode = 1
			continue
		}
		fmt.Println(string(out))
	}

	os.Exit(exitCode)
}
