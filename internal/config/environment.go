// Save as: internal/config/environment.go
package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Port          int
	DBPath        string
	FetchInterval int // seconds between ingestion cycles
	SearchKeyword string

	NewsAPIKey  string
	NewsAPIURL  string
	GuardianKey string
	GuardianURL string
	RSSFeedURL  string
}

func GetConfig() Config {
	config := Config{
		Port:          8080, // default port
		DBPath:        "data/newswire.db",
		FetchInterval: 900,
		SearchKeyword: "news",
		NewsAPIURL:    "https://newsapi.org",
		GuardianURL:   "https://content.guardianapis.com",
	}

	// Override with environment variables if present
	if port := os.Getenv("NEWSWIRE_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Port = p
		}
	}

	if dbPath := os.Getenv("NEWSWIRE_DB_PATH"); dbPath != "" {
		config.DBPath = dbPath
	}

	if interval := os.Getenv("NEWSWIRE_FETCH_INTERVAL"); interval != "" {
		if n, err := strconv.Atoi(interval); err == nil && n > 0 {
			config.FetchInterval = n
		}
	}

	if keyword := os.Getenv("NEWSWIRE_SEARCH_KEYWORD"); keyword != "" {
		config.SearchKeyword = keyword
	}

	if key := os.Getenv("NEWSWIRE_NEWSAPI_KEY"); key != "" {
		config.NewsAPIKey = key
	}
	if url := os.Getenv("NEWSWIRE_NEWSAPI_URL"); url != "" {
		config.NewsAPIURL = url
	}
	if key := os.Getenv("NEWSWIRE_GUARDIAN_KEY"); key != "" {
		config.GuardianKey = key
	}
	if url := os.Getenv("NEWSWIRE_GUARDIAN_URL"); url != "" {
		config.GuardianURL = url
	}
	if url := os.Getenv("NEWSWIRE_RSS_URL"); url != "" {
		config.RSSFeedURL = url
	}

	return config
}

func (c Config) GetAddress() string {
	return fmt.Sprintf(":%d", c.Port)
}
