// Save as: internal/ingest/service.go
package ingest

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"newswire/internal/database"
	"newswire/internal/provider"
)

// Service drives the fetch -> transform -> ingest cycle on a timer. Each
// provider's batch is its own atomic unit of work; providers are fetched
// concurrently but articles within a batch are inserted sequentially inside
// one transaction.
type Service struct {
	db        *database.DB
	logger    *log.Logger
	pipeline  *Pipeline
	providers []provider.Provider
	client    *http.Client
	keyword   string
	interval  time.Duration
	done      chan struct{}
}

func NewService(db *database.DB, logger *log.Logger, providers []provider.Provider, keyword string, interval time.Duration) *Service {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	s := &Service{
		db:        db,
		logger:    logger,
		providers: providers,
		client:    &http.Client{Timeout: 30 * time.Second, Transport: transport},
		keyword:   keyword,
		interval:  interval,
		done:      make(chan struct{}),
	}
	s.pipeline = NewPipeline(db, logger)
	return s
}

func (s *Service) Start() {
	go s.updateLoop()
}

func (s *Service) Stop() {
	close(s.done)
}

func (s *Service) updateLoop() {
	s.logger.Printf("Starting ingestion service update loop")

	// Do initial cycle
	if err := s.RunCycle(context.Background()); err != nil {
		s.logger.Printf("Initial ingestion cycle failed: %v", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.logger.Printf("Starting scheduled ingestion cycle")
			if err := s.RunCycle(context.Background()); err != nil {
				s.logger.Printf("Scheduled ingestion cycle failed: %v", err)
			}

		case <-s.done:
			s.logger.Printf("Ingestion service shutting down")
			return
		}
	}
}

type fetchResult struct {
	Provider provider.Provider
	Articles []database.Article
	Error    error
}

// RunCycle fetches every provider once and ingests each provider's batch.
// A failed provider or rejected batch is logged and does not stop the rest
// of the cycle.
func (s *Service) RunCycle(ctx context.Context) error {
	results := make(chan fetchResult, len(s.providers))

	for _, p := range s.providers {
		go func(p provider.Provider) {
			articles, err := s.fetchProvider(ctx, p)
			results <- fetchResult{Provider: p, Articles: articles, Error: err}
		}(p)
	}

	for range s.providers {
		result := <-results
		code := result.Provider.Platform().String()
		if result.Error != nil {
			s.logger.Printf("Error fetching %s: %v", code, result.Error)
			continue
		}
		n, err := s.pipeline.Ingest(ctx, result.Articles)
		if err != nil {
			s.logger.Printf("Error ingesting %s batch: %v", code, err)
			continue
		}
		s.logger.Printf("Ingested %d articles from %s", n, code)
	}

	return nil
}

// fetchProvider performs one provider round trip and returns the canonical
// batch, minus items already seen for that platform.
func (s *Service) fetchProvider(ctx context.Context, p provider.Provider) ([]database.Article, error) {
	since, err := s.db.LatestPublishedAt(ctx, p.Platform())
	if err != nil {
		return nil, fmt.Errorf("error reading fetch cursor: %w", err)
	}

	req, err := p.BuildRequest(ctx, s.keyword, since)
	if err != nil {
		return nil, fmt.Errorf("error building request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching articles: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response status %d", resp.StatusCode)
	}

	// Cap payload size (5MB) to avoid huge downloads
	const maxPayloadBytes = 5 << 20
	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes))
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	articles, err := p.Transform(payload)
	if err != nil {
		return nil, fmt.Errorf("error transforming payload: %w", err)
	}

	return dropSeen(articles, since), nil
}

// dropSeen skips articles published at or before the cursor, for providers
// whose endpoint cannot filter upstream. Articles with a malformed publish
// time are kept so ingestion rejects the batch rather than silently losing
// the record.
func dropSeen(articles []database.Article, since string) []database.Article {
	if since == "" {
		return articles
	}
	cursor, err := time.Parse(database.TimeFormat, since)
	if err != nil {
		return articles
	}

	kept := make([]database.Article, 0, len(articles))
	for _, a := range articles {
		t, err := time.Parse(database.TimeFormat, a.PublishedAt)
		if err == nil && !t.After(cursor) {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}
