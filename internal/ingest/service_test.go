package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newswire/internal/database"
	"newswire/internal/provider"
)

const cycleFixture = `{
  "articles": [
    {
      "source": {"name": "BBC"},
      "author": "John Doe",
      "title": "Cycle Article One",
      "description": "First",
      "url": "https://example.com/cycle/1",
      "publishedAt": "2024-01-15T10:00:00Z",
      "content": "Body one"
    },
    {
      "source": {"name": "CNN"},
      "author": null,
      "title": "Cycle Article Two",
      "description": "Second",
      "url": "https://example.com/cycle/2",
      "publishedAt": "2024-01-16T10:00:00Z",
      "content": "Body two"
    }
  ]
}`

func TestServiceRunCycle(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cycleFixture))
	}))
	defer upstream.Close()

	providers := []provider.Provider{provider.NewNewsAPI(upstream.URL, "test-key")}
	svc := NewService(db, testLogger(), providers, "technology", time.Hour)

	if err := svc.RunCycle(ctx); err != nil {
		t.Fatalf("RunCycle failed: %v", err)
	}
	if count, _ := db.CountArticles(ctx); count != 2 {
		t.Fatalf("Expected 2 articles after first cycle, got %d", count)
	}

	// A second cycle over the identical payload only sees already-ingested
	// publish times, so nothing new lands.
	if err := svc.RunCycle(ctx); err != nil {
		t.Fatalf("Second RunCycle failed: %v", err)
	}
	if count, _ := db.CountArticles(ctx); count != 2 {
		t.Errorf("Expected still 2 articles after repeat cycle, got %d", count)
	}
}

func TestServiceRunCycleUpstreamFailureDoesNotAbort(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	providers := []provider.Provider{provider.NewNewsAPI(upstream.URL, "test-key")}
	svc := NewService(db, testLogger(), providers, "technology", time.Hour)

	if err := svc.RunCycle(ctx); err != nil {
		t.Fatalf("RunCycle should swallow per-provider failures, got %v", err)
	}
	if count, _ := db.CountArticles(ctx); count != 0 {
		t.Errorf("Expected no articles, got %d", count)
	}
}

func TestDropSeen(t *testing.T) {
	articles := []database.Article{
		{Title: "Old", URL: "https://example.com/old", PublishedAt: "2024-01-15 09:00:00", Platform: "rss"},
		{Title: "Boundary", URL: "https://example.com/boundary", PublishedAt: "2024-01-15 10:00:00", Platform: "rss"},
		{Title: "New", URL: "https://example.com/new", PublishedAt: "2024-01-15 11:00:00", Platform: "rss"},
		{Title: "Broken", URL: "https://example.com/broken", PublishedAt: "not-a-date", Platform: "rss"},
	}

	t.Run("without a cursor everything is kept", func(t *testing.T) {
		if got := dropSeen(articles, ""); len(got) != 4 {
			t.Errorf("Expected all 4 kept, got %d", len(got))
		}
	})

	t.Run("cursor drops boundary and older", func(t *testing.T) {
		got := dropSeen(articles, "2024-01-15 10:00:00")
		if len(got) != 2 {
			t.Fatalf("Expected 2 kept, got %d", len(got))
		}
		if got[0].Title != "New" {
			t.Errorf("Expected the newer article kept, got %q", got[0].Title)
		}
		// Malformed timestamps must survive to be rejected by ingestion,
		// not silently dropped here.
		if got[1].Title != "Broken" {
			t.Errorf("Expected the malformed-timestamp article kept, got %q", got[1].Title)
		}
	})
}
