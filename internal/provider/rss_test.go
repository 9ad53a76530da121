package provider

import (
	"context"
	"testing"

	"newswire/internal/platform"
)

const rssPayload = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Blog</title>
    <link>https://blog.example.com</link>
    <item>
      <title>First Post</title>
      <link>https://blog.example.com/first</link>
      <description>A short summary</description>
      <category>technology</category>
      <author>writer@example.com (Sam Writer)</author>
      <pubDate>Mon, 15 Jan 2024 10:30:45 GMT</pubDate>
    </item>
    <item>
      <title>Second Post</title>
      <link>https://blog.example.com/second</link>
      <description>Another summary</description>
      <pubDate>Tue, 16 Jan 2024 08:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func TestRSSTransform(t *testing.T) {
	p := NewRSS("https://blog.example.com/feed.xml")

	articles, err := p.Transform([]byte(rssPayload))
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(articles))
	}

	a := articles[0]
	if a.Title != "First Post" {
		t.Errorf("Unexpected title %q", a.Title)
	}
	if a.URL != "https://blog.example.com/first" {
		t.Errorf("Unexpected url %q", a.URL)
	}
	if !a.Source.Valid || a.Source.String != "Example Blog" {
		t.Errorf("Expected feed title as source, got %+v", a.Source)
	}
	if !a.Category.Valid || a.Category.String != "technology" {
		t.Errorf("Expected category technology, got %+v", a.Category)
	}
	if a.PublishedAt != "2024-01-15 10:30:45" {
		t.Errorf("Expected canonical timestamp, got %q", a.PublishedAt)
	}
	if a.Platform != platform.RSS.String() {
		t.Errorf("Expected platform %q, got %q", platform.RSS, a.Platform)
	}
}

func TestRSSTransformMissingOptionalFields(t *testing.T) {
	p := NewRSS("https://blog.example.com/feed.xml")

	articles, err := p.Transform([]byte(rssPayload))
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	a := articles[1]
	if a.Author.Valid {
		t.Errorf("Expected NULL author, got %q", a.Author.String)
	}
	if a.Category.Valid {
		t.Errorf("Expected NULL category, got %q", a.Category.String)
	}
	if a.URLToImage.Valid {
		t.Errorf("Expected NULL urlToImage, got %q", a.URLToImage.String)
	}
}

func TestRSSTransformRejectsGarbage(t *testing.T) {
	p := NewRSS("https://blog.example.com/feed.xml")

	if _, err := p.Transform([]byte("not a feed")); err == nil {
		t.Fatal("Expected parse error for non-feed payload")
	}
}

func TestRSSBuildRequest(t *testing.T) {
	p := NewRSS("https://blog.example.com/feed.xml")

	req, err := p.BuildRequest(context.Background(), "ignored", "2024-01-15 10:00:00")
	if err != nil {
		t.Fatalf("BuildRequest failed: %v", err)
	}
	if req.URL.String() != "https://blog.example.com/feed.xml" {
		t.Errorf("Expected the plain feed URL, got %q", req.URL)
	}
	if req.Header.Get("User-Agent") == "" {
		t.Error("Expected User-Agent header")
	}
}
