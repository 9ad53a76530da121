// internal/provider/rss.go
package provider

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"newswire/internal/database"
	"newswire/internal/platform"

	"github.com/mmcdole/gofeed"
)

// RSS adapts an RSS/Atom feed. Unlike the JSON providers the raw payload is
// an XML document and the endpoint takes no query parameters; already-seen
// items are skipped by the ingestion service instead.
type RSS struct {
	feedURL string
}

func NewRSS(feedURL string) *RSS {
	return &RSS{feedURL: feedURL}
}

func (p *RSS) Platform() platform.Platform {
	return platform.RSS
}

func (p *RSS) BuildRequest(ctx context.Context, keyword, since string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", p.feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	return req, nil
}

func (p *RSS) Transform(payload []byte) ([]database.Article, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("error parsing feed: %w", err)
	}

	articles := make([]database.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		a := database.Article{
			Type:        database.DefaultType,
			Source:      nullable(feed.Title),
			Title:       item.Title,
			Description: nullable(item.Description),
			URL:         item.Link,
			Content:     nullable(item.Content),
			PublishedAt: item.Published, // carried through when unparseable
			Platform:    platform.RSS.String(),
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = item.PublishedParsed.UTC().Format(database.TimeFormat)
		}
		if item.Author != nil {
			a.Author = nullable(item.Author.Name)
		}
		if len(item.Categories) > 0 {
			a.Category = nullable(item.Categories[0])
		}
		if item.Image != nil {
			a.URLToImage = nullable(item.Image.URL)
		}
		articles = append(articles, a)
	}
	return articles, nil
}
