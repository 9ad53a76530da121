// internal/provider/newsapi.go
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"newswire/internal/database"
	"newswire/internal/platform"
)

// NewsAPI adapts the newsapi.org "everything" endpoint.
type NewsAPI struct {
	baseURL string
	apiKey  string
}

func NewNewsAPI(baseURL, apiKey string) *NewsAPI {
	return &NewsAPI{baseURL: baseURL, apiKey: apiKey}
}

func (p *NewsAPI) Platform() platform.Platform {
	return platform.NewsAPI
}

func (p *NewsAPI) BuildRequest(ctx context.Context, keyword, since string) (*http.Request, error) {
	u, err := url.Parse(p.baseURL + "/v2/everything")
	if err != nil {
		return nil, fmt.Errorf("error building newsapi url: %w", err)
	}

	q := u.Query()
	q.Set("q", keyword)
	q.Set("apiKey", p.apiKey)
	if since != "" {
		if t, ok := bufferedSince(since); ok {
			q.Set("from", t.Format(time.RFC3339))
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	return req, nil
}

// newsAPIResponse mirrors the raw NewsAPI payload. Optional fields are
// pointers so absent values survive as NULL through the transform.
type newsAPIResponse struct {
	Articles []struct {
		Source *struct {
			Name *string `json:"name"`
		} `json:"source"`
		Author      *string `json:"author"`
		Title       string  `json:"title"`
		Description *string `json:"description"`
		URL         string  `json:"url"`
		URLToImage  *string `json:"urlToImage"`
		PublishedAt string  `json:"publishedAt"`
		Content     *string `json:"content"`
	} `json:"articles"`
}

func (p *NewsAPI) Transform(payload []byte) ([]database.Article, error) {
	var resp newsAPIResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("error decoding newsapi payload: %w", err)
	}

	articles := make([]database.Article, 0, len(resp.Articles))
	for _, raw := range resp.Articles {
		a := database.Article{
			Type:        database.DefaultType,
			Author:      fromPtr(raw.Author),
			Title:       raw.Title,
			Description: fromPtr(raw.Description),
			URL:         raw.URL,
			URLToImage:  fromPtr(raw.URLToImage),
			Content:     fromPtr(raw.Content),
			PublishedAt: canonicalTime(raw.PublishedAt),
			Platform:    platform.NewsAPI.String(),
		}
		if raw.Source != nil {
			a.Source = fromPtr(raw.Source.Name)
		}
		articles = append(articles, a)
	}
	return articles, nil
}
