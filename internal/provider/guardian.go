// internal/provider/guardian.go
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"newswire/internal/database"
	"newswire/internal/platform"
)

// Guardian adapts the Guardian content API search endpoint.
type Guardian struct {
	baseURL string
	apiKey  string
}

func NewGuardian(baseURL, apiKey string) *Guardian {
	return &Guardian{baseURL: baseURL, apiKey: apiKey}
}

func (p *Guardian) Platform() platform.Platform {
	return platform.Guardian
}

func (p *Guardian) BuildRequest(ctx context.Context, keyword, since string) (*http.Request, error) {
	u, err := url.Parse(p.baseURL + "/search")
	if err != nil {
		return nil, fmt.Errorf("error building guardian url: %w", err)
	}

	q := u.Query()
	q.Set("q", keyword)
	q.Set("api-key", p.apiKey)
	q.Set("order-by", "newest")
	q.Set("show-fields", "trailText,byline,thumbnail,bodyText,publication")
	if since != "" {
		// The content API filters by date only, so the buffered cursor is
		// truncated to its date part.
		if t, ok := bufferedSince(since); ok {
			q.Set("from-date", t.Format("2006-01-02"))
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

type guardianResponse struct {
	Response struct {
		Results []struct {
			Type               string `json:"type"`
			SectionName        string `json:"sectionName"`
			WebPublicationDate string `json:"webPublicationDate"`
			WebTitle           string `json:"webTitle"`
			WebURL             string `json:"webUrl"`
			Fields             *struct {
				TrailText   *string `json:"trailText"`
				Byline      *string `json:"byline"`
				Thumbnail   *string `json:"thumbnail"`
				BodyText    *string `json:"bodyText"`
				Publication *string `json:"publication"`
			} `json:"fields"`
		} `json:"results"`
	} `json:"response"`
}

func (p *Guardian) Transform(payload []byte) ([]database.Article, error) {
	var resp guardianResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("error decoding guardian payload: %w", err)
	}

	articles := make([]database.Article, 0, len(resp.Response.Results))
	for _, raw := range resp.Response.Results {
		a := database.Article{
			Type:        raw.Type,
			Title:       raw.WebTitle,
			URL:         raw.WebURL,
			Category:    nullable(raw.SectionName),
			PublishedAt: canonicalTime(raw.WebPublicationDate),
			Platform:    platform.Guardian.String(),
		}
		if a.Type == "" {
			a.Type = database.DefaultType
		}
		if raw.Fields != nil {
			a.Source = fromPtr(raw.Fields.Publication)
			a.Author = fromPtr(raw.Fields.Byline)
			a.Description = fromPtr(raw.Fields.TrailText)
			a.URLToImage = fromPtr(raw.Fields.Thumbnail)
			a.Content = fromPtr(raw.Fields.BodyText)
		}
		articles = append(articles, a)
	}
	return articles, nil
}
