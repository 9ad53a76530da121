// Save as: internal/server/articles.go
package server

import (
	"database/sql"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"newswire/internal/database"
	"newswire/internal/platform"
	"newswire/internal/query"
)

const (
	defaultPerPage = 15
	maxPerPage     = 50
)

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	fs, page, perPage, errs := parseArticleParams(r.URL.Query())
	if len(errs) > 0 {
		s.validationError(w, errs)
		return
	}

	q := query.Build(fs)
	articles, meta, err := s.db.SearchArticles(r.Context(), q, page, perPage)
	if err != nil {
		s.logger.Printf("Error retrieving articles: %v", err)
		s.serverError(w, "Failed to retrieve articles")
		return
	}

	data := make([]articleJSON, 0, len(articles))
	for _, a := range articles {
		data = append(data, toArticleJSON(a))
	}
	s.paginated(w, data, meta, "Articles retrieved successfully")
}

// parseArticleParams validates the read-query parameters and assembles the
// FilterSet. Every violation is collected into a per-field error list so the
// caller sees all problems at once.
func parseArticleParams(values url.Values) (query.FilterSet, int, int, map[string][]string) {
	errs := map[string][]string{}
	addErr := func(field, msg string) {
		errs[field] = append(errs[field], msg)
	}

	var fs query.FilterSet

	if v := values.Get("search"); v != "" {
		if len([]rune(v)) < 2 {
			addErr("search", "The search term must be at least 2 characters.")
		} else {
			fs.Search = v
		}
	}

	fs.Source = values.Get("source")
	fs.Category = values.Get("category")

	if v := values.Get("platform"); v != "" {
		if _, err := platform.Parse(v); err != nil {
			addErr("platform", "The selected platform is invalid.")
		} else {
			fs.Platform = v
		}
	}

	var fromDate, toDate time.Time
	if v := values.Get("from_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			addErr("from_date", "The from date must be a valid date (YYYY-MM-DD).")
		} else {
			fromDate = t
			fs.FromDate = v
		}
	}
	if v := values.Get("to_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			addErr("to_date", "The to date must be a valid date (YYYY-MM-DD).")
		} else {
			toDate = t
			fs.ToDate = v
		}
	}
	if !fromDate.IsZero() && !toDate.IsZero() && toDate.Before(fromDate) {
		addErr("to_date", "The to date must be a date after or equal to from date.")
	}

	if v := values.Get("sort_by"); v != "" {
		switch v {
		case query.SortPublishedAt, query.SortTitle:
			fs.SortBy = v
		default:
			addErr("sort_by", "The selected sort by is invalid.")
		}
	}
	if v := values.Get("sort_direction"); v != "" {
		switch v {
		case "asc", "desc":
			fs.SortDirection = v
		default:
			addErr("sort_direction", "The selected sort direction is invalid.")
		}
	}

	perPage := defaultPerPage
	if v := values.Get("per_page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPerPage {
			addErr("per_page", "The per page value must be an integer between 1 and 50.")
		} else {
			perPage = n
		}
	}

	page := 1
	if v := values.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			addErr("page", "The page value must be a positive integer.")
		} else {
			page = n
		}
	}

	return fs, page, perPage, errs
}

// articleJSON is the outbound article shape; nullable columns serialize as
// null, not "".
type articleJSON struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Source      *string   `json:"source"`
	Author      *string   `json:"author"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	URL         string    `json:"url"`
	URLToImage  *string   `json:"urlToImage"`
	Content     *string   `json:"content"`
	Category    *string   `json:"category"`
	PublishedAt string    `json:"publishedAt"`
	Platform    string    `json:"platform"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toArticleJSON(a database.Article) articleJSON {
	return articleJSON{
		ID:          a.ID,
		Type:        a.Type,
		Source:      nullToPtr(a.Source),
		Author:      nullToPtr(a.Author),
		Title:       a.Title,
		Description: nullToPtr(a.Description),
		URL:         a.URL,
		URLToImage:  nullToPtr(a.URLToImage),
		Content:     nullToPtr(a.Content),
		Category:    nullToPtr(a.Category),
		PublishedAt: a.PublishedAt,
		Platform:    a.Platform,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func nullToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
