// internal/database/articles.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"newswire/internal/platform"
	"newswire/internal/query"

	"github.com/google/uuid"
)

// Error definitions
var (
	ErrNotFound = errors.New("record not found")
)

// TimeFormat is the canonical second-precision timestamp format every
// provider timestamp is normalized into before persistence. Stored as TEXT,
// so lexicographic comparison is chronological comparison.
const TimeFormat = "2006-01-02 15:04:05"

// DefaultType is used when a provider supplies no type discriminator.
const DefaultType = "article"

// Article is the canonical article shape: what adapters produce, what the
// ingestion pipeline persists, and what queries return. Optional fields are
// NullStrings so a missing provider value stays NULL rather than "".
type Article struct {
	ID          string
	Type        string
	Source      sql.NullString
	Author      sql.NullString
	Title       string
	Description sql.NullString
	URL         string
	URLToImage  sql.NullString
	Content     sql.NullString
	Category    sql.NullString
	PublishedAt string // canonical TimeFormat; may hold a malformed provider value until ingestion rejects it
	Platform    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// validate enforces the storage-boundary invariants: title, url, platform
// and a canonical publishedAt are always present after successful ingestion.
func (a *Article) validate() error {
	if a.Title == "" {
		return errors.New("missing title")
	}
	if a.URL == "" {
		return errors.New("missing url")
	}
	if _, err := time.Parse(TimeFormat, a.PublishedAt); err != nil {
		return fmt.Errorf("invalid publishedAt %q", a.PublishedAt)
	}
	if !platform.Platform(a.Platform).Valid() {
		return fmt.Errorf("unknown platform %q", a.Platform)
	}
	return nil
}

// InsertArticles persists a batch of articles inside a single transaction.
// The batch is all-or-nothing: if any record fails validation or insertion
// the transaction is rolled back and zero rows are persisted. An empty batch
// is a no-op. IDs are assigned here when unset.
func (db *DB) InsertArticles(ctx context.Context, articles []Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO articles (
            id, type, source, author, title, description,
            url, url_to_image, content, category, published_at, platform
        )
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i := range articles {
		a := &articles[i]
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.Type == "" {
			a.Type = DefaultType
		}
		if err := a.validate(); err != nil {
			return 0, fmt.Errorf("article %d (url=%q, platform=%q): %w", i, a.URL, a.Platform, err)
		}
		_, err = stmt.ExecContext(ctx,
			a.ID, a.Type, a.Source, a.Author, a.Title, a.Description,
			a.URL, a.URLToImage, a.Content, a.Category, a.PublishedAt, a.Platform,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting article %d (url=%q): %w", i, a.URL, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(articles), nil
}

// Pagination is the offset-pagination metadata for one result page.
// From and To are 1-based item indexes; both are zero on an empty page.
type Pagination struct {
	CurrentPage int
	LastPage    int
	PerPage     int
	Total       int
	From        int
	To          int
}

// sortColumns maps the builder's logical sort keys onto real columns.
var sortColumns = map[string]string{
	query.SortPublishedAt: "published_at",
	query.SortTitle:       "title",
}

const articleColumns = `id, type, source, author, title, description,
        url, url_to_image, content, category, published_at, platform,
        created_at, updated_at`

// SearchArticles executes a built query against the store: COUNT for the
// pagination metadata, then one page of rows. Predicates are translated to
// SQL in a single pass; exactly one ORDER BY clause is applied.
func (db *DB) SearchArticles(ctx context.Context, q query.Query, page, perPage int) ([]Article, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 15
	}

	where, args := db.translatePredicates(q.Predicates)

	var total int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles"+where, args...).Scan(&total)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("error counting articles: %w", err)
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = "published_at"
	}
	direction := "ASC"
	if q.SortDesc {
		direction = "DESC"
	}

	offset := (page - 1) * perPage
	rows, err := db.QueryContext(ctx,
		"SELECT "+articleColumns+" FROM articles"+where+
			" ORDER BY "+column+" "+direction+" LIMIT ? OFFSET ?",
		append(args, perPage, offset)...,
	)
	if err != nil {
		return nil, Pagination{}, fmt.Errorf("error querying articles: %w", err)
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var a Article
		err := rows.Scan(
			&a.ID, &a.Type, &a.Source, &a.Author, &a.Title, &a.Description,
			&a.URL, &a.URLToImage, &a.Content, &a.Category, &a.PublishedAt, &a.Platform,
			&a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, Pagination{}, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, Pagination{}, err
	}

	p := Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		LastPage:    (total + perPage - 1) / perPage,
	}
	if p.LastPage < 1 {
		p.LastPage = 1
	}
	if len(articles) > 0 {
		p.From = offset + 1
		p.To = offset + len(articles)
	}

	return articles, p, nil
}

// translatePredicates renders the predicate list as a WHERE clause. All
// predicates AND together; an empty list means no clause at all.
func (db *DB) translatePredicates(preds []query.Predicate) (string, []any) {
	if len(preds) == 0 {
		return "", nil
	}

	conds := make([]string, 0, len(preds))
	var args []any
	for _, p := range preds {
		switch p.Field {
		case query.FieldSearch:
			if db.hasFTS {
				conds = append(conds, "rowid IN (SELECT rowid FROM articles_fts WHERE articles_fts MATCH ?)")
				args = append(args, ftsQuote(p.Value))
			} else {
				like := "%" + escapeLike(p.Value) + "%"
				conds = append(conds, `(title LIKE ? ESCAPE '\' OR description LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\')`)
				args = append(args, like, like, like)
			}
		case query.FieldSource:
			conds = append(conds, "source = ?")
			args = append(args, p.Value)
		case query.FieldCategory:
			conds = append(conds, "category = ?")
			args = append(args, p.Value)
		case query.FieldPlatform:
			conds = append(conds, "platform = ?")
			args = append(args, p.Value)
		case query.FieldPublishedFrom:
			conds = append(conds, "published_at >= ?")
			args = append(args, p.Value)
		case query.FieldPublishedTo:
			conds = append(conds, "published_at <= ?")
			args = append(args, p.Value)
		}
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

// ftsQuote wraps the term as a single FTS5 string token so user input is
// never parsed as match syntax.
func ftsQuote(term string) string {
	return `"` + strings.ReplaceAll(term, `"`, `""`) + `"`
}

func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

// LatestPublishedAt returns the newest publishedAt for a platform, used as
// the "fetch articles newer than" cursor. Empty string when the platform
// has no articles yet.
func (db *DB) LatestPublishedAt(ctx context.Context, p platform.Platform) (string, error) {
	var ts sql.NullString
	err := db.QueryRowContext(ctx,
		"SELECT MAX(published_at) FROM articles WHERE platform = ?",
		p.String(),
	).Scan(&ts)
	if err != nil {
		return "", err
	}
	if !ts.Valid {
		return "", nil
	}
	return ts.String, nil
}

// CountArticles returns the total number of persisted articles.
func (db *DB) CountArticles(ctx context.Context) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&n)
	return n, err
}
