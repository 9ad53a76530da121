// internal/database/schema.go
// Database schema and setup for the newswire article store
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const Schema = `
-- Articles table: the sole persisted entity. Every provider payload is
-- normalized into this shape before it gets here.
CREATE TABLE IF NOT EXISTS articles (
    id TEXT PRIMARY KEY,
    type TEXT NOT NULL DEFAULT 'article',
    source TEXT,
    author TEXT,
    title TEXT NOT NULL,
    description TEXT,
    url TEXT NOT NULL,
    url_to_image TEXT,
    content TEXT,
    category TEXT,
    published_at TEXT NOT NULL,
    platform TEXT NOT NULL CHECK(platform IN ('news api', 'guardian', 'rss')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

const Indexes = `
-- Single-column indexes for each exact-match filter
CREATE INDEX IF NOT EXISTS idx_articles_type ON articles(type);
CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source);
CREATE INDEX IF NOT EXISTS idx_articles_category ON articles(category);
CREATE INDEX IF NOT EXISTS idx_articles_published ON articles(published_at DESC);
CREATE INDEX IF NOT EXISTS idx_articles_platform ON articles(platform);

-- Composite indexes for the common combined filters
CREATE INDEX IF NOT EXISTS idx_platform_category_published ON articles(platform, category, published_at);
CREATE INDEX IF NOT EXISTS idx_source_published ON articles(source, published_at);`

// ftsSchema sets up an external-content FTS5 table over the keyword-search
// columns, kept in sync with the articles table by triggers. Creating it
// fails on sqlite builds without FTS5 (driver compiled without the
// sqlite_fts5 tag); the store then falls back to a LIKE scan over the same
// columns, so search results are identical either way.
const ftsSchema = `
CREATE VIRTUAL TABLE IF NOT EXISTS articles_fts USING fts5(
    title, description, content,
    content='articles',
    content_rowid='rowid'
);

CREATE TRIGGER IF NOT EXISTS articles_fts_ai AFTER INSERT ON articles BEGIN
    INSERT INTO articles_fts(rowid, title, description, content)
    VALUES (new.rowid, new.title, new.description, new.content);
END;

CREATE TRIGGER IF NOT EXISTS articles_fts_ad AFTER DELETE ON articles BEGIN
    INSERT INTO articles_fts(articles_fts, rowid, title, description, content)
    VALUES ('delete', old.rowid, old.title, old.description, old.content);
END;

CREATE TRIGGER IF NOT EXISTS articles_fts_au AFTER UPDATE ON articles BEGIN
    INSERT INTO articles_fts(articles_fts, rowid, title, description, content)
    VALUES ('delete', old.rowid, old.title, old.description, old.content);
    INSERT INTO articles_fts(rowid, title, description, content)
    VALUES (new.rowid, new.title, new.description, new.content);
END;`

// DB represents our database connection and operations
type DB struct {
	*sql.DB
	hasFTS bool
}

// Configuration for the database
type Config struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConfig returns the default database configuration
func DefaultConfig() Config {
	return Config{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// NewDB creates a new database connection with optimized settings
func NewDB(dbPath string, cfg Config) (*DB, error) {
	// Add query parameters to optimize SQLite performance
	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=ON&_synchronous=NORMAL",
		dbPath)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	hasFTS, err := createSchema(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating schema: %w", err)
	}

	return &DB{DB: db, hasFTS: hasFTS}, nil
}

func createSchema(db *sql.DB) (bool, error) {
	if _, err := db.Exec(`
        PRAGMA journal_mode=WAL;
        PRAGMA synchronous=NORMAL;
        PRAGMA cache_size=10000;
        PRAGMA temp_store=MEMORY;
    `); err != nil {
		return false, fmt.Errorf("error setting pragmas: %w", err)
	}

	// Start transaction for table creation
	tx, err := db.Begin()
	if err != nil {
		return false, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(Schema); err != nil {
		return false, fmt.Errorf("error executing schema: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("error committing schema: %w", err)
	}

	// Create indexes after tables are committed
	if _, err := db.Exec(Indexes); err != nil {
		return false, fmt.Errorf("error creating indexes: %w", err)
	}

	// FTS5 is optional; fall back to LIKE-based search when unavailable
	if _, err := db.Exec(ftsSchema); err != nil {
		return false, nil
	}

	return true, nil
}

// HasFullTextIndex reports whether keyword search is served by the FTS5
// index rather than the LIKE fallback.
func (db *DB) HasFullTextIndex() bool {
	return db.hasFTS
}
