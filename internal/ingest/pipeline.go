// Save as: internal/ingest/pipeline.go
package ingest

import (
	"context"
	"fmt"
	"log"

	"newswire/internal/database"
)

// Pipeline commits batches of canonical articles to the store. One batch is
// one transaction: either every article in it is persisted or none are. The
// pipeline performs no retries and no partial re-attempt; the caller decides
// what to do with a rejected batch.
type Pipeline struct {
	db     *database.DB
	logger *log.Logger
}

func NewPipeline(db *database.DB, logger *log.Logger) *Pipeline {
	return &Pipeline{db: db, logger: logger}
}

// Ingest persists one batch. On success the count always equals the batch
// size; on failure zero articles were persisted and the error identifies the
// offending record. An empty batch succeeds with zero insertions.
func (p *Pipeline) Ingest(ctx context.Context, articles []database.Article) (int, error) {
	n, err := p.db.InsertArticles(ctx, articles)
	if err != nil {
		p.logger.Printf("Rejected batch of %d articles, nothing persisted: %v", len(articles), err)
		return 0, fmt.Errorf("ingesting batch of %d articles: %w", len(articles), err)
	}
	return n, nil
}
