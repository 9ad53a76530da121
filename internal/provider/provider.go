// Package provider contains one adapter per news provider. Each adapter
// owns two things: the shape of the outbound fetch request, and the pure
// transform from the provider's raw payload into canonical articles. The
// ingestion service depends only on this capability, never on a concrete
// adapter, so new providers slot in without touching the pipeline.
package provider

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"newswire/internal/database"
	"newswire/internal/platform"
)

// userAgent identifies our client to upstream providers.
const userAgent = "Newswire/0.1"

// sinceBuffer is added to the "fetch articles newer than" cursor before it
// is sent upstream, so an article whose publish time exactly equals the
// last-seen cursor is not fetched again. This is adapter-local policy, not
// a dedup guarantee: overlapping runs can still produce duplicates.
const sinceBuffer = 2 * time.Minute

type Provider interface {
	// Platform returns the code stamped on every article this adapter emits.
	Platform() platform.Platform
	// BuildRequest constructs the outbound request for articles matching
	// keyword and published after since (canonical timestamp, may be empty).
	BuildRequest(ctx context.Context, keyword, since string) (*http.Request, error)
	// Transform maps a raw provider payload into canonical articles. Pure:
	// no side effects, no I/O. Malformed timestamps are passed through
	// unmodified so ingestion rejects the batch rather than guessing.
	Transform(payload []byte) ([]database.Article, error)
}

// bufferedSince parses the canonical cursor and applies the forward buffer.
func bufferedSince(since string) (time.Time, bool) {
	t, err := time.Parse(database.TimeFormat, since)
	if err != nil {
		return time.Time{}, false
	}
	return t.Add(sinceBuffer), true
}

// canonicalTime re-emits an RFC3339 provider timestamp in the canonical
// format. A malformed value is returned unchanged, never corrected to now.
func canonicalTime(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.UTC().Format(database.TimeFormat)
}

// fromPtr maps an absent JSON field to NULL rather than "".
func fromPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
