// Package query turns a validated set of optional article filters into a
// flat, storage-agnostic query description: a list of predicates that are
// ANDed together plus a single sort clause. Translation to SQL happens in
// the database package in one pass; nothing here touches the store.
package query

// FilterSet holds the recognized optional filter keys. A zero value means
// the key was absent and contributes no predicate. Values are assumed to be
// already validated upstream (known platform code, well-formed dates,
// search term of at least two characters).
type FilterSet struct {
	Search        string
	Source        string
	Category      string
	Platform      string
	FromDate      string // YYYY-MM-DD
	ToDate        string // YYYY-MM-DD
	SortBy        string // "publishedAt" or "title"
	SortDirection string // "asc" or "desc"
}

// Field names the article attribute a predicate applies to.
type Field int

const (
	FieldSearch Field = iota // full-text match over title/description/content
	FieldSource
	FieldCategory
	FieldPlatform
	FieldPublishedFrom // publishedAt >= value, inclusive
	FieldPublishedTo   // publishedAt <= value, inclusive
)

// Predicate is one exact-match or range condition. All predicates in a
// Query combine with AND.
type Predicate struct {
	Field Field
	Value string
}

// Query is the built result: predicates plus exactly one sort clause.
type Query struct {
	Predicates []Predicate
	SortBy     string
	SortDesc   bool
}

const (
	SortPublishedAt = "publishedAt"
	SortTitle       = "title"
)

// Build maps each present filter key to exactly one predicate. Date bounds
// are widened to cover the whole day so that an article published at any
// time on from_date or to_date is included. Sort defaults to publishedAt
// descending, with each half defaulting independently when only the other
// is supplied.
func Build(fs FilterSet) Query {
	var preds []Predicate

	if fs.Search != "" {
		preds = append(preds, Predicate{FieldSearch, fs.Search})
	}
	if fs.Source != "" {
		preds = append(preds, Predicate{FieldSource, fs.Source})
	}
	if fs.Category != "" {
		preds = append(preds, Predicate{FieldCategory, fs.Category})
	}
	if fs.Platform != "" {
		preds = append(preds, Predicate{FieldPlatform, fs.Platform})
	}
	if fs.FromDate != "" {
		preds = append(preds, Predicate{FieldPublishedFrom, fs.FromDate + " 00:00:00"})
	}
	if fs.ToDate != "" {
		preds = append(preds, Predicate{FieldPublishedTo, fs.ToDate + " 23:59:59"})
	}

	sortBy := fs.SortBy
	if sortBy == "" {
		sortBy = SortPublishedAt
	}
	direction := fs.SortDirection
	if direction == "" {
		direction = "desc"
	}

	return Query{
		Predicates: preds,
		SortBy:     sortBy,
		SortDesc:   direction == "desc",
	}
}
