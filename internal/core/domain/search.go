package domain

import "time"

// DefaultSearchLimit is the result limit applied when a query does not
// specify one.
const DefaultSearchLimit = 10

// DateRange is an inclusive [Start, End] time window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the inclusive range.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// SearchQuery describes a search against the knowledge base.
type SearchQuery struct {
	// Query is the free-text query string. Empty means "match all";
	// every surviving document then scores exactly 1.0.
	Query string

	// Department restricts results to one department when set.
	Department string

	// Tags restricts results to documents carrying at least one of
	// these tags ("any-of" match).
	Tags []string

	// DateRange restricts results to documents uploaded within the
	// inclusive window when set.
	DateRange *DateRange

	// DocTypes restricts by content type. Reserved: the query engine
	// does not apply this filter yet, matching the index layout which
	// carries no content type.
	DocTypes []DocumentType

	// Limit caps the number of results. Zero yields no results;
	// negative values are clamped to zero.
	Limit int

	// AsOf makes this a temporal query: documents uploaded strictly
	// after this instant are excluded, answering "what did the store
	// know as of this date".
	AsOf *time.Time
}

// NewSearchQuery builds a query with the default result limit.
func NewSearchQuery(query string) SearchQuery {
	return SearchQuery{Query: query, Limit: DefaultSearchLimit}
}

// SearchResult is a single ranked hit.
type SearchResult struct {
	// Document is the matched document, fully loaded.
	Document Document

	// Score is the relevance in [0,1].
	Score float64

	// Highlights are snippets of parsed text containing the query.
	Highlights []string
}
