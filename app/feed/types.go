package feed

import (
	"time"
)

// Item is one normalized feed entry. Published keeps the feed's original
// date string; PublishedAt carries the parsed form when the feed provided
// a parseable date.
type Item struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	Description string     `json:"description"`
	Published   string     `json:"published,omitempty"`
	Source      string     `json:"source"`
	PublishedAt *time.Time `json:"-"`
}

// Page is the result of fetching a single feed.
type Page struct {
	FeedTitle string `json:"feed_title"`
	Items     []Item `json:"items"`
}

// Status reports the outcome of one feed inside a batch fetch.
type Status struct {
	Success    bool   `json:"success"`
	FeedTitle  string `json:"feed_title,omitempty"`
	ItemsCount int    `json:"items_count"`
	Error      string `json:"error,omitempty"`
}

// Report is the merged result of a batch fetch. FeedResults is keyed by
// feed URL; one failing feed never sinks the batch.
type Report struct {
	Items          []Item            `json:"items"`
	FeedResults    map[string]Status `json:"feed_results"`
	FeedsProcessed int               `json:"feeds_processed"`
	SucceededFeeds int               `json:"succeeded_feeds"`
}

// Match is one search hit, annotated with the term that matched.
type Match struct {
	Item
	MatchedTerm string `json:"matched_term"`
}

// SearchResult holds the outcome of a keyword search over one feed.
type SearchResult struct {
	SearchTerms   []string `json:"search_terms"`
	TotalSearched int      `json:"total_searched"`
	MatchesFound  int      `json:"matches_found"`
	Items         []Match  `json:"items"`
}
