package feed

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Collector turns feed URLs into flat, time-filtered, source-tagged item
// lists. Feeds are fetched one at a time; a malformed or unreachable feed
// is reported per URL and never aborts the batch.
type Collector struct {
	httpClient   *http.Client
	gofeedParser *gofeed.Parser
	userAgent    string
	timeout      time.Duration
}

func NewCollector(httpClient *http.Client, userAgent string, timeout time.Duration) *Collector {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Collector{
		httpClient:   httpClient,
		gofeedParser: gofeed.NewParser(),
		userAgent:    userAgent,
		timeout:      timeout,
	}
}

// FetchOne fetches and parses a single feed, returning at most maxItems
// entries no older than hoursBack. Items whose date cannot be parsed are
// included anyway: recency filtering is best-effort.
func (c *Collector) FetchOne(ctx context.Context, feedURL string, maxItems, hoursBack int) (*Page, error) {
	if maxItems < 1 {
		return nil, fmt.Errorf("maxItems must be at least 1, got %d", maxItems)
	}
	if hoursBack < 0 {
		return nil, fmt.Errorf("hoursBack must not be negative, got %d", hoursBack)
	}

	data, err := c.fetchFeed(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	parsed, err := c.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	feedTitle := cmp.Or(parsed.Title, "Unknown Source")
	cutoff := time.Now().Add(-time.Duration(hoursBack) * time.Hour)

	entries := parsed.Items
	if len(entries) > maxItems {
		entries = entries[:maxItems]
	}

	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		item := c.normalizeItem(entry, feedTitle)

		if item.PublishedAt != nil && item.PublishedAt.Before(cutoff) {
			continue
		}

		items = append(items, item)
	}

	slog.Debug("Feed fetched", "url", feedURL, "title", feedTitle, "items", len(items))

	return &Page{FeedTitle: feedTitle, Items: items}, nil
}

// FetchMany fetches every URL independently and merges the results sorted
// newest first. Per-feed failures are recorded in the report and skipped.
func (c *Collector) FetchMany(ctx context.Context, feedURLs []string, maxItemsPerFeed, hoursBack int) *Report {
	report := &Report{
		FeedResults:    make(map[string]Status, len(feedURLs)),
		FeedsProcessed: len(feedURLs),
	}

	for _, feedURL := range feedURLs {
		page, err := c.FetchOne(ctx, feedURL, maxItemsPerFeed, hoursBack)
		if err != nil {
			slog.Warn("Feed fetch failed", "url", feedURL, "error", err)
			report.FeedResults[feedURL] = Status{Error: err.Error()}
			continue
		}

		report.FeedResults[feedURL] = Status{
			Success:    true,
			FeedTitle:  page.FeedTitle,
			ItemsCount: len(page.Items),
		}
		report.SucceededFeeds++
		report.Items = append(report.Items, page.Items...)
	}

	// Newest first; items without a parseable date sort to the end.
	// Stable sort keeps the fetch order of equal or undated items.
	sort.SliceStable(report.Items, func(i, j int) bool {
		a, b := report.Items[i].PublishedAt, report.Items[j].PublishedAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})

	return report
}

// Search fetches one feed and returns the items whose title or description
// contains any of the given terms, case-insensitively. Each item is
// reported at most once, tagged with the first term that matched.
func (c *Collector) Search(ctx context.Context, feedURL string, terms []string, maxItems, hoursBack int) (*SearchResult, error) {
	page, err := c.FetchOne(ctx, feedURL, maxItems, hoursBack)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{
		SearchTerms:   terms,
		TotalSearched: len(page.Items),
		Items:         []Match{},
	}

	for _, item := range page.Items {
		titleLower := strings.ToLower(item.Title)
		descLower := strings.ToLower(item.Description)

		for _, term := range terms {
			termLower := strings.ToLower(term)
			if strings.Contains(titleLower, termLower) || strings.Contains(descLower, termLower) {
				result.Items = append(result.Items, Match{Item: item, MatchedTerm: term})
				break
			}
		}
	}

	result.MatchesFound = len(result.Items)
	return result, nil
}

func (c *Collector) normalizeItem(entry *gofeed.Item, feedTitle string) Item {
	item := Item{
		Title:       cmp.Or(entry.Title, "No Title"),
		Link:        entry.Link,
		Description: entry.Description,
		Published:   entry.Published,
		Source:      feedTitle,
	}

	if item.Description == "" {
		item.Description = entry.Content
	}

	if entry.PublishedParsed != nil {
		item.PublishedAt = entry.PublishedParsed
	} else if entry.UpdatedParsed != nil {
		item.PublishedAt = entry.UpdatedParsed
		if item.Published == "" {
			item.Published = entry.Updated
		}
	}

	return item
}

func (c *Collector) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
