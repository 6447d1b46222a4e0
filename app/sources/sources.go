// Package sources holds the table of curated news feeds, grouped by
// source category. The built-in table can be replaced from a YAML file.
package sources

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Curated news sources for comprehensive coverage.
var defaultTable = map[string][]string{
	"general": {
		"http://feeds.bbci.co.uk/news/rss.xml",
		"http://rss.cnn.com/rss/edition.rss",
		"https://feeds.reuters.com/reuters/topNews",
		"https://feeds.nbcnews.com/nbcnews/public/news",
	},
	"technology": {
		"https://techcrunch.com/feed/",
		"https://feeds.arstechnica.com/arstechnica/index",
		"https://www.theverge.com/rss/index.xml",
	},
	"business": {
		"https://feeds.bloomberg.com/markets/news.rss",
		"https://feeds.reuters.com/news/business",
	},
	"science": {
		"https://www.sciencedaily.com/rss/all.xml",
		"https://feeds.nature.com/nature/rss/current",
	},
	"politics": {
		"https://feeds.reuters.com/Reuters/PoliticsNews",
		"http://feeds.bbci.co.uk/news/politics/rss.xml",
	},
}

var titleCaser = cases.Title(language.English)

type Table struct {
	mu    sync.RWMutex
	table map[string][]string
}

func NewTable() *Table {
	table := make(map[string][]string, len(defaultTable))
	for category, urls := range defaultTable {
		table[category] = append([]string(nil), urls...)
	}
	return &Table{table: table}
}

// LoadFile replaces the built-in table with the contents of a YAML file
// mapping source-category names to feed URL lists.
func (t *Table) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read sources file: %w", err)
	}

	var parsed map[string][]string
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse sources file: %w", err)
	}

	if len(parsed) == 0 {
		return fmt.Errorf("sources file %s defines no source categories", path)
	}

	table := make(map[string][]string, len(parsed))
	for category, urls := range parsed {
		name := strings.ToLower(strings.TrimSpace(category))
		if name == "" || len(urls) == 0 {
			continue
		}
		table[name] = append([]string(nil), urls...)
	}

	t.mu.Lock()
	t.table = table
	t.mu.Unlock()

	slog.Info("Source table loaded", "file", path, "categories", len(table))
	return nil
}

// Resolve maps source-category names to a flat feed URL list, preserving the
// request order. Unknown names are skipped with a warning and reported back.
func (t *Table) Resolve(categories []string) (urls []string, unknown []string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, category := range categories {
		name := strings.ToLower(strings.TrimSpace(category))
		if name == "" {
			continue
		}
		feeds, ok := t.table[name]
		if !ok {
			slog.Warn("Unknown source category", "category", name)
			unknown = append(unknown, name)
			continue
		}
		urls = append(urls, feeds...)
	}

	return urls, unknown
}

// Available returns the valid source-category keys, sorted.
func (t *Table) Available() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]string, 0, len(t.table))
	for category := range t.table {
		keys = append(keys, category)
	}
	sort.Strings(keys)
	return keys
}

// DisplayName renders a category key as a human-readable label.
func DisplayName(category string) string {
	return titleCaser.String(strings.ReplaceAll(category, "_", " "))
}

// ParseList splits a comma-separated category selection into clean names.
func ParseList(selection string) []string {
	parts := strings.Split(selection, ",")
	categories := make([]string, 0, len(parts))
	for _, part := range parts {
		name := strings.TrimSpace(part)
		if name != "" {
			categories = append(categories, name)
		}
	}
	return categories
}
