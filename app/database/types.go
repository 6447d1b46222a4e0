package database

import (
	"time"
)

// Run records the metadata of one digest invocation. The digest payload
// itself is never persisted.
type Run struct {
	ID               int64      `json:"id"`
	StartedAt        time.Time  `json:"started_at"`
	FinishedAt       time.Time  `json:"finished_at"`
	Trigger          string     `json:"trigger"` // "api" or "scheduler"
	SourceCategories string     `json:"source_categories"`
	TotalArticles    int        `json:"total_articles"`
	InterestingCount int        `json:"interesting_count"`
	ErrorCount       int        `json:"error_count"`
	Status           string     `json:"status"` // "success" or "error"
	Error            string     `json:"error,omitempty"`
}
