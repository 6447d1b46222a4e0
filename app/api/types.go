package api

import (
	"encoding/json"
	"fmt"

	"github.com/avolkov/news-digest/app/database"
	"github.com/avolkov/news-digest/app/digest"
	"github.com/avolkov/news-digest/app/feed"
	"github.com/avolkov/news-digest/app/sources"
)

type Handler struct {
	runner    DigestRunner
	collector *feed.Collector
	table     *sources.Table
	runRepo   database.RunRepository
	defaults  digest.Request
}

// SourceList accepts either a JSON array of category names or a single
// comma-separated string. The two accepted shapes are handled explicitly
// here at the boundary instead of being guessed at downstream.
type SourceList []string

func (s *SourceList) UnmarshalJSON(data []byte) error {
	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		*s = asList
		return nil
	}

	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*s = sources.ParseList(asString)
		return nil
	}

	return fmt.Errorf("source_categories must be a string or a list of strings")
}

// DigestRequest is the JSON body of POST /api/digest.
type DigestRequest struct {
	HoursBack            int        `json:"hours_back"`
	MaxArticlesPerSource int        `json:"max_articles_per_source"`
	SourceCategories     SourceList `json:"source_categories"`
	MinInterestThreshold float64    `json:"min_interest_threshold"`
}
