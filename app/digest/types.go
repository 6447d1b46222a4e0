package digest

import (
	"time"
)

// Article is a feed item augmented with classification results. Summary is
// filled in only for interesting articles that survived content extraction.
type Article struct {
	Title         string  `json:"title"`
	Link          string  `json:"link"`
	Source        string  `json:"source"`
	Category      string  `json:"category"`
	Published     string  `json:"published,omitempty"`
	IsInteresting bool    `json:"is_interesting"`
	Summary       string  `json:"summary,omitempty"`
	Confidence    float64 `json:"confidence"`

	CategoryConfidence float64 `json:"-"`
	InterestConfidence float64 `json:"-"`
}

// TopStory is one entry of the global top-stories ranking.
type TopStory struct {
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	Source     string  `json:"source"`
	Summary    string  `json:"summary,omitempty"`
	Confidence float64 `json:"confidence"`
}

// ProcessingInfo is the metadata block attached to every digest.
type ProcessingInfo struct {
	SourcesUsed           int      `json:"sources_used"`
	SourceCategories      []string `json:"source_categories"`
	TimeRangeHours        int      `json:"time_range_hours"`
	ProcessingTimeSeconds float64  `json:"processing_time_seconds"`
	MinInterestThreshold  float64  `json:"min_interest_threshold"`
	ErrorsEncountered     int      `json:"errors_encountered"`
}

// Request carries the recognized parameters of one digest invocation.
type Request struct {
	SourceCategories  []string
	HoursBack         int
	MaxPerSource      int
	InterestThreshold float64
	PolitenessDelay   time.Duration
	MaxContentLength  int
	MaxSummarySents   int
}

// Result is the single structured payload returned to the caller: either a
// digest (Success true) or a structured error. It is always well-formed;
// the processor never lets an error escape as a panic.
type Result struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`

	Error            string   `json:"error,omitempty"`
	ErrorType        string   `json:"error_type,omitempty"`
	AvailableSources []string `json:"available_sources,omitempty"`

	Categories        map[string][]*Article `json:"categories,omitempty"`
	TotalArticles     int                   `json:"total_articles"`
	ProcessedArticles int                   `json:"processed_articles,omitempty"`
	InterestingCount  int                   `json:"interesting_count"`
	CategorySummaries map[string]string     `json:"category_summaries,omitempty"`
	TopStories        []TopStory            `json:"top_stories,omitempty"`
	ProcessingInfo    *ProcessingInfo       `json:"processing_info,omitempty"`
	ProcessingLog     []string              `json:"processing_log,omitempty"`
}
