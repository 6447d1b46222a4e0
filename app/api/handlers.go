package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avolkov/news-digest/app/database"
	"github.com/avolkov/news-digest/app/digest"
	"github.com/avolkov/news-digest/app/feed"
	"github.com/avolkov/news-digest/app/sources"
)

// DigestRunner is the slice of the digest processor the handlers need.
type DigestRunner interface {
	Run(ctx context.Context, req digest.Request) *digest.Result
}

// NewHandler builds the handler set. defaults supplies the digest
// parameters used when a request omits them.
func NewHandler(runner DigestRunner, collector *feed.Collector, table *sources.Table,
	runRepo database.RunRepository, defaults digest.Request) *Handler {
	return &Handler{
		runner:    runner,
		collector: collector,
		table:     table,
		runRepo:   runRepo,
		defaults:  defaults,
	}
}

// GetDigest handles GET /digest with query parameters.
func (h *Handler) GetDigest(c *gin.Context) {
	req := DigestRequest{
		HoursBack:            queryInt(c, "hours_back", 0),
		MaxArticlesPerSource: queryInt(c, "max_articles_per_source", 0),
	}

	if selection := c.Query("source_categories"); selection != "" {
		req.SourceCategories = SourceList(sources.ParseList(selection))
	}
	if raw := c.Query("min_interest_threshold"); raw != "" {
		if threshold, err := strconv.ParseFloat(raw, 64); err == nil {
			req.MinInterestThreshold = threshold
		}
	}

	h.runDigest(c, req)
}

// PostDigest handles POST /api/digest with a JSON body.
func (h *Handler) PostDigest(c *gin.Context) {
	var req DigestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid request body: %s", err)})
		return
	}

	h.runDigest(c, req)
}

func (h *Handler) runDigest(c *gin.Context, req DigestRequest) {
	dreq := h.defaults
	if categories := []string(req.SourceCategories); len(categories) > 0 {
		dreq.SourceCategories = categories
	}
	if len(dreq.SourceCategories) == 0 {
		dreq.SourceCategories = []string{"general", "technology", "business"}
	}
	if req.HoursBack > 0 {
		dreq.HoursBack = req.HoursBack
	}
	if req.MaxArticlesPerSource > 0 {
		dreq.MaxPerSource = req.MaxArticlesPerSource
	}
	if req.MinInterestThreshold > 0 {
		dreq.InterestThreshold = req.MinInterestThreshold
	}

	categories := dreq.SourceCategories
	started := time.Now().UTC()
	result := h.runner.Run(c.Request.Context(), dreq)

	h.recordRun(started, categories, result)

	// Errors are part of the tool contract: the payload is the result,
	// whether or not the pipeline succeeded.
	status := http.StatusOK
	if result.Error != "" && result.ErrorType == "configuration" {
		status = http.StatusBadRequest
	}

	c.JSON(status, result)
}

func (h *Handler) recordRun(started time.Time, categories []string, result *digest.Result) {
	if h.runRepo == nil {
		return
	}

	run := database.Run{
		StartedAt:        started,
		FinishedAt:       time.Now().UTC(),
		Trigger:          "api",
		SourceCategories: strings.Join(categories, ","),
		Status:           "success",
	}

	if result.Error != "" {
		run.Status = "error"
		run.Error = result.Error
	} else {
		run.TotalArticles = result.TotalArticles
		run.InterestingCount = result.InterestingCount
		if result.ProcessingInfo != nil {
			run.ErrorCount = result.ProcessingInfo.ErrorsEncountered
		}
	}

	if _, err := h.runRepo.InsertRun(run); err != nil {
		slog.Error("Failed to record digest run", "error", err)
	}
}

// SearchFeed handles GET /api/search.
func (h *Handler) SearchFeed(c *gin.Context) {
	feedURL := c.Query("feed_url")
	if feedURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing feed_url parameter"})
		return
	}

	terms := sources.ParseList(c.Query("terms"))
	if len(terms) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing terms parameter"})
		return
	}

	maxItems := queryInt(c, "max_items", 20)
	hoursBack := queryInt(c, "hours_back", 48)

	result, err := h.collector.Search(c.Request.Context(), feedURL, terms, maxItems, hoursBack)
	if err != nil {
		slog.Error("Feed search failed", "url", feedURL, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": fmt.Sprintf("Failed to search feed: %s", err)})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListSources handles GET /api/sources.
func (h *Handler) ListSources(c *gin.Context) {
	available := h.table.Available()

	categories := make([]gin.H, 0, len(available))
	for _, key := range available {
		urls, _ := h.table.Resolve([]string{key})
		categories = append(categories, gin.H{
			"key":          key,
			"display_name": sources.DisplayName(key),
			"feeds":        len(urls),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"sources": categories,
		"total":   len(categories),
	})
}

// ListRuns handles GET /api/runs.
func (h *Handler) ListRuns(c *gin.Context) {
	if h.runRepo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Run history not available"})
		return
	}

	limit := queryInt(c, "limit", 20)
	runs, err := h.runRepo.ListRuns(limit)
	if err != nil {
		slog.Error("Database error", "operation", "list_runs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"total": len(runs),
	})
}

// GetHealth handles GET /health.
func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp":         time.Now().In(time.Local).Format(time.RFC3339),
		"source_categories": len(h.table.Available()),
	}

	if h.runRepo != nil {
		if runCount, err := h.runRepo.GetRunCount(); err == nil {
			health["runs"] = runCount
		}
	}

	c.JSON(http.StatusOK, health)
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
