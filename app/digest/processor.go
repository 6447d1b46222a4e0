package digest

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/avolkov/news-digest/app/analyzer"
	"github.com/avolkov/news-digest/app/feed"
	"github.com/avolkov/news-digest/app/sources"
)

const topStoriesCap = 10

// Processor drives one bounded unit of work: resolve sources, collect
// feeds, classify every item, extract and summarize the interesting
// subset, and assemble the final digest. Every invocation builds fresh
// local state, so a single Processor is safe to share between callers.
type Processor struct {
	table     *sources.Table
	collector *feed.Collector
	extractor *analyzer.Extractor
}

func NewProcessor(table *sources.Table, collector *feed.Collector, extractor *analyzer.Extractor) *Processor {
	return &Processor{
		table:     table,
		collector: collector,
		extractor: extractor,
	}
}

// Run executes the full pipeline. It never panics outward: any failure is
// converted into a structured error result the caller can reason over.
func (p *Processor) Run(ctx context.Context, req Request) (result *Result) {
	started := time.Now()
	log := newProcessingLog()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Digest processing panicked", "panic", r)
			log.add(fmt.Sprintf("Fatal error after %.2f seconds: %v", time.Since(started).Seconds(), r))
			result = &Result{
				Error:         fmt.Sprintf("News processing failed: %v", r),
				ErrorType:     "panic",
				ProcessingLog: log.lines,
			}
		}
	}()

	req = withDefaults(req)

	// Step 1: resolve source categories to feed URLs
	log.add(fmt.Sprintf("Collecting RSS feed sources for categories: %s", strings.Join(req.SourceCategories, ", ")))
	feedURLs, unknown := p.table.Resolve(req.SourceCategories)
	for _, name := range unknown {
		log.add(fmt.Sprintf("Unknown source category: %q", name))
	}
	log.add(fmt.Sprintf("Total feed URLs collected: %d", len(feedURLs)))

	if len(feedURLs) == 0 {
		return &Result{
			Error:            "No valid news sources found",
			ErrorType:        "configuration",
			AvailableSources: p.table.Available(),
			ProcessingLog:    log.lines,
		}
	}

	// Step 2: fetch feeds
	log.add(fmt.Sprintf("Fetching articles from %d RSS feeds (last %d hours, max %d per source)",
		len(feedURLs), req.HoursBack, req.MaxPerSource))

	report := p.collector.FetchMany(ctx, feedURLs, req.MaxPerSource, req.HoursBack)
	for url, status := range report.FeedResults {
		if status.Error != "" {
			log.add(fmt.Sprintf("Feed failed: %s: %s", url, status.Error))
		} else {
			log.add(fmt.Sprintf("Feed ok: %s: %d articles", url, status.ItemsCount))
		}
	}

	if report.SucceededFeeds == 0 {
		return &Result{
			Error:         "RSS fetching failed: no feed could be fetched",
			ErrorType:     "collection",
			ProcessingLog: log.lines,
		}
	}

	if len(report.Items) == 0 {
		log.add("No articles found in the specified time range")
		return &Result{
			Success:        true,
			Message:        "No articles found in the specified time range",
			TotalArticles:  0,
			ProcessingInfo: p.processingInfo(req, report, 0, started),
			ProcessingLog:  log.lines,
		}
	}

	// Step 3: classify every item
	log.add(fmt.Sprintf("Processing and categorizing %d articles", len(report.Items)))

	categorized := make(map[string][]*Article)
	var interesting []*Article
	processedCount := 0
	errorCount := len(feedURLs) - report.SucceededFeeds

	for _, item := range report.Items {
		if item.Title == "" || item.Title == "No Title" {
			slog.Debug("Skipping article without title", "link", item.Link)
			continue
		}

		category, catConfidence := analyzer.Categorize(item.Title, item.Description)
		isInteresting, interestConfidence := analyzer.IsInteresting(item.Title, item.Description)

		article := &Article{
			Title:              item.Title,
			Link:               item.Link,
			Source:             item.Source,
			Category:           category,
			Published:          item.Published,
			IsInteresting:      isInteresting && interestConfidence >= req.InterestThreshold,
			Confidence:         round3(math.Max(catConfidence, interestConfidence)),
			CategoryConfidence: catConfidence,
			InterestConfidence: interestConfidence,
		}

		categorized[category] = append(categorized[category], article)
		if article.IsInteresting {
			interesting = append(interesting, article)
		}
		processedCount++
	}

	log.add(fmt.Sprintf("Processing complete: %d articles processed, %d interesting", processedCount, len(interesting)))

	// Step 4: extract content and summarize interesting articles
	if len(interesting) > 0 {
		log.add(fmt.Sprintf("Extracting content for %d interesting articles", len(interesting)))
		summarized, extractionErrors := p.summarizeInteresting(ctx, interesting, req, log)
		log.add(fmt.Sprintf("Content extraction complete: %d successful, %d errors", summarized, extractionErrors))
		errorCount += extractionErrors
	} else {
		log.add("No interesting articles found, skipping content extraction")
	}

	// Step 5: category summaries and top stories
	categorySummaries := make(map[string]string, len(categorized))
	var topStories []TopStory

	for category, articles := range categorized {
		// Highest confidence first; equal scores keep fetch order
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].Confidence > articles[j].Confidence
		})

		categorySummaries[category] = summarizeCategory(articles)

		for _, article := range articles[:min(2, len(articles))] {
			if article.IsInteresting {
				topStories = append(topStories, TopStory{
					Title:      article.Title,
					Category:   article.Category,
					Source:     article.Source,
					Summary:    article.Summary,
					Confidence: article.Confidence,
				})
			}
		}
	}

	sort.SliceStable(topStories, func(i, j int) bool {
		return topStories[i].Confidence > topStories[j].Confidence
	})
	if len(topStories) > topStoriesCap {
		topStories = topStories[:topStoriesCap]
	}

	elapsed := time.Since(started).Seconds()
	log.add(fmt.Sprintf("Processing completed in %.2f seconds", elapsed))

	slog.Info("Digest assembled",
		"total", len(report.Items),
		"processed", processedCount,
		"interesting", len(interesting),
		"categories", len(categorized),
		"duration_seconds", round3(elapsed))

	return &Result{
		Success:           true,
		Categories:        categorized,
		TotalArticles:     len(report.Items),
		ProcessedArticles: processedCount,
		InterestingCount:  len(interesting),
		CategorySummaries: categorySummaries,
		TopStories:        topStories,
		ProcessingInfo:    p.processingInfo(req, report, errorCount, started),
		ProcessingLog:     log.lines,
	}
}

// summarizeInteresting fetches full content for each interesting article
// and attaches an extractive summary, pausing between fetches to stay
// polite toward origin servers. Extraction failures degrade to a fallback
// summary; they never stop the loop.
func (p *Processor) summarizeInteresting(ctx context.Context, articles []*Article, req Request, log *processingLog) (summarized, errors int) {
	for i, article := range articles {
		if i > 0 {
			select {
			case <-time.After(req.PolitenessDelay):
			case <-ctx.Done():
				log.add("Context cancelled, stopping content extraction")
				return summarized, errors
			}
		}

		if article.Link == "" {
			log.add(fmt.Sprintf("No link available for %q", article.Title))
			article.Summary = fmt.Sprintf("Summary unavailable: No link provided for '%s'", article.Title)
			continue
		}

		content := p.extractor.ExtractContent(ctx, article.Link, req.MaxContentLength)

		if analyzer.IsExtractionFailure(content) || len(content) <= 100 {
			log.add(fmt.Sprintf("Content extraction insufficient for %s", article.Link))
			article.Summary = fmt.Sprintf("Summary unavailable: Content could not be extracted from %s", article.Source)
			errors++
			continue
		}

		article.Summary = analyzer.Summarize(content, article.Title, req.MaxSummarySents)
		summarized++
		log.add(fmt.Sprintf("Summarized %q (%d chars)", article.Title, len(article.Summary)))
	}

	return summarized, errors
}

func (p *Processor) processingInfo(req Request, report *feed.Report, errorCount int, started time.Time) *ProcessingInfo {
	return &ProcessingInfo{
		SourcesUsed:           report.FeedsProcessed,
		SourceCategories:      req.SourceCategories,
		TimeRangeHours:        req.HoursBack,
		ProcessingTimeSeconds: round3(time.Since(started).Seconds()),
		MinInterestThreshold:  req.InterestThreshold,
		ErrorsEncountered:     errorCount,
	}
}

func summarizeCategory(articles []*Article) string {
	var interesting []*Article
	for _, a := range articles {
		if a.IsInteresting {
			interesting = append(interesting, a)
		}
	}

	if len(interesting) > 0 {
		titles := make([]string, 0, 3)
		for _, a := range interesting[:min(3, len(interesting))] {
			titles = append(titles, a.Title)
		}
		return fmt.Sprintf("%d interesting stories out of %d total. Top stories: %s",
			len(interesting), len(articles), strings.Join(titles, "; "))
	}

	titles := make([]string, 0, 2)
	for _, a := range articles[:min(2, len(articles))] {
		titles = append(titles, a.Title)
	}
	return fmt.Sprintf("%d stories including: %s", len(articles), strings.Join(titles, "; "))
}

func withDefaults(req Request) Request {
	if req.HoursBack <= 0 {
		req.HoursBack = 24
	}
	if req.MaxPerSource <= 0 {
		req.MaxPerSource = 8
	}
	if req.InterestThreshold <= 0 {
		req.InterestThreshold = 0.3
	}
	if req.PolitenessDelay <= 0 {
		req.PolitenessDelay = 500 * time.Millisecond
	}
	if req.MaxContentLength <= 0 {
		req.MaxContentLength = 3000
	}
	if req.MaxSummarySents <= 0 {
		req.MaxSummarySents = 3
	}
	return req
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

type processingLog struct {
	lines []string
}

func newProcessingLog() *processingLog {
	return &processingLog{}
}

func (l *processingLog) add(line string) {
	l.lines = append(l.lines, line)
	slog.Debug(line)
}
