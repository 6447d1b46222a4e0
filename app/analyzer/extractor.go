package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	readability "codeberg.org/readeck/go-readability"
	"github.com/PuerkitoBio/goquery"
)

// ExtractionFailedPrefix marks the sentinel string returned when content
// extraction fails. Callers distinguish failure from legitimately short
// content by checking for this prefix.
const ExtractionFailedPrefix = "Content extraction failed:"

// Content shorter than this triggers the next fallback strategy.
const minContentLength = 100

var (
	whitespaceExpr  = regexp.MustCompile(`\s+`)
	editMarkerExpr  = regexp.MustCompile(`\[[^\]]*\]`)
	strippedTagList = "script,style,nav,header,footer,aside,iframe,noscript"
)

// Extractor pulls readable article text out of arbitrary HTML pages using
// ordered fallback strategies: known content-region selectors, then all
// paragraph text, then readability as a last resort.
type Extractor struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

func NewExtractor(httpClient *http.Client, userAgent string, timeout time.Duration) *Extractor {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Extractor{
		httpClient: httpClient,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// ExtractContent fetches url and returns up to maxLength characters of
// readable text. It never returns an error: failures yield a sentinel
// string starting with ExtractionFailedPrefix.
func (e *Extractor) ExtractContent(ctx context.Context, url string, maxLength int) string {
	data, err := e.fetchPage(ctx, url)
	if err != nil {
		return fmt.Sprintf("%s %s", ExtractionFailedPrefix, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Sprintf("%s %s", ExtractionFailedPrefix, err)
	}

	doc.Find(strippedTagList).Remove()

	content := ""
	for _, selector := range contentSelectors {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection.First().Text()
			break
		}
	}

	// Fallback: all paragraph text
	if len(content) < minContentLength {
		var paragraphs []string
		doc.Find("p").Each(func(_ int, p *goquery.Selection) {
			if text := strings.TrimSpace(p.Text()); text != "" {
				paragraphs = append(paragraphs, text)
			}
		})
		if joined := strings.Join(paragraphs, " "); len(joined) > len(content) {
			content = joined
		}
	}

	// Last resort: readability over the raw document
	if len(content) < minContentLength {
		if article, err := readability.FromReader(bytes.NewReader(data), nil); err == nil {
			if text := article.TextContent; len(text) > len(content) {
				content = text
			}
		}
	}

	content = whitespaceExpr.ReplaceAllString(content, " ")
	content = editMarkerExpr.ReplaceAllString(content, "")
	content = strings.TrimSpace(content)

	if len(content) > maxLength {
		content = content[:maxLength]
	}

	slog.Debug("Content extracted", "url", url, "length", len(content))

	return content
}

// IsExtractionFailure reports whether text is an extraction sentinel
// rather than article content.
func IsExtractionFailure(text string) bool {
	return strings.HasPrefix(text, ExtractionFailedPrefix)
}

func (e *Extractor) fetchPage(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
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
