package analyzer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newPageServer(t *testing.T, html string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, html)
	}))
}

func TestExtractContentFromArticleTag(t *testing.T) {
	body := strings.Repeat("The committee announced the results of the review today. ", 5)
	html := fmt.Sprintf(`<html><head><script>var x = 1;</script></head>
<body><nav>Navigation junk</nav><article>%s</article><footer>Footer junk</footer></body></html>`, body)

	server := newPageServer(t, html)
	defer server.Close()

	extractor := NewExtractor(server.Client(), "test-agent", 5*time.Second)
	content := extractor.ExtractContent(context.Background(), server.URL, 3000)

	if IsExtractionFailure(content) {
		t.Fatalf("Expected success, got failure: %q", content)
	}
	if !strings.Contains(content, "committee announced") {
		t.Errorf("Expected article text, got %q", content)
	}
	if strings.Contains(content, "Navigation junk") || strings.Contains(content, "Footer junk") {
		t.Errorf("Non-content tags must be stripped, got %q", content)
	}
	if strings.Contains(content, "var x") {
		t.Errorf("Script content must be stripped, got %q", content)
	}
}

func TestExtractContentClassSelector(t *testing.T) {
	body := strings.Repeat("City officials reported steady progress on the bridge project. ", 4)
	html := fmt.Sprintf(`<html><body><div class="entry-content">%s</div></body></html>`, body)

	server := newPageServer(t, html)
	defer server.Close()

	extractor := NewExtractor(server.Client(), "test-agent", 5*time.Second)
	content := extractor.ExtractContent(context.Background(), server.URL, 3000)

	if !strings.Contains(content, "officials reported steady progress") {
		t.Errorf("Expected entry-content text, got %q", content)
	}
}

func TestExtractContentParagraphFallback(t *testing.T) {
	html := `<html><body>
<div class="sidebar">short</div>
<p>` + strings.Repeat("Researchers described the finding as an important step forward. ", 3) + `</p>
<p>` + strings.Repeat("The full study will be published later this year. ", 3) + `</p>
</body></html>`

	server := newPageServer(t, html)
	defer server.Close()

	extractor := NewExtractor(server.Client(), "test-agent", 5*time.Second)
	content := extractor.ExtractContent(context.Background(), server.URL, 3000)

	if IsExtractionFailure(content) {
		t.Fatalf("Expected success, got failure: %q", content)
	}
	if !strings.Contains(content, "Researchers described the finding") {
		t.Errorf("Expected paragraph fallback text, got %q", content)
	}
	if !strings.Contains(content, "published later this year") {
		t.Errorf("Expected all paragraphs joined, got %q", content)
	}
}

func TestExtractContentCleansMarkersAndWhitespace(t *testing.T) {
	body := "Officials    confirmed[edit] the deal was    signed. " + strings.Repeat("More detail follows in the official record of proceedings. ", 3)
	html := fmt.Sprintf(`<html><body><article>%s</article></body></html>`, body)

	server := newPageServer(t, html)
	defer server.Close()

	extractor := NewExtractor(server.Client(), "test-agent", 5*time.Second)
	content := extractor.ExtractContent(context.Background(), server.URL, 3000)

	if strings.Contains(content, "[edit]") {
		t.Errorf("Bracketed markers must be stripped, got %q", content)
	}
	if strings.Contains(content, "  ") {
		t.Errorf("Whitespace runs must be collapsed, got %q", content)
	}
}

func TestExtractContentTruncates(t *testing.T) {
	body := strings.Repeat("Sentence padding for truncation checks goes right here. ", 50)
	html := fmt.Sprintf(`<html><body><article>%s</article></body></html>`, body)

	server := newPageServer(t, html)
	defer server.Close()

	extractor := NewExtractor(server.Client(), "test-agent", 5*time.Second)
	content := extractor.ExtractContent(context.Background(), server.URL, 200)

	if len(content) > 200 {
		t.Errorf("Expected content truncated to 200 characters, got %d", len(content))
	}
}

func TestExtractContentUnreachableURL(t *testing.T) {
	extractor := NewExtractor(http.DefaultClient, "test-agent", 1*time.Second)
	content := extractor.ExtractContent(context.Background(), "http://127.0.0.1:1/article", 3000)

	if !strings.HasPrefix(content, ExtractionFailedPrefix) {
		t.Errorf("Expected sentinel prefix on failure, got %q", content)
	}
	if !IsExtractionFailure(content) {
		t.Error("IsExtractionFailure must detect the sentinel")
	}
}

func TestExtractContentHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	extractor := NewExtractor(server.Client(), "test-agent", 5*time.Second)
	content := extractor.ExtractContent(context.Background(), server.URL, 3000)

	if !IsExtractionFailure(content) {
		t.Errorf("Expected extraction failure for HTTP 404, got %q", content)
	}
}
