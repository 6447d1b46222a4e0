package analyzer

import (
	"cmp"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const (
	// Content shorter than this gets a one-line fallback summary.
	minSummarizableLength = 50
	// Sentence fragments at or under this length are discarded.
	minSentenceLength = 20
	// Only the leading sentences are scored for selection.
	scoredSentenceWindow = 10
)

var sentenceSplitExpr = regexp.MustCompile(`[.!?]+`)

// Summarize builds an extractive summary: sentences are scored by position
// and key-term density, the best maxSentences are selected and re-emitted
// in original document order.
func Summarize(content, title string, maxSentences int) string {
	title = cmp.Or(title, "Untitled Article")

	if len(content) < minSummarizableLength {
		return fmt.Sprintf("Brief article: %s", title)
	}

	var sentences []string
	for _, fragment := range sentenceSplitExpr.Split(content, -1) {
		fragment = strings.TrimSpace(fragment)
		if len(fragment) > minSentenceLength {
			sentences = append(sentences, fragment)
		}
	}

	if len(sentences) <= maxSentences {
		return strings.TrimSpace(strings.Join(sentences, ". ")) + "."
	}

	window := sentences
	if len(window) > scoredSentenceWindow {
		window = window[:scoredSentenceWindow]
	}

	type scored struct {
		index int
		score float64
	}

	ranked := make([]scored, 0, len(window))
	for i, sentence := range window {
		score := float64(scoredSentenceWindow-i) * 0.1
		lower := strings.ToLower(sentence)
		for _, term := range summaryKeyTerms {
			if strings.Contains(lower, term) {
				score += 0.3
			}
		}
		ranked = append(ranked, scored{index: i, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	selected := make([]bool, len(window))
	for _, s := range ranked[:maxSentences] {
		selected[s.index] = true
	}

	// Original document order, not score order
	picked := make([]string, 0, maxSentences)
	for i, sentence := range window {
		if selected[i] {
			picked = append(picked, sentence)
		}
	}

	summary := strings.TrimSpace(strings.Join(picked, ". "))
	if !strings.HasSuffix(summary, ".") {
		summary += "."
	}

	return summary
}
