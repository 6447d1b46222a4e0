package analyzer

import (
	"strings"
)

// confidenceNorm saturates confidence at three keyword-length-units of
// evidence.
const confidenceNorm = 3.0

// Categorize assigns one of the fixed categories to a title/description
// pair. Each category is scored by summing the word counts of its matching
// keywords, so longer keywords weigh more. Ties resolve to the earlier
// category in the priority list. No match yields ("Other", 0.1).
func Categorize(title, description string) (string, float64) {
	text := strings.ToLower(title + " " + description)

	if strings.TrimSpace(text) == "" {
		return CategoryOther, 0.1
	}

	bestCategory := ""
	bestScore := 0

	for _, entry := range categoryKeywords {
		score := 0
		for _, keyword := range entry.Keywords {
			if strings.Contains(text, keyword) {
				score += len(strings.Fields(keyword))
			}
		}
		if score > bestScore {
			bestCategory = entry.Category
			bestScore = score
		}
	}

	if bestScore == 0 {
		return CategoryOther, 0.1
	}

	confidence := float64(bestScore) / confidenceNorm
	if confidence > 1.0 {
		confidence = 1.0
	}

	return bestCategory, confidence
}

// IsInteresting scores how newsworthy a title/description pair looks.
// Base score counts interesting-keyword hits; bonus tiers add weight for
// historic-first phrasing, currency/scale tokens, and urgency tokens.
// Empty text is never interesting.
func IsInteresting(title, description string) (bool, float64) {
	text := strings.ToLower(title + " " + description)

	if strings.TrimSpace(text) == "" {
		return false, 0.0
	}

	score := 0.0
	for _, keyword := range interestingKeywords {
		if strings.Contains(text, keyword) {
			score += 1
		}
	}

	if containsAny(text, historicFirstPhrases) {
		score += 2
	}
	if containsAny(text, currencyTokens) {
		score += 1
	}
	if containsAny(text, urgencyTokens) {
		score += 1.5
	}

	confidence := score / confidenceNorm
	if confidence > 1.0 {
		confidence = 1.0
	}

	return score >= 1, confidence
}

func containsAny(text string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}
