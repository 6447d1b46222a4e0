package analyzer

import (
	"testing"
)

func TestCategorizeKnownTopics(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		category    string
	}{
		{"technology", "New AI software released", "machine learning startup announces app", CategoryTechnology},
		{"politics", "Election results are in", "the president addressed congress about the vote", CategoryPolitics},
		{"business", "Stock market rally continues", "investors see record earnings and revenue growth", CategoryBusiness},
		{"health", "Vaccine trial shows promise", "hospital patients respond to new therapy", CategoryHealth},
		{"sports", "Championship game tonight", "the team and their coach prepare for the tournament", CategorySports},
		{"entertainment", "Netflix announces new series", "the streaming show stars a hollywood actor", CategoryEntertainment},
		{"world news", "War escalates at the border", "international diplomatic crisis deepens", CategoryWorldNews},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, confidence := Categorize(tt.title, tt.description)
			if category != tt.category {
				t.Errorf("Expected category %q, got %q", tt.category, category)
			}
			if confidence <= 0 || confidence > 1.0 {
				t.Errorf("Confidence out of range: %f", confidence)
			}
		})
	}
}

func TestCategorizeAlwaysInEnumeration(t *testing.T) {
	valid := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		valid[c] = true
	}

	inputs := [][2]string{
		{"", ""},
		{"random words about nothing in particular", ""},
		{"AI election stock research", "vaccine game movie war"},
		{"Breaking news", "something happened"},
	}

	for _, input := range inputs {
		category, confidence := Categorize(input[0], input[1])
		if !valid[category] {
			t.Errorf("Category %q not in fixed enumeration", category)
		}
		if confidence < 0 || confidence > 1.0 {
			t.Errorf("Confidence out of range: %f", confidence)
		}
	}
}

func TestCategorizeEmptyInput(t *testing.T) {
	category, confidence := Categorize("", "")
	if category != CategoryOther {
		t.Errorf("Expected 'Other' for empty input, got %q", category)
	}
	if confidence != 0.1 {
		t.Errorf("Expected confidence 0.1, got %f", confidence)
	}

	category, confidence = Categorize("   ", "  \t ")
	if category != CategoryOther || confidence != 0.1 {
		t.Errorf("Expected ('Other', 0.1) for whitespace input, got (%q, %f)", category, confidence)
	}
}

func TestCategorizeNoMatch(t *testing.T) {
	category, confidence := Categorize("zzz qqq", "xxx yyy")
	if category != CategoryOther {
		t.Errorf("Expected 'Other' when no keyword matches, got %q", category)
	}
	if confidence != 0.1 {
		t.Errorf("Expected confidence 0.1, got %f", confidence)
	}
}

func TestCategorizeLongKeywordsWeighHigher(t *testing.T) {
	// "machine learning" scores 2 for Technology; "election" scores 1
	// for Politics, so Technology must win.
	category, _ := Categorize("machine learning and the election", "")
	if category != CategoryTechnology {
		t.Errorf("Expected Technology to win on keyword weight, got %q", category)
	}
}

func TestCategorizeTieBreakDeterministic(t *testing.T) {
	// "tech" (Technology) and "election" (Politics) both score 1;
	// Technology comes first in the priority list.
	for i := 0; i < 5; i++ {
		category, _ := Categorize("tech election", "")
		if category != CategoryTechnology {
			t.Fatalf("Expected tie to resolve to Technology, got %q", category)
		}
	}
}

func TestCategorizeIdempotent(t *testing.T) {
	title := "New AI breakthrough announced"
	desc := "researchers reveal significant discovery"

	c1, conf1 := Categorize(title, desc)
	c2, conf2 := Categorize(title, desc)
	if c1 != c2 || conf1 != conf2 {
		t.Errorf("Categorize not idempotent: (%q, %f) vs (%q, %f)", c1, conf1, c2, conf2)
	}
}

func TestCategorizeConfidenceSaturates(t *testing.T) {
	_, confidence := Categorize(
		"ai software app digital cyber data computer internet",
		"blockchain cryptocurrency startup innovation robot automation",
	)
	if confidence != 1.0 {
		t.Errorf("Expected saturated confidence 1.0, got %f", confidence)
	}
}

func TestIsInterestingEmptyInput(t *testing.T) {
	interesting, confidence := IsInteresting("", "")
	if interesting {
		t.Error("Empty text must not be interesting")
	}
	if confidence != 0.0 {
		t.Errorf("Expected confidence 0.0, got %f", confidence)
	}
}

func TestIsInterestingPlainText(t *testing.T) {
	interesting, confidence := IsInteresting("quiet tuesday", "nothing much happened today")
	if interesting {
		t.Error("Mundane text must not be interesting")
	}
	if confidence < 0 || confidence > 1.0 {
		t.Errorf("Confidence out of range: %f", confidence)
	}
}

func TestIsInterestingKeywordHit(t *testing.T) {
	interesting, confidence := IsInteresting("Major breakthrough revealed", "")
	if !interesting {
		t.Error("Expected keyword hits to be interesting")
	}
	if confidence <= 0 {
		t.Errorf("Expected positive confidence, got %f", confidence)
	}
}

func TestIsInterestingBonusScoring(t *testing.T) {
	// Base hits (historic, first, billion) + currency bonus push the
	// normalized confidence well past 0.6.
	interesting, confidence := IsInteresting("historic first announcement, $2 billion deal", "")
	if !interesting {
		t.Error("Expected article to be interesting")
	}
	if confidence < 0.6 {
		t.Errorf("Expected confidence >= 0.6, got %f", confidence)
	}
}

func TestIsInterestingUrgencyBonus(t *testing.T) {
	_, plain := IsInteresting("significant development", "")
	_, urgent := IsInteresting("breaking: significant development", "")
	if urgent <= plain {
		t.Errorf("Expected urgency token to raise confidence: %f vs %f", urgent, plain)
	}
}

func TestIsInterestingIdempotent(t *testing.T) {
	title := "Breaking: historic $3 billion merger announced"
	i1, c1 := IsInteresting(title, "")
	i2, c2 := IsInteresting(title, "")
	if i1 != i2 || c1 != c2 {
		t.Errorf("IsInteresting not idempotent: (%v, %f) vs (%v, %f)", i1, c1, i2, c2)
	}
}
