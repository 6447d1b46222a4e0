package analyzer

// Category is the closed set of article categories. CategoryOther is the
// fallback: every article receives exactly one category.
const (
	CategoryTechnology    = "Technology"
	CategoryPolitics      = "Politics"
	CategoryBusiness      = "Business"
	CategoryScience       = "Science"
	CategoryHealth        = "Health"
	CategorySports        = "Sports"
	CategoryEntertainment = "Entertainment"
	CategoryWorldNews     = "World News"
	CategoryOther         = "Other"
)

// categoryKeywords is an ordered priority list: on equal keyword scores the
// earlier category wins, making the tie-break deterministic.
var categoryKeywords = []struct {
	Category string
	Keywords []string
}{
	{CategoryTechnology, []string{
		"ai", "artificial intelligence", "tech", "software", "app", "digital",
		"cyber", "data", "computer", "internet", "blockchain", "cryptocurrency",
		"startup", "innovation", "machine learning", "robot", "automation",
	}},
	{CategoryPolitics, []string{
		"election", "government", "president", "congress", "senate", "political",
		"vote", "policy", "minister", "parliament", "campaign", "democrat",
		"republican", "legislation", "court", "supreme court",
	}},
	{CategoryBusiness, []string{
		"stock", "market", "economy", "finance", "company", "business", "trade",
		"profit", "revenue", "investment", "banking", "merger", "acquisition",
		"earnings", "inflation", "gdp", "unemployment",
	}},
	{CategoryScience, []string{
		"research", "study", "discovery", "scientist", "laboratory", "experiment",
		"breakthrough", "scientific", "medicine", "physics", "chemistry", "biology",
	}},
	{CategoryHealth, []string{
		"health", "medical", "disease", "treatment", "hospital", "doctor",
		"patient", "medicine", "vaccine", "drug", "therapy", "clinical",
		"pandemic", "virus", "bacteria",
	}},
	{CategorySports, []string{
		"game", "match", "team", "player", "championship", "sport", "football",
		"basketball", "soccer", "baseball", "tennis", "golf", "olympics",
		"tournament", "league", "coach",
	}},
	{CategoryEntertainment, []string{
		"movie", "music", "celebrity", "film", "show", "entertainment", "actor",
		"singer", "hollywood", "netflix", "streaming", "concert", "album",
		"theater", "tv", "series",
	}},
	{CategoryWorldNews, []string{
		"war", "conflict", "international", "country", "nation", "global",
		"world", "border", "diplomatic", "treaty", "crisis", "refugee",
		"terrorism", "military", "peace",
	}},
}

// Categories lists every valid category in priority order, fallback last.
var Categories = []string{
	CategoryTechnology,
	CategoryPolitics,
	CategoryBusiness,
	CategoryScience,
	CategoryHealth,
	CategorySports,
	CategoryEntertainment,
	CategoryWorldNews,
	CategoryOther,
}

// High-impact keywords that make articles interesting.
var interestingKeywords = []string{
	"breakthrough", "first", "new", "major", "significant", "historic", "record",
	"crisis", "emergency", "urgent", "breaking", "exclusive", "revealed",
	"billion", "million", "huge", "massive", "dramatic", "shocking", "unprecedented",
	"announced", "launches", "discovers", "confirms", "warns", "alert",
}

var historicFirstPhrases = []string{"first time", "never before", "world's first"}

var currencyTokens = []string{"$", "billion", "million"}

var urgencyTokens = []string{"breaking", "urgent", "alert", "emergency"}

// Terms that mark a sentence as information-dense for summarization.
var summaryKeyTerms = []string{"said", "announced", "reported", "according", "will", "plans", "new", "first"}

// Content-region selectors tried in order of preference during extraction.
var contentSelectors = []string{
	"article",
	".article-content",
	".post-content",
	".entry-content",
	".story-content",
	".article-body",
	"#content",
	".content",
	"main",
}
