package cfg

type Cfg struct {
	// Storage configuration
	DBPath string

	// Application configuration
	Port             string
	SourcesFile      string
	APIAccessKey     string
	DigestCron       string
	DigestSources    string
	HoursBack        int
	MaxPerSource     int
	InterestMin      float64
	PolitenessDelay  int // milliseconds between article content fetches
	FetchTimeout     int // seconds, per feed/article HTTP request
	MaxContentLength int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
