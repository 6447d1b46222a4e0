package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage configuration
	DBPath string `long:"db-path" env:"DB_PATH" default:"./news-digest.db" description:"Path to the SQLite database file"`

	// Application configuration
	Port          string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	SourcesFile   string `long:"sources-file" env:"SOURCES_FILE" description:"Optional YAML file overriding the built-in news source table"`
	APIAccessKey  string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	DigestCron    string `long:"digest-cron" env:"DIGEST_CRON" description:"Cron expression for scheduled digest runs (empty disables scheduling)"`
	DigestSources string `long:"digest-sources" env:"DIGEST_SOURCES" default:"general,technology,business" description:"Comma-separated source categories for scheduled digests"`
	HoursBack     int    `long:"hours-back" env:"HOURS_BACK" default:"24" description:"Default recency window for feed items in hours"`
	MaxPerSource  int    `long:"max-per-source" env:"MAX_PER_SOURCE" default:"8" description:"Default maximum articles fetched per feed"`

	InterestMin      float64 `long:"interest-threshold" env:"INTEREST_THRESHOLD" default:"0.3" description:"Minimum interest confidence for content extraction"`
	PolitenessDelay  int     `long:"politeness-delay" env:"POLITENESS_DELAY" default:"500" description:"Delay between article content fetches in milliseconds"`
	FetchTimeout     int     `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"15" description:"HTTP timeout for feed and article fetches in seconds"`
	MaxContentLength int     `long:"max-content-length" env:"MAX_CONTENT_LENGTH" default:"3000" description:"Maximum extracted article content length in characters"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:           raw.DBPath,
		Port:             raw.Port,
		SourcesFile:      raw.SourcesFile,
		APIAccessKey:     raw.APIAccessKey,
		DigestCron:       raw.DigestCron,
		DigestSources:    raw.DigestSources,
		HoursBack:        raw.HoursBack,
		MaxPerSource:     raw.MaxPerSource,
		InterestMin:      raw.InterestMin,
		PolitenessDelay:  raw.PolitenessDelay,
		FetchTimeout:     raw.FetchTimeout,
		MaxContentLength: raw.MaxContentLength,
		UserAgent:        raw.UserAgent,
		Timezone:         raw.Timezone,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
