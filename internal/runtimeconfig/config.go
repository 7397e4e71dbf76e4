package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrContentDirRequired         = errors.New("artikel config: content directory is required")
	ErrDocumentNameRequired       = errors.New("artikel config: document file name is required")
	ErrSiteBaseURLRequired        = errors.New("artikel config: site base URL is required")
	ErrSearchLimitInvalid         = errors.New("artikel config: search limit must be positive")
	ErrRelatedLimitInvalid        = errors.New("artikel config: related posts limit must be positive")
	ErrTOCLevelsInvalid           = errors.New("artikel config: toc levels must satisfy 1 <= min <= max <= 6")
	ErrWatchRequiresSnapshotCache = errors.New("artikel config: content watching requires the snapshot cache")
	ErrLoggingProviderUnknown     = errors.New("artikel config: logging provider is invalid")
	ErrLoggingLevelInvalid        = errors.New("artikel config: logging level is invalid")
	ErrLoggingFormatInvalid       = errors.New("artikel config: logging format is invalid")
	ErrHTTPAddrRequired           = errors.New("artikel config: http listen address is required")
	ErrFeedItemsInvalid           = errors.New("artikel config: feed items must be positive")
)

// Config aggregates every knob of the article services.
type Config struct {
	Content   ContentConfig     `yaml:"content"`
	Site      SiteConfig        `yaml:"site"`
	Search    SearchConfig      `yaml:"search"`
	TOC       TOCConfig         `yaml:"toc"`
	Related   RelatedConfig     `yaml:"related"`
	Redirects map[string]string `yaml:"redirects"`
	HTTP      HTTPConfig        `yaml:"http"`
	Logging   LoggingConfig     `yaml:"logging"`
}

// ContentConfig locates the on-disk content store.
type ContentConfig struct {
	// Dir holds one sub-directory per category, each holding post folders.
	Dir string `yaml:"dir"`
	// DocumentName is the file inside a post folder carrying the article.
	DocumentName string `yaml:"document_name"`
	// AuthorsDir holds one JSON profile per author.
	AuthorsDir string `yaml:"authors_dir"`
	// SnapshotCache keeps the last parsed corpus and reuses it while the
	// content fingerprint is unchanged.
	SnapshotCache bool `yaml:"snapshot_cache"`
	// Watch drops the snapshot as soon as files change on disk.
	Watch         bool          `yaml:"watch"`
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// SiteConfig describes the public site used for canonical and asset URLs.
type SiteConfig struct {
	BaseURL      string `yaml:"base_url"`
	AssetsPrefix string `yaml:"assets_prefix"`
	// Title and Description head the RSS and Atom feeds.
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	// FeedItems caps the entries listed in each feed.
	FeedItems int `yaml:"feed_items"`
}

type SearchConfig struct {
	Limit int `yaml:"limit"`
}

// TOCConfig bounds the heading levels included in article outlines.
type TOCConfig struct {
	MinLevel int `yaml:"min_level"`
	MaxLevel int `yaml:"max_level"`
}

type RelatedConfig struct {
	Limit int `yaml:"limit"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig selects the logger provider. Provider is console or gologger.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns the settings the site ran with before configuration
// files existed.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Dir:           "content/posts",
			DocumentName:  "index.mdx",
			AuthorsDir:    "content/authors",
			SnapshotCache: true,
			WatchDebounce: 250 * time.Millisecond,
		},
		Site: SiteConfig{
			BaseURL:      "https://restatolahdata.id",
			AssetsPrefix: "/posts",
			Title:        "Restat Olah Data",
			Description:  "Artikel statistik, metode penelitian dan pengolahan data",
			FeedItems:    20,
		},
		Search:    SearchConfig{Limit: 10},
		TOC:       TOCConfig{MinLevel: 1, MaxLevel: 1},
		Related:   RelatedConfig{Limit: 6},
		Redirects: map[string]string{},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate reports the first inconsistent setting.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if strings.TrimSpace(cfg.Content.DocumentName) == "" {
		return ErrDocumentNameRequired
	}
	if cfg.Content.Watch && !cfg.Content.SnapshotCache {
		return ErrWatchRequiresSnapshotCache
	}
	if strings.TrimSpace(cfg.Site.BaseURL) == "" {
		return ErrSiteBaseURLRequired
	}
	if cfg.Site.FeedItems <= 0 {
		return fmt.Errorf("%w: %d", ErrFeedItemsInvalid, cfg.Site.FeedItems)
	}
	if cfg.Search.Limit <= 0 {
		return fmt.Errorf("%w: %d", ErrSearchLimitInvalid, cfg.Search.Limit)
	}
	if cfg.Related.Limit <= 0 {
		return fmt.Errorf("%w: %d", ErrRelatedLimitInvalid, cfg.Related.Limit)
	}
	if cfg.TOC.MinLevel < 1 || cfg.TOC.MaxLevel > 6 || cfg.TOC.MinLevel > cfg.TOC.MaxLevel {
		return fmt.Errorf("%w: %d..%d", ErrTOCLevelsInvalid, cfg.TOC.MinLevel, cfg.TOC.MaxLevel)
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}

	provider := normalize(cfg.Logging.Provider)
	if provider != "" && provider != "console" && provider != "gologger" {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := normalize(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := normalize(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch format {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
