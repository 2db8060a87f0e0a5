// Package runtimeconfig aggregates the runtime settings for the portfolio
// module. Fields intentionally use simple types so host applications and
// YAML files can populate them directly.
package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrContentDirRequired          = errors.New("portfolio config: content directory is required")
	ErrCollectionsRequired         = errors.New("portfolio config: at least one content collection is required")
	ErrGeneratorOutputDirRequired  = errors.New("portfolio config: generator output directory is required")
	ErrGeneratorWorkersInvalid     = errors.New("portfolio config: generator workers must be zero or positive")
	ErrStorageDriverUnknown        = errors.New("portfolio config: storage driver is invalid")
	ErrStorageDSNRequired          = errors.New("portfolio config: storage dsn is required when contact storage is enabled")
	ErrContactEndpointRequired     = errors.New("portfolio config: contact endpoint is required when forwarding is enabled")
	ErrContactCooldownInvalid      = errors.New("portfolio config: contact cooldown must be zero or positive")
	ErrServerDebounceInvalid       = errors.New("portfolio config: server debounce must be zero or positive")
	ErrPublishBucketRequired       = errors.New("portfolio config: publish bucket is required when publishing is enabled")
	ErrCacheTTLInvalid             = errors.New("portfolio config: cache ttl must be zero or positive")
	ErrLoggingLevelInvalid         = errors.New("portfolio config: logging level is invalid")
	ErrLoggingFormatInvalid        = errors.New("portfolio config: logging format is invalid")
	ErrWordsPerMinuteInvalid       = errors.New("portfolio config: words per minute must be zero or positive")
	ErrThemeVariantWithoutTheme    = errors.New("portfolio config: theme variant requires a theme")
)

// Config aggregates every runtime setting for the module.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Content   ContentConfig   `yaml:"content"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Generator GeneratorConfig `yaml:"generator"`
	Server    ServerConfig    `yaml:"server"`
	Contact   ContactConfig   `yaml:"contact"`
	Storage   StorageConfig   `yaml:"storage"`
	Cache     CacheConfig     `yaml:"cache"`
	Publish   PublishConfig   `yaml:"publish"`
	Logging   LoggingConfig   `yaml:"logging"`
	Features  Features        `yaml:"features"`
}

// SiteConfig identifies the site in rendered pages and feeds.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	BaseURL     string `yaml:"base_url"`
	Author      string `yaml:"author"`
	Email       string `yaml:"email"`
	Language    string `yaml:"language"`
}

// ContentConfig locates the markdown collections.
type ContentConfig struct {
	Dir            string   `yaml:"dir"`
	Collections    []string `yaml:"collections"`
	WordsPerMinute int      `yaml:"words_per_minute"`
}

// MarkdownConfig captures parser behaviour.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps"`
	RawHTML    bool     `yaml:"raw_html"`
}

// GeneratorConfig captures behaviour for the static site generator.
type GeneratorConfig struct {
	OutputDir    string `yaml:"output_dir"`
	Workers      int    `yaml:"workers"`
	Incremental  bool   `yaml:"incremental"`
	CleanBuild   bool   `yaml:"clean_build"`
	CopyAssets   bool   `yaml:"copy_assets"`
	AssetsDir    string `yaml:"assets_dir"`
	TemplatesDir string `yaml:"templates_dir"`
	ThemesDir    string `yaml:"themes_dir"`
	Theme        string `yaml:"theme"`
	ThemeVariant string `yaml:"theme_variant"`
}

// ServerConfig controls the preview server.
type ServerConfig struct {
	Addr       string `yaml:"addr"`
	Watch      bool   `yaml:"watch"`
	DebounceMS int    `yaml:"debounce_ms"`
}

// ContactConfig controls the contact pipeline.
type ContactConfig struct {
	Endpoint        string `yaml:"endpoint"`
	CooldownSeconds int    `yaml:"cooldown_seconds"`
	HoneypotField   string `yaml:"honeypot_field"`
}

// StorageConfig selects the submission store.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Debug  bool   `yaml:"debug"`
}

// CacheConfig toggles the repository read-through cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// PublishConfig identifies the S3 publish target.
type PublishConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
	Region string `yaml:"region"`
}

// LoggingConfig captures runtime logging options.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source"`
}

// Features toggles optional functionality.
type Features struct {
	Feeds             bool `yaml:"feeds"`
	Sitemap           bool `yaml:"sitemap"`
	Robots            bool `yaml:"robots"`
	ContactStorage    bool `yaml:"contact_storage"`
	ContactForwarding bool `yaml:"contact_forwarding"`
	Cache             bool `yaml:"cache"`
	Publish           bool `yaml:"publish"`
}

// DefaultConfig returns opinionated defaults for a local portfolio build.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Title:    "Portfolio",
			Language: "en",
		},
		Content: ContentConfig{
			Dir:            "content",
			Collections:    []string{"blog", "projects", "work", "education"},
			WordsPerMinute: 0,
		},
		Markdown: MarkdownConfig{},
		Generator: GeneratorConfig{
			OutputDir:    "public",
			Workers:      0,
			Incremental:  true,
			CleanBuild:   false,
			CopyAssets:   true,
			AssetsDir:    "assets",
			TemplatesDir: "templates",
			ThemesDir:    "themes",
		},
		Server: ServerConfig{
			Addr:       ":8080",
			Watch:      false,
			DebounceMS: 500,
		},
		Contact: ContactConfig{
			CooldownSeconds: 60,
			HoneypotField:   "_gotcha",
		},
		Storage: StorageConfig{
			Driver: "sqlite3",
			DSN:    "file:portfolio.db?_fk=1",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Features: Features{
			Feeds:          true,
			Sitemap:        true,
			Robots:         true,
			ContactStorage: true,
			Cache:          true,
		},
	}
}

// LoadFile reads a YAML config file over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if len(cfg.Content.Collections) == 0 {
		return ErrCollectionsRequired
	}
	if cfg.Content.WordsPerMinute < 0 {
		return ErrWordsPerMinuteInvalid
	}
	if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
		return ErrGeneratorOutputDirRequired
	}
	if cfg.Generator.Workers < 0 {
		return ErrGeneratorWorkersInvalid
	}
	if strings.TrimSpace(cfg.Generator.Theme) == "" && strings.TrimSpace(cfg.Generator.ThemeVariant) != "" {
		return ErrThemeVariantWithoutTheme
	}
	if cfg.Server.DebounceMS < 0 {
		return ErrServerDebounceInvalid
	}
	if cfg.Contact.CooldownSeconds < 0 {
		return ErrContactCooldownInvalid
	}
	if cfg.Features.ContactForwarding && strings.TrimSpace(cfg.Contact.Endpoint) == "" {
		return ErrContactEndpointRequired
	}
	if cfg.Features.ContactStorage {
		driver := strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
		if !isSupportedDriver(driver) {
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	}
	if cfg.Cache.TTL < 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Features.Publish && strings.TrimSpace(cfg.Publish.Bucket) == "" {
		return ErrPublishBucketRequired
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

// CooldownDuration converts the configured cooldown to a duration.
func (cfg Config) CooldownDuration() time.Duration {
	return time.Duration(cfg.Contact.CooldownSeconds) * time.Second
}

// DebounceDuration converts the configured watch debounce to a duration.
func (cfg Config) DebounceDuration() time.Duration {
	return time.Duration(cfg.Server.DebounceMS) * time.Millisecond
}

func isSupportedDriver(driver string) bool {
	switch driver {
	case "sqlite3", "postgres":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
