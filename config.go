package portfolio

import "github.com/goliatone/go-portfolio/internal/runtimeconfig"

// Config aggregates every runtime setting for the module.
type Config = runtimeconfig.Config

// SiteConfig identifies the site in rendered pages and feeds.
type SiteConfig = runtimeconfig.SiteConfig

// ContentConfig locates the markdown collections.
type ContentConfig = runtimeconfig.ContentConfig

// MarkdownConfig captures parser behaviour.
type MarkdownConfig = runtimeconfig.MarkdownConfig

// GeneratorConfig captures behaviour for the static site generator.
type GeneratorConfig = runtimeconfig.GeneratorConfig

// ServerConfig controls the preview server.
type ServerConfig = runtimeconfig.ServerConfig

// ContactConfig controls the contact pipeline.
type ContactConfig = runtimeconfig.ContactConfig

// StorageConfig selects the submission store.
type StorageConfig = runtimeconfig.StorageConfig

// PublishConfig identifies the S3 publish target.
type PublishConfig = runtimeconfig.PublishConfig

// LoggingConfig captures runtime logging options.
type LoggingConfig = runtimeconfig.LoggingConfig

// Features toggles optional functionality.
type Features = runtimeconfig.Features

// DefaultConfig returns opinionated defaults for a local portfolio build.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfigFile reads a YAML config file over the defaults.
func LoadConfigFile(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
