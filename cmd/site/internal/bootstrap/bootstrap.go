// Package bootstrap builds portfolio modules for the site CLIs: config file
// loading, .env support, environment overrides and logger construction.
package bootstrap

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	portfolio "github.com/goliatone/go-portfolio"
	"github.com/goliatone/go-portfolio/internal/di"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// Environment variables honoured by every site CLI.
const (
	EnvConfigPath = "PORTFOLIO_CONFIG"
	EnvBaseURL    = "PORTFOLIO_BASE_URL"
	EnvOutputDir  = "PORTFOLIO_OUTPUT_DIR"
	EnvContentDir = "PORTFOLIO_CONTENT_DIR"
	EnvAddr       = "PORTFOLIO_ADDR"
	EnvBucket     = "PORTFOLIO_PUBLISH_BUCKET"
)

// Options captures configuration for site CLI bootstraps. Flag values take
// precedence over environment variables, which take precedence over the
// config file.
type Options struct {
	ConfigPath string
	BaseURL    string
	OutputDir  string
	ContentDir string
	Addr       string

	LoggerProvider interfaces.LoggerProvider
	DIOptions      []di.Option
}

// Module wraps the portfolio module with the resolved configuration.
type Module struct {
	Module *portfolio.Module
	Config portfolio.Config
}

// LoadConfig resolves the runtime configuration from defaults, the optional
// config file and environment variables. A .env file in the working directory
// is loaded first when present.
func LoadConfig(opts Options) (portfolio.Config, error) {
	// Best effort; a missing .env file is not an error.
	_ = godotenv.Load()

	path := strings.TrimSpace(opts.ConfigPath)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}

	cfg := portfolio.DefaultConfig()
	if path != "" {
		loaded, err := portfolio.LoadConfigFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	applyEnv(&cfg)
	applyOverrides(&cfg, opts)
	return cfg, nil
}

// BuildModule resolves configuration and constructs a portfolio module.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}
	diOpts = append(diOpts, opts.DIOptions...)

	module, err := portfolio.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise portfolio module: %w", err)
	}

	return &Module{Module: module, Config: cfg}, nil
}

func applyEnv(cfg *portfolio.Config) {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		cfg.Site.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvOutputDir)); v != "" {
		cfg.Generator.OutputDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvContentDir)); v != "" {
		cfg.Content.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		cfg.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBucket)); v != "" {
		cfg.Publish.Bucket = v
	}
}

func applyOverrides(cfg *portfolio.Config, opts Options) {
	if v := strings.TrimSpace(opts.BaseURL); v != "" {
		cfg.Site.BaseURL = v
	}
	if v := strings.TrimSpace(opts.OutputDir); v != "" {
		cfg.Generator.OutputDir = v
	}
	if v := strings.TrimSpace(opts.ContentDir); v != "" {
		cfg.Content.Dir = v
	}
	if v := strings.TrimSpace(opts.Addr); v != "" {
		cfg.Server.Addr = v
	}
}

// SplitList parses a comma separated flag value into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
