// Package bootstrap initialises a portfolio module for hosts that drive the
// site through command handlers rather than the service APIs directly.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	portfolio "github.com/goliatone/go-portfolio"
	"github.com/goliatone/go-portfolio/commands"
	"github.com/goliatone/go-portfolio/internal/di"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// Options captures the tunable configuration for the site command module.
type Options struct {
	Config    *portfolio.Config
	OutputDir string
	BaseURL   string
	Logger    interfaces.LoggerProvider
	DIOptions []di.Option
	// EnableCommands collects command handlers for CLI execution when true.
	EnableCommands bool
}

// Resources groups the module runtime and optional command collector.
type Resources struct {
	Module    *portfolio.Module
	Collector *CommandCollector
}

// CommandCollector records handlers registered by the DI container so hosts
// can invoke them directly.
type CommandCollector struct {
	handlers []any
}

// RegisterCommand satisfies commands.CommandRegistry.
func (c *CommandCollector) RegisterCommand(handler any) error {
	c.handlers = append(c.handlers, handler)
	return nil
}

// Handlers returns the collected handlers.
func (c *CommandCollector) Handlers() []any {
	if len(c.handlers) == 0 {
		return nil
	}
	out := make([]any, len(c.handlers))
	copy(out, c.handlers)
	return out
}

// BuildModule initialises a portfolio module and, when requested, collects
// command handlers for direct invocation.
func BuildModule(ctx context.Context, opts Options) (*Resources, error) {
	cfg := portfolio.DefaultConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if trimmed := strings.TrimSpace(opts.OutputDir); trimmed != "" {
		cfg.Generator.OutputDir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.BaseURL); trimmed != "" {
		cfg.Site.BaseURL = trimmed
	}

	diOpts := []di.Option{}
	if opts.Logger != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.Logger))
	}
	diOpts = append(diOpts, opts.DIOptions...)

	module, err := portfolio.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise portfolio module: %w", err)
	}

	var collector *CommandCollector
	if opts.EnableCommands {
		collector = &CommandCollector{handlers: make([]any, 0)}
		if _, err := commands.RegisterContainerCommands(ctx, module.Container(), commands.RegistrationOptions{
			Registry:       collector,
			LoggerProvider: opts.Logger,
		}); err != nil {
			return nil, fmt.Errorf("register site commands: %w", err)
		}
	}

	return &Resources{
		Module:    module,
		Collector: collector,
	}, nil
}
