// Package commands exposes the portfolio command handlers to hosts: site
// builds, content checks, contact submissions and publishing, registered
// against go-command registries and dispatchers.
package commands

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	intcmd "github.com/goliatone/go-portfolio/internal/commands"
	contactcmd "github.com/goliatone/go-portfolio/internal/commands/contact"
	contentcmd "github.com/goliatone/go-portfolio/internal/commands/content"
	sitecmd "github.com/goliatone/go-portfolio/internal/commands/site"
	"github.com/goliatone/go-portfolio/internal/di"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// CommandRegistry records command handlers so hosts can expose them via CLI.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
}

// RegistrationResult captures the constructed command handlers and any
// dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// RegisterContainerCommands builds the command handlers exposed by the
// provided container and optionally registers them with registry, dispatcher
// and cron integrations. The context feeds lazy container wiring such as the
// S3 publisher.
func RegisterContainerCommands(ctx context.Context, container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := container.Config

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.Logger()
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}

		if opts.CronRegistrar != nil {
			if cronCmd, ok := handler.(command.CronCommand); ok {
				if err := opts.CronRegistrar(cronCmd.CronOptions(), cronCmd.CronHandler()); err != nil {
					errs = errors.Join(errs, err)
				}
			}
		}
	}

	loggerFor := func(module string) interfaces.Logger {
		return intcmd.CommandLogger(provider, module)
	}

	// Site commands.
	generatorSvc, err := container.GeneratorService()
	if err != nil {
		errs = errors.Join(errs, err)
	} else {
		siteLogger := loggerFor("site")
		register(sitecmd.NewBuildHandler(generatorSvc, siteLogger))
		register(sitecmd.NewCleanHandler(generatorSvc, siteLogger))
	}

	// Publish commands.
	if cfg.Features.Publish {
		publisher, err := container.Publisher(ctx)
		if err != nil {
			errs = errors.Join(errs, err)
		} else {
			register(sitecmd.NewPublishHandler(publisher, loggerFor("site")))
		}
	}

	// Content commands.
	if service := container.ContentService(); service != nil {
		register(contentcmd.NewCheckHandler(service, loggerFor("content")))
	}

	// Contact commands.
	if service := container.ContactService(); service != nil {
		register(contactcmd.NewSubmitHandler(service, loggerFor("contact")))
	}

	if errs != nil && len(result.Handlers) == 0 {
		return result, errs
	}

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; ensure services are configured and required features enabled")
	}

	return result, errs
}
