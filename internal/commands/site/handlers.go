package sitecmd

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-portfolio/internal/commands"
	"github.com/goliatone/go-portfolio/internal/generator"
	"github.com/goliatone/go-portfolio/internal/publish"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

var errPublisherRequired = errors.New("sitecmd: publisher is required")

// BuildHandler orchestrates generator builds through the shared command foundation.
type BuildHandler struct {
	inner *commands.Handler[BuildMessage]
}

// NewBuildHandler constructs a handler wired to the provided generator service.
func NewBuildHandler(service generator.Service, logger interfaces.Logger, opts ...commands.HandlerOption[BuildMessage]) *BuildHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg BuildMessage) error {
		if service == nil {
			return generator.ErrServiceDisabled
		}
		result, err := service.Build(ctx, generator.BuildOptions{
			Slugs:  normalizeSlugs(msg.Slugs),
			Force:  msg.Force,
			DryRun: msg.DryRun,
		})
		if msg.ResultCallback != nil && result != nil {
			msg.ResultCallback(result)
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[BuildMessage]{
		commands.WithLogger[BuildMessage](baseLogger),
		commands.WithOperation[BuildMessage]("site.build"),
		commands.WithTelemetry(commands.DefaultTelemetry[BuildMessage](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &BuildHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[BuildMessage].
func (h *BuildHandler) Execute(ctx context.Context, msg BuildMessage) error {
	return h.inner.Execute(ctx, msg)
}

// CleanHandler clears generated artifacts.
type CleanHandler struct {
	inner *commands.Handler[CleanMessage]
}

// NewCleanHandler constructs a handler that wipes the output directory.
func NewCleanHandler(service generator.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CleanMessage]) *CleanHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, _ CleanMessage) error {
		if service == nil {
			return generator.ErrServiceDisabled
		}
		return service.Clean(ctx)
	}

	handlerOpts := []commands.HandlerOption[CleanMessage]{
		commands.WithLogger[CleanMessage](baseLogger),
		commands.WithOperation[CleanMessage]("site.clean"),
		commands.WithTelemetry(commands.DefaultTelemetry[CleanMessage](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CleanHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CleanMessage].
func (h *CleanHandler) Execute(ctx context.Context, msg CleanMessage) error {
	return h.inner.Execute(ctx, msg)
}

// PublishHandler uploads the built site.
type PublishHandler struct {
	inner *commands.Handler[PublishMessage]
}

// NewPublishHandler constructs a handler wired to the provided publisher.
func NewPublishHandler(publisher publish.Publisher, logger interfaces.Logger, opts ...commands.HandlerOption[PublishMessage]) *PublishHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg PublishMessage) error {
		if publisher == nil {
			return errPublisherRequired
		}
		result, err := publisher.Publish(ctx, strings.TrimSpace(msg.Dir))
		if msg.ResultCallback != nil && result != nil {
			msg.ResultCallback(result)
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[PublishMessage]{
		commands.WithLogger[PublishMessage](baseLogger),
		commands.WithOperation[PublishMessage]("site.publish"),
		// Publishing uploads every artifact; the default 30s is too tight.
		commands.WithTimeout[PublishMessage](0),
		commands.WithTelemetry(commands.DefaultTelemetry[PublishMessage](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[PublishMessage].
func (h *PublishHandler) Execute(ctx context.Context, msg PublishMessage) error {
	return h.inner.Execute(ctx, msg)
}

func normalizeSlugs(slugs []string) []string {
	if len(slugs) == 0 {
		return nil
	}
	out := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if trimmed := strings.TrimSpace(slug); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
