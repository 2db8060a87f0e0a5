package contentcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-portfolio/internal/commands"
	contentsvc "github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

var errContentRequired = errors.New("contentcmd: content service is required")

// CheckHandler validates every markdown file in the content directory.
type CheckHandler struct {
	inner *commands.Handler[CheckMessage]
}

// NewCheckHandler constructs a handler wired to the provided content service.
func NewCheckHandler(service contentsvc.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CheckMessage]) *CheckHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg CheckMessage) error {
		if service == nil {
			return errContentRequired
		}
		library, err := service.Reload(ctx)
		if err != nil {
			return err
		}
		if msg.ResultCallback != nil {
			msg.ResultCallback(CheckResult{
				Posts:     len(library.Posts()),
				Projects:  len(library.Projects()),
				Work:      len(library.Work()),
				Education: len(library.Education()),
			})
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CheckMessage]{
		commands.WithLogger[CheckMessage](baseLogger),
		commands.WithOperation[CheckMessage]("content.check"),
		commands.WithTelemetry(commands.DefaultTelemetry[CheckMessage](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CheckHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CheckMessage].
func (h *CheckHandler) Execute(ctx context.Context, msg CheckMessage) error {
	return h.inner.Execute(ctx, msg)
}
