package contactcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-portfolio/internal/commands"
	contactsvc "github.com/goliatone/go-portfolio/internal/contact"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

var errContactRequired = errors.New("contactcmd: contact service is required")

// SubmitHandler runs submissions through the contact pipeline.
type SubmitHandler struct {
	inner *commands.Handler[SubmitMessage]
}

// NewSubmitHandler constructs a handler wired to the provided contact service.
func NewSubmitHandler(service contactsvc.Service, logger interfaces.Logger, opts ...commands.HandlerOption[SubmitMessage]) *SubmitHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg SubmitMessage) error {
		if service == nil {
			return errContactRequired
		}
		result, err := service.Submit(ctx, contactsvc.SubmitInput{
			Name:       msg.Name,
			Email:      msg.Email,
			Subject:    msg.Subject,
			Message:    msg.Message,
			Honeypot:   msg.Honeypot,
			RemoteAddr: msg.RemoteAddr,
		})
		if msg.ResultCallback != nil && result != nil {
			msg.ResultCallback(result)
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[SubmitMessage]{
		commands.WithLogger[SubmitMessage](baseLogger),
		commands.WithOperation[SubmitMessage]("contact.submit"),
		commands.WithTelemetry(commands.DefaultTelemetry[SubmitMessage](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SubmitHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[SubmitMessage].
func (h *SubmitHandler) Execute(ctx context.Context, msg SubmitMessage) error {
	return h.inner.Execute(ctx, msg)
}
