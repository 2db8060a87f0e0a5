// Package contact runs submissions through the honeypot, validation,
// cooldown, persistence and forwarding pipeline.
package contact

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-portfolio/contact"
	"github.com/goliatone/go-portfolio/internal/identity"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

var errRepositoryRequired = errors.New("contact: submission repository is required")

// Service accepts contact form submissions.
type Service interface {
	// Submit runs the full pipeline. A dropped honeypot submission returns
	// a result with Dropped set and no error.
	Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error)
	// Submissions lists stored submissions, oldest first.
	Submissions(ctx context.Context) ([]*contact.Submission, error)
}

// SubmitInput carries the raw form fields plus transport metadata.
type SubmitInput struct {
	Name       string
	Email      string
	Subject    string
	Message    string
	Honeypot   string
	RemoteAddr string
}

// SubmitResult reports what the pipeline did with a submission.
type SubmitResult struct {
	Submission *contact.Submission
	Dropped    bool
	Forwarded  bool
}

// Config controls pipeline behavior.
type Config struct {
	// Cooldown is the per-client resubmission window. Zero means DefaultCooldown.
	Cooldown time.Duration
}

// Dependencies carries the collaborators Service needs.
type Dependencies struct {
	Repository SubmissionRepository
	Forwarder  Forwarder
	Logger     interfaces.LoggerProvider
	Now        func() time.Time
}

type service struct {
	repo      SubmissionRepository
	forwarder Forwarder
	cooldown  *cooldownTracker
	logger    interfaces.Logger
	now       func() time.Time
}

// NewService wires the submission pipeline.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	if deps.Repository == nil {
		return nil, errRepositoryRequired
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:      deps.Repository,
		forwarder: deps.Forwarder,
		cooldown:  newCooldownTracker(cfg.Cooldown),
		logger:    logging.ContactLogger(deps.Logger),
		now:       now,
	}, nil
}

func (s *service) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Bots fill every field. Accept silently so they move on, keep nothing.
	if input.Honeypot != "" {
		s.logger.Debug("honeypot tripped, dropping submission", "remote_addr", input.RemoteAddr)
		return &SubmitResult{Dropped: true}, nil
	}

	submission := &contact.Submission{
		Name:       input.Name,
		Email:      input.Email,
		Subject:    input.Subject,
		Message:    input.Message,
		RemoteAddr: input.RemoteAddr,
	}
	if err := submission.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	key := cooldownKey(submission.Email, submission.RemoteAddr)
	if remaining := s.cooldown.check(key, now); remaining > 0 {
		s.logger.Debug("submission inside cooldown window",
			"retry_after", remaining.Round(time.Second).String())
		return nil, &contact.CooldownActiveError{RetryAfter: remaining}
	}

	submission.ReceivedAt = now
	submission.ID = identity.SubmissionUUID(submission.Email, now.Format(time.RFC3339Nano))

	stored, err := s.repo.Create(ctx, submission)
	if err != nil {
		return nil, fmt.Errorf("store submission: %w", err)
	}
	s.cooldown.mark(key, now)

	result := &SubmitResult{Submission: stored}
	s.logger.Info("submission stored",
		"submission_id", stored.ID.String(),
		"email", stored.NormalizedEmail())

	if s.forwarder == nil {
		return result, nil
	}

	if err := s.forwarder.Forward(ctx, stored); err != nil {
		s.logger.Error("forwarding submission failed",
			"submission_id", stored.ID.String(), "error", err)
		return result, err
	}

	forwardedAt := s.now().UTC()
	stored.ForwardedAt = &forwardedAt
	if updated, err := s.repo.Update(ctx, stored); err != nil {
		// The message is already delivered; losing the timestamp is tolerable.
		s.logger.Warn("recording forward timestamp failed",
			"submission_id", stored.ID.String(), "error", err)
	} else {
		result.Submission = updated
	}
	result.Forwarded = true

	return result, nil
}

func (s *service) Submissions(ctx context.Context) ([]*contact.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}
