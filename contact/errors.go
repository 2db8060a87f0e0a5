package contact

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrValidationFailed   = errors.New("contact: submission validation failed")
	ErrCooldownActive     = errors.New("contact: resubmission cooldown active")
	ErrForwardFailed      = errors.New("contact: forwarding submission failed")
	ErrSubmissionNotFound = errors.New("contact: submission not found")
)

// FieldIssue points at a single invalid submission field.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationFailedError carries the per-field issues found in a submission.
type ValidationFailedError struct {
	Issues []FieldIssue
}

func (e *ValidationFailedError) Error() string {
	if e == nil || len(e.Issues) == 0 {
		return ErrValidationFailed.Error()
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("%s: %s", ErrValidationFailed.Error(), strings.Join(parts, "; "))
}

func (e *ValidationFailedError) Unwrap() error {
	return ErrValidationFailed
}

// CooldownActiveError reports a resubmission attempt inside the cooldown window.
type CooldownActiveError struct {
	RetryAfter time.Duration
}

func (e *CooldownActiveError) Error() string {
	if e == nil || e.RetryAfter <= 0 {
		return ErrCooldownActive.Error()
	}
	return fmt.Sprintf("%s: retry in %s", ErrCooldownActive.Error(), e.RetryAfter.Round(time.Second))
}

func (e *CooldownActiveError) Unwrap() error {
	return ErrCooldownActive
}

// ForwardFailedError reports a failed delivery to the hosted forms endpoint.
type ForwardFailedError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *ForwardFailedError) Error() string {
	if e == nil {
		return ErrForwardFailed.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", ErrForwardFailed.Error(), e.Err)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: endpoint returned status %d", ErrForwardFailed.Error(), e.StatusCode)
	}
	return ErrForwardFailed.Error()
}

func (e *ForwardFailedError) Unwrap() error {
	return ErrForwardFailed
}

// SubmissionNotFoundError reports a lookup for a submission the store does not hold.
type SubmissionNotFoundError struct {
	Key string
}

func (e *SubmissionNotFoundError) Error() string {
	if e == nil || strings.TrimSpace(e.Key) == "" {
		return ErrSubmissionNotFound.Error()
	}
	return fmt.Sprintf("%s: %s", ErrSubmissionNotFound.Error(), e.Key)
}

func (e *SubmissionNotFoundError) Unwrap() error {
	return ErrSubmissionNotFound
}
