// Package contact holds the contact form submission model and its
// validation rules.
package contact

import (
	"regexp"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Submission is one contact form message plus server-side bookkeeping.
type Submission struct {
	bun.BaseModel `bun:"table:contact_submissions,alias:cs"`

	ID          uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Name        string     `bun:"name,notnull" json:"name"`
	Email       string     `bun:"email,notnull" json:"email"`
	Subject     string     `bun:"subject" json:"subject,omitempty"`
	Message     string     `bun:"message,notnull" json:"message"`
	RemoteAddr  string     `bun:"remote_addr" json:"remote_addr,omitempty"`
	ReceivedAt  time.Time  `bun:"received_at,nullzero,default:current_timestamp" json:"received_at"`
	ForwardedAt *time.Time `bun:"forwarded_at,nullzero" json:"forwarded_at,omitempty"`
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Validate checks the sender-supplied fields. Failures come back as a
// *ValidationFailedError listing every offending field.
func (s Submission) Validate() error {
	err := validation.ValidateStruct(&s,
		validation.Field(&s.Name,
			validation.Required.Error("name is required"),
			validation.Length(2, 100).Error("name must be between 2 and 100 characters")),
		validation.Field(&s.Email,
			validation.Required.Error("email is required"),
			validation.Match(emailPattern).Error("email must be a valid address")),
		validation.Field(&s.Subject,
			validation.Length(0, 150).Error("subject must be at most 150 characters")),
		validation.Field(&s.Message,
			validation.Required.Error("message is required"),
			validation.Length(10, 5000).Error("message must be between 10 and 5000 characters")),
	)
	if err == nil {
		return nil
	}

	issues := fieldIssues(err)
	if len(issues) == 0 {
		issues = []FieldIssue{{Field: "submission", Message: err.Error()}}
	}
	return &ValidationFailedError{Issues: issues}
}

// NormalizedEmail lowercases and trims the sender address for keying.
func (s Submission) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(s.Email))
}

func fieldIssues(err error) []FieldIssue {
	verrs, ok := err.(validation.Errors)
	if !ok {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for field := range verrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	issues := make([]FieldIssue, 0, len(fields))
	for _, field := range fields {
		issues = append(issues, FieldIssue{
			Field:   strings.ToLower(field),
			Message: verrs[field].Error(),
		})
	}
	return issues
}
