package contact_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-portfolio/contact"
)

func validSubmission() contact.Submission {
	return contact.Submission{
		Name:    "Jess Doe",
		Email:   "jess@example.com",
		Subject: "Hello",
		Message: "I would like to talk about a project.",
	}
}

func TestSubmissionValidateAccepts(t *testing.T) {
	if err := validSubmission().Validate(); err != nil {
		t.Fatalf("expected valid submission, got %v", err)
	}

	optional := validSubmission()
	optional.Subject = ""
	if err := optional.Validate(); err != nil {
		t.Fatalf("expected subject to be optional, got %v", err)
	}
}

func TestSubmissionValidateRejects(t *testing.T) {
	cases := map[string]struct {
		mutate func(*contact.Submission)
		field  string
	}{
		"short name":      {func(s *contact.Submission) { s.Name = "J" }, "name"},
		"missing name":    {func(s *contact.Submission) { s.Name = "" }, "name"},
		"long name":       {func(s *contact.Submission) { s.Name = strings.Repeat("a", 101) }, "name"},
		"missing email":   {func(s *contact.Submission) { s.Email = "" }, "email"},
		"malformed email": {func(s *contact.Submission) { s.Email = "not-an-address" }, "email"},
		"long subject":    {func(s *contact.Submission) { s.Subject = strings.Repeat("s", 151) }, "subject"},
		"short message":   {func(s *contact.Submission) { s.Message = "too short" }, "message"},
		"long message":    {func(s *contact.Submission) { s.Message = strings.Repeat("m", 5001) }, "message"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			submission := validSubmission()
			tc.mutate(&submission)

			err := submission.Validate()
			if !errors.Is(err, contact.ErrValidationFailed) {
				t.Fatalf("expected validation failure, got %v", err)
			}

			var failed *contact.ValidationFailedError
			if !errors.As(err, &failed) {
				t.Fatalf("expected *ValidationFailedError, got %T", err)
			}
			found := false
			for _, issue := range failed.Issues {
				if issue.Field == tc.field {
					found = true
					if issue.Message == "" {
						t.Fatal("expected issue message")
					}
				}
			}
			if !found {
				t.Fatalf("expected issue for field %q, got %+v", tc.field, failed.Issues)
			}
		})
	}
}

func TestSubmissionValidateCollectsAllIssues(t *testing.T) {
	submission := contact.Submission{}

	err := submission.Validate()
	var failed *contact.ValidationFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected *ValidationFailedError, got %v", err)
	}
	if len(failed.Issues) != 3 {
		t.Fatalf("expected issues for name, email and message, got %+v", failed.Issues)
	}
}

func TestSubmissionNormalizedEmail(t *testing.T) {
	submission := contact.Submission{Email: "  Jess@Example.COM "}
	if got := submission.NormalizedEmail(); got != "jess@example.com" {
		t.Fatalf("expected normalized email, got %q", got)
	}
}
