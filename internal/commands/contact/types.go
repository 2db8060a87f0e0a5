package contactcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	contactsvc "github.com/goliatone/go-portfolio/internal/contact"
)

const submitMessageType = "portfolio.contact.submit"

// SubmitResultCallback receives the pipeline outcome. Optional, invoked
// synchronously from the handler.
type SubmitResultCallback func(*contactsvc.SubmitResult)

// SubmitMessage carries a raw contact form submission into the pipeline.
// Field-level validation (lengths, address shape) happens in the contact
// service; the message only guards against structurally empty payloads.
type SubmitMessage struct {
	Name           string               `json:"name"`
	Email          string               `json:"email"`
	Subject        string               `json:"subject,omitempty"`
	Message        string               `json:"message"`
	Honeypot       string               `json:"-"`
	RemoteAddr     string               `json:"-"`
	ResultCallback SubmitResultCallback `json:"-"`
}

// Type implements command.Message.
func (SubmitMessage) Type() string { return submitMessageType }

// Validate ensures the message can enter the pipeline. Honeypot submissions
// skip the payload checks so they can still be silently dropped.
func (m SubmitMessage) Validate() error {
	if strings.TrimSpace(m.Honeypot) != "" {
		return nil
	}
	errs := validation.Errors{}
	if strings.TrimSpace(m.Name) == "" {
		errs["name"] = validation.NewError("portfolio.contact.submit.name_required", "name is required")
	}
	if strings.TrimSpace(m.Email) == "" {
		errs["email"] = validation.NewError("portfolio.contact.submit.email_required", "email is required")
	}
	if strings.TrimSpace(m.Message) == "" {
		errs["message"] = validation.NewError("portfolio.contact.submit.message_required", "message is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
