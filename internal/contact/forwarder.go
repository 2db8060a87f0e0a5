package contact

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-portfolio/contact"
)

const defaultForwardTimeout = 10 * time.Second

// Forwarder delivers a submission to an external inbox.
type Forwarder interface {
	Forward(ctx context.Context, submission *contact.Submission) error
}

// HTTPForwarder posts submissions form-encoded to a hosted forms endpoint.
// Delivery is one-shot: any network error or non-2xx response maps to
// ErrForwardFailed and the caller decides what to tell the sender.
type HTTPForwarder struct {
	endpoint string
	client   *http.Client
}

// NewHTTPForwarder creates a forwarder for endpoint. A nil client gets a
// default with a 10 second timeout.
func NewHTTPForwarder(endpoint string, client *http.Client) *HTTPForwarder {
	if client == nil {
		client = &http.Client{Timeout: defaultForwardTimeout}
	}
	return &HTTPForwarder{
		endpoint: strings.TrimSpace(endpoint),
		client:   client,
	}
}

func (f *HTTPForwarder) Forward(ctx context.Context, submission *contact.Submission) error {
	form := url.Values{}
	form.Set("name", submission.Name)
	form.Set("email", submission.Email)
	form.Set("subject", submission.Subject)
	form.Set("message", submission.Message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return &contact.ForwardFailedError{Endpoint: f.endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return &contact.ForwardFailedError{Endpoint: f.endpoint, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &contact.ForwardFailedError{Endpoint: f.endpoint, StatusCode: resp.StatusCode}
	}
	return nil
}
