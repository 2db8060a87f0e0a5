package contact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-portfolio/contact"
)

type fakeForwarder struct {
	err   error
	calls []*contact.Submission
}

func (f *fakeForwarder) Forward(_ context.Context, submission *contact.Submission) error {
	f.calls = append(f.calls, submission)
	return f.err
}

func validInput() SubmitInput {
	return SubmitInput{
		Name:       "Jess Doe",
		Email:      "jess@example.com",
		Subject:    "Hello",
		Message:    "I would like to talk about a project.",
		RemoteAddr: "203.0.113.7:51234",
	}
}

func newTestService(t *testing.T, forwarder Forwarder, clock *time.Time) (Service, *MemorySubmissionRepository) {
	t.Helper()

	repo := NewMemorySubmissionRepository()
	svc, err := NewService(Config{Cooldown: time.Minute}, Dependencies{
		Repository: repo,
		Forwarder:  forwarder,
		Now:        func() time.Time { return *clock },
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func TestSubmitStoresAndForwards(t *testing.T) {
	clock := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	forwarder := &fakeForwarder{}
	svc, repo := newTestService(t, forwarder, &clock)

	result, err := svc.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Dropped || !result.Forwarded {
		t.Fatalf("expected stored and forwarded result, got %+v", result)
	}
	if result.Submission == nil || result.Submission.ForwardedAt == nil {
		t.Fatalf("expected forward timestamp, got %+v", result.Submission)
	}
	if len(forwarder.calls) != 1 {
		t.Fatalf("expected one forward call, got %d", len(forwarder.calls))
	}

	records, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one stored submission, got %d", len(records))
	}
	if records[0].ReceivedAt != clock {
		t.Fatalf("expected receipt time %v, got %v", clock, records[0].ReceivedAt)
	}
}

func TestSubmitHoneypotDropsSilently(t *testing.T) {
	clock := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	forwarder := &fakeForwarder{}
	svc, repo := newTestService(t, forwarder, &clock)

	input := validInput()
	input.Honeypot = "https://spam.example"

	result, err := svc.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("expected silent accept, got %v", err)
	}
	if !result.Dropped {
		t.Fatal("expected dropped result")
	}
	if len(forwarder.calls) != 0 {
		t.Fatal("expected no forward call for honeypot submission")
	}
	records, _ := repo.List(context.Background())
	if len(records) != 0 {
		t.Fatal("expected honeypot submission not persisted")
	}
}

func TestSubmitValidationFailure(t *testing.T) {
	clock := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t, nil, &clock)

	input := validInput()
	input.Email = "not-an-address"

	_, err := svc.Submit(context.Background(), input)
	var failed *contact.ValidationFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("expected validation error, got %v", err)
	}
	records, _ := repo.List(context.Background())
	if len(records) != 0 {
		t.Fatal("expected invalid submission not persisted")
	}

	// Failed attempts never start the cooldown window.
	if _, err := svc.Submit(context.Background(), validInput()); err != nil {
		t.Fatalf("expected valid retry to pass, got %v", err)
	}
}

func TestSubmitCooldown(t *testing.T) {
	clock := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, nil, &clock)

	if _, err := svc.Submit(context.Background(), validInput()); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	clock = clock.Add(10 * time.Second)
	_, err := svc.Submit(context.Background(), validInput())
	if !errors.Is(err, contact.ErrCooldownActive) {
		t.Fatalf("expected cooldown error, got %v", err)
	}
	var active *contact.CooldownActiveError
	if !errors.As(err, &active) || active.RetryAfter <= 0 {
		t.Fatalf("expected retry-after duration, got %v", err)
	}

	other := validInput()
	other.Email = "someone.else@example.com"
	if _, err := svc.Submit(context.Background(), other); err != nil {
		t.Fatalf("expected different sender to pass, got %v", err)
	}

	clock = clock.Add(time.Minute)
	if _, err := svc.Submit(context.Background(), validInput()); err != nil {
		t.Fatalf("expected submit after window to pass, got %v", err)
	}
}

func TestSubmitForwardFailureStillPersists(t *testing.T) {
	clock := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	forwarder := &fakeForwarder{err: &contact.ForwardFailedError{StatusCode: 502}}
	svc, repo := newTestService(t, forwarder, &clock)

	result, err := svc.Submit(context.Background(), validInput())
	if !errors.Is(err, contact.ErrForwardFailed) {
		t.Fatalf("expected forward failure, got %v", err)
	}
	if result == nil || result.Submission == nil {
		t.Fatal("expected stored submission alongside the error")
	}
	if result.Forwarded {
		t.Fatal("expected forwarded flag unset")
	}
	records, _ := repo.List(context.Background())
	if len(records) != 1 {
		t.Fatalf("expected submission persisted, got %d records", len(records))
	}
	if records[0].ForwardedAt != nil {
		t.Fatal("expected no forward timestamp on failure")
	}
}

func TestSubmitStoreOnlyWithoutForwarder(t *testing.T) {
	clock := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, nil, &clock)

	result, err := svc.Submit(context.Background(), validInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Forwarded {
		t.Fatal("expected store-only result")
	}
	if result.Submission.ForwardedAt != nil {
		t.Fatal("expected no forward timestamp")
	}
}

func TestSubmissionsListsOldestFirst(t *testing.T) {
	clock := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, nil, &clock)

	first := validInput()
	if _, err := svc.Submit(context.Background(), first); err != nil {
		t.Fatalf("first submit: %v", err)
	}

	clock = clock.Add(2 * time.Minute)
	second := validInput()
	second.Email = "later@example.com"
	if _, err := svc.Submit(context.Background(), second); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	records, err := svc.Submissions(context.Background())
	if err != nil {
		t.Fatalf("submissions: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected two submissions, got %d", len(records))
	}
	if records[0].Email != "jess@example.com" || records[1].Email != "later@example.com" {
		t.Fatalf("expected insertion order, got %q then %q", records[0].Email, records[1].Email)
	}
}

func TestNewServiceRequiresRepository(t *testing.T) {
	if _, err := NewService(Config{}, Dependencies{}); err == nil {
		t.Fatal("expected error for missing repository")
	}
}
