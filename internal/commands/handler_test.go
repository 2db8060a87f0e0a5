package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type testMessage struct{}

func (testMessage) Type() string { return "portfolio.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "portfolio.test.invalid" }

func (invalidMessage) Validate() error { return errors.New("bad payload") }

func TestHandlerExecutesFunction(t *testing.T) {
	called := false
	handler := NewHandler(func(_ context.Context, _ testMessage) error {
		called = true
		return nil
	})

	if err := handler.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !called {
		t.Fatal("expected wrapped function to run")
	}
}

func TestHandlerValidatesMessage(t *testing.T) {
	handler := NewHandler(func(_ context.Context, _ invalidMessage) error {
		t.Fatal("execution must not run for invalid messages")
		return nil
	})

	err := handler.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	handler := NewHandler(func(_ context.Context, _ testMessage) error {
		return errors.New("boom")
	})

	err := handler.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestHandlerHonorsTimeout(t *testing.T) {
	handler := NewHandler(func(ctx context.Context, _ testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := handler.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestHandlerNilContext(t *testing.T) {
	handler := NewHandler(func(ctx context.Context, _ testMessage) error {
		if ctx == nil {
			t.Fatal("expected non-nil context")
		}
		return nil
	})

	var nilCtx context.Context
	if err := handler.Execute(nilCtx, testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
}

func TestHandlerTelemetryCallback(t *testing.T) {
	var seen []TelemetryInfo
	handler := NewHandler(func(_ context.Context, _ testMessage) error {
		return nil
	},
		WithOperation[testMessage]("test.run"),
		WithTelemetry[testMessage](func(_ context.Context, _ testMessage, info TelemetryInfo) {
			seen = append(seen, info)
		}))

	if err := handler.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(seen) != 1 {
		t.Fatalf("expected one telemetry emit, got %d", len(seen))
	}
	if seen[0].Status != TelemetryStatusSuccess || seen[0].Command != "portfolio.test.message" {
		t.Fatalf("unexpected telemetry %+v", seen[0])
	}
	if seen[0].Operation != "test.run" {
		t.Fatalf("expected operation in telemetry, got %+v", seen[0])
	}

	failing := NewHandler(func(_ context.Context, _ testMessage) error {
		return errors.New("boom")
	}, WithTelemetry[testMessage](func(_ context.Context, _ testMessage, info TelemetryInfo) {
		seen = append(seen, info)
	}))
	_ = failing.Execute(context.Background(), testMessage{})
	if len(seen) != 2 || seen[1].Status != TelemetryStatusFailed {
		t.Fatalf("expected failed telemetry, got %+v", seen)
	}
}
