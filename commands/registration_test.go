package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	sitecmd "github.com/goliatone/go-portfolio/internal/commands/site"
	"github.com/goliatone/go-portfolio/internal/di"
	"github.com/goliatone/go-portfolio/internal/publish"
	"github.com/goliatone/go-portfolio/internal/runtimeconfig"
)

func newTestContainer(t *testing.T, mutate func(*runtimeconfig.Config), opts ...di.Option) *di.Container {
	t.Helper()

	root := t.TempDir()
	contentDir := filepath.Join(root, "content")
	if err := os.MkdirAll(filepath.Join(contentDir, "blog"), 0o755); err != nil {
		t.Fatalf("mkdir content: %v", err)
	}

	cfg := runtimeconfig.DefaultConfig()
	cfg.Site.BaseURL = "https://example.com"
	cfg.Content.Dir = contentDir
	cfg.Generator.OutputDir = filepath.Join(root, "public")
	cfg.Features.ContactStorage = false
	if mutate != nil {
		mutate(&cfg)
	}

	templates := fstest.MapFS{
		"home.html": {Data: []byte(`<html>{{ .Site.Title }}</html>`)},
	}

	container, err := di.NewContainer(cfg, append([]di.Option{di.WithTemplatesFS(templates)}, opts...)...)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	return container
}

func TestRegisterContainerCommandsBuildsHandlers(t *testing.T) {
	container := newTestContainer(t, func(cfg *runtimeconfig.Config) {
		cfg.Features.Publish = true
		cfg.Publish.Bucket = "my-site"
	}, di.WithPublisher(publish.NoopPublisher{}))

	registry := &recordingRegistry{}
	dispatcher := &recordingDispatcher{}

	result, err := RegisterContainerCommands(context.Background(), container, RegistrationOptions{
		Registry:   registry,
		Dispatcher: dispatcher,
	})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	if len(result.Handlers) == 0 {
		t.Fatal("expected command handlers to be constructed")
	}
	if len(result.Handlers) != len(registry.handlers) {
		t.Fatalf("expected registry to record all handlers, got %d of %d", len(registry.handlers), len(result.Handlers))
	}
	if len(dispatcher.subscriptions) != len(result.Handlers) {
		t.Fatalf("expected dispatcher subscriptions for all handlers, got %d", len(dispatcher.subscriptions))
	}

	var hasPublish bool
	for _, handler := range result.Handlers {
		if _, ok := handler.(*sitecmd.PublishHandler); ok {
			hasPublish = true
		}
	}
	if !hasPublish {
		t.Fatal("expected publish handler when publishing is enabled")
	}
}

func TestRegisterContainerCommandsWithoutRegistrars(t *testing.T) {
	container := newTestContainer(t, nil)

	result, err := RegisterContainerCommands(context.Background(), container, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) == 0 {
		t.Fatal("expected handlers to be built even without registrars")
	}
	if len(result.Subscriptions) != 0 {
		t.Fatalf("expected no dispatcher subscriptions without dispatcher, got %d", len(result.Subscriptions))
	}
}

func TestRegisterContainerCommandsSkipsPublishWhenDisabled(t *testing.T) {
	container := newTestContainer(t, nil)

	result, err := RegisterContainerCommands(context.Background(), container, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}

	for _, handler := range result.Handlers {
		if _, ok := handler.(*sitecmd.PublishHandler); ok {
			t.Fatal("expected publish handler not to be registered when publishing is disabled")
		}
	}
}

func TestRegisterContainerCommandsNilContainer(t *testing.T) {
	result, err := RegisterContainerCommands(context.Background(), nil, RegistrationOptions{})
	if err != nil {
		t.Fatalf("register commands: %v", err)
	}
	if len(result.Handlers) != 0 {
		t.Fatal("expected no handlers for nil container")
	}
}

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

type recordingDispatcher struct {
	handlers      []any
	subscriptions []*recordingSubscription
	err           error
}

func (d *recordingDispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	if d.err != nil {
		return nil, d.err
	}
	d.handlers = append(d.handlers, handler)
	sub := &recordingSubscription{handler: handler}
	d.subscriptions = append(d.subscriptions, sub)
	return sub, nil
}

type recordingSubscription struct {
	handler      any
	unsubscribed bool
}

func (s *recordingSubscription) Unsubscribe() {
	s.unsubscribed = true
}
