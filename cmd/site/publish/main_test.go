package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	portfolio "github.com/goliatone/go-portfolio"
	"github.com/goliatone/go-portfolio/cmd/site/internal/bootstrap"
	sitecmd "github.com/goliatone/go-portfolio/internal/commands/site"
	"github.com/goliatone/go-portfolio/internal/publish"
)

type stubPublishHandler struct {
	last sitecmd.PublishMessage
	err  error
}

func (s *stubPublishHandler) Execute(_ context.Context, msg sitecmd.PublishMessage) error {
	s.last = msg
	if s.err != nil {
		return s.err
	}
	if msg.ResultCallback != nil {
		msg.ResultCallback(&publish.Result{Files: 7, Target: "s3://my-site"})
	}
	return nil
}

func newStubModule(t *testing.T) *bootstrap.Module {
	t.Helper()

	root := t.TempDir()
	contentDir := filepath.Join(root, "content")
	if err := os.MkdirAll(contentDir, 0o755); err != nil {
		t.Fatalf("mkdir content: %v", err)
	}

	cfg := portfolio.DefaultConfig()
	cfg.Content.Dir = contentDir
	cfg.Generator.OutputDir = filepath.Join(root, "public")
	cfg.Features.ContactStorage = false

	module, err := portfolio.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })
	return &bootstrap.Module{Module: module, Config: cfg}
}

func stubSeams(t *testing.T, handler *stubPublishHandler) *bootstrap.Module {
	t.Helper()

	module := newStubModule(t)
	origBuilder := moduleBuilder
	origHandler := newPublishHandler
	moduleBuilder = func(bootstrap.Options) (*bootstrap.Module, error) {
		return module, nil
	}
	newPublishHandler = func(context.Context, *bootstrap.Module) (publishExecutor, error) {
		return handler, nil
	}
	t.Cleanup(func() {
		moduleBuilder = origBuilder
		newPublishHandler = origHandler
	})
	return module
}

func TestRunPublishUploadsOutputDir(t *testing.T) {
	handler := &stubPublishHandler{}
	module := stubSeams(t, handler)

	err := runPublish([]string{"-bucket", "my-site", "-prefix", "site", "-region", "us-east-1"})
	if err != nil {
		t.Fatalf("run publish: %v", err)
	}

	if handler.last.Dir != module.Module.Container().Config.Generator.OutputDir {
		t.Fatalf("expected output dir upload, got %q", handler.last.Dir)
	}
	cfg := module.Module.Container().Config
	if cfg.Publish.Bucket != "my-site" || cfg.Publish.Prefix != "site" || cfg.Publish.Region != "us-east-1" {
		t.Fatalf("unexpected publish config %+v", cfg.Publish)
	}
}

func TestRunPublishExplicitDir(t *testing.T) {
	handler := &stubPublishHandler{}
	stubSeams(t, handler)

	if err := runPublish([]string{"-bucket", "my-site", "-dir", "dist"}); err != nil {
		t.Fatalf("run publish: %v", err)
	}
	if handler.last.Dir != "dist" {
		t.Fatalf("expected explicit dir, got %q", handler.last.Dir)
	}
}

func TestRunPublishRequiresBucket(t *testing.T) {
	stubSeams(t, &stubPublishHandler{})

	if err := runPublish(nil); err == nil {
		t.Fatal("expected error without bucket")
	}
}
