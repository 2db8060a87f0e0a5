package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	portfolio "github.com/goliatone/go-portfolio"
	"github.com/goliatone/go-portfolio/internal/di"
)

func testConfig(t *testing.T) portfolio.Config {
	t.Helper()

	root := t.TempDir()
	contentDir := filepath.Join(root, "content")
	if err := os.MkdirAll(contentDir, 0o755); err != nil {
		t.Fatalf("mkdir content: %v", err)
	}

	cfg := portfolio.DefaultConfig()
	cfg.Site.BaseURL = "https://example.com"
	cfg.Content.Dir = contentDir
	cfg.Generator.OutputDir = filepath.Join(root, "public")
	cfg.Features.ContactStorage = false
	return cfg
}

func TestBuildModuleCollectsHandlers(t *testing.T) {
	cfg := testConfig(t)
	templates := fstest.MapFS{
		"home.html": {Data: []byte(`<html>{{ .Site.Title }}</html>`)},
	}

	resources, err := BuildModule(context.Background(), Options{
		Config:         &cfg,
		EnableCommands: true,
		DIOptions:      []di.Option{di.WithTemplatesFS(templates)},
	})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if resources.Module == nil {
		t.Fatal("expected module")
	}
	if resources.Collector == nil || len(resources.Collector.Handlers()) == 0 {
		t.Fatal("expected collected command handlers")
	}
}

func TestBuildModuleWithoutCommands(t *testing.T) {
	cfg := testConfig(t)

	resources, err := BuildModule(context.Background(), Options{Config: &cfg})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if resources.Collector != nil {
		t.Fatal("expected no collector when commands are disabled")
	}
}
