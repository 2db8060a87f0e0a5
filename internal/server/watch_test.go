package server

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-portfolio/internal/generator"
)

type fakeGenerator struct {
	mu     sync.Mutex
	builds int
}

func (f *fakeGenerator) Build(context.Context, generator.BuildOptions) (*generator.BuildResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builds++
	return &generator.BuildResult{PagesBuilt: 1}, nil
}

func (f *fakeGenerator) BuildPage(context.Context, string) error { return nil }
func (f *fakeGenerator) BuildAssets(context.Context) error       { return nil }
func (f *fakeGenerator) BuildSitemap(context.Context) error      { return nil }
func (f *fakeGenerator) Clean(context.Context) error             { return nil }

func (f *fakeGenerator) buildCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.builds
}

func TestWatcherRebuildsOnChange(t *testing.T) {
	contentDir := t.TempDir()
	gen := &fakeGenerator{}

	watcher, err := NewWatcher(WatchConfig{
		Dirs:     []string{contentDir, filepath.Join(contentDir, "does-not-exist")},
		Debounce: 50 * time.Millisecond,
	}, WatchDependencies{Generator: gen})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(contentDir, "post.md"), []byte("# hello"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for gen.buildCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("expected a rebuild after file change")
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("expected context cancellation, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	contentDir := t.TempDir()
	gen := &fakeGenerator{}

	watcher, err := NewWatcher(WatchConfig{
		Dirs:     []string{contentDir},
		Debounce: 150 * time.Millisecond,
	}, WatchDependencies{Generator: gen})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = watcher.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)

	// A burst of writes inside the debounce window collapses to one build.
	for i := 0; i < 5; i++ {
		name := filepath.Join(contentDir, "post.md")
		if err := os.WriteFile(name, []byte("# rev"), 0o644); err != nil {
			t.Fatalf("write file: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	deadline := time.Now().Add(3 * time.Second)
	for gen.buildCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("expected a rebuild after burst")
		}
		time.Sleep(20 * time.Millisecond)
	}
	// Allow any stray timer to fire before counting.
	time.Sleep(300 * time.Millisecond)
	if got := gen.buildCount(); got != 1 {
		t.Fatalf("expected one debounced build, got %d", got)
	}
}

func TestNewWatcherValidation(t *testing.T) {
	if _, err := NewWatcher(WatchConfig{Dirs: []string{"content"}}, WatchDependencies{}); err == nil {
		t.Fatal("expected error for missing generator")
	}
	if _, err := NewWatcher(WatchConfig{}, WatchDependencies{Generator: &fakeGenerator{}}); err == nil {
		t.Fatal("expected error for missing dirs")
	}
}
