package markdown

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

func testFS() fstest.MapFS {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	return fstest.MapFS{
		"blog/first.md": &fstest.MapFile{
			Data:    []byte("---\ntitle: First\ndate: 2024-03-20\n---\n\n# First\n"),
			ModTime: now,
		},
		"blog/nested/second.md": &fstest.MapFile{
			Data:    []byte("---\ntitle: Second\n---\n\nSecond body.\n"),
			ModTime: now,
		},
		"blog/notes.txt": &fstest.MapFile{
			Data:    []byte("not markdown"),
			ModTime: now,
		},
	}
}

func TestServiceLoadDirectoryRecursive(t *testing.T) {
	svc := NewServiceWithFS(Config{Recursive: true}, nil, testFS())

	docs, err := svc.LoadDirectory(context.Background(), "blog", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("load directory: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 markdown documents, got %d", len(docs))
	}
	if docs[0].FilePath != "blog/first.md" {
		t.Fatalf("expected deterministic ordering, got %s first", docs[0].FilePath)
	}
	if len(docs[0].Checksum) == 0 {
		t.Fatal("expected checksum on loaded document")
	}
	if !strings.Contains(string(docs[0].BodyHTML), "<h1") {
		t.Fatalf("expected rendered HTML, got %s", docs[0].BodyHTML)
	}
}

func TestServiceLoadDirectoryNonRecursive(t *testing.T) {
	svc := NewServiceWithFS(Config{Recursive: false}, nil, testFS())

	docs, err := svc.LoadDirectory(context.Background(), "blog", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("load directory: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected only top-level document, got %d", len(docs))
	}
}

func TestServiceSkipRenderLeavesBodyHTMLEmpty(t *testing.T) {
	svc := NewServiceWithFS(Config{Recursive: true}, nil, testFS())

	docs, err := svc.LoadDirectory(context.Background(), "blog", interfaces.LoadOptions{SkipRender: true})
	if err != nil {
		t.Fatalf("load directory: %v", err)
	}
	for _, doc := range docs {
		if len(doc.BodyHTML) != 0 {
			t.Fatalf("expected BodyHTML empty for %s", doc.FilePath)
		}
	}

	html, err := svc.RenderDocument(context.Background(), docs[0], interfaces.ParseOptions{})
	if err != nil {
		t.Fatalf("render document: %v", err)
	}
	if len(html) == 0 || len(docs[0].BodyHTML) == 0 {
		t.Fatal("expected RenderDocument to populate BodyHTML")
	}
}

func TestServiceLoadSingleFile(t *testing.T) {
	svc := NewServiceWithFS(Config{}, nil, testFS())

	doc, err := svc.Load(context.Background(), "blog/first.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if doc.FrontMatter.Title != "First" {
		t.Fatalf("expected front matter title, got %q", doc.FrontMatter.Title)
	}
	if doc.LastModified.IsZero() {
		t.Fatal("expected modification time")
	}
}

func TestServiceLoadCancelledContext(t *testing.T) {
	svc := NewServiceWithFS(Config{Recursive: true}, nil, testFS())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.LoadDirectory(ctx, "blog", interfaces.LoadOptions{}); err == nil {
		t.Fatal("expected context cancellation error")
	}
}
