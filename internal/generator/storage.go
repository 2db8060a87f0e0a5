package generator

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

const (
	storageOpEnsureDir = "generator.ensure_dir"
	storageOpWrite     = "generator.write"
	storageOpRead      = "generator.read"
	storageOpRemove    = "generator.remove"
)

type writeCategory string

const (
	categoryPage     writeCategory = "page"
	categoryAsset    writeCategory = "asset"
	categoryFeed     writeCategory = "feed"
	categorySitemap  writeCategory = "sitemap"
	categoryRobots   writeCategory = "robots"
	categoryManifest writeCategory = "manifest"
)

// writeFileRequest describes a file write routed through the artifact writer.
type writeFileRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	Category    writeCategory
	ContentType string
	Checksum    string
	Metadata    map[string]string
}

// artifactWriter abstracts where generator outputs land.
type artifactWriter interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, req writeFileRequest) error
	ReadFile(ctx context.Context, path string) ([]byte, error)
	RemoveAll(ctx context.Context, path string) error
}

// newArtifactWriter picks the writer implementation: a storage provider when
// one is configured, the local filesystem otherwise.
func newArtifactWriter(storage interfaces.StorageProvider) artifactWriter {
	if storage == nil {
		return osWriter{}
	}
	return &storageWriter{storage: storage}
}

// osWriter writes artifacts to the local filesystem. Paths are relative to
// the process working directory unless the output dir is absolute.
type osWriter struct{}

func (osWriter) EnsureDir(_ context.Context, path string) error {
	if strings.TrimSpace(path) == "" || path == "." {
		return nil
	}
	return os.MkdirAll(filepath.FromSlash(path), 0o755)
}

func (osWriter) WriteFile(_ context.Context, req writeFileRequest) error {
	if req.Content == nil {
		return errors.New("generator: write requires content reader")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("generator: write requires path")
	}
	target := filepath.FromSlash(req.Path)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	file, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(file, req.Content); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (osWriter) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.FromSlash(path))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (osWriter) RemoveAll(_ context.Context, path string) error {
	if strings.TrimSpace(path) == "" || path == "." || path == "/" {
		return errors.New("generator: refusing to remove unsafe path")
	}
	return os.RemoveAll(filepath.FromSlash(path))
}

// storageWriter routes artifacts through a storage provider using the
// generator operation vocabulary.
type storageWriter struct {
	storage interfaces.StorageProvider
}

func (w *storageWriter) EnsureDir(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" || path == "." {
		return nil
	}
	_, err := w.storage.Exec(ctx, storageOpEnsureDir, path)
	return err
}

func (w *storageWriter) WriteFile(ctx context.Context, req writeFileRequest) error {
	if req.Content == nil {
		return errors.New("generator: write requires content reader")
	}
	if strings.TrimSpace(req.Path) == "" {
		return errors.New("generator: write requires path")
	}
	if req.Metadata == nil {
		req.Metadata = map[string]string{}
	}
	args := []any{
		req.Path,
		req.Content,
		req.Size,
		string(req.Category),
		req.ContentType,
		req.Checksum,
		req.Metadata,
	}
	_, err := w.storage.Exec(ctx, storageOpWrite, args...)
	return err
}

func (w *storageWriter) ReadFile(ctx context.Context, path string) ([]byte, error) {
	rows, err := w.storage.Query(ctx, storageOpRead, path)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		return nil, nil
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, nil
	}
	var data []byte
	if err := rows.Scan(&data); err != nil {
		return nil, err
	}
	return data, nil
}

func (w *storageWriter) RemoveAll(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("generator: refusing to remove unsafe path")
	}
	_, err := w.storage.Exec(ctx, storageOpRemove, path)
	return err
}
