package interfaces

import (
	"context"
	"time"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should support reusable parser instances and extension
// toggles so hosts can tailor rendering without rewriting the pipeline.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// MarkdownService exposes the file workflows used by the content loader:
// discovering Markdown documents on disk and rendering them to HTML.
type MarkdownService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Document, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Document, error)
	Render(ctx context.Context, markdown []byte, opts ParseOptions) ([]byte, error)
	RenderDocument(ctx context.Context, doc *Document, opts ParseOptions) ([]byte, error)
}

// Document represents a Markdown file with parsed metadata and content. The
// struct is shared between the interfaces package and internal implementations
// so consumers can depend on a stable contract.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	BodyHTML     []byte
	LastModified time.Time
	// Checksum stores a digest of the original file content (typically SHA-256)
	// so incremental builds can detect changes without re-rendering unchanged files.
	Checksum []byte
}

// FrontMatter models metadata extracted from Markdown files. The named fields
// cover every collection the site ships (posts, projects, work history,
// education); the Custom map keeps template- or record-specific extras.
type FrontMatter struct {
	Title       string         `yaml:"title" json:"title"`
	Slug        string         `yaml:"slug" json:"slug"`
	Summary     string         `yaml:"summary" json:"summary"`
	Template    string         `yaml:"template" json:"template"`
	Tags        []string       `yaml:"tags" json:"tags"`
	Author      string         `yaml:"author" json:"author"`
	Date        time.Time      `yaml:"date" json:"date"`
	Draft       bool           `yaml:"draft" json:"draft"`
	Company     string         `yaml:"company" json:"company"`
	Role        string         `yaml:"role" json:"role"`
	Location    string         `yaml:"location" json:"location"`
	Institution string         `yaml:"institution" json:"institution"`
	DateStart   string         `yaml:"date_start" json:"date_start"`
	DateEnd     string         `yaml:"date_end" json:"date_end"`
	Tech        []string       `yaml:"tech" json:"tech"`
	Custom      map[string]any `yaml:",inline" json:"custom"`
	Raw         map[string]any `yaml:"-" json:"raw"`
}

// LoadOptions fine-tunes how documents are discovered and parsed from disk.
// SkipRender leaves BodyHTML empty so callers with their own render cache can
// defer HTML conversion to documents that actually changed.
type LoadOptions struct {
	Recursive  *bool
	Pattern    string
	SkipRender bool
	Parser     ParseOptions
}
