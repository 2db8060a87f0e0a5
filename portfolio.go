// Package portfolio assembles a markdown-driven portfolio and blog into a
// static site: content loading, page generation, feeds, a preview server
// with watch mode, a contact form pipeline and S3 publishing.
package portfolio

import (
	"context"

	contactsvc "github.com/goliatone/go-portfolio/internal/contact"
	contentsvc "github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/internal/di"
	"github.com/goliatone/go-portfolio/internal/generator"
	"github.com/goliatone/go-portfolio/internal/publish"
	"github.com/goliatone/go-portfolio/internal/server"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// ContentService exports the content service contract for consumers of the
// portfolio package.
type ContentService = contentsvc.Service

// ContactService exports the contact pipeline contract.
type ContactService = contactsvc.Service

// GeneratorService exports the static site generator contract.
type GeneratorService = generator.Service

// Publisher exports the artifact publisher contract.
type Publisher = publish.Publisher

// ContactSubmitInput exports the contact submission payload.
type ContactSubmitInput = contactsvc.SubmitInput

// ContactSubmitResult exports the contact submission outcome.
type ContactSubmitResult = contactsvc.SubmitResult

// ContentListOptions exports the post listing options.
type ContentListOptions = contentsvc.ListOptions

// BuildOptions exports the generator build options.
type BuildOptions = generator.BuildOptions

// BuildResult exports the generator build report.
type BuildResult = generator.BuildResult

// PublishResult exports the publish report.
type PublishResult = publish.Result

// Module is the top level portfolio runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a portfolio module using the provided configuration and
// optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Content returns the configured content service.
func (m *Module) Content() ContentService {
	return m.container.ContentService()
}

// Contact returns the configured contact service.
func (m *Module) Contact() ContactService {
	return m.container.ContactService()
}

// Markdown returns the markdown service backing the content loader.
func (m *Module) Markdown() interfaces.MarkdownService {
	return m.container.MarkdownService()
}

// Generator returns the configured generator service, wiring it on first use.
func (m *Module) Generator() (GeneratorService, error) {
	return m.container.GeneratorService()
}

// Server returns the preview server.
func (m *Module) Server() *server.Server {
	return m.container.Server()
}

// Watcher returns the source watcher used by the preview server's watch mode.
func (m *Module) Watcher() (*server.Watcher, error) {
	return m.container.Watcher()
}

// Publisher returns the configured artifact publisher.
func (m *Module) Publisher(ctx context.Context) (Publisher, error) {
	return m.container.Publisher(ctx)
}

// Logger returns the configured logger provider.
func (m *Module) Logger() interfaces.LoggerProvider {
	return m.container.Logger()
}

// EnsureSchema creates the contact storage tables when storage is enabled.
func (m *Module) EnsureSchema(ctx context.Context) error {
	return m.container.EnsureSchema(ctx)
}

// Close releases resources held by the module.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
