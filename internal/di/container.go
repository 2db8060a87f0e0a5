// Package di wires the portfolio services together. Hosts construct a
// Container from a runtime config, override collaborators through options,
// and pull fully wired services from the accessors.
package di

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bundebug"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-portfolio/contact"
	contactsvc "github.com/goliatone/go-portfolio/internal/contact"
	contentsvc "github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/internal/generator"
	"github.com/goliatone/go-portfolio/internal/logging/gologger"
	"github.com/goliatone/go-portfolio/internal/markdown"
	"github.com/goliatone/go-portfolio/internal/publish"
	"github.com/goliatone/go-portfolio/internal/render"
	"github.com/goliatone/go-portfolio/internal/runtimeconfig"
	"github.com/goliatone/go-portfolio/internal/server"
	"github.com/goliatone/go-portfolio/internal/urls"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// Container holds the wired module services.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsDB        bool
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	contentFS   fs.FS
	templatesFS fs.FS

	resolver    *urls.Resolver
	markdownSvc interfaces.MarkdownService
	contentSvc  contentsvc.Service

	renderer     interfaces.TemplateRenderer
	generatorSvc generator.Service

	submissionRepo contactsvc.SubmissionRepository
	forwarder      contactsvc.Forwarder
	contactSvc     contactsvc.Service

	publisher publish.Publisher
	srv       *server.Server
	watcher   *server.Watcher
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the default go-logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB injects an existing database handle. The container will not
// close an injected handle.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the repository cache service and key serializer.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithContentFS reads markdown collections from the supplied filesystem
// instead of the configured content directory. Used by hosts embedding
// content with embed.FS.
func WithContentFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.contentFS = fsys
	}
}

// WithTemplatesFS reads templates from the supplied filesystem instead of
// the configured templates directory.
func WithTemplatesFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.templatesFS = fsys
	}
}

// WithTemplateRenderer overrides the default html/template renderer.
func WithTemplateRenderer(renderer interfaces.TemplateRenderer) Option {
	return func(c *Container) {
		c.renderer = renderer
	}
}

// WithMarkdownService overrides the default markdown service binding.
func WithMarkdownService(svc interfaces.MarkdownService) Option {
	return func(c *Container) {
		c.markdownSvc = svc
	}
}

// WithContentService overrides the default content service binding.
func WithContentService(svc contentsvc.Service) Option {
	return func(c *Container) {
		c.contentSvc = svc
	}
}

// WithGeneratorService overrides the default generator binding.
func WithGeneratorService(svc generator.Service) Option {
	return func(c *Container) {
		c.generatorSvc = svc
	}
}

// WithSubmissionRepository overrides the default submission store.
func WithSubmissionRepository(repo contactsvc.SubmissionRepository) Option {
	return func(c *Container) {
		c.submissionRepo = repo
	}
}

// WithForwarder overrides the default HTTP forwarder.
func WithForwarder(fwd contactsvc.Forwarder) Option {
	return func(c *Container) {
		c.forwarder = fwd
	}
}

// WithContactService overrides the default contact service binding.
func WithContactService(svc contactsvc.Service) Option {
	return func(c *Container) {
		c.contactSvc = svc
	}
}

// WithPublisher overrides the default publisher binding.
func WithPublisher(p publish.Publisher) Option {
	return func(c *Container) {
		c.publisher = p
	}
}

// NewContainer validates the configuration and wires the eager services:
// logging, markdown, content, contact and the preview server. The generator,
// renderer, publisher and watcher are built on first access because they
// depend on resources a given entry point may not have (template dirs, AWS
// credentials).
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.loggerProvider == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	if c.resolver == nil {
		c.resolver = urls.NewResolver(urls.Config{BaseURL: cfg.Site.BaseURL})
	}

	if err := c.configureMarkdown(); err != nil {
		return nil, err
	}
	if err := c.configureContent(); err != nil {
		return nil, err
	}
	if err := c.configureContact(); err != nil {
		return nil, err
	}

	if c.srv == nil {
		srv, err := server.New(server.Config{
			Addr:          cfg.Server.Addr,
			OutputDir:     cfg.Generator.OutputDir,
			HoneypotField: cfg.Contact.HoneypotField,
		}, server.Dependencies{
			Contact: c.contactSvc,
			Logger:  c.loggerProvider,
		})
		if err != nil {
			return nil, err
		}
		c.srv = srv
	}

	return c, nil
}

func (c *Container) configureMarkdown() error {
	if c.markdownSvc != nil {
		return nil
	}

	mdCfg := markdown.Config{
		BasePath:  c.Config.Content.Dir,
		Recursive: true,
		Parser: interfaces.ParseOptions{
			Extensions: c.Config.Markdown.Extensions,
			HardWraps:  c.Config.Markdown.HardWraps,
			Sanitize:   !c.Config.Markdown.RawHTML,
		},
	}

	if c.contentFS != nil {
		// The filesystem is already rooted at the content dir.
		mdCfg.BasePath = "."
		c.markdownSvc = markdown.NewServiceWithFS(mdCfg, nil, c.contentFS)
		return nil
	}

	svc, err := markdown.NewService(mdCfg, nil)
	if err != nil {
		return err
	}
	c.markdownSvc = svc
	return nil
}

func (c *Container) configureContent() error {
	if c.contentSvc != nil {
		return nil
	}

	svc, err := contentsvc.NewService(contentsvc.Config{
		Collections:    c.Config.Content.Collections,
		WordsPerMinute: c.Config.Content.WordsPerMinute,
	}, contentsvc.Dependencies{
		Markdown: c.markdownSvc,
		Resolver: c.resolver,
		Logger:   c.loggerProvider,
	})
	if err != nil {
		return err
	}
	c.contentSvc = svc
	return nil
}

func (c *Container) configureContact() error {
	if c.submissionRepo == nil {
		if c.Config.Features.ContactStorage {
			if c.bunDB == nil {
				db, err := openDatabase(c.Config.Storage)
				if err != nil {
					return err
				}
				c.bunDB = db
				c.ownsDB = true
			}
			c.configureCacheDefaults()
			c.submissionRepo = contactsvc.NewBunSubmissionRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		} else {
			c.submissionRepo = contactsvc.NewMemorySubmissionRepository()
		}
	}

	if c.forwarder == nil && c.Config.Features.ContactForwarding {
		c.forwarder = contactsvc.NewHTTPForwarder(c.Config.Contact.Endpoint, nil)
	}

	if c.contactSvc != nil {
		return nil
	}
	svc, err := contactsvc.NewService(contactsvc.Config{
		Cooldown: c.Config.CooldownDuration(),
	}, contactsvc.Dependencies{
		Repository: c.submissionRepo,
		Forwarder:  c.forwarder,
		Logger:     c.loggerProvider,
	})
	if err != nil {
		return err
	}
	c.contactSvc = svc
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Features.Cache || !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cacheCfg := repocache.DefaultConfig()
		if c.Config.Cache.TTL > 0 {
			cacheCfg.TTL = c.Config.Cache.TTL
		}
		service, err := repocache.NewCacheService(cacheCfg)
		if err != nil {
			return
		}
		c.cacheService = service
	}
	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func openDatabase(cfg runtimeconfig.StorageConfig) (*bun.DB, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch driver {
	case "sqlite3":
		sqlDB, err := sql.Open("sqlite3", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database: %w", err)
		}
		db := bun.NewDB(sqlDB, sqlitedialect.New())
		db.SetMaxOpenConns(1)
		if cfg.Debug {
			db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
		}
		return db, nil
	case "postgres":
		sqlDB, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres database: %w", err)
		}
		db := bun.NewDB(sqlDB, pgdialect.New())
		if cfg.Debug {
			db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
		}
		return db, nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrStorageDriverUnknown, cfg.Driver)
	}
}

// EnsureSchema creates the contact submission table when storage is enabled.
func (c *Container) EnsureSchema(ctx context.Context) error {
	if c.bunDB == nil {
		return nil
	}
	if _, err := c.bunDB.NewCreateTable().
		Model((*contact.Submission)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Close releases the database handle when the container opened it.
func (c *Container) Close() error {
	if c.bunDB == nil || !c.ownsDB {
		return nil
	}
	return c.bunDB.Close()
}

// Logger exposes the configured logger provider.
func (c *Container) Logger() interfaces.LoggerProvider {
	return c.loggerProvider
}

// DB exposes the database handle, nil when contact storage is disabled and
// no handle was injected.
func (c *Container) DB() *bun.DB {
	return c.bunDB
}

// Resolver exposes the canonical URL resolver.
func (c *Container) Resolver() *urls.Resolver {
	return c.resolver
}

// MarkdownService exposes the configured markdown service.
func (c *Container) MarkdownService() interfaces.MarkdownService {
	return c.markdownSvc
}

// ContentService exposes the configured content service.
func (c *Container) ContentService() contentsvc.Service {
	return c.contentSvc
}

// SubmissionRepository exposes the configured submission store.
func (c *Container) SubmissionRepository() contactsvc.SubmissionRepository {
	return c.submissionRepo
}

// ContactService exposes the configured contact service.
func (c *Container) ContactService() contactsvc.Service {
	return c.contactSvc
}

// Server exposes the preview server.
func (c *Container) Server() *server.Server {
	return c.srv
}

// TemplateRenderer returns the configured renderer, building the default
// html/template renderer on first use (lazy).
func (c *Container) TemplateRenderer() (interfaces.TemplateRenderer, error) {
	if c.renderer != nil {
		return c.renderer, nil
	}
	renderer, err := render.New(render.Config{
		Dir: c.Config.Generator.TemplatesDir,
		FS:  c.templatesFS,
	})
	if err != nil {
		return nil, err
	}
	c.renderer = renderer
	return c.renderer, nil
}

// GeneratorService returns the configured generator, wiring the default one
// on first use (lazy).
func (c *Container) GeneratorService() (generator.Service, error) {
	if c.generatorSvc != nil {
		return c.generatorSvc, nil
	}

	renderer, err := c.TemplateRenderer()
	if err != nil {
		return nil, err
	}

	gen := c.Config.Generator
	svc, err := generator.NewService(generator.Config{
		OutputDir:       gen.OutputDir,
		BaseURL:         c.Config.Site.BaseURL,
		CleanBuild:      gen.CleanBuild,
		Incremental:     gen.Incremental,
		CopyAssets:      gen.CopyAssets,
		GenerateSitemap: c.Config.Features.Sitemap,
		GenerateRobots:  c.Config.Features.Robots,
		GenerateFeeds:   c.Config.Features.Feeds,
		Workers:         gen.Workers,
		AssetsDir:       gen.AssetsDir,
		Theming: generator.ThemingConfig{
			ThemesDir: gen.ThemesDir,
			Theme:     gen.Theme,
			Variant:   gen.ThemeVariant,
		},
		Site: generator.SiteInfo{
			Title:       c.Config.Site.Title,
			Description: c.Config.Site.Description,
			Author:      c.Config.Site.Author,
			Email:       c.Config.Site.Email,
			Language:    c.Config.Site.Language,
		},
	}, generator.Dependencies{
		Content:  c.contentSvc,
		Renderer: renderer,
		Resolver: c.resolver,
		Logger:   c.loggerProvider,
	})
	if err != nil {
		return nil, err
	}
	c.generatorSvc = svc
	return c.generatorSvc, nil
}

// Publisher returns the configured publisher, wiring the S3 publisher on
// first use when publishing is enabled (lazy). With publishing disabled it
// returns a no-op publisher.
func (c *Container) Publisher(ctx context.Context) (publish.Publisher, error) {
	if c.publisher != nil {
		return c.publisher, nil
	}
	if !c.Config.Features.Publish {
		c.publisher = publish.NoopPublisher{}
		return c.publisher, nil
	}

	pub, err := publish.NewS3Publisher(ctx, publish.S3Config{
		Bucket: c.Config.Publish.Bucket,
		Prefix: c.Config.Publish.Prefix,
		Region: c.Config.Publish.Region,
	}, c.loggerProvider)
	if err != nil {
		return nil, err
	}
	c.publisher = pub
	return c.publisher, nil
}

// Watcher returns the source watcher for the preview server's watch mode
// (lazy). Watch dirs are the content, templates, assets and themes dirs;
// missing ones are skipped at run time.
func (c *Container) Watcher() (*server.Watcher, error) {
	if c.watcher != nil {
		return c.watcher, nil
	}

	gen, err := c.GeneratorService()
	if err != nil {
		return nil, err
	}

	watcher, err := server.NewWatcher(server.WatchConfig{
		Dirs:     c.watchDirs(),
		Debounce: c.Config.DebounceDuration(),
	}, server.WatchDependencies{
		Generator: gen,
		Content:   c.contentSvc,
		Logger:    c.loggerProvider,
	})
	if err != nil {
		return nil, err
	}
	c.watcher = watcher
	return c.watcher, nil
}

func (c *Container) watchDirs() []string {
	candidates := []string{
		c.Config.Content.Dir,
		c.Config.Generator.TemplatesDir,
		c.Config.Generator.AssetsDir,
		c.Config.Generator.ThemesDir,
	}
	dirs := make([]string, 0, len(candidates))
	for _, dir := range candidates {
		if trimmed := strings.TrimSpace(dir); trimmed != "" {
			dirs = append(dirs, trimmed)
		}
	}
	return dirs
}
