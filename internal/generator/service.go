// Package generator renders the content collections into a static site:
// HTML pages, feeds, sitemap, robots, and copied assets. Output flows through
// an artifact writer seam so builds can target the local filesystem, a
// storage provider, or memory in tests.
package generator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-portfolio/content"
	contentsvc "github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/internal/urls"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled  = errors.New("generator: service disabled")
	errRendererRequired = errors.New("generator: template renderer is required")
	errContentRequired  = errors.New("generator: content service is required")
)

// Service describes the static site generator contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	BuildPage(ctx context.Context, slug string) error
	BuildAssets(ctx context.Context) error
	BuildSitemap(ctx context.Context) error
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	OutputDir       string
	BaseURL         string
	CleanBuild      bool
	Incremental     bool
	CopyAssets      bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeeds   bool
	Workers         int
	AssetsDir       string
	// AssetsFS overrides AssetsDir for tests and embedded site assets.
	AssetsFS fs.FS
	Theming  ThemingConfig
	Site     SiteInfo
}

// SiteInfo feeds the template context and the feeds/sitemap channel data.
type SiteInfo struct {
	Title       string
	Description string
	Author      string
	Email       string
	Language    string
}

// BuildOptions narrows the scope of a generator run.
type BuildOptions struct {
	// Slugs restricts the run to the named post/project pages.
	Slugs []string
	// Force bypasses the incremental manifest and rebuilds everything.
	Force bool
	// DryRun renders without writing artifacts.
	DryRun bool
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	PagesBuilt    int
	PagesSkipped  int
	AssetsBuilt   int
	AssetsSkipped int
	FeedsBuilt    int
	Duration      time.Duration
	Rendered      []BuiltPage
	Diagnostics   []RenderDiagnostic
	Errors        []error
	DryRun        bool
}

// BuiltPage captures a rendered page and where it landed.
type BuiltPage struct {
	Kind         string
	Route        string
	Output       string
	Template     string
	HTML         string
	Hash         string
	Checksum     string
	LastModified time.Time
	Duration     time.Duration
}

// RenderDiagnostic records rendering timing and errors for individual pages.
type RenderDiagnostic struct {
	Kind     string
	Route    string
	Template string
	Duration time.Duration
	Skipped  bool
	Err      error
}

type renderOutcome struct {
	page       BuiltPage
	diagnostic RenderDiagnostic
	err        error
	skipped    bool
}

// Dependencies lists the services required by the generator.
type Dependencies struct {
	Content  contentsvc.Service
	Renderer interfaces.TemplateRenderer
	Resolver *urls.Resolver
	Storage  interfaces.StorageProvider
	Logger   interfaces.LoggerProvider
}

// NewService wires a generator with the provided configuration and
// dependencies. Artifacts go to the local filesystem unless a storage
// provider is supplied.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	if deps.Content == nil {
		return nil, errContentRequired
	}
	if deps.Renderer == nil {
		return nil, errRendererRequired
	}
	resolver := deps.Resolver
	if resolver == nil {
		resolver = urls.NewResolver(urls.Config{BaseURL: cfg.BaseURL})
	}
	return &service{
		cfg:      cfg,
		deps:     deps,
		resolver: resolver,
		writer:   newArtifactWriter(deps.Storage),
		themes:   newThemeSelector(cfg.Theming),
		logger:   logging.GeneratorLogger(deps.Logger),
		now:      time.Now,
	}, nil
}

// NewDisabledService returns a Service that fails all operations with
// ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg      Config
	deps     Dependencies
	resolver *urls.Resolver
	writer   artifactWriter
	themes   *themeSelector
	logger   interfaces.Logger
	now      func() time.Time
}

type disabledService struct{}

func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := s.now()
	result := &BuildResult{DryRun: opts.DryRun}

	if s.cfg.CleanBuild && !opts.DryRun {
		if err := s.Clean(ctx); err != nil {
			return nil, err
		}
	}

	buildCtx, err := s.loadContext(ctx, opts)
	if err != nil {
		return nil, err
	}

	manifest := newBuildManifest()
	if s.cfg.Incremental && !s.cfg.CleanBuild {
		loaded, err := s.loadManifest(ctx)
		if err != nil {
			result.Errors = append(result.Errors, err)
		} else if loaded != nil {
			manifest = loaded
		}
	}

	var (
		mu       sync.Mutex
		rendered = make([]BuiltPage, 0, len(buildCtx.Jobs))
		errs     []error
	)
	collect := func(outcome renderOutcome) {
		mu.Lock()
		defer mu.Unlock()
		result.Diagnostics = append(result.Diagnostics, outcome.diagnostic)
		if outcome.err != nil {
			errs = append(errs, outcome.err)
			return
		}
		if outcome.skipped {
			result.PagesSkipped++
			return
		}
		result.PagesBuilt++
		rendered = append(rendered, outcome.page)
	}

	if err := s.renderJobs(ctx, buildCtx, manifest, opts, collect); err != nil {
		errs = append(errs, err)
	}

	sort.Slice(rendered, func(i, j int) bool {
		return rendered[i].Route < rendered[j].Route
	})

	if opts.DryRun {
		result.Rendered = rendered
		result.Duration = s.now().Sub(start)
		result.Errors = append(result.Errors, errs...)
		if len(errs) > 0 {
			return result, errors.Join(errs...)
		}
		return result, nil
	}

	if err := s.persistPages(ctx, rendered); err != nil {
		errs = append(errs, err)
	}

	if s.cfg.CopyAssets {
		summary, err := s.copyAssets(ctx, manifest, opts.Force)
		if err != nil {
			errs = append(errs, err)
		} else {
			result.AssetsBuilt += summary.Built
			result.AssetsSkipped += summary.Skipped
		}
	}

	if s.cfg.GenerateFeeds {
		count, err := s.writeFeeds(ctx, buildCtx)
		if err != nil {
			errs = append(errs, err)
		} else {
			result.FeedsBuilt = count
		}
	}

	if s.cfg.GenerateSitemap {
		sitemapPages := s.mergeForSitemap(buildCtx, rendered, manifest)
		if err := s.writeSitemap(ctx, sitemapPages, buildCtx.GeneratedAt); err != nil {
			errs = append(errs, err)
		}
	}

	if s.cfg.GenerateRobots {
		if err := s.writeRobots(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) == 0 {
		manifest.GeneratedAt = buildCtx.GeneratedAt
		for _, page := range rendered {
			manifest.setPage(manifestPage{
				Kind:         page.Kind,
				Route:        page.Route,
				Output:       page.Output,
				Template:     page.Template,
				Hash:         page.Hash,
				Checksum:     page.Checksum,
				LastModified: page.LastModified,
				RenderedAt:   buildCtx.GeneratedAt,
			})
		}
		if err := s.persistManifest(ctx, manifest); err != nil {
			errs = append(errs, err)
		}
	}

	result.Rendered = rendered
	result.Duration = s.now().Sub(start)
	if len(errs) > 0 {
		result.Errors = append(result.Errors, errs...)
		return result, errors.Join(errs...)
	}

	s.logger.Info("site build complete",
		"pages", result.PagesBuilt,
		"skipped", result.PagesSkipped,
		"assets", result.AssetsBuilt,
		"feeds", result.FeedsBuilt,
		"duration", result.Duration.String(),
	)
	return result, nil
}

func (s *service) renderJobs(
	ctx context.Context,
	buildCtx *BuildContext,
	manifest *buildManifest,
	opts BuildOptions,
	collect func(renderOutcome),
) error {
	workers := s.effectiveWorkerCount(len(buildCtx.Jobs))
	if workers <= 1 || len(buildCtx.Jobs) <= 1 {
		for _, job := range buildCtx.Jobs {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				collect(s.renderJob(ctx, buildCtx, job, manifest, opts.Force))
			}
		}
		return nil
	}

	jobs := make(chan *pageJob)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					collect(renderOutcome{
						diagnostic: RenderDiagnostic{Kind: job.Kind, Route: job.Route, Err: ctx.Err()},
						err:        ctx.Err(),
					})
					return
				default:
					collect(s.renderJob(ctx, buildCtx, job, manifest, opts.Force))
				}
			}
		}()
	}

	var err error
	for _, job := range buildCtx.Jobs {
		select {
		case <-ctx.Done():
			err = ctx.Err()
		case jobs <- job:
			continue
		}
		break
	}
	close(jobs)
	wg.Wait()
	return err
}

func (s *service) renderJob(
	ctx context.Context,
	buildCtx *BuildContext,
	job *pageJob,
	manifest *buildManifest,
	force bool,
) renderOutcome {
	outcome := renderOutcome{
		diagnostic: RenderDiagnostic{Kind: job.Kind, Route: job.Route, Template: job.Template},
	}

	select {
	case <-ctx.Done():
		outcome.err = ctx.Err()
		outcome.diagnostic.Err = ctx.Err()
		return outcome
	default:
	}

	output := joinOutputPath(s.outputBase(), buildOutputPath(job.Route))
	if s.cfg.Incremental && !force && manifest.shouldSkipPage(job.Route, job.Hash, output) {
		outcome.skipped = true
		outcome.diagnostic.Skipped = true
		return outcome
	}

	templateCtx := s.templateContext(buildCtx, job)

	start := s.now()
	html, err := s.deps.Renderer.RenderTemplate(job.Template, templateCtx)
	duration := s.now().Sub(start)
	outcome.diagnostic.Duration = duration
	if err != nil {
		wrapped := fmt.Errorf("generator: render template %q for %s: %w", job.Template, job.Route, err)
		outcome.err = wrapped
		outcome.diagnostic.Err = wrapped
		return outcome
	}

	outcome.page = BuiltPage{
		Kind:         job.Kind,
		Route:        job.Route,
		Output:       output,
		Template:     job.Template,
		HTML:         html,
		Hash:         job.Hash,
		Checksum:     computeHashFromString(html),
		LastModified: job.LastModified,
		Duration:     duration,
	}
	return outcome
}

func (s *service) persistPages(ctx context.Context, pages []BuiltPage) error {
	if len(pages) == 0 {
		return nil
	}
	baseDir := s.outputBase()
	dirCache := map[string]struct{}{}
	if baseDir != "" {
		dirCache[baseDir] = struct{}{}
		if err := s.writer.EnsureDir(ctx, baseDir); err != nil {
			return err
		}
	}
	for _, page := range pages {
		if err := ensureDir(ctx, s.writer, dirCache, path.Dir(page.Output)); err != nil {
			return err
		}
		req := writeFileRequest{
			Path:        page.Output,
			Content:     strings.NewReader(page.HTML),
			Size:        int64(len(page.HTML)),
			Category:    categoryPage,
			ContentType: "text/html; charset=utf-8",
			Checksum:    page.Checksum,
			Metadata: map[string]string{
				"kind":     page.Kind,
				"route":    page.Route,
				"template": page.Template,
			},
		}
		if err := s.writer.WriteFile(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// mergeForSitemap combines freshly rendered pages with manifest entries for
// pages skipped by the incremental check, so the sitemap always covers the
// whole site.
func (s *service) mergeForSitemap(
	buildCtx *BuildContext,
	rendered []BuiltPage,
	manifest *buildManifest,
) []BuiltPage {
	byRoute := make(map[string]BuiltPage, len(rendered))
	for _, page := range rendered {
		byRoute[page.Route] = page
	}

	merged := make([]BuiltPage, 0, len(buildCtx.Jobs))
	for _, job := range buildCtx.Jobs {
		if job.Kind == pageKindNotFound {
			continue
		}
		if page, ok := byRoute[job.Route]; ok {
			merged = append(merged, page)
			continue
		}
		if entry, ok := manifest.lookupPage(job.Route); ok {
			merged = append(merged, BuiltPage{
				Kind:         entry.Kind,
				Route:        entry.Route,
				Output:       entry.Output,
				Template:     entry.Template,
				Hash:         entry.Hash,
				Checksum:     entry.Checksum,
				LastModified: entry.LastModified,
			})
			continue
		}
		merged = append(merged, BuiltPage{
			Kind:         job.Kind,
			Route:        job.Route,
			Template:     job.Template,
			LastModified: job.LastModified,
		})
	}
	return merged
}

// BuildPage rebuilds the single post or project page identified by slug.
func (s *service) BuildPage(ctx context.Context, slug string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		return fmt.Errorf("generator: slug is required")
	}
	_, err := s.Build(ctx, BuildOptions{Slugs: []string{slug}, Force: true})
	return err
}

// BuildAssets copies theme and site assets without rendering pages.
func (s *service) BuildAssets(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	_, err := s.copyAssets(ctx, newBuildManifest(), true)
	return err
}

// BuildSitemap renders sitemap.xml (and robots.txt when enabled) from the
// current content snapshot without writing pages.
func (s *service) BuildSitemap(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	buildCtx, err := s.loadContext(ctx, BuildOptions{})
	if err != nil {
		return err
	}
	pages := make([]BuiltPage, 0, len(buildCtx.Jobs))
	for _, job := range buildCtx.Jobs {
		if job.Kind == pageKindNotFound {
			continue
		}
		pages = append(pages, BuiltPage{
			Kind:         job.Kind,
			Route:        job.Route,
			LastModified: job.LastModified,
		})
	}
	if err := s.writeSitemap(ctx, pages, buildCtx.GeneratedAt); err != nil {
		return err
	}
	if s.cfg.GenerateRobots {
		return s.writeRobots(ctx)
	}
	return nil
}

// Clean removes the build output directory.
func (s *service) Clean(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	base := s.outputBase()
	if base == "" {
		return fmt.Errorf("generator: refusing to clean empty output dir")
	}
	return s.writer.RemoveAll(ctx, base)
}

func (s *service) loadManifest(ctx context.Context) (*buildManifest, error) {
	target := s.manifestTargetPath()
	data, err := s.writer.ReadFile(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("generator: read manifest: %w", err)
	}
	if len(data) == 0 {
		return newBuildManifest(), nil
	}
	return parseManifest(data)
}

func (s *service) manifestTargetPath() string {
	return joinOutputPath(s.outputBase(), manifestFileName)
}

func (s *service) persistManifest(ctx context.Context, manifest *buildManifest) error {
	data, err := manifest.marshal()
	if err != nil {
		return err
	}
	target := s.manifestTargetPath()
	if err := ensureDir(ctx, s.writer, map[string]struct{}{}, path.Dir(target)); err != nil {
		return err
	}
	req := writeFileRequest{
		Path:        target,
		Content:     strings.NewReader(string(data)),
		Size:        int64(len(data)),
		Category:    categoryManifest,
		ContentType: "application/json",
		Checksum:    computeHash(data),
		Metadata: map[string]string{
			"generated_at": manifest.GeneratedAt.UTC().Format(time.RFC3339),
		},
	}
	return s.writer.WriteFile(ctx, req)
}

func (s *service) writeSitemap(ctx context.Context, pages []BuiltPage, generatedAt time.Time) error {
	body := buildSitemap(s.cfg.BaseURL, pages, generatedAt)
	target := joinOutputPath(s.outputBase(), "sitemap.xml")
	if err := ensureDir(ctx, s.writer, map[string]struct{}{}, path.Dir(target)); err != nil {
		return err
	}
	req := writeFileRequest{
		Path:        target,
		Content:     strings.NewReader(body),
		Size:        int64(len(body)),
		Category:    categorySitemap,
		ContentType: "application/xml",
		Checksum:    computeHashFromString(body),
		Metadata: map[string]string{
			"generated_at": generatedAt.UTC().Format(time.RFC3339),
		},
	}
	return s.writer.WriteFile(ctx, req)
}

func (s *service) writeRobots(ctx context.Context) error {
	body := buildRobots(s.cfg.BaseURL, s.cfg.GenerateSitemap)
	target := joinOutputPath(s.outputBase(), "robots.txt")
	if err := ensureDir(ctx, s.writer, map[string]struct{}{}, path.Dir(target)); err != nil {
		return err
	}
	req := writeFileRequest{
		Path:        target,
		Content:     strings.NewReader(body),
		Size:        int64(len(body)),
		Category:    categoryRobots,
		ContentType: "text/plain; charset=utf-8",
		Checksum:    computeHashFromString(body),
		Metadata: map[string]string{
			"generated_at": s.now().UTC().Format(time.RFC3339),
		},
	}
	return s.writer.WriteFile(ctx, req)
}

func (s *service) outputBase() string {
	return strings.Trim(strings.TrimSpace(s.cfg.OutputDir), "/")
}

func (s *service) effectiveWorkerCount(jobCount int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if jobCount > 0 && workers > jobCount {
		return jobCount
	}
	return workers
}

func ensureDir(ctx context.Context, writer artifactWriter, cache map[string]struct{}, dir string) error {
	dir = strings.TrimSpace(dir)
	if dir == "" || dir == "." {
		return nil
	}
	if cache != nil {
		if _, ok := cache[dir]; ok {
			return nil
		}
		cache[dir] = struct{}{}
	}
	return writer.EnsureDir(ctx, dir)
}

func joinOutputPath(base string, rel string) string {
	if strings.TrimSpace(base) == "" {
		return strings.TrimLeft(rel, "/")
	}
	return path.Join(strings.Trim(base, "/"), rel)
}

func computeHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func computeHashFromString(content string) string {
	return computeHash([]byte(content))
}

// combinedHash fingerprints a listing page from the checksums of its member
// posts so the incremental check notices membership and content changes.
func combinedHash(parts ...string) string {
	h := sha256.New()
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func postChecksums(posts []content.Post) []string {
	out := make([]string, 0, len(posts))
	for _, post := range posts {
		out = append(out, post.Slug+"@"+post.Checksum)
	}
	return out
}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) BuildPage(context.Context, string) error {
	return ErrServiceDisabled
}

func (disabledService) BuildAssets(context.Context) error {
	return ErrServiceDisabled
}

func (disabledService) BuildSitemap(context.Context) error {
	return ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error {
	return ErrServiceDisabled
}
