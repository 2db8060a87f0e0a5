// Package content loads the site's markdown collections into typed records
// and answers queries over them. Records are rebuilt on demand; a checksum
// keyed cache keeps unchanged documents from being re-rendered across
// reloads, which keeps watch-mode rebuilds cheap.
package content

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-portfolio/content"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/internal/urls"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// Service exposes the loaded content collections.
type Service interface {
	Load(ctx context.Context) (*Library, error)
	Reload(ctx context.Context) (*Library, error)
	Posts(ctx context.Context, opts ListOptions) ([]content.Post, error)
	Projects(ctx context.Context) ([]content.Post, error)
	Work(ctx context.Context) ([]content.WorkExperience, error)
	Education(ctx context.Context) ([]content.Education, error)
	Search(ctx context.Context, query string) ([]content.Post, error)
	Post(ctx context.Context, slug string) (content.Post, error)
}

// ListOptions narrows the post listings. The zero value returns every
// published blog post, newest first.
type ListOptions struct {
	IncludeDrafts bool
	Category      string
	Tag           string
	Limit         int
}

// Library is an immutable snapshot of every collection. Accessors return
// copies so callers cannot mutate the snapshot under the service.
type Library struct {
	posts     []content.Post
	projects  []content.Post
	work      []content.WorkExperience
	education []content.Education
	bySlug    map[string]content.Post
	loadedAt  time.Time
}

// Posts returns the blog collection sorted newest first, drafts included.
func (l *Library) Posts() []content.Post {
	return clonePosts(l.posts)
}

// Projects returns the projects collection sorted newest first, drafts included.
func (l *Library) Projects() []content.Post {
	return clonePosts(l.projects)
}

// Work returns the work history sorted by start date descending.
func (l *Library) Work() []content.WorkExperience {
	out := make([]content.WorkExperience, len(l.work))
	copy(out, l.work)
	return out
}

// Education returns the education entries sorted by start date descending.
func (l *Library) Education() []content.Education {
	out := make([]content.Education, len(l.education))
	copy(out, l.education)
	return out
}

// LoadedAt reports when the snapshot was built.
func (l *Library) LoadedAt() time.Time {
	return l.loadedAt
}

func (l *Library) lookup(slug string) (content.Post, bool) {
	post, ok := l.bySlug[strings.Trim(strings.TrimSpace(slug), "/")]
	return post, ok
}

func clonePosts(posts []content.Post) []content.Post {
	out := make([]content.Post, len(posts))
	copy(out, posts)
	return out
}

// Config controls which collections are loaded and how posts are measured.
type Config struct {
	Collections    []string
	WordsPerMinute int
}

// Dependencies carries the collaborators the service needs.
type Dependencies struct {
	Markdown interfaces.MarkdownService
	Resolver *urls.Resolver
	Logger   interfaces.LoggerProvider
}

type service struct {
	cfg      Config
	markdown interfaces.MarkdownService
	resolver *urls.Resolver
	logger   interfaces.Logger

	mu      sync.Mutex
	library *Library
	cache   map[string]cachedDocument
}

// cachedDocument memoises the record built from a source file. Entries are
// keyed by source path and invalidated by checksum.
type cachedDocument struct {
	checksum string
	post     content.Post
	work     content.WorkExperience
	edu      content.Education
}

// NewService builds a collections service. The markdown dependency is
// required; everything else has workable defaults.
func NewService(cfg Config, deps Dependencies) (Service, error) {
	if deps.Markdown == nil {
		return nil, errors.New("content service: markdown service is required")
	}
	if len(cfg.Collections) == 0 {
		cfg.Collections = content.Collections()
	}
	for _, name := range cfg.Collections {
		if !content.IsValidCollection(name) {
			return nil, fmt.Errorf("content service: unknown collection %q", name)
		}
	}

	return &service{
		cfg:      cfg,
		markdown: deps.Markdown,
		resolver: deps.Resolver,
		logger:   logging.ContentLogger(deps.Logger),
		cache:    make(map[string]cachedDocument),
	}, nil
}

// Load returns the current snapshot, building it on first use.
func (s *service) Load(ctx context.Context) (*Library, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.library != nil {
		return s.library, nil
	}
	return s.rebuild(ctx)
}

// Reload discards the snapshot and rebuilds it. Unchanged documents are
// served from the checksum cache without re-rendering.
func (s *service) Reload(ctx context.Context) (*Library, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.library = nil
	return s.rebuild(ctx)
}

func (s *service) rebuild(ctx context.Context) (*Library, error) {
	started := time.Now()
	lib := &Library{bySlug: make(map[string]content.Post)}

	for _, collection := range s.cfg.Collections {
		if err := s.loadCollection(ctx, lib, collection); err != nil {
			return nil, err
		}
	}

	lib.posts = content.SortPostsByDate(lib.posts)
	lib.projects = content.SortPostsByDate(lib.projects)
	lib.work = content.SortWorkByStartDate(lib.work)
	lib.education = content.SortEducationByStartDate(lib.education)
	lib.loadedAt = time.Now()

	s.logger.Info("content library loaded",
		"posts", len(lib.posts),
		"projects", len(lib.projects),
		"work", len(lib.work),
		"education", len(lib.education),
		"duration", time.Since(started).String(),
	)

	s.library = lib
	return lib, nil
}

func (s *service) loadCollection(ctx context.Context, lib *Library, collection string) error {
	docs, err := s.markdown.LoadDirectory(ctx, collection, interfaces.LoadOptions{SkipRender: true})
	if err != nil {
		// A collection directory that does not exist is an empty collection.
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("collection directory missing", "collection", collection)
			return nil
		}
		return fmt.Errorf("content service: load %s: %w", collection, err)
	}

	for _, doc := range docs {
		if err := validateFrontMatter(collection, doc.FilePath, doc.FrontMatter.Raw); err != nil {
			return err
		}

		checksum := hex.EncodeToString(doc.Checksum)
		cached, hit := s.cache[doc.FilePath]
		if hit && cached.checksum == checksum {
			s.appendRecord(lib, collection, cached)
			continue
		}

		if _, err := s.markdown.RenderDocument(ctx, doc, interfaces.ParseOptions{}); err != nil {
			return fmt.Errorf("content service: render %s: %w", doc.FilePath, err)
		}

		entry := cachedDocument{checksum: checksum}
		switch collection {
		case content.CollectionWork:
			entry.work, err = buildWork(doc)
		case content.CollectionEducation:
			entry.edu, err = buildEducation(doc)
		default:
			entry.post, err = buildPost(doc, collection, s.cfg.WordsPerMinute, s.resolver)
		}
		if err != nil {
			return err
		}

		s.cache[doc.FilePath] = entry
		s.appendRecord(lib, collection, entry)
	}
	return nil
}

func (s *service) appendRecord(lib *Library, collection string, entry cachedDocument) {
	switch collection {
	case content.CollectionBlog:
		lib.posts = append(lib.posts, entry.post)
		lib.bySlug[entry.post.Slug] = entry.post
	case content.CollectionProjects:
		lib.projects = append(lib.projects, entry.post)
		lib.bySlug[entry.post.Slug] = entry.post
	case content.CollectionWork:
		lib.work = append(lib.work, entry.work)
	case content.CollectionEducation:
		lib.education = append(lib.education, entry.edu)
	}
}

// Posts returns blog posts per the list options, newest first. Drafts are
// excluded unless IncludeDrafts is set.
func (s *service) Posts(ctx context.Context, opts ListOptions) ([]content.Post, error) {
	lib, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	posts := lib.Posts()
	if !opts.IncludeDrafts {
		posts = content.ExcludeDrafts(posts)
	}
	if opts.Category != "" {
		posts = content.FilterPostsByCategory(posts, opts.Category)
	}
	if opts.Tag != "" {
		posts = content.FilterPostsByTag(posts, opts.Tag)
	}
	if opts.Limit > 0 && len(posts) > opts.Limit {
		posts = posts[:opts.Limit]
	}
	return posts, nil
}

// Projects returns published project entries, newest first.
func (s *service) Projects(ctx context.Context) ([]content.Post, error) {
	lib, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return content.ExcludeDrafts(lib.Projects()), nil
}

// Work returns the work history, most recent position first.
func (s *service) Work(ctx context.Context) ([]content.WorkExperience, error) {
	lib, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return lib.Work(), nil
}

// Education returns education entries, most recent first.
func (s *service) Education(ctx context.Context) ([]content.Education, error) {
	lib, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return lib.Education(), nil
}

// Search matches published posts and projects against a query string.
func (s *service) Search(ctx context.Context, query string) ([]content.Post, error) {
	lib, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	pool := append(content.ExcludeDrafts(lib.Posts()), content.ExcludeDrafts(lib.Projects())...)
	return content.SearchPosts(content.SortPostsByDate(pool), query), nil
}

// Post fetches a single published post or project by its slug. Drafts behave
// as missing so they never leak through direct lookups.
func (s *service) Post(ctx context.Context, slug string) (content.Post, error) {
	lib, err := s.Load(ctx)
	if err != nil {
		return content.Post{}, err
	}
	post, ok := lib.lookup(slug)
	if !ok || post.Draft {
		return content.Post{}, &content.PostNotFoundError{Slug: slug}
	}
	return post, nil
}
