package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-portfolio/content"
	contentsvc "github.com/goliatone/go-portfolio/internal/content"
	"github.com/goliatone/go-portfolio/internal/urls"
	gotheme "github.com/goliatone/go-theme"
)

// Page kinds produced by a full build.
const (
	pageKindHome          = "home"
	pageKindPost          = "post"
	pageKindProject       = "project"
	pageKindBlogIndex     = "blog_index"
	pageKindProjectsIndex = "projects_index"
	pageKindCategory      = "category"
	pageKindTag           = "tag"
	pageKindWork          = "work"
	pageKindEducation     = "education"
	pageKindContact       = "contact"
	pageKindNotFound      = "404"
)

// pageJob is a unit of render work: one output page with the data it needs.
type pageJob struct {
	Kind         string
	Route        string
	Template     string
	Title        string
	Hash         string
	LastModified time.Time

	Post      *content.Post
	Posts     []content.Post
	Work      []content.WorkExperience
	Education []content.Education
	Category  string
	Tag       string
}

// BuildContext carries the assembled jobs plus the snapshot-wide collections.
type BuildContext struct {
	GeneratedAt time.Time
	Jobs        []*pageJob

	Posts      []content.Post
	Projects   []content.Post
	Work       []content.WorkExperience
	Education  []content.Education
	Categories []string
	Tags       []string
}

// TemplateContext is the data contract passed to the template renderer.
type TemplateContext struct {
	Site    SiteMetadata
	Page    PageContext
	Build   BuildMetadata
	Theme   ThemeContext
	Helpers TemplateHelpers
}

// SiteMetadata exposes site-wide information to templates.
type SiteMetadata struct {
	Title       string
	Description string
	BaseURL     string
	Author      string
	Email       string
	Language    string
}

// BuildMetadata surfaces high level build information to templates.
type BuildMetadata struct {
	GeneratedAt time.Time
}

// PageContext contains the resolved data for a single output page.
type PageContext struct {
	Kind       string
	Route      string
	Title      string
	Post       *content.Post
	Posts      []content.Post
	Work       []content.WorkExperience
	Education  []content.Education
	Category   string
	Tag        string
	Categories []string
	Tags       []string
}

// ThemeContext surfaces go-theme selection data to templates.
type ThemeContext struct {
	Name      string
	Variant   string
	Tokens    map[string]string
	CSSVars   map[string]string
	Partials  map[string]string
	AssetURL  func(string) string
	Template  func(string, string) string
	Selection *gotheme.Selection
}

// TemplateHelpers exposes convenience helpers for template authors.
type TemplateHelpers struct {
	baseURL string
}

func newTemplateHelpers(baseURL string) TemplateHelpers {
	return TemplateHelpers{baseURL: strings.TrimRight(baseURL, "/")}
}

// BaseURL returns the configured site base URL.
func (h TemplateHelpers) BaseURL() string {
	return h.baseURL
}

// WithBaseURL prefixes the provided path with the configured base URL.
func (h TemplateHelpers) WithBaseURL(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return h.baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if h.baseURL == "" {
		return path
	}
	return h.baseURL + path
}

// loadContext pulls the content snapshot and assembles the page jobs for the
// requested build scope.
func (s *service) loadContext(ctx context.Context, opts BuildOptions) (*BuildContext, error) {
	posts, err := s.deps.Content.Posts(ctx, contentsvc.ListOptions{})
	if err != nil {
		return nil, err
	}
	projects, err := s.deps.Content.Projects(ctx)
	if err != nil {
		return nil, err
	}
	work, err := s.deps.Content.Work(ctx)
	if err != nil {
		return nil, err
	}
	education, err := s.deps.Content.Education(ctx)
	if err != nil {
		return nil, err
	}

	buildCtx := &BuildContext{
		GeneratedAt: s.now().UTC(),
		Posts:       posts,
		Projects:    projects,
		Work:        work,
		Education:   education,
		Categories:  content.Categories(posts),
		Tags:        content.Tags(posts),
	}

	if len(opts.Slugs) > 0 {
		jobs, err := s.pageJobsForSlugs(buildCtx, opts.Slugs)
		if err != nil {
			return nil, err
		}
		buildCtx.Jobs = jobs
		return buildCtx, nil
	}

	buildCtx.Jobs = s.allPageJobs(buildCtx)
	return buildCtx, nil
}

func (s *service) allPageJobs(buildCtx *BuildContext) []*pageJob {
	jobs := make([]*pageJob, 0,
		len(buildCtx.Posts)+len(buildCtx.Projects)+len(buildCtx.Categories)+len(buildCtx.Tags)+8)

	recent := buildCtx.Posts
	if len(recent) > 5 {
		recent = recent[:5]
	}
	jobs = append(jobs, &pageJob{
		Kind:         pageKindHome,
		Route:        "/",
		Template:     templateOrDefault("", pageKindHome),
		Title:        s.cfg.Site.Title,
		Posts:        recent,
		Hash:         combinedHash(postChecksums(recent)...),
		LastModified: newestPostDate(recent),
	})

	jobs = append(jobs, &pageJob{
		Kind:         pageKindBlogIndex,
		Route:        s.routeOrPanicFree(urls.RouteBlogIndex),
		Template:     pageKindBlogIndex,
		Title:        "Blog",
		Posts:        buildCtx.Posts,
		Hash:         combinedHash(postChecksums(buildCtx.Posts)...),
		LastModified: newestPostDate(buildCtx.Posts),
	})

	jobs = append(jobs, &pageJob{
		Kind:         pageKindProjectsIndex,
		Route:        s.routeOrPanicFree(urls.RouteProjects),
		Template:     pageKindProjectsIndex,
		Title:        "Projects",
		Posts:        buildCtx.Projects,
		Hash:         combinedHash(postChecksums(buildCtx.Projects)...),
		LastModified: newestPostDate(buildCtx.Projects),
	})

	for i := range buildCtx.Posts {
		post := buildCtx.Posts[i]
		jobs = append(jobs, postJob(&post, pageKindPost))
	}
	for i := range buildCtx.Projects {
		project := buildCtx.Projects[i]
		jobs = append(jobs, postJob(&project, pageKindProject))
	}

	for _, category := range buildCtx.Categories {
		members := content.FilterPostsByCategory(buildCtx.Posts, category)
		jobs = append(jobs, &pageJob{
			Kind:         pageKindCategory,
			Route:        s.routeWithParam(urls.RouteCategory, "category", category),
			Template:     pageKindCategory,
			Title:        category,
			Posts:        members,
			Category:     category,
			Hash:         combinedHash(append([]string{"category:" + category}, postChecksums(members)...)...),
			LastModified: newestPostDate(members),
		})
	}

	for _, tag := range buildCtx.Tags {
		members := content.FilterPostsByTag(buildCtx.Posts, tag)
		jobs = append(jobs, &pageJob{
			Kind:         pageKindTag,
			Route:        s.routeWithParam(urls.RouteTag, "tag", tag),
			Template:     pageKindTag,
			Title:        tag,
			Posts:        members,
			Tag:          tag,
			Hash:         combinedHash(append([]string{"tag:" + tag}, postChecksums(members)...)...),
			LastModified: newestPostDate(members),
		})
	}

	jobs = append(jobs, &pageJob{
		Kind:      pageKindWork,
		Route:     s.routeOrPanicFree(urls.RouteWork),
		Template:  pageKindWork,
		Title:     "Work",
		Work:      buildCtx.Work,
		Education: buildCtx.Education,
		Hash:      combinedHash(workChecksums(buildCtx.Work)...),
	})

	jobs = append(jobs, &pageJob{
		Kind:      pageKindEducation,
		Route:     s.routeOrPanicFree(urls.RouteEducation),
		Template:  pageKindEducation,
		Title:     "Education",
		Education: buildCtx.Education,
		Hash:      combinedHash(educationChecksums(buildCtx.Education)...),
	})

	jobs = append(jobs, &pageJob{
		Kind:     pageKindContact,
		Route:    s.routeOrPanicFree(urls.RouteContact),
		Template: pageKindContact,
		Title:    "Contact",
		Hash:     combinedHash("contact"),
	})

	jobs = append(jobs, &pageJob{
		Kind:     pageKindNotFound,
		Route:    s.routeOrPanicFree(urls.RouteNotFound),
		Template: pageKindNotFound,
		Title:    "Not Found",
		Hash:     combinedHash("404"),
	})

	return jobs
}

func (s *service) pageJobsForSlugs(buildCtx *BuildContext, slugs []string) ([]*pageJob, error) {
	bySlug := make(map[string]*pageJob, len(buildCtx.Posts)+len(buildCtx.Projects))
	for i := range buildCtx.Posts {
		post := buildCtx.Posts[i]
		bySlug[post.Slug] = postJob(&post, pageKindPost)
	}
	for i := range buildCtx.Projects {
		project := buildCtx.Projects[i]
		bySlug[project.Slug] = postJob(&project, pageKindProject)
	}

	jobs := make([]*pageJob, 0, len(slugs))
	for _, slug := range slugs {
		slug = strings.Trim(strings.TrimSpace(slug), "/")
		job, ok := bySlug[slug]
		if !ok {
			return nil, &content.PostNotFoundError{Slug: slug}
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func postJob(post *content.Post, kind string) *pageJob {
	return &pageJob{
		Kind:         kind,
		Route:        strings.TrimRight(post.Permalink, "/"),
		Template:     templateOrDefault(post.Template, kind),
		Title:        post.Title,
		Post:         post,
		Hash:         combinedHash(post.Slug + "@" + post.Checksum),
		LastModified: post.LastModified,
	}
}

func (s *service) templateContext(buildCtx *BuildContext, job *pageJob) TemplateContext {
	return TemplateContext{
		Site: SiteMetadata{
			Title:       s.cfg.Site.Title,
			Description: s.cfg.Site.Description,
			BaseURL:     strings.TrimRight(s.cfg.BaseURL, "/"),
			Author:      s.cfg.Site.Author,
			Email:       s.cfg.Site.Email,
			Language:    s.cfg.Site.Language,
		},
		Page: PageContext{
			Kind:       job.Kind,
			Route:      job.Route,
			Title:      job.Title,
			Post:       job.Post,
			Posts:      job.Posts,
			Work:       job.Work,
			Education:  job.Education,
			Category:   job.Category,
			Tag:        job.Tag,
			Categories: buildCtx.Categories,
			Tags:       buildCtx.Tags,
		},
		Build:   BuildMetadata{GeneratedAt: buildCtx.GeneratedAt},
		Theme:   s.themes.Context(),
		Helpers: newTemplateHelpers(s.cfg.BaseURL),
	}
}

func templateOrDefault(override, fallback string) string {
	override = strings.TrimSpace(override)
	if override != "" {
		return override
	}
	return fallback
}

// routeOrPanicFree resolves a fixed route, falling back to a literal path
// derived from the route name if the resolver rejects it.
func (s *service) routeOrPanicFree(name string) string {
	route, err := s.resolver.Route(name, nil)
	if err != nil {
		return "/" + strings.ReplaceAll(name, "_", "-")
	}
	return relativeRoute(route, s.resolver.BaseURL())
}

func (s *service) routeWithParam(name, key, value string) string {
	route, err := s.resolver.Route(name, map[string]any{key: value})
	if err != nil {
		return fmt.Sprintf("/%s/%s", strings.ReplaceAll(name, "_", "-"), value)
	}
	return relativeRoute(route, s.resolver.BaseURL())
}

// relativeRoute strips the base URL prefix so output paths stay site relative.
func relativeRoute(route, baseURL string) string {
	if baseURL != "" && strings.HasPrefix(route, baseURL) {
		route = strings.TrimPrefix(route, baseURL)
	}
	if route == "" {
		return "/"
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return route
}

func newestPostDate(posts []content.Post) time.Time {
	var newest time.Time
	for _, post := range posts {
		candidate := post.LastModified
		if candidate.IsZero() {
			candidate = post.Date
		}
		if candidate.After(newest) {
			newest = candidate
		}
	}
	return newest
}

func workChecksums(entries []content.WorkExperience) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Slug+"@"+computeHashFromString(entry.Company+entry.Role+entry.Summary+entry.HTML))
	}
	return out
}

func educationChecksums(entries []content.Education) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Slug+"@"+computeHashFromString(entry.Institution+entry.Summary+entry.HTML))
	}
	return out
}
