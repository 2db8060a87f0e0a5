// Package urls centralises route and permalink construction so every surface
// (content records, generated pages, feeds, sitemap) agrees on the site's URL
// space. Routes are managed through go-urlkit route groups.
package urls

import (
	"fmt"
	"strings"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"
)

// DefaultGroup is the route group used when no override is configured.
const DefaultGroup = "site"

// Route names registered under the default group.
const (
	RouteHome       = "home"
	RouteBlogIndex  = "blog_index"
	RoutePost       = "post"
	RouteProjects   = "projects_index"
	RouteProject    = "project"
	RouteCategory   = "category"
	RouteTag        = "tag"
	RouteWork       = "work"
	RouteEducation  = "education"
	RouteContact    = "contact"
	RouteSearch     = "search"
	RouteNotFound   = "not_found"
	RouteRSSFeed    = "rss"
	RouteAtomFeed   = "atom"
	RouteSitemapXML = "sitemap"
)

// Config wires a resolver from runtime configuration. When RouteConfig is nil
// the default portfolio route table is installed.
type Config struct {
	BaseURL     string
	Group       string
	RouteConfig *urlkit.Config
}

// DefaultRouteConfig returns the route table the portfolio site ships with.
func DefaultRouteConfig(baseURL string) *urlkit.Config {
	return &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    DefaultGroup,
				BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
				Paths: map[string]string{
					RouteHome:       "/",
					RouteBlogIndex:  "/blog",
					RoutePost:       "/blog/:slug",
					RouteProjects:   "/projects",
					RouteProject:    "/projects/:slug",
					RouteCategory:   "/blog/categories/:category",
					RouteTag:        "/blog/tags/:tag",
					RouteWork:       "/work",
					RouteEducation:  "/education",
					RouteContact:    "/contact",
					RouteSearch:     "/search",
					RouteNotFound:   "/404",
					RouteRSSFeed:    "/rss.xml",
					RouteAtomFeed:   "/atom.xml",
					RouteSitemapXML: "/sitemap.xml",
				},
			},
		},
	}
}

// Resolver builds site-relative and absolute URLs from named routes.
type Resolver struct {
	manager *urlkit.RouteManager
	group   string
	baseURL string

	mu         sync.RWMutex
	groupCache map[string]*urlkit.Group
}

// NewResolver constructs a resolver backed by go-urlkit.
func NewResolver(cfg Config) *Resolver {
	group := strings.TrimSpace(cfg.Group)
	if group == "" {
		group = DefaultGroup
	}
	routeConfig := cfg.RouteConfig
	if routeConfig == nil {
		routeConfig = DefaultRouteConfig(cfg.BaseURL)
	}

	return &Resolver{
		manager:    urlkit.NewRouteManager(routeConfig),
		group:      group,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		groupCache: make(map[string]*urlkit.Group),
	}
}

// Route builds the URL registered under name, substituting the given params.
func (r *Resolver) Route(name string, params map[string]any) (string, error) {
	if r == nil || r.manager == nil {
		return "", fmt.Errorf("urls: resolver not configured")
	}

	group, err := r.groupForPath(r.group)
	if err != nil {
		return "", err
	}

	builder, err := r.safeBuilder(group, name)
	if err != nil {
		return "", err
	}

	for key, val := range params {
		builder.WithParam(key, val)
	}

	url, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("urls: build route %q: %w", name, err)
	}
	return url, nil
}

// Permalink returns the canonical site-relative path for a collection slug.
// Slugs are collection prefixed ("blog/flutter/my-post"), so the permalink is
// the slug rooted and terminated with a slash: "/blog/flutter/my-post/".
func (r *Resolver) Permalink(slug string) string {
	trimmed := strings.Trim(strings.TrimSpace(slug), "/")
	if trimmed == "" {
		return "/"
	}
	return "/" + trimmed + "/"
}

// Absolute joins a site-relative path onto the configured base URL. Paths that
// already carry a scheme pass through untouched.
func (r *Resolver) Absolute(path string) string {
	path = strings.TrimSpace(path)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := r.baseURL
	if base == "" {
		base = "http://localhost"
	}
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// BaseURL reports the configured base URL with any trailing slash removed.
func (r *Resolver) BaseURL() string {
	return r.baseURL
}

func (r *Resolver) groupForPath(path string) (*urlkit.Group, error) {
	r.mu.RLock()
	group, ok := r.groupCache[path]
	r.mu.RUnlock()
	if ok {
		return group, nil
	}

	parts := strings.Split(path, ".")
	if len(parts) == 0 {
		return nil, fmt.Errorf("urls: invalid route group path %q", path)
	}

	root, err := lookupGroup(r.manager, parts[0])
	if err != nil {
		return nil, err
	}
	current := root
	for _, part := range parts[1:] {
		current, err = lookupChildGroup(current, part)
		if err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	r.groupCache[path] = current
	r.mu.Unlock()
	return current, nil
}

func (r *Resolver) safeBuilder(group *urlkit.Group, route string) (*urlkit.Builder, error) {
	if group == nil {
		return nil, fmt.Errorf("urls: route group is nil")
	}
	var (
		builder *urlkit.Builder
		err     error
	)
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("urls: route %q not registered: %v", route, rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}

func lookupGroup(manager *urlkit.RouteManager, name string) (*urlkit.Group, error) {
	if manager == nil {
		return nil, fmt.Errorf("urls: route manager not configured")
	}
	var (
		group *urlkit.Group
		err   error
	)
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("urls: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func lookupChildGroup(parent *urlkit.Group, name string) (*urlkit.Group, error) {
	if parent == nil {
		return nil, fmt.Errorf("urls: parent group is nil")
	}
	var (
		group *urlkit.Group
		err   error
	)
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("urls: child group %q not found", name)
		}
	}()
	group = parent.Group(name)
	return group, err
}
