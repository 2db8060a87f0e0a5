package content

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Collection names shipped by the site. Posts live in blog and projects;
// work and education feed the resume sections.
const (
	CollectionBlog      = "blog"
	CollectionProjects  = "projects"
	CollectionWork      = "work"
	CollectionEducation = "education"
)

// Collections lists every collection in load order.
func Collections() []string {
	return []string{CollectionBlog, CollectionProjects, CollectionWork, CollectionEducation}
}

// PostCollections lists the collections whose records are posts.
func PostCollections() []string {
	return []string{CollectionBlog, CollectionProjects}
}

// IsValidCollection reports whether name is a known collection.
func IsValidCollection(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case CollectionBlog, CollectionProjects, CollectionWork, CollectionEducation:
		return true
	}
	return false
}

// Post is a blog or project entry sourced from a markdown file. Records are
// read-only at runtime: loaded once per build, rendered, discarded.
type Post struct {
	ID           uuid.UUID      `json:"id"`
	Collection   string         `json:"collection"`
	Slug         string         `json:"slug"`
	Title        string         `json:"title"`
	Summary      string         `json:"summary,omitempty"`
	Date         time.Time      `json:"date,omitempty"`
	Draft        bool           `json:"draft"`
	Tags         []string       `json:"tags,omitempty"`
	Author       string         `json:"author,omitempty"`
	Template     string         `json:"template,omitempty"`
	Body         string         `json:"-"`
	HTML         string         `json:"-"`
	WordCount    int            `json:"word_count"`
	ReadingTime  string         `json:"reading_time"`
	Permalink    string         `json:"permalink"`
	SourcePath   string         `json:"source_path"`
	Checksum     string         `json:"checksum,omitempty"`
	LastModified time.Time      `json:"last_modified,omitempty"`
	Custom       map[string]any `json:"custom,omitempty"`
}

// Category returns the post's category: the first path segment of its slug
// after the collection prefix, otherwise the collection name. A post at
// "blog/flutter/state-management" is in category "flutter".
func (p Post) Category() string {
	slug := p.slugWithinCollection()
	if idx := strings.Index(slug, "/"); idx > 0 {
		return strings.ToLower(slug[:idx])
	}
	return strings.ToLower(p.Collection)
}

// MatchesCategory reports whether the post belongs to the given category.
// A post matches when its category equals the given one or its collection
// name equals it; comparison is case-insensitive.
func (p Post) MatchesCategory(category string) bool {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return true
	}
	if p.Category() == category {
		return true
	}
	return strings.ToLower(p.Collection) == category
}

// slugWithinCollection strips the collection prefix from the slug.
func (p Post) slugWithinCollection() string {
	slug := strings.Trim(p.Slug, "/")
	prefix := strings.ToLower(strings.TrimSpace(p.Collection)) + "/"
	if strings.HasPrefix(strings.ToLower(slug), prefix) {
		return slug[len(prefix):]
	}
	return slug
}

// HasTag reports whether the post carries the tag, case-insensitively.
func (p Post) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return false
	}
	for _, candidate := range p.Tags {
		if strings.ToLower(strings.TrimSpace(candidate)) == tag {
			return true
		}
	}
	return false
}

// WorkExperience is a position in the work history collection.
type WorkExperience struct {
	ID         uuid.UUID `json:"id"`
	Slug       string    `json:"slug"`
	Company    string    `json:"company"`
	Role       string    `json:"role"`
	Location   string    `json:"location,omitempty"`
	DateStart  time.Time `json:"date_start"`
	DateEnd    time.Time `json:"date_end,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	HTML       string    `json:"-"`
	Tech       []string  `json:"tech,omitempty"`
	SourcePath string    `json:"source_path"`
}

// Current reports whether the position is ongoing (no end date).
func (w WorkExperience) Current() bool {
	return w.DateEnd.IsZero()
}

// Education is an entry in the education collection.
type Education struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Institution string    `json:"institution"`
	DateStart   time.Time `json:"date_start"`
	DateEnd     time.Time `json:"date_end,omitempty"`
	Summary     string    `json:"summary,omitempty"`
	HTML        string    `json:"-"`
	SourcePath  string    `json:"source_path"`
}
