package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and markdown body content from the
// provided source bytes. It returns the structured front matter, the markdown
// body without delimiters, and any error encountered.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildDocument assembles an interfaces.Document from the supplied file path,
// raw content, and modification time. BodyHTML is intentionally left empty so
// callers can render lazily.
func BuildDocument(path string, source []byte, modified time.Time) (*interfaces.Document, error) {
	frontmatter, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	return &interfaces.Document{
		FilePath:     path,
		FrontMatter:  frontmatter,
		Body:         body,
		LastModified: modified,
	}, nil
}

// frontMatterEnvelope mirrors the YAML keys recognised across every
// collection the site ships. Post and project files use the title/date/draft
// block; work history and education files use the company/institution block.
// Unknown keys land in Custom through the inline map.
type frontMatterEnvelope struct {
	Title       string         `yaml:"title"`
	Slug        string         `yaml:"slug"`
	Summary     string         `yaml:"summary"`
	Template    string         `yaml:"template"`
	Tags        []string       `yaml:"tags"`
	Author      string         `yaml:"author"`
	Date        time.Time      `yaml:"date"`
	Draft       bool           `yaml:"draft"`
	Company     string         `yaml:"company"`
	Role        string         `yaml:"role"`
	Location    string         `yaml:"location"`
	Institution string         `yaml:"institution"`
	DateStart   string         `yaml:"date_start"`
	DateEnd     string         `yaml:"date_end"`
	Tech        []string       `yaml:"tech"`
	Custom      map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+12)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Slug != "" {
		raw["slug"] = env.Slug
	}
	if env.Summary != "" {
		raw["summary"] = env.Summary
	}
	if env.Template != "" {
		raw["template"] = env.Template
	}
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}
	if env.Author != "" {
		raw["author"] = env.Author
	}
	if !env.Date.IsZero() {
		raw["date"] = env.Date
	}
	raw["draft"] = env.Draft
	if env.Company != "" {
		raw["company"] = env.Company
	}
	if env.Role != "" {
		raw["role"] = env.Role
	}
	if env.Location != "" {
		raw["location"] = env.Location
	}
	if env.Institution != "" {
		raw["institution"] = env.Institution
	}
	if env.DateStart != "" {
		raw["date_start"] = env.DateStart
	}
	if env.DateEnd != "" {
		raw["date_end"] = env.DateEnd
	}
	if len(env.Tech) > 0 {
		raw["tech"] = append([]string(nil), env.Tech...)
	}

	return interfaces.FrontMatter{
		Title:       env.Title,
		Slug:        env.Slug,
		Summary:     env.Summary,
		Template:    env.Template,
		Tags:        append([]string(nil), env.Tags...),
		Author:      env.Author,
		Date:        env.Date,
		Draft:       env.Draft,
		Company:     env.Company,
		Role:        env.Role,
		Location:    env.Location,
		Institution: env.Institution,
		DateStart:   env.DateStart,
		DateEnd:     env.DateEnd,
		Tech:        append([]string(nil), env.Tech...),
		Custom:      cloneMap(env.Custom),
		Raw:         raw,
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
