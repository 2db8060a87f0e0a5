package content

import (
	"encoding/hex"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-portfolio/content"
	"github.com/goliatone/go-portfolio/internal/identity"
	"github.com/goliatone/go-portfolio/internal/urls"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

var titleCaser = cases.Title(language.English)

// buildPost converts a loaded document into a Post record for the blog or
// projects collection. The document must already carry rendered HTML.
func buildPost(doc *interfaces.Document, collection string, wordsPerMinute int, resolver *urls.Resolver) (content.Post, error) {
	fm := doc.FrontMatter

	slug, err := derivePostSlug(collection, fm.Slug, doc.FilePath)
	if err != nil {
		return content.Post{}, &content.InvalidFrontMatterError{Path: doc.FilePath, Issues: []string{err.Error()}}
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		title = titleFromPath(doc.FilePath)
	}

	body := string(doc.Body)
	post := content.Post{
		ID:           identity.PostUUID(collection, slug),
		Collection:   collection,
		Slug:         slug,
		Title:        title,
		Summary:      strings.TrimSpace(fm.Summary),
		Date:         fm.Date,
		Draft:        fm.Draft,
		Tags:         normalizeTags(fm.Tags),
		Author:       strings.TrimSpace(fm.Author),
		Template:     strings.TrimSpace(fm.Template),
		Body:         body,
		HTML:         string(doc.BodyHTML),
		WordCount:    content.CountWords(body),
		ReadingTime:  content.ReadingTimeWithOptions(body, content.ReadingTimeOptions{WordsPerMinute: wordsPerMinute}),
		SourcePath:   doc.FilePath,
		Checksum:     hex.EncodeToString(doc.Checksum),
		LastModified: doc.LastModified,
		Custom:       fm.Custom,
	}
	if resolver != nil {
		post.Permalink = resolver.Permalink(slug)
	} else {
		post.Permalink = "/" + slug + "/"
	}
	return post, nil
}

// buildWork converts a loaded document into a work history record.
func buildWork(doc *interfaces.Document) (content.WorkExperience, error) {
	fm := doc.FrontMatter

	start, err := content.ParseDate(fm.DateStart)
	if err != nil {
		return content.WorkExperience{}, &content.InvalidFrontMatterError{Path: doc.FilePath, Issues: []string{err.Error()}}
	}
	end, err := content.ParseDate(fm.DateEnd)
	if err != nil {
		return content.WorkExperience{}, &content.InvalidFrontMatterError{Path: doc.FilePath, Issues: []string{err.Error()}}
	}

	slug, err := deriveEntrySlug(fm.Slug, doc.FilePath)
	if err != nil {
		return content.WorkExperience{}, &content.InvalidFrontMatterError{Path: doc.FilePath, Issues: []string{err.Error()}}
	}

	return content.WorkExperience{
		ID:         identity.WorkExperienceUUID(slug),
		Slug:       slug,
		Company:    strings.TrimSpace(fm.Company),
		Role:       strings.TrimSpace(fm.Role),
		Location:   strings.TrimSpace(fm.Location),
		DateStart:  start,
		DateEnd:    end,
		Summary:    strings.TrimSpace(fm.Summary),
		HTML:       string(doc.BodyHTML),
		Tech:       normalizeTags(fm.Tech),
		SourcePath: doc.FilePath,
	}, nil
}

// buildEducation converts a loaded document into an education record.
func buildEducation(doc *interfaces.Document) (content.Education, error) {
	fm := doc.FrontMatter

	start, err := content.ParseDate(fm.DateStart)
	if err != nil {
		return content.Education{}, &content.InvalidFrontMatterError{Path: doc.FilePath, Issues: []string{err.Error()}}
	}
	end, err := content.ParseDate(fm.DateEnd)
	if err != nil {
		return content.Education{}, &content.InvalidFrontMatterError{Path: doc.FilePath, Issues: []string{err.Error()}}
	}

	slug, err := deriveEntrySlug(fm.Slug, doc.FilePath)
	if err != nil {
		return content.Education{}, &content.InvalidFrontMatterError{Path: doc.FilePath, Issues: []string{err.Error()}}
	}

	return content.Education{
		ID:          identity.EducationUUID(slug),
		Slug:        slug,
		Institution: strings.TrimSpace(fm.Institution),
		DateStart:   start,
		DateEnd:     end,
		Summary:     strings.TrimSpace(fm.Summary),
		HTML:        string(doc.BodyHTML),
		SourcePath:  doc.FilePath,
	}, nil
}

// derivePostSlug resolves the collection-prefixed slug for a post. Front
// matter wins over the file path; either way every segment is normalized and
// the collection prefix is guaranteed.
func derivePostSlug(collection, explicit, filePath string) (string, error) {
	raw := strings.Trim(strings.TrimSpace(explicit), "/")
	if raw == "" {
		raw = strings.Trim(stripExtension(filePath), "/")
	}

	normalized, err := normalizeSlugPath(raw)
	if err != nil {
		return "", err
	}
	if normalized == "" {
		return "", content.ErrSlugRequired
	}
	if normalized == collection || strings.HasPrefix(normalized, collection+"/") {
		return normalized, nil
	}
	return collection + "/" + normalized, nil
}

// deriveEntrySlug resolves a flat slug for work and education entries.
func deriveEntrySlug(explicit, filePath string) (string, error) {
	raw := strings.TrimSpace(explicit)
	if raw == "" {
		raw = strings.TrimSuffix(path.Base(filePath), path.Ext(filePath))
	}
	normalized, err := content.NormalizeSlug(raw)
	if err != nil {
		return "", err
	}
	if normalized == "" {
		return "", content.ErrSlugRequired
	}
	return normalized, nil
}

// normalizeSlugPath normalizes each path segment independently so nested
// slugs like "flutter/state management" become "flutter/state-management".
func normalizeSlugPath(value string) (string, error) {
	segments := strings.Split(strings.Trim(value, "/"), "/")
	out := make([]string, 0, len(segments))
	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		if content.IsValidSlug(segment) {
			out = append(out, segment)
			continue
		}
		normalized, err := content.NormalizeSlug(segment)
		if err != nil {
			return "", err
		}
		if normalized == "" {
			continue
		}
		out = append(out, normalized)
	}
	return strings.Join(out, "/"), nil
}

// titleFromPath derives a human title from the file name: "state-management.md"
// becomes "State Management".
func titleFromPath(filePath string) string {
	base := stripExtension(path.Base(filePath))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return titleCaser.String(strings.TrimSpace(base))
}

func stripExtension(value string) string {
	return strings.TrimSuffix(value, path.Ext(value))
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(tag)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
