package content

import "github.com/goliatone/go-slug"

// NormalizeSlug applies the shared slug rules used for post, project, work
// and education identifiers: lowercased, ASCII folded, hyphen separated.
// Nested post slugs normalize per path segment, see the content loader.
func NormalizeSlug(value string) (string, error) {
	return slug.Normalize(value)
}

// IsValidSlug reports whether a front matter slug already satisfies the
// normalization rules.
func IsValidSlug(value string) bool {
	return slug.IsValid(value)
}
