package content

import (
	"sort"
	"strings"
)

// FilterPostsByCategory returns the posts matching the given category. An
// empty category carries no criterion and returns every post unfiltered.
func FilterPostsByCategory(posts []Post, category string) []Post {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return clonePosts(posts)
	}

	out := make([]Post, 0, len(posts))
	for _, post := range posts {
		if post.MatchesCategory(category) {
			out = append(out, post)
		}
	}
	return out
}

// FilterPostsByTag returns the posts carrying the tag, case-insensitively.
// An empty tag returns every post unfiltered.
func FilterPostsByTag(posts []Post, tag string) []Post {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return clonePosts(posts)
	}

	out := make([]Post, 0, len(posts))
	for _, post := range posts {
		if post.HasTag(tag) {
			out = append(out, post)
		}
	}
	return out
}

// ExcludeDrafts drops draft posts. Public listings, feeds, and generated
// pages must never include drafts.
func ExcludeDrafts(posts []Post) []Post {
	out := make([]Post, 0, len(posts))
	for _, post := range posts {
		if post.Draft {
			continue
		}
		out = append(out, post)
	}
	return out
}

// SortPostsByDate orders posts newest first. Posts without a date sort last
// regardless of their input position; ties break by slug so output stays
// stable across builds.
func SortPostsByDate(posts []Post) []Post {
	out := clonePosts(posts)
	sort.SliceStable(out, func(i, j int) bool {
		return lessByDateDesc(out[i], out[j])
	})
	return out
}

func lessByDateDesc(a, b Post) bool {
	aZero := a.Date.IsZero()
	bZero := b.Date.IsZero()
	switch {
	case aZero && bZero:
		return a.Slug < b.Slug
	case aZero:
		return false
	case bZero:
		return true
	case a.Date.Equal(b.Date):
		return a.Slug < b.Slug
	default:
		return a.Date.After(b.Date)
	}
}

// SearchPosts matches the query against post metadata: title, summary, slug,
// and tags, case-insensitively. A blank query returns every post. Input
// order is preserved so pre-sorted lists stay sorted.
func SearchPosts(posts []Post, query string) []Post {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return clonePosts(posts)
	}

	out := make([]Post, 0, len(posts))
	for _, post := range posts {
		if postMatchesQuery(post, query) {
			out = append(out, post)
		}
	}
	return out
}

func postMatchesQuery(post Post, query string) bool {
	if strings.Contains(strings.ToLower(post.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(post.Summary), query) {
		return true
	}
	if strings.Contains(strings.ToLower(post.Slug), query) {
		return true
	}
	for _, tag := range post.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// GroupPostsByCategory buckets posts under their category. Ordering inside
// each bucket follows the input ordering.
func GroupPostsByCategory(posts []Post) map[string][]Post {
	grouped := make(map[string][]Post)
	for _, post := range posts {
		category := post.Category()
		grouped[category] = append(grouped[category], post)
	}
	return grouped
}

// Categories lists the distinct categories across the posts, sorted.
func Categories(posts []Post) []string {
	seen := make(map[string]struct{})
	for _, post := range posts {
		seen[post.Category()] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for category := range seen {
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// Tags lists the distinct tags across the posts, lowercased and sorted.
func Tags(posts []Post) []string {
	seen := make(map[string]struct{})
	for _, post := range posts {
		for _, tag := range post.Tags {
			trimmed := strings.ToLower(strings.TrimSpace(tag))
			if trimmed == "" {
				continue
			}
			seen[trimmed] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for tag := range seen {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// SortWorkByStartDate orders work history most recent first. Ongoing
// positions with equal start dates sort before finished ones.
func SortWorkByStartDate(entries []WorkExperience) []WorkExperience {
	out := make([]WorkExperience, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.DateStart.Equal(b.DateStart) {
			if a.Current() != b.Current() {
				return a.Current()
			}
			return a.Slug < b.Slug
		}
		return a.DateStart.After(b.DateStart)
	})
	return out
}

// SortEducationByStartDate orders education entries most recent first.
func SortEducationByStartDate(entries []Education) []Education {
	out := make([]Education, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.DateStart.Equal(b.DateStart) {
			return a.Slug < b.Slug
		}
		return a.DateStart.After(b.DateStart)
	})
	return out
}

func clonePosts(posts []Post) []Post {
	out := make([]Post, len(posts))
	copy(out, posts)
	return out
}
