package content

import (
	"testing"
	"time"
)

func datedPost(slug, collection string, date time.Time) Post {
	return Post{
		Slug:       slug,
		Collection: collection,
		Title:      slug,
		Date:       date,
	}
}

func samplePosts() []Post {
	return []Post{
		datedPost("blog/flutter/building-layouts", CollectionBlog, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)),
		datedPost("blog/rust/ownership-basics", CollectionBlog, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)),
		datedPost("blog/flutter/state-management", CollectionBlog, time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)),
		datedPost("projects/portfolio-site", CollectionProjects, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)),
	}
}

func TestFilterPostsByCategoryMatchesSlugPrefix(t *testing.T) {
	got := FilterPostsByCategory(samplePosts(), "flutter")
	if len(got) != 2 {
		t.Fatalf("expected 2 flutter posts, got %d", len(got))
	}
	for _, post := range got {
		if post.Category() != "flutter" {
			t.Fatalf("unexpected post %q in flutter filter", post.Slug)
		}
	}
}

func TestFilterPostsByCategoryMatchesCollectionName(t *testing.T) {
	got := FilterPostsByCategory(samplePosts(), "projects")
	if len(got) != 1 || got[0].Slug != "projects/portfolio-site" {
		t.Fatalf("expected the projects entry, got %+v", got)
	}
}

func TestFilterPostsByCategoryIsCaseInsensitive(t *testing.T) {
	got := FilterPostsByCategory(samplePosts(), "FLUTTER")
	if len(got) != 2 {
		t.Fatalf("expected case-insensitive match, got %d posts", len(got))
	}
}

func TestFilterPostsByCategoryEmptyReturnsAll(t *testing.T) {
	posts := samplePosts()
	got := FilterPostsByCategory(posts, "  ")
	if len(got) != len(posts) {
		t.Fatalf("expected all %d posts without a criterion, got %d", len(posts), len(got))
	}
}

func TestFilterPostsByCategoryNoMatches(t *testing.T) {
	if got := FilterPostsByCategory(samplePosts(), "kotlin"); len(got) != 0 {
		t.Fatalf("expected no kotlin posts, got %d", len(got))
	}
}

func TestSortPostsByDateNewestFirst(t *testing.T) {
	got := SortPostsByDate(samplePosts())

	wantOrder := []string{
		"blog/rust/ownership-basics",
		"blog/flutter/building-layouts",
		"projects/portfolio-site",
		"blog/flutter/state-management",
	}
	for i, want := range wantOrder {
		if got[i].Slug != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, got[i].Slug)
		}
	}
}

func TestSortPostsByDateMissingDateSortsLast(t *testing.T) {
	undated := datedPost("undated-notes", CollectionBlog, time.Time{})

	// The undated entry must land last no matter where it starts.
	for _, position := range []int{0, 2, 4} {
		posts := samplePosts()
		posts = append(posts[:position], append([]Post{undated}, posts[position:]...)...)

		got := SortPostsByDate(posts)
		if got[len(got)-1].Slug != "undated-notes" {
			t.Fatalf("insert at %d: expected undated entry last, got %q", position, got[len(got)-1].Slug)
		}
	}
}

func TestSortPostsByDateDoesNotMutateInput(t *testing.T) {
	posts := samplePosts()
	first := posts[0].Slug

	_ = SortPostsByDate(posts)
	if posts[0].Slug != first {
		t.Fatalf("expected input untouched, got %q first", posts[0].Slug)
	}
}

func TestExcludeDrafts(t *testing.T) {
	posts := samplePosts()
	posts[1].Draft = true

	got := ExcludeDrafts(posts)
	if len(got) != 3 {
		t.Fatalf("expected 3 public posts, got %d", len(got))
	}
	for _, post := range got {
		if post.Draft {
			t.Fatalf("draft %q leaked into public listing", post.Slug)
		}
	}
}

func TestSearchPostsMatchesMetadata(t *testing.T) {
	posts := samplePosts()
	posts[0].Summary = "Laying out widgets in rows and columns"
	posts[1].Tags = []string{"Rust", "memory"}

	if got := SearchPosts(posts, "widgets"); len(got) != 1 || got[0].Slug != "blog/flutter/building-layouts" {
		t.Fatalf("summary search failed: %+v", got)
	}
	if got := SearchPosts(posts, "MEMORY"); len(got) != 1 || got[0].Slug != "blog/rust/ownership-basics" {
		t.Fatalf("tag search failed: %+v", got)
	}
	if got := SearchPosts(posts, "ownership"); len(got) != 1 {
		t.Fatalf("slug search failed: %+v", got)
	}
	if got := SearchPosts(posts, ""); len(got) != len(posts) {
		t.Fatalf("blank query should return all posts, got %d", len(got))
	}
	if got := SearchPosts(posts, "no-such-topic"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestGroupPostsByCategory(t *testing.T) {
	grouped := GroupPostsByCategory(samplePosts())

	if len(grouped["flutter"]) != 2 {
		t.Fatalf("expected 2 flutter posts, got %d", len(grouped["flutter"]))
	}
	if len(grouped["rust"]) != 1 {
		t.Fatalf("expected 1 rust post, got %d", len(grouped["rust"]))
	}
	// Flat project slugs fall back to their collection name.
	if len(grouped["projects"]) != 1 {
		t.Fatalf("expected 1 projects post, got %d", len(grouped["projects"]))
	}
}

func TestCategoriesSorted(t *testing.T) {
	got := Categories(samplePosts())
	want := []string{"flutter", "projects", "rust"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestTagsDeduplicatesCaseInsensitively(t *testing.T) {
	posts := samplePosts()
	posts[0].Tags = []string{"Flutter", "UI"}
	posts[2].Tags = []string{"flutter", "state"}

	got := Tags(posts)
	want := []string{"flutter", "state", "ui"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSortWorkByStartDate(t *testing.T) {
	entries := []WorkExperience{
		{Slug: "older", DateStart: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC), DateEnd: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: "current", DateStart: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)},
		{Slug: "middle", DateStart: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC), DateEnd: time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)},
	}

	got := SortWorkByStartDate(entries)
	wantOrder := []string{"current", "middle", "older"}
	for i, want := range wantOrder {
		if got[i].Slug != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, got[i].Slug)
		}
	}

	if !got[0].Current() {
		t.Fatal("expected most recent entry to be ongoing")
	}
}
