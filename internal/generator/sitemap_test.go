package generator

import (
	"strings"
	"testing"
	"time"
)

func TestBuildSitemapDeduplicatesAndSorts(t *testing.T) {
	fallback := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	pages := []BuiltPage{
		{Route: "/blog", LastModified: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Route: "/"},
		{Route: "blog"},
	}

	sitemap := buildSitemap("https://example.com/", pages, fallback)

	if strings.Count(sitemap, "<loc>https://example.com/blog</loc>") != 1 {
		t.Fatalf("expected deduplicated locations, got:\n%s", sitemap)
	}
	if !strings.Contains(sitemap, "<lastmod>2024-03-02T00:00:00Z</lastmod>") {
		t.Fatalf("expected fallback lastmod for undated page, got:\n%s", sitemap)
	}
	first := strings.Index(sitemap, "<loc>https://example.com/</loc>")
	second := strings.Index(sitemap, "<loc>https://example.com/blog</loc>")
	if first == -1 || second == -1 || first > second {
		t.Fatalf("expected sorted locations, got:\n%s", sitemap)
	}
}

func TestBuildRobotsWithoutSitemap(t *testing.T) {
	robots := buildRobots("https://example.com", false)
	if strings.Contains(robots, "Sitemap:") {
		t.Fatalf("expected no sitemap pointer, got %s", robots)
	}
	if !strings.Contains(robots, "User-agent: *") {
		t.Fatalf("expected allow-all robots, got %s", robots)
	}
}
