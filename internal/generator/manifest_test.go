package generator

import (
	"testing"
	"time"
)

func TestManifestRoundTrip(t *testing.T) {
	manifest := newBuildManifest()
	manifest.GeneratedAt = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	manifest.setPage(manifestPage{
		Kind:     pageKindPost,
		Route:    "/blog/go/worker-pools",
		Output:   "public/blog/go/worker-pools/index.html",
		Template: "post",
		Hash:     "abc",
		Checksum: "def",
	})
	manifest.setAsset(manifestAsset{
		Source:   "site:css/site.css",
		Output:   "public/assets/css/site.css",
		Checksum: "123",
		Size:     6,
	})

	data, err := manifest.marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	parsed, err := parseManifest(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	entry, ok := parsed.lookupPage("/blog/go/worker-pools")
	if !ok {
		t.Fatal("expected page entry after round trip")
	}
	if entry.Hash != "abc" || entry.Output != "public/blog/go/worker-pools/index.html" {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if _, ok := parsed.lookupAsset("site:css/site.css"); !ok {
		t.Fatal("expected asset entry after round trip")
	}
}

func TestManifestShouldSkipPage(t *testing.T) {
	manifest := newBuildManifest()
	manifest.setPage(manifestPage{Route: "/blog", Hash: "h1", Output: "public/blog/index.html"})

	if !manifest.shouldSkipPage("/blog", "h1", "public/blog/index.html") {
		t.Fatal("expected skip for unchanged page")
	}
	if manifest.shouldSkipPage("/blog", "h2", "public/blog/index.html") {
		t.Fatal("expected rebuild on hash change")
	}
	if manifest.shouldSkipPage("/blog", "h1", "elsewhere/index.html") {
		t.Fatal("expected rebuild on output change")
	}
	if manifest.shouldSkipPage("/other", "h1", "public/other/index.html") {
		t.Fatal("expected rebuild for unknown route")
	}
}

func TestParseManifestEmptyAndInvalid(t *testing.T) {
	manifest, err := parseManifest(nil)
	if err != nil {
		t.Fatalf("empty manifest: %v", err)
	}
	if manifest == nil || manifest.Version != manifestFileVersion {
		t.Fatalf("expected fresh manifest, got %+v", manifest)
	}

	if _, err := parseManifest([]byte("{not json")); err == nil {
		t.Fatal("expected parse failure for invalid JSON")
	}
}

func TestParseManifestVersionMismatchResets(t *testing.T) {
	stale := newBuildManifest()
	stale.Version = manifestFileVersion + 98
	stale.setPage(manifestPage{Route: "/blog/a", Hash: "h1", Output: "public/blog/a/index.html"})

	data, err := stale.marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	parsed, err := parseManifest(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Version != manifestFileVersion {
		t.Fatalf("expected version %d after reset, got %d", manifestFileVersion, parsed.Version)
	}
	if len(parsed.Pages) != 0 {
		t.Fatalf("expected empty pages after version mismatch, got %d", len(parsed.Pages))
	}
	if parsed.shouldSkipPage("/blog/a", "h1", "public/blog/a/index.html") {
		t.Fatal("expected full rebuild when manifest version does not match")
	}
}

func TestBuildOutputPath(t *testing.T) {
	cases := map[string]string{
		"/":                      "index.html",
		"":                       "index.html",
		"/blog":                  "blog/index.html",
		"/blog/go/worker-pools/": "blog/go/worker-pools/index.html",
	}
	for route, want := range cases {
		if got := buildOutputPath(route); got != want {
			t.Fatalf("buildOutputPath(%q) = %q, want %q", route, got, want)
		}
	}
}
