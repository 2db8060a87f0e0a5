package generator

import (
	"path"
	"strings"
)

// buildOutputPath maps a site-relative route to its output file. Every route
// becomes a directory with an index.html so the static site serves clean URLs.
func buildOutputPath(route string) string {
	clean := strings.Trim(strings.TrimSpace(route), "/")
	if clean == "" {
		return "index.html"
	}
	return path.Join(clean, "index.html")
}
