// Package markdown implements the filesystem ingestion pipeline for portfolio
// content: discovering markdown documents, extracting front matter, and
// rendering bodies to HTML through goldmark.
package markdown
