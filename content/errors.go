package content

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnparseableDate   = errors.New("content: unparseable date")
	ErrUnknownDateFormat = errors.New("content: unknown date format")
	ErrUnknownCollection = errors.New("content: unknown collection")
	ErrSlugRequired      = errors.New("content: slug is required")
	ErrSlugInvalid       = errors.New("content: slug contains invalid characters")
	ErrTitleRequired     = errors.New("content: title is required")
	ErrPostNotFound      = errors.New("content: post not found")
	ErrFrontMatterInvalid = errors.New("content: front matter validation failed")
)

// UnparseableDateError reports a date value no supported layout accepts.
type UnparseableDateError struct {
	Value string
}

func (e *UnparseableDateError) Error() string {
	if e == nil || strings.TrimSpace(e.Value) == "" {
		return ErrUnparseableDate.Error()
	}
	return fmt.Sprintf("%s: %q", ErrUnparseableDate.Error(), e.Value)
}

func (e *UnparseableDateError) Unwrap() error {
	return ErrUnparseableDate
}

// UnknownDateFormatError reports an unsupported format option.
type UnknownDateFormatError struct {
	Format string
}

func (e *UnknownDateFormatError) Error() string {
	if e == nil || strings.TrimSpace(e.Format) == "" {
		return ErrUnknownDateFormat.Error()
	}
	return fmt.Sprintf("%s: %q", ErrUnknownDateFormat.Error(), e.Format)
}

func (e *UnknownDateFormatError) Unwrap() error {
	return ErrUnknownDateFormat
}

// PostNotFoundError reports a lookup for a slug the library does not hold.
type PostNotFoundError struct {
	Slug string
}

func (e *PostNotFoundError) Error() string {
	if e == nil || strings.TrimSpace(e.Slug) == "" {
		return ErrPostNotFound.Error()
	}
	return fmt.Sprintf("%s: slug=%s", ErrPostNotFound.Error(), e.Slug)
}

func (e *PostNotFoundError) Unwrap() error {
	return ErrPostNotFound
}

// InvalidFrontMatterError carries the schema issues found in a single file.
type InvalidFrontMatterError struct {
	Path   string
	Issues []string
}

func (e *InvalidFrontMatterError) Error() string {
	if e == nil {
		return ErrFrontMatterInvalid.Error()
	}
	path := strings.TrimSpace(e.Path)
	if path == "" {
		path = "<unknown>"
	}
	if len(e.Issues) == 0 {
		return fmt.Sprintf("%s: %s", ErrFrontMatterInvalid.Error(), path)
	}
	return fmt.Sprintf("%s: %s: %s", ErrFrontMatterInvalid.Error(), path, strings.Join(e.Issues, "; "))
}

func (e *InvalidFrontMatterError) Unwrap() error {
	return ErrFrontMatterInvalid
}
