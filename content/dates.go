package content

import (
	"strings"
	"time"
)

// DateFormat selects the rendering applied by FormatDate.
type DateFormat string

const (
	DateFormatLong      DateFormat = "long"
	DateFormatShort     DateFormat = "short"
	DateFormatISO       DateFormat = "iso"
	DateFormatMonthYear DateFormat = "month-year"
)

// DateFormatOptions customises FormatDate. The zero value renders the long
// format ("March 20, 2024").
type DateFormatOptions struct {
	Format DateFormat
}

// dateLayouts are tried in order when parsing front-matter dates. Month and
// year precision cover work history fields like date_start: "2021-06".
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseDate parses a front-matter date value. An empty value returns the zero
// time without error so optional dates stay optional; any other value that
// matches none of the supported layouts fails with UnparseableDateError.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, &UnparseableDateError{Value: value}
}

// FormatDate renders a date string per the requested format. Malformed input
// surfaces as an error rather than silently defaulting.
func FormatDate(value string, opts DateFormatOptions) (string, error) {
	parsed, err := ParseDate(value)
	if err != nil {
		return "", err
	}
	if parsed.IsZero() {
		return "", &UnparseableDateError{Value: value}
	}
	return FormatTime(parsed, opts)
}

// MustFormatDate renders a date string and panics on malformed input or an
// unknown format. Intended for templates whose inputs were validated at load.
func MustFormatDate(value string, opts DateFormatOptions) string {
	rendered, err := FormatDate(value, opts)
	if err != nil {
		panic(err)
	}
	return rendered
}

// FormatTime renders an already-parsed time per the requested format.
func FormatTime(t time.Time, opts DateFormatOptions) (string, error) {
	format := opts.Format
	if format == "" {
		format = DateFormatLong
	}
	switch format {
	case DateFormatLong:
		return t.Format("January 2, 2006"), nil
	case DateFormatShort:
		return t.Format("Jan 2, 2006"), nil
	case DateFormatISO:
		return t.Format("2006-01-02"), nil
	case DateFormatMonthYear:
		return t.Format("January 2006"), nil
	default:
		return "", &UnknownDateFormatError{Format: string(format)}
	}
}

// MustFormatTime renders a time and swallows format errors by falling back to
// the long format. Intended for template helpers where the format comes from
// trusted configuration.
func MustFormatTime(t time.Time, format DateFormat) string {
	rendered, err := FormatTime(t, DateFormatOptions{Format: format})
	if err != nil {
		rendered, _ = FormatTime(t, DateFormatOptions{Format: DateFormatLong})
	}
	return rendered
}

// FormatDateRange renders a work/education period such as "June 2021 -
// Present" or "June 2021 - March 2024". A zero end date means ongoing.
func FormatDateRange(start, end time.Time) string {
	if start.IsZero() {
		return ""
	}
	from := start.Format("January 2006")
	if end.IsZero() {
		return from + " - Present"
	}
	return from + " - " + end.Format("January 2006")
}
