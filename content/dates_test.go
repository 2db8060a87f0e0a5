package content

import (
	"errors"
	"testing"
	"time"
)

func TestFormatDateRendersFormats(t *testing.T) {
	cases := []struct {
		name   string
		value  string
		format DateFormat
		want   string
	}{
		{name: "long", value: "2024-03-20", format: DateFormatLong, want: "March 20, 2024"},
		{name: "default is long", value: "2024-03-20", format: "", want: "March 20, 2024"},
		{name: "short", value: "2024-03-20", format: DateFormatShort, want: "Mar 20, 2024"},
		{name: "iso", value: "2024-03-20", format: DateFormatISO, want: "2024-03-20"},
		{name: "month year", value: "2024-03-20", format: DateFormatMonthYear, want: "March 2024"},
		{name: "rfc3339 input", value: "2024-03-20T15:04:05Z", format: DateFormatLong, want: "March 20, 2024"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := FormatDate(tc.value, DateFormatOptions{Format: tc.format})
			if err != nil {
				t.Fatalf("FormatDate(%q) error = %v", tc.value, err)
			}
			if got != tc.want {
				t.Fatalf("FormatDate(%q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestFormatDateRejectsMalformedInput(t *testing.T) {
	_, err := FormatDate("not-a-date", DateFormatOptions{})
	if err == nil {
		t.Fatal("expected error for malformed date")
	}
	if !errors.Is(err, ErrUnparseableDate) {
		t.Fatalf("expected ErrUnparseableDate, got %v", err)
	}

	var typed *UnparseableDateError
	if !errors.As(err, &typed) {
		t.Fatalf("expected UnparseableDateError, got %T", err)
	}
	if typed.Value != "not-a-date" {
		t.Fatalf("expected offending value to be captured, got %q", typed.Value)
	}
}

func TestFormatDateRejectsEmptyInput(t *testing.T) {
	if _, err := FormatDate("", DateFormatOptions{}); !errors.Is(err, ErrUnparseableDate) {
		t.Fatalf("expected ErrUnparseableDate for empty input, got %v", err)
	}
}

func TestMustFormatDate(t *testing.T) {
	if got := MustFormatDate("2024-03-20", DateFormatOptions{Format: DateFormatShort}); got != "Mar 20, 2024" {
		t.Fatalf("MustFormatDate = %q, want %q", got, "Mar 20, 2024")
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for malformed date")
		}
	}()
	MustFormatDate("not-a-date", DateFormatOptions{})
}

func TestParseDateLayouts(t *testing.T) {
	cases := []struct {
		value string
		want  time.Time
	}{
		{value: "2024-03-20T15:04:05Z", want: time.Date(2024, 3, 20, 15, 4, 5, 0, time.UTC)},
		{value: "2024-03-20T15:04:05", want: time.Date(2024, 3, 20, 15, 4, 5, 0, time.UTC)},
		{value: "2024-03-20 15:04:05", want: time.Date(2024, 3, 20, 15, 4, 5, 0, time.UTC)},
		{value: "2024-03-20", want: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)},
		{value: "2021-06", want: time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)},
		{value: "2019", want: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		parsed, err := ParseDate(tc.value)
		if err != nil {
			t.Fatalf("ParseDate(%q) error = %v", tc.value, err)
		}
		if !parsed.Equal(tc.want) {
			t.Fatalf("ParseDate(%q) = %v, want %v", tc.value, parsed, tc.want)
		}
	}
}

func TestParseDateEmptyIsZero(t *testing.T) {
	parsed, err := ParseDate("  ")
	if err != nil {
		t.Fatalf("ParseDate blank error = %v", err)
	}
	if !parsed.IsZero() {
		t.Fatalf("expected zero time for blank input, got %v", parsed)
	}
}

func TestFormatTimeRejectsUnknownFormat(t *testing.T) {
	_, err := FormatTime(time.Now(), DateFormatOptions{Format: "relative"})
	if !errors.Is(err, ErrUnknownDateFormat) {
		t.Fatalf("expected ErrUnknownDateFormat, got %v", err)
	}
}

func TestFormatDateRange(t *testing.T) {
	start := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	if got := FormatDateRange(start, end); got != "June 2021 - March 2024" {
		t.Fatalf("FormatDateRange = %q", got)
	}
	if got := FormatDateRange(start, time.Time{}); got != "June 2021 - Present" {
		t.Fatalf("FormatDateRange ongoing = %q", got)
	}
	if got := FormatDateRange(time.Time{}, end); got != "" {
		t.Fatalf("expected empty range without start, got %q", got)
	}
}
