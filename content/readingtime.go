package content

import (
	"strconv"
	"strings"
	"unicode"
)

// DefaultWordsPerMinute is the reading speed assumed by ReadingTime.
const DefaultWordsPerMinute = 200

// ReadingTimeOptions overrides the reading speed used by reading time
// estimates. Values <= 0 fall back to DefaultWordsPerMinute.
type ReadingTimeOptions struct {
	WordsPerMinute int
}

// CountWords strips punctuation and counts whitespace-delimited words.
func CountWords(content string) int {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, content)
	return len(strings.Fields(cleaned))
}

// ReadingTime estimates how long the content takes to read at the default
// reading speed and renders it as "N min read". Empty content reports
// "0 min read"; any non-empty content reads for at least one minute.
func ReadingTime(content string) string {
	return ReadingTimeWithOptions(content, ReadingTimeOptions{})
}

// ReadingTimeWithOptions estimates reading time with a custom reading speed.
func ReadingTimeWithOptions(content string, opts ReadingTimeOptions) string {
	wpm := opts.WordsPerMinute
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}

	words := CountWords(content)
	if words == 0 {
		return "0 min read"
	}

	minutes := (words + wpm - 1) / wpm
	return strconv.Itoa(minutes) + " min read"
}
